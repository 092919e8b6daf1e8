package fieldpath

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	doc := map[string]any{
		"data":    map[string]any{"id": "1"},
		"data.id": "2",
		"scalar":  "x",
	}

	v, ok := Lookup(doc, Path{"data", "id"})
	require.True(t, ok)
	require.Equal(t, "1", v)

	v, ok = Lookup(doc, Path{"data.id"})
	require.True(t, ok)
	require.Equal(t, "2", v)

	_, ok = Lookup(doc, Path{"scalar", "id"})
	require.False(t, ok)
	_, ok = Lookup(nil, Path{"data"})
	require.False(t, ok)
	_, ok = Lookup(doc, nil)
	require.False(t, ok)
}

func TestText(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{"abc", "abc", true},
		{"", "", false},
		{json.Number("123456789012"), "123456789012", true},
		{json.Number("0"), "", false},
		{float64(42), "42", true},
		{float64(0), "", false},
		{true, "true", true},
		{false, "", false},
		{nil, "", false},
		{map[string]any{"a": 1}, "", false},
		{[]any{"a"}, "", false},
	}
	for _, tc := range cases {
		got, ok := Text(tc.in)
		require.Equal(t, tc.ok, ok, "%#v", tc.in)
		require.Equal(t, tc.want, got, "%#v", tc.in)
	}
}

func TestFirstText_SkipsFalsyCandidates(t *testing.T) {
	doc := map[string]any{"a": "", "b": map[string]any{"c": "hit"}}
	got, ok := FirstText(doc, Path{"missing"}, Path{"a"}, Path{"b", "c"})
	require.True(t, ok)
	require.Equal(t, "hit", got)

	_, ok = FirstText(doc, Path{"missing"})
	require.False(t, ok)
}

func TestDecode(t *testing.T) {
	m := Decode([]byte(`{"id": 123456789012345, "x": "y"}`))
	require.Equal(t, json.Number("123456789012345"), m["id"])

	require.Empty(t, Decode(nil))
	require.Empty(t, Decode([]byte(`not json`)))
	require.Empty(t, Decode([]byte(`[1,2,3]`)))
	require.NotNil(t, Decode([]byte(`"str"`)))
}
