// Package fieldpath resolves values in decoded JSON documents by fixed,
// ordered candidate paths.
package fieldpath

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Path is a sequence of object keys. A key may itself contain dots
// ("data.id" as a literal query key is one segment).
type Path []string

// Lookup walks doc along p. It reports false when any segment is missing or
// an intermediate value is not an object.
func Lookup(doc map[string]any, p Path) (any, bool) {
	if doc == nil || len(p) == 0 {
		return nil, false
	}
	var cur any = doc
	for _, key := range p {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Text converts a scalar JSON value to its string form. Empty strings, zero
// numbers, false, null, objects and arrays yield ok=false so that callers can
// fall through to the next candidate.
func Text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return "", false
		}
		return t.String(), t.String() != ""
	case float64:
		if t == 0 {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), t != 0
	case int64:
		return strconv.FormatInt(t, 10), t != 0
	case bool:
		if !t {
			return "", false
		}
		return "true", true
	case nil:
		return "", false
	case map[string]any, []any:
		return "", false
	default:
		s := fmt.Sprint(t)
		return s, s != ""
	}
}

// FirstText returns the first candidate path whose value is a non-empty scalar.
func FirstText(doc map[string]any, candidates ...Path) (string, bool) {
	for _, p := range candidates {
		v, ok := Lookup(doc, p)
		if !ok {
			continue
		}
		if s, ok := Text(v); ok {
			return s, true
		}
	}
	return "", false
}

// Decode parses raw as a JSON object, keeping numbers as json.Number so ids
// survive unchanged. Anything other than an object yields an empty map.
func Decode(raw []byte) map[string]any {
	out := map[string]any{}
	if len(raw) == 0 {
		return out
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return out
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return out
}
