package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var testCols = ScanColumns{DefaultSort: "created_at", Allowed: []string{"id", "status", "created_at"}}

func TestScanRequest_Validate_Defaults(t *testing.T) {
	r := &ScanRequest{Size: 0, From: -3, SortOrder: "ASC"}
	require.NoError(t, r.Validate(testCols))
	require.Equal(t, 10, r.Size)
	require.Equal(t, 0, r.From)
	require.Equal(t, "created_at", r.SortBy)
	require.Equal(t, "asc", r.SortOrder)

	big := &ScanRequest{Size: 10_000}
	require.NoError(t, big.Validate(testCols))
	require.Equal(t, maxScanSize, big.Size)
}

func TestScanRequest_Validate_RejectsUnknownColumns(t *testing.T) {
	r := &ScanRequest{Filters: []*CommonFilter{{Field: "payment->>'x'", Operator: CommonFilterOperatorEq, Values: []any{"1"}}}}
	require.True(t, errors.Is(r.Validate(testCols), ErrInvalidScanRequest))

	r = &ScanRequest{SortBy: "password"}
	require.True(t, errors.Is(r.Validate(testCols), ErrInvalidScanRequest))

	var nilReq *ScanRequest
	require.True(t, errors.Is(nilReq.Validate(testCols), ErrInvalidScanRequest))
}

func TestScanRequest_Validate_RejectsMalformedFilters(t *testing.T) {
	cases := []*CommonFilter{
		{Field: "status", Operator: CommonFilterOperatorEq},
		{Field: "status", Operator: CommonFilterOperatorRange, Values: []any{1}},
		{Field: "status", Operator: "like", Values: []any{"a"}},
	}
	for _, f := range cases {
		r := &ScanRequest{Filters: []*CommonFilter{f}}
		require.True(t, errors.Is(r.Validate(testCols), ErrInvalidScanRequest), "%+v", f)
	}

	ok := &ScanRequest{Filters: []*CommonFilter{{Field: "status", Operator: CommonFilterOperatorIn, Values: []any{"approved", "pending"}}}}
	require.NoError(t, ok.Validate(testCols))
}
