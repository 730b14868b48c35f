// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return NewSchema(
		Field{Name: "strategy", Kind: Categorical},
		Field{Name: "n", Kind: Numeric},
		Field{Name: "cost", Kind: Numeric},
	)
}

func TestValidate(t *testing.T) {
	s := testSchema()
	recs, err := s.Validate([]Row{
		{"strategy": "FIFO", "n": "10", "cost": "1.5"},
		{"strategy": "LRU", "n": "10.0", "cost": ""},
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	require.Equal(t, "FIFO", recs[0].Str("strategy"))
	v, ok := recs[0].Num("cost")
	require.True(t, ok)
	require.Equal(t, 1.5, v)

	// "10" and "10.0" canonicalize to the same grouping string.
	require.Equal(t, recs[0].Str("n"), recs[1].Str("n"))

	// An empty numeric cell is missing, not zero.
	_, ok = recs[1].Num("cost")
	require.False(t, ok)
	val, ok := recs[1].Value("cost")
	require.True(t, ok)
	require.True(t, val.Missing)
}

func TestValidateViolations(t *testing.T) {
	s := testSchema()

	for _, tc := range []struct {
		name  string
		row   Row
		field string
	}{
		{"missing field", Row{"strategy": "FIFO", "n": "10"}, "cost"},
		{"empty dimension", Row{"strategy": "", "n": "10", "cost": "1"}, "strategy"},
		{"non-numeric", Row{"strategy": "FIFO", "n": "ten", "cost": "1"}, "n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Validate([]Row{
				{"strategy": "FIFO", "n": "1", "cost": "1"},
				tc.row,
			})
			var verr *SchemaViolation
			require.ErrorAs(t, err, &verr)
			require.Equal(t, 1, verr.Index)
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestExtend(t *testing.T) {
	s := testSchema()
	ext, ok := s.Extend(Field{Name: "ratio", Kind: Numeric})
	require.True(t, ok)
	require.Len(t, ext.Fields(), 4)
	// The original schema is untouched.
	require.Len(t, s.Fields(), 3)

	_, ok = s.Extend(Field{Name: "cost", Kind: Numeric})
	require.False(t, ok)
}

func TestNewRecordPanics(t *testing.T) {
	s := testSchema()
	require.Panics(t, func() {
		NewRecord(s, []Value{{Str: "FIFO"}})
	})
}

func TestCanonNum(t *testing.T) {
	require.Equal(t, "10", CanonNum(10.0))
	require.Equal(t, "0.5", CanonNum(0.5))
	require.Equal(t, "1e+06", CanonNum(1e6))
}
