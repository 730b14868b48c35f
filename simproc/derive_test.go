// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simproc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"golang.org/x/simstat/simfmt"
)

func deriveRecords(t *testing.T, rows []simfmt.Row) []simfmt.Record {
	t.Helper()
	s := simfmt.NewSchema(
		simfmt.Field{Name: "strategy", Kind: simfmt.Categorical},
		simfmt.Field{Name: "n", Kind: simfmt.Numeric},
		simfmt.Field{Name: "total_cost", Kind: simfmt.Numeric},
	)
	recs, err := s.Validate(rows)
	require.NoError(t, err)
	return recs
}

func TestDeriveRatio(t *testing.T) {
	recs := deriveRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "4", "total_cost": "12"},
		{"strategy": "LRU", "n": "8", "total_cost": "12"},
	})
	out, err := Derive(recs, []DeriveRule{Ratio("avg_cost", "total_cost", "n")}, nil)
	require.NoError(t, err)
	require.Len(t, out, 2)

	v, ok := out[0].Num("avg_cost")
	require.True(t, ok)
	require.Equal(t, 3.0, v)

	// The inputs are untouched: no avg_cost on the original schema.
	_, ok = recs[0].Num("avg_cost")
	require.False(t, ok)
}

func TestDeriveChained(t *testing.T) {
	recs := deriveRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "4", "total_cost": "10.2"},
	})
	out, err := Derive(recs, []DeriveRule{
		Ceil("rounded", "total_cost"),
		Ratio("ratio", "total_cost", "rounded"),
	}, nil)
	require.NoError(t, err)

	v, ok := out[0].Num("ratio")
	require.True(t, ok)
	require.InDelta(t, 10.2/11, v, 1e-12)
}

func TestDeriveDomainError(t *testing.T) {
	recs := deriveRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "4", "total_cost": "12"},
		{"strategy": "FIFO", "n": "0", "total_cost": "5"},
	})
	_, err := Derive(recs, []DeriveRule{Ratio("avg_cost", "total_cost", "n")}, nil)
	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "avg_cost", derr.Rule)
	require.Equal(t, 1, derr.Index)
	require.ErrorIs(t, err, ErrDivideByZero)
}

func TestDeriveSkipFailed(t *testing.T) {
	recs := deriveRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "4", "total_cost": "12"},
		{"strategy": "FIFO", "n": "0", "total_cost": "5"},
		{"strategy": "LRU", "n": "2", "total_cost": ""},
		{"strategy": "LRU", "n": "2", "total_cost": "8"},
	})
	out, err := Derive(recs, []DeriveRule{Ratio("avg_cost", "total_cost", "n")},
		&DeriveOptions{SkipFailed: true})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "FIFO", out[0].Str("strategy"))
	require.Equal(t, "LRU", out[1].Str("strategy"))
}

func TestDeriveNameConflict(t *testing.T) {
	recs := deriveRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "4", "total_cost": "12"},
	})
	_, err := Derive(recs, []DeriveRule{Ceil("total_cost", "n")}, nil)
	var cerr *NameConflictError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "total_cost", cerr.Output)
}

func TestDeriveInputMissing(t *testing.T) {
	recs := deriveRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "4", "total_cost": "12"},
	})

	// Undeclared input.
	_, err := Derive(recs, []DeriveRule{Ratio("x", "total_cost", "elapsed")}, nil)
	var merr *InputMissingError
	require.ErrorAs(t, err, &merr)
	require.Equal(t, "elapsed", merr.Input)

	// Declared but categorical.
	_, err = Derive(recs, []DeriveRule{Ceil("x", "strategy")}, nil)
	require.ErrorAs(t, err, &merr)
	require.Equal(t, "strategy", merr.Input)
}

func TestDeriveEmptyInput(t *testing.T) {
	out, err := Derive(nil, []DeriveRule{Ceil("x", "y")}, nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestScalePanicsOnZero(t *testing.T) {
	require.Panics(t, func() { Scale("x", "y", 0) })
}
