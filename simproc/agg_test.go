// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simproc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"golang.org/x/simstat/simfmt"
)

func aggRecords(t *testing.T, rows []simfmt.Row) []simfmt.Record {
	t.Helper()
	s := simfmt.NewSchema(
		simfmt.Field{Name: "strategy", Kind: simfmt.Categorical},
		simfmt.Field{Name: "n", Kind: simfmt.Numeric},
		simfmt.Field{Name: "cost", Kind: simfmt.Numeric},
	)
	recs, err := s.Validate(rows)
	require.NoError(t, err)
	return recs
}

func TestAggregateMean(t *testing.T) {
	recs := aggRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "10", "cost": "1"},
		{"strategy": "LRU", "n": "10", "cost": "4"},
		{"strategy": "FIFO", "n": "10", "cost": "3"},
		{"strategy": "FIFO", "n": "20", "cost": "5"},
	})
	agg, err := Aggregate(recs, []string{"strategy", "n"}, []string{"cost"}, Mean, nil)
	require.NoError(t, err)
	require.Len(t, agg.Records, 3)

	// Groups appear in first-occurrence order.
	require.Equal(t, []string{"FIFO", "10"}, agg.Records[0].Group)
	require.Equal(t, []string{"LRU", "10"}, agg.Records[1].Group)
	require.Equal(t, []string{"FIFO", "20"}, agg.Records[2].Group)

	require.Equal(t, 2.0, agg.Records[0].Values[0])
	require.Equal(t, 2, agg.Records[0].N)
	require.Equal(t, 4.0, agg.Records[1].Values[0])
	require.Equal(t, "mean cost", agg.ColumnName(0))
}

func TestAggregateReducers(t *testing.T) {
	recs := aggRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "1", "cost": "1"},
		{"strategy": "FIFO", "n": "1", "cost": "2"},
		{"strategy": "FIFO", "n": "1", "cost": "6"},
	})
	for _, tc := range []struct {
		r    Reducer
		want float64
	}{
		{Mean, 3},
		{Median, 2},
		{Min, 1},
		{Max, 6},
	} {
		agg, err := Aggregate(recs, nil, []string{"cost"}, tc.r, nil)
		require.NoError(t, err)
		require.Len(t, agg.Records, 1)
		// No group fields: one global group with an empty key.
		require.Empty(t, agg.Records[0].Group)
		require.Equal(t, tc.want, agg.Records[0].Values[0], tc.r.String())
	}

	agg, err := Aggregate(recs, nil, []string{"cost"}, Std, nil)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(7), agg.Records[0].Values[0], 1e-12)
}

func TestAggregateEmptyInput(t *testing.T) {
	agg, err := Aggregate(nil, []string{"strategy"}, []string{"cost"}, Mean, nil)
	require.NoError(t, err)
	require.Empty(t, agg.Records)
}

func TestAggregateMissingMeasure(t *testing.T) {
	recs := aggRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "1", "cost": "2"},
		{"strategy": "FIFO", "n": "1", "cost": ""},
	})
	_, err := Aggregate(recs, []string{"strategy"}, []string{"cost"}, Mean, nil)
	var merr *MissingMeasureError
	require.ErrorAs(t, err, &merr)
	require.Equal(t, "cost", merr.Field)
	require.Equal(t, []string{"FIFO"}, merr.Key)

	// Skipping missing values reduces over what remains.
	agg, err := Aggregate(recs, []string{"strategy"}, []string{"cost"}, Mean,
		&AggOptions{SkipMissing: true})
	require.NoError(t, err)
	require.Equal(t, 2.0, agg.Records[0].Values[0])
	require.Equal(t, 2, agg.Records[0].N)
}

func TestAggregateAllMissing(t *testing.T) {
	recs := aggRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "1", "cost": ""},
	})
	_, err := Aggregate(recs, []string{"strategy"}, []string{"cost"}, Mean,
		&AggOptions{SkipMissing: true})
	var merr *MissingMeasureError
	require.ErrorAs(t, err, &merr)
}

func TestAggregateUnknownGroupField(t *testing.T) {
	recs := aggRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "1", "cost": "2"},
	})
	_, err := Aggregate(recs, []string{"nope"}, []string{"cost"}, Mean, nil)
	require.Error(t, err)
}

func TestPartitionCanonicalKeys(t *testing.T) {
	recs := aggRecords(t, []simfmt.Row{
		{"strategy": "FIFO", "n": "10", "cost": "1"},
		{"strategy": "FIFO", "n": "10.0", "cost": "2"},
	})
	g, err := Partition(recs, []string{"n"})
	require.NoError(t, err)
	// "10" and "10.0" are the same canonical dimension value.
	require.Len(t, g.Groups(), 1)
	require.Equal(t, []string{"10"}, g.Groups()[0].Key)
	require.Equal(t, 2, g.Groups()[0].Len())
}
