// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"golang.org/x/simstat/simchart"
	"golang.org/x/simstat/simfmt"
	"golang.org/x/simstat/simproc"
)

func renderRecords(t *testing.T) []simfmt.Record {
	t.Helper()
	s := simfmt.NewSchema(
		simfmt.Field{Name: "strategy", Kind: simfmt.Categorical},
		simfmt.Field{Name: "n", Kind: simfmt.Numeric},
		simfmt.Field{Name: "cost", Kind: simfmt.Numeric},
	)
	recs, err := s.Validate([]simfmt.Row{
		{"strategy": "FIFO", "n": "10", "cost": "1"},
		{"strategy": "FIFO", "n": "20", "cost": "3"},
		{"strategy": "FIFO", "n": "10", "cost": "2"},
		{"strategy": "LRU", "n": "10", "cost": "4"},
		{"strategy": "LRU", "n": "20", "cost": "2"},
		{"strategy": "LRU", "n": "20", "cost": "5"},
	})
	require.NoError(t, err)
	return recs
}

func renderPalette(t *testing.T, recs []simfmt.Record) *simchart.Palette {
	t.Helper()
	ord, err := simchart.NewOrdering(simchart.Observed(recs, "strategy"), nil)
	require.NoError(t, err)
	pal, err := simchart.Qualitative(ord, "Set1")
	require.NoError(t, err)
	return pal
}

// requireRendered renders spec and checks a non-empty PNG appeared.
func requireRendered(t *testing.T, r *Renderer, spec simchart.Spec) {
	t.Helper()
	path, err := r.Render(spec)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(r.Dir, spec.OutputID()+".png"), path)
	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, fi.Size())
}

func TestRenderLine(t *testing.T) {
	recs := renderRecords(t)
	pal := renderPalette(t, recs)
	mean, err := simproc.Aggregate(recs, []string{"strategy", "n"}, []string{"cost"}, simproc.Mean, nil)
	require.NoError(t, err)
	std, err := simproc.Aggregate(recs, []string{"strategy", "n"}, []string{"cost"}, simproc.Std, nil)
	require.NoError(t, err)

	spec, err := simchart.NewLine(mean, simchart.LineConfig{
		Title: "cost", ID: "line", X: "n", Y: "cost",
		Hue: "strategy", Palette: pal, Spread: std,
	})
	require.NoError(t, err)
	requireRendered(t, &Renderer{Dir: t.TempDir(), DPI: 72}, spec)
}

func TestRenderBar(t *testing.T) {
	recs := renderRecords(t)
	pal := renderPalette(t, recs)
	mean, err := simproc.Aggregate(recs, []string{"n", "strategy"}, []string{"cost"}, simproc.Mean, nil)
	require.NoError(t, err)
	std, err := simproc.Aggregate(recs, []string{"n", "strategy"}, []string{"cost"}, simproc.Std, nil)
	require.NoError(t, err)

	spec, err := simchart.NewBar(mean, simchart.BarConfig{
		ID: "bars", X: "n", Y: "cost",
		Hue: "strategy", Palette: pal, Spread: std,
	})
	require.NoError(t, err)
	requireRendered(t, &Renderer{Dir: t.TempDir(), DPI: 72}, spec)
}

func TestRenderBox(t *testing.T) {
	recs := renderRecords(t)
	pal := renderPalette(t, recs)
	spec, err := simchart.NewBox(recs, simchart.BoxConfig{
		ID: "box", X: "strategy", Y: "cost", Palette: pal,
	})
	require.NoError(t, err)
	requireRendered(t, &Renderer{Dir: t.TempDir(), DPI: 72}, spec)
}

func TestRenderHeatmap(t *testing.T) {
	agg := &simproc.Aggregation{
		GroupFields: []string{"D", "p"},
		Measures:    []string{"cost"},
		Reducer:     simproc.Mean,
		Records: []simproc.AggregatedRecord{
			{Group: []string{"2", "0.1"}, Values: []float64{1.25}, N: 1},
			{Group: []string{"2", "0.2"}, Values: []float64{2.5}, N: 1},
			{Group: []string{"4", "0.1"}, Values: []float64{3.75}, N: 1},
			// (4, 0.2) stays a no-data cell.
		},
	}
	m, err := simproc.Pivot(agg, "D", "p", "cost")
	require.NoError(t, err)
	spec, err := simchart.NewHeatmap(m, simchart.HeatmapConfig{
		ID: "heat", AnnotFmt: "%.2f",
	})
	require.NoError(t, err)
	requireRendered(t, &Renderer{Dir: t.TempDir(), DPI: 72}, spec)
}

func TestRenderFacetWrap(t *testing.T) {
	recs := renderRecords(t)
	pal := renderPalette(t, recs)
	box, err := simchart.NewBox(recs, simchart.BoxConfig{
		ID: "panel", X: "strategy", Y: "cost", Palette: pal,
	})
	require.NoError(t, err)

	ord, err := simchart.NewOrdering([]string{"a", "b", "c"}, nil)
	require.NoError(t, err)
	spec, err := simchart.NewFacetWrap("facets", "facets", "dist", ord, 2, []simchart.FacetPanel{
		{Value: "a", Plot: box},
		{Value: "b", Plot: box},
		{Value: "c", Plot: box},
	})
	require.NoError(t, err)
	requireRendered(t, &Renderer{Dir: t.TempDir(), DPI: 72}, spec)
}

func TestFacetLayout(t *testing.T) {
	spec := &simchart.FacetSpec{
		RowValues: []string{""},
		ColValues: []string{"a", "b", "c", "d", "e"},
		Wrap:      2,
	}
	rows, cols := facetLayout(spec)
	require.Equal(t, 3, rows)
	require.Equal(t, 2, cols)
}
