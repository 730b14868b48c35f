// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simchart

import (
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/simstat/simproc"
)

// A ChartKind identifies one of the supported chart shapes.
type ChartKind int

const (
	Line ChartKind = iota
	Bar
	Box
	FacetGrid
	Heatmap
)

func (k ChartKind) String() string {
	switch k {
	case Line:
		return "line"
	case Bar:
		return "bar"
	case Box:
		return "box"
	case FacetGrid:
		return "facet"
	case Heatmap:
		return "heatmap"
	}
	return fmt.Sprintf("ChartKind(%d)", int(k))
}

// A Spec is a complete, immutable description of one chart. A spec is
// built once, after all aggregation and derivation for the chart has
// finished, and consumed exactly once by the rendering backend.
type Spec interface {
	// OutputID is the artifact base name; the renderer appends the
	// image extension. Identical data and configuration always
	// produce the identical OutputID.
	OutputID() string

	Kind() ChartKind
}

// A Subplot is a Spec that may also appear as one panel of a facet
// grid: line, bar, or box.
type Subplot interface {
	Spec
	subplot()
}

// A Point is one (x, y) sample of a line series.
type Point struct {
	X, Y float64
}

// A LineSeries is one hue of a line chart: points sorted by ascending
// x, with an optional spread band around them.
type LineSeries struct {
	// Hue is the category value this series is bound to, or "" for
	// a single unhued series.
	Hue string

	Points []Point

	// Lo and Hi bound the spread band, aligned with Points.
	// Nil when the chart has no band.
	Lo, Hi []float64
}

// A LineSpec describes a line chart: numeric x, one measure on y, one
// colored series per hue category.
type LineSpec struct {
	Title, XLabel, YLabel, ID string

	// Palette binds hue categories to colors. Nil for unhued charts.
	Palette *Palette

	// Series appear in hue ordering position.
	Series []LineSeries
}

func (s *LineSpec) OutputID() string { return s.ID }
func (s *LineSpec) Kind() ChartKind  { return Line }
func (s *LineSpec) subplot()         {}

// A LineConfig declares the bindings of a line chart.
type LineConfig struct {
	Title, XLabel, YLabel, ID string

	X string // group field with numeric values
	Y string // aggregated measure

	// Hue names the group field that splits the data into colored
	// series; it must be bound by Palette. Empty for one series.
	Hue     string
	Palette *Palette

	// Spread optionally names a second aggregation over the same
	// grouping (typically with the Std reducer) whose Y measure
	// bounds a band around each series.
	Spread *simproc.Aggregation
}

// NewLine builds a line chart spec from aggregated data. Every record
// of agg yields one point; a record whose hue category is not bound by
// the palette fails with an *UnboundHueError.
func NewLine(agg *simproc.Aggregation, cfg LineConfig) (*LineSpec, error) {
	if cfg.Hue != "" && cfg.Palette == nil {
		return nil, fmt.Errorf("line chart %q: hue %q bound without a palette", cfg.ID, cfg.Hue)
	}
	spread, err := spreadIndex(agg, cfg.Spread, cfg.Y)
	if err != nil {
		return nil, fmt.Errorf("line chart %q: %v", cfg.ID, err)
	}

	type series struct {
		pts    []Point
		lo, hi []float64
	}
	bySeries := make(map[string]*series)
	var hues []string
	for _, rec := range agg.Records {
		xs, ok := agg.Dim(rec, cfg.X)
		if !ok {
			return nil, fmt.Errorf("line chart %q: x field %q is not a group field", cfg.ID, cfg.X)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("line chart %q: x value %q is not numeric", cfg.ID, xs)
		}
		y, ok := agg.Measure(rec, cfg.Y)
		if !ok {
			return nil, fmt.Errorf("line chart %q: y field %q is not an aggregated measure", cfg.ID, cfg.Y)
		}

		hue := ""
		if cfg.Hue != "" {
			hue, ok = agg.Dim(rec, cfg.Hue)
			if !ok {
				return nil, fmt.Errorf("line chart %q: hue field %q is not a group field", cfg.ID, cfg.Hue)
			}
			if _, ok := cfg.Palette.Ordering().Index(hue); !ok {
				return nil, &UnboundHueError{cfg.Hue, hue}
			}
		}
		sr, ok := bySeries[hue]
		if !ok {
			sr = &series{}
			bySeries[hue] = sr
			hues = append(hues, hue)
		}
		sr.pts = append(sr.pts, Point{x, y})
		if spread != nil {
			d, ok := spread[groupID(rec.Group)]
			if !ok {
				return nil, fmt.Errorf("line chart %q: spread aggregation lacks group %v", cfg.ID, rec.Group)
			}
			sr.lo = append(sr.lo, y-d)
			sr.hi = append(sr.hi, y+d)
		}
	}

	if cfg.Hue != "" {
		ord := cfg.Palette.Ordering()
		sort.SliceStable(hues, func(i, j int) bool {
			a, _ := ord.Index(hues[i])
			b, _ := ord.Index(hues[j])
			return a < b
		})
	}

	spec := &LineSpec{
		Title: cfg.Title, XLabel: cfg.XLabel, YLabel: cfg.YLabel, ID: cfg.ID,
		Palette: cfg.Palette,
	}
	for _, hue := range hues {
		sr := bySeries[hue]
		sortSeries(sr.pts, sr.lo, sr.hi)
		spec.Series = append(spec.Series, LineSeries{Hue: hue, Points: sr.pts, Lo: sr.lo, Hi: sr.hi})
	}
	return spec, nil
}

// sortSeries orders pts by ascending x, permuting lo and hi in step.
func sortSeries(pts []Point, lo, hi []float64) {
	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return pts[idx[i]].X < pts[idx[j]].X })
	permute := func(xs []float64) []float64 {
		if xs == nil {
			return nil
		}
		out := make([]float64, len(xs))
		for i, k := range idx {
			out[i] = xs[k]
		}
		return out
	}
	npts := make([]Point, len(pts))
	for i, k := range idx {
		npts[i] = pts[k]
	}
	copy(pts, npts)
	copy(lo, permute(lo))
	copy(hi, permute(hi))
}

// groupID joins a group key for map lookups.
func groupID(key []string) string {
	id := ""
	for _, k := range key {
		id += k + "\x00"
	}
	return id
}

// spreadIndex validates a spread aggregation against the base one and
// indexes its measure by group key.
func spreadIndex(base, spread *simproc.Aggregation, measure string) (map[string]float64, error) {
	if spread == nil {
		return nil, nil
	}
	if len(spread.GroupFields) != len(base.GroupFields) {
		return nil, fmt.Errorf("spread aggregation groups by %v, base by %v", spread.GroupFields, base.GroupFields)
	}
	for i, f := range base.GroupFields {
		if spread.GroupFields[i] != f {
			return nil, fmt.Errorf("spread aggregation groups by %v, base by %v", spread.GroupFields, base.GroupFields)
		}
	}
	out := make(map[string]float64, len(spread.Records))
	for _, rec := range spread.Records {
		v, ok := spread.Measure(rec, measure)
		if !ok {
			return nil, fmt.Errorf("spread aggregation lacks measure %q", measure)
		}
		out[groupID(rec.Group)] = v
	}
	return out, nil
}
