// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simchart

import (
	"fmt"
	"math"

	"golang.org/x/simstat/simproc"
)

// A BarSeries is one hue of a grouped bar chart.
type BarSeries struct {
	Hue string

	// Values holds one bar height per x category, aligned with the
	// spec's XCats. NaN marks a category with no data for this hue.
	Values []float64

	// Errs holds symmetric error-bar half-heights aligned with
	// Values, or nil when the chart has no error bars.
	Errs []float64
}

// A BarSpec describes a grouped bar chart: one categorical dimension
// on x, one reduced measure on y, one colored bar group per hue.
type BarSpec struct {
	Title, XLabel, YLabel, ID string

	Palette *Palette

	// XCats are the x categories in their ordering position.
	XCats []string

	// Series appear in hue ordering position.
	Series []BarSeries
}

func (s *BarSpec) OutputID() string { return s.ID }
func (s *BarSpec) Kind() ChartKind  { return Bar }
func (s *BarSpec) subplot()         {}

// A BarConfig declares the bindings of a grouped bar chart.
type BarConfig struct {
	Title, XLabel, YLabel, ID string

	X string // categorical group field
	Y string // aggregated measure

	// XOrder fixes the order of the x categories. Nil keeps their
	// first-occurrence order in the aggregation.
	XOrder *Ordering

	// Hue and Palette color one bar per hue category within each x
	// group. An empty Hue draws a single bar per x category colored
	// by the x value itself, which must then be bound by Palette.
	Hue     string
	Palette *Palette

	// Spread optionally names a matching aggregation (typically
	// Std) providing symmetric error bars.
	Spread *simproc.Aggregation
}

// NewBar builds a grouped bar chart spec from aggregated data.
// Categories not bound by the relevant ordering fail with an
// *UnboundHueError.
func NewBar(agg *simproc.Aggregation, cfg BarConfig) (*BarSpec, error) {
	if cfg.Palette == nil {
		return nil, fmt.Errorf("bar chart %q: no palette supplied", cfg.ID)
	}
	spread, err := spreadIndex(agg, cfg.Spread, cfg.Y)
	if err != nil {
		return nil, fmt.Errorf("bar chart %q: %v", cfg.ID, err)
	}

	// Resolve x categories.
	var xcats []string
	xIdx := make(map[string]int)
	if cfg.XOrder != nil {
		xcats = cfg.XOrder.Values()
	} else {
		for _, rec := range agg.Records {
			x, ok := agg.Dim(rec, cfg.X)
			if !ok {
				return nil, fmt.Errorf("bar chart %q: x field %q is not a group field", cfg.ID, cfg.X)
			}
			if _, ok := xIdx[x]; !ok {
				xIdx[x] = len(xcats)
				xcats = append(xcats, x)
			}
		}
	}
	for i, x := range xcats {
		xIdx[x] = i
	}

	hueOrd := cfg.Palette.Ordering()
	newSeries := func(hue string) BarSeries {
		sr := BarSeries{Hue: hue, Values: make([]float64, len(xcats))}
		for i := range sr.Values {
			sr.Values[i] = math.NaN()
		}
		if spread != nil {
			sr.Errs = make([]float64, len(xcats))
			for i := range sr.Errs {
				sr.Errs[i] = math.NaN()
			}
		}
		return sr
	}

	var series []BarSeries
	if cfg.Hue == "" {
		series = []BarSeries{newSeries("")}
	} else {
		series = make([]BarSeries, hueOrd.Len())
		for i, hue := range hueOrd.Values() {
			series[i] = newSeries(hue)
		}
	}

	for _, rec := range agg.Records {
		x, ok := agg.Dim(rec, cfg.X)
		if !ok {
			return nil, fmt.Errorf("bar chart %q: x field %q is not a group field", cfg.ID, cfg.X)
		}
		xi, ok := xIdx[x]
		if !ok {
			return nil, &UnboundHueError{cfg.X, x}
		}
		y, ok := agg.Measure(rec, cfg.Y)
		if !ok {
			return nil, fmt.Errorf("bar chart %q: y field %q is not an aggregated measure", cfg.ID, cfg.Y)
		}

		si := 0
		if cfg.Hue != "" {
			hue, ok := agg.Dim(rec, cfg.Hue)
			if !ok {
				return nil, fmt.Errorf("bar chart %q: hue field %q is not a group field", cfg.ID, cfg.Hue)
			}
			si, ok = hueOrd.Index(hue)
			if !ok {
				return nil, &UnboundHueError{cfg.Hue, hue}
			}
		} else if _, ok := hueOrd.Index(x); !ok {
			return nil, &UnboundHueError{cfg.X, x}
		}
		series[si].Values[xi] = y
		if spread != nil {
			d, ok := spread[groupID(rec.Group)]
			if !ok {
				return nil, fmt.Errorf("bar chart %q: spread aggregation lacks group %v", cfg.ID, rec.Group)
			}
			series[si].Errs[xi] = d
		}
	}

	return &BarSpec{
		Title: cfg.Title, XLabel: cfg.XLabel, YLabel: cfg.YLabel, ID: cfg.ID,
		Palette: cfg.Palette,
		XCats:   xcats,
		Series:  series,
	}, nil
}
