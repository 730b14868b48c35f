// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simchart

import (
	"fmt"

	"golang.org/x/simstat/simfmt"
	"golang.org/x/simstat/simproc"
)

// A BoxGroup is one box of a box chart: the raw sample for one
// category plus its median annotation.
type BoxGroup struct {
	Category string

	// Values is the raw sample the renderer computes quartiles
	// from, in input order.
	Values []float64

	// Median is the annotation value. It is computed with the same
	// median reduction an equivalent standalone aggregation over the
	// same grouping would produce, so the drawn box median and the
	// printed value cannot diverge.
	Median float64
}

// A BoxSpec describes a box chart: one box per category, colored by
// the category's palette position, annotated with the median.
type BoxSpec struct {
	Title, XLabel, YLabel, ID string

	Palette *Palette

	// Groups appear in palette ordering position; categories with no
	// data are omitted.
	Groups []BoxGroup

	// AnnotFmt is the Sprintf verb for the median annotation,
	// "%.2f" if empty.
	AnnotFmt string
}

func (s *BoxSpec) OutputID() string { return s.ID }
func (s *BoxSpec) Kind() ChartKind  { return Box }
func (s *BoxSpec) subplot()         {}

// A BoxConfig declares the bindings of a box chart.
type BoxConfig struct {
	Title, XLabel, YLabel, ID string

	X string // categorical dimension, bound by Palette
	Y string // raw measure

	Palette  *Palette
	AnnotFmt string
}

// NewBox builds a box chart spec from raw (not pre-aggregated)
// records: boxes need the full per-category sample. Categories not
// bound by the palette fail with an *UnboundHueError.
func NewBox(records []simfmt.Record, cfg BoxConfig) (*BoxSpec, error) {
	if cfg.Palette == nil {
		return nil, fmt.Errorf("box chart %q: no palette supplied", cfg.ID)
	}
	grouping, err := simproc.Partition(records, []string{cfg.X})
	if err != nil {
		return nil, fmt.Errorf("box chart %q: %v", cfg.ID, err)
	}
	medians, err := simproc.Aggregate(records, []string{cfg.X}, []string{cfg.Y}, simproc.Median, nil)
	if err != nil {
		return nil, fmt.Errorf("box chart %q: %v", cfg.ID, err)
	}

	ord := cfg.Palette.Ordering()
	byCat := make(map[string]*BoxGroup)
	for _, g := range grouping.Groups() {
		cat := g.Key[0]
		if _, ok := ord.Index(cat); !ok {
			return nil, &UnboundHueError{cfg.X, cat}
		}
		xs, err := g.Values(cfg.Y, false)
		if err != nil {
			return nil, fmt.Errorf("box chart %q: %v", cfg.ID, err)
		}
		byCat[cat] = &BoxGroup{Category: cat, Values: xs}
	}
	for _, rec := range medians.Records {
		if g, ok := byCat[rec.Group[0]]; ok {
			g.Median = rec.Values[0]
		}
	}

	spec := &BoxSpec{
		Title: cfg.Title, XLabel: cfg.XLabel, YLabel: cfg.YLabel, ID: cfg.ID,
		Palette:  cfg.Palette,
		AnnotFmt: cfg.AnnotFmt,
	}
	for _, cat := range ord.Values() {
		if g, ok := byCat[cat]; ok {
			spec.Groups = append(spec.Groups, *g)
		}
	}
	return spec, nil
}
