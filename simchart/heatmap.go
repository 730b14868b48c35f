// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simchart

import (
	"golang.org/x/simstat/simproc"
)

// A HeatmapSpec describes a matrix chart over a PivotMatrix: one
// colored cell per (row, column) pair, optionally annotated with the
// cell value.
type HeatmapSpec struct {
	Title, XLabel, YLabel, ID string

	Matrix *simproc.PivotMatrix

	// RowOrder and ColOrder are the final display orders. They
	// default to the matrix's natural key ordering.
	RowOrder, ColOrder []string

	// Scheme names the ColorBrewer sequential scheme coloring the
	// cells, "Blues" if empty.
	Scheme string

	// AnnotFmt is the Sprintf verb annotating each cell with its
	// value; empty disables annotations.
	AnnotFmt string
}

func (s *HeatmapSpec) OutputID() string { return s.ID }
func (s *HeatmapSpec) Kind() ChartKind  { return Heatmap }

// A HeatmapConfig declares the presentation of a heatmap.
type HeatmapConfig struct {
	Title, XLabel, YLabel, ID string

	// RowOrder and ColOrder override the matrix's natural key
	// ordering. When supplied, they must cover every matrix key;
	// a missing key fails with an *UnknownCategoryError.
	RowOrder, ColOrder []string

	Scheme   string
	AnnotFmt string
}

// NewHeatmap builds a heatmap spec directly from a PivotMatrix.
func NewHeatmap(m *simproc.PivotMatrix, cfg HeatmapConfig) (*HeatmapSpec, error) {
	rows, err := resolveOrder(m.Rows, cfg.RowOrder)
	if err != nil {
		return nil, err
	}
	cols, err := resolveOrder(m.Cols, cfg.ColOrder)
	if err != nil {
		return nil, err
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "Blues"
	}
	return &HeatmapSpec{
		Title: cfg.Title, XLabel: cfg.XLabel, YLabel: cfg.YLabel, ID: cfg.ID,
		Matrix:   m,
		RowOrder: rows,
		ColOrder: cols,
		Scheme:   scheme,
		AnnotFmt: cfg.AnnotFmt,
	}, nil
}

func resolveOrder(keys, explicit []string) ([]string, error) {
	if explicit == nil {
		return keys, nil
	}
	ord, err := NewOrdering(keys, explicit)
	if err != nil {
		return nil, err
	}
	return ord.Values(), nil
}
