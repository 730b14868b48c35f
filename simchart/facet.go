// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simchart

import (
	"fmt"
)

// A FacetSpec describes a grid of sub-panels split by one or two
// categorical dimensions. Each panel is itself a line, bar, or box
// spec; panel order follows the same ordering rules as hue.
type FacetSpec struct {
	Title, ID string

	// RowField and ColField name the faceting dimensions. RowField
	// is empty for a single-dimension grid, which lays its panels
	// out left to right, wrapping after Wrap columns.
	RowField, ColField string

	// RowValues and ColValues are the facet categories in ordering
	// position. RowValues is [""] for a single-dimension grid.
	RowValues, ColValues []string

	// Wrap caps the number of panel columns of a single-dimension
	// grid; 0 means no wrapping.
	Wrap int

	// Panels is indexed [row][col], aligned with RowValues and
	// ColValues. A nil entry is an empty panel.
	Panels [][]Subplot
}

func (s *FacetSpec) OutputID() string { return s.ID }
func (s *FacetSpec) Kind() ChartKind  { return FacetGrid }

// A FacetPanel pairs a facet category value with its panel.
type FacetPanel struct {
	Value string
	Plot  Subplot
}

// NewFacetWrap builds a single-dimension facet grid: one panel per
// category of field, laid out in ordering position and wrapped after
// wrap columns. A panel value not bound by ord fails with an
// *UnboundHueError.
func NewFacetWrap(title, id, field string, ord *Ordering, wrap int, panels []FacetPanel) (*FacetSpec, error) {
	byVal := make(map[string]Subplot, len(panels))
	for _, p := range panels {
		if _, ok := ord.Index(p.Value); !ok {
			return nil, &UnboundHueError{field, p.Value}
		}
		if _, dup := byVal[p.Value]; dup {
			return nil, fmt.Errorf("facet %q: duplicate panel for %q", id, p.Value)
		}
		byVal[p.Value] = p.Plot
	}

	spec := &FacetSpec{
		Title: title, ID: id,
		ColField:  field,
		RowValues: []string{""},
		Wrap:      wrap,
		Panels:    [][]Subplot{nil},
	}
	for _, v := range ord.Values() {
		if p, ok := byVal[v]; ok {
			spec.ColValues = append(spec.ColValues, v)
			spec.Panels[0] = append(spec.Panels[0], p)
		}
	}
	return spec, nil
}

// A GridPanel places a panel at a (row, col) category pair of a
// two-dimension facet grid.
type GridPanel struct {
	Row, Col string
	Plot     Subplot
}

// NewFacetGrid builds a two-dimension facet grid with rows ordered by
// rowOrd and columns by colOrd. Cells without a panel stay empty.
func NewFacetGrid(title, id, rowField, colField string, rowOrd, colOrd *Ordering, panels []GridPanel) (*FacetSpec, error) {
	spec := &FacetSpec{
		Title: title, ID: id,
		RowField: rowField, ColField: colField,
		RowValues: rowOrd.Values(),
		ColValues: colOrd.Values(),
	}
	spec.Panels = make([][]Subplot, len(spec.RowValues))
	for i := range spec.Panels {
		spec.Panels[i] = make([]Subplot, len(spec.ColValues))
	}
	for _, p := range panels {
		ri, ok := rowOrd.Index(p.Row)
		if !ok {
			return nil, &UnboundHueError{rowField, p.Row}
		}
		ci, ok := colOrd.Index(p.Col)
		if !ok {
			return nil, &UnboundHueError{colField, p.Col}
		}
		if spec.Panels[ri][ci] != nil {
			return nil, fmt.Errorf("facet %q: duplicate panel for (%q, %q)", id, p.Row, p.Col)
		}
		spec.Panels[ri][ci] = p.Plot
	}
	return spec, nil
}
