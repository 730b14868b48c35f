// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simproc

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// A DuplicateCellError reports two aggregated records that map to the
// same (row, column) pivot cell with different values. The caller must
// pre-aggregate duplicates (for example with a mean) before pivoting.
type DuplicateCellError struct {
	Row, Col string
}

func (e *DuplicateCellError) Error() string {
	return fmt.Sprintf("duplicate pivot cell (%s, %s) with conflicting values", e.Row, e.Col)
}

// A PivotMatrix is a 2-D reshape of aggregated data: one numeric cell
// per (row dimension value, column dimension value) pair. Missing
// cells hold NaN, the explicit no-data sentinel; they are never
// silently zero.
type PivotMatrix struct {
	RowField, ColField, ValueField string

	// Rows and Cols are the distinct key values in natural order:
	// numeric ascending when every value parses as a number,
	// first-occurrence order otherwise.
	Rows, Cols []string

	cells []float64 // len(Rows)*len(Cols), row major
}

// Pivot reshapes a into a matrix with rowField values as rows,
// colField values as columns, and the reduced valueField measure as
// cells. Both dimension fields must be group fields of a, and
// valueField one of its measures. Conflicting duplicate (row, col)
// pairs fail with a *DuplicateCellError; duplicate pairs holding the
// identical value collapse silently.
func Pivot(a *Aggregation, rowField, colField, valueField string) (*PivotMatrix, error) {
	m := &PivotMatrix{RowField: rowField, ColField: colField, ValueField: valueField}

	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	type cell struct {
		row, col string
		v        float64
	}
	var cells []cell
	for _, rec := range a.Records {
		row, ok := a.Dim(rec, rowField)
		if !ok {
			return nil, fmt.Errorf("pivot row field %q is not a group field", rowField)
		}
		col, ok := a.Dim(rec, colField)
		if !ok {
			return nil, fmt.Errorf("pivot column field %q is not a group field", colField)
		}
		v, ok := a.Measure(rec, valueField)
		if !ok {
			return nil, fmt.Errorf("pivot value field %q is not an aggregated measure", valueField)
		}
		if _, ok := rowIdx[row]; !ok {
			rowIdx[row] = len(m.Rows)
			m.Rows = append(m.Rows, row)
		}
		if _, ok := colIdx[col]; !ok {
			colIdx[col] = len(m.Cols)
			m.Cols = append(m.Cols, col)
		}
		cells = append(cells, cell{row, col, v})
	}

	sortNatural(m.Rows, rowIdx)
	sortNatural(m.Cols, colIdx)

	m.cells = make([]float64, len(m.Rows)*len(m.Cols))
	for i := range m.cells {
		m.cells[i] = math.NaN()
	}
	for _, c := range cells {
		i := rowIdx[c.row]*len(m.Cols) + colIdx[c.col]
		if prev := m.cells[i]; !math.IsNaN(prev) && prev != c.v {
			return nil, &DuplicateCellError{c.row, c.col}
		}
		m.cells[i] = c.v
	}
	return m, nil
}

// At returns the cell at row index i and column index j, or NaN if the
// cell has no data.
func (m *PivotMatrix) At(i, j int) float64 {
	return m.cells[i*len(m.Cols)+j]
}

// Lookup returns the cell for the given row and column key values.
// It reports false for unknown keys or no-data cells.
func (m *PivotMatrix) Lookup(row, col string) (float64, bool) {
	i := indexOf(m.Rows, row)
	j := indexOf(m.Cols, col)
	if i < 0 || j < 0 {
		return 0, false
	}
	v := m.At(i, j)
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

// sortNatural orders keys numerically ascending when every key parses
// as a float, rebuilding idx to match. Non-numeric key sets keep their
// first-occurrence order.
func sortNatural(keys []string, idx map[string]int) {
	nums := make(map[string]float64, len(keys))
	for _, k := range keys {
		v, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return
		}
		nums[k] = v
	}
	sort.Slice(keys, func(i, j int) bool {
		return nums[keys[i]] < nums[keys[j]]
	})
	for i, k := range keys {
		idx[k] = i
	}
}
