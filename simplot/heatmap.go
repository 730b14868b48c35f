// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"golang.org/x/simstat/simchart"
)

// matrixGrid adapts a heatmap spec to plotter.GridXYZ. Display rows
// run top to bottom in spec order, so row 0 of the spec maps to the
// highest y position.
type matrixGrid struct {
	s *simchart.HeatmapSpec
}

func (g matrixGrid) Dims() (c, r int) { return len(g.s.ColOrder), len(g.s.RowOrder) }
func (g matrixGrid) X(c int) float64  { return float64(c) }
func (g matrixGrid) Y(r int) float64  { return float64(r) }

func (g matrixGrid) Z(c, r int) float64 {
	row := g.s.RowOrder[len(g.s.RowOrder)-1-r]
	col := g.s.ColOrder[c]
	v, ok := g.s.Matrix.Lookup(row, col)
	if !ok {
		return math.NaN()
	}
	return v
}

func heatmapPlot(s *simchart.HeatmapSpec) (*plot.Plot, error) {
	pal, err := brewer.GetPalette(brewer.TypeSequential, s.Scheme, 9)
	if err != nil {
		return nil, fmt.Errorf("heatmap %q: %v", s.ID, err)
	}

	grid := matrixGrid{s}
	hm := plotter.NewHeatMap(grid, pal)

	// NewHeatMap derives its range from every cell, and empty cells
	// are NaN. Recompute it over the finite cells only.
	hm.Min, hm.Max = finiteRange(grid)

	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Add(hm)

	p.X.Tick.Marker = categoryTicks(s.ColOrder, false)
	p.Y.Tick.Marker = categoryTicks(s.RowOrder, true)

	if s.AnnotFmt != "" {
		if err := annotateCells(p, grid, s.AnnotFmt); err != nil {
			return nil, fmt.Errorf("heatmap %q: %v", s.ID, err)
		}
	}
	return p, nil
}

func finiteRange(g matrixGrid) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	cols, rows := g.Dims()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			v := g.Z(c, r)
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if min > max {
		min, max = 0, 1
	} else if min == max {
		max = min + 1
	}
	return min, max
}

// categoryTicks places one labeled tick per category at the cell
// centers. reversed lays labels out high to low, matching the row
// orientation of matrixGrid.
func categoryTicks(cats []string, reversed bool) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(cats))
	for i, c := range cats {
		pos := float64(i)
		if reversed {
			pos = float64(len(cats) - 1 - i)
		}
		ticks[i] = plot.Tick{Value: pos, Label: c}
	}
	return plot.ConstantTicks(ticks)
}

func annotateCells(p *plot.Plot, g matrixGrid, format string) error {
	var xyl plotter.XYLabels
	cols, rows := g.Dims()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			v := g.Z(c, r)
			if math.IsNaN(v) {
				continue
			}
			xyl.XYs = append(xyl.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			xyl.Labels = append(xyl.Labels, fmt.Sprintf(format, v))
		}
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)
	return nil
}
