// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplot

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// bars draws one hue of a grouped bar chart: one bar per x category at
// nominal positions 0..n-1, shifted sideways by offset so the hues of
// a group sit next to each other. A NaN value leaves its category
// empty. errs, when non-nil, adds a symmetric error whisker per bar.
type bars struct {
	values []float64
	errs   []float64

	width  vg.Length
	offset vg.Length
	color  color.Color
}

var (
	_ plot.Plotter     = (*bars)(nil)
	_ plot.DataRanger  = (*bars)(nil)
	_ plot.Thumbnailer = (*bars)(nil)
)

func newBars(values, errs []float64, width vg.Length, col color.Color) *bars {
	return &bars{values: values, errs: errs, width: width, color: col}
}

func nanValues(n int) []float64 {
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = math.NaN()
	}
	return vs
}

func (b *bars) err(i int) float64 {
	if b.errs == nil {
		return math.NaN()
	}
	return b.errs[i]
}

func (b *bars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	whisker := draw.LineStyle{Color: color.Black, Width: vg.Points(1)}

	for i, v := range b.values {
		if math.IsNaN(v) {
			continue
		}
		x := trX(float64(i)) + b.offset
		y0, y := trY(0), trY(v)

		poly := []vg.Point{
			{X: x - b.width/2, Y: y0},
			{X: x - b.width/2, Y: y},
			{X: x + b.width/2, Y: y},
			{X: x + b.width/2, Y: y0},
		}
		c.FillPolygon(b.color, c.ClipPolygonY(poly))

		if e := b.err(i); !math.IsNaN(e) && e > 0 {
			lo, hi := trY(v-e), trY(v+e)
			c.StrokeLine2(whisker, x, lo, x, hi)
			cw := b.width / 3
			c.StrokeLine2(whisker, x-cw, lo, x+cw, lo)
			c.StrokeLine2(whisker, x-cw, hi, x+cw, hi)
		}
	}
}

func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -0.5, float64(len(b.values))-0.5
	ymin, ymax = 0, 0
	for i, v := range b.values {
		if math.IsNaN(v) {
			continue
		}
		lo, hi := v, v
		if e := b.err(i); !math.IsNaN(e) {
			lo, hi = v-e, v+e
		}
		ymin = math.Min(ymin, lo)
		ymax = math.Max(ymax, hi)
	}
	return xmin, xmax, ymin, ymax
}

func (b *bars) Thumbnail(c *draw.Canvas) {
	poly := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.color, c.ClipPolygonY(poly))
}
