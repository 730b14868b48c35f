// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simplot renders chart specs built by package simchart into
// PNG files with gonum/plot.
//
// The renderer holds no mutable state across charts: every spec fully
// describes its chart, including colors and category order, so
// independent specs may be rendered from separate goroutines if the
// caller wants to.
package simplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"golang.org/x/simstat/simchart"
)

// A Renderer writes chart artifacts into one output directory.
type Renderer struct {
	// Dir is the output directory. It must exist.
	Dir string

	// Width and Height are the canvas size of a single-panel chart,
	// and the per-panel size of a facet grid. Zero values default
	// to 9x6 inches.
	Width, Height vg.Length

	// DPI is the raster resolution, 300 if zero.
	DPI int
}

func (r *Renderer) size() (vg.Length, vg.Length) {
	w, h := r.Width, r.Height
	if w == 0 {
		w = 9 * vg.Inch
	}
	if h == 0 {
		h = 6 * vg.Inch
	}
	return w, h
}

func (r *Renderer) dpi() int {
	if r.DPI == 0 {
		return 300
	}
	return r.DPI
}

// Render draws one spec and returns the path of the written file,
// <Dir>/<OutputID>.png.
func (r *Renderer) Render(spec simchart.Spec) (string, error) {
	path := filepath.Join(r.Dir, spec.OutputID()+".png")
	switch s := spec.(type) {
	case *simchart.FacetSpec:
		return path, r.renderFacet(s, path)
	case *simchart.HeatmapSpec:
		p, err := heatmapPlot(s)
		if err != nil {
			return "", err
		}
		return path, r.writePNG(p, path)
	case simchart.Subplot:
		p, err := subplot(s)
		if err != nil {
			return "", err
		}
		return path, r.writePNG(p, path)
	}
	return "", fmt.Errorf("unsupported chart spec %T", spec)
}

// RenderAll draws specs in order and returns the written paths.
func (r *Renderer) RenderAll(specs []simchart.Spec) ([]string, error) {
	paths := make([]string, 0, len(specs))
	for _, s := range specs {
		p, err := r.Render(s)
		if err != nil {
			return nil, fmt.Errorf("rendering %q: %w", s.OutputID(), err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (r *Renderer) writePNG(p *plot.Plot, path string) error {
	w, h := r.size()
	return r.writeCanvas(path, w, h, func(dc draw.Canvas) {
		p.Draw(dc)
	})
}

func (r *Renderer) writeCanvas(path string, w, h vg.Length, drawFn func(draw.Canvas)) error {
	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(r.dpi()),
		vgimg.UseBackgroundColor(color.White),
	)
	drawFn(draw.New(c))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// subplot builds the plot for a single-panel spec.
func subplot(s simchart.Subplot) (*plot.Plot, error) {
	switch s := s.(type) {
	case *simchart.LineSpec:
		return linePlot(s)
	case *simchart.BarSpec:
		return barPlot(s)
	case *simchart.BoxSpec:
		return boxPlot(s)
	}
	return nil, fmt.Errorf("unsupported subplot spec %T", s)
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)
	return p
}

func linePlot(s *simchart.LineSpec) (*plot.Plot, error) {
	p := newPlot(s.Title, s.XLabel, s.YLabel)
	p.X.Tick.Marker = scaledTicks{}

	for _, sr := range s.Series {
		col := seriesColor(s.Palette, sr.Hue)

		if sr.Lo != nil {
			band := make(plotter.XYs, 0, 2*len(sr.Points))
			for i, pt := range sr.Points {
				band = append(band, plotter.XY{X: pt.X, Y: sr.Hi[i]})
			}
			for i := len(sr.Points) - 1; i >= 0; i-- {
				band = append(band, plotter.XY{X: sr.Points[i].X, Y: sr.Lo[i]})
			}
			poly, err := plotter.NewPolygon(band)
			if err != nil {
				return nil, err
			}
			poly.Color = withAlpha(col, 0x33)
			poly.LineStyle.Color = color.Transparent
			p.Add(poly)
		}

		xys := make(plotter.XYs, len(sr.Points))
		for i, pt := range sr.Points {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		l, pts, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		l.Color = col
		pts.Color = col
		pts.Shape = draw.CircleGlyph{}
		pts.Radius = vg.Points(2)
		p.Add(l, pts)
		if sr.Hue != "" {
			p.Legend.Add(sr.Hue, l, pts)
		}
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

func boxPlot(s *simchart.BoxSpec) (*plot.Plot, error) {
	p := newPlot(s.Title, s.XLabel, s.YLabel)

	cats := make([]string, len(s.Groups))
	for i, g := range s.Groups {
		cats[i] = g.Category
		b, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(g.Values))
		if err != nil {
			return nil, err
		}
		if col, ok := s.Palette.Color(g.Category); ok {
			b.FillColor = col
		}
		p.Add(b)
	}

	format := s.AnnotFmt
	if format == "" {
		format = "%.2f"
	}
	var xyl plotter.XYLabels
	for i, g := range s.Groups {
		xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(i), Y: g.Median})
		xyl.Labels = append(xyl.Labels, fmt.Sprintf(format, g.Median))
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	p.NominalX(cats...)
	return p, nil
}

func barPlot(s *simchart.BarSpec) (*plot.Plot, error) {
	p := newPlot(s.Title, s.XLabel, s.YLabel)

	barWidth := vg.Points(18)
	barSpacing := vg.Points(3)
	groupWidth := (barWidth + barSpacing) * vg.Length(len(s.Series)-1)

	for i, sr := range s.Series {
		hue := sr.Hue
		if hue == "" && len(s.XCats) > 0 {
			// Single-series charts color each bar by its x category.
			return singleBarPlot(p, s, barWidth)
		}
		col := seriesColor(s.Palette, hue)
		b := newBars(sr.Values, sr.Errs, barWidth, col)
		b.offset = (barWidth+barSpacing)*vg.Length(i) - groupWidth/2
		p.Add(b)
		p.Legend.Add(hue, b)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.NominalX(s.XCats...)
	return p, nil
}

// singleBarPlot draws an unhued bar chart, one bar per x category in
// its palette color.
func singleBarPlot(p *plot.Plot, s *simchart.BarSpec, barWidth vg.Length) (*plot.Plot, error) {
	sr := s.Series[0]
	for i, cat := range s.XCats {
		vals := nanValues(len(s.XCats))
		vals[i] = sr.Values[i]
		var errs []float64
		if sr.Errs != nil {
			errs = nanValues(len(s.XCats))
			errs[i] = sr.Errs[i]
		}
		b := newBars(vals, errs, barWidth, seriesColor(s.Palette, cat))
		p.Add(b)
	}
	p.NominalX(s.XCats...)
	return p, nil
}

func seriesColor(pal *simchart.Palette, category string) color.Color {
	if pal != nil {
		if c, ok := pal.Color(category); ok {
			return c
		}
	}
	return color.Black
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), a}
}
