// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"golang.org/x/simstat/simchart"
)

// facetLayout computes the panel grid of a facet spec. A wrapped
// single-dimension spec folds its panel row after Wrap columns.
func facetLayout(s *simchart.FacetSpec) (rows, cols int) {
	if s.RowField != "" {
		return len(s.RowValues), len(s.ColValues)
	}
	n := len(s.ColValues)
	cols = n
	if s.Wrap > 0 && s.Wrap < n {
		cols = s.Wrap
	}
	if cols == 0 {
		return 0, 0
	}
	rows = (n + cols - 1) / cols
	return rows, cols
}

func (r *Renderer) renderFacet(s *simchart.FacetSpec, path string) error {
	rows, cols := facetLayout(s)
	if rows == 0 {
		return fmt.Errorf("facet %q: no panels", s.ID)
	}

	plots := make([][]*plot.Plot, rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, cols)
	}
	if s.RowField != "" {
		for ri, rv := range s.RowValues {
			for ci, cv := range s.ColValues {
				sub := s.Panels[ri][ci]
				if sub == nil {
					continue
				}
				p, err := subplot(sub)
				if err != nil {
					return fmt.Errorf("facet %q: %v", s.ID, err)
				}
				p.Title.Text = rv + " | " + cv
				plots[ri][ci] = p
			}
		}
	} else {
		for i, cv := range s.ColValues {
			sub := s.Panels[0][i]
			if sub == nil {
				continue
			}
			p, err := subplot(sub)
			if err != nil {
				return fmt.Errorf("facet %q: %v", s.ID, err)
			}
			p.Title.Text = fmt.Sprintf("%s = %s", s.ColField, cv)
			plots[i/cols][i%cols] = p
		}
	}

	panelW, panelH := r.panelSize()
	w := panelW * vg.Length(cols)
	h := panelH * vg.Length(rows)
	var titlePad vg.Length
	if s.Title != "" {
		titlePad = vg.Points(30)
		h += titlePad
	}

	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Points(8), PadY: vg.Points(8),
		PadTop: titlePad + vg.Points(4), PadBottom: vg.Points(4),
		PadLeft: vg.Points(4), PadRight: vg.Points(4),
	}
	return r.writeCanvas(path, w, h, func(dc draw.Canvas) {
		if s.Title != "" {
			drawSuperTitle(dc, s.Title)
		}
		canvases := plot.Align(plots, tiles, dc)
		for i := range plots {
			for j, p := range plots[i] {
				if p != nil {
					p.Draw(canvases[i][j])
				}
			}
		}
	})
}

// panelSize is the per-panel canvas size of a facet grid, somewhat
// smaller than a standalone chart.
func (r *Renderer) panelSize() (vg.Length, vg.Length) {
	w, h := r.size()
	return w / 2, h / 2
}

func drawSuperTitle(dc draw.Canvas, title string) {
	style := text.Style{
		Color:   color.Black,
		Font:    font.From(plotter.DefaultFont, vg.Points(14)),
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
	at := vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(4)}
	dc.FillText(style, at, title)
}
