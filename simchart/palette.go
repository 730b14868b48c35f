// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simchart

import (
	"image/color"

	"gonum.org/v1/plot/palette/brewer"
)

// A Palette assigns one color to each category of an Ordering. Like
// the Ordering it wraps, it is immutable and shared read-only across
// all spec builds of a run; building it twice from the same inputs
// yields identical assignments.
type Palette struct {
	ordering *Ordering
	colors   []color.Color
}

// NewPalette assigns colors to the ordering's categories by position,
// wrapping around when there are fewer colors than categories.
// It panics on an empty color list.
func NewPalette(o *Ordering, colors []color.Color) *Palette {
	if len(colors) == 0 {
		panic("empty palette")
	}
	assigned := make([]color.Color, o.Len())
	for i := range assigned {
		assigned[i] = colors[i%len(colors)]
	}
	return &Palette{o, assigned}
}

// Qualitative builds a Palette from a named ColorBrewer qualitative
// scheme such as "Set2" or "Paired". Brewer schemes define 3 to at
// most 12 colors; requests outside a scheme's range are clamped and
// the assignment wraps, keeping the result deterministic.
func Qualitative(o *Ordering, scheme string) (*Palette, error) {
	n := o.Len()
	if n < 3 {
		n = 3
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, scheme, n)
	for err != nil && n > 3 {
		n--
		pal, err = brewer.GetPalette(brewer.TypeQualitative, scheme, n)
	}
	if err != nil {
		return nil, err
	}
	return NewPalette(o, pal.Colors()), nil
}

// Ordering returns the ordering this palette is bound to.
func (p *Palette) Ordering() *Ordering { return p.ordering }

// Color returns the color assigned to category v.
func (p *Palette) Color(v string) (color.Color, bool) {
	i, ok := p.ordering.Index(v)
	if !ok {
		return nil, false
	}
	return p.colors[i], true
}

// Colors returns the assigned colors in ordering position.
// The caller must not modify the returned slice.
func (p *Palette) Colors() []color.Color { return p.colors }
