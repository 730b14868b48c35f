// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
)

// scaledTicks formats numeric axis labels with metric prefixes so
// axes spanning large ranges (say, list lengths up to 100000) stay
// readable. Tick positions come from the default ticker.
type scaledTicks struct{}

var _ plot.Ticker = scaledTicks{}

func (scaledTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label != "" {
			ticks[i].Label = scaleLabel(t.Value)
		}
	}
	return ticks
}

func scaleLabel(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%gG", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%gM", v/1e6)
	case abs >= 1e4:
		return fmt.Sprintf("%gk", v/1e3)
	}
	return fmt.Sprintf("%g", v)
}
