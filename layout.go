// seehuhn.de/go/curveview - animated spline charts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package curveview

import (
	"math"
	"slices"
)

// rangePadding is added to the data range before computing the vertical
// scale, so that the curves never touch the edge of the canvas.
const rangePadding = 10

// Layout maps data values to vertical pixel offsets.
type Layout struct {
	// Baseline is the data value drawn on the horizontal centre line.
	Baseline float64

	// Scale is the number of pixels per data unit.
	Scale float64
}

// ComputeLayout derives the baseline and vertical scale for a chart with
// the given upper and lower series on a canvas of the given height.
//
// If either series is empty, the baseline is 0 and the empty series
// contributes 0 to the data range.  A non-positive height gives Scale 0,
// so that all points collapse onto the centre line.
func ComputeLayout(top, low []float64, height float64, opt Options) Layout {
	var maxTop, minLow float64
	if len(top) > 0 {
		maxTop = slices.Max(top)
	}
	if len(low) > 0 {
		minLow = slices.Min(low)
	}

	l := Layout{
		Baseline: (maxTop + minLow) / 2,
	}
	if height > 0 {
		l.Scale = height / (math.Abs(maxTop-minLow) + rangePadding)
	}
	if len(top) == 0 || len(low) == 0 {
		l.Baseline = 0
	}

	if opt.IntegerLayout {
		l.Baseline = math.Trunc(l.Baseline)
		l.Scale = math.Trunc(l.Scale)
	}
	return l
}
