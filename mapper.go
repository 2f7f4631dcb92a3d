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

// MapY converts data values into vertical pixel coordinates for the given
// animation progress.  See [MapYInto] for details.
func MapY(values []float64, progress float64, l Layout, height float64, opt Options) []float64 {
	return MapYInto(nil, values, progress, l, height, opt)
}

// MapYInto converts data values into vertical pixel coordinates for the
// given animation progress and appends them to dst[:0].
//
// Point i of n starts to move away from the centre line height/2 once
// progress reaches i/n.  From there it accelerates by n/(n-i), so that
// every point arrives at its final position (Baseline-values[i])·Scale
// below the centre line exactly when progress reaches 1.  Progress is
// clamped to [0,1]; NaN counts as 1, the state without animation.
func MapYInto(dst, values []float64, progress float64, l Layout, height float64, opt Options) []float64 {
	if math.IsNaN(progress) {
		progress = 1
	}
	progress = min(max(progress, 0), 1)

	n := len(values)
	mid := height / 2
	dst = slices.Grow(dst[:0], n)
	for i, v := range values {
		c := float64(i) / float64(n)
		if progress < c {
			dst = append(dst, mid)
			continue
		}

		var accel float64
		if opt.TruncateAcceleration {
			accel = float64(n / (n - i))
		} else {
			accel = float64(n) / float64(n-i)
		}
		diff := (progress - c) * accel
		space := (l.Baseline - v) * l.Scale
		dst = append(dst, mid+space*diff)
	}
	return dst
}
