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

import "seehuhn.de/go/geom/vec"

// Sink receives the geometry of one frame, in pixel coordinates with the
// origin at the top left corner of the canvas.
//
// The slices passed to Stroke and Mark are only valid for the duration of
// the call.
type Sink interface {
	// Stroke draws the polyline connecting the given points.
	Stroke(polyline []vec.Vec2)

	// Mark draws a marker at each of the given data points.
	Mark(vertices []vec.Vec2)
}

// ProgressSource reports the current animation progress.
type ProgressSource interface {
	// Progress returns a value in [0,1].  It returns 1 when no animation
	// is running.
	Progress() float64
}

// Done is a ProgressSource for a chart which is not animated.
var Done ProgressSource = fixedProgress(1)

type fixedProgress float64

func (p fixedProgress) Progress() float64 {
	return float64(p)
}
