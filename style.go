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

import "image/color"

// Default colors: translucent white, meant for a colored background.
var (
	DefaultCurveColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xa0}
	DefaultMarkerColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}
)

// Default sizes, in pixels.
const (
	DefaultStrokeWidth  = 2.0
	DefaultMarkerRadius = 4.0
)
