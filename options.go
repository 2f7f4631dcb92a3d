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

// Options selects between the exact arithmetic used by default and an
// integer-only variant, as used by pixel-based chart views.
type Options struct {
	// IntegerLayout truncates the baseline and the vertical scale to
	// integers.  With integer data this gives pixel-aligned layouts,
	// including the coarse steps of the scale when the canvas
	// is resized.
	IntegerLayout bool

	// TruncateAcceleration computes the reveal acceleration n/(n-i) with
	// integer division.  Points then move in a few discrete speed tiers
	// and some of them stop short of their full displacement.
	TruncateAcceleration bool
}

// Compat returns the options for integer-only arithmetic.
func Compat() Options {
	return Options{
		IntegerLayout:        true,
		TruncateAcceleration: true,
	}
}
