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

// Package spline fits piecewise-cubic interpolants through ordered samples
// and flattens them into polylines.
//
// Each axis of a curve is fitted independently: the x coordinates of the
// data points give one interpolant, the y coordinates another, and both are
// evaluated at the same local parameter to obtain points on the curve.
package spline

// Cubic is one segment of a piecewise-cubic interpolant.
// Its value at the local parameter u ∈ [0,1] is A + B·u + C·u² + D·u³.
type Cubic struct {
	A, B, C, D float64
}

// Eval returns the value of the segment at u.
func (c Cubic) Eval(u float64) float64 {
	return ((c.D*u+c.C)*u+c.B)*u + c.A
}

// Deriv returns the first derivative of the segment with respect to u.
func (c Cubic) Deriv(u float64) float64 {
	return (3*c.D*u+2*c.C)*u + c.B
}
