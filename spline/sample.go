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

package spline

import (
	"errors"
	"fmt"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// DefaultSteps is the number of line segments used per cubic segment
// when a [Sampler] has no explicit step count.
const DefaultSteps = 12

var (
	// ErrSegmentMismatch is returned when the x and y interpolants of a
	// curve have different numbers of segments.
	ErrSegmentMismatch = errors.New("x and y interpolants differ in length")

	// ErrInvalidSteps is returned for a non-positive step count.
	ErrInvalidSteps = errors.New("steps per segment must be positive")
)

// Sample evaluates the curve (xs[i](u), ys[i](u)) and appends the
// resulting polyline to dst[:0].
//
// The first point is segment 0 at u=0.  After that, every segment
// contributes the points u = 1/steps, 2/steps, ..., 1, so that the vertex
// shared by two adjacent segments appears only once.  For k samples,
// (k-1)·steps+1 points are produced.
func Sample(dst []vec.Vec2, xs, ys []Cubic, steps int) ([]vec.Vec2, error) {
	switch {
	case len(xs) != len(ys):
		return dst[:0], fmt.Errorf("spline: %d vs. %d segments: %w",
			len(xs), len(ys), ErrSegmentMismatch)
	case len(xs) == 0:
		return dst[:0], &PreconditionError{Samples: 1}
	case steps < 1:
		return dst[:0], fmt.Errorf("spline: steps=%d: %w", steps, ErrInvalidSteps)
	}

	dst = slices.Grow(dst[:0], len(xs)*steps+1)
	dst = append(dst, vec.Vec2{X: xs[0].Eval(0), Y: ys[0].Eval(0)})
	for i := range xs {
		cx, cy := xs[i], ys[i]
		for j := 1; j <= steps; j++ {
			u := float64(j) / float64(steps)
			dst = append(dst, vec.Vec2{X: cx.Eval(u), Y: cy.Eval(u)})
		}
	}
	return dst, nil
}

// Curve is the sampled form of one data series.
type Curve struct {
	// Vertices are the input points, unchanged, in input order.
	Vertices []vec.Vec2

	// Polyline approximates the interpolating curve through Vertices.
	Polyline []vec.Vec2
}

// Sampler fits and flattens curves through point sequences.
// All buffers, including the slices of the returned Curve, are reused by
// the next call to Sample.
//
// A Sampler is not safe for concurrent use.
type Sampler struct {
	// Steps is the number of line segments per cubic segment.
	// Zero means DefaultSteps.
	Steps int

	solver Solver
	xs, ys []Cubic
	curve  Curve
}

// Sample fits interpolants through (x[i], y[i]) and returns the sampled
// curve.  The returned Curve is only valid until the next call.
func (s *Sampler) Sample(x, y []float64) (*Curve, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("spline: %d x values vs. %d y values: %w",
			len(x), len(y), ErrSegmentMismatch)
	}

	var err error
	s.xs, err = s.solver.Solve(s.xs, x)
	if err != nil {
		return nil, err
	}
	s.ys, err = s.solver.Solve(s.ys, y)
	if err != nil {
		return nil, err
	}

	steps := s.Steps
	if steps == 0 {
		steps = DefaultSteps
	}
	s.curve.Polyline, err = Sample(s.curve.Polyline, s.xs, s.ys, steps)
	if err != nil {
		return nil, err
	}

	s.curve.Vertices = s.curve.Vertices[:0]
	for i := range x {
		s.curve.Vertices = append(s.curve.Vertices, vec.Vec2{X: x[i], Y: y[i]})
	}
	return &s.curve, nil
}
