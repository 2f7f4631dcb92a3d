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
)

// ErrTooFewSamples is returned when an interpolant is requested for fewer
// than two samples.
var ErrTooFewSamples = errors.New("at least two samples required")

// PreconditionError reports a call with an unusable number of samples.
// It unwraps to [ErrTooFewSamples].
type PreconditionError struct {
	Samples int // number of samples passed by the caller
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("spline: %d sample(s) given: %v", e.Samples, ErrTooFewSamples)
}

func (e *PreconditionError) Unwrap() error {
	return ErrTooFewSamples
}

// Solver computes cubic interpolants through scalar samples.
//
// The scratch buffers of a Solver grow as needed but never shrink, so a
// Solver that is reused for series of the same length does not allocate.
// A Solver is not safe for concurrent use.
type Solver struct {
	gamma []float64 // reduction factors of the forward sweep
	delta []float64 // reduced right-hand side
	d     []float64 // first derivative at each sample
}

// Solve is a convenience wrapper which fits an interpolant using a
// temporary [Solver].
func Solve(values []float64) ([]Cubic, error) {
	var s Solver
	return s.Solve(nil, values)
}

// Solve fits a piecewise cubic through values and appends its segments
// to dst[:0]. For n+1 values, exactly n segments are produced.
//
// Segment i starts at values[i] and ends at values[i+1], and the first
// derivatives of adjacent segments agree at every interior sample. The end
// slopes are determined by the boundary rows of the tridiagonal system
// rather than by a zero-curvature condition.
func (s *Solver) Solve(dst []Cubic, values []float64) ([]Cubic, error) {
	if len(values) < 2 {
		return dst[:0], &PreconditionError{Samples: len(values)}
	}
	n := len(values) - 1
	x := values

	s.gamma = slices.Grow(s.gamma[:0], n+1)[:n+1]
	s.delta = slices.Grow(s.delta[:0], n+1)[:n+1]
	s.d = slices.Grow(s.d[:0], n+1)[:n+1]
	gamma, delta, d := s.gamma, s.delta, s.d

	// Forward sweep (Thomas algorithm).  The interior rows of the system
	// are d[i-1] + 4 d[i] + d[i+1] = 3 (x[i+1] - x[i-1]), the boundary
	// rows are 2 d[0] + d[1] = 3 (x[1] - x[0]) and
	// d[n-1] + 2 d[n] = 3 (x[n] - x[n-1]).
	gamma[0] = 0.5
	for i := 1; i < n; i++ {
		gamma[i] = 1 / (4 - gamma[i-1])
	}
	gamma[n] = 1 / (2 - gamma[n-1])

	delta[0] = 3 * (x[1] - x[0]) * gamma[0]
	for i := 1; i < n; i++ {
		delta[i] = (3*(x[i+1]-x[i-1]) - delta[i-1]) * gamma[i]
	}
	delta[n] = (3*(x[n]-x[n-1]) - delta[n-1]) * gamma[n]

	// Back substitution.
	d[n] = delta[n]
	for i := n - 1; i >= 0; i-- {
		d[i] = delta[i] - gamma[i]*d[i+1]
	}

	dst = slices.Grow(dst[:0], n)
	for i := range n {
		dst = append(dst, Cubic{
			A: x[i],
			B: d[i],
			C: 3*(x[i+1]-x[i]) - 2*d[i] - d[i+1],
			D: 2*(x[i]-x[i+1]) + d[i] + d[i+1],
		})
	}
	return dst, nil
}
