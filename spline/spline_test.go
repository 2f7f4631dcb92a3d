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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/geom/vec"
)

const eps = 1e-9

var testSeries = [][]float64{
	{0, 1},
	{1, 1},
	{3, -2},
	{28, 31, 27, 23, 24, 27},
	{22, 23, 19, 19, 20, 21},
	{0, 10, 0, 10, 0, 10, 0},
	{-5.5, 2.25, 100, 0.125},
	{1e3, 1e3 + 1e-3, 1e3, 1e3 - 1e-3},
}

func TestSolveInterpolates(t *testing.T) {
	for _, values := range testSeries {
		cubics, err := Solve(values)
		if err != nil {
			t.Fatal(err)
		}
		if len(cubics) != len(values)-1 {
			t.Fatalf("%v: got %d segments, want %d", values, len(cubics), len(values)-1)
		}
		for i, c := range cubics {
			if got := c.Eval(0); math.Abs(got-values[i]) > eps {
				t.Errorf("%v: segment %d at u=0: got %g, want %g", values, i, got, values[i])
			}
			if got := c.Eval(1); math.Abs(got-values[i+1]) > eps*max(1, math.Abs(values[i+1])) {
				t.Errorf("%v: segment %d at u=1: got %g, want %g", values, i, got, values[i+1])
			}
		}
	}
}

func TestSolveDerivativeContinuity(t *testing.T) {
	for _, values := range testSeries {
		cubics, err := Solve(values)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(cubics); i++ {
			left := cubics[i-1].Deriv(1)
			right := cubics[i].Deriv(0)
			if math.Abs(left-right) > eps*max(1, math.Abs(left)) {
				t.Errorf("%v: junction %d: slope %g != %g", values, i, left, right)
			}
		}
	}
}

func TestSolveTwoSamples(t *testing.T) {
	cubics, err := Solve([]float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	want := []Cubic{{A: 0, B: 1, C: 0, D: 0}}
	if d := cmp.Diff(want, cubics, cmpopts.EquateApprox(0, eps)); d != "" {
		t.Error(d)
	}
	if got := cubics[0].Eval(1); math.Abs(got-1) > eps {
		t.Errorf("Eval(1) = %g, want 1", got)
	}
}

func TestSolveConstant(t *testing.T) {
	cubics, err := Solve([]float64{4, 4, 4, 4})
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range cubics {
		if c != (Cubic{A: 4}) {
			t.Errorf("segment %d: got %+v, want constant 4", i, c)
		}
	}
}

func TestSolveTooFewSamples(t *testing.T) {
	for _, values := range [][]float64{nil, {}, {7}} {
		_, err := Solve(values)
		if !errors.Is(err, ErrTooFewSamples) {
			t.Errorf("%v: got error %v, want ErrTooFewSamples", values, err)
		}
		var pe *PreconditionError
		if !errors.As(err, &pe) || pe.Samples != len(values) {
			t.Errorf("%v: got %#v, want PreconditionError with %d samples", values, err, len(values))
		}
	}
}

func TestSolverReuse(t *testing.T) {
	var s Solver
	var buf []Cubic
	for _, values := range testSeries {
		var err error
		buf, err = s.Solve(buf, values)
		if err != nil {
			t.Fatal(err)
		}
		want, _ := Solve(values)
		if d := cmp.Diff(want, buf); d != "" {
			t.Errorf("%v: reused solver differs:\n%s", values, d)
		}
	}
}

func TestSolverNoAllocs(t *testing.T) {
	var s Solver
	values := testSeries[3]
	buf, _ := s.Solve(nil, values)
	allocs := testing.AllocsPerRun(100, func() {
		buf, _ = s.Solve(buf, values)
	})
	if allocs != 0 {
		t.Errorf("got %g allocations per run, want 0", allocs)
	}
}

func TestSampleCount(t *testing.T) {
	for _, k := range []int{2, 3, 6, 10} {
		for _, steps := range []int{1, 2, 12} {
			x := make([]float64, k)
			y := make([]float64, k)
			for i := range k {
				x[i] = float64(10 * i)
				y[i] = float64(i * i % 7)
			}
			xs, _ := Solve(x)
			ys, _ := Solve(y)
			pts, err := Sample(nil, xs, ys, steps)
			if err != nil {
				t.Fatal(err)
			}
			if want := (k-1)*steps + 1; len(pts) != want {
				t.Errorf("k=%d steps=%d: got %d points, want %d", k, steps, len(pts), want)
			}
			for i := 1; i < len(pts); i++ {
				if pts[i].X <= pts[i-1].X {
					t.Errorf("k=%d steps=%d: points %d and %d not distinct/ordered", k, steps, i-1, i)
				}
			}
		}
	}
}

func TestSampleHitsVertices(t *testing.T) {
	x := []float64{10, 30, 50, 70, 90, 110}
	y := []float64{28, 31, 27, 23, 24, 27}
	xs, _ := Solve(x)
	ys, _ := Solve(y)
	const steps = 12
	pts, err := Sample(nil, xs, ys, steps)
	if err != nil {
		t.Fatal(err)
	}
	for i := range x {
		got := pts[i*steps]
		want := vec.Vec2{X: x[i], Y: y[i]}
		if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, eps)); d != "" {
			t.Errorf("vertex %d:\n%s", i, d)
		}
	}
}

func TestSampleErrors(t *testing.T) {
	one := []Cubic{{A: 1}}
	two := []Cubic{{A: 1}, {A: 2}}
	tests := []struct {
		xs, ys []Cubic
		steps  int
		want   error
	}{
		{one, two, 12, ErrSegmentMismatch},
		{nil, nil, 12, ErrTooFewSamples},
		{one, one, 0, ErrInvalidSteps},
		{one, one, -3, ErrInvalidSteps},
	}
	for i, test := range tests {
		_, err := Sample(nil, test.xs, test.ys, test.steps)
		if !errors.Is(err, test.want) {
			t.Errorf("%d: got %v, want %v", i, err, test.want)
		}
	}
}

func TestSampler(t *testing.T) {
	x := []float64{1, 3, 5, 7, 9, 11}
	y := []float64{22, 23, 19, 19, 20, 21}

	s := &Sampler{}
	c, err := s.Sample(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if want := 5*DefaultSteps + 1; len(c.Polyline) != want {
		t.Errorf("got %d polyline points, want %d", len(c.Polyline), want)
	}
	wantVertices := make([]vec.Vec2, len(x))
	for i := range x {
		wantVertices[i] = vec.Vec2{X: x[i], Y: y[i]}
	}
	if d := cmp.Diff(wantVertices, c.Vertices); d != "" {
		t.Error(d)
	}

	s.Steps = 3
	c, err = s.Sample(x[:2], y[:2])
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Polyline) != 4 || len(c.Vertices) != 2 {
		t.Errorf("got %d/%d points, want 4/2", len(c.Polyline), len(c.Vertices))
	}

	if _, err := s.Sample(x, y[:3]); !errors.Is(err, ErrSegmentMismatch) {
		t.Errorf("mismatched lengths: got %v", err)
	}
	if _, err := s.Sample(x[:1], y[:1]); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("single sample: got %v", err)
	}
}

func ExampleSolve() {
	cubics, _ := Solve([]float64{0, 1})
	fmt.Println(len(cubics))
	fmt.Printf("%.2f %.2f\n", cubics[0].Eval(0), cubics[0].Eval(1))
	// Output:
	// 1
	// 0.00 1.00
}

func BenchmarkSampler(b *testing.B) {
	x := []float64{1, 3, 5, 7, 9, 11}
	y := []float64{28, 31, 27, 23, 24, 27}
	s := &Sampler{}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := s.Sample(x, y); err != nil {
			b.Fatal(err)
		}
	}
}
