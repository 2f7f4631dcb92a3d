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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a line segment in user space.
type strokeSegment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent, A→B
	N    vec.Vec2 // unit normal, 90° CCW from T
}

type subpath struct {
	start  int // index of the first segment in segs
	end    int
	closed bool
}

// Stroke draws the outline of the path using Width, Cap, Join and
// MiterLimit.  The emit callback receives coverage row by row; its slice
// argument is valid only during the call.
//
// The stroke is built as a union of simple polygons: one quadrilateral
// per flattened segment plus the polygons for the joins and caps.  All of
// them have the same orientation, so that filling them together with the
// nonzero rule paints overlapping parts only once.
func (r *Rasteriser) Stroke(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.segs = r.segs[:0]
	r.subpaths = r.subpaths[:0]
	r.dots = r.dots[:0]
	r.segMark = 0
	r.flatten(p, false, r.addStrokeSegment, r.endStrokeSubpath)

	r.poly = r.poly[:0]
	r.polyStart = r.polyStart[:0]
	d := r.Width / 2
	for _, sp := range r.subpaths {
		r.outlineSubpath(r.segs[sp.start:sp.end], sp.closed, d)
	}
	for _, pt := range r.dots {
		// A subpath without length has no direction.  Only round caps
		// make it visible.
		if r.Cap == graphics.LineCapRound {
			r.addCircle(pt, d)
		}
	}

	r.beginEdges()
	for i, start := range r.polyStart {
		end := len(r.poly)
		if i+1 < len(r.polyStart) {
			end = r.polyStart[i+1]
		}
		poly := r.poly[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.rasterise(emit)
}

// addStrokeSegment appends a segment to r.segs.  Segments without length
// are dropped.
func (r *Rasteriser) addStrokeSegment(a, b vec.Vec2) {
	delta := b.Sub(a)
	l := delta.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := delta.Mul(1 / l)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

func (r *Rasteriser) endStrokeSubpath(start vec.Vec2, closed, drew bool) {
	switch {
	case len(r.segs) > r.segMark:
		r.subpaths = append(r.subpaths, subpath{start: r.segMark, end: len(r.segs), closed: closed})
	case drew || closed:
		r.dots = append(r.dots, start)
	}
	r.segMark = len(r.segs)
}

// outlineSubpath adds the polygons which make up the stroke of one
// subpath.  d is half the stroke width.
func (r *Rasteriser) outlineSubpath(segs []strokeSegment, closed bool, d float64) {
	for i := range segs {
		s := &segs[i]
		r.addPolygon(
			s.A.Add(s.N.Mul(d)),
			s.B.Add(s.N.Mul(d)),
			s.B.Sub(s.N.Mul(d)),
			s.A.Sub(s.N.Mul(d)),
		)
		if i+1 < len(segs) {
			r.addJoin(s.B, s.T, segs[i+1].T, d)
		}
	}

	first, last := &segs[0], &segs[len(segs)-1]
	if closed {
		r.addJoin(last.B, last.T, first.T, d)
		return
	}
	r.addCap(first.A, first.T.Mul(-1), d)
	r.addCap(last.B, last.T, d)
}

// addJoin adds the join at P, where the direction changes from T1 to T2.
func (r *Rasteriser) addJoin(P, T1, T2 vec.Vec2, d float64) {
	cosTheta := T1.Dot(T2)
	sinTheta := T1.X*T2.Y - T1.Y*T2.X
	if math.Abs(sinTheta) < collinearityThreshold && cosTheta > 0 {
		return
	}
	if cosTheta < cuspCosineThreshold {
		// the path doubles back: draw two caps instead of a join
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addCircle(P, d)
		return
	}

	// The outer side of a left turn (sinTheta > 0) is the -N side.
	side := 1.0
	if sinTheta > 0 {
		side = -1
	}
	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}.Mul(side)
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}.Mul(side)
	a := P.Add(N1.Mul(d))
	b := P.Add(N2.Mul(d))

	if r.Join == graphics.LineJoinMiter {
		// The miter length relative to the line width is 1/sin(φ/2),
		// where φ is the angle between the two segments.
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		bisector := N1.Add(N2)
		if l := bisector.Length(); sinHalf > 0 && 1/sinHalf <= r.MiterLimit+miterEpsilon && l > zeroLengthThreshold {
			tip := P.Add(bisector.Mul(d / (sinHalf * l)))
			r.addPolygon(P, a, tip, b)
			return
		}
	}
	r.addPolygon(P, a, b)
}

// addCap adds the cap at P.  T is the unit tangent pointing away from the
// stroke.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addCircle(P, d)
	case graphics.LineCapSquare:
		N := vec.Vec2{X: -T.Y, Y: T.X}
		ext := P.Add(T.Mul(d))
		r.addPolygon(P.Add(N.Mul(d)), ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)), P.Sub(N.Mul(d)))
	}
}

// addCircle adds a polygon approximating the circle of the given radius.
// The number of vertices keeps the deviation below the flatness
// tolerance in device space.
func (r *Rasteriser) addCircle(center vec.Vec2, radius float64) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length(),
	)
	n := 8
	if devRadius > r.Flatness {
		// a chord spanning the angle θ deviates from the circle by
		// radius·(1-cos(θ/2))
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		n = max(n, int(math.Ceil(2*math.Pi/step)))
	}

	start := len(r.poly)
	for i := range n {
		phi := -2 * math.Pi * float64(i) / float64(n)
		r.poly = append(r.poly, center.Add(vec.Vec2{X: math.Cos(phi), Y: math.Sin(phi)}.Mul(radius)))
	}
	r.finishPolygon(start)
}

// addPolygon adds a polygon to the stroke outline.
func (r *Rasteriser) addPolygon(pts ...vec.Vec2) {
	start := len(r.poly)
	r.poly = append(r.poly, pts...)
	r.finishPolygon(start)
}

// finishPolygon normalises the orientation of the polygon r.poly[start:]
// and records it.  Polygons without area are discarded.
func (r *Rasteriser) finishPolygon(start int) {
	poly := r.poly[start:]
	var area float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		area += p.X*q.Y - q.X*p.Y
	}
	switch {
	case math.Abs(area) < zeroAreaThreshold:
		r.poly = r.poly[:start]
		return
	case area > 0:
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	r.polyStart = append(r.polyStart, start)
}

// Numerical tolerances for stroking.
const (
	// zeroLengthThreshold is the minimum length of a stroke segment.
	zeroLengthThreshold = 1e-10

	// zeroAreaThreshold is twice the minimum area of a stroke polygon.
	zeroAreaThreshold = 1e-12

	// collinearityThreshold detects nearly collinear segments which need
	// no join.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself;
	// cos(179.43°) ≈ -0.9999.
	cuspCosineThreshold = -0.9999

	// miterEpsilon absorbs rounding errors at the miter limit.
	miterEpsilon = 1e-10
)
