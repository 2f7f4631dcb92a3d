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

// Package raster draws chart frames into images.
//
// The [Rasteriser] converts paths into anti-aliased pixel coverage, and
// [Canvas] uses it to implement curveview.Sink on top of an *image.RGBA.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser converts paths to pixel coverage values, the fraction of each
// pixel covered by the filled or stroked path.  Create one instance and
// reuse it; internal buffers grow as needed but never shrink.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM transforms from user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds the output, in device coordinates.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the curve approximation tolerance in device pixels.
	// Must be positive.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the shape of the ends of open subpaths.
	Cap graphics.LineCapStyle

	// Join is the shape of the corners between stroke segments.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to Width.
	// Longer miters are drawn as bevels.
	MiterLimit float64

	cover     []float32 // per-pixel change of the winding number; reused as output
	area      []float32 // per-pixel coverage to the right of the edges
	edges     []edge
	active    []int // indices into edges
	haveBBox  bool
	devXMin   float64
	devXMax   float64
	devYMin   float64
	devYMax   float64
	segs      []strokeSegment
	subpaths  []subpath
	segMark   int
	dots      []vec.Vec2
	poly      []vec.Vec2
	polyStart []int
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, with
// the PDF default values for all other parameters.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
}

// FillNonZero fills the path using the nonzero winding rule.  Open
// subpaths are closed implicitly.  Coverage is delivered row by row; the
// coverage slice passed to emit is only valid during the call.
func (r *Rasteriser) FillNonZero(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	r.flatten(p, true, r.addEdge, nil)
	r.rasterise(emit)
}

// flatten walks the path, replaces curves by line segments and calls seg
// for every segment.  At the end of each subpath, end is called (if not
// nil) with the start point of the subpath, whether it was closed
// explicitly and whether it contained any drawing commands.  If
// closeOpen is set, open subpaths get a closing segment.
func (r *Rasteriser) flatten(p path.Path, closeOpen bool, seg func(a, b vec.Vec2), end func(start vec.Vec2, closed, drew bool)) {
	var cur, start vec.Vec2
	inSubpath := false
	drew := false

	finish := func(closed bool) {
		if !inSubpath {
			return
		}
		if (closed || closeOpen) && cur != start {
			seg(cur, start)
		}
		if end != nil {
			end(start, closed, drew)
		}
		cur = start
		inSubpath = false
		drew = false
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			cur = pts[0]
			start = cur
			inSubpath = true
		case path.CmdLineTo:
			if !inSubpath {
				continue
			}
			drew = true
			seg(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			if !inSubpath {
				continue
			}
			drew = true
			r.flattenQuadratic(cur, pts[0], pts[1], seg)
			cur = pts[1]
		case path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			drew = true
			r.flattenCubic(cur, pts[0], pts[1], pts[2], seg)
			cur = pts[2]
		case path.CmdClose:
			finish(true)
		}
	}
	finish(false)
}

// transformLinear applies the 2×2 linear part of the CTM to a vector.
func (r *Rasteriser) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic approximates the quadratic Bézier curve p0, p1, p2
// by line segments.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev := e.Length(); dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates the cubic Bézier curve p0, p1, p2, p3 by line
// segments.  The number of segments is chosen using Wang's formula.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))
	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.haveBBox = false
}

// addEdge transforms a segment from user space to device space and adds
// it to the edge list.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	m := r.CTM
	x0 := m[0]*p0.X + m[2]*p0.Y + m[4]
	y0 := m[1]*p0.X + m[3]*p0.Y + m[5]
	x1 := m[0]*p1.X + m[2]*p1.Y + m[4]
	y1 := m[1]*p1.X + m[3]*p1.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if !r.haveBBox {
		r.devXMin, r.devXMax = min(x0, x1), max(x0, x1)
		r.devYMin, r.devYMax = min(y0, y1), max(y0, y1)
		r.haveBBox = true
		return
	}
	r.devXMin = min(r.devXMin, x0, x1)
	r.devXMax = max(r.devXMax, x0, x1)
	r.devYMin = min(r.devYMin, y0, y1)
	r.devYMax = max(r.devYMax, y0, y1)
}

// Coverage model:
//
// Every piece of an edge inside a pixel row contributes its signed
// vertical extent to "cover" of the pixel it passes through, and the part
// of that extent which lies to the right of the edge to "area".  Summing
// cover from the left and adding area gives the signed covered fraction
// of each pixel, which the nonzero rule folds into [0,1].

// rasterise converts the collected edges into coverage, using an active
// edge list which is updated scanline by scanline.
func (r *Rasteriser) rasterise(emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yf+1 {
			r.active = append(r.active, next)
			next++
		}

		// drop edges which ended above this row
		k := 0
		for _, idx := range r.active {
			e := &r.edges[idx]
			if max(e.y0, e.y1) > yf {
				r.active[k] = idx
				k++
			}
		}
		r.active = r.active[:k]
		if k == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, idx := range r.active {
			r.accumulate(&r.edges[idx], y, xMin, xMax)
		}

		integrateNonZero(r.cover, r.area)
		if row, offset := trimZeros(r.cover); row != nil {
			emit(y, xMin+offset, row)
		}
	}
}

// accumulate adds the part of e inside pixel row y to the cover and area
// buffers, which are indexed by x-xMin.
func (r *Rasteriser) accumulate(e *edge, y, xMin, xMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	colTop := int(math.Floor(xTop))
	colBot := int(math.Floor(xBot))
	if colTop == colBot {
		r.deposit(colTop, (xTop+xBot)/2, sign*float32(yBot-yTop), xMin, xMax)
		return
	}

	// Walk from column to column, splitting the edge where it crosses
	// the vertical pixel boundaries.
	step := 1
	if colBot < colTop {
		step = -1
	}
	y0, x0 := yTop, xTop
	for col := colTop; col != colBot; col += step {
		bound := float64(col)
		if step > 0 {
			bound++
		}
		y1 := min(max(e.y0+(bound-e.x0)/e.dxdy, y0), yBot)
		r.deposit(col, (x0+bound)/2, sign*float32(y1-y0), xMin, xMax)
		y0, x0 = y1, bound
	}
	r.deposit(colBot, (x0+xBot)/2, sign*float32(yBot-y0), xMin, xMax)
}

// deposit records a piece of edge with signed height dy, passing through
// column col at average position xMid.
func (r *Rasteriser) deposit(col int, xMid float64, dy float32, xMin, xMax int) {
	switch {
	case dy == 0 || col >= xMax:
		return
	case col < xMin:
		// left of the clip region: the whole first pixel is affected
		r.cover[0] += dy
		r.area[0] += dy
	default:
		idx := col - xMin
		r.cover[idx] += dy
		r.area[idx] += dy * float32(1-(xMid-float64(col)))
	}
}

// integrateNonZero turns the accumulated cover and area values into
// coverage using the nonzero winding rule.  The result overwrites cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero part of a coverage row and its offset.
// For an all-zero row, nil is returned.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF and PostScript.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the minimal vertical extent of an edge
	// in device space.  Flatter edges do not contribute coverage.
	horizontalEdgeThreshold = 1e-10
)
