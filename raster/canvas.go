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
	"image"
	"image/color"
	"image/draw"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/curveview"
)

var _ curveview.Sink = (*Canvas)(nil)

// Canvas draws chart frames into an RGBA image.
// Curves and markers are composited onto the existing image content.
type Canvas struct {
	Img *image.RGBA

	CurveColor   color.Color
	MarkerColor  color.Color
	StrokeWidth  float64
	MarkerRadius float64
	Cap          graphics.LineCapStyle
	Join         graphics.LineJoinStyle

	r *Rasteriser
}

// NewCanvas returns a Canvas drawing into img, using the default colors
// and sizes.
func NewCanvas(img *image.RGBA) *Canvas {
	return &Canvas{
		Img:          img,
		CurveColor:   curveview.DefaultCurveColor,
		MarkerColor:  curveview.DefaultMarkerColor,
		StrokeWidth:  curveview.DefaultStrokeWidth,
		MarkerRadius: curveview.DefaultMarkerRadius,
		Cap:          graphics.LineCapButt,
		Join:         graphics.LineJoinMiter,
	}
}

// Clear fills the whole image with the given color.
func (c *Canvas) Clear(bg color.Color) {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// Stroke implements curveview.Sink.
func (c *Canvas) Stroke(polyline []vec.Vec2) {
	if len(polyline) == 0 {
		return
	}
	r := c.rasteriser()
	r.Width = c.StrokeWidth
	r.Cap = c.Cap
	r.Join = c.Join
	r.Stroke(Polyline(polyline), c.painter(c.CurveColor))
}

// Mark implements curveview.Sink.
func (c *Canvas) Mark(vertices []vec.Vec2) {
	if len(vertices) == 0 || c.MarkerRadius <= 0 {
		return
	}
	r := c.rasteriser()
	r.FillNonZero(Circles(vertices, c.MarkerRadius), c.painter(c.MarkerColor))
}

func (c *Canvas) rasteriser() *Rasteriser {
	b := c.Img.Bounds()
	clip := rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	}
	if c.r == nil {
		c.r = NewRasteriser(clip)
	} else {
		c.r.Reset(clip)
	}
	return c.r
}

// painter returns an emit callback which composites col onto the image,
// using the coverage values as an additional alpha mask.
func (c *Canvas) painter(col color.Color) func(y, xMin int, coverage []float32) {
	sr, sg, sb, sa := col.RGBA()
	fr := float32(sr) / 0xffff * 255
	fg := float32(sg) / 0xffff * 255
	fb := float32(sb) / 0xffff * 255
	fa := float32(sa) / 0xffff

	return func(y, xMin int, coverage []float32) {
		off := c.Img.PixOffset(xMin, y)
		pix := c.Img.Pix[off : off+4*len(coverage)]
		for i, m := range coverage {
			p := pix[4*i : 4*i+4 : 4*i+4]
			keep := 1 - fa*m
			p[0] = uint8(fr*m + float32(p[0])*keep + 0.5)
			p[1] = uint8(fg*m + float32(p[1])*keep + 0.5)
			p[2] = uint8(fb*m + float32(p[2])*keep + 0.5)
			p[3] = uint8(fa*255*m + float32(p[3])*keep + 0.5)
		}
	}
}

// Polyline returns the open path through the given points.
// The path refers to pts and must not outlive it.
func Polyline(pts []vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if len(pts) == 0 || !yield(path.CmdMoveTo, pts[:1]) {
			return
		}
		for i := 1; i < len(pts); i++ {
			if !yield(path.CmdLineTo, pts[i:i+1]) {
				return
			}
		}
	}
}

// kappa places the control points of a cubic Bézier approximation of a
// quarter circle.
const kappa = 0.5522847498307936

// Circles returns a path consisting of one circle around each center.
func Circles(centers []vec.Vec2, radius float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		k := kappa * radius
		var buf [3]vec.Vec2
		for _, c := range centers {
			buf[0] = vec.Vec2{X: c.X + radius, Y: c.Y}
			if !yield(path.CmdMoveTo, buf[:1]) {
				return
			}
			buf[0] = vec.Vec2{X: c.X + radius, Y: c.Y + k}
			buf[1] = vec.Vec2{X: c.X + k, Y: c.Y + radius}
			buf[2] = vec.Vec2{X: c.X, Y: c.Y + radius}
			if !yield(path.CmdCubeTo, buf[:3]) {
				return
			}
			buf[0] = vec.Vec2{X: c.X - k, Y: c.Y + radius}
			buf[1] = vec.Vec2{X: c.X - radius, Y: c.Y + k}
			buf[2] = vec.Vec2{X: c.X - radius, Y: c.Y}
			if !yield(path.CmdCubeTo, buf[:3]) {
				return
			}
			buf[0] = vec.Vec2{X: c.X - radius, Y: c.Y - k}
			buf[1] = vec.Vec2{X: c.X - k, Y: c.Y - radius}
			buf[2] = vec.Vec2{X: c.X, Y: c.Y - radius}
			if !yield(path.CmdCubeTo, buf[:3]) {
				return
			}
			buf[0] = vec.Vec2{X: c.X + k, Y: c.Y - radius}
			buf[1] = vec.Vec2{X: c.X + radius, Y: c.Y - k}
			buf[2] = vec.Vec2{X: c.X + radius, Y: c.Y}
			if !yield(path.CmdCubeTo, buf[:3]) {
				return
			}
			if !yield(path.CmdClose, nil) {
				return
			}
		}
	}
}
