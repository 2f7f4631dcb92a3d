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

// Package pdfout writes chart frames to PDF files.
//
// The output uses the DeviceGray color space.  Translucent curve and
// marker colors are blended with the background before conversion to
// gray, so that overlapping shapes are painted opaquely.
package pdfout

import (
	imgcolor "image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/curveview"
)

var _ curveview.Sink = (*Frame)(nil)

// Frame is a single-page PDF file showing one chart frame.
// One PDF unit corresponds to one pixel.
type Frame struct {
	CurveColor   imgcolor.Color
	MarkerColor  imgcolor.Color
	StrokeWidth  float64
	MarkerRadius float64

	page       *document.Page
	background imgcolor.Color
}

// Create starts a new PDF file of the given size, filled with the
// background color.  The caller must call [Frame.Close] to complete the
// file.
func Create(fname string, width, height float64, background imgcolor.Color) (*Frame, error) {
	paper := &pdf.Rectangle{URx: width, URy: height}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	page.SetFillColor(Gray(background, nil))
	page.Rectangle(0, 0, width, height)
	page.Fill()

	// chart coordinates have the origin at the top left
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, height})

	return &Frame{
		CurveColor:   curveview.DefaultCurveColor,
		MarkerColor:  curveview.DefaultMarkerColor,
		StrokeWidth:  curveview.DefaultStrokeWidth,
		MarkerRadius: curveview.DefaultMarkerRadius,
		page:         page,
		background:   background,
	}, nil
}

// Stroke implements curveview.Sink.
func (f *Frame) Stroke(polyline []vec.Vec2) {
	if len(polyline) < 2 || f.StrokeWidth <= 0 {
		return
	}
	page := f.page
	page.SetStrokeColor(Gray(f.CurveColor, f.background))
	page.SetLineWidth(f.StrokeWidth)
	page.SetLineCap(graphics.LineCapButt)
	page.SetLineJoin(graphics.LineJoinMiter)
	page.MoveTo(polyline[0].X, polyline[0].Y)
	for _, p := range polyline[1:] {
		page.LineTo(p.X, p.Y)
	}
	page.Stroke()
}

// Mark implements curveview.Sink.
func (f *Frame) Mark(vertices []vec.Vec2) {
	if len(vertices) == 0 || f.MarkerRadius <= 0 {
		return
	}
	page := f.page
	page.SetFillColor(Gray(f.MarkerColor, f.background))
	r := f.MarkerRadius
	k := kappa * r
	for _, c := range vertices {
		x, y := c.X, c.Y
		page.MoveTo(x+r, y)
		page.CurveTo(x+r, y+k, x+k, y+r, x, y+r)
		page.CurveTo(x-k, y+r, x-r, y+k, x-r, y)
		page.CurveTo(x-r, y-k, x-k, y-r, x, y-r)
		page.CurveTo(x+k, y-r, x+r, y-k, x+r, y)
		page.ClosePath()
	}
	page.Fill()
}

// Close writes the page and closes the file.
func (f *Frame) Close() error {
	return f.page.Close()
}

const kappa = 0.5522847498307936

// Gray converts col to a PDF gray level.  Translucent colors are
// composited over bg, or over black if bg is nil.
func Gray(col, bg imgcolor.Color) color.Color {
	return color.DeviceGray(grayLevel(col, bg))
}

func grayLevel(col, bg imgcolor.Color) float64 {
	r, g, b, a := col.RGBA()
	if bg != nil && a < 0xffff {
		br, bgg, bb, _ := bg.RGBA()
		keep := 0xffff - a
		r += br * keep / 0xffff
		g += bgg * keep / 0xffff
		b += bb * keep / 0xffff
	}
	y := imgcolor.Gray16Model.Convert(imgcolor.RGBA64{
		R: uint16(min(r, 0xffff)),
		G: uint16(min(g, 0xffff)),
		B: uint16(min(b, 0xffff)),
		A: 0xffff,
	}).(imgcolor.Gray16).Y
	return float64(y) / 0xffff
}
