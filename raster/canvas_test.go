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
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/curveview"
)

func TestPainter(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	c := NewCanvas(img)
	c.Clear(color.Black)

	paint := c.painter(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	paint(0, 1, []float32{1, 0.5, 0})

	want := []uint8{0, 0xff, 0x80, 0}
	for x, v := range want {
		got := img.RGBAAt(x, 0)
		if got.R != v || got.G != v || got.B != v || got.A != 0xff {
			t.Errorf("pixel %d: got %v, want gray %d", x, got, v)
		}
	}
}

func TestPainterTranslucent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	c := NewCanvas(img)
	paint := c.painter(curveview.DefaultCurveColor)
	paint(0, 0, []float32{1})

	got := img.RGBAAt(0, 0)
	if got.A != 0xa0 || got.R != 0xa0 {
		t.Errorf("got %v, want premultiplied white with alpha 0xa0", got)
	}
}

func TestCanvasEmpty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	c := NewCanvas(img)
	c.Stroke(nil)
	c.Mark(nil)
	c.MarkerRadius = 0
	c.Mark([]vec.Vec2{{X: 4, Y: 4}})
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("byte %d: got %d, want 0", i, v)
		}
	}
}

func TestCanvasChart(t *testing.T) {
	const w, h = 120, 220
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := NewCanvas(img)
	c.Clear(color.Black)

	chart := &curveview.Chart{
		Top: []float64{28, 31, 27, 23, 24, 27},
		Low: []float64{22, 23, 19, 19, 20, 21},
	}
	if err := chart.Draw(c, 1, w, h); err != nil {
		t.Fatal(err)
	}

	// The layout has baseline 25 and scale 10, so the first point of the
	// upper series is at (10, 80) and the last point of the lower series
	// at (110, 150).
	for _, p := range []image.Point{image.Pt(10, 80), image.Pt(110, 150)} {
		if got := img.RGBAAt(p.X, p.Y); got.R < 0xbf {
			t.Errorf("marker at %v: got %v", p, got)
		}
	}
	for _, p := range []image.Point{image.Pt(0, 0), image.Pt(w-1, h-1), image.Pt(60, 20)} {
		if got := img.RGBAAt(p.X, p.Y); got != (color.RGBA{A: 0xff}) {
			t.Errorf("background at %v: got %v", p, got)
		}
	}
}

func BenchmarkCanvasFrame(b *testing.B) {
	const w, h = 480, 220
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := NewCanvas(img)
	chart := &curveview.Chart{
		Top: []float64{28, 31, 27, 23, 24, 27},
		Low: []float64{22, 23, 19, 19, 20, 21},
	}

	b.ReportAllocs()
	for b.Loop() {
		c.Clear(color.Black)
		if err := chart.Draw(c, 0.5, w, h); err != nil {
			b.Fatal(err)
		}
	}
}
