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

// Package curveview draws animated two-series curve charts, such as the
// daily high and low temperatures of a weather forecast.
//
// Each series is drawn as a smooth curve through its data points, with a
// marker at every point.  While an animation runs, the points rise from
// the horizontal centre line to their final positions one after another,
// from left to right.
//
// A [Chart] only computes geometry.  The result of each frame is delivered
// to a [Sink]; the raster and pdfout packages provide sinks which draw into
// images and PDF files.
package curveview

import (
	"fmt"
	"slices"

	"seehuhn.de/go/curveview/spline"
)

// Chart holds the data of an animated two-series chart.
//
// Draw recomputes the frame from scratch on every call.  Only scratch
// buffers are kept between calls, so that drawing a sequence of frames of
// the same chart does not allocate.  A Chart is not safe for concurrent
// use.
type Chart struct {
	// Top and Low are the upper and lower data series.
	// The two series may have different lengths.
	Top, Low []float64

	// Steps is the number of line segments used to approximate each
	// cubic segment.  Zero means spline.DefaultSteps.
	Steps int

	Options

	samplers [2]spline.Sampler // one per series
	x, y     []float64
}

// Draw computes the frame for the given animation progress on a canvas of
// the given size and sends the geometry to sink.  The upper series is
// drawn first.
//
// A canvas without width produces no output; a canvas without height
// produces flat curves along its top edge.  A series with exactly one
// data point is an error.  An empty series is skipped.  Both series are
// sampled before anything is sent to sink, so that on error the sink
// receives nothing.
func (c *Chart) Draw(sink Sink, progress, width, height float64) error {
	if width <= 0 {
		return nil
	}

	l := ComputeLayout(c.Top, c.Low, height, c.Options)
	top, err := c.sampleSeries(&c.samplers[0], "top", c.Top, l, progress, width, height)
	if err != nil {
		return err
	}
	low, err := c.sampleSeries(&c.samplers[1], "low", c.Low, l, progress, width, height)
	if err != nil {
		return err
	}

	for _, curve := range [2]*spline.Curve{top, low} {
		if curve == nil {
			continue
		}
		sink.Stroke(curve.Polyline)
		sink.Mark(curve.Vertices)
	}
	return nil
}

// DrawFrom is like Draw, but reads the progress from src.
func (c *Chart) DrawFrom(sink Sink, src ProgressSource, width, height float64) error {
	return c.Draw(sink, src.Progress(), width, height)
}

// sampleSeries returns the curve for one series, or nil for an empty
// series.  The curve is owned by s.
func (c *Chart) sampleSeries(s *spline.Sampler, name string, values []float64, l Layout, progress, width, height float64) (*spline.Curve, error) {
	if len(values) == 0 {
		return nil, nil
	}

	c.x = XPositions(c.x, len(values), width)
	c.y = MapYInto(c.y, values, progress, l, height, c.Options)

	s.Steps = c.Steps
	curve, err := s.Sample(c.x, c.y)
	if err != nil {
		return nil, fmt.Errorf("curveview: %s series: %w", name, err)
	}
	return curve, nil
}

// XPositions divides the width into n columns of equal size and appends
// the horizontal centre of each column to dst[:0].
func XPositions(dst []float64, n int, width float64) []float64 {
	dst = slices.Grow(dst[:0], n)
	col := width / float64(2*n)
	for i := range n {
		dst = append(dst, col*float64(2*i+1))
	}
	return dst
}
