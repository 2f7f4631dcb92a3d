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

// Package config reads chart descriptions from TOML files.
//
// A chart file lists the two data series together with the drawing
// parameters, for example:
//
//	top = [28, 31, 27, 23, 24, 27]
//	low = [22, 23, 19, 19, 20, 21]
//	width = 480
//	height = 220
//	duration = "800ms"
//	curve_color = "a0ffffff"
//
// Keys missing from the file keep the values from [Default].
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"seehuhn.de/go/curveview"
	"seehuhn.de/go/curveview/anim"
	"seehuhn.de/go/curveview/spline"
)

// ErrInvalid is returned (wrapped) by [Config.Validate].
var ErrInvalid = errors.New("invalid chart configuration")

// Config describes a chart and how to draw it.
type Config struct {
	Top []float64 `toml:"top"`
	Low []float64 `toml:"low"`

	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Steps is the number of line segments per spline segment.
	Steps int `toml:"steps"`

	Duration     Duration `toml:"duration"`
	FPS          int      `toml:"fps"`
	Interpolator string   `toml:"interpolator"`

	StrokeWidth  float64 `toml:"stroke_width"`
	MarkerRadius float64 `toml:"marker_radius"`
	CurveColor   Color   `toml:"curve_color"`
	MarkerColor  Color   `toml:"marker_color"`
	Background   Color   `toml:"background"`

	IntegerLayout        bool `toml:"integer_layout"`
	TruncateAcceleration bool `toml:"truncate_acceleration"`
}

// Names of the supported interpolators.
const (
	AccelerateDecelerate = "accelerate_decelerate"
	Linear               = "linear"
)

// Default returns a sample chart of six days of forecast high and low
// temperatures.
func Default() *Config {
	return &Config{
		Top:          []float64{28, 31, 27, 23, 24, 27},
		Low:          []float64{22, 23, 19, 19, 20, 21},
		Width:        480,
		Height:       220,
		Steps:        spline.DefaultSteps,
		Duration:     Duration(anim.DefaultDuration),
		FPS:          30,
		Interpolator: AccelerateDecelerate,
		StrokeWidth:  2,
		MarkerRadius: 4,
		CurveColor:   Color{R: 0xff, G: 0xff, B: 0xff, A: 0xa0},
		MarkerColor:  Color{R: 0xff, G: 0xff, B: 0xff, A: 0xc0},
		Background:   Color{R: 0x21, G: 0x96, B: 0xf3, A: 0xff},
	}
}

// Load reads a chart file.  Values not set in the file are taken from
// [Default].  The result is validated.
func Load(fname string) (*Config, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return c, nil
}

// Decode reads a chart description in TOML format from r.
// Unknown keys are an error.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Encode writes c in TOML format.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// String returns the TOML representation of c.
func (c *Config) String() string {
	buf := &bytes.Buffer{}
	if err := c.Encode(buf); err != nil {
		return err.Error()
	}
	return buf.String()
}

// Validate checks that c describes a chart which can be drawn.
func (c *Config) Validate() error {
	if len(c.Top) == 1 || len(c.Low) == 1 {
		return fmt.Errorf("%w: a series needs no points or at least two", ErrInvalid)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: negative canvas size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps=%d", ErrInvalid, c.Steps)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: negative duration %s", ErrInvalid, time.Duration(c.Duration))
	}
	if c.FPS < 0 {
		return fmt.Errorf("%w: fps=%d", ErrInvalid, c.FPS)
	}
	if c.StrokeWidth < 0 || c.MarkerRadius < 0 {
		return fmt.Errorf("%w: negative stroke width or marker radius", ErrInvalid)
	}
	if _, err := c.interpolator(); err != nil {
		return err
	}
	return nil
}

// Chart returns the chart described by c.
func (c *Config) Chart() *curveview.Chart {
	return &curveview.Chart{
		Top:   c.Top,
		Low:   c.Low,
		Steps: c.Steps,
		Options: curveview.Options{
			IntegerLayout:        c.IntegerLayout,
			TruncateAcceleration: c.TruncateAcceleration,
		},
	}
}

// Frames returns the frame indices and progress values of the animation
// described by c.
func (c *Config) Frames() iter.Seq2[int, float64] {
	f, err := c.interpolator()
	if err != nil {
		f = anim.AccelerateDecelerate
	}
	return anim.Frames(time.Duration(c.Duration), c.FPS, f)
}

func (c *Config) interpolator() (anim.Interpolator, error) {
	switch c.Interpolator {
	case "", AccelerateDecelerate:
		return anim.AccelerateDecelerate, nil
	case Linear:
		return anim.Linear, nil
	default:
		return nil, fmt.Errorf("%w: unknown interpolator %q", ErrInvalid, c.Interpolator)
	}
}

// Duration is a time.Duration which is written as a string like "800ms"
// in TOML files.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Color is a non-premultiplied color, written as an ARGB hex string
// like "a0ffffff" in TOML files.  A leading "#" is allowed.
type Color color.NRGBA

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return fmt.Appendf(nil, "%02x%02x%02x%02x", c.A, c.R, c.G, c.B), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	hex := strings.TrimPrefix(string(text), "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || (len(hex) != 6 && len(hex) != 8) {
		return fmt.Errorf("invalid color %q", text)
	}
	if len(hex) == 6 {
		v |= 0xff000000
	}
	*c = Color{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
	return nil
}
