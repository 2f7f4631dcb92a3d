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

package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/curveview"
	"seehuhn.de/go/curveview/config"
	"seehuhn.de/go/curveview/pdfout"
	"seehuhn.de/go/curveview/raster"
)

var errEmptyCanvas = errors.New("canvas has zero width or height")

func newPNGCmd(g *globals) *cobra.Command {
	var output string
	var progress float64

	cmd := &cobra.Command{
		Use:   "png",
		Short: "Render a single frame as a PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Width == 0 || cfg.Height == 0 {
				return errEmptyCanvas
			}

			img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
			if err := drawFrame(cfg, cfg.Chart(), img, progress); err != nil {
				return err
			}

			out, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := png.Encode(out, img); err != nil {
				out.Close()
				return fmt.Errorf("failed to encode PNG: %w", err)
			}
			if err := out.Close(); err != nil {
				return err
			}

			g.log.WithFields(logrus.Fields{
				"file":     output,
				"progress": progress,
			}).Info("wrote PNG image")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "chart.png", "output file")
	cmd.Flags().Float64Var(&progress, "progress", 1, "animation progress, between 0 and 1")
	return cmd
}

func newGIFCmd(g *globals) *cobra.Command {
	var output string
	var fps, jobs int
	var loop bool

	cmd := &cobra.Command{
		Use:   "gif",
		Short: "Render the animation as an animated GIF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("fps") {
				cfg.FPS = fps
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if cfg.Width == 0 || cfg.Height == 0 {
				return errEmptyCanvas
			}

			var progress []float64
			for _, p := range cfg.Frames() {
				progress = append(progress, p)
			}

			start := time.Now()
			frames, err := renderFrames(cfg, progress, jobs)
			if err != nil {
				return err
			}
			g.log.WithFields(logrus.Fields{
				"frames":  len(frames),
				"jobs":    jobs,
				"elapsed": time.Since(start),
			}).Debug("rendered frames")

			delay := 0
			if cfg.FPS > 0 {
				delay = max(1, int(math.Round(100/float64(cfg.FPS))))
			}
			anim := &gif.GIF{
				Image:     frames,
				Delay:     make([]int, len(frames)),
				LoopCount: -1,
			}
			if loop {
				anim.LoopCount = 0
			}
			for i := range anim.Delay {
				anim.Delay[i] = delay
			}

			out, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := gif.EncodeAll(out, anim); err != nil {
				out.Close()
				return fmt.Errorf("failed to encode GIF: %w", err)
			}
			if err := out.Close(); err != nil {
				return err
			}

			g.log.WithFields(logrus.Fields{
				"file":   output,
				"frames": len(frames),
				"fps":    cfg.FPS,
			}).Info("wrote animated GIF")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "chart.gif", "output file")
	cmd.Flags().IntVar(&fps, "fps", 0, "frames per second (overrides the config file)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of frames rendered in parallel")
	cmd.Flags().BoolVar(&loop, "loop", false, "repeat the animation forever")
	return cmd
}

func newPDFCmd(g *globals) *cobra.Command {
	var output string
	var progress float64

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Render a single frame as a PDF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Width == 0 || cfg.Height == 0 {
				return errEmptyCanvas
			}

			w, h := float64(cfg.Width), float64(cfg.Height)
			frame, err := pdfout.Create(output, w, h, cfg.Background)
			if err != nil {
				return err
			}
			frame.CurveColor = cfg.CurveColor
			frame.MarkerColor = cfg.MarkerColor
			frame.StrokeWidth = cfg.StrokeWidth
			frame.MarkerRadius = cfg.MarkerRadius
			drawErr := cfg.Chart().Draw(frame, progress, w, h)
			if err := frame.Close(); err != nil {
				return err
			}
			if drawErr != nil {
				return drawErr
			}

			g.log.WithFields(logrus.Fields{
				"file":     output,
				"progress": progress,
			}).Info("wrote PDF file")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "chart.pdf", "output file")
	cmd.Flags().Float64Var(&progress, "progress", 1, "animation progress, between 0 and 1")
	return cmd
}

// drawFrame draws the chart at the given progress into img, replacing
// the previous image content.
func drawFrame(cfg *config.Config, chart *curveview.Chart, img *image.RGBA, progress float64) error {
	c := raster.NewCanvas(img)
	c.CurveColor = cfg.CurveColor
	c.MarkerColor = cfg.MarkerColor
	c.StrokeWidth = cfg.StrokeWidth
	c.MarkerRadius = cfg.MarkerRadius
	c.Clear(cfg.Background)

	b := img.Bounds()
	return chart.Draw(c, progress, float64(b.Dx()), float64(b.Dy()))
}

// renderFrames draws one paletted image for every progress value, using
// up to jobs goroutines.
func renderFrames(cfg *config.Config, progress []float64, jobs int) ([]*image.Paletted, error) {
	bounds := image.Rect(0, 0, cfg.Width, cfg.Height)
	pal := framePalette(cfg)
	frames := make([]*image.Paletted, len(progress))

	var eg errgroup.Group
	eg.SetLimit(max(jobs, 1))
	for i, p := range progress {
		eg.Go(func() error {
			img := image.NewRGBA(bounds)
			if err := drawFrame(cfg, cfg.Chart(), img, p); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			frame := image.NewPaletted(bounds, pal)
			draw.FloydSteinberg.Draw(frame, bounds, img, image.Point{})
			frames[i] = frame
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// framePalette returns a 256 color palette with ramps from the
// background to the curve and marker colors.
func framePalette(cfg *config.Config) color.Palette {
	const n = 128
	pal := make(color.Palette, 0, 2*n)
	for _, fg := range []color.Color{cfg.CurveColor, cfg.MarkerColor} {
		for i := range n {
			pal = append(pal, blend(fg, cfg.Background, float64(i)/(n-1)))
		}
	}
	return pal
}

// blend composites fg with coverage t over the opaque color bg.
func blend(fg, bg color.Color, t float64) color.RGBA {
	fr, fg2, fb, fa := fg.RGBA()
	br, bg2, bb, _ := bg.RGBA()
	keep := 1 - float64(fa)/0xffff*t
	mix := func(f, b uint32) uint8 {
		return uint8(min((float64(f)*t+float64(b)*keep)/0x101+0.5, 255))
	}
	return color.RGBA{R: mix(fr, br), G: mix(fg2, bg2), B: mix(fb, bb), A: 0xff}
}
