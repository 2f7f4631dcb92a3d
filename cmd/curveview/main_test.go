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
	"bytes"
	"errors"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/curveview/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "chart.toml")
	if err := os.WriteFile(fname, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestPNG(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.png")
	if _, err := run(t, "png", "--width", "120", "--height", "60", "-o", output); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 60 {
		t.Errorf("got size %v, want 120x60", b)
	}
}

func TestGIF(t *testing.T) {
	cfg := writeConfig(t, `
duration = "100ms"
fps = 20
width = 60
height = 40
`)
	output := filepath.Join(t.TempDir(), "out.gif")
	if _, err := run(t, "gif", "--config", cfg, "--jobs", "2", "-o", output); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	// two frames at 20 fps, plus the final frame
	if len(anim.Image) != 3 {
		t.Errorf("got %d frames, want 3", len(anim.Image))
	}
	for i, d := range anim.Delay {
		if d != 5 {
			t.Errorf("frame %d: delay %d, want 5", i, d)
		}
	}
	if anim.LoopCount != -1 {
		t.Errorf("got loop count %d, want -1", anim.LoopCount)
	}
}

func TestPDF(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.pdf")
	if _, err := run(t, "pdf", "--progress", "0.5", "-o", output); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF file")
	}
}

func TestConfigCmd(t *testing.T) {
	out, err := run(t, "config", "--width", "333")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Decode(bytes.NewBufferString(out))
	if err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	if cfg.Width != 333 || cfg.Height != config.Default().Height {
		t.Errorf("got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestErrors(t *testing.T) {
	bad := writeConfig(t, "top = [1]\n")
	if _, err := run(t, "png", "--config", bad, "-o", filepath.Join(t.TempDir(), "x.png")); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("one point series: got %v", err)
	}

	if _, err := run(t, "gif", "--height", "0", "-o", filepath.Join(t.TempDir(), "x.gif")); !errors.Is(err, errEmptyCanvas) {
		t.Errorf("empty canvas: got %v", err)
	}

	if _, err := run(t, "png", "--width", "-5"); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("negative width: got %v", err)
	}
}

func TestBlend(t *testing.T) {
	bg := color.RGBA{R: 0, G: 0, B: 0xff, A: 0xff}
	fg := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}

	if got := blend(fg, bg, 0); got != bg {
		t.Errorf("t=0: got %v, want %v", got, bg)
	}
	got := blend(fg, bg, 1)
	want := color.RGBA{R: 0x80, G: 0x80, B: 0xff, A: 0xff}
	if got != want {
		t.Errorf("t=1: got %v, want %v", got, want)
	}
}
