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

// Package anim provides the progress clock which drives chart animations.
package anim

import (
	"iter"
	"math"
	"time"
)

// DefaultDuration is the duration of the reveal animation.
const DefaultDuration = 800 * time.Millisecond

// Interpolator maps the elapsed fraction of an animation to its progress.
// Both values are in [0,1], and an Interpolator must map 0 to 0 and 1 to 1.
type Interpolator func(t float64) float64

// Linear makes progress proportional to the elapsed time.
func Linear(t float64) float64 {
	return t
}

// AccelerateDecelerate starts and ends slowly and is fastest in the
// middle of the animation.
func AccelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

// Animation is a progress clock running over a fixed duration.
//
// Before Start is called and after the duration has elapsed, the progress
// is 1.  The zero value is a finished animation.
type Animation struct {
	// Duration is the length of the animation.
	// Zero means DefaultDuration.
	Duration time.Duration

	// Interpolator shapes the progress curve.
	// Nil means AccelerateDecelerate.
	Interpolator Interpolator

	// Now returns the current time.  Nil means time.Now.
	Now func() time.Time

	start   time.Time
	started bool
}

// New returns an animation of the given duration with the default
// interpolator.
func New(d time.Duration) *Animation {
	return &Animation{Duration: d}
}

// Start (re)starts the animation at time t.
func (a *Animation) Start(t time.Time) {
	a.start = t
	a.started = true
}

// ProgressAt returns the progress at time t.
func (a *Animation) ProgressAt(t time.Time) float64 {
	if a.Ended(t) {
		return 1
	}
	elapsed := t.Sub(a.start)
	if elapsed <= 0 {
		return a.interpolate(0)
	}
	return a.interpolate(float64(elapsed) / float64(a.duration()))
}

// Progress returns the progress at the current time.
// This implements curveview.ProgressSource.
func (a *Animation) Progress() float64 {
	return a.ProgressAt(a.now())
}

// Ended reports whether the animation is not running at time t.
func (a *Animation) Ended(t time.Time) bool {
	return !a.started || t.Sub(a.start) >= a.duration()
}

func (a *Animation) duration() time.Duration {
	if a.Duration <= 0 {
		return DefaultDuration
	}
	return a.Duration
}

func (a *Animation) interpolate(t float64) float64 {
	f := a.Interpolator
	if f == nil {
		f = AccelerateDecelerate
	}
	return min(max(f(t), 0), 1)
}

func (a *Animation) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Frames returns the progress values of an animation of duration d
// sampled at the given frame rate.  The sequence starts with progress 0
// and always ends with a frame at progress 1.
//
// The interpolator f may be nil, in which case AccelerateDecelerate is
// used.
func Frames(d time.Duration, fps int, f Interpolator) iter.Seq2[int, float64] {
	if f == nil {
		f = AccelerateDecelerate
	}
	return func(yield func(int, float64) bool) {
		if d <= 0 || fps <= 0 {
			yield(0, 1)
			return
		}
		// ceil(d·fps) in integer arithmetic
		n := int((int64(d)*int64(fps) + int64(time.Second) - 1) / int64(time.Second))
		for i := 0; i < n; i++ {
			t := float64(i) / float64(n)
			if !yield(i, min(max(f(t), 0), 1)) {
				return
			}
		}
		yield(n, 1)
	}
}
