// Package fade drives a full-screen transition overlay from the scene clock.
package fade

import (
	gomath "math"

	"github.com/Faultbox/basic3d/internal/engine/timer"
)

// Fade covers the screen over a duration and uncovers it again. Alpha
// follows a quarter sine so the transition eases in.
type Fade struct {
	watch    *timer.Stopwatch
	duration int64

	in    bool
	out   bool
	alpha float64
}

// New creates an inactive fade.
func New(clock timer.Clock) *Fade {
	return &Fade{watch: timer.NewStopwatch(clock)}
}

// In starts covering the screen over ms milliseconds. It is ignored while
// a fade-in is already active.
func (f *Fade) In(ms int64) bool {
	if f.in || ms <= 0 {
		return false
	}
	f.in = true
	f.out = false
	f.duration = ms
	f.watch.Start()
	return true
}

// Out uncovers the screen over ms milliseconds. It only follows a fade-in.
func (f *Fade) Out(ms int64) bool {
	if !f.in || f.out || ms <= 0 {
		return false
	}
	f.in = false
	f.out = true
	f.duration = ms
	f.watch.Start()
	return true
}

// Active reports whether the overlay should be drawn.
func (f *Fade) Active() bool {
	return f.in || f.out
}

// Alpha returns the overlay opacity in [0, 1].
func (f *Fade) Alpha() float64 {
	return f.alpha
}

// Process updates the opacity. A finished fade-out deactivates the overlay;
// a finished fade-in holds the screen covered.
func (f *Fade) Process() {
	if !f.Active() {
		return
	}

	rate := float64(f.watch.Elapsed()) / float64(f.duration)
	if rate >= 1 {
		rate = 1
	}
	theta := gomath.Pi / 2 * rate

	if f.in {
		f.alpha = gomath.Sin(theta)
		return
	}
	f.alpha = gomath.Cos(theta)
	if rate == 1 {
		f.out = false
		f.duration = 0
		f.alpha = 0
	}
}
