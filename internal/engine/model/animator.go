package model

import (
	"fmt"

	"github.com/Faultbox/basic3d/internal/assets"
)

// ClipOptions controls playback of an attached clip.
type ClipOptions struct {
	Loop  bool
	Speed float64 // frames advanced per Process, 1 when zero
	OnEnd func() // called each time playback passes the last frame
}

type clip struct {
	index int
	total float64
	play  float64
	speed float64
	loop  bool
	onEnd func()
	ended bool
}

func (c *clip) reset() {
	*c = clip{index: -1}
}

func (c *clip) attached() bool {
	return c.index >= 0
}

// advance moves the play head by speed frames. Looping clips wrap to 0,
// others stop at the last frame and report their end once.
func (c *clip) advance() {
	if !c.attached() {
		return
	}
	c.play += c.speed
	if c.play <= c.total {
		return
	}
	if c.loop {
		c.play = 0
	} else {
		c.play = c.total
		if c.ended {
			return
		}
		c.ended = true
	}
	if c.onEnd != nil {
		c.onEnd()
	}
}

// Animator plays one main clip and optionally cross-fades into a second
// clip over a fixed number of frames.
type Animator struct {
	clips []assets.Clip

	main  clip
	blend clip

	blendFrames int
	blendCount  int
	rate        float64
}

// NewAnimator creates an animator over the clips of a model asset.
func NewAnimator(clips []assets.Clip) *Animator {
	a := &Animator{clips: clips}
	a.main.reset()
	a.blend.reset()
	return a
}

// Count returns the number of clips available.
func (a *Animator) Count() int {
	return len(a.clips)
}

func (a *Animator) newClip(index int, opts ClipOptions) (clip, error) {
	if index < 0 || index >= len(a.clips) {
		return clip{}, fmt.Errorf("%w: index %d of %d", ErrInvalidClip, index, len(a.clips))
	}
	speed := opts.Speed
	if speed == 0 {
		speed = 1
	}
	return clip{
		index: index,
		total: a.clips[index].Total,
		speed: speed,
		loop:  opts.Loop,
		onEnd: opts.OnEnd,
	}, nil
}

// Attach replaces the main clip and cancels any blend.
func (a *Animator) Attach(index int, opts ClipOptions) error {
	c, err := a.newClip(index, opts)
	if err != nil {
		return err
	}
	a.main = c
	a.blend.reset()
	a.rate = 0
	return nil
}

// Blend starts a cross-fade from the main clip to index over frames
// Process calls. Without a main clip, or with frames < 1, it attaches
// directly.
func (a *Animator) Blend(index, frames int, opts ClipOptions) error {
	if !a.main.attached() || frames < 1 {
		return a.Attach(index, opts)
	}
	c, err := a.newClip(index, opts)
	if err != nil {
		return err
	}
	a.blend = c
	a.blendFrames = frames
	a.blendCount = 0
	a.rate = 0
	return nil
}

// Process advances both clips and the blend weight.
func (a *Animator) Process() {
	a.main.advance()
	a.blend.advance()
	a.processBlend()
}

func (a *Animator) processBlend() {
	if !a.main.attached() || !a.blend.attached() {
		return
	}

	a.rate = float64(a.blendCount) / float64(a.blendFrames)
	a.blendCount++

	if a.blendCount > a.blendFrames {
		a.main = a.blend
		a.blend.reset()
		a.rate = 0
	}
}

// IsBlending reports whether a cross-fade is in progress.
func (a *Animator) IsBlending() bool {
	return a.blend.attached()
}

// MainIndex returns the main clip index, or -1.
func (a *Animator) MainIndex() int {
	return a.main.index
}

// BlendIndex returns the clip being faded in, or -1.
func (a *Animator) BlendIndex() int {
	return a.blend.index
}

// PlayTime returns the main clip's play head in frames.
func (a *Animator) PlayTime() float64 {
	return a.main.play
}

// Weights returns the current main and blend weights. They sum to 1.
func (a *Animator) Weights() (main, blend float64) {
	if !a.blend.attached() {
		return 1, 0
	}
	return 1 - a.rate, a.rate
}
