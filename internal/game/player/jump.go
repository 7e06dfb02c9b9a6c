package player

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/engine/collision"
	"github.com/Faultbox/basic3d/internal/engine/input"
	"github.com/Faultbox/basic3d/internal/engine/model"
	"github.com/Faultbox/basic3d/internal/engine/primitive"
	"github.com/Faultbox/basic3d/internal/logger"
	"github.com/Faultbox/basic3d/pkg/math"
)

var up = math.NewDirection(0, 1, 0)

func (p *Player) processJump() {
	if !p.jumping {
		if p.attacking || !p.input.Pressed(input.Jump) {
			return
		}
		kind := JumpNormal
		if p.input.Down(input.Back) {
			kind = JumpBack
		}
		p.startJump(kind)
	}

	previous := p.Position
	next := p.integrate()
	if !p.land(previous, next) {
		p.Position = next
	}
}

// startJump captures the launch state for kind.
func (p *Player) startJump(kind JumpKind) {
	var velocity math.Vector4
	switch kind {
	case JumpNormal:
		velocity = launchVelocity(p.Direction, p.JumpPower, p.JumpAngle)
	case JumpBack:
		velocity = launchVelocity(p.Direction.Scale(-1), p.BackPower, p.BackAngle)
	case JumpFall:
		velocity = math.NewDirection(0, 0, 0)
	}
	p.launch(kind, velocity)

	if p.Clips.Jump >= 0 {
		_ = p.Animator.Attach(p.Clips.Jump, model.ClipOptions{})
	}
	p.log.Debug("jump started",
		zap.Stringer("kind", kind),
		logger.Vector("position", p.Position),
		logger.Vector("velocity", velocity))
}

// launch resets the trajectory to start at the current position.
func (p *Player) launch(kind JumpKind, velocity math.Vector4) {
	p.jumping = true
	p.jumpKind = kind
	p.state = StateJump
	p.jumpStart = p.Position
	p.jumpVelocity = velocity
	p.jumpTimer = 0
	p.standingOn = primitive.NoID
}

// launchVelocity returns a velocity of the given power along dir, pitched up by
// angle degrees.
func launchVelocity(dir math.Vector4, power, angle float64) math.Vector4 {
	s, c := gomath.Sincos(math.DegreeToRadian(angle))
	h := math.NewDirection(dir.X, 0, dir.Z).Normalize().Scale(power * c)
	return math.NewDirection(h.X, power*s, h.Z)
}

// integrate advances the jump timer and returns the closed-form position
// start + v*t - g*t²/2 on Y.
func (p *Player) integrate() math.Vector4 {
	p.jumpTimer += p.TimeStep
	t := p.jumpTimer

	pos := p.jumpStart.Add(p.jumpVelocity.Scale(t))
	pos.Y -= 0.5 * p.Gravity * t * t
	return pos
}

// anchorJump moves the jump start so the parabola passes through the
// current position at the current jump time.
func (p *Player) anchorJump() {
	t := p.jumpTimer
	start := p.Position.Sub(p.jumpVelocity.Scale(t))
	start.Y += 0.5 * p.Gravity * t * t
	p.jumpStart = math.NewVector4(start.X, start.Y, start.Z)
}

// currentVelocity returns the instantaneous jump velocity.
func (p *Player) currentVelocity() math.Vector4 {
	v := p.jumpVelocity
	v.Y -= p.Gravity * p.jumpTimer
	return v
}

// land resolves the move previous->next against the top faces of the
// collision primitives. A face only stops the jump when previous was on or
// above it and the move goes down through it.
func (p *Player) land(previous, next math.Vector4) bool {
	step := next.Sub(previous)
	reach := gomath.Max(p.Movement, step.Length())

	best := primitive.NoID
	var bestHit math.Vector4
	bestDist := gomath.Inf(1)

	for _, id := range p.collisions {
		prim := p.source.Primitive(id)
		if prim == nil {
			continue
		}
		top, ok := prim.TopFace()
		if !ok {
			continue
		}
		if !collision.CheckCubeDistance(prim, previous, p.Radius, reach) {
			continue
		}
		if previous.Sub(top.Corners[0]).Dot(top.Normal) < 0 || step.Dot(top.Normal) >= 0 {
			continue
		}
		hit, ok := collision.SegmentQuad(previous, next, top)
		if !ok {
			continue
		}
		if d := hit.Sub(previous).LengthSquared(); d < bestDist {
			best, bestHit, bestDist = id, hit, d
		}
	}

	if best == primitive.NoID {
		return false
	}

	p.Position = math.NewVector4(bestHit.X, bestHit.Y, bestHit.Z)
	p.jumping = false
	p.jumpTimer = 0
	p.standingOn = best
	p.state = StateIdle
	if p.Clips.Idle >= 0 {
		_ = p.Animator.Attach(p.Clips.Idle, model.ClipOptions{Loop: true})
	}
	p.log.Debug("landed",
		zap.Int("primitive", int(best)),
		logger.Vector("position", p.Position))
	return true
}
