// Package player implements the controllable actor: walking, turning,
// attacking and jumping with collision against scene primitives.
package player

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/assets"
	"github.com/Faultbox/basic3d/internal/engine/input"
	"github.com/Faultbox/basic3d/internal/engine/model"
	"github.com/Faultbox/basic3d/internal/engine/primitive"
	"github.com/Faultbox/basic3d/internal/logger"
	"github.com/Faultbox/basic3d/pkg/math"
)

// State is the top-level motion state.
type State int

const (
	StateIdle State = iota
	StateForward
	StateAttack
	StateJump
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateForward:
		return "forward"
	case StateAttack:
		return "attack"
	case StateJump:
		return "jump"
	default:
		return "unknown"
	}
}

// JumpKind selects the launch of a jump.
type JumpKind int

const (
	JumpNormal JumpKind = iota
	JumpBack
	JumpFall
)

func (k JumpKind) String() string {
	switch k {
	case JumpNormal:
		return "normal"
	case JumpBack:
		return "back"
	case JumpFall:
		return "fall"
	default:
		return "unknown"
	}
}

// PrimitiveSource resolves primitive IDs to the scene's primitives. It
// returns nil for unknown IDs.
type PrimitiveSource interface {
	Primitive(id primitive.ID) *primitive.Primitive
}

// Player is the controllable actor.
type Player struct {
	*model.Model
	Settings

	Direction math.Vector4 // unit facing on the ground plane

	state     State
	attacking bool
	attackEnd int // frames left when timed without a clip

	jumping      bool
	jumpKind     JumpKind
	jumpVelocity math.Vector4
	jumpStart    math.Vector4
	jumpTimer    float64

	lastPosition math.Vector4
	moved        math.Vector4

	collisions []primitive.ID
	standingOn primitive.ID

	source PrimitiveSource
	input  *input.State
	log    *zap.Logger
}

// New creates a player at the origin facing -Z.
func New(settings Settings, source PrimitiveSource, state *input.State) *Player {
	p := &Player{
		Model:      model.New(),
		Settings:   settings,
		Direction:  math.NewDirection(0, 0, -1),
		standingOn: primitive.NoID,
		source:     source,
		input:      state,
		log:        logger.Named("player"),
	}
	p.lastPosition = p.Position
	return p
}

// Load binds the model asset, checks the configured clips and starts the
// idle loop.
func (p *Player) Load(loader assets.Loader, path string) error {
	if err := p.Model.Load(loader, path); err != nil {
		return err
	}
	for name, index := range map[string]int{
		"idle":    p.Clips.Idle,
		"forward": p.Clips.Forward,
		"attack":  p.Clips.Attack,
		"jump":    p.Clips.Jump,
	} {
		if index >= p.Animator.Count() {
			return fmt.Errorf("player %s clip %d: %w", name, index, model.ErrInvalidClip)
		}
	}
	if p.Clips.Idle >= 0 {
		if err := p.Animator.Attach(p.Clips.Idle, model.ClipOptions{Loop: true}); err != nil {
			return fmt.Errorf("player idle clip: %w", err)
		}
	}
	return nil
}

// AddCollision registers a primitive the player collides with.
func (p *Player) AddCollision(id primitive.ID) {
	p.collisions = append(p.collisions, id)
}

// StandOn marks the primitive the player rests on.
func (p *Player) StandOn(id primitive.ID) {
	p.standingOn = id
}

// StandingOn returns the primitive under the player, if any.
func (p *Player) StandingOn() (primitive.ID, bool) {
	return p.standingOn, p.standingOn != primitive.NoID
}

// State returns the current motion state.
func (p *Player) State() State {
	return p.state
}

// IsJumping reports whether a jump is in progress.
func (p *Player) IsJumping() bool {
	return p.jumping
}

// IsAttacking reports whether an attack is in progress.
func (p *Player) IsAttacking() bool {
	return p.attacking
}

// JumpKind returns the kind of the current or last jump.
func (p *Player) JumpKind() JumpKind {
	return p.jumpKind
}

// JumpVelocity returns the launch velocity of the current jump segment.
func (p *Player) JumpVelocity() math.Vector4 {
	return p.jumpVelocity
}

// CurrentPosition returns the position after the last Process.
func (p *Player) CurrentPosition() math.Vector4 {
	return p.Position
}

// LastPosition returns the position before the last Process.
func (p *Player) LastPosition() math.Vector4 {
	return p.lastPosition
}

// CollisionRadius returns the collision sphere radius.
func (p *Player) CollisionRadius() float64 {
	return p.Radius
}

// Moved returns the forward step taken during the last Process.
func (p *Player) Moved() math.Vector4 {
	return p.moved
}

// Process advances the player by one frame: input, motion, collision, then
// the transform and animation.
func (p *Player) Process() {
	p.lastPosition = p.Position
	p.moved = math.NewDirection(0, 0, 0)

	if !p.attacking {
		p.processRotate()
	}
	p.processAttack()
	p.processJump()
	if !p.jumping && !p.attacking {
		p.processForward()
	}

	p.processWalls()
	p.processSpheres()
	p.processStandingOn()

	p.Model.Process()
}

func (p *Player) processRotate() {
	angle := 0.0
	if p.input.Down(input.RotateLeft) {
		angle = -p.Rotate
	} else if p.input.Down(input.RotateRight) {
		angle = p.Rotate
	}
	if angle == 0 {
		return
	}

	p.Direction = p.Direction.Transform(math.NewRotateY(angle))
	p.Direction.NormalizeInPlace()
	p.Rotation.Y += angle
}

func (p *Player) processForward() {
	if p.input.Down(input.Forward) {
		p.state = StateForward
		p.blendTo(p.Clips.Forward, p.Clips.ForwardBlend)

		p.moved = p.Direction.Scale(p.Movement)
		p.Position.AddInPlace(p.moved)
		return
	}
	p.state = StateIdle
	p.blendTo(p.Clips.Idle, p.Clips.IdleBlend)
}

// blendTo fades into a looping clip unless it is already playing or a fade
// is running.
func (p *Player) blendTo(index, frames int) {
	if index < 0 || p.Animator.IsBlending() || p.Animator.MainIndex() == index {
		return
	}
	_ = p.Animator.Blend(index, frames, model.ClipOptions{Loop: true})
}

func (p *Player) processAttack() {
	if p.attacking {
		if p.attackEnd > 0 {
			p.attackEnd--
			if p.attackEnd == 0 {
				p.endAttack()
			}
		}
		return
	}
	if p.jumping || !p.input.Pressed(input.Attack) {
		return
	}

	p.attacking = true
	p.state = StateAttack
	p.attackEnd = 0
	err := p.Animator.Attach(p.Clips.Attack, model.ClipOptions{OnEnd: p.endAttack})
	if err != nil {
		p.attackEnd = max(p.AttackFrames, 1)
	}
	p.log.Debug("attack started", logger.Vector("position", p.Position))
}

func (p *Player) endAttack() {
	if !p.attacking {
		return
	}
	p.attacking = false
	p.attackEnd = 0
	p.state = StateIdle
	if p.Clips.Idle >= 0 {
		_ = p.Animator.Attach(p.Clips.Idle, model.ClipOptions{Loop: true})
	}
	p.log.Debug("attack finished")
}
