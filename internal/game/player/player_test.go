package player

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/basic3d/internal/assets"
	"github.com/Faultbox/basic3d/internal/engine/input"
	"github.com/Faultbox/basic3d/internal/engine/primitive"
	"github.com/Faultbox/basic3d/pkg/math"
)

const tolerance = 1e-6

type scene []*primitive.Primitive

func (s scene) Primitive(id primitive.ID) *primitive.Primitive {
	if id < 0 || int(id) >= len(s) {
		return nil
	}
	return s[id]
}

func newPrimitive(t *testing.T, p *primitive.Primitive, position math.Vector4) *primitive.Primitive {
	t.Helper()
	if err := p.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	p.SetPosition(position)
	p.Process()
	return p
}

type rig struct {
	player *Player
	keys   *input.Manual
	state  *input.State
}

func newRig(settings Settings, s scene, position math.Vector4) *rig {
	r := &rig{keys: &input.Manual{}, state: &input.State{}}
	r.player = New(settings, s, r.state)
	r.player.SetPosition(position)
	for i := range s {
		r.player.AddCollision(primitive.ID(i))
	}
	return r
}

func (r *rig) step() {
	r.state.Poll(r.keys)
	r.player.Process()
}

func TestRotate(t *testing.T) {
	r := newRig(DefaultSettings(), nil, math.NewVector4(0, 0, 0))
	r.keys.Press(input.RotateRight)
	r.step()

	s, c := gomath.Sincos(math.DegreeToRadian(2))
	want := math.NewDirection(-s, 0, -c)
	if d := r.player.Direction.Sub(want).Length(); d > tolerance {
		t.Errorf("Direction = %+v, want %+v", r.player.Direction, want)
	}
	if r.player.Rotation.Y != 2 {
		t.Errorf("Rotation.Y = %v, want 2", r.player.Rotation.Y)
	}

	r.keys.ReleaseAll()
	r.keys.Press(input.RotateLeft)
	r.step()
	if d := r.player.Direction.Sub(math.NewDirection(0, 0, -1)).Length(); d > tolerance {
		t.Errorf("rotating back gave %+v", r.player.Direction)
	}
}

func TestForward(t *testing.T) {
	r := newRig(DefaultSettings(), nil, math.NewVector4(0, 0, 0))
	r.keys.Press(input.Forward)
	r.step()

	if r.player.State() != StateForward {
		t.Errorf("State = %v, want forward", r.player.State())
	}
	if got := r.player.Position; gomath.Abs(got.Z+10) > tolerance || got.X != 0 {
		t.Errorf("Position = %+v, want (0,0,-10)", got)
	}
	if r.player.Moved().Length() != 10 {
		t.Errorf("Moved = %+v", r.player.Moved())
	}

	r.keys.ReleaseAll()
	r.step()
	if r.player.State() != StateIdle {
		t.Errorf("State = %v, want idle", r.player.State())
	}
}

func TestAttackWithoutClipUsesFrameCount(t *testing.T) {
	settings := DefaultSettings()
	r := newRig(settings, nil, math.NewVector4(0, 0, 0))

	r.keys.Press(input.Attack)
	r.step()
	if !r.player.IsAttacking() || r.player.State() != StateAttack {
		t.Fatalf("attack should start, state = %v", r.player.State())
	}

	// Held keys are ignored while attacking.
	r.keys.Press(input.Forward, input.Jump)
	for i := 0; i < settings.AttackFrames-1; i++ {
		r.step()
	}
	if !r.player.IsAttacking() {
		t.Fatal("attack ended early")
	}
	if r.player.IsJumping() || !r.player.Position.IsZero() {
		t.Errorf("player moved during attack: jumping = %v, position = %+v",
			r.player.IsJumping(), r.player.Position)
	}

	r.keys.ReleaseAll()
	r.step()
	if r.player.IsAttacking() || r.player.State() != StateIdle {
		t.Errorf("attack should end after %d frames, state = %v", settings.AttackFrames, r.player.State())
	}
}

func TestAttackClipEnds(t *testing.T) {
	catalog := assets.NewCatalog(assets.Manifest{
		Models: []assets.ModelEntry{{
			Path: "model/player.mv1",
			Clips: []assets.Clip{
				{Name: "idle", Total: 10},
				{Name: "forward", Total: 10},
				{Name: "attack", Total: 5},
			},
		}},
	})

	r := newRig(DefaultSettings(), nil, math.NewVector4(0, 0, 0))
	if err := r.player.Load(catalog, "model/player.mv1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.player.Animator.MainIndex() != 0 {
		t.Fatalf("idle should be attached, main = %d", r.player.Animator.MainIndex())
	}

	r.keys.Press(input.Attack)
	r.step()
	if r.player.Animator.MainIndex() != 2 {
		t.Fatalf("attack clip should play, main = %d", r.player.Animator.MainIndex())
	}

	// Holding the key does not retrigger.
	for i := 0; i < 4; i++ {
		r.step()
	}
	if !r.player.IsAttacking() {
		t.Fatal("attack ended before the clip")
	}
	r.step()
	if r.player.IsAttacking() || r.player.Animator.MainIndex() != 0 {
		t.Errorf("attack should end with the clip, main = %d", r.player.Animator.MainIndex())
	}
}

func TestLoadRejectsMissingClip(t *testing.T) {
	catalog := assets.NewCatalog(assets.Manifest{
		Models: []assets.ModelEntry{{Path: "model/player.mv1", Clips: []assets.Clip{{Name: "idle", Total: 10}}}},
	})
	r := newRig(DefaultSettings(), nil, math.NewVector4(0, 0, 0))
	if err := r.player.Load(catalog, "model/player.mv1"); err == nil {
		t.Error("expected an error for the missing forward clip")
	}
}

func TestJumpLandsOnPlane(t *testing.T) {
	settings := DefaultSettings()
	ground := newPrimitive(t, primitive.NewPlane(1000, 1), math.NewVector4(0, 0, 0))
	r := newRig(settings, scene{ground}, math.NewVector4(0, 100, 0))

	r.player.launch(JumpNormal, math.NewDirection(0, 0, -50))

	frames := 0
	for r.player.IsJumping() && frames < 120 {
		r.step()
		frames++
	}

	want := int(gomath.Ceil(gomath.Sqrt(2*100/settings.Gravity) / settings.TimeStep))
	if frames < want-1 || frames > want+1 {
		t.Errorf("landed after %d frames, want %d", frames, want)
	}
	if id, ok := r.player.StandingOn(); !ok || id != 0 {
		t.Errorf("StandingOn = %d, %v", id, ok)
	}
	if gomath.Abs(r.player.Position.Y) > tolerance {
		t.Errorf("landing Y = %v, want 0", r.player.Position.Y)
	}
	if r.player.State() != StateIdle {
		t.Errorf("State = %v, want idle", r.player.State())
	}
}

func TestJumpKinds(t *testing.T) {
	tests := []struct {
		name  string
		keys  []input.Action
		kind  JumpKind
		signZ float64
	}{
		{"normal", []input.Action{input.Jump}, JumpNormal, -1},
		{"back", []input.Action{input.Jump, input.Back}, JumpBack, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(DefaultSettings(), nil, math.NewVector4(0, 0, 0))
			r.keys.Press(tt.keys...)
			r.step()

			if !r.player.IsJumping() || r.player.JumpKind() != tt.kind {
				t.Fatalf("jumping = %v, kind = %v", r.player.IsJumping(), r.player.JumpKind())
			}
			v := r.player.JumpVelocity()
			if v.Y <= 0 || v.Z*tt.signZ <= 0 {
				t.Errorf("velocity = %+v", v)
			}
			if r.player.Position.Y <= 0 {
				t.Errorf("player should leave the ground, Y = %v", r.player.Position.Y)
			}
		})
	}
}

func TestAirborneWallBounce(t *testing.T) {
	settings := DefaultSettings()
	settings.Gravity = 0
	wall := newPrimitive(t, primitive.NewCube(200), math.NewVector4(0, 100, -300))
	r := newRig(settings, scene{wall}, math.NewVector4(0, 0, -105))

	r.player.launch(JumpNormal, math.NewDirection(0, 0, -600))
	for i := 0; i < 3; i++ {
		r.step()
		if r.player.JumpVelocity().Z != -600 {
			t.Fatalf("frame %d: bounced too early at %+v", i, r.player.Position)
		}
	}

	r.step()
	if v := r.player.JumpVelocity(); gomath.Abs(v.Z-600) > tolerance || v.X != 0 {
		t.Errorf("velocity after bounce = %+v, want (0,0,600)", v)
	}
	if z := r.player.Position.Z; gomath.Abs(z+140) > tolerance {
		t.Errorf("Z after bounce = %v, want -140", z)
	}

	r.step()
	if z := r.player.Position.Z; gomath.Abs(z+130) > tolerance {
		t.Errorf("player should move away from the wall, Z = %v", z)
	}
}

func TestAirborneWallBounceKeepsLaunchVelocity(t *testing.T) {
	settings := DefaultSettings()
	wall := newPrimitive(t, primitive.NewCube(200), math.NewVector4(0, 100, -300))
	r := newRig(settings, scene{wall}, math.NewVector4(0, 0, -105))

	r.player.launch(JumpNormal, math.NewDirection(0, 300, -600))
	for i := 0; i < 4; i++ {
		r.step()
	}

	want := math.NewDirection(0, 300, 600)
	if d := r.player.JumpVelocity().Sub(want).Length(); d > tolerance {
		t.Fatalf("velocity after bounce = %+v, want %+v", r.player.JumpVelocity(), want)
	}
	if z := r.player.Position.Z; gomath.Abs(z+140) > tolerance {
		t.Errorf("Z after bounce = %v, want -140", z)
	}

	// The parabola continues from the wall with the jump time unchanged.
	before := r.player.Position
	t0 := r.player.jumpTimer
	t1 := t0 + settings.TimeStep
	r.step()

	wantPos := before.Add(math.NewDirection(0, 300, 600).Scale(settings.TimeStep))
	wantPos.Y -= 0.5 * settings.Gravity * (t1*t1 - t0*t0)
	if d := r.player.Position.Sub(wantPos).Length(); d > tolerance {
		t.Errorf("position after bounce = %+v, want %+v", r.player.Position, wantPos)
	}
}

func TestAirborneExclusivity(t *testing.T) {
	tests := []struct {
		name  string
		later []input.Action
	}{
		{"forward held", []input.Action{input.Forward}},
		{"attack pressed", []input.Action{input.Attack}},
		{"rotate and forward", []input.Action{input.RotateLeft, input.Forward}},
		{"attack and forward", []input.Action{input.Attack, input.Forward}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			ground := newPrimitive(t, primitive.NewPlane(4000, 1), math.NewVector4(0, 0, 0))
			r := newRig(settings, scene{ground}, math.NewVector4(0, 0, 0))

			r.keys.Press(input.Jump)
			r.step()
			if !r.player.IsJumping() {
				t.Fatal("jump should start")
			}
			launch := r.player.JumpVelocity()

			r.keys.Press(tt.later...)
			for frame := 2; r.player.IsJumping(); frame++ {
				if frame > 300 {
					t.Fatal("jump never landed")
				}
				r.step()
				if r.player.IsAttacking() {
					t.Fatalf("frame %d: attack started while airborne", frame)
				}
				if !r.player.IsJumping() {
					break
				}
				if r.player.JumpVelocity() != launch {
					t.Fatalf("frame %d: launch velocity changed to %+v", frame, r.player.JumpVelocity())
				}
				tf := float64(frame) * settings.TimeStep
				want := launch.Scale(tf)
				want.Y -= 0.5 * settings.Gravity * tf * tf
				got := r.player.Position
				if gomath.Abs(got.X-want.X) > tolerance || gomath.Abs(got.Y-want.Y) > tolerance ||
					gomath.Abs(got.Z-want.Z) > tolerance {
					t.Fatalf("frame %d: position %+v, want %+v", frame, got, want)
				}
			}
			if id, ok := r.player.StandingOn(); !ok || id != 0 {
				t.Errorf("should land on the ground, StandingOn = %d, %v", id, ok)
			}
		})
	}
}

func TestLandingNeedsApproachFromAbove(t *testing.T) {
	tests := []struct {
		name     string
		start    math.Vector4
		velocity math.Vector4
		wantOn   primitive.ID
		wantY    float64
	}{
		// Rises through the cube top from inside, lands on it coming down.
		{"rising through the top", math.NewVector4(0, 100, 0), math.NewDirection(0, 800, 0), 1, 200},
		// Starts below the cube top and falls; only the ground catches it.
		{"falling from inside", math.NewVector4(0, 150, 0), math.NewDirection(0, 0, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ground := newPrimitive(t, primitive.NewPlane(4000, 1), math.NewVector4(0, 0, 0))
			block := newPrimitive(t, primitive.NewCube(200), math.NewVector4(0, 100, 0))
			r := newRig(DefaultSettings(), scene{ground, block}, tt.start)

			r.player.launch(JumpNormal, tt.velocity)
			peak := tt.start.Y
			for i := 0; i < 300 && r.player.IsJumping(); i++ {
				r.step()
				peak = gomath.Max(peak, r.player.Position.Y)
			}
			if r.player.IsJumping() {
				t.Fatal("jump never landed")
			}
			if id, ok := r.player.StandingOn(); !ok || id != tt.wantOn {
				t.Errorf("StandingOn = %d, %v, want %d", id, ok, tt.wantOn)
			}
			if gomath.Abs(r.player.Position.Y-tt.wantY) > tolerance {
				t.Errorf("landing Y = %v, want %v", r.player.Position.Y, tt.wantY)
			}
			if tt.velocity.Y > 0 && peak <= 200 {
				t.Errorf("peak %v should clear the cube top", peak)
			}
		})
	}
}

func TestAttackWithZeroFramesEnds(t *testing.T) {
	settings := DefaultSettings()
	settings.AttackFrames = 0
	r := newRig(settings, nil, math.NewVector4(0, 0, 0))

	r.keys.Press(input.Attack)
	r.step()
	r.step()
	if r.player.IsAttacking() {
		t.Error("attack should end after one frame")
	}
}

func TestGroundedWallSlide(t *testing.T) {
	wall := newPrimitive(t, primitive.NewCube(200), math.NewVector4(0, 100, -300))
	r := newRig(DefaultSettings(), scene{wall}, math.NewVector4(0, 0, -155))
	r.player.Direction = math.NewDirection(1, 0, -1).Normalize()

	r.keys.Press(input.Forward)
	r.step()

	pos := r.player.Position
	wantZ := -200 + r.player.Radius*gomath.Sqrt(0.5)
	if gomath.Abs(pos.Z-wantZ) > tolerance {
		t.Errorf("Z = %v, want %v", pos.Z, wantZ)
	}
	// The test segment meets the wall at X = 45; pushback alone would leave the
	// player at 45 - r*sqrt(0.5).
	pushedX := 45 - r.player.Radius*gomath.Sqrt(0.5)
	slide := 10 * (1 - gomath.Sqrt(0.5))
	if gomath.Abs(pos.X-(pushedX+slide)) > tolerance {
		t.Errorf("X = %v, want %v", pos.X, pushedX+slide)
	}
}

func TestWalkOffCubeFalls(t *testing.T) {
	ground := newPrimitive(t, primitive.NewPlane(2000, 1), math.NewVector4(0, 0, 0))
	step := newPrimitive(t, primitive.NewCube(200), math.NewVector4(0, 100, 0))
	r := newRig(DefaultSettings(), scene{ground, step}, math.NewVector4(0, 200, -95))
	r.player.StandOn(1)

	r.keys.Press(input.Forward)
	r.step()
	if !r.player.IsJumping() || r.player.JumpKind() != JumpFall {
		t.Fatalf("walking off should start a fall, jumping = %v", r.player.IsJumping())
	}
	if !r.player.JumpVelocity().IsZero() {
		t.Errorf("fall velocity = %+v", r.player.JumpVelocity())
	}

	r.keys.ReleaseAll()
	for i := 0; i < 120 && r.player.IsJumping(); i++ {
		r.step()
	}
	if id, ok := r.player.StandingOn(); !ok || id != 0 {
		t.Errorf("should land on the ground, StandingOn = %d, %v", id, ok)
	}
	if gomath.Abs(r.player.Position.Y) > tolerance || gomath.Abs(r.player.Position.Z+105) > tolerance {
		t.Errorf("landing position = %+v", r.player.Position)
	}
}

func TestStayOnCube(t *testing.T) {
	step := newPrimitive(t, primitive.NewCube(200), math.NewVector4(0, 100, 0))
	r := newRig(DefaultSettings(), scene{step}, math.NewVector4(0, 200, 0))
	r.player.StandOn(0)

	r.keys.Press(input.Forward)
	for i := 0; i < 5; i++ {
		r.step()
	}
	if r.player.IsJumping() {
		t.Errorf("player fell at %+v while still over the cube", r.player.Position)
	}
}

func TestSpherePushOut(t *testing.T) {
	ball := newPrimitive(t, primitive.NewSphere(100, 8), math.NewVector4(0, 60, -150))
	r := newRig(DefaultSettings(), scene{ball}, math.NewVector4(0, 0, -100))
	r.step()

	if got := r.player.Position; gomath.Abs(got.Z-10) > tolerance || gomath.Abs(got.Y) > tolerance {
		t.Errorf("Position = %+v, want (0,0,10)", got)
	}
}

func TestProcessTracksLastPosition(t *testing.T) {
	r := newRig(DefaultSettings(), nil, math.NewVector4(5, 0, 5))
	r.keys.Press(input.Forward)
	r.step()

	if r.player.LastPosition() != math.NewVector4(5, 0, 5) {
		t.Errorf("LastPosition = %+v", r.player.LastPosition())
	}
	if r.player.CurrentPosition() == r.player.LastPosition() {
		t.Error("CurrentPosition should change when walking")
	}
	if r.player.CollisionRadius() != 60 {
		t.Errorf("CollisionRadius = %v", r.player.CollisionRadius())
	}
}
