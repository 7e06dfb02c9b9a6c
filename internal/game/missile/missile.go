// Package missile implements a homing projectile that counts down, climbs,
// steers toward a target and bursts into an expanding sphere.
package missile

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/engine/model"
	"github.com/Faultbox/basic3d/internal/engine/posture"
	"github.com/Faultbox/basic3d/internal/engine/primitive"
	"github.com/Faultbox/basic3d/internal/engine/timer"
	"github.com/Faultbox/basic3d/internal/logger"
	"github.com/Faultbox/basic3d/pkg/math"
)

// ErrMissingDependency is returned by New when a collaborator is nil.
var ErrMissingDependency = errors.New("missile dependency missing")

// WarningText is shown over the target once the missile is in flight.
const WarningText = "W A R N I N G"

// State is the missile phase.
type State int

const (
	StateNone State = iota
	StateWait
	StateLaunch
	StateHoming
	StateExplode
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateWait:
		return "wait"
	case StateLaunch:
		return "launch"
	case StateHoming:
		return "homing"
	case StateExplode:
		return "explode"
	default:
		return "unknown"
	}
}

// Target is what the missile steers toward.
type Target interface {
	CurrentPosition() math.Vector4
}

// Projector maps world points to pixels. It reports false for points
// outside the viewport or depth range.
type Projector interface {
	InScreen(p math.Vector4) (x, y int, ok bool)
}

// Indicator is a screen-space marker for the HUD.
type Indicator struct {
	Valid bool // the marker is tracking
	Draw  bool // the tracked point is on screen this frame
	X, Y  int
}

func (i *Indicator) reset() {
	i.Valid = false
	i.Draw = false
}

// Label is a piece of HUD text anchored at a pixel.
type Label struct {
	Text string
	X, Y int
}

// Missile is a model driven by a countdown and a steering basis instead of
// Euler angles.
type Missile struct {
	*model.Model
	Settings

	// Basis holds the orientation axes in rows 0-2. The missile flies
	// along row 1.
	Basis     math.Matrix44
	FirePoint math.Vector4

	Countdown Indicator
	Remaining float64 // countdown seconds left
	Warning   Indicator

	state     State
	target    Target
	explosion *primitive.Primitive
	projector Projector
	watch     *timer.Stopwatch

	explodeAngle float64
	explodeScale float64

	log *zap.Logger
}

// New creates an idle missile. explosion is the proxy shown on impact and
// is owned by the scene.
func New(settings Settings, clock timer.Clock, target Target, explosion *primitive.Primitive, projector Projector) (*Missile, error) {
	switch {
	case clock == nil:
		return nil, fmt.Errorf("%w: clock", ErrMissingDependency)
	case target == nil:
		return nil, fmt.Errorf("%w: target", ErrMissingDependency)
	case explosion == nil:
		return nil, fmt.Errorf("%w: explosion", ErrMissingDependency)
	case projector == nil:
		return nil, fmt.Errorf("%w: projector", ErrMissingDependency)
	}

	m := &Missile{
		Model:     model.New(),
		Settings:  settings,
		Basis:     math.Identity(),
		target:    target,
		explosion: explosion,
		projector: projector,
		watch:     timer.NewStopwatch(clock),
		log:       logger.Named("missile"),
	}
	m.SetUniformScale(settings.ModelScale)
	m.explosion.Visible = false
	return m, nil
}

// State returns the current phase.
func (m *Missile) State() State {
	return m.state
}

// IsStandBy reports whether the missile can be fired.
func (m *Missile) IsStandBy() bool {
	return m.state == StateNone
}

// IsExplode reports whether the impact effect is playing.
func (m *Missile) IsExplode() bool {
	return m.state == StateExplode
}

// Drawable reports whether the missile model should be rendered.
func (m *Missile) Drawable() bool {
	return m.Visible && m.state != StateNone && m.state != StateExplode
}

// Explosion returns the impact proxy.
func (m *Missile) Explosion() *primitive.Primitive {
	return m.explosion
}

// Fire places the missile at position and starts the countdown.
func (m *Missile) Fire(position math.Vector4) {
	m.state = StateWait
	m.SetPosition(position)
	m.FirePoint = math.NewVector4(position.X, position.Y, position.Z)
	m.Remaining = float64(m.CountdownMillis) / 1000
	m.Countdown.Valid = true
	m.watch.Start()

	m.log.Info("missile armed", logger.Vector("position", m.FirePoint))
}

// Process advances flight, the impact effect and the HUD markers, then
// recomposes the matrix.
func (m *Missile) Process() {
	m.processFire()
	m.processExplosion()

	if m.Countdown.Valid {
		m.processCountdown()
	} else if m.Warning.Valid {
		m.processWarning()
	}

	m.Model.Process()
}

// Labels returns the HUD text to draw this frame.
func (m *Missile) Labels() []Label {
	if m.state == StateNone || m.state == StateExplode {
		return nil
	}
	var labels []Label
	if m.Countdown.Draw {
		labels = append(labels, Label{
			Text: fmt.Sprintf("%.2f", m.Remaining),
			X:    m.Countdown.X,
			Y:    m.Countdown.Y,
		})
	}
	if m.Warning.Draw {
		labels = append(labels, Label{Text: WarningText, X: m.Warning.X, Y: m.Warning.Y})
	}
	return labels
}

func (m *Missile) processFire() {
	if m.state != StateLaunch && m.state != StateHoming {
		return
	}

	move := m.processMoving()
	m.Position.AddInPlace(move)

	if m.state == StateHoming && m.Position.Y < m.HomingEndY {
		m.explode()
	}
}

// processMoving updates the heading for the current phase and returns this
// frame's displacement along the basis Y axis.
func (m *Missile) processMoving() math.Vector4 {
	switch m.state {
	case StateLaunch:
		m.processLaunch()
	case StateHoming:
		m.processHoming()
	}
	return m.Basis.Row(1).Scale(m.Velocity)
}

func (m *Missile) processLaunch() {
	if m.watch.Elapsed() <= m.LaunchMillis {
		return
	}
	m.state = StateHoming
	m.watch.Start()

	m.UpdateMatrix = false
	m.UpdateAfter = m.composeBasis
	m.log.Debug("missile homing", logger.Vector("position", m.Position))
}

// composeBasis replaces the Euler pipeline while the basis steers.
func (m *Missile) composeBasis(p *posture.Posture) {
	p.Matrix = math.NewScale(m.ModelScale, m.ModelScale, m.ModelScale).
		Mul(m.Basis).
		Mul(math.NewTranslate(p.Position.X, p.Position.Y, p.Position.Z))
}

func (m *Missile) processHoming() {
	if m.watch.Elapsed() <= m.HomingMillis {
		return
	}
	toTarget := m.target.CurrentPosition().Sub(m.Position)
	toTarget.W = 0
	m.Basis = Steer(m.Basis, toTarget.Normalize(), m.HomingRate)
	m.watch.Start()
}

// Steer bends basis toward dir. The Y axis is pulled by rate of its
// difference to dir, and the same offset is added to X and Z before all
// three are renormalized. The axes drift from orthogonal as a result.
func Steer(basis math.Matrix44, dir math.Vector4, rate float64) math.Matrix44 {
	homing := dir.Sub(basis.Row(1)).Scale(rate)
	homing.W = 0

	out := basis
	for i := 0; i < 3; i++ {
		out.SetRow(i, basis.Row(i).Add(homing).Normalize())
	}
	return out
}

func (m *Missile) explode() {
	m.state = StateExplode
	m.setExplosion()

	m.Warning.reset()
	m.Basis = math.Identity()
	m.SetRotation(math.NewDirection(0, 0, 0))
	m.UpdateMatrix = true
	m.ClearHooks()

	m.log.Info("missile exploded", logger.Vector("position", m.Position))
}

func (m *Missile) setExplosion() {
	m.explodeAngle = 0
	m.explodeScale = 1
	m.explosion.SetPosition(math.NewVector4(m.Position.X, 0, m.Position.Z))
	m.explosion.Visible = true
}

func (m *Missile) processExplosion() {
	if m.state != StateExplode {
		return
	}

	m.explosion.SetRotation(math.NewDirection(0, m.explodeAngle, 0))
	m.explosion.SetUniformScale(m.explodeScale)
	m.explosion.Process()

	m.explodeAngle += m.ExplodeAngle
	m.explodeScale *= m.ExplodeScale

	if m.explodeScale > m.ExplodeEndScale {
		m.state = StateNone
		m.explosion.Visible = false
		m.log.Debug("missile spent")
	}
}

// processCountdown runs the launch timer. It keeps running while the fire
// point is off screen; visibility only controls drawing.
func (m *Missile) processCountdown() {
	m.Countdown.X, m.Countdown.Y, m.Countdown.Draw = m.projector.InScreen(m.FirePoint)

	remaining := m.CountdownMillis - m.watch.Elapsed()
	m.Remaining = float64(remaining) / 1000
	if remaining >= 0 {
		return
	}

	m.Remaining = 0
	m.Countdown.reset()
	m.Warning.Valid = true
	m.state = StateLaunch
	m.watch.Start()

	m.log.Info("missile launched", logger.Vector("position", m.Position))
}

func (m *Missile) processWarning() {
	point := m.target.CurrentPosition().Add(math.NewDirection(0, m.WarningOffsetY, 0))
	m.Warning.X, m.Warning.Y, m.Warning.Draw = m.projector.InScreen(point)
}
