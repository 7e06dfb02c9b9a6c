package camera

import (
	"github.com/Faultbox/basic3d/internal/engine/input"
	"github.com/Faultbox/basic3d/pkg/math"
)

// Tracked is an actor a camera can follow.
type Tracked interface {
	CurrentPosition() math.Vector4
	LastPosition() math.Vector4
	CollisionRadius() float64
}

// Follow keeps a camera behind a tracked actor. The camera is carried by
// the actor's movement, can zoom toward it without entering its collision
// sphere and can orbit around it.
type Follow struct {
	Movement     float64 // zoom step per frame
	Rotation     float64 // orbit step per frame, degrees
	SphereRadius float64 // camera collision radius

	target Tracked
	input  *input.State
}

// NewFollow creates a follow controller.
func NewFollow(target Tracked, state *input.State, movement, rotation, sphereRadius float64) *Follow {
	return &Follow{
		Movement:     movement,
		Rotation:     rotation,
		SphereRadius: sphereRadius,
		target:       target,
		input:        state,
	}
}

// Attach installs the controller as the camera's update hook.
func (f *Follow) Attach(c *Camera) {
	c.Update = f.Update
}

// Update moves c for the current frame.
func (f *Follow) Update(c *Camera) {
	current := f.target.CurrentPosition()
	radius := f.target.CollisionRadius()

	moved := current.Sub(f.target.LastPosition())
	position := c.Position.Add(moved)
	target := current.Add(math.NewDirection(0, radius, 0))

	zoom, angle := f.command()

	if zoom != 0 {
		dir := target.Sub(position).Normalize()
		next := position.Add(dir.Scale(zoom))
		limit := radius + f.SphereRadius
		if next.Sub(target).LengthSquared() < limit*limit {
			position = target.Add(dir.Scale(-limit))
		} else {
			position = next
		}
	}

	if angle != 0 {
		offset := position.Sub(current)
		rotated := math.NewDirection(offset.X, offset.Y, offset.Z).Transform(math.NewRotateY(angle))
		position = current.Add(rotated)
	}

	c.Position = math.NewVector4(position.X, position.Y, position.Z)
	c.Target = math.NewVector4(target.X, target.Y, target.Z)
}

// command returns one zoom or orbit step. Only one applies per frame, zoom
// first.
func (f *Follow) command() (zoom, angle float64) {
	switch {
	case f.input.Down(input.CameraIn):
		return f.Movement, 0
	case f.input.Down(input.CameraOut):
		return -f.Movement, 0
	case f.input.Down(input.CameraRight):
		return 0, f.Rotation
	case f.input.Down(input.CameraLeft):
		return 0, -f.Rotation
	}
	return 0, 0
}
