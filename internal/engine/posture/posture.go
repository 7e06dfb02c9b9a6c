// Package posture provides the transform node shared by primitives, models
// and actors.
package posture

import (
	"github.com/Faultbox/basic3d/pkg/math"
)

// Hook customizes a posture before or after its matrix is composed.
type Hook func(p *Posture)

// Posture owns position, rotation (Euler degrees) and scale and composes
// them into a world matrix each frame.
type Posture struct {
	Position math.Vector4
	Rotation math.Vector4 // Euler angles in degrees
	Scale    math.Vector4

	ScaleMatrix    math.Matrix44
	RotateMatrix   math.Matrix44
	TransferMatrix math.Matrix44
	Matrix         math.Matrix44

	// UpdateMatrix disables composition when false. UpdateAfter is then
	// solely responsible for Matrix.
	UpdateMatrix bool

	Update      Hook // runs before composition
	UpdateAfter Hook // runs after composition
}

// New creates a posture at the origin with unit scale and identity matrices.
func New() *Posture {
	return &Posture{
		Position:       math.NewVector4(0, 0, 0),
		Rotation:       math.NewDirection(0, 0, 0),
		Scale:          math.NewDirection(1, 1, 1),
		ScaleMatrix:    math.Identity(),
		RotateMatrix:   math.Identity(),
		TransferMatrix: math.Identity(),
		Matrix:         math.Identity(),
		UpdateMatrix:   true,
	}
}

// SetPosition stages a new position.
func (p *Posture) SetPosition(v math.Vector4) {
	p.Position = math.NewVector4(v.X, v.Y, v.Z)
}

// SetRotation stages new Euler angles in degrees.
func (p *Posture) SetRotation(v math.Vector4) {
	p.Rotation = math.NewDirection(v.X, v.Y, v.Z)
}

// SetScale stages a new scale.
func (p *Posture) SetScale(v math.Vector4) {
	p.Scale = math.NewDirection(v.X, v.Y, v.Z)
}

// SetUniformScale stages the same scale on every axis.
func (p *Posture) SetUniformScale(s float64) {
	p.Scale = math.NewDirection(s, s, s)
}

// Process runs the Update hook, recomposes Matrix and runs UpdateAfter.
func (p *Posture) Process() {
	if p.Update != nil {
		p.Update(p)
	}
	if p.UpdateMatrix {
		p.Compose()
	}
	if p.UpdateAfter != nil {
		p.UpdateAfter(p)
	}
}

// Compose rebuilds the intermediate matrices and
// Matrix = Scale * Rz * Rx * Ry * Translate.
func (p *Posture) Compose() {
	p.ScaleMatrix.Scale(p.Scale.X, p.Scale.Y, p.Scale.Z, true)

	p.RotateMatrix.RotateZ(p.Rotation.Z, true)
	p.RotateMatrix.RotateX(p.Rotation.X, false)
	p.RotateMatrix.RotateY(p.Rotation.Y, false)

	p.TransferMatrix.Translate(p.Position.X, p.Position.Y, p.Position.Z, true)

	p.Matrix = p.ScaleMatrix.Mul(p.RotateMatrix).Mul(p.TransferMatrix)
}

// RotationMatrix returns the composed matrix with translation removed, used
// to carry normals into world space.
func (p *Posture) RotationMatrix() math.Matrix44 {
	return p.Matrix.RotationOnly()
}

// ClearHooks removes both hooks and re-enables composition.
func (p *Posture) ClearHooks() {
	p.Update = nil
	p.UpdateAfter = nil
	p.UpdateMatrix = true
}
