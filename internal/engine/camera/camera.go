// Package camera provides the scene camera and a controller that follows a
// player.
package camera

import (
	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/logger"
	"github.com/Faultbox/basic3d/pkg/math"
)

// Default lens settings.
const (
	DefaultFOV  = 30.0 // degrees
	DefaultNear = 1.0
	DefaultFar  = 10000.0
)

// Camera holds eye, target and lens parameters and derives view and
// projection matrices once per frame.
type Camera struct {
	Position math.Vector4
	Target   math.Vector4
	Up       math.Vector4

	// Lens
	FOV    float64 // vertical field of view, radians
	Aspect float64 // width / height
	Near   float64
	Far    float64

	// Screen size in pixels
	Width  float64
	Height float64

	// Update runs at the start of Process, before matrices are derived.
	Update func(c *Camera)

	view       math.Matrix44
	projection math.Matrix44
	viewport   math.Matrix44
}

// New creates a camera looking at the origin from -Z.
func New(width, height int) *Camera {
	c := &Camera{
		Position: math.NewVector4(0, 0, -100),
		Target:   math.NewVector4(0, 0, 0),
		Up:       math.NewDirection(0, 1, 0),
		FOV:      math.DegreeToRadian(DefaultFOV),
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
	c.Resize(width, height)
	c.rebuild()
	return c
}

// Resize updates the screen size and aspect ratio.
func (c *Camera) Resize(width, height int) {
	c.Width = float64(width)
	c.Height = float64(height)
	if height > 0 {
		c.Aspect = c.Width / c.Height
	}
	c.viewport.Viewport(c.Width, c.Height)
}

// Process runs the Update hook and recomputes the matrices.
func (c *Camera) Process() {
	if c.Update != nil {
		c.Update(c)
	}
	c.rebuild()
}

// rebuild derives view and projection. Degenerate parameters keep the
// previous matrices.
func (c *Camera) rebuild() {
	if err := c.view.LookAt(c.Position, c.Target, c.Up); err != nil {
		logger.Warn("camera view unchanged",
			zap.Error(err),
			logger.Vector("position", c.Position),
			logger.Vector("target", c.Target))
	}
	if err := c.projection.Perspective(c.FOV, c.Aspect, c.Near, c.Far); err != nil {
		logger.Warn("camera projection unchanged",
			zap.Error(err),
			zap.Float64("fov", c.FOV),
			zap.Float64("near", c.Near),
			zap.Float64("far", c.Far))
	}
}

// ViewMatrix returns the view matrix from the last Process.
func (c *Camera) ViewMatrix() math.Matrix44 {
	return c.view
}

// ProjectionMatrix returns the projection matrix from the last Process.
func (c *Camera) ProjectionMatrix() math.Matrix44 {
	return c.projection
}

// BillboardMatrix returns a rotation that turns a model's local axes to
// face the camera.
func (c *Camera) BillboardMatrix() math.Matrix44 {
	return c.view.RotationOnly().Transpose()
}

// WorldToScreen projects p to pixel coordinates. Z holds normalized depth.
// ok is false when p is behind the eye.
func (c *Camera) WorldToScreen(p math.Vector4) (screen math.Vector4, ok bool) {
	clip := math.NewVector4(p.X, p.Y, p.Z).Transform(c.view).Transform(c.projection)
	if clip.W <= 0 {
		return math.Vector4{}, false
	}
	ndc := math.NewVector4(clip.X/clip.W, clip.Y/clip.W, clip.Z/clip.W)
	return ndc.Transform(c.viewport), true
}

// InScreen reports whether p projects inside the viewport and the depth
// range, with its pixel position.
func (c *Camera) InScreen(p math.Vector4) (x, y int, ok bool) {
	s, front := c.WorldToScreen(p)
	if !front || s.Z <= 0 || s.Z >= 1 {
		return 0, 0, false
	}
	if s.X < 0 || s.X >= c.Width || s.Y < 0 || s.Y >= c.Height {
		return 0, 0, false
	}
	return int(s.X), int(s.Y), true
}
