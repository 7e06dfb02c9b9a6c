package primitive

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/engine/posture"
	"github.com/Faultbox/basic3d/internal/logger"
	"github.com/Faultbox/basic3d/pkg/math"
)

// Primitive is a procedural shape with a transform. Geometry is generated
// once by Create and kept in local space.
type Primitive struct {
	*posture.Posture

	Kind     Kind
	Size     float64 // edge length for planes and cubes
	Radius   float64 // sphere radius
	Division int     // grid cells per side for planes, slices for spheres

	Mesh    Mesh
	Texture uint32 // renderer texture handle, 0 for untextured

	Visible     bool
	Lighting    bool
	Transparent bool

	created bool
	faces   [][4]math.Vector4
	normals []math.Vector4
}

func newPrimitive(kind Kind) *Primitive {
	return &Primitive{
		Posture:  posture.New(),
		Kind:     kind,
		Visible:  true,
		Lighting: true,
	}
}

// NewPlane returns an uncreated ground plane of the given edge length split
// into division x division quads.
func NewPlane(size float64, division int) *Primitive {
	p := newPrimitive(KindPlane)
	p.Size = size
	p.Division = division
	return p
}

// NewCube returns an uncreated cube with the given edge length.
func NewCube(size float64) *Primitive {
	p := newPrimitive(KindCube)
	p.Size = size
	return p
}

// NewSphere returns an uncreated sphere. division must be even.
func NewSphere(radius float64, division int) *Primitive {
	p := newPrimitive(KindSphere)
	p.Radius = radius
	p.Division = division
	return p
}

// Create validates the parameters and generates the mesh.
func (p *Primitive) Create() error {
	if p.created {
		return ErrAlreadyCreated
	}
	if err := p.validate(); err != nil {
		return err
	}

	switch p.Kind {
	case KindPlane:
		p.buildPlane()
	case KindCube:
		p.buildCube()
	case KindSphere:
		p.buildSphere()
	}
	p.created = true

	logger.Debug("primitive created",
		zap.Stringer("kind", p.Kind),
		zap.Int("vertices", len(p.Mesh.Vertices)),
		zap.Int("triangles", p.Mesh.TriangleCount()))
	return nil
}

// Created reports whether Create has succeeded.
func (p *Primitive) Created() bool {
	return p.created
}

// Process recomposes the posture matrix.
func (p *Primitive) Process() {
	p.Posture.Process()
}

// Face returns a face in world space. Corners go through the posture
// matrix, the normal through its rotation-only part. Planes expose only
// FaceTop.
func (p *Primitive) Face(ft FaceType) (Face, error) {
	index := int(ft)
	if p.Kind == KindPlane {
		if ft != FaceTop {
			return Face{}, fmt.Errorf("%w: plane %d", ErrNoFace, ft)
		}
		index = 0
	}
	if index < 0 || index >= len(p.faces) {
		return Face{}, fmt.Errorf("%w: %s %d", ErrNoFace, p.Kind, ft)
	}

	var f Face
	for i, corner := range p.faces[index] {
		f.Corners[i] = corner.Transform(p.Matrix)
	}
	f.Normal = p.normals[index].Transform(p.RotationMatrix()).Normalize()
	return f, nil
}

// TopFace returns the surface a player can land on.
func (p *Primitive) TopFace() (Face, bool) {
	if p.Kind != KindPlane && p.Kind != KindCube {
		return Face{}, false
	}
	f, err := p.Face(FaceTop)
	return f, err == nil
}

// SideFaces returns the four vertical faces of a cube, or nil.
func (p *Primitive) SideFaces() []Face {
	if p.Kind != KindCube || !p.created {
		return nil
	}
	faces := make([]Face, 0, len(SideFaceTypes))
	for _, ft := range SideFaceTypes {
		f, _ := p.Face(ft)
		faces = append(faces, f)
	}
	return faces
}

// Center returns the world-space origin of the primitive.
func (p *Primitive) Center() math.Vector4 {
	return math.NewVector4(0, 0, 0).Transform(p.Matrix)
}

// BoundingRadius returns the radius of a sphere enclosing the primitive in
// world space.
func (p *Primitive) BoundingRadius() float64 {
	s := p.maxScale()
	switch p.Kind {
	case KindCube:
		return gomath.Sqrt(3) * 0.5 * p.Size * s
	case KindPlane:
		return gomath.Sqrt2 * 0.5 * p.Size * s
	case KindSphere:
		return p.Radius * s
	}
	return 0
}
