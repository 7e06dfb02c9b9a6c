// Package primitive provides procedural plane, cube and sphere geometry that
// doubles as immovable collision surfaces.
package primitive

import (
	"errors"

	"github.com/Faultbox/basic3d/pkg/math"
)

var (
	// ErrInvalidParameter is returned by Create for non-positive sizes or
	// unusable division counts.
	ErrInvalidParameter = errors.New("invalid primitive parameter")
	// ErrAlreadyCreated is returned when Create is called twice.
	ErrAlreadyCreated = errors.New("primitive already created")
	// ErrNoFace is returned for face queries a primitive kind does not support.
	ErrNoFace = errors.New("face not available")
)

// ID identifies a primitive owned by a scene. Holders of an ID never own
// the primitive.
type ID int

// NoID marks an empty primitive reference.
const NoID ID = -1

// Kind tags the primitive variant.
type Kind int

const (
	KindPlane Kind = iota
	KindCube
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindCube:
		return "cube"
	case KindSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// FaceType selects one side of a cube.
type FaceType int

const (
	FaceFront  FaceType = iota // -Z
	FaceRight                  // +X
	FaceBack                   // +Z
	FaceLeft                   // -X
	FaceTop                    // +Y
	FaceBottom                 // -Y
)

// SideFaceTypes lists the vertical cube faces used for wall collision.
var SideFaceTypes = [...]FaceType{FaceFront, FaceRight, FaceBack, FaceLeft}

// Face is a world-space quad. Corners split into triangles (0,1,2) and (2,1,3).
type Face struct {
	Corners [4]math.Vector4
	Normal  math.Vector4
}

// Vertex is a mesh vertex.
type Vertex struct {
	Position math.Vector4
	Normal   math.Vector4
	U, V     float32
	Color    [4]uint8
}

// Mesh holds triangle geometry in local space.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

var defaultColor = [4]uint8{255, 255, 255, 255}

// Per-corner UVs shared by every generated quad.
var (
	quadU = [4]float32{0, 0, 1, 1}
	quadV = [4]float32{0, 1, 0, 1}
)

// appendQuad adds four vertices and the two triangles (0,1,2) (2,1,3).
func (m *Mesh) appendQuad(corners [4]math.Vector4, normals [4]math.Vector4, u, v [4]float32) {
	base := uint32(len(m.Vertices))
	for i := 0; i < 4; i++ {
		m.Vertices = append(m.Vertices, Vertex{
			Position: corners[i],
			Normal:   normals[i],
			U:        u[i],
			V:        v[i],
			Color:    defaultColor,
		})
	}
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base+2, base+1, base+3,
	)
}
