package primitive

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/basic3d/pkg/math"
)

var cubeNormals = [6]math.Vector4{
	FaceFront:  math.NewDirection(0, 0, -1),
	FaceRight:  math.NewDirection(1, 0, 0),
	FaceBack:   math.NewDirection(0, 0, 1),
	FaceLeft:   math.NewDirection(-1, 0, 0),
	FaceTop:    math.NewDirection(0, 1, 0),
	FaceBottom: math.NewDirection(0, -1, 0),
}

func (p *Primitive) validate() error {
	switch p.Kind {
	case KindPlane:
		if p.Size <= 0 || p.Division < 1 {
			return fmt.Errorf("%w: plane size %v division %d", ErrInvalidParameter, p.Size, p.Division)
		}
	case KindCube:
		if p.Size <= 0 {
			return fmt.Errorf("%w: cube size %v", ErrInvalidParameter, p.Size)
		}
	case KindSphere:
		if p.Radius <= 0 || p.Division < 2 || p.Division%2 != 0 {
			return fmt.Errorf("%w: sphere radius %v division %d", ErrInvalidParameter, p.Radius, p.Division)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidParameter, p.Kind)
	}
	return nil
}

// buildPlane lays out Division x Division quads in the XZ plane centered on
// the origin.
func (p *Primitive) buildPlane() {
	cell := p.Size / float64(p.Division)
	start := -p.Size * 0.5
	up := math.NewDirection(0, 1, 0)
	normals := [4]math.Vector4{up, up, up, up}

	p.Mesh.Vertices = make([]Vertex, 0, p.Division*p.Division*4)
	p.Mesh.Indices = make([]uint32, 0, p.Division*p.Division*6)

	for z := 0; z < p.Division; z++ {
		z0 := start + float64(z)*cell
		for x := 0; x < p.Division; x++ {
			x0 := start + float64(x)*cell
			corners := [4]math.Vector4{
				math.NewVector4(x0, 0, z0),
				math.NewVector4(x0, 0, z0+cell),
				math.NewVector4(x0+cell, 0, z0),
				math.NewVector4(x0+cell, 0, z0+cell),
			}
			p.Mesh.appendQuad(corners, normals, quadU, quadV)
		}
	}

	h := p.Size * 0.5
	p.faces = [][4]math.Vector4{{
		math.NewVector4(-h, 0, -h),
		math.NewVector4(-h, 0, h),
		math.NewVector4(h, 0, -h),
		math.NewVector4(h, 0, h),
	}}
	p.normals = []math.Vector4{up}
}

// buildCube generates 6 quads from the 8 corners of an axis-aligned cube.
func (p *Primitive) buildCube() {
	h := p.Size * 0.5
	c := [8]math.Vector4{
		math.NewVector4(-h, h, -h),
		math.NewVector4(-h, h, h),
		math.NewVector4(h, h, -h),
		math.NewVector4(h, h, h),
		math.NewVector4(-h, -h, -h),
		math.NewVector4(-h, -h, h),
		math.NewVector4(h, -h, -h),
		math.NewVector4(h, -h, h),
	}
	p.faces = [][4]math.Vector4{
		FaceFront:  {c[4], c[0], c[6], c[2]},
		FaceRight:  {c[6], c[2], c[7], c[3]},
		FaceBack:   {c[7], c[3], c[5], c[1]},
		FaceLeft:   {c[5], c[1], c[4], c[0]},
		FaceTop:    {c[0], c[1], c[2], c[3]},
		FaceBottom: {c[4], c[5], c[6], c[7]},
	}
	p.normals = cubeNormals[:]

	p.Mesh.Vertices = make([]Vertex, 0, 24)
	p.Mesh.Indices = make([]uint32, 0, 36)
	for face := range p.faces {
		n := p.normals[face]
		p.Mesh.appendQuad(p.faces[face], [4]math.Vector4{n, n, n, n}, quadU, quadV)
	}
}

// buildSphere sweeps a south-pole seed point through Division/2 latitude
// rings and Division longitude slices.
func (p *Primitive) buildSphere() {
	seed := math.NewVector4(0, -p.Radius, 0)
	rings := p.Division / 2
	angleX := func(ring int) float64 { return float64(ring) * 180.0 / float64(rings) }
	angleY := func(slice int) float64 { return float64(slice) * 360.0 / float64(p.Division) }

	p.Mesh.Vertices = make([]Vertex, 0, rings*p.Division*4)
	p.Mesh.Indices = make([]uint32, 0, rings*p.Division*6)

	for ring := 0; ring < rings; ring++ {
		anglesX := [4]float64{angleX(ring), angleX(ring + 1), angleX(ring), angleX(ring + 1)}

		for slice := 0; slice < p.Division; slice++ {
			anglesY := [4]float64{angleY(slice), angleY(slice), angleY(slice + 1), angleY(slice + 1)}

			var corners, normals [4]math.Vector4
			var u, v [4]float32
			for i := 0; i < 4; i++ {
				rot := math.NewRotateX(anglesX[i]).Mul(math.NewRotateY(anglesY[i]))
				pos := seed.Transform(rot)
				corners[i] = pos
				normals[i] = math.NewDirection(pos.X, pos.Y, pos.Z).Normalize()
				u[i] = float32(1 - anglesY[i]/360.0)
				v[i] = float32(1 - anglesX[i]/180.0)
			}
			p.Mesh.appendQuad(corners, normals, u, v)
		}
	}
}

// maxScale returns the largest absolute scale component.
func (p *Primitive) maxScale() float64 {
	s := p.Posture.Scale
	return gomath.Max(gomath.Abs(s.X), gomath.Max(gomath.Abs(s.Y), gomath.Abs(s.Z)))
}
