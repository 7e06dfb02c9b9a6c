// Package collision provides segment, quad and broad-phase tests used to
// resolve actors against primitives.
package collision

import (
	gomath "math"

	"github.com/Faultbox/basic3d/internal/engine/primitive"
	"github.com/Faultbox/basic3d/pkg/math"
)

// Tolerance for edge and parallel tests.
const epsilon = 1e-6

// Segment is a finite line from Start to End.
type Segment struct {
	Start math.Vector4
	End   math.Vector4
}

// Direction returns End - Start.
func (s Segment) Direction() math.Vector4 {
	return math.NewDirection(s.End.X-s.Start.X, s.End.Y-s.Start.Y, s.End.Z-s.Start.Z)
}

// At returns the point at parameter t along the segment.
func (s Segment) At(t float64) math.Vector4 {
	return s.Start.Add(s.Direction().Scale(t))
}

// IntersectPlane intersects the segment with the plane through point with
// the given normal. t is in [0, 1] when ok.
func (s Segment) IntersectPlane(point, normal math.Vector4) (hit math.Vector4, t float64, ok bool) {
	dir := s.Direction()
	denom := normal.Dot(dir)
	if gomath.Abs(denom) < epsilon {
		return math.Vector4{}, 0, false // parallel
	}

	t = normal.Dot(point.Sub(s.Start)) / denom
	if t < 0 || t > 1 {
		return math.Vector4{}, 0, false
	}
	return s.At(t), t, true
}

// SegmentQuad returns the single point where the segment p0-p1 crosses the
// face, if it crosses inside the quad's bounds.
func SegmentQuad(p0, p1 math.Vector4, f primitive.Face) (math.Vector4, bool) {
	seg := Segment{Start: p0, End: p1}
	hit, _, ok := seg.IntersectPlane(f.Corners[0], f.Normal)
	if !ok {
		return math.Vector4{}, false
	}
	if !InsideQuad(hit, f) {
		return math.Vector4{}, false
	}
	return hit, true
}

// InsideTriangle reports whether p, assumed on the triangle's plane, lies
// inside triangle abc. Edges count as inside.
func InsideTriangle(p, a, b, c, normal math.Vector4) bool {
	d0 := b.Sub(a).Cross(p.Sub(a)).Dot(normal)
	d1 := c.Sub(b).Cross(p.Sub(b)).Dot(normal)
	d2 := a.Sub(c).Cross(p.Sub(c)).Dot(normal)

	return (d0 >= -epsilon && d1 >= -epsilon && d2 >= -epsilon) ||
		(d0 <= epsilon && d1 <= epsilon && d2 <= epsilon)
}

// InsideQuad reports whether p lies inside f using the (0,1,2) (2,1,3) split.
func InsideQuad(p math.Vector4, f primitive.Face) bool {
	c := f.Corners
	return InsideTriangle(p, c[0], c[1], c[2], f.Normal) ||
		InsideTriangle(p, c[2], c[1], c[3], f.Normal)
}

// InsideTriangleXZ reports whether p lies inside triangle abc on the ground
// plane. Edges count as inside.
func InsideTriangleXZ(p, a, b, c math.Vec2) bool {
	d0 := b.Sub(a).Cross(p.Sub(a))
	d1 := c.Sub(b).Cross(p.Sub(b))
	d2 := a.Sub(c).Cross(p.Sub(c))

	return (d0 >= -epsilon && d1 >= -epsilon && d2 >= -epsilon) ||
		(d0 <= epsilon && d1 <= epsilon && d2 <= epsilon)
}

// InsideQuadXZ reports whether the XZ projection of p lies inside the XZ
// projection of f.
func InsideQuadXZ(p math.Vector4, f primitive.Face) bool {
	pt := p.XZ()
	c := f.Corners
	return InsideTriangleXZ(pt, c[0].XZ(), c[1].XZ(), c[2].XZ()) ||
		InsideTriangleXZ(pt, c[2].XZ(), c[1].XZ(), c[3].XZ())
}

// CheckSphereDistance is the broad-phase test against a bounding sphere. It
// keeps every target whose center lies within extent + 2*(radius+movement)
// of position. The doubled margin trades extra exact tests for never
// missing a fast mover.
func CheckSphereDistance(center, position math.Vector4, extent, radius, movement float64) bool {
	reach := extent + 2*(radius+movement)
	return center.Sub(position).LengthSquared() < reach*reach
}

// CheckCubeDistance applies the broad phase to a primitive using its
// enclosing sphere.
func CheckCubeDistance(p *primitive.Primitive, position math.Vector4, radius, movement float64) bool {
	return CheckSphereDistance(p.Center(), position, p.BoundingRadius(), radius, movement)
}

// PushOutSphere moves position out of a sphere of the given radius around
// center. It reports whether position had to move.
func PushOutSphere(position, center math.Vector4, radius float64) (math.Vector4, bool) {
	d := position.Sub(center)
	dist := d.Length()
	if dist >= radius {
		return position, false
	}
	if dist < epsilon {
		d = math.NewDirection(0, 1, 0)
		dist = 1
	}
	out := center.Add(d.Scale(radius / dist))
	return math.NewVector4(out.X, out.Y, out.Z), true
}
