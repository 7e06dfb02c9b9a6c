package player

import (
	"github.com/Faultbox/basic3d/internal/engine/collision"
	"github.com/Faultbox/basic3d/internal/engine/primitive"
	"github.com/Faultbox/basic3d/internal/logger"
	"github.com/Faultbox/basic3d/pkg/math"
)

// moveDirection returns the horizontal direction the wall test
// points along. Airborne players test along their horizontal velocity.
func (p *Player) moveDirection() (math.Vector4, bool) {
	if !p.jumping {
		return p.Direction, true
	}
	v := p.jumpVelocity
	h := math.NewDirection(v.X, 0, v.Z)
	if h.IsZero() {
		return math.Vector4{}, false
	}
	return h.Normalize(), true
}

// processWalls tests from the player's center height along the move
// direction and resolves the first cube side face it crosses.
func (p *Player) processWalls() {
	if p.jumping && p.jumpKind == JumpFall {
		return
	}
	dir, ok := p.moveDirection()
	if !ok {
		return
	}

	p0 := p.Position.Add(up.Scale(p.Radius))
	p1 := p0.Add(dir.Scale(p.Radius))

	for _, id := range p.collisions {
		prim := p.source.Primitive(id)
		if prim == nil || prim.Kind != primitive.KindCube {
			continue
		}
		if !collision.CheckCubeDistance(prim, p.Position, p.Radius, p.Movement) {
			continue
		}
		for _, face := range prim.SideFaces() {
			normal := math.NewDirection(face.Normal.X, 0, face.Normal.Z).Normalize()
			if normal.Dot(dir) > 0 {
				continue // receding from this face
			}
			hit, ok := collision.SegmentQuad(p0, p1, face)
			if !ok {
				continue
			}
			p.resolveWall(hit, normal, dir)
			return
		}
	}
}

// resolveWall pushes the test point back to the hit point. Airborne players
// bounce: the launch velocity turns 180 degrees around Y and the parabola
// is re-anchored at the wall. Walking players slide along the wall.
func (p *Player) resolveWall(hit, normal, dir math.Vector4) {
	pos := hit.Sub(up.Scale(p.Radius)).Sub(dir.Scale(p.Radius))
	p.Position = math.NewVector4(pos.X, pos.Y, pos.Z)

	if p.jumping {
		// Turn the launch velocity 180 degrees around Y.
		v := p.jumpVelocity
		p.jumpVelocity = math.NewDirection(-v.X, v.Y, -v.Z)
		p.anchorJump()
		p.log.Debug("wall bounce",
			logger.Vector("position", p.Position),
			logger.Vector("velocity", p.currentVelocity()))
		return
	}

	if p.state != StateForward {
		return
	}

	// Tangent to the wall, on the side the player was heading.
	tangent := math.NewDirection(normal.Z, 0, -normal.X)
	if tangent.Dot(p.Direction) < 0 {
		tangent = tangent.Scale(-1)
	}
	factor := 1 + normal.Dot(p.Direction)
	p.Position.AddInPlace(tangent.Scale(p.Movement * factor))
}

// processSpheres pushes the player's collision sphere out of sphere
// primitives.
func (p *Player) processSpheres() {
	center := p.Position.Add(up.Scale(p.Radius))

	for _, id := range p.collisions {
		prim := p.source.Primitive(id)
		if prim == nil || prim.Kind != primitive.KindSphere {
			continue
		}
		if !collision.CheckSphereDistance(prim.Center(), center, prim.BoundingRadius(), p.Radius, p.Movement) {
			continue
		}
		out, moved := collision.PushOutSphere(center, prim.Center(), prim.BoundingRadius()+p.Radius)
		if !moved {
			continue
		}
		center = out
		p.Position = math.NewVector4(out.X, out.Y-p.Radius, out.Z)
		if p.jumping {
			p.anchorJump()
		}
	}
}

// processStandingOn starts a fall once the player leaves the top face of
// the primitive it stands on.
func (p *Player) processStandingOn() {
	if p.jumping || p.standingOn == primitive.NoID {
		return
	}
	prim := p.source.Primitive(p.standingOn)
	if prim == nil {
		p.standingOn = primitive.NoID
		return
	}
	top, ok := prim.TopFace()
	if !ok {
		return
	}
	if collision.InsideQuadXZ(p.Position, top) {
		return
	}

	p.log.Debug("walked off primitive")
	if p.attacking {
		p.attacking = false
		p.attackEnd = 0
	}
	p.startJump(JumpFall)
}
