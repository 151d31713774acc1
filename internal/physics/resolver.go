package physics

import (
	"math"

	"projectile-sandbox/internal/geom"
)

// ResolveAxis returns the post-collision velocities of a 1D collision between masses m1 and m2
// moving at u1 and u2, with restitution e. Momentum is conserved and the separation speed is
// e times the approach speed.
func ResolveAxis(u1, u2, m1, m2, e float64) (v1, v2 float64) {
	total := m1 + m2
	if total <= 0 {
		return u1, u2
	}
	v1 = ((m1-e*m2)*u1)/total + ((m2+e*m2)*u2)/total
	v2 = u1*e - u2*e + v1
	return v1, v2
}

// resolveBodies handles a collision between two movable bodies. Each axis is an independent
// 1D collision. Velocities only change while the bodies approach along the contact normal, so
// an overlap left over from an earlier frame is separated without being bounced again.
func (w *World) resolveBodies(a, b *Body, m manifold) {
	total := a.Mass + b.Mass
	if total <= 0 {
		return
	}
	if b.Velocity.Sub(a.Velocity).Dot(m.normal) < 0 {
		e := w.cfg.BodyRestitution
		ax, bx := ResolveAxis(a.Velocity.X, b.Velocity.X, a.Mass, b.Mass, e)
		ay, by := ResolveAxis(a.Velocity.Y, b.Velocity.Y, a.Mass, b.Mass, e)
		a.Velocity = geom.V(ax, ay)
		b.Velocity = geom.V(bx, by)
		a.resting = false
		b.resting = false
	}
	a.shift(m.normal.Scale(-m.depth * b.Mass / total))
	b.shift(m.normal.Scale(m.depth * a.Mass / total))
	w.reanchor(a)
	w.reanchor(b)
}

// resolveStatic handles movable body b against static body s. The least-penetration axis of
// the two bounding boxes decides whether s acts as a floor, a ceiling or a side wall.
func (w *World) resolveStatic(b, s *Body) {
	depth, axis := penetrationAxis(b, s)
	if axis < 0 {
		return
	}
	prev := b.Position
	defer func() { b.travel += geom.Distance(prev, b.Position) }()
	es := s.Extents()
	if axis == 1 {
		if b.Position.Y >= s.Position.Y {
			w.land(b, s.Position.Y+es.Y)
		} else {
			w.bounceCeiling(b, s.Position.Y-es.Y)
		}
		return
	}

	dir := 1.0
	if b.Position.X < s.Position.X || (b.Position.X == s.Position.X && b.Velocity.X > 0) {
		dir = -1
	}
	if b.Velocity.X*dir < 0 {
		// Approaching: jump clear by the body's full width and reflect.
		shift := max(2*b.Extents().X, depth)
		b.Position.X += dir * shift
		b.Velocity.X = -w.cfg.WallRestitution * b.Velocity.X
		b.Velocity.Y *= 1 - w.cfg.WallFriction
		b.resting = false
	} else {
		b.Position.X += dir * depth
	}
	w.reanchor(b)
}

// land places b on a surface at height y and bounces it. The current vertical velocity
// already carries the gravity accumulated since the last contact. Once the rebound is slower
// than SettleSpeed the body is pinned with zero velocity.
func (w *World) land(b *Body, y float64) {
	b.Position.Y = y + b.Extents().Y
	if b.Velocity.Y > 0 {
		// Already leaving the surface.
		w.reanchor(b)
		return
	}
	vy := -b.Velocity.Y * w.cfg.WallRestitution
	if math.Abs(vy) < w.cfg.SettleSpeed {
		b.Velocity = geom.Vec2{}
		b.resting = true
		w.reanchor(b)
		return
	}
	b.Velocity = geom.V(b.Velocity.X*(1-w.cfg.WallFriction), vy)
	b.resting = false
	w.reanchor(b)
}

// bounceCeiling places b just under a surface at height y and reflects upward motion.
func (w *World) bounceCeiling(b *Body, y float64) {
	b.Position.Y = y - b.Extents().Y
	if b.Velocity.Y > 0 {
		b.Velocity.Y = -b.Velocity.Y * w.cfg.WallRestitution
		b.Velocity.X *= 1 - w.cfg.WallFriction
	}
	w.reanchor(b)
}

// bounceSide clamps b to an arena side wall at x, with dir pointing back into the arena.
func (w *World) bounceSide(b *Body, x, dir float64) {
	b.Position.X = x + dir*b.Extents().X
	if b.Velocity.X*dir < 0 {
		b.Velocity.X = -b.Velocity.X * w.cfg.WallRestitution
		b.Velocity.Y *= 1 - w.cfg.WallFriction
		b.resting = false
	}
	w.reanchor(b)
}

// resolveBounds keeps b inside the arena. A body found further outside than it moved this
// step has tunnelled; it is reported and clamped like any other contact.
func (w *World) resolveBounds(b *Body) {
	floorY := w.floorY()
	if over := overshoot(b, w.cfg.Bounds, floorY); over > b.travel+1e-9 {
		w.warn(Warning{Kind: WarnTunneling, Body: b.ID, Overshoot: over, Time: w.time})
	}
	sides := BoundaryContacts(b, w.cfg.Bounds, floorY)
	if sides == 0 {
		return
	}
	if sides&SideLeft != 0 {
		w.bounceSide(b, w.cfg.Bounds.Min.X, 1)
	}
	if sides&SideRight != 0 {
		w.bounceSide(b, w.cfg.Bounds.Max.X, -1)
	}
	if sides&SideCeiling != 0 {
		w.bounceCeiling(b, w.cfg.Bounds.Max.Y)
	}
	if sides&SideFloor != 0 {
		w.land(b, floorY)
	}
}

// reanchor records b's current state as the start of a new trajectory.
// Bodies never anchored in Euler mode only have their timer reset.
func (w *World) reanchor(b *Body) {
	if b.anchored || w.cfg.Integration == ClosedForm {
		b.setAnchor(w.time)
		return
	}
	b.Timer = 0
}
