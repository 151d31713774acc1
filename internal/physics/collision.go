package physics

import (
	"projectile-sandbox/internal/geom"
)

// CirclesCollide reports whether two circles touch or overlap.
func CirclesCollide(c1 geom.Vec2, r1 float64, c2 geom.Vec2, r2 float64) bool {
	return geom.Distance(c1, c2) <= r1+r2
}

// manifold describes the deepest sub-circle overlap between two bodies.
// normal points from the first body towards the second.
type manifold struct {
	normal geom.Vec2
	depth  float64
}

// detect tests every rotated sub-circle of a against every one of b.
func detect(a, b *Body) (manifold, bool) {
	var best manifold
	hit := false
	for _, ca := range a.circles {
		pa := a.worldCircle(ca)
		for _, cb := range b.circles {
			pb := b.worldCircle(cb)
			d := geom.Distance(pa, pb)
			r := ca.Radius + cb.Radius
			if d > r {
				continue
			}
			if depth := r - d; !hit || depth > best.depth {
				n := pb.Sub(pa).Normalize()
				if n == (geom.Vec2{}) {
					n = b.Position.Sub(a.Position).Normalize()
				}
				if n == (geom.Vec2{}) {
					n = geom.V(0, 1)
				}
				best = manifold{normal: n, depth: depth}
				hit = true
			}
		}
	}
	return best, hit
}

// Collide reports whether any sub-circle of a overlaps any sub-circle of b.
// Collide(a, b) == Collide(b, a).
func Collide(a, b *Body) bool {
	_, ok := detect(a, b)
	return ok
}

// Side identifies an arena boundary.
type Side uint8

const (
	SideLeft Side = 1 << iota
	SideRight
	SideFloor
	SideCeiling
)

// BoundaryContacts returns the arena sides b touches or crosses. Each axis is compared
// independently against position ± extent; the floor uses floorY instead of bounds.Min.Y.
func BoundaryContacts(b *Body, bounds geom.Rect, floorY float64) Side {
	e := b.Extents()
	var s Side
	if b.Position.X-e.X < bounds.Min.X {
		s |= SideLeft
	}
	if b.Position.X+e.X > bounds.Max.X {
		s |= SideRight
	}
	if b.Position.Y-e.Y <= floorY {
		s |= SideFloor
	}
	if b.Position.Y+e.Y > bounds.Max.Y {
		s |= SideCeiling
	}
	return s
}

// overshoot returns how far b's extent reaches past the arena on its worst side.
func overshoot(b *Body, bounds geom.Rect, floorY float64) float64 {
	e := b.Extents()
	return max(0,
		bounds.Min.X-(b.Position.X-e.X),
		(b.Position.X+e.X)-bounds.Max.X,
		floorY-(b.Position.Y-e.Y),
		(b.Position.Y+e.Y)-bounds.Max.Y,
	)
}

// penetrationAxis returns the overlap of the two bodies' bounding boxes on the axis of least
// penetration (0 = X, 1 = Y). axis is -1 when the boxes do not overlap.
func penetrationAxis(a, b *Body) (depth float64, axis int) {
	ea, eb := a.Extents(), b.Extents()
	overlapX := min(a.Position.X+ea.X, b.Position.X+eb.X) - max(a.Position.X-ea.X, b.Position.X-eb.X)
	overlapY := min(a.Position.Y+ea.Y, b.Position.Y+eb.Y) - max(a.Position.Y-ea.Y, b.Position.Y-eb.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return 0, -1
	}
	if overlapY <= overlapX {
		return overlapY, 1
	}
	return overlapX, 0
}

// eligible decides whether a pair is tested at all.
func (w *World) eligible(a, b *Body) bool {
	switch {
	case a.disabled || b.disabled:
		return false
	case a.held || b.held:
		return false
	case !a.Movable && !b.Movable:
		return false
	case a.Group != 0 && a.Group == b.Group:
		return false
	case w.cfg.Exempt != nil && w.cfg.Exempt(a, b):
		return false
	}
	return true
}
