package physics

import (
	"math"

	"projectile-sandbox/internal/geom"
)

// ShapeKind selects which fields of Shape are meaningful.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
	ShapeComposite
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeRect:
		return "rect"
	case ShapeComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Circle is one collision circle, offset from the body centre in the body's local frame.
type Circle struct {
	Offset geom.Vec2
	Radius float64
}

// Shape is the collision and drawing shape of a body.
// Circle uses Radius, Rect uses HalfWidth/HalfHeight, Composite uses Circles.
type Shape struct {
	Kind       ShapeKind
	Radius     float64
	HalfWidth  float64
	HalfHeight float64
	Circles    []Circle
}

// CircleShape returns a circle of radius r.
func CircleShape(r float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: r}
}

// RectShape returns a rectangle with the given half extents.
func RectShape(halfWidth, halfHeight float64) Shape {
	return Shape{Kind: ShapeRect, HalfWidth: halfWidth, HalfHeight: halfHeight}
}

// CompositeShape returns a shape made of the given circles.
func CompositeShape(circles ...Circle) Shape {
	return Shape{Kind: ShapeComposite, Circles: append([]Circle(nil), circles...)}
}

// check returns the offending field and a reason, or empty strings when the shape is usable.
func (s Shape) check() (field, reason string) {
	positive := func(v float64) bool { return v > 0 && !math.IsInf(v, 1) }
	switch s.Kind {
	case ShapeCircle:
		if !positive(s.Radius) {
			return "shape.radius", "must be > 0"
		}
	case ShapeRect:
		if !positive(s.HalfWidth) {
			return "shape.half_width", "must be > 0"
		}
		if !positive(s.HalfHeight) {
			return "shape.half_height", "must be > 0"
		}
	case ShapeComposite:
		if len(s.Circles) == 0 {
			return "shape.circles", "composite shape needs at least one circle"
		}
		for _, c := range s.Circles {
			if !positive(c.Radius) {
				return "shape.circles.radius", "must be > 0"
			}
			if !c.Offset.IsFinite() {
				return "shape.circles.offset", "must be finite"
			}
		}
	default:
		return "shape.kind", "unknown shape kind"
	}
	return "", ""
}

// SubCircles returns the circles used for collision tests, in the body's local frame.
func (s Shape) SubCircles() []Circle {
	switch s.Kind {
	case ShapeCircle:
		return []Circle{{Radius: s.Radius}}
	case ShapeRect:
		if s.HalfWidth >= s.HalfHeight {
			return DecomposeRect(s.HalfWidth, s.HalfHeight, false)
		}
		return DecomposeRect(s.HalfHeight, s.HalfWidth, true)
	case ShapeComposite:
		return append([]Circle(nil), s.Circles...)
	}
	return nil
}

// DecomposeRect approximates a rectangle of half-length halfLen and half-thickness halfThick
// with a row of circles of radius halfThick along its long axis. floor(halfLen/2h) circles go on
// each side of the centre at ±(2k+1)·h. A rectangle too short for one pair becomes a single
// centred circle. alongY puts the row on the local Y axis instead of X.
func DecomposeRect(halfLen, halfThick float64, alongY bool) []Circle {
	n := int(halfLen / (2 * halfThick))
	if n <= 0 {
		return []Circle{{Radius: halfThick}}
	}
	out := make([]Circle, 0, 2*n)
	at := func(d float64) Circle {
		if alongY {
			return Circle{Offset: geom.V(0, d), Radius: halfThick}
		}
		return Circle{Offset: geom.V(d, 0), Radius: halfThick}
	}
	for k := 0; k < n; k++ {
		d := float64(2*k+1) * halfThick
		out = append(out, at(-d), at(d))
	}
	return out
}

// Extents returns the half extents of the shape's axis-aligned bounding box when the body
// is rotated by angle degrees. Composite extents are symmetric about the centre.
func (s Shape) Extents(angle float64) geom.Vec2 {
	switch s.Kind {
	case ShapeCircle:
		return geom.V(s.Radius, s.Radius)
	case ShapeRect:
		sin, cos := math.Sincos(geom.DegToRad(angle))
		sin, cos = math.Abs(sin), math.Abs(cos)
		return geom.V(s.HalfWidth*cos+s.HalfHeight*sin, s.HalfWidth*sin+s.HalfHeight*cos)
	case ShapeComposite:
		var e geom.Vec2
		for _, c := range s.Circles {
			o := c.Offset.Rotate(angle)
			e.X = max(e.X, math.Abs(o.X)+c.Radius)
			e.Y = max(e.Y, math.Abs(o.Y)+c.Radius)
		}
		return e
	}
	return geom.Vec2{}
}
