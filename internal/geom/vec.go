package geom

import "math"

// Vec2 is a 2D point or vector. World space is Y-up.
type Vec2 struct {
	X float64
	Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean norm.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in v's direction, or the zero vector for a zero input.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Rotate rotates v counter-clockwise by deg degrees.
func (v Vec2) Rotate(deg float64) Vec2 {
	if deg == 0 {
		return v
	}
	s, c := math.Sincos(DegToRad(deg))
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Vec2) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// FromPolar returns the vector of length r pointing at deg degrees.
func FromPolar(r, deg float64) Vec2 {
	s, c := math.Sincos(DegToRad(deg))
	return Vec2{X: r * c, Y: r * s}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min Vec2
	Max Vec2
}

// Valid reports whether the rectangle has positive area and finite corners.
func (r Rect) Valid() bool {
	return r.Min.IsFinite() && r.Max.IsFinite() && r.Max.X > r.Min.X && r.Max.Y > r.Min.Y
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Expand grows r by e on every side along each axis.
func (r Rect) Expand(e Vec2) Rect {
	return Rect{Min: r.Min.Sub(e), Max: r.Max.Add(e)}
}
