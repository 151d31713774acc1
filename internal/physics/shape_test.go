package physics

import (
	"math"
	"testing"

	"projectile-sandbox/internal/geom"
)

func TestDecomposeRect(t *testing.T) {
	tests := []struct {
		name      string
		halfLen   float64
		halfThick float64
		alongY    bool
		wantCount int
		wantMax   float64
	}{
		{"one pair", 32, 16, false, 2, 16},
		{"long wall", 100, 5, false, 20, 95},
		{"vertical wall", 40, 2, true, 20, 38},
		{"too short for a pair", 10, 8, false, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecomposeRect(tt.halfLen, tt.halfThick, tt.alongY)
			if len(got) != tt.wantCount {
				t.Fatalf("got %d circles, want %d", len(got), tt.wantCount)
			}
			var sum, maxOff float64
			for _, c := range got {
				if c.Radius != tt.halfThick {
					t.Errorf("radius = %v, want %v", c.Radius, tt.halfThick)
				}
				along, across := c.Offset.X, c.Offset.Y
				if tt.alongY {
					along, across = across, along
				}
				if across != 0 {
					t.Errorf("circle off the long axis: %v", c.Offset)
				}
				if math.Abs(along)+c.Radius > tt.halfLen+1e-9 {
					t.Errorf("circle at %v sticks out of the rectangle", c.Offset)
				}
				sum += along
				maxOff = max(maxOff, math.Abs(along))
			}
			if sum != 0 {
				t.Errorf("offsets are not symmetric, sum = %v", sum)
			}
			if maxOff != tt.wantMax {
				t.Errorf("outermost offset = %v, want %v", maxOff, tt.wantMax)
			}
		})
	}
}

func TestRectSubCirclesFollowLongAxis(t *testing.T) {
	tall := RectShape(2, 40).SubCircles()
	for _, c := range tall {
		if c.Offset.X != 0 {
			t.Fatalf("tall rectangle circle at %v, want on Y axis", c.Offset)
		}
	}
}

func TestShapeExtents(t *testing.T) {
	r := RectShape(10, 2)
	e := r.Extents(0)
	if e != geom.V(10, 2) {
		t.Errorf("Extents(0) = %v", e)
	}
	e = r.Extents(90)
	if math.Abs(e.X-2) > 1e-9 || math.Abs(e.Y-10) > 1e-9 {
		t.Errorf("Extents(90) = %v, want (2,10)", e)
	}
	c := CompositeShape(Circle{Offset: geom.V(3, 0), Radius: 1}, Circle{Offset: geom.V(-1, 0), Radius: 2})
	e = c.Extents(0)
	if e != geom.V(4, 2) {
		t.Errorf("composite Extents(0) = %v, want (4,2)", e)
	}
	if got := CircleShape(5).Extents(33); got != geom.V(5, 5) {
		t.Errorf("circle extents = %v", got)
	}
}

func TestShapeCheck(t *testing.T) {
	tests := []struct {
		shape Shape
		field string
	}{
		{CircleShape(1), ""},
		{CircleShape(0), "shape.radius"},
		{RectShape(1, -1), "shape.half_height"},
		{RectShape(0, 1), "shape.half_width"},
		{CompositeShape(), "shape.circles"},
		{CompositeShape(Circle{Radius: 0}), "shape.circles.radius"},
		{Shape{Kind: 42}, "shape.kind"},
	}
	for _, tt := range tests {
		if field, _ := tt.shape.check(); field != tt.field {
			t.Errorf("check(%+v) field = %q, want %q", tt.shape, field, tt.field)
		}
	}
}
