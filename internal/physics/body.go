package physics

import (
	"math"

	"projectile-sandbox/internal/geom"
)

// BodyID keys a body inside a World.
type BodyID string

// BodySpec describes a body at world creation.
type BodySpec struct {
	ID       BodyID
	Tag      string
	Position geom.Vec2
	Velocity geom.Vec2
	Angle    float64 // degrees
	Mass     float64
	Shape    Shape
	Movable  bool
	// Sensor bodies are reported as contacts but never pushed or bounced.
	Sensor bool
	// Bodies sharing a non-zero group are never tested against each other.
	Group              int
	RotateWithVelocity bool
}

// Body is a movable or static object owned by a World.
// Only the integrator and the resolver change a dynamic body's position and velocity.
type Body struct {
	ID                 BodyID
	Tag                string
	Position           geom.Vec2
	Velocity           geom.Vec2
	Angle              float64
	Mass               float64
	Shape              Shape
	Movable            bool
	Sensor             bool
	Group              int
	RotateWithVelocity bool
	// Timer is the time since the last contact or trajectory anchor.
	Timer float64

	circles  []Circle
	anchor   anchor
	anchored bool
	resting  bool
	held     bool
	disabled bool
	travel   float64 // distance moved by the last integration step
}

// anchor is the launch point of a closed-form trajectory.
type anchor struct {
	P0 geom.Vec2
	V0 geom.Vec2
	T0 float64
}

// NewBody validates spec and returns the body it describes.
func NewBody(spec BodySpec) (*Body, error) {
	if spec.ID == "" {
		return nil, &ConfigError{Field: "id", Reason: "body id is required"}
	}
	if field, reason := spec.Shape.check(); field != "" {
		return nil, &ConfigError{Body: spec.ID, Field: field, Reason: reason}
	}
	if math.IsNaN(spec.Mass) || math.IsInf(spec.Mass, 0) || spec.Mass < 0 {
		return nil, &ConfigError{Body: spec.ID, Field: "mass", Reason: "must be a finite value >= 0"}
	}
	if spec.Movable && spec.Mass <= 0 {
		return nil, &ConfigError{Body: spec.ID, Field: "mass", Reason: "movable bodies need mass > 0"}
	}
	if !spec.Position.IsFinite() || !spec.Velocity.IsFinite() {
		return nil, &ConfigError{Body: spec.ID, Field: "position", Reason: "position and velocity must be finite"}
	}
	b := &Body{
		ID:                 spec.ID,
		Tag:                spec.Tag,
		Position:           spec.Position,
		Angle:              spec.Angle,
		Mass:               spec.Mass,
		Shape:              spec.Shape,
		Movable:            spec.Movable,
		Sensor:             spec.Sensor,
		Group:              spec.Group,
		RotateWithVelocity: spec.RotateWithVelocity,
		circles:            spec.Shape.SubCircles(),
	}
	if spec.Movable {
		b.Velocity = spec.Velocity
	}
	return b, nil
}

// Extents returns the body's current AABB half extents.
func (b *Body) Extents() geom.Vec2 {
	return b.Shape.Extents(b.Angle)
}

// Resting reports whether the body has settled and is pinned in place.
func (b *Body) Resting() bool { return b.resting }

// Held reports whether the body is a projectile waiting in the launcher.
func (b *Body) Held() bool { return b.held }

// Disabled reports whether the body has been removed from the simulation.
func (b *Body) Disabled() bool { return b.disabled }

// Anchored reports whether the body follows a closed-form trajectory.
func (b *Body) Anchored() bool { return b.anchored }

// shift moves b by d outside of integration. The distance counts towards this step's travel,
// so a body pushed against the arena by a collision is not mistaken for one that tunnelled.
func (b *Body) shift(d geom.Vec2) {
	b.Position = b.Position.Add(d)
	b.travel += d.Length()
}

// free reports whether the integrator should move the body.
func (b *Body) free() bool {
	return b.Movable && !b.resting && !b.held && !b.disabled
}

// worldCircle returns sub-circle c in world coordinates.
func (b *Body) worldCircle(c Circle) geom.Vec2 {
	return b.Position.Add(c.Offset.Rotate(b.Angle))
}
