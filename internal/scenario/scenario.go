package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"projectile-sandbox/internal/geom"
	"projectile-sandbox/internal/physics"
)

// Vec is a YAML [x, y] pair.
type Vec [2]float64

func (v Vec) vec2() geom.Vec2 { return geom.V(v[0], v[1]) }

// Bounds is the arena rectangle.
type Bounds struct {
	Min Vec `yaml:"min"`
	Max Vec `yaml:"max"`
}

// CircleDef is one circle of a composite shape.
type CircleDef struct {
	Offset Vec     `yaml:"offset,omitempty"`
	Radius float64 `yaml:"radius"`
}

// ShapeDef sets exactly one of Circle (radius), Rect (half width, half height) or Circles.
type ShapeDef struct {
	Circle  *float64    `yaml:"circle,omitempty"`
	Rect    *Vec        `yaml:"rect,omitempty"`
	Circles []CircleDef `yaml:"circles,omitempty"`
}

// BodyDef is one body of a scenario file.
type BodyDef struct {
	ID                 string   `yaml:"id"`
	Tag                string   `yaml:"tag,omitempty"`
	Position           Vec      `yaml:"position"`
	Velocity           Vec      `yaml:"velocity,omitempty"`
	Angle              float64  `yaml:"angle,omitempty"`
	Mass               float64  `yaml:"mass,omitempty"`
	Shape              ShapeDef `yaml:"shape"`
	Movable            bool     `yaml:"movable,omitempty"`
	Sensor             bool     `yaml:"sensor,omitempty"`
	Group              int      `yaml:"group,omitempty"`
	RotateWithVelocity bool     `yaml:"rotate_with_velocity,omitempty"`
}

// LauncherDef configures the cannon.
type LauncherDef struct {
	Projectile   string  `yaml:"projectile"`
	Origin       Vec     `yaml:"origin"`
	Muzzle       float64 `yaml:"muzzle,omitempty"`
	MinAngle     float64 `yaml:"min_angle,omitempty"`
	MaxAngle     float64 `yaml:"max_angle"`
	MaxSpeed     float64 `yaml:"max_speed"`
	PowerScale   float64 `yaml:"power_scale,omitempty"`
	InitialAngle float64 `yaml:"initial_angle,omitempty"`
	InitialSpeed float64 `yaml:"initial_speed,omitempty"`
}

// File is a parsed scenario. Zero tuning fields fall back to the physics defaults where the
// physics package has one.
type File struct {
	Name            string       `yaml:"name"`
	Description     string       `yaml:"description,omitempty"`
	Gravity         float64      `yaml:"gravity"`
	Bounds          Bounds       `yaml:"bounds"`
	FloorOffset     float64      `yaml:"floor_offset,omitempty"`
	WallRestitution float64      `yaml:"wall_restitution"`
	BodyRestitution float64      `yaml:"body_restitution"`
	WallFriction    float64      `yaml:"wall_friction,omitempty"`
	SettleSpeed     float64      `yaml:"settle_speed,omitempty"`
	FlightEpsilon   float64      `yaml:"flight_epsilon,omitempty"`
	SettleTime      float64      `yaml:"settle_time,omitempty"`
	Integration     string       `yaml:"integration,omitempty"`
	Launcher        *LauncherDef `yaml:"launcher,omitempty"`
	Bodies          []BodyDef    `yaml:"bodies"`
}

// Decode reads one scenario document. Unknown keys are errors.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode scenario: empty document")
		}
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &f, nil
}

// Parse decodes a scenario from memory.
func Parse(data []byte) (*File, error) {
	return Decode(bytes.NewReader(data))
}

// LoadFile reads and decodes the scenario at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Config converts the file into a physics config. Shape and range checks are left to
// physics.NewWorld.
func (f *File) Config() (physics.Config, error) {
	mode, err := physics.ParseIntegration(f.Integration)
	if err != nil {
		return physics.Config{}, fmt.Errorf("scenario %s: %w", f.Name, err)
	}
	cfg := physics.Config{
		Gravity:         f.Gravity,
		Bounds:          geom.Rect{Min: f.Bounds.Min.vec2(), Max: f.Bounds.Max.vec2()},
		FloorOffset:     f.FloorOffset,
		WallRestitution: f.WallRestitution,
		BodyRestitution: f.BodyRestitution,
		WallFriction:    f.WallFriction,
		SettleSpeed:     f.SettleSpeed,
		FlightEpsilon:   f.FlightEpsilon,
		SettleTime:      f.SettleTime,
		Integration:     mode,
		Bodies:          make([]physics.BodySpec, 0, len(f.Bodies)),
	}
	for i, b := range f.Bodies {
		shape, err := b.Shape.shape()
		if err != nil {
			return physics.Config{}, fmt.Errorf("scenario %s: body %d (%q): %w", f.Name, i, b.ID, err)
		}
		cfg.Bodies = append(cfg.Bodies, physics.BodySpec{
			ID:                 physics.BodyID(b.ID),
			Tag:                b.Tag,
			Position:           b.Position.vec2(),
			Velocity:           b.Velocity.vec2(),
			Angle:              b.Angle,
			Mass:               b.Mass,
			Shape:              shape,
			Movable:            b.Movable,
			Sensor:             b.Sensor,
			Group:              b.Group,
			RotateWithVelocity: b.RotateWithVelocity,
		})
	}
	if l := f.Launcher; l != nil {
		cfg.Launcher = &physics.Launcher{
			Projectile:   physics.BodyID(l.Projectile),
			Origin:       l.Origin.vec2(),
			Muzzle:       l.Muzzle,
			MinAngle:     l.MinAngle,
			MaxAngle:     l.MaxAngle,
			MaxSpeed:     l.MaxSpeed,
			PowerScale:   l.PowerScale,
			InitialAngle: l.InitialAngle,
			InitialSpeed: l.InitialSpeed,
		}
	}
	return cfg, nil
}

// World builds the world the file describes.
func (f *File) World() (*physics.World, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	w, err := physics.NewWorld(cfg)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", f.Name, err)
	}
	return w, nil
}

func (s ShapeDef) shape() (physics.Shape, error) {
	set := 0
	if s.Circle != nil {
		set++
	}
	if s.Rect != nil {
		set++
	}
	if len(s.Circles) > 0 {
		set++
	}
	if set != 1 {
		return physics.Shape{}, fmt.Errorf("shape needs exactly one of circle, rect or circles, got %d", set)
	}
	switch {
	case s.Circle != nil:
		return physics.CircleShape(*s.Circle), nil
	case s.Rect != nil:
		return physics.RectShape(s.Rect[0], s.Rect[1]), nil
	}
	circles := make([]physics.Circle, len(s.Circles))
	for i, c := range s.Circles {
		circles[i] = physics.Circle{Offset: c.Offset.vec2(), Radius: c.Radius}
	}
	return physics.CompositeShape(circles...), nil
}
