package physics

import (
	"fmt"
	"math"
	"strings"

	"projectile-sandbox/internal/geom"
)

// Integration selects how free bodies are advanced.
type Integration uint8

const (
	// ClosedForm evaluates the projectile equations from the last anchor. Every collision re-anchors.
	ClosedForm Integration = iota
	// Euler steps position then velocity each frame. Launched projectiles still use the closed form.
	Euler
)

func (m Integration) String() string {
	switch m {
	case ClosedForm:
		return "closed-form"
	case Euler:
		return "euler"
	default:
		return "unknown"
	}
}

// ParseIntegration accepts "closed-form" or "euler" (case-insensitive). Empty means ClosedForm.
func ParseIntegration(s string) (Integration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "closed-form", "closedform":
		return ClosedForm, nil
	case "euler":
		return Euler, nil
	}
	return 0, fmt.Errorf("unknown integration %q", s)
}

const (
	DefaultSettleSpeed   = 2.0
	DefaultFlightEpsilon = 1.0
	DefaultSettleTime    = 1.0
)

// Launcher describes the cannon that fires the projectile body.
type Launcher struct {
	Projectile BodyID
	Origin     geom.Vec2
	// Muzzle is the distance from Origin at which the projectile leaves the barrel.
	Muzzle   float64
	MinAngle float64 // degrees, inclusive
	MaxAngle float64 // degrees, inclusive
	MaxSpeed float64
	// PowerScale converts pointer distance from Origin into launch speed.
	PowerScale   float64
	InitialAngle float64
	InitialSpeed float64
}

// Config is everything NewWorld needs.
type Config struct {
	Gravity float64
	Bounds  geom.Rect
	// FloorOffset raises the floor above Bounds.Min.Y.
	FloorOffset     float64
	WallRestitution float64
	BodyRestitution float64
	// WallFriction is the fraction of tangential speed lost on every wall or floor contact.
	WallFriction float64
	// SettleSpeed is the rebound speed under which a body is pinned at rest. Zero means default.
	SettleSpeed float64
	// FlightEpsilon ends a shot once both projectile velocity components drop under it. Zero means default.
	FlightEpsilon float64
	// SettleTime is how long the world stays in PhaseSettling. Zero means default.
	SettleTime  float64
	Integration Integration
	Launcher    *Launcher
	Bodies      []BodySpec
	// Exempt, if set, removes extra pairs from collision testing.
	Exempt func(a, b *Body) bool
	// OnWarning, if set, receives every warning as it is raised.
	OnWarning func(Warning)
}

// DefaultConfig returns an empty arena with the launcher-demo tuning.
func DefaultConfig() Config {
	return Config{
		Gravity:         9.8,
		Bounds:          geom.Rect{Min: geom.V(0, 0), Max: geom.V(100, 60)},
		WallRestitution: 0.4,
		BodyRestitution: 0.5,
		WallFriction:    0.3,
		SettleSpeed:     DefaultSettleSpeed,
		FlightEpsilon:   DefaultFlightEpsilon,
		SettleTime:      DefaultSettleTime,
		Integration:     ClosedForm,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

// validate fills defaults and checks world-level fields. Bodies are checked by NewBody.
func (c *Config) validate() error {
	if !finite(c.Gravity) {
		return &ConfigError{Field: "gravity", Reason: "must be finite"}
	}
	if !c.Bounds.Valid() {
		return &ConfigError{Field: "bounds", Reason: "max must be greater than min on both axes"}
	}
	if !finite(c.FloorOffset) || c.FloorOffset < 0 || c.FloorOffset >= c.Bounds.Height() {
		return &ConfigError{Field: "floor_offset", Reason: "must be inside the arena"}
	}
	if !unit(c.WallRestitution) {
		return &ConfigError{Field: "wall_restitution", Reason: "must be in [0, 1]"}
	}
	if !unit(c.BodyRestitution) {
		return &ConfigError{Field: "body_restitution", Reason: "must be in [0, 1]"}
	}
	if !unit(c.WallFriction) {
		return &ConfigError{Field: "wall_friction", Reason: "must be in [0, 1]"}
	}
	if c.SettleSpeed < 0 || c.FlightEpsilon < 0 || c.SettleTime < 0 {
		return &ConfigError{Field: "settle", Reason: "thresholds must not be negative"}
	}
	if c.SettleSpeed == 0 {
		c.SettleSpeed = DefaultSettleSpeed
	}
	if c.FlightEpsilon == 0 {
		c.FlightEpsilon = DefaultFlightEpsilon
	}
	if c.SettleTime == 0 {
		c.SettleTime = DefaultSettleTime
	}
	if c.Integration != ClosedForm && c.Integration != Euler {
		return &ConfigError{Field: "integration", Reason: "unknown mode"}
	}
	if l := c.Launcher; l != nil {
		if l.MinAngle > l.MaxAngle || l.MinAngle < 0 || l.MaxAngle >= 360 {
			return &ConfigError{Field: "launcher.angles", Reason: "need 0 <= min <= max < 360"}
		}
		if l.MaxSpeed <= 0 || l.PowerScale < 0 || l.Muzzle < 0 {
			return &ConfigError{Field: "launcher.speed", Reason: "max speed must be > 0, power scale and muzzle >= 0"}
		}
		if !l.Origin.IsFinite() {
			return &ConfigError{Field: "launcher.origin", Reason: "must be finite"}
		}
	}
	return nil
}
