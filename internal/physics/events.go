package physics

import (
	"math"

	"projectile-sandbox/internal/geom"
)

// EventKind tags an InputEvent.
type EventKind uint8

const (
	EventPress EventKind = iota + 1
	EventRelease
	EventMove
	EventAimDelta
	EventPowerDelta
	EventLaunch
)

// InputEvent is one normalized input for a Step. Pointer events carry a world-space Pos;
// aim and power events carry a Delta (degrees or speed units).
type InputEvent struct {
	Kind  EventKind
	Pos   geom.Vec2
	Delta float64
}

func Press(p geom.Vec2) InputEvent   { return InputEvent{Kind: EventPress, Pos: p} }
func Release(p geom.Vec2) InputEvent { return InputEvent{Kind: EventRelease, Pos: p} }
func Move(p geom.Vec2) InputEvent    { return InputEvent{Kind: EventMove, Pos: p} }
func AimDelta(deg float64) InputEvent {
	return InputEvent{Kind: EventAimDelta, Delta: deg}
}
func PowerDelta(d float64) InputEvent {
	return InputEvent{Kind: EventPowerDelta, Delta: d}
}
func Launch() InputEvent { return InputEvent{Kind: EventLaunch} }

// valid rejects unknown kinds and non-finite payloads.
func (e InputEvent) valid() bool {
	switch e.Kind {
	case EventPress, EventRelease, EventMove:
		return e.Pos.IsFinite()
	case EventAimDelta, EventPowerDelta:
		return !math.IsNaN(e.Delta) && !math.IsInf(e.Delta, 0)
	case EventLaunch:
		return true
	}
	return false
}

// Phase is the launcher state machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAiming
	PhaseInFlight
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAiming:
		return "aiming"
	case PhaseInFlight:
		return "in-flight"
	case PhaseSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// Aim is the current launch direction (degrees) and speed.
type Aim struct {
	Angle float64
	Speed float64
}
