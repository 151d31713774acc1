package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"projectile-sandbox/internal/geom"
	"projectile-sandbox/internal/physics"
)

// Keys maps keyboard keys to launcher controls.
type Keys struct {
	AimUp     int32
	AimDown   int32
	PowerUp   int32
	PowerDown int32
	Launch    int32
}

// DefaultKeys: arrows turn the barrel and change power, space fires.
func DefaultKeys() Keys {
	return Keys{
		AimUp:     rl.KeyUp,
		AimDown:   rl.KeyDown,
		PowerUp:   rl.KeyRight,
		PowerDown: rl.KeyLeft,
		Launch:    rl.KeySpace,
	}
}

// Collector turns raylib mouse and keyboard state into physics input events, once per frame.
// Dragging with the left button aims; releasing fires.
type Collector struct {
	Keys Keys
	// AimRate is degrees per second while an aim key is held.
	AimRate float64
	// PowerRate is speed units per second while a power key is held.
	PowerRate float64
	// WheelStep is the speed change per mouse wheel notch.
	WheelStep float64

	last geom.Vec2
}

// New returns a collector with the default bindings.
func New() *Collector {
	return &Collector{Keys: DefaultKeys(), AimRate: 60, PowerRate: 40, WheelStep: 5}
}

// Poll reads this frame's input. view maps the mouse from screen to world space.
func (c *Collector) Poll(view geom.Viewport, dt float64) []physics.InputEvent {
	var events []physics.InputEvent

	mp := rl.GetMousePosition()
	pos := view.ToWorld(geom.V(float64(mp.X), float64(mp.Y)))
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		events = append(events, physics.Press(pos))
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		events = append(events, physics.Release(pos))
	case rl.IsMouseButtonDown(rl.MouseButtonLeft) && pos != c.last:
		events = append(events, physics.Move(pos))
	}
	c.last = pos

	if rl.IsKeyDown(c.Keys.AimUp) {
		events = append(events, physics.AimDelta(c.AimRate*dt))
	}
	if rl.IsKeyDown(c.Keys.AimDown) {
		events = append(events, physics.AimDelta(-c.AimRate*dt))
	}
	if rl.IsKeyDown(c.Keys.PowerUp) {
		events = append(events, physics.PowerDelta(c.PowerRate*dt))
	}
	if rl.IsKeyDown(c.Keys.PowerDown) {
		events = append(events, physics.PowerDelta(-c.PowerRate*dt))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		events = append(events, physics.PowerDelta(float64(wheel)*c.WheelStep))
	}
	if rl.IsKeyPressed(c.Keys.Launch) {
		events = append(events, physics.Launch())
	}
	return events
}
