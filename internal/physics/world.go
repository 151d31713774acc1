package physics

import (
	"math"

	"github.com/jinzhu/copier"

	"projectile-sandbox/internal/geom"
)

// Contact is one body pair found overlapping during a Step, in body order.
type Contact struct {
	A      BodyID
	B      BodyID
	Sensor bool
}

// RenderBody is a read-only snapshot of one body for drawing.
type RenderBody struct {
	ID       BodyID
	Tag      string
	Position geom.Vec2
	Angle    float64
	Shape    Shape
	Movable  bool
	Resting  bool
	Held     bool
}

// World owns the bodies and advances them one frame at a time.
// It is not safe for concurrent use; the frame loop owns it.
type World struct {
	cfg      Config
	bodies   []*Body
	index    map[BodyID]int
	time     float64
	phase    Phase
	aim      Aim
	pressed  bool
	settle   float64
	shots    int
	contacts []Contact
	warnings []Warning
	launcher *Launcher
	shooter  *Body
}

// NewWorld validates cfg and builds the world it describes. Bodies keep their config order,
// which is also the order pairs are resolved in.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:   cfg,
		index: make(map[BodyID]int, len(cfg.Bodies)),
	}
	room := geom.V(cfg.Bounds.Width(), cfg.Bounds.Height()-cfg.FloorOffset)
	for _, spec := range cfg.Bodies {
		if _, dup := w.index[spec.ID]; dup {
			return nil, &ConfigError{Body: spec.ID, Field: "id", Reason: "duplicate body id"}
		}
		b, err := NewBody(spec)
		if err != nil {
			return nil, err
		}
		if b.Movable {
			if e := b.Extents(); 2*e.X >= room.X || 2*e.Y >= room.Y {
				return nil, &ConfigError{Body: b.ID, Field: "shape", Reason: "does not fit inside the arena"}
			}
			if cfg.Integration == ClosedForm {
				b.setAnchor(0)
			}
		}
		w.index[b.ID] = len(w.bodies)
		w.bodies = append(w.bodies, b)
	}
	if l := cfg.Launcher; l != nil {
		i, ok := w.index[l.Projectile]
		if !ok {
			return nil, &ConfigError{Field: "launcher.projectile", Reason: "unknown body " + string(l.Projectile)}
		}
		if !w.bodies[i].Movable {
			return nil, &ConfigError{Body: l.Projectile, Field: "launcher.projectile", Reason: "projectile must be movable"}
		}
		lc := *l
		w.launcher = &lc
		w.shooter = w.bodies[i]
		w.aim = Aim{
			Angle: clampAngle(geom.NormalizeAngleDegrees(l.InitialAngle), l.MinAngle, l.MaxAngle),
			Speed: geom.Clamp(l.InitialSpeed, 0, l.MaxSpeed),
		}
		w.hold()
	}
	return w, nil
}

// SetGravity changes gravity for subsequent steps. Bodies in flight keep their current
// position and velocity and curve under the new gravity from now on.
func (w *World) SetGravity(g float64) {
	if !finite(g) {
		return
	}
	for _, b := range w.bodies {
		if b.anchored && b.free() {
			b.setAnchor(w.time)
		}
	}
	w.cfg.Gravity = g
}

// Step advances the simulation by dt: input events, integration, pair collisions in body
// order, arena boundaries, then phase transitions. A non-positive or non-finite dt is ignored.
// Pairs are resolved one after another, so a body in several contacts sees earlier results
// from the same frame.
func (w *World) Step(dt float64, events []InputEvent) {
	w.contacts = w.contacts[:0]
	w.warnings = w.warnings[:0]
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	for _, ev := range events {
		w.handle(ev)
	}

	w.time += dt
	for _, b := range w.bodies {
		Advance(b, w.time, dt, w.cfg.Gravity)
	}

	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if !w.eligible(a, b) {
				continue
			}
			m, ok := detect(a, b)
			if !ok {
				continue
			}
			sensor := a.Sensor || b.Sensor
			w.contacts = append(w.contacts, Contact{A: a.ID, B: b.ID, Sensor: sensor})
			switch {
			case sensor:
			case a.Movable && b.Movable:
				w.resolveBodies(a, b, m)
			case a.Movable:
				w.resolveStatic(a, b)
			default:
				w.resolveStatic(b, a)
			}
		}
	}

	for _, b := range w.bodies {
		if b.Movable && !b.held && !b.disabled {
			w.resolveBounds(b)
		}
	}

	w.advancePhase(dt)
}

// copyShape deep-copies src into dst for render snapshots.
var copyShape = func(dst, src *Shape) error {
	return copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true})
}

// RenderState returns a snapshot of every enabled body. Shapes are deep copies.
func (w *World) RenderState() []RenderBody {
	out := make([]RenderBody, 0, len(w.bodies))
	for _, b := range w.bodies {
		if b.disabled {
			continue
		}
		rb := RenderBody{
			ID:       b.ID,
			Tag:      b.Tag,
			Position: b.Position,
			Angle:    b.Angle,
			Movable:  b.Movable,
			Resting:  b.resting,
			Held:     b.held,
		}
		if err := copyShape(&rb.Shape, &b.Shape); err != nil {
			rb.Shape = Shape{}
			w.warn(Warning{Kind: WarnSnapshot, Body: b.ID, Time: w.time, Err: err})
		}
		out = append(out, rb)
	}
	return out
}

// Body returns a copy of the body with the given id.
func (w *World) Body(id BodyID) (Body, bool) {
	i, ok := w.index[id]
	if !ok {
		return Body{}, false
	}
	return *w.bodies[i], true
}

// Bodies returns the body ids in resolution order.
func (w *World) Bodies() []BodyID {
	ids := make([]BodyID, len(w.bodies))
	for i, b := range w.bodies {
		ids[i] = b.ID
	}
	return ids
}

// Disable removes a body from integration, collision and rendering. It reports whether the
// body existed and was enabled.
func (w *World) Disable(id BodyID) bool {
	i, ok := w.index[id]
	if !ok || w.bodies[i].disabled {
		return false
	}
	w.bodies[i].disabled = true
	return true
}

func (w *World) Time() float64       { return w.time }
func (w *World) Phase() Phase        { return w.phase }
func (w *World) Aim() Aim            { return w.aim }
func (w *World) Shots() int          { return w.shots }
func (w *World) Gravity() float64    { return w.cfg.Gravity }
func (w *World) Bounds() geom.Rect   { return w.cfg.Bounds }
func (w *World) FloorY() float64     { return w.floorY() }
func (w *World) Contacts() []Contact { return append([]Contact(nil), w.contacts...) }
func (w *World) Warnings() []Warning { return append([]Warning(nil), w.warnings...) }
func (w *World) floorY() float64     { return w.cfg.Bounds.Min.Y + w.cfg.FloorOffset }

// Launcher returns a copy of the launcher config, or nil when the world has none.
func (w *World) Launcher() *Launcher {
	if w.launcher == nil {
		return nil
	}
	l := *w.launcher
	return &l
}

// Projectile returns the launcher's projectile id, or "" without a launcher.
func (w *World) Projectile() BodyID {
	if w.shooter == nil {
		return ""
	}
	return w.shooter.ID
}

func (w *World) warn(wr Warning) {
	w.warnings = append(w.warnings, wr)
	if w.cfg.OnWarning != nil {
		w.cfg.OnWarning(wr)
	}
}
