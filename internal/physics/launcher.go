package physics

import (
	"math"

	"projectile-sandbox/internal/geom"
)

// handle applies one input event. Events that are malformed, or that make no sense in the
// current phase, are dropped.
func (w *World) handle(ev InputEvent) {
	if w.launcher == nil || !ev.valid() {
		return
	}
	aiming := w.phase == PhaseIdle || w.phase == PhaseAiming
	switch ev.Kind {
	case EventPress:
		if !aiming {
			return
		}
		w.pressed = true
		w.aimAt(ev.Pos)
	case EventMove:
		if aiming {
			w.aimAt(ev.Pos)
		}
	case EventRelease:
		if !w.pressed {
			return
		}
		w.pressed = false
		if w.phase == PhaseAiming {
			w.aimAt(ev.Pos)
			w.launch()
		}
	case EventAimDelta:
		if aiming {
			l := w.launcher
			w.aim.Angle = clampAngle(geom.NormalizeAngleDegrees(w.aim.Angle+ev.Delta), l.MinAngle, l.MaxAngle)
			w.phase = PhaseAiming
			w.hold()
		}
	case EventPowerDelta:
		if aiming {
			w.aim.Speed = geom.Clamp(w.aim.Speed+ev.Delta, 0, w.launcher.MaxSpeed)
			w.phase = PhaseAiming
		}
	case EventLaunch:
		if aiming {
			w.launch()
		}
	}
}

// aimAt points the launcher at p; the pointer's distance from the origin sets the speed.
func (w *World) aimAt(p geom.Vec2) {
	l := w.launcher
	d := p.Sub(l.Origin)
	if d.X != 0 || d.Y != 0 {
		a := geom.NormalizeAngleDegrees(geom.RadToDeg(math.Atan2(d.Y, d.X)))
		w.aim.Angle = clampAngle(a, l.MinAngle, l.MaxAngle)
	}
	w.aim.Speed = geom.Clamp(d.Length()*l.PowerScale, 0, l.MaxSpeed)
	w.phase = PhaseAiming
	w.hold()
}

// Launch fires the projectile at the given angle (degrees) and speed, if the launcher is
// ready. It reports whether a shot was fired.
func (w *World) Launch(angle, speed float64) bool {
	if w.launcher == nil || !finite(angle) || !finite(speed) {
		return false
	}
	if w.phase != PhaseIdle && w.phase != PhaseAiming {
		return false
	}
	l := w.launcher
	w.aim = Aim{
		Angle: clampAngle(geom.NormalizeAngleDegrees(angle), l.MinAngle, l.MaxAngle),
		Speed: geom.Clamp(speed, 0, l.MaxSpeed),
	}
	w.launch()
	return true
}

func (w *World) launch() {
	p := w.shooter
	p.Position = w.muzzle()
	p.Velocity = geom.FromPolar(w.aim.Speed, w.aim.Angle)
	p.held = false
	p.resting = false
	p.disabled = false
	p.setAnchor(w.time)
	w.pressed = false
	w.phase = PhaseInFlight
	w.shots++
}

// EndShot stops the projectile where it is and starts settling. Rule layers call it when a
// shot is decided early, e.g. on hitting a target. A shot that already came to rest this
// frame is parked too, without restarting the settle time.
func (w *World) EndShot() {
	if w.shooter == nil {
		return
	}
	switch w.phase {
	case PhaseInFlight:
		w.phase = PhaseSettling
		w.settle = w.cfg.SettleTime
	case PhaseSettling:
	default:
		return
	}
	w.shooter.held = true
	w.shooter.resting = false
	w.shooter.Velocity = geom.Vec2{}
}

// hold parks the projectile in the barrel, pointing along the current aim.
func (w *World) hold() {
	p := w.shooter
	if p == nil {
		return
	}
	p.Position = w.muzzle()
	p.Velocity = geom.Vec2{}
	p.held = true
	p.resting = false
	p.anchored = false
	p.Timer = 0
}

// muzzle is where a launched projectile leaves the barrel.
func (w *World) muzzle() geom.Vec2 {
	l := w.launcher
	return l.Origin.Add(geom.FromPolar(l.Muzzle, w.aim.Angle))
}

// advancePhase runs the time-driven transitions: a shot ends once the projectile is pinned or
// nearly still, and the launcher rearms after SettleTime.
func (w *World) advancePhase(dt float64) {
	switch w.phase {
	case PhaseInFlight:
		p := w.shooter
		eps := w.cfg.FlightEpsilon
		if p.resting || p.disabled || (math.Abs(p.Velocity.X) < eps && math.Abs(p.Velocity.Y) < eps) {
			w.phase = PhaseSettling
			w.settle = w.cfg.SettleTime
		}
	case PhaseSettling:
		w.settle -= dt
		if w.settle <= 0 {
			w.settle = 0
			w.phase = PhaseAiming
			w.hold()
		}
	}
}

// clampAngle limits a to [lo, hi] (degrees, both in [0, 360)). Angles outside the range snap
// to whichever limit is nearer around the circle.
func clampAngle(a, lo, hi float64) float64 {
	if a >= lo && a <= hi {
		return a
	}
	if arcDistance(a, lo) <= arcDistance(a, hi) {
		return lo
	}
	return hi
}

func arcDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return min(d, 360-d)
}

// AimPath samples the flight the current aim would produce: up to n points, dt seconds apart,
// stopping once the path leaves the arena. Other bodies are ignored.
func (w *World) AimPath(n int, dt float64) []geom.Vec2 {
	if w.launcher == nil || n <= 0 || !(dt > 0) {
		return nil
	}
	p0 := w.muzzle()
	v0 := geom.FromPolar(w.aim.Speed, w.aim.Angle)
	b, floor := w.cfg.Bounds, w.floorY()
	out := make([]geom.Vec2, 0, n)
	for i := 1; i <= n; i++ {
		p, _ := Trajectory(p0, v0, w.cfg.Gravity, float64(i)*dt)
		if p.X < b.Min.X || p.X > b.Max.X || p.Y < floor || p.Y > b.Max.Y {
			break
		}
		out = append(out, p)
	}
	return out
}
