package physics

import (
	"math"

	"projectile-sandbox/internal/geom"
)

// Trajectory returns the position and velocity tau seconds after leaving p0 with velocity v0
// under gravity g pulling towards -Y.
func Trajectory(p0, v0 geom.Vec2, g, tau float64) (pos, vel geom.Vec2) {
	pos = geom.V(
		p0.X+v0.X*tau,
		p0.Y+v0.Y*tau-0.5*g*tau*tau,
	)
	vel = geom.V(v0.X, v0.Y-g*tau)
	return pos, vel
}

// Advance moves b to world time now. Anchored bodies are evaluated in closed form from their
// anchor; the rest take one explicit Euler step of dt. Static, held, resting and disabled
// bodies are left alone.
func Advance(b *Body, now, dt, gravity float64) {
	if !b.free() {
		b.travel = 0
		return
	}
	prev := b.Position
	if b.anchored {
		tau := now - b.anchor.T0
		b.Position, b.Velocity = Trajectory(b.anchor.P0, b.anchor.V0, gravity, tau)
		b.Timer = tau
	} else {
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		b.Velocity.Y -= gravity * dt
		b.Timer += dt
	}
	b.travel = geom.Distance(prev, b.Position)
	if b.RotateWithVelocity && (b.Velocity.X != 0 || b.Velocity.Y != 0) {
		b.Angle = geom.NormalizeAngleDegrees(geom.RadToDeg(math.Atan2(b.Velocity.Y, b.Velocity.X)))
	}
}

// setAnchor restarts b's closed-form trajectory from its current state.
func (b *Body) setAnchor(now float64) {
	b.anchor = anchor{P0: b.Position, V0: b.Velocity, T0: now}
	b.anchored = true
	b.Timer = 0
}
