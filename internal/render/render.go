package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"projectile-sandbox/internal/geom"
	"projectile-sandbox/internal/physics"
)

const (
	barrelThickness = 6
	guideDots       = 40
	guideStep       = 0.08 // seconds between aim guide dots
)

var (
	colorArena   = rl.NewColor(40, 44, 52, 255)
	colorFloor   = rl.NewColor(90, 70, 50, 255)
	colorStatic  = rl.NewColor(120, 120, 130, 255)
	colorMovable = rl.NewColor(220, 160, 60, 255)
	colorResting = rl.NewColor(160, 120, 60, 255)
	colorShot    = rl.NewColor(240, 240, 240, 255)
	colorBarrel  = rl.NewColor(200, 60, 60, 255)
	colorGuide   = rl.NewColor(255, 255, 255, 120)
	colorSpoke   = rl.NewColor(0, 0, 0, 90)
	tagColors    = map[string]rl.Color{"coin": rl.Gold, "target": rl.Pink, "projectile": colorShot}
)

// Renderer draws world snapshots through a viewport. It only reads physics state.
type Renderer struct {
	view         geom.Viewport
	ShowAimGuide bool
}

// New returns a renderer for the given world rectangle and screen size.
func New(world geom.Rect, width, height int) *Renderer {
	r := &Renderer{ShowAimGuide: true}
	r.Resize(world, width, height)
	return r
}

// Resize updates the viewport after a window resize or scenario change.
func (r *Renderer) Resize(world geom.Rect, width, height int) {
	r.view = geom.Viewport{World: world, Width: float64(width), Height: float64(height)}
}

// Viewport returns the current world/screen mapping (the input layer needs it too).
func (r *Renderer) Viewport() geom.Viewport { return r.view }

func (r *Renderer) screen(p geom.Vec2) rl.Vector2 {
	s := r.view.ToScreen(p)
	return rl.NewVector2(float32(s.X), float32(s.Y))
}

func (r *Renderer) length(l float64) float32 {
	return float32(l * r.view.Scale())
}

// DrawWorld draws the arena, every body and, while aiming, the launcher.
func (r *Renderer) DrawWorld(w *physics.World) {
	r.drawArena(w.Bounds(), w.FloorY())
	for _, b := range w.RenderState() {
		r.drawBody(b)
	}
	if l := w.Launcher(); l != nil {
		r.drawLauncher(w, l)
	}
}

func (r *Renderer) drawArena(bounds geom.Rect, floorY float64) {
	tl := r.screen(geom.V(bounds.Min.X, bounds.Max.Y))
	br := r.screen(geom.V(bounds.Max.X, floorY))
	rl.DrawRectangleV(tl, rl.NewVector2(br.X-tl.X, br.Y-tl.Y), colorArena)
	if floorY > bounds.Min.Y {
		bottom := r.screen(bounds.Min)
		rl.DrawRectangleV(rl.NewVector2(tl.X, br.Y), rl.NewVector2(br.X-tl.X, bottom.Y-br.Y), colorFloor)
	}
}

func (r *Renderer) bodyColor(b physics.RenderBody) rl.Color {
	if c, ok := tagColors[b.Tag]; ok {
		return c
	}
	switch {
	case !b.Movable:
		return colorStatic
	case b.Resting:
		return colorResting
	default:
		return colorMovable
	}
}

func (r *Renderer) drawBody(b physics.RenderBody) {
	c := r.bodyColor(b)
	switch b.Shape.Kind {
	case physics.ShapeCircle:
		center := r.screen(b.Position)
		rl.DrawCircleV(center, r.length(b.Shape.Radius), c)
		// Spoke so rotation is visible.
		s, co := math32.Sincos(-float32(geom.DegToRad(b.Angle)))
		rad := r.length(b.Shape.Radius)
		rl.DrawLineV(center, rl.NewVector2(center.X+co*rad, center.Y+s*rad), colorSpoke)
	case physics.ShapeRect:
		w, h := r.length(2*b.Shape.HalfWidth), r.length(2*b.Shape.HalfHeight)
		center := r.screen(b.Position)
		// Screen Y points down, so world counter-clockwise is screen clockwise.
		rl.DrawRectanglePro(rl.NewRectangle(center.X, center.Y, w, h), rl.NewVector2(w/2, h/2), -float32(b.Angle), c)
	case physics.ShapeComposite:
		for _, sc := range b.Shape.Circles {
			p := b.Position.Add(sc.Offset.Rotate(b.Angle))
			rl.DrawCircleV(r.screen(p), r.length(sc.Radius), c)
		}
	}
}

func (r *Renderer) drawLauncher(w *physics.World, l *physics.Launcher) {
	aim := w.Aim()
	origin := r.screen(l.Origin)
	s, c := math32.Sincos(float32(geom.DegToRad(aim.Angle)))
	reach := r.length(l.Muzzle)
	tip := rl.NewVector2(origin.X+c*reach, origin.Y-s*reach)
	rl.DrawLineEx(origin, tip, barrelThickness, colorBarrel)
	rl.DrawCircleV(origin, barrelThickness, colorBarrel)

	// Power bar under the barrel base.
	frac := float32(0)
	if l.MaxSpeed > 0 {
		frac = float32(aim.Speed / l.MaxSpeed)
	}
	bar := rl.NewRectangle(origin.X-30, origin.Y+14, 60, 6)
	rl.DrawRectangleLinesEx(bar, 1, colorGuide)
	bar.Width *= frac
	rl.DrawRectangleRec(bar, colorBarrel)

	phase := w.Phase()
	if !r.ShowAimGuide || (phase != physics.PhaseIdle && phase != physics.PhaseAiming) {
		return
	}
	for i, p := range w.AimPath(guideDots, guideStep) {
		radius := math32.Max(1, 3-float32(i)*0.05)
		rl.DrawCircleV(r.screen(p), radius, colorGuide)
	}
}
