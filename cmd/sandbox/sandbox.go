package main

import (
	"fmt"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"projectile-sandbox/internal/debug"
	"projectile-sandbox/internal/engineconfig"
	"projectile-sandbox/internal/game"
	"projectile-sandbox/internal/input"
	"projectile-sandbox/internal/logger"
	"projectile-sandbox/internal/physics"
	"projectile-sandbox/internal/render"
	"projectile-sandbox/internal/scenario"
	"projectile-sandbox/internal/session"
	"projectile-sandbox/internal/terminal"
)

// maxFrame caps the measured frame time so a stalled window does not launch bodies through walls.
const maxFrame = 0.05

// consoleStep is the dt used by the console's step and run commands.
const consoleStep = 1.0 / 60

var background = rl.NewColor(20, 22, 28, 255)

type sandbox struct {
	prefs    engineconfig.Prefs
	log      *logger.Logger
	session  *session.Session
	renderer *render.Renderer
	input    *input.Collector
	overlay  *debug.Overlay
	term     *terminal.Terminal
	title    string
	cleared  bool
}

func newSandbox(prefs engineconfig.Prefs, log *logger.Logger) (*sandbox, error) {
	sb := &sandbox{
		prefs:   prefs,
		log:     log,
		input:   input.New(),
		overlay: debug.New(),
	}
	sb.overlay.ShowFPS = prefs.ShowFPS
	sb.overlay.ShowMemAlloc = prefs.ShowMemAlloc
	sb.overlay.ShowStatus = prefs.ShowHUD

	sb.session = session.New(consoleStep, log.Writer(), log)
	sb.session.OnLoad = sb.loaded
	sb.term = terminal.New(log, sb.session.Exec)
	if err := sb.session.Load(prefs.Scenario); err != nil {
		return nil, err
	}
	return sb, nil
}

// loaded resets the view for a freshly loaded scenario.
func (sb *sandbox) loaded(f *scenario.File, m *game.Match) {
	sb.title = f.Name
	if f.Description != "" {
		sb.title += ": " + f.Description
	}
	sb.cleared = false
	sb.prefs.Scenario = sb.session.Name()
	sb.renderer = render.New(m.World().Bounds(), sb.prefs.WindowWidth, sb.prefs.WindowHeight)
	sb.renderer.ShowAimGuide = sb.prefs.ShowAimGuide
}

func (sb *sandbox) reload(name string) {
	if err := sb.session.Load(name); err != nil {
		sb.log.Logf("load %s: %v", name, err)
	}
}

// nextPreset returns the preset after the current scenario, wrapping around through a
// freshly generated course.
func (sb *sandbox) nextPreset() string {
	names := append(scenario.Presets(), scenario.CourseName)
	i := slices.Index(names, sb.session.Name())
	return names[(i+1)%len(names)]
}

// shortcuts handles the harness keys. Ignored while the console has the keyboard.
func (sb *sandbox) shortcuts() {
	switch {
	case rl.IsKeyPressed(rl.KeyR):
		sb.reload(sb.session.Name())
	case rl.IsKeyPressed(rl.KeyTab):
		sb.reload(sb.nextPreset())
	case rl.IsKeyPressed(rl.KeyG):
		sb.prefs.ShowAimGuide = !sb.prefs.ShowAimGuide
		sb.renderer.ShowAimGuide = sb.prefs.ShowAimGuide
	case rl.IsKeyPressed(rl.KeyH):
		sb.prefs.ShowHUD = !sb.prefs.ShowHUD
		sb.overlay.ShowStatus = sb.prefs.ShowHUD
	case rl.IsKeyPressed(rl.KeyF1):
		sb.prefs.ShowFPS = !sb.prefs.ShowFPS
		sb.overlay.ShowFPS = sb.prefs.ShowFPS
	case rl.IsKeyPressed(rl.KeyF2):
		sb.prefs.ShowMemAlloc = !sb.prefs.ShowMemAlloc
		sb.overlay.ShowMemAlloc = sb.prefs.ShowMemAlloc
	}
}

func (sb *sandbox) update(frame float32) {
	dt := float64(frame)
	if sb.prefs.FixedStep > 0 {
		dt = sb.prefs.FixedStep
	}
	dt = min(dt, maxFrame)

	sb.term.Update()
	var events []physics.InputEvent
	if !sb.term.IsOpen() {
		sb.shortcuts()
	}

	m := sb.session.Match()
	if !rl.IsWindowFullscreen() {
		sb.prefs.WindowWidth, sb.prefs.WindowHeight = rl.GetScreenWidth(), rl.GetScreenHeight()
	}
	sb.renderer.Resize(m.World().Bounds(), rl.GetScreenWidth(), rl.GetScreenHeight())
	if !sb.term.IsOpen() {
		events = sb.input.Poll(sb.renderer.Viewport(), dt)
	}

	sb.session.Advance(dt, events)
	if m.Cleared() && !sb.cleared {
		sb.cleared = true
		sb.log.Logf("all targets down in %d shots, score %d", m.Shots(), m.Score())
	}
	sb.overlay.SetStatus(sb.status()...)
}

func (sb *sandbox) status() []string {
	m := sb.session.Match()
	w := m.World()
	lines := []string{sb.title}
	if w.Launcher() != nil {
		aim := w.Aim()
		lines = append(lines,
			fmt.Sprintf("%s  angle %.0f  speed %.0f", w.Phase(), aim.Angle, aim.Speed),
			fmt.Sprintf("score %d  shots %d", m.Score(), m.Shots()))
	}
	if targets := m.Targets(); len(targets) > 0 {
		down := 0
		for _, t := range targets {
			if t.Down {
				down++
			}
		}
		line := fmt.Sprintf("targets %d/%d", down, len(targets))
		if sb.cleared {
			line += "  cleared! R to play again"
		}
		lines = append(lines, line)
	}
	if !sb.term.IsOpen() {
		if tail := sb.log.Tail(1); len(tail) > 0 {
			lines = append(lines, tail[0])
		}
	}
	return lines
}

func (sb *sandbox) draw() {
	sb.renderer.DrawWorld(sb.session.Match().World())
	sb.overlay.Draw()
	sb.term.Draw()
}
