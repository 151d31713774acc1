// Package session drives one scenario through text commands. The headless runner feeds it a
// script; the sandbox console feeds it lines typed in the window.
package session

import (
	"fmt"
	"io"
	"strings"

	"projectile-sandbox/internal/commands"
	"projectile-sandbox/internal/game"
	"projectile-sandbox/internal/geom"
	"projectile-sandbox/internal/logger"
	"projectile-sandbox/internal/physics"
	"projectile-sandbox/internal/scenario"
)

// Session owns the current match and the command registry that operates on it.
type Session struct {
	// OnLoad, if set, is called after every successful load.
	OnLoad func(f *scenario.File, m *game.Match)

	dt      float64
	out     io.Writer
	log     *logger.Logger
	reg     *commands.Registry
	name    string
	match   *game.Match
	pending []physics.InputEvent
}

// New returns a session with no scenario loaded. dt is the step used by the step and run
// commands; command output goes to out.
func New(dt float64, out io.Writer, log *logger.Logger) *Session {
	s := &Session{dt: dt, out: out, log: log, reg: commands.NewRegistry()}
	s.register()
	return s
}

// Load replaces the current world with the named preset or scenario file. On error the
// current world is kept.
func (s *Session) Load(name string) error {
	f, err := scenario.Load(name)
	if err != nil {
		return err
	}
	cfg, err := f.Config()
	if err != nil {
		return err
	}
	cfg.OnWarning = func(w physics.Warning) { s.log.Log(w.String()) }
	w, err := physics.NewWorld(cfg)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", f.Name, err)
	}
	s.name = name
	s.match = game.NewMatch(w)
	s.pending = nil
	s.log.Logf("loaded %s (%d bodies)", f.Name, len(cfg.Bodies))
	if s.OnLoad != nil {
		s.OnLoad(f, s.match)
	}
	return nil
}

// Name is the name the current scenario was loaded by.
func (s *Session) Name() string { return s.name }

// Match returns the current match, or nil before the first Load.
func (s *Session) Match() *game.Match { return s.match }

// Queue adds input events for the next Advance.
func (s *Session) Queue(events ...physics.InputEvent) {
	s.pending = append(s.pending, events...)
}

// Advance steps the match once with the queued events followed by events, and logs any
// scoring. It does nothing before the first Load.
func (s *Session) Advance(dt float64, events []physics.InputEvent) {
	if s.match == nil {
		return
	}
	s.pending = append(s.pending, events...)
	s.match.Step(dt, s.pending)
	s.pending = s.pending[:0]
	for _, ev := range s.match.Events() {
		s.log.Logf("t=%.3f %s (score %d)", s.match.World().Time(), ev, s.match.Score())
	}
}

// Run executes a script, stopping at the first failing line.
func (s *Session) Run(script io.Reader) error {
	return s.reg.RunScript(script)
}

// Exec runs a single command line. Blank and comment lines do nothing.
func (s *Session) Exec(line string) error {
	args, ok := commands.Parse(line)
	if !ok {
		return nil
	}
	return s.reg.Execute(args)
}

func (s *Session) world() (*physics.World, error) {
	if s.match == nil {
		return nil, fmt.Errorf("no scenario loaded")
	}
	return s.match.World(), nil
}

func (s *Session) register() {
	s.reg.Register("load", "load a preset or scenario file: load <name>", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("load takes one scenario name")
		}
		return s.Load(args[0])
	})

	s.reg.Register("presets", "list the built-in scenarios", nil, func([]string) error {
		fmt.Fprintln(s.out, strings.Join(scenario.Presets(), " "), scenario.CourseName+"[:seed]")
		return nil
	})

	stepFS := commands.NewFlagSet("step")
	frames := stepFS.Int("n", 1, "frames to advance")
	s.reg.Register("step", "advance the simulation", stepFS, func([]string) error {
		if _, err := s.world(); err != nil {
			return err
		}
		for i := 0; i < *frames; i++ {
			s.Advance(s.dt, nil)
		}
		return nil
	})

	runFS := commands.NewFlagSet("run")
	until := runFS.String("until", "aiming", "phase to stop at (idle, aiming, in-flight, settling)")
	limit := runFS.Int("max", 10000, "give up after this many frames")
	s.reg.Register("run", "step until the launcher reaches a phase", runFS, func([]string) error {
		w, err := s.world()
		if err != nil {
			return err
		}
		for i := 0; i < *limit; i++ {
			s.Advance(s.dt, nil)
			if w.Phase().String() == *until {
				return nil
			}
		}
		return fmt.Errorf("phase %s not reached after %d frames (now %s)", *until, *limit, w.Phase())
	})

	launchFS := commands.NewFlagSet("launch")
	angle := launchFS.Float64("angle", -1, "degrees (negative keeps the current aim)")
	speed := launchFS.Float64("speed", 0, "launch speed (0 keeps the current aim)")
	s.reg.Register("launch", "fire the projectile", launchFS, func([]string) error {
		w, err := s.world()
		if err != nil {
			return err
		}
		a, sp := *angle, *speed
		if a < 0 {
			a = w.Aim().Angle
		}
		if sp == 0 {
			sp = w.Aim().Speed
		}
		if !w.Launch(a, sp) {
			return fmt.Errorf("launcher not ready (phase %s)", w.Phase())
		}
		s.log.Logf("shot %d: angle %.1f speed %.1f", w.Shots(), w.Aim().Angle, w.Aim().Speed)
		return nil
	})

	for _, kind := range []struct {
		name  string
		event func(geom.Vec2) physics.InputEvent
	}{{"press", physics.Press}, {"move", physics.Move}, {"release", physics.Release}} {
		kind := kind
		fs := commands.NewFlagSet(kind.name)
		x := fs.Float64("x", 0, "world x")
		y := fs.Float64("y", 0, "world y")
		s.reg.Register(kind.name, "queue a pointer event for the next step", fs, func([]string) error {
			s.Queue(kind.event(geom.V(*x, *y)))
			return nil
		})
	}

	aimFS := commands.NewFlagSet("aim")
	aimBy := aimFS.Float64("d", 0, "degrees")
	s.reg.Register("aim", "queue an aim change", aimFS, func([]string) error {
		s.Queue(physics.AimDelta(*aimBy))
		return nil
	})

	powerFS := commands.NewFlagSet("power")
	powerBy := powerFS.Float64("d", 0, "speed change")
	s.reg.Register("power", "queue a power change", powerFS, func([]string) error {
		s.Queue(physics.PowerDelta(*powerBy))
		return nil
	})

	gravityFS := commands.NewFlagSet("gravity")
	g := gravityFS.Float64("g", 9.8, "gravity")
	s.reg.Register("gravity", "change gravity", gravityFS, func([]string) error {
		w, err := s.world()
		if err != nil {
			return err
		}
		w.SetGravity(*g)
		return nil
	})

	s.reg.Register("state", "print every body", nil, func([]string) error {
		w, err := s.world()
		if err != nil {
			return err
		}
		s.printState(w)
		return nil
	})

	s.reg.Register("score", "print the score", nil, func([]string) error {
		if _, err := s.world(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "score=%d shots=%d cleared=%v\n", s.match.Score(), s.match.Shots(), s.match.Cleared())
		for _, t := range s.match.Targets() {
			fmt.Fprintf(s.out, "  target %s hits=%d down=%v\n", t.ID, t.Hits, t.Down)
		}
		return nil
	})

	s.reg.Register("help", "list commands", nil, func([]string) error {
		s.reg.Usage(s.out)
		return nil
	})
}

func (s *Session) printState(w *physics.World) {
	fmt.Fprintf(s.out, "%s t=%.3f phase=%s\n", s.name, w.Time(), w.Phase())
	for _, b := range w.RenderState() {
		var flags []string
		if b.Resting {
			flags = append(flags, "resting")
		}
		if b.Held {
			flags = append(flags, "held")
		}
		fmt.Fprintf(s.out, "  %-10s %-9s x=%.3f y=%.3f angle=%.1f %s\n",
			b.ID, b.Shape.Kind, b.Position.X, b.Position.Y, b.Angle, strings.Join(flags, ","))
	}
}
