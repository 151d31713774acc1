package session

import (
	"bytes"
	"strings"
	"testing"

	"projectile-sandbox/internal/game"
	"projectile-sandbox/internal/logger"
	"projectile-sandbox/internal/physics"
	"projectile-sandbox/internal/scenario"
)

const oneShot = `launch
run -until aiming
state
score
`

func newSession(t *testing.T, name string) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := New(1.0/60, &out, logger.NewAt(""))
	if err := s.Load(name); err != nil {
		t.Fatal(err)
	}
	return s, &out
}

func TestOneShotScript(t *testing.T) {
	s, out := newSession(t, "launcher")
	if err := s.Run(strings.NewReader(oneShot)); err != nil {
		t.Fatal(err)
	}
	if s.Match().Shots() != 1 {
		t.Errorf("shots = %d, want 1", s.Match().Shots())
	}
	text := out.String()
	for _, want := range []string{"launcher t=", "phase=aiming", "shot", "score="} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestStepAndGravity(t *testing.T) {
	s, _ := newSession(t, "bounce")
	script := `
# freeze everything, then advance
gravity -g 0
step -n 30
`
	if err := s.Run(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	w := s.Match().World()
	if w.Gravity() != 0 {
		t.Errorf("gravity = %v, want 0", w.Gravity())
	}
	if got, want := w.Time(), 30.0/60; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("time = %v, want %v", got, want)
	}
}

func TestQueuedEventsReachTheNextStep(t *testing.T) {
	s, _ := newSession(t, "launcher")
	if err := s.Run(strings.NewReader("move -x 400 -y 400\naim -d 5\npower -d 10\n")); err != nil {
		t.Fatal(err)
	}
	if len(s.pending) != 3 {
		t.Fatalf("pending = %d events, want 3", len(s.pending))
	}
	s.Advance(1.0/60, []physics.InputEvent{physics.Launch()})
	if len(s.pending) != 0 {
		t.Errorf("events not consumed: %d left", len(s.pending))
	}
	w := s.Match().World()
	if w.Phase() != physics.PhaseInFlight || w.Shots() != 1 {
		t.Errorf("phase = %v shots = %d, want a shot in flight", w.Phase(), w.Shots())
	}
}

func TestLaunchKeepsCurrentAim(t *testing.T) {
	s, _ := newSession(t, "launcher")
	if err := s.Exec("launch -speed 150"); err != nil {
		t.Fatal(err)
	}
	if a := s.Match().World().Aim(); a.Angle != 45 || a.Speed != 150 {
		t.Errorf("aim = %+v, want 45 deg at 150", a)
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown command", "jump\n", "line 1: unknown command: jump"},
		{"bad flag", "step -n lots\n", "line 1: step:"},
		{"phase never reached", "run -until settling -max 3\n", "not reached after 3 frames"},
		{"launch twice", "launch\nlaunch\n", "line 2: launcher not ready"},
		{"load without name", "load\n", "one scenario name"},
		{"unknown scenario", "load nowhere-at-all.yaml\n", "line 1:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t, "launcher")
			err := s.Run(strings.NewReader(tt.script))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestFailedLoadKeepsWorld(t *testing.T) {
	s, _ := newSession(t, "bounce")
	before := s.Match()
	if err := s.Exec("load nowhere-at-all.yaml"); err == nil {
		t.Fatal("load of a missing file succeeded")
	}
	if s.Match() != before || s.Name() != "bounce" {
		t.Error("failed load replaced the current world")
	}
}

func TestCommandsNeedAWorld(t *testing.T) {
	s := New(1.0/60, &bytes.Buffer{}, logger.NewAt(""))
	for _, line := range []string{"step", "run", "launch", "state", "score", "gravity -g 1"} {
		if err := s.Exec(line); err == nil || !strings.Contains(err.Error(), "no scenario loaded") {
			t.Errorf("%q: err = %v", line, err)
		}
	}
	s.Advance(1.0/60, nil)
	if err := s.Exec("  # nothing to do"); err != nil {
		t.Errorf("comment line: %v", err)
	}
}

func TestOnLoadAndHelp(t *testing.T) {
	var out bytes.Buffer
	s := New(1.0/60, &out, logger.NewAt(""))
	var loaded []string
	s.OnLoad = func(f *scenario.File, m *game.Match) {
		if m != s.Match() {
			t.Error("OnLoad got a different match")
		}
		loaded = append(loaded, f.Name)
	}
	if err := s.Run(strings.NewReader("load bounce\nload cannon-blocks\nhelp\npresets\n")); err != nil {
		t.Fatal(err)
	}
	if strings.Join(loaded, ",") != "bounce,cannon-blocks" {
		t.Errorf("OnLoad saw %v", loaded)
	}
	for _, name := range []string{"load", "step", "run", "launch", "press", "release", "state", "launcher"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help or presets output missing %s", name)
		}
	}
}
