package engineconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	p, err := LoadFrom(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatal(err)
	}
	if p != Default() {
		t.Errorf("got %+v, want defaults", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "sandbox.json")
	want := Default()
	want.Scenario = "bounce"
	want.ShowFPS = true
	want.FixedStep = 1.0 / 120
	if err := SaveTo(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadPartialAndInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(Prefs) bool
	}{
		{"missing keys keep defaults", `{"show_fps": true}`, false, func(p Prefs) bool {
			return p.ShowFPS && p.Scenario == "launcher" && p.WindowWidth == 1350
		}},
		{"bad window size", `{"window_width": -3, "target_fps": 0}`, false, func(p Prefs) bool {
			return p.WindowWidth == 1350 && p.WindowHeight == 720 && p.TargetFPS == 60
		}},
		{"not json", `{show_fps`, true, func(p Prefs) bool { return p == Default() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			p, err := LoadFrom(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.check(p) {
				t.Errorf("unexpected prefs %+v", p)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr bool
		want    func(Prefs) bool
	}{
		{"nothing set", nil, false, func(p Prefs) bool { return p == Default() }},
		{"all set", map[string]string{EnvScenario: "bounce", EnvLogPath: "", EnvFixedStep: "0.02"}, false, func(p Prefs) bool {
			return p.Scenario == "bounce" && p.LogPath == "" && p.FixedStep == 0.02
		}},
		{"empty scenario keeps the default", map[string]string{EnvScenario: ""}, false, func(p Prefs) bool {
			return p.Scenario == "launcher"
		}},
		{"bad step", map[string]string{EnvScenario: "bounce", EnvFixedStep: "fast"}, true, func(p Prefs) bool {
			return p.Scenario == "bounce" && p.FixedStep == 0
		}},
		{"negative step", map[string]string{EnvFixedStep: "-1"}, true, func(p Prefs) bool {
			return p.FixedStep == 0
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				v, ok := tt.vars[k]
				return v, ok
			}
			p, err := ApplyEnv(Default(), lookup)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.want(p) {
				t.Errorf("unexpected prefs %+v", p)
			}
		})
	}
}
