package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// PrefsPath is the path to the sandbox preferences file, relative to the process working directory.
const PrefsPath = "config/sandbox.json"

// Prefs holds harness-only preferences (window, overlays, starting scenario). Persisted across runs.
// Physics tuning lives in the scenario files, not here.
type Prefs struct {
	Scenario     string `json:"scenario"`
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int    `json:"target_fps"`
	ShowFPS      bool   `json:"show_fps"`
	ShowMemAlloc bool   `json:"show_memalloc"`
	ShowHUD      bool   `json:"show_hud"`
	ShowAimGuide bool   `json:"show_aim_guide"`
	// FixedStep, when > 0, replaces the measured frame time with a constant dt.
	FixedStep float64 `json:"fixed_step,omitempty"`
	LogPath   string  `json:"log_path,omitempty"`
}

// Default returns the default preferences (launcher scenario, HUD and aim guide on).
func Default() Prefs {
	return Prefs{
		Scenario:     "launcher",
		WindowWidth:  1350,
		WindowHeight: 720,
		TargetFPS:    60,
		ShowHUD:      true,
		ShowAimGuide: true,
	}
}

// Load reads preferences from config/sandbox.json. See LoadFrom.
func Load() (Prefs, error) {
	return LoadFrom(PrefsPath)
}

// LoadFrom reads preferences from path. Keys missing from the file keep their defaults. If the
// file is missing, returns Default() and does not create a file. A file that exists but does not
// parse also yields Default(), together with the error so the caller can report it.
func LoadFrom(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	return p.sanitized(), nil
}

// Save writes preferences to config/sandbox.json. See SaveTo.
func Save(p Prefs) error {
	return SaveTo(PrefsPath, p)
}

// SaveTo writes preferences to path, creating the parent directory if needed.
func SaveTo(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Environment overrides, read by ApplyEnv.
const (
	EnvScenario  = "SANDBOX_SCENARIO"
	EnvLogPath   = "SANDBOX_LOG"
	EnvFixedStep = "SANDBOX_FIXED_STEP"
)

// ApplyEnv overrides p with any SANDBOX_* variables lookup finds (pass os.LookupEnv).
// A malformed value is skipped and reported; the others still apply.
func ApplyEnv(p Prefs, lookup func(string) (string, bool)) (Prefs, error) {
	var err error
	if v, ok := lookup(EnvScenario); ok && v != "" {
		p.Scenario = v
	}
	if v, ok := lookup(EnvLogPath); ok {
		p.LogPath = v
	}
	if v, ok := lookup(EnvFixedStep); ok && v != "" {
		step, perr := strconv.ParseFloat(v, 64)
		if perr != nil || step < 0 {
			err = fmt.Errorf("%s=%q: want a non-negative number of seconds", EnvFixedStep, v)
		} else {
			p.FixedStep = step
		}
	}
	return p.sanitized(), err
}

// sanitized replaces unusable window values with defaults.
func (p Prefs) sanitized() Prefs {
	d := Default()
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth, p.WindowHeight = d.WindowWidth, d.WindowHeight
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = d.TargetFPS
	}
	if p.FixedStep < 0 {
		p.FixedStep = 0
	}
	if p.Scenario == "" {
		p.Scenario = d.Scenario
	}
	return p
}
