// Command sandbox opens a window on a scenario: drag or use the arrow keys to aim, release or
// press space to fire. R restarts, Tab cycles presets, G toggles the aim guide, H the HUD,
// F1 and F2 the FPS and memory counters. The grave key opens a console that takes the same
// commands as cmd/simulate (load, launch, gravity, state...).
package main

import (
	"flag"
	"fmt"
	"os"

	"projectile-sandbox/internal/engineconfig"
	"projectile-sandbox/internal/env"
	"projectile-sandbox/internal/graphics"
	"projectile-sandbox/internal/logger"
)

func main() {
	prefsPath := flag.String("prefs", engineconfig.PrefsPath, "preferences file")
	name := flag.String("scenario", "", "preset name or YAML file (default from preferences)")
	flag.Parse()

	envErr := env.Load(".env")
	prefs, prefsErr := engineconfig.LoadFrom(*prefsPath)
	prefs, overrideErr := engineconfig.ApplyEnv(prefs, os.LookupEnv)
	logPath := prefs.LogPath
	if logPath == "" {
		logPath = logger.DefaultPath
	}
	log := logger.NewAt(logPath)
	if prefsErr != nil {
		log.Logf("preferences: %v (using defaults)", prefsErr)
	}
	for _, err := range []error{envErr, overrideErr} {
		if err != nil {
			log.Logf("environment: %v", err)
		}
	}
	if *name != "" {
		prefs.Scenario = *name
	}

	sb, err := newSandbox(prefs, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}
	graphics.Run(graphics.Options{
		Title:      "Projectile Sandbox",
		Width:      prefs.WindowWidth,
		Height:     prefs.WindowHeight,
		Fullscreen: prefs.Fullscreen,
		TargetFPS:  prefs.TargetFPS,
		Background: background,
	}, sb.update, sb.draw)

	if err := engineconfig.SaveTo(*prefsPath, sb.prefs); err != nil {
		log.Logf("preferences: %v", err)
	}
}
