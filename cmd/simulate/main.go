// Command simulate runs a scenario headless, driven by a command script, and prints body state.
//
//	simulate -scenario launcher -script shots.txt
//	printf 'launch -angle 30 -speed 300\nrun\nstate\n' | simulate -script -
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"projectile-sandbox/internal/logger"
	"projectile-sandbox/internal/scenario"
	"projectile-sandbox/internal/session"
)

// demo fires one shot at the scenario's initial aim and reports where everything ended up.
const demo = `launch
run -until aiming
state
score
`

func main() {
	name := flag.String("scenario", "launcher", "preset name ("+strings.Join(scenario.Presets(), ", ")+") or YAML file")
	script := flag.String("script", "", "command script file, - for stdin (default: one demo shot)")
	dt := flag.Float64("dt", 1.0/60, "fixed time step in seconds")
	logPath := flag.String("log", "", "also write the log to this file")
	quiet := flag.Bool("quiet", false, "do not echo the log to stderr")
	flag.Parse()

	log := logger.NewAt(*logPath)
	if !*quiet {
		log.SetEcho(os.Stderr)
	}
	if err := run(*name, *script, *dt, log); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func run(name, script string, dt float64, log *logger.Logger) error {
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", dt)
	}
	var in io.Reader
	switch script {
	case "":
		in = strings.NewReader(demo)
	case "-":
		in = os.Stdin
	default:
		f, err := os.Open(script)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	s := session.New(dt, os.Stdout, log)
	if err := s.Load(name); err != nil {
		return err
	}
	return s.Run(in)
}
