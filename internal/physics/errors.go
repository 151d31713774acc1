package physics

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every *ConfigError with errors.Is.
var ErrInvalidConfig = errors.New("invalid physics config")

// ConfigError reports a configuration problem found by NewWorld or NewBody.
// Body is empty for world-level fields.
type ConfigError struct {
	Body   BodyID
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("physics: body %q: %s: %s", e.Body, e.Field, e.Reason)
	}
	return fmt.Sprintf("physics: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// WarningKind classifies a non-fatal simulation problem.
type WarningKind uint8

const (
	// WarnTunneling: a body ended a step further outside the arena than it travelled that step.
	WarnTunneling WarningKind = iota + 1
	// WarnSnapshot: a body's shape could not be copied into a render snapshot.
	WarnSnapshot
)

func (k WarningKind) String() string {
	switch k {
	case WarnTunneling:
		return "tunneling"
	case WarnSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal problem the world corrected on its own.
type Warning struct {
	Kind      WarningKind
	Body      BodyID
	Overshoot float64
	Time      float64
	Err       error
}

func (w Warning) String() string {
	if w.Kind == WarnSnapshot {
		return fmt.Sprintf("t=%.3f %s: body %q drawn without a shape: %v", w.Time, w.Kind, w.Body, w.Err)
	}
	return fmt.Sprintf("t=%.3f %s: body %q was %.3f outside the arena, clamped", w.Time, w.Kind, w.Body, w.Overshoot)
}
