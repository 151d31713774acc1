package geom

import (
	"math"

	"golang.org/x/exp/constraints"
)

// NormalizeAngleDegrees wraps a into [0, 360) with a single correction step.
// Inputs further than one turn outside the range are only moved by 360 once; callers
// feed it small per-frame deltas.
func NormalizeAngleDegrees(a float64) float64 {
	if a < 0 {
		return a + 360
	}
	if a >= 360 {
		return a - 360
	}
	return a
}

// DegToRad converts degrees to radians.
func DegToRad(a float64) float64 {
	return a * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(a float64) float64 {
	return a * 180 / math.Pi
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
