package scenario

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chewxy/math32"
)

// CourseName loads a generated course: "course" picks a time-based seed, "course:42" a fixed one.
const CourseName = "course"

// CourseOptions controls procedural course generation. The arena is Width x Height with the
// launcher in the bottom-left corner; Ledges platforms are spread across the rest of the floor
// with heights taken from fractal value noise.
// Seed controls randomness; Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity, and Gain control the fractal noise shape.
type CourseOptions struct {
	Seed    int64
	Width   float64
	Height  float64
	Ledges  int
	Targets int
	Coins   int

	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultCourseOptions returns a course the size of the launcher preset.
func DefaultCourseOptions() CourseOptions {
	return CourseOptions{
		Width:      1350,
		Height:     720,
		Ledges:     6,
		Targets:    3,
		Coins:      2,
		Octaves:    3,
		Frequency:  0.7,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

const (
	ledgeHalfHeight = 15
	targetRadius    = 30
	coinRadius      = 15
	coinClearance   = 40
)

// GenerateCourse builds a launcher scenario. The same options, seed included, always give the
// same course. Targets sit on the highest ledges; coins float above the next ones.
func GenerateCourse(opts CourseOptions) *File {
	def := DefaultCourseOptions()
	if opts.Width < 400 || opts.Height < 300 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.Ledges <= 0 {
		opts.Ledges = def.Ledges
	}
	if opts.Octaves <= 0 {
		opts.Octaves = def.Octaves
	}
	if opts.Frequency <= 0 {
		opts.Frequency = def.Frequency
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = def.Lacunarity
	}
	if opts.Gain <= 0 {
		opts.Gain = def.Gain
	}
	opts.Targets = min(max(opts.Targets, 0), opts.Ledges)
	opts.Coins = min(max(opts.Coins, 0), opts.Ledges-opts.Targets)
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	f := &File{
		Name:            fmt.Sprintf("%s:%d", CourseName, seed),
		Description:     "Generated course. Clear all targets.",
		Gravity:         98,
		Bounds:          Bounds{Min: Vec{0, 0}, Max: Vec{opts.Width, opts.Height}},
		WallRestitution: 0.4,
		BodyRestitution: 0.5,
		WallFriction:    0.3,
		SettleSpeed:     20,
		FlightEpsilon:   10,
		SettleTime:      1,
		Launcher: &LauncherDef{
			Projectile:   "shot",
			Origin:       Vec{40, 60},
			Muzzle:       30,
			MaxAngle:     90,
			MaxSpeed:     400,
			PowerScale:   2,
			InitialAngle: 45,
			InitialSpeed: 200,
		},
	}
	shot := 10.0
	f.Bodies = append(f.Bodies, BodyDef{
		ID: "shot", Tag: "projectile", Position: Vec{40, 60}, Mass: 1, Movable: true,
		Shape: ShapeDef{Circle: &shot},
	})

	// Ledges share the floor from 30% of the width to the right wall.
	left := 0.3 * opts.Width
	slot := (opts.Width - left) / float64(opts.Ledges)
	halfWidth := min(50, 0.4*slot)
	tops := make([]float64, opts.Ledges)
	for i := 0; i < opts.Ledges; i++ {
		h := fractalValueNoise1D(float32(i)*opts.Frequency, seed, opts.Octaves, opts.Lacunarity, opts.Gain)
		if !isFinite(h) {
			h = 0
		}
		y := (0.15 + 0.45*float64(h)) * opts.Height
		x := left + (float64(i)+0.5)*slot
		tops[i] = y + ledgeHalfHeight
		half := Vec{halfWidth, ledgeHalfHeight}
		f.Bodies = append(f.Bodies, BodyDef{
			ID: fmt.Sprintf("ledge-%d", i+1), Position: Vec{x, y}, Shape: ShapeDef{Rect: &half},
		})
	}

	order := make([]int, opts.Ledges)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return tops[order[a]] > tops[order[b]] })
	for n, i := range order[:opts.Targets] {
		r := float64(targetRadius)
		x := f.Bodies[i+1].Position[0]
		f.Bodies = append(f.Bodies, BodyDef{
			ID: fmt.Sprintf("pig-%d", n+1), Tag: "target", Position: Vec{x, tops[i] + r},
			Shape: ShapeDef{Circle: &r},
		})
	}
	for n, i := range order[opts.Targets : opts.Targets+opts.Coins] {
		r := float64(coinRadius)
		x := f.Bodies[i+1].Position[0]
		f.Bodies = append(f.Bodies, BodyDef{
			ID: fmt.Sprintf("coin-%d", n+1), Tag: "coin", Position: Vec{x, tops[i] + coinClearance + r},
			Sensor: true, Shape: ShapeDef{Circle: &r},
		})
	}
	return f
}

// parseCourse reports whether name asks for a generated course, and with which seed.
func parseCourse(name string) (seed int64, ok bool, err error) {
	rest, found := strings.CutPrefix(name, CourseName)
	switch {
	case !found:
		return 0, false, nil
	case rest == "":
		return 0, true, nil
	case rest[0] != ':':
		return 0, false, nil
	}
	seed, err = strconv.ParseInt(rest[1:], 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("course seed %q: %w", rest[1:], err)
	}
	return seed, true, nil
}

// fractalValueNoise1D is layered smooth value noise with configurable octaves, lacunarity,
// and gain. Output is in [0,1].
func fractalValueNoise1D(x float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum float32
	var amplitude float32 = 1
	var maxAmp float32 = 0
	freq := float32(1)

	for i := 0; i < octaves; i++ {
		n := valueNoise1D(x*freq, int32(seed)+int32(i))
		sum += n * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise1D is smooth value noise in [0,1] over a hashed integer lattice.
func valueNoise1D(x float32, seed int32) float32 {
	x0 := math32.Floor(x)
	t := smoothStep(x - x0)
	i := int32(x0)
	return lerp(hash1D(i, seed), hash1D(i+1, seed), t)
}

// hash1D maps an integer lattice coordinate to a deterministic pseudo-random float in [0,1].
func hash1D(x, seed int32) float32 {
	n := x*374761393 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
