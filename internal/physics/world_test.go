package physics

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"projectile-sandbox/internal/geom"
)

func TestNewWorldConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"movable without mass", func(c *Config) {
			c.Bodies = []BodySpec{{ID: "a", Position: geom.V(10, 10), Shape: CircleShape(1), Movable: true}}
		}, "mass"},
		{"negative mass", func(c *Config) {
			c.Bodies = []BodySpec{{ID: "a", Shape: CircleShape(1), Mass: -1}}
		}, "mass"},
		{"zero radius", func(c *Config) {
			c.Bodies = []BodySpec{{ID: "a", Shape: CircleShape(0)}}
		}, "shape.radius"},
		{"negative half height", func(c *Config) {
			c.Bodies = []BodySpec{{ID: "a", Shape: RectShape(3, -1)}}
		}, "shape.half_height"},
		{"empty composite", func(c *Config) {
			c.Bodies = []BodySpec{{ID: "a", Shape: CompositeShape()}}
		}, "shape.circles"},
		{"missing id", func(c *Config) {
			c.Bodies = []BodySpec{{Shape: CircleShape(1)}}
		}, "id"},
		{"duplicate id", func(c *Config) {
			c.Bodies = []BodySpec{{ID: "a", Shape: CircleShape(1)}, {ID: "a", Shape: CircleShape(2)}}
		}, "id"},
		{"nan position", func(c *Config) {
			c.Bodies = []BodySpec{{ID: "a", Position: geom.V(math.NaN(), 0), Shape: CircleShape(1)}}
		}, "position"},
		{"too big for the arena", func(c *Config) {
			c.Bodies = []BodySpec{{ID: "a", Position: geom.V(50, 30), Shape: CircleShape(40), Mass: 1, Movable: true}}
		}, "shape"},
		{"inverted bounds", func(c *Config) {
			c.Bounds = geom.Rect{Min: geom.V(10, 0), Max: geom.V(0, 10)}
		}, "bounds"},
		{"restitution above one", func(c *Config) {
			c.WallRestitution = 1.5
		}, "wall_restitution"},
		{"infinite gravity", func(c *Config) {
			c.Gravity = math.Inf(1)
		}, "gravity"},
		{"floor above ceiling", func(c *Config) {
			c.FloorOffset = 60
		}, "floor_offset"},
		{"unknown projectile", func(c *Config) {
			c.Launcher = &Launcher{Projectile: "nope", MaxAngle: 90, MaxSpeed: 10}
		}, "launcher.projectile"},
		{"static projectile", func(c *Config) {
			c.Bodies = []BodySpec{{ID: "shot", Shape: CircleShape(1)}}
			c.Launcher = &Launcher{Projectile: "shot", MaxAngle: 90, MaxSpeed: 10}
		}, "launcher.projectile"},
		{"angle range reversed", func(c *Config) {
			c.Launcher = &Launcher{Projectile: "shot", MinAngle: 80, MaxAngle: 10, MaxSpeed: 10}
		}, "launcher.angles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			w, err := NewWorld(cfg)
			if err == nil {
				t.Fatal("expected an error")
			}
			if w != nil {
				t.Error("world returned alongside an error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("errors.Is(%v, ErrInvalidConfig) = false", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error %T is not a *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestStaticBodiesMayBeMassless(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = []BodySpec{{ID: "ground", Position: geom.V(50, 5), Shape: RectShape(40, 2), Velocity: geom.V(3, 3)}}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := w.Body("ground")
	if g.Velocity != (geom.Vec2{}) {
		t.Errorf("static body velocity = %v, want zero", g.Velocity)
	}
}

func TestBodiesStayInsideArena(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := DefaultConfig()
	cfg.Gravity = 50
	cfg.Bounds = geom.Rect{Min: geom.V(0, 0), Max: geom.V(200, 100)}
	cfg.FloorOffset = 5
	cfg.WallRestitution = 0.8
	cfg.BodyRestitution = 0.9
	cfg.Bodies = []BodySpec{
		{ID: "ledge", Position: geom.V(100, 40), Shape: RectShape(30, 2)},
	}
	for i := 0; i < 10; i++ {
		spec := BodySpec{
			ID:       BodyID("b" + strconv.Itoa(i)),
			Position: geom.V(10+rng.Float64()*180, 15+rng.Float64()*75),
			Velocity: geom.V(rng.Float64()*160-80, rng.Float64()*160-80),
			Mass:     1 + rng.Float64()*4,
			Movable:  true,
			Shape:    CircleShape(1 + rng.Float64()*2),
		}
		if i%3 == 0 {
			spec.Shape = RectShape(4, 1)
			spec.Angle = rng.Float64() * 360
		}
		cfg.Bodies = append(cfg.Bodies, spec)
	}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}

	floor := w.FloorY()
	for frame := 0; frame < 600; frame++ {
		w.Step(1.0/60, nil)
		for _, id := range w.Bodies() {
			b, _ := w.Body(id)
			if !b.Movable {
				continue
			}
			e := b.Extents()
			if b.Position.X-e.X < cfg.Bounds.Min.X-tol || b.Position.X+e.X > cfg.Bounds.Max.X+tol ||
				b.Position.Y-e.Y < floor-tol || b.Position.Y+e.Y > cfg.Bounds.Max.Y+tol {
				t.Fatalf("frame %d: body %s escaped to %v", frame, id, b.Position)
			}
			if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
				t.Fatalf("frame %d: body %s has non-finite state", frame, id)
			}
		}
	}
}

func TestTunnelingWarning(t *testing.T) {
	var seen []Warning
	cfg := DefaultConfig()
	cfg.Gravity = 0
	cfg.OnWarning = func(w Warning) { seen = append(seen, w) }
	cfg.Bodies = []BodySpec{
		ball("lost", geom.V(150, 30), geom.Vec2{}),
		ball("fast", geom.V(98.5, 20), geom.V(10, 0)),
	}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	w.Step(0.1, nil)

	warnings := w.Warnings()
	if len(warnings) != 1 || len(seen) != 1 {
		t.Fatalf("got %d warnings (%d via callback), want 1", len(warnings), len(seen))
	}
	if warnings[0].Kind != WarnTunneling || warnings[0].Body != "lost" {
		t.Errorf("warning = %+v", warnings[0])
	}
	if !near(warnings[0].Overshoot, 51) {
		t.Errorf("overshoot = %v, want 51", warnings[0].Overshoot)
	}

	lost, _ := w.Body("lost")
	if !near(lost.Position.X, 99) {
		t.Errorf("tunnelled body at %v, want clamped to x=99", lost.Position)
	}
	fast, _ := w.Body("fast")
	if !near(fast.Position.X, 99) || !near(fast.Velocity.X, -4) {
		t.Errorf("wall contact: pos %v vel %v, want x=99 and vx=-4", fast.Position, fast.Velocity)
	}

	w.Step(0.1, nil)
	if len(w.Warnings()) != 0 {
		t.Errorf("warnings not cleared between steps: %v", w.Warnings())
	}
}

func TestStepIgnoresInvalidDt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = []BodySpec{ball("ball", geom.V(50, 30), geom.V(5, 5))}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, dt := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		w.Step(dt, nil)
	}
	b, _ := w.Body("ball")
	if w.Time() != 0 || b.Position != geom.V(50, 30) {
		t.Errorf("invalid dt advanced the world: t=%v pos=%v", w.Time(), b.Position)
	}
}

func TestSensorContactsAreNotResolved(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = 0
	cfg.Bodies = []BodySpec{
		{ID: "coin", Tag: "coin", Position: geom.V(50, 30), Shape: CircleShape(2), Sensor: true},
		ball("ball", geom.V(50, 30), geom.V(5, 0)),
	}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	w.Step(0.01, nil)

	contacts := w.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(contacts))
	}
	if c := contacts[0]; c.A != "coin" || c.B != "ball" || !c.Sensor {
		t.Errorf("contact = %+v", c)
	}
	b, _ := w.Body("ball")
	if b.Velocity != geom.V(5, 0) {
		t.Errorf("sensor changed velocity to %v", b.Velocity)
	}
}

func TestPairFiltering(t *testing.T) {
	overlapping := func(group int) []BodySpec {
		a := ball("a", geom.V(50, 30), geom.Vec2{})
		b := ball("b", geom.V(51, 30), geom.Vec2{})
		a.Group, b.Group = group, group
		return []BodySpec{a, b}
	}
	tests := []struct {
		name   string
		group  int
		exempt func(a, b *Body) bool
		want   int
	}{
		{"default", 0, nil, 1},
		{"same group", 3, nil, 0},
		{"exempt", 0, func(a, b *Body) bool { return true }, 0},
		{"exempt other pairs", 0, func(a, b *Body) bool { return a.ID == "x" }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Gravity = 0
			cfg.Exempt = tt.exempt
			cfg.Bodies = overlapping(tt.group)
			w, err := NewWorld(cfg)
			if err != nil {
				t.Fatal(err)
			}
			w.Step(0.01, nil)
			if got := len(w.Contacts()); got != tt.want {
				t.Errorf("got %d contacts, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderStateIsACopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = []BodySpec{
		{ID: "bar", Position: geom.V(50, 30), Shape: CompositeShape(
			Circle{Offset: geom.V(-2, 0), Radius: 1},
			Circle{Offset: geom.V(2, 0), Radius: 1},
		)},
		{ID: "gone", Position: geom.V(20, 30), Shape: CircleShape(1)},
	}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !w.Disable("gone") {
		t.Fatal("Disable(gone) = false")
	}
	if w.Disable("gone") || w.Disable("missing") {
		t.Error("Disable should report false for disabled or unknown bodies")
	}

	rs := w.RenderState()
	if len(rs) != 1 || rs[0].ID != "bar" {
		t.Fatalf("render state = %+v, want only bar", rs)
	}
	rs[0].Shape.Circles[0].Radius = 99
	rs[0].Position = geom.V(0, 0)

	again := w.RenderState()
	if again[0].Shape.Circles[0].Radius != 1 || again[0].Position != geom.V(50, 30) {
		t.Errorf("mutating a snapshot changed the world: %+v", again[0])
	}
}

func TestEulerIntegrationMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = 10
	cfg.Integration = Euler
	cfg.Bodies = []BodySpec{ball("ball", geom.V(50, 30), geom.V(1, 2))}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	w.Step(0.1, nil)
	b, _ := w.Body("ball")
	if b.Anchored() {
		t.Error("euler body should not be anchored")
	}
	if !nearVec(b.Position, geom.V(50.1, 30.2)) || !nearVec(b.Velocity, geom.V(1, 1)) {
		t.Errorf("pos %v vel %v, want (50.1,30.2) and (1,1)", b.Position, b.Velocity)
	}
}

func TestParseIntegration(t *testing.T) {
	tests := []struct {
		in      string
		want    Integration
		wantErr bool
	}{
		{"", ClosedForm, false},
		{"closed-form", ClosedForm, false},
		{" Euler ", Euler, false},
		{"verlet", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseIntegration(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseIntegration(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestCollisionAgainstWallIsNotTunneling(t *testing.T) {
	tests := []struct {
		name   string
		bodies []BodySpec
	}{
		{"ball pushed into the arena side", []BodySpec{
			ball("a", geom.V(1, 20), geom.Vec2{}),
			ball("b", geom.V(3.5, 20), geom.V(-10, 0)),
		}},
		{"ball bounced off a static wall into the arena side", []BodySpec{
			ball("a", geom.V(1, 21), geom.V(1, 0)),
			{ID: "post", Position: geom.V(3, 20), Shape: RectShape(1, 5)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Gravity = 0
			cfg.Bodies = tt.bodies
			w, err := NewWorld(cfg)
			if err != nil {
				t.Fatal(err)
			}
			w.Step(0.1, nil)
			if len(w.Contacts()) == 0 {
				t.Fatal("bodies never touched")
			}
			if ws := w.Warnings(); len(ws) != 0 {
				t.Errorf("unexpected warnings: %v", ws)
			}
			a, _ := w.Body("a")
			if a.Position.X < 1-tol {
				t.Errorf("a at %v, want inside the arena", a.Position)
			}
		})
	}
}

func TestSetGravityMidFlight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bounds = geom.Rect{Min: geom.V(-1000, -1000), Max: geom.V(1000, 1000)}
	cfg.Bodies = []BodySpec{ball("ball", geom.V(0, 0), geom.V(5, 20))}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		w.Step(0.1, nil)
	}
	before, _ := w.Body("ball")

	w.SetGravity(0)
	w.Step(0.1, nil)
	after, _ := w.Body("ball")
	want := before.Position.Add(before.Velocity.Scale(0.1))
	if !nearVec(after.Position, want) || !nearVec(after.Velocity, before.Velocity) {
		t.Errorf("after gravity change: pos %v vel %v, want %v moving %v",
			after.Position, after.Velocity, want, before.Velocity)
	}

	w.SetGravity(math.NaN())
	if w.Gravity() != 0 {
		t.Errorf("gravity = %v after NaN, want 0 kept", w.Gravity())
	}
}

func TestRenderStateReportsCopyFailure(t *testing.T) {
	orig := copyShape
	t.Cleanup(func() { copyShape = orig })
	copyShape = func(dst, src *Shape) error { return errors.New("copy failed") }

	var seen []Warning
	cfg := DefaultConfig()
	cfg.OnWarning = func(w Warning) { seen = append(seen, w) }
	cfg.Bodies = []BodySpec{{ID: "post", Position: geom.V(50, 30), Shape: CircleShape(2)}}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rs := w.RenderState()
	if len(rs) != 1 || rs[0].Shape.Radius != 0 {
		t.Fatalf("render state = %+v, want post without a shape", rs)
	}
	if len(seen) != 1 || seen[0].Kind != WarnSnapshot || seen[0].Body != "post" || seen[0].Err == nil {
		t.Errorf("warnings = %+v, want one snapshot warning for post", seen)
	}
}
