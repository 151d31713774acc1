package game

import (
	"fmt"

	"projectile-sandbox/internal/physics"
)

// Body tags the rules react to.
const (
	TagCoin   = "coin"
	TagTarget = "target"
)

const (
	// CoinValue is scored once per collected coin.
	CoinValue = 10
	// HitValue is multiplied by a target's hit count on every hit.
	HitValue = 10
	// TargetHits is how many hits knock a target down.
	TargetHits = 3
)

// EventKind classifies a scoring event.
type EventKind uint8

const (
	CoinCollected EventKind = iota + 1
	TargetHit
	TargetDown
)

func (k EventKind) String() string {
	switch k {
	case CoinCollected:
		return "coin"
	case TargetHit:
		return "hit"
	case TargetDown:
		return "down"
	default:
		return "unknown"
	}
}

// Event records one scoring change for the HUD and the log.
type Event struct {
	Kind   EventKind
	Body   physics.BodyID
	Points int
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s +%d", e.Kind, e.Body, e.Points)
}

// Target is the state of one target body.
type Target struct {
	ID   physics.BodyID
	Hits int
	Down bool
}

// Match applies the launcher-game rules to a world: coins are collected once, targets take
// hits until they fall, and any contact with either ends the current shot.
type Match struct {
	world   *physics.World
	score   int
	targets []Target
	hitShot []int // shot number of each target's last hit
	lookup  map[physics.BodyID]int
	events  []Event
}

// NewMatch scans the world's bodies for coin and target tags.
func NewMatch(w *physics.World) *Match {
	m := &Match{world: w, lookup: make(map[physics.BodyID]int)}
	for _, id := range w.Bodies() {
		b, _ := w.Body(id)
		if b.Tag == TagTarget && !b.Disabled() {
			m.lookup[id] = len(m.targets)
			m.targets = append(m.targets, Target{ID: id})
			m.hitShot = append(m.hitShot, 0)
		}
	}
	return m
}

// Step advances the world one frame and scores the projectile's contacts.
func (m *Match) Step(dt float64, events []physics.InputEvent) {
	m.events = m.events[:0]
	m.world.Step(dt, events)

	shot := m.world.Projectile()
	if shot == "" {
		return
	}
	ended := false
	for _, c := range m.world.Contacts() {
		other := c.B
		switch shot {
		case c.A:
		case c.B:
			other = c.A
		default:
			continue
		}
		if m.apply(other) {
			ended = true
		}
	}
	if ended {
		m.world.EndShot()
	}
}

// apply applies the rule for the body the projectile touched and reports whether it ends
// the shot.
func (m *Match) apply(id physics.BodyID) bool {
	b, ok := m.world.Body(id)
	if !ok || b.Disabled() {
		return false
	}
	switch b.Tag {
	case TagCoin:
		m.world.Disable(id)
		m.score += CoinValue
		m.events = append(m.events, Event{Kind: CoinCollected, Body: id, Points: CoinValue})
		return true
	case TagTarget:
		i, ok := m.lookup[id]
		if !ok || m.targets[i].Down {
			return false
		}
		// One hit per shot, however many frames the projectile stays in contact.
		shot := m.world.Shots()
		if m.hitShot[i] == shot {
			return true
		}
		m.hitShot[i] = shot
		t := &m.targets[i]
		t.Hits++
		pts := t.Hits * HitValue
		m.score += pts
		m.events = append(m.events, Event{Kind: TargetHit, Body: id, Points: pts})
		if t.Hits >= TargetHits {
			t.Down = true
			m.world.Disable(id)
			m.events = append(m.events, Event{Kind: TargetDown, Body: id})
		}
		return true
	}
	return false
}

func (m *Match) World() *physics.World { return m.world }
func (m *Match) Score() int            { return m.score }
func (m *Match) Shots() int            { return m.world.Shots() }

// Events returns the scoring events of the last Step.
func (m *Match) Events() []Event {
	return append([]Event(nil), m.events...)
}

// Targets returns every target in world order.
func (m *Match) Targets() []Target {
	return append([]Target(nil), m.targets...)
}

// Cleared reports whether the world had targets and all of them are down.
func (m *Match) Cleared() bool {
	if len(m.targets) == 0 {
		return false
	}
	for _, t := range m.targets {
		if !t.Down {
			return false
		}
	}
	return true
}
