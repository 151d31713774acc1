package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// refreshEvery: FPS/Mem text is rebuilt every N frames to limit allocations.
	refreshEvery = 30
)

// Overlay draws runtime counters (top-right) and caller-supplied status lines (top-left).
// Counters are off by default.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStatus   bool

	frame   uint32
	fpsText string
	memText string
	mem     runtime.MemStats
	status  []string
}

// New returns an overlay with every section hidden.
func New() *Overlay {
	return &Overlay{}
}

// SetStatus replaces the status lines drawn at the top-left (phase, aim, score...).
func (o *Overlay) SetStatus(lines ...string) {
	o.status = append(o.status[:0], lines...)
}

// Status returns the current status lines.
func (o *Overlay) Status() []string {
	return append([]string(nil), o.status...)
}

// Draw renders the enabled sections. Call last in the draw loop.
func (o *Overlay) Draw() {
	o.frame++
	refresh := o.frame%refreshEvery == 0
	if o.ShowFPS && o.fpsText == "" || o.ShowMemAlloc && o.memText == "" {
		refresh = true
	}
	if refresh {
		o.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		runtime.ReadMemStats(&o.mem)
		o.memText = fmt.Sprintf("Mem: %.2f MiB", float64(o.mem.Alloc)/(1024*1024))
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, show := range []struct {
		on   bool
		text string
	}{{o.ShowFPS, o.fpsText}, {o.ShowMemAlloc, o.memText}} {
		if !show.on {
			continue
		}
		x := screenW - rl.MeasureText(show.text, fontSize) - padding
		rl.DrawText(show.text, x, y, fontSize, rl.Green)
		y += lineHeight
	}

	if !o.ShowStatus {
		return
	}
	y = padding
	for _, line := range o.status {
		rl.DrawText(line, padding, y, fontSize, rl.RayWhite)
		y += lineHeight
	}
}
