package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options configures the window opened by Run.
type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	TargetFPS  int
	Background rl.Color
}

// Run opens the window and drives the main loop. Each frame it calls update with the frame time in
// seconds (input and simulation), then clears the screen and calls draw.
// This keeps the graphics layer separate from the physics world, which never touches raylib.
// The window is resizable; ESC or the close button quits.
func Run(opts Options, update func(dt float32), draw func()) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)

	w, h := int32(opts.Width), int32(opts.Height)
	if opts.Fullscreen {
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(w, h, opts.Title)
	defer rl.CloseWindow()

	fps := opts.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(opts.Background)
		draw()
		rl.EndDrawing()
	}
}
