package geom

// Viewport maps a world rectangle onto a screen of Width×Height pixels.
// Screen space is Y-down with the origin at the top-left; world space is Y-up.
// The world is scaled uniformly and centred, so aspect ratio is kept.
type Viewport struct {
	World  Rect
	Width  float64
	Height float64
}

// Scale returns the number of screen pixels per world unit.
func (vp Viewport) Scale() float64 {
	if !vp.World.Valid() || vp.Width <= 0 || vp.Height <= 0 {
		return 1
	}
	return min(vp.Width/vp.World.Width(), vp.Height/vp.World.Height())
}

func (vp Viewport) offset() Vec2 {
	s := vp.Scale()
	return Vec2{
		X: (vp.Width - vp.World.Width()*s) / 2,
		Y: (vp.Height - vp.World.Height()*s) / 2,
	}
}

// ToScreen converts a world point to screen pixels.
func (vp Viewport) ToScreen(p Vec2) Vec2 {
	s := vp.Scale()
	o := vp.offset()
	return Vec2{
		X: o.X + (p.X-vp.World.Min.X)*s,
		Y: o.Y + (vp.World.Max.Y-p.Y)*s,
	}
}

// ToWorld converts screen pixels back to a world point.
func (vp Viewport) ToWorld(p Vec2) Vec2 {
	s := vp.Scale()
	o := vp.offset()
	return Vec2{
		X: vp.World.Min.X + (p.X-o.X)/s,
		Y: vp.World.Max.Y - (p.Y-o.Y)/s,
	}
}
