package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Bird is the player avatar. X is fixed for the whole round; Y and Vel
// change once per active tick.
type Bird struct {
	X, Y float64 // Top-left corner of the hitbox
	W, H float64 // Hitbox size
	Vel  float64 // Vertical velocity, positive = down
}

// newBird places a bird at the start position for the given world size:
// a quarter of the way across and halfway down.
func newBird(worldW, worldH, w, h float64) Bird {
	return Bird{
		X: float64(int(worldW) / 4),
		Y: float64(int(worldH) / 2),
		W: w,
		H: h,
	}
}

// ApplyGravity integrates one tick: velocity first, then position.
func (b *Bird) ApplyGravity(gravity float64) {
	b.Vel += gravity
	b.Y += b.Vel
}

// ApplyImpulse replaces the current velocity. Flaps do not stack.
func (b *Bird) ApplyImpulse(impulse float64) {
	b.Vel = impulse
}

// Rect returns the bird's collision rectangle.
func (b Bird) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}
