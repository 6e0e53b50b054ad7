package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// DetectTermination reports whether the bird is still alive.
// It returns false when the bird overlaps any pipe, touches the top of the
// world, or reaches the ground line at screenH-groundH.
func DetectTermination(bird core.Rect, pipes []PipePair, screenH, groundH float64) bool {
	for _, p := range pipes {
		if bird.Intersects(p.Upper()) || bird.Intersects(p.Lower(screenH)) {
			return false
		}
	}
	if bird.Y <= 0 || bird.Bottom() >= screenH-groundH {
		return false
	}
	return true
}
