package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// PipePair is a vertical obstacle with a gap for the bird to pass through.
// The upper pipe spans from the top of the world to the gap, the lower pipe
// from the bottom of the gap to the bottom of the world.
type PipePair struct {
	X         float64 // Horizontal position (left edge), shared by both pipes
	GapTop    float64 // Y position where the gap starts
	GapHeight float64 // Height of the passable gap
	Width     float64
}

// Upper returns the collision rectangle for the top pipe.
func (p PipePair) Upper() core.Rect {
	return core.NewRect(p.X, 0, p.Width, p.GapTop)
}

// Lower returns the collision rectangle for the bottom pipe.
func (p PipePair) Lower(screenH float64) core.Rect {
	bottomY := p.GapTop + p.GapHeight
	return core.NewRect(p.X, bottomY, p.Width, screenH-bottomY)
}

// Right returns the x-coordinate of the trailing edge.
func (p PipePair) Right() float64 {
	return p.X + p.Width
}

// NewPipePair creates a pair at x with the gap top chosen uniformly among
// the whole-unit positions in [minMargin, screenH-gapHeight-minMargin].
func NewPipePair(rng *rand.Rand, x, screenH, gapHeight, minMargin, width float64) PipePair {
	minGapY := int(math.Ceil(minMargin))
	maxGapY := int(math.Floor(screenH - gapHeight - minMargin))

	gapY := minGapY
	if maxGapY > minGapY {
		gapY = minGapY + rng.Intn(maxGapY-minGapY+1)
	}

	return PipePair{
		X:         x,
		GapTop:    float64(gapY),
		GapHeight: gapHeight,
		Width:     width,
	}
}

// AdvancePipes moves every pair left by speed and drops pairs whose right
// edge has passed the left edge of the world. The filter is done in place
// and preserves spawn order.
func AdvancePipes(pipes []PipePair, speed float64) []PipePair {
	for i := range pipes {
		pipes[i].X -= speed
	}

	valid := pipes[:0]
	for _, p := range pipes {
		if p.Right() >= 0 {
			valid = append(valid, p)
		}
	}
	return valid
}
