package flappy

import "math"

// SpeedStep is the number of whole points between speed increases.
const SpeedStep = 10

// ComputeSpeed returns the pipe speed for a score: every SpeedStep whole
// points add one increment to the base speed.
func ComputeSpeed(score, baseSpeed, increment float64) float64 {
	return baseSpeed + math.Floor(score/SpeedStep)*increment
}

// floorScore converts the accumulated score to the displayed integer score.
func floorScore(score float64) int {
	return int(math.Floor(score))
}
