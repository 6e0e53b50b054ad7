package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:        400,
			Height:       600,
			GroundHeight: 50,
		},
		Physics: PhysicsConfig{
			Gravity:        0.25,
			JumpImpulse:    -5.0,
			BaseSpeed:      3.0,
			SpeedIncrement: 0.1,
		},
		Obstacles: ObstacleConfig{
			PipeWidth:       60,
			GapHeight:       150,
			MinMargin:       150,
			SpawnIntervalMS: 1200,
		},
		Bird: BirdConfig{
			Width:  30,
			Height: 30,
		},
		Scoring: ScoringConfig{
			Increment: 0.01,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `--print-config`.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
