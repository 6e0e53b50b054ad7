// Package config provides YAML-based game configuration loading and
// validation.
package config

import (
	"errors"
	"fmt"
	"math"
)

// FlappyConfig contains all tunable parameters of the game.
type FlappyConfig struct {
	World     WorldConfig    `yaml:"world"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Bird      BirdConfig     `yaml:"bird"`
	Scoring   ScoringConfig  `yaml:"scoring"`
}

// WorldConfig defines the logical playfield.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// PhysicsConfig defines per-tick motion parameters.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	JumpImpulse    float64 `yaml:"jump_impulse"`    // Negative = up
	BaseSpeed      float64 `yaml:"base_speed"`      // Pipe speed at score 0
	SpeedIncrement float64 `yaml:"speed_increment"` // Added per speed step
}

// ObstacleConfig defines pipe geometry and spawn cadence.
type ObstacleConfig struct {
	PipeWidth       float64 `yaml:"pipe_width"`
	GapHeight       float64 `yaml:"gap_height"`
	MinMargin       float64 `yaml:"min_margin"` // Minimum distance from gap to top/bottom edge
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"`
}

// BirdConfig defines the avatar hitbox.
type BirdConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScoringConfig defines how score accrues.
type ScoringConfig struct {
	Increment float64 `yaml:"increment"` // Score added per active tick
}

// ErrEmptyGapRange is returned when no gap position satisfies the margins.
var ErrEmptyGapRange = errors.New("config: obstacle gap range is empty")

// Validate checks that the configuration describes a playable game.
func (c FlappyConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if c.World.GroundHeight < 0 || c.World.GroundHeight >= c.World.Height {
		return fmt.Errorf("config: ground height %v must be in [0, %v)", c.World.GroundHeight, c.World.Height)
	}
	if c.Bird.Width <= 0 || c.Bird.Height <= 0 {
		return fmt.Errorf("config: bird size must be positive, got %vx%v", c.Bird.Width, c.Bird.Height)
	}
	if c.Obstacles.PipeWidth <= 0 {
		return fmt.Errorf("config: pipe width must be positive, got %v", c.Obstacles.PipeWidth)
	}
	if c.Obstacles.GapHeight <= 0 {
		return fmt.Errorf("config: gap height must be positive, got %v", c.Obstacles.GapHeight)
	}
	if c.Obstacles.MinMargin < 0 {
		return fmt.Errorf("config: min margin must not be negative, got %v", c.Obstacles.MinMargin)
	}
	if c.Obstacles.SpawnIntervalMS <= 0 {
		return fmt.Errorf("config: spawn interval must be positive, got %dms", c.Obstacles.SpawnIntervalMS)
	}
	// Gap tops are drawn from whole numbers between the margins
	lo := math.Ceil(c.Obstacles.MinMargin)
	hi := math.Floor(c.World.Height - c.Obstacles.GapHeight - c.Obstacles.MinMargin)
	if lo > hi {
		return fmt.Errorf("%w: height %v, gap %v, margin %v",
			ErrEmptyGapRange, c.World.Height, c.Obstacles.GapHeight, c.Obstacles.MinMargin)
	}
	if c.Scoring.Increment < 0 {
		return fmt.Errorf("config: score increment must not be negative, got %v", c.Scoring.Increment)
	}
	return nil
}

// SpawnIntervalTicks converts the spawn interval to simulation ticks.
// Always returns at least 1.
func (c FlappyConfig) SpawnIntervalTicks(tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := c.Obstacles.SpawnIntervalMS * tickRate / 1000
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}
