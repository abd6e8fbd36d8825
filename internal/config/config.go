// Package config provides YAML-based configuration loading and difficulty
// presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// GridSizes are the board dimensions offered to players.
var GridSizes = []int{10, 15, 20, 25, 30}

// MaxObstacles is the largest obstacle count a player can pick.
const MaxObstacles = 15

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board     BoardConfig    `yaml:"board"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Speed     SpeedConfig    `yaml:"speed"`
	Spawn     SpawnConfig    `yaml:"spawn"`
	Theme     ThemeConfig    `yaml:"theme"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Rows         int  `yaml:"rows"`
	Cols         int  `yaml:"cols"`
	EdgeWrapping bool `yaml:"edge_wrapping"`
}

// ObstacleConfig defines the obstacles placed at the start of a run.
type ObstacleConfig struct {
	Count int `yaml:"count"`
}

// SpeedConfig defines how the move interval shrinks with score.
type SpeedConfig struct {
	BaseIntervalMS int `yaml:"base_interval_ms"`
	StepMS         int `yaml:"step_ms"`
	MinIntervalMS  int `yaml:"min_interval_ms"`
}

// SpawnConfig bounds random placement.
type SpawnConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// ThemeConfig names the colors used to draw the board.
type ThemeConfig struct {
	Head     string `yaml:"head"`
	Body     string `yaml:"body"`
	Food     string `yaml:"food"`
	Obstacle string `yaml:"obstacle"`
}

// Validate checks the configuration against the ranges offered to players.
func (c SnakeConfig) Validate() error {
	if !slices.Contains(GridSizes, c.Board.Rows) {
		return fmt.Errorf("%w: board.rows %d not one of %v", ErrInvalidConfig, c.Board.Rows, GridSizes)
	}
	if !slices.Contains(GridSizes, c.Board.Cols) {
		return fmt.Errorf("%w: board.cols %d not one of %v", ErrInvalidConfig, c.Board.Cols, GridSizes)
	}
	if c.Obstacles.Count < 0 || c.Obstacles.Count > MaxObstacles {
		return fmt.Errorf("%w: obstacles.count %d not in 0-%d", ErrInvalidConfig, c.Obstacles.Count, MaxObstacles)
	}
	if c.Speed.MinIntervalMS <= 0 {
		return fmt.Errorf("%w: speed.min_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.Speed.BaseIntervalMS < c.Speed.MinIntervalMS {
		return fmt.Errorf("%w: speed.base_interval_ms %d below min_interval_ms %d",
			ErrInvalidConfig, c.Speed.BaseIntervalMS, c.Speed.MinIntervalMS)
	}
	if c.Speed.StepMS < 0 {
		return fmt.Errorf("%w: speed.step_ms must not be negative", ErrInvalidConfig)
	}
	if c.Spawn.MaxAttempts < 0 {
		return fmt.Errorf("%w: spawn.max_attempts must not be negative", ErrInvalidConfig)
	}
	for field, name := range map[string]string{
		"theme.head":     c.Theme.Head,
		"theme.body":     c.Theme.Body,
		"theme.food":     c.Theme.Food,
		"theme.obstacle": c.Theme.Obstacle,
	} {
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("%w: %s %q is not one of %v", ErrInvalidConfig, field, name, core.ColorNames())
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name is returned as-is and
// means "keep the configured speed".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyPreset rewrites the speed curve for a difficulty preset.
// Fixed keeps the configured base interval and disables speed-up.
func ApplyPreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed = SpeedConfig{BaseIntervalMS: 200, StepMS: 8, MinIntervalMS: 100}
	case DifficultyNormal:
		cfg.Speed = SpeedConfig{BaseIntervalMS: 150, StepMS: 10, MinIntervalMS: 70}
	case DifficultyHard:
		cfg.Speed = SpeedConfig{BaseIntervalMS: 110, StepMS: 10, MinIntervalMS: 50}
	case DifficultyFixed:
		cfg.Speed.StepMS = 0
		cfg.Speed.MinIntervalMS = cfg.Speed.BaseIntervalMS
	}
}
