package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration. It mirrors the
// embedded defaults/snake.yaml.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Rows:         20,
			Cols:         20,
			EdgeWrapping: false,
		},
		Obstacles: ObstacleConfig{
			Count: 5,
		},
		Speed: SpeedConfig{
			BaseIntervalMS: 150,
			StepMS:         10,
			MinIntervalMS:  70,
		},
		Spawn: SpawnConfig{
			MaxAttempts: 1000,
		},
		Theme: ThemeConfig{
			Head:     "green",
			Body:     "blue",
			Food:     "red",
			Obstacle: "gray",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
