package snake

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when settings cannot describe a playable board.
	ErrInvalidConfiguration = errors.New("snake: invalid configuration")

	// ErrSpawnExhausted is returned when the spawner runs out of free cells.
	ErrSpawnExhausted = errors.New("snake: spawn exhausted")
)

// ConfigError describes which setting was rejected and why.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("snake: invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

// SpawnError reports a placement shortfall.
type SpawnError struct {
	Requested int
	Placed    int
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("snake: placed %d of %d cells: no free cell left", e.Placed, e.Requested)
}

func (e *SpawnError) Unwrap() error {
	return ErrSpawnExhausted
}
