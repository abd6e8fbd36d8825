package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed, 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the summary a game reports to the platform after every call.
type GameState struct {
	Score     int
	HighScore int
	GameOver  bool
	Paused    bool
	Interval  time.Duration // Delay the platform should wait before the next Step
}

// Event is a fire-and-forget notification raised by a game during a Step.
type Event int

const (
	EventFoodEaten Event = iota + 1
	EventHighScore
	EventGameOver
)

func (e Event) String() string {
	switch e {
	case EventFoodEaten:
		return "food-eaten"
	case EventHighScore:
		return "high-score"
	case EventGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the step raised the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
