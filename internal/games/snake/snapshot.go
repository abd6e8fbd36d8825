package snake

// Snapshot captures the observable engine state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	State      State
	Score      int
	HighScore  int
	SnakeLen   int
	HeadX      int
	HeadY      int
	Dir        Direction
	FoodX      int
	FoodY      int
	Obstacles  int
	IntervalMS int64
	Wrap       bool
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	head := e.Head()
	return Snapshot{
		Tick:       e.ticks,
		State:      e.state,
		Score:      e.score,
		HighScore:  e.highScore,
		SnakeLen:   len(e.Snake()),
		HeadX:      head.X,
		HeadY:      head.Y,
		Dir:        e.Direction(),
		FoodX:      e.food.X,
		FoodY:      e.food.Y,
		Obstacles:  len(e.obstacles),
		IntervalMS: e.Interval().Milliseconds(),
		Wrap:       e.board.Wrap,
	}
}
