package snake

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// newStartedEngine returns a running engine on an obstacle-free board.
func newStartedEngine(t *testing.T, s Settings, opts ...Option) *Engine {
	t.Helper()
	e := NewEngine(append([]Option{WithSettings(s), WithSeed(42)}, opts...)...)
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return e
}

func TestStartInitialState(t *testing.T) {
	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20, Obstacles: 5})

	if e.State() != StateRunning {
		t.Errorf("State() = %s, expected running", e.State())
	}
	if got := e.Snake(); len(got) != 1 || got[0] != (core.Point{X: 10, Y: 10}) {
		t.Errorf("Snake() = %v, expected [(10,10)]", got)
	}
	if e.Direction() != DirRight || e.Score() != 0 || e.IsGameOver() {
		t.Errorf("unexpected start: dir %s score %d over %v", e.Direction(), e.Score(), e.IsGameOver())
	}
	if len(e.Obstacles()) != 5 {
		t.Errorf("Obstacles() = %d cells, expected 5", len(e.Obstacles()))
	}
	if e.Interval() != 150*time.Millisecond {
		t.Errorf("Interval() = %s, expected 150ms", e.Interval())
	}
}

func TestStartKeepsCellsDisjoint(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		e := NewEngine(WithSettings(Settings{Rows: 10, Cols: 10, Obstacles: 15}), WithSeed(seed))
		if err := e.Start(); err != nil {
			t.Fatalf("seed %d: Start() failed: %v", seed, err)
		}

		food, ok := e.Food()
		if !ok {
			t.Fatalf("seed %d: no food after start", seed)
		}
		head := e.Head()
		if food == head || e.IsObstacle(food) {
			t.Fatalf("seed %d: food %v overlaps snake or obstacle", seed, food)
		}
		if e.IsObstacle(head) {
			t.Fatalf("seed %d: obstacle on the snake", seed)
		}
		if hasDuplicates(e.Obstacles()) {
			t.Fatalf("seed %d: duplicate obstacles", seed)
		}
	}
}

func TestEatScenario(t *testing.T) {
	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20})
	e.food = core.Point{X: 11, Y: 10}

	out, ok := e.Advance()
	if !ok || out != OutcomeAte {
		t.Fatalf("Advance() = %s, %v; expected ate", out, ok)
	}

	want := []core.Point{{X: 11, Y: 10}, {X: 10, Y: 10}}
	if got := e.Snake(); !equalPoints(got, want) {
		t.Errorf("Snake() = %v, expected %v", got, want)
	}
	if e.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", e.Score())
	}
	food, _ := e.Food()
	if e.body.Occupies(food) || e.IsObstacle(food) {
		t.Errorf("respawned food %v overlaps snake or obstacle", food)
	}
}

func TestWallCollisionScenario(t *testing.T) {
	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20})
	e.body = bodyOf(DirLeft, core.Point{X: 0, Y: 10}, core.Point{X: 1, Y: 10})
	e.food = core.Point{X: 5, Y: 5}
	before := e.Snake()

	gameOvers := 0
	e.SetHooks(Hooks{OnGameOver: func() { gameOvers++ }})

	out, _ := e.Advance()
	if out != OutcomeCollided {
		t.Fatalf("Advance() = %s, expected collided", out)
	}
	if !e.IsGameOver() || e.State() != StateGameOver {
		t.Error("Engine should be game over")
	}
	if !equalPoints(e.Snake(), before) {
		t.Errorf("Snake() = %v, expected unchanged %v", e.Snake(), before)
	}
	if gameOvers != 1 {
		t.Errorf("OnGameOver fired %d times, expected 1", gameOvers)
	}

	if _, ok := e.Advance(); ok {
		t.Error("Advance() after game over should be a no-op")
	}
}

func TestWrapScenario(t *testing.T) {
	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20, Wrap: true})
	e.body = bodyOf(DirRight, core.Point{X: 19, Y: 10})
	e.food = core.Point{X: 5, Y: 5}

	if out, _ := e.Advance(); out != OutcomeMoved || e.Head() != (core.Point{X: 0, Y: 10}) {
		t.Fatalf("Advance() = %s head %v, expected moved to (0,10)", out, e.Head())
	}

	e = newStartedEngine(t, Settings{Rows: 20, Cols: 20, Wrap: true})
	e.body = bodyOf(DirRight, core.Point{X: 19, Y: 10})
	e.food = core.Point{X: 5, Y: 5}
	e.obstacleSet = map[core.Point]struct{}{{X: 0, Y: 10}: {}}

	if out, _ := e.Advance(); out != OutcomeCollided {
		t.Errorf("Advance() into an obstacle across the edge = %s, expected collided", out)
	}
}

func TestReverseRequestIsIgnored(t *testing.T) {
	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20})
	e.body = bodyOf(DirUp, core.Point{X: 10, Y: 10}, core.Point{X: 10, Y: 11})
	e.food = core.Point{X: 0, Y: 0}

	e.SetDirection(DirDown)
	if _, ok := e.body.Pending(); ok {
		t.Fatal("Reversal should not be buffered")
	}

	e.Advance()
	if e.Direction() != DirUp || e.Head() != (core.Point{X: 10, Y: 9}) {
		t.Errorf("Expected to keep moving up, dir %s head %v", e.Direction(), e.Head())
	}
}

func TestPauseResume(t *testing.T) {
	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20})
	e.food = core.Point{X: 0, Y: 0}

	e.Pause()
	e.Pause()
	if e.State() != StatePaused {
		t.Fatalf("State() = %s, expected paused", e.State())
	}

	head := e.Head()
	if _, ok := e.Advance(); ok {
		t.Error("Advance() while paused should be a no-op")
	}
	if e.Head() != head || e.Ticks() != 0 {
		t.Error("Paused engine should not move")
	}

	e.SetDirection(DirDown)
	e.Resume()
	if e.State() != StateRunning {
		t.Fatalf("State() = %s, expected running", e.State())
	}
	e.Advance()
	if e.Head() != (core.Point{X: 10, Y: 11}) {
		t.Errorf("Head() = %v, expected direction buffered during pause to apply", e.Head())
	}

	e.Resume()
	if e.State() != StateRunning {
		t.Error("Resume() on a running engine should do nothing")
	}
}

func TestPauseIsNoOpWhenNotRunning(t *testing.T) {
	e := NewEngine(WithSeed(1))
	e.Pause()
	if e.State() != StateIdle {
		t.Errorf("Pause() before Start changed state to %s", e.State())
	}
	e.SetDirection(DirUp)
	if _, ok := e.Advance(); ok {
		t.Error("Advance() before Start should be a no-op")
	}
}

func TestDirectionIgnoredAfterGameOver(t *testing.T) {
	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20})
	e.state = StateGameOver

	e.SetDirection(DirUp)
	if _, ok := e.body.Pending(); ok {
		t.Error("SetDirection after game over should be ignored")
	}
}

func TestRestartResetsRunButKeepsHighScore(t *testing.T) {
	var persisted []int
	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20},
		WithHighScore(1),
		WithHooks(Hooks{PersistHighScore: func(s int) { persisted = append(persisted, s) }}),
	)

	e.food = core.Point{X: 11, Y: 10}
	e.Advance() // score 1, equal to best: nothing persisted
	e.food = core.Point{X: 12, Y: 10}
	e.Advance() // score 2, new best

	if e.HighScore() != 2 {
		t.Fatalf("HighScore() = %d, expected 2", e.HighScore())
	}
	if len(persisted) != 1 || persisted[0] != 2 {
		t.Fatalf("persisted = %v, expected [2]", persisted)
	}

	e.state = StateGameOver
	if err := e.Restart(); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if e.Score() != 0 || len(e.Snake()) != 1 || e.State() != StateRunning {
		t.Errorf("Restart should reset the run: score %d len %d state %s", e.Score(), len(e.Snake()), e.State())
	}
	if e.HighScore() != 2 {
		t.Errorf("HighScore() after restart = %d, expected 2", e.HighScore())
	}
}

func TestFoodEatenHook(t *testing.T) {
	eaten := 0
	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20}, WithHooks(Hooks{OnFoodEaten: func() { eaten++ }}))
	e.food = core.Point{X: 11, Y: 10}
	e.Advance()
	e.food = core.Point{X: 0, Y: 0}
	e.Advance()

	if eaten != 1 {
		t.Errorf("OnFoodEaten fired %d times, expected 1", eaten)
	}
}

func TestIntervalSpeedsUpWithFloor(t *testing.T) {
	curve := SpeedCurve{Base: 150 * time.Millisecond, Step: 10 * time.Millisecond, Min: 70 * time.Millisecond}

	tests := []struct {
		score    int
		expected time.Duration
	}{
		{0, 150 * time.Millisecond},
		{1, 140 * time.Millisecond},
		{8, 70 * time.Millisecond},
		{50, 70 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := curve.Interval(tc.score); got != tc.expected {
			t.Errorf("Interval(%d) = %s, expected %s", tc.score, got, tc.expected)
		}
	}

	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20})
	e.food = core.Point{X: 11, Y: 10}
	e.Advance()
	if e.Interval() != 140*time.Millisecond {
		t.Errorf("Interval() after eating = %s, expected 140ms", e.Interval())
	}
}

func TestInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
	}{
		{"zero rows", Settings{Rows: 0, Cols: 10}},
		{"negative cols", Settings{Rows: 10, Cols: -1}},
		{"single cell", Settings{Rows: 1, Cols: 1}},
		{"negative obstacles", Settings{Rows: 10, Cols: 10, Obstacles: -1}},
		{"obstacles fill the board", Settings{Rows: 3, Cols: 3, Obstacles: 8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(WithSettings(tc.settings), WithSeed(1))
			err := e.Start()
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("Start() = %v, expected ErrInvalidConfiguration", err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error should be a *ConfigError, got %T", err)
			}
			if e.State() != StateIdle {
				t.Errorf("failed Start changed state to %s", e.State())
			}
		})
	}

	e := NewEngine(WithSeed(1))
	if err := e.Configure(Settings{Rows: 3, Cols: 3, Obstacles: 7}); err != nil {
		t.Errorf("7 obstacles on 3x3 leave room for snake and food: %v", err)
	}
}

func TestConfigureAppliesOnlyAtRestart(t *testing.T) {
	e := newStartedEngine(t, Settings{Rows: 20, Cols: 20})

	if err := e.Configure(Settings{Rows: -5, Cols: 10}); err == nil {
		t.Fatal("Configure() should reject invalid settings")
	}
	if e.Settings().Rows != 20 {
		t.Error("rejected settings should not be stored")
	}

	if err := e.Configure(Settings{Rows: 10, Cols: 15, Wrap: true}); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	if e.Board().Rows != 20 || e.Board().Wrap {
		t.Error("Configure should not affect the current run")
	}

	if err := e.Restart(); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if b := e.Board(); b.Rows != 10 || b.Cols != 15 || !b.Wrap {
		t.Errorf("Board() after restart = %+v", b)
	}
	if e.Head() != (core.Point{X: 7, Y: 5}) {
		t.Errorf("Head() = %v, expected centre (7,5)", e.Head())
	}
}

func TestBoardClearedEndsRun(t *testing.T) {
	gameOvers := 0
	e := newStartedEngine(t, Settings{Rows: 2, Cols: 1}, WithHooks(Hooks{OnGameOver: func() { gameOvers++ }}))
	if food, _ := e.Food(); food != (core.Point{X: 0, Y: 0}) {
		t.Fatalf("Food() = %v, expected the only free cell", food)
	}

	e.SetDirection(DirUp)
	out, _ := e.Advance()
	if out != OutcomeAte {
		t.Fatalf("Advance() = %s, expected ate", out)
	}
	if !e.IsGameOver() || !e.Cleared() {
		t.Error("Filling the board should end the run as cleared")
	}
	if _, ok := e.Food(); ok {
		t.Error("No food should remain on a full board")
	}
	if gameOvers != 1 {
		t.Errorf("OnGameOver fired %d times, expected 1", gameOvers)
	}
}

func TestEngineDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := NewEngine(WithSettings(Settings{Rows: 15, Cols: 15, Obstacles: 10}), WithSeed(12345))
		if err := e.Start(); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		for i := 0; i < 300 && !e.IsGameOver(); i++ {
			e.SetDirection(Autopilot(e))
			e.Advance()
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed produced different runs:\n%+v\n%+v", a, b)
	}
}

func TestLongRunInvariants(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		e := NewEngine(WithSettings(Settings{Rows: 10, Cols: 10, Obstacles: 6, Wrap: seed%2 == 0}), WithSeed(seed))
		if err := e.Start(); err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 2000 && !e.IsGameOver(); i++ {
			e.SetDirection(Autopilot(e))
			prevLen, prevScore := len(e.Snake()), e.Score()

			out, _ := e.Advance()
			length := len(e.Snake())
			switch out {
			case OutcomeAte:
				if length != prevLen+1 || e.Score() != prevScore+1 {
					t.Fatalf("seed %d: ate but len %d->%d score %d->%d", seed, prevLen, length, prevScore, e.Score())
				}
			default:
				if length != prevLen {
					t.Fatalf("seed %d: %s changed length %d->%d", seed, out, prevLen, length)
				}
			}

			if food, ok := e.Food(); ok && (e.body.Occupies(food) || e.IsObstacle(food)) {
				t.Fatalf("seed %d: food %v overlaps snake or obstacle", seed, food)
			}
			if hasDuplicates(e.Snake()) {
				t.Fatalf("seed %d: duplicate segments", seed)
			}
		}
	}
}
