package headless

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var fastCurve = snake.SpeedCurve{Base: time.Millisecond, Step: 0, Min: time.Millisecond}

func newEngine(t *testing.T, s snake.Settings) *snake.Engine {
	t.Helper()
	e := snake.NewEngine(snake.WithSettings(s), snake.WithSeed(3), snake.WithSpeedCurve(fastCurve))
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return e
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRunnerRunsToGameOver(t *testing.T) {
	e := newEngine(t, snake.Settings{Rows: 5, Cols: 5})
	r := NewRunner(e, WithLogger(quietLogger()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.Start(ctx); err != nil {
		t.Fatal(err)
	}
	result, err := r.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}

	if result.Stopped {
		t.Error("run should end by collision, not by stop")
	}
	if result.Final.State != snake.StateGameOver {
		t.Errorf("State = %s, expected game over", result.Final.State)
	}
	// Heading right from the centre of a 5-wide board hits the wall on the third move.
	if result.Final.Tick != 3 {
		t.Errorf("Tick = %d, expected 3", result.Final.Tick)
	}
}

func TestRunnerAutopilotScores(t *testing.T) {
	e := newEngine(t, snake.Settings{Rows: 10, Cols: 10})
	var eaten atomic.Int32
	r := NewRunner(e,
		WithAutopilot(),
		WithLogger(quietLogger()),
		WithObserver(func(o snake.Outcome, _ snake.Snapshot) {
			if o == snake.OutcomeAte {
				eaten.Add(1)
			}
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Start(ctx); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for eaten.Load() < 3 && time.Now().Before(deadline) {
		select {
		case <-r.Done():
			deadline = time.Now()
		case <-time.After(5 * time.Millisecond):
		}
	}
	r.Stop()

	if eaten.Load() < 3 {
		t.Fatalf("autopilot ate %d times, expected at least 3", eaten.Load())
	}
	if got := r.Snapshot().Score; got != int(eaten.Load()) {
		t.Errorf("Score = %d, expected %d", got, eaten.Load())
	}
}

func TestRunnerNoTickAfterStop(t *testing.T) {
	e := newEngine(t, snake.Settings{Rows: 20, Cols: 20, Wrap: true})
	var ticks atomic.Int64
	r := NewRunner(e,
		WithLogger(quietLogger()),
		WithObserver(func(snake.Outcome, snake.Snapshot) { ticks.Add(1) }),
	)

	if err := r.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	for ticks.Load() < 5 {
		time.Sleep(time.Millisecond)
	}
	r.Stop()

	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	if ticks.Load() != after {
		t.Errorf("ticks advanced from %d to %d after Stop returned", after, ticks.Load())
	}

	select {
	case <-r.Done():
	default:
		t.Error("Done() should be closed after Stop")
	}
	result, err := r.Wait(context.Background())
	if err != nil || !result.Stopped {
		t.Errorf("Wait() = %+v, %v; expected a stopped result", result, err)
	}

	// Stop is idempotent.
	r.Stop()
}

func TestRunnerContextCancel(t *testing.T) {
	e := newEngine(t, snake.Settings{Rows: 20, Cols: 20, Wrap: true})
	r := NewRunner(e, WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	if err := r.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	result, err := r.Wait(waitCtx)
	if err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}
	if !result.Stopped {
		t.Error("cancelled run should report Stopped")
	}
}

func TestRunnerStartTwice(t *testing.T) {
	e := newEngine(t, snake.Settings{Rows: 20, Cols: 20, Wrap: true})
	r := NewRunner(e, WithLogger(quietLogger()))
	defer r.Stop()

	if err := r.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := r.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() = %v, expected ErrAlreadyStarted", err)
	}
}

func TestRunnerPauseThroughDo(t *testing.T) {
	e := newEngine(t, snake.Settings{Rows: 20, Cols: 20, Wrap: true})
	r := NewRunner(e, WithLogger(quietLogger()))
	defer r.Stop()

	if err := r.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	r.Do(func(e *snake.Engine) { e.Pause() })

	before := r.Snapshot()
	time.Sleep(20 * time.Millisecond)
	after := r.Snapshot()

	if after.State != snake.StatePaused {
		t.Fatalf("State = %s, expected paused", after.State)
	}
	if after != before {
		t.Errorf("paused engine changed: %+v -> %+v", before, after)
	}

	r.Do(func(e *snake.Engine) { e.Resume() })
	deadline := time.Now().Add(3 * time.Second)
	for r.Snapshot().Tick == after.Tick && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if r.Snapshot().Tick == after.Tick {
		t.Error("resumed engine should advance")
	}
}

func TestRunnerStopBeforeStart(t *testing.T) {
	e := newEngine(t, snake.Settings{Rows: 5, Cols: 5})
	r := NewRunner(e, WithLogger(quietLogger()))
	r.Stop()
	if e.Ticks() != 0 {
		t.Error("engine should not have advanced")
	}
}
