// Package headless drives a snake engine on a real-time schedule without a
// terminal. It is used for attract-mode demos and soak tests.
package headless

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrAlreadyStarted is returned when Start is called twice on the same runner.
var ErrAlreadyStarted = errors.New("headless: runner already started")

// Steer chooses the next heading before each tick.
type Steer func(e *snake.Engine) snake.Direction

// Result describes a finished run.
type Result struct {
	Final   snake.Snapshot
	Cleared bool
	Stopped bool // Ended by Stop or context cancellation rather than game over
}

// Option configures a Runner.
type Option func(*Runner)

// WithSteer installs a steering function called before every tick.
func WithSteer(s Steer) Option {
	return func(r *Runner) { r.steer = s }
}

// WithAutopilot steers with snake.Autopilot.
func WithAutopilot() Option {
	return WithSteer(snake.Autopilot)
}

// WithLogger sets the logger. Defaults to log.Default with a "snake-demo" prefix.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithObserver registers a callback invoked after every tick that moved the snake.
// It runs on the runner goroutine while the engine lock is held.
func WithObserver(fn func(snake.Outcome, snake.Snapshot)) Option {
	return func(r *Runner) { r.observe = fn }
}

// Runner owns the schedule for one engine. The engine must not be touched
// directly while the runner is active; use Do instead.
type Runner struct {
	mu      sync.Mutex
	engine  *snake.Engine
	steer   Steer
	observe func(snake.Outcome, snake.Snapshot)
	logger  *log.Logger
	stopped bool

	started  bool
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
	result   Result
}

// NewRunner wraps an engine that has already been started.
func NewRunner(e *snake.Engine, opts ...Option) *Runner {
	r := &Runner{
		engine: e,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Default().WithPrefix("snake-demo")
	}
	return r
}

// Start launches the tick loop. The first tick fires one interval from now.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}
	r.started = true

	r.wg.Add(1)
	go r.loop(ctx, r.engine.Interval())
	return nil
}

// Stop ends the loop and waits for it to exit. No tick runs after Stop returns.
// It is safe to call more than once and before Start.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.stopped = true
		r.mu.Unlock()
		close(r.stop)
	})
	r.wg.Wait()
}

// Done is closed when the loop exits. It is never closed if Start was not called.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the loop exits or ctx is cancelled.
func (r *Runner) Wait(ctx context.Context) (Result, error) {
	select {
	case <-r.done:
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Do runs fn with exclusive access to the engine, between ticks.
func (r *Runner) Do(fn func(e *snake.Engine)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.engine)
}

// Snapshot returns the current engine snapshot.
func (r *Runner) Snapshot() snake.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Snapshot()
}

func (r *Runner) loop(ctx context.Context, first time.Duration) {
	defer r.wg.Done()
	defer close(r.done)

	timer := time.NewTimer(first)
	defer timer.Stop()

	r.logger.Debug("runner started", "interval", first)

	for {
		select {
		case <-ctx.Done():
			r.finish(true)
			return
		case <-r.stop:
			r.finish(true)
			return
		case <-timer.C:
			next, over := r.tick()
			if over {
				r.finish(false)
				return
			}
			timer.Reset(next)
		}
	}
}

// tick advances the engine once and reports the delay until the next tick.
func (r *Runner) tick() (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop may have raced with the timer.
	if r.stopped {
		return 0, true
	}

	e := r.engine
	if r.steer != nil && e.State() == snake.StateRunning {
		e.SetDirection(r.steer(e))
	}

	outcome, moved := e.Advance()
	if moved && r.observe != nil {
		r.observe(outcome, e.Snapshot())
	}
	if moved && outcome == snake.OutcomeAte {
		r.logger.Debug("food eaten", "score", e.Score(), "interval", e.Interval())
	}

	return e.Interval(), e.IsGameOver()
}

func (r *Runner) finish(cancelled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stopped := cancelled || r.stopped
	r.result = Result{
		Final:   r.engine.Snapshot(),
		Cleared: r.engine.Cleared(),
		Stopped: stopped,
	}
	r.logger.Info("run finished",
		"score", r.result.Final.Score,
		"best", r.result.Final.HighScore,
		"ticks", r.result.Final.Tick,
		"cleared", r.result.Cleared,
		"stopped", stopped,
	)
}
