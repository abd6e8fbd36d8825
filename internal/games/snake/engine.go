package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// State is the lifecycle phase of an Engine.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Settings are the player-tunable parameters of a run.
// They are read only when a run starts.
type Settings struct {
	Rows      int
	Cols      int
	Obstacles int
	Wrap      bool
}

// DefaultSettings matches the classic 20x20 board with five obstacles.
func DefaultSettings() Settings {
	return Settings{Rows: 20, Cols: 20, Obstacles: 5}
}

// Validate checks that the settings describe a playable board: positive
// dimensions, room for the snake and its food, and enough free cells for the
// obstacles. Values are never clamped.
func (s Settings) Validate() error {
	if s.Rows <= 0 {
		return &ConfigError{Field: "rows", Value: s.Rows, Reason: "must be positive"}
	}
	if s.Cols <= 0 {
		return &ConfigError{Field: "cols", Value: s.Cols, Reason: "must be positive"}
	}
	cells := s.Rows * s.Cols
	if cells < 2 {
		return &ConfigError{Field: "cells", Value: cells, Reason: "board needs room for the snake and its food"}
	}
	if s.Obstacles < 0 {
		return &ConfigError{Field: "obstacles", Value: s.Obstacles, Reason: "must not be negative"}
	}
	if free := cells - 2; s.Obstacles > free {
		return &ConfigError{
			Field:  "obstacles",
			Value:  s.Obstacles,
			Reason: fmt.Sprintf("only %d free cells on a %dx%d board", free, s.Cols, s.Rows),
		}
	}
	return nil
}

// Board returns the geometry described by the settings.
func (s Settings) Board() Board {
	return Board{Rows: s.Rows, Cols: s.Cols, Wrap: s.Wrap}
}

// SpeedCurve maps a score to a move interval. The interval shrinks linearly
// by Step per point and never drops below Min.
type SpeedCurve struct {
	Base time.Duration
	Step time.Duration
	Min  time.Duration
}

// DefaultSpeedCurve starts at 150ms and speeds up 10ms per point down to 70ms.
func DefaultSpeedCurve() SpeedCurve {
	return SpeedCurve{
		Base: 150 * time.Millisecond,
		Step: 10 * time.Millisecond,
		Min:  70 * time.Millisecond,
	}
}

// Interval returns the delay between moves at the given score.
func (c SpeedCurve) Interval(score int) time.Duration {
	return max(c.Base-time.Duration(score)*c.Step, c.Min)
}

// Hooks are notifications for presentation and persistence collaborators.
// Nil hooks are skipped.
type Hooks struct {
	OnFoodEaten      func()
	OnGameOver       func()
	PersistHighScore func(score int)
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithSettings sets the settings used by the first Start.
func WithSettings(s Settings) Option {
	return func(e *Engine) { e.settings = s }
}

// WithSpeedCurve overrides the default speed curve.
func WithSpeedCurve(c SpeedCurve) Option {
	return func(e *Engine) { e.speed = c }
}

// WithRand injects the random source used for food and obstacle placement.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithMaxAttempts bounds rejection sampling per placement.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) { e.maxAttempts = n }
}

// WithHighScore seeds the high score loaded by a persistence collaborator.
func WithHighScore(score int) Option {
	return func(e *Engine) { e.highScore = max(score, 0) }
}

// WithHooks installs event callbacks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// Engine is the session controller. It owns the board, the snake, food,
// obstacles and scores, and is driven by an external scheduler calling
// Advance every Interval.
//
// Engine is not safe for concurrent use; callers serialise access.
type Engine struct {
	settings    Settings
	speed       SpeedCurve
	rng         *rand.Rand
	maxAttempts int
	spawner     *Spawner
	hooks       Hooks

	board       Board
	body        *Body
	food        core.Point
	hasFood     bool
	obstacles   []core.Point
	obstacleSet map[core.Point]struct{}

	state     State
	score     int
	highScore int
	cleared   bool
	ticks     uint64
}

// NewEngine creates an idle engine. Call Start to begin the first run.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		settings: DefaultSettings(),
		speed:    DefaultSpeedCurve(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.spawner = NewSpawner(e.rng, e.maxAttempts)
	return e
}

// Configure stores settings for the next Start or Restart.
// The current run is not affected.
func (e *Engine) Configure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	e.settings = s
	return nil
}

// SetHooks replaces the event callbacks.
func (e *Engine) SetHooks(h Hooks) {
	e.hooks = h
}

// Start begins a fresh run from any state: a one-segment snake in the centre
// heading right, score zero, new food and then new obstacles. On error the
// previous run is left untouched.
func (e *Engine) Start() error {
	if err := e.settings.Validate(); err != nil {
		return err
	}

	board := e.settings.Board()
	body := NewBody(board.Center(), DirRight)

	food, err := e.spawner.Food(board, body.Occupies)
	if err != nil {
		return fmt.Errorf("snake: cannot place food: %w", err)
	}

	obstacles, err := e.spawner.Obstacles(board, func(p core.Point) bool {
		return p == food || body.Occupies(p)
	}, e.settings.Obstacles)
	if err != nil {
		return fmt.Errorf("snake: cannot place obstacles: %w", err)
	}

	e.board = board
	e.body = body
	e.food = food
	e.hasFood = true
	e.obstacles = obstacles
	e.obstacleSet = make(map[core.Point]struct{}, len(obstacles))
	for _, p := range obstacles {
		e.obstacleSet[p] = struct{}{}
	}
	e.score = 0
	e.cleared = false
	e.ticks = 0
	e.state = StateRunning
	return nil
}

// Restart is Start under the name collaborators use after a game over.
func (e *Engine) Restart() error {
	return e.Start()
}

// Pause stops the run without changing it. Calling it again is harmless.
func (e *Engine) Pause() {
	if e.state == StateRunning {
		e.state = StatePaused
	}
}

// Resume continues a paused run exactly where it stopped.
func (e *Engine) Resume() {
	if e.state == StatePaused {
		e.state = StateRunning
	}
}

// SetDirection buffers a heading for the next tick. Reversals and requests
// made while no run is in progress are ignored.
func (e *Engine) SetDirection(d Direction) {
	if e.body == nil || e.state == StateGameOver {
		return
	}
	e.body.Request(d)
}

// Advance runs one tick. It returns false without doing anything unless the
// engine is running.
func (e *Engine) Advance() (Outcome, bool) {
	if e.state != StateRunning {
		return OutcomeMoved, false
	}
	if e.body == nil || !e.hasFood {
		panic("snake: advance without snake or food")
	}

	e.ticks++
	outcome := e.body.Step(e.board, e.isObstacle, e.food)
	switch outcome {
	case OutcomeAte:
		e.eat()
	case OutcomeCollided:
		e.finish()
	}
	return outcome, true
}

func (e *Engine) eat() {
	e.score++
	if e.score > e.highScore {
		e.highScore = e.score
		if e.hooks.PersistHighScore != nil {
			e.hooks.PersistHighScore(e.highScore)
		}
	}

	food, err := e.spawner.Food(e.board, e.isOccupied)
	if err != nil {
		// Nowhere left to put food: the board is filled.
		e.hasFood = false
		e.cleared = true
	} else {
		e.food = food
	}

	if e.hooks.OnFoodEaten != nil {
		e.hooks.OnFoodEaten()
	}
	if e.cleared {
		e.finish()
	}
}

func (e *Engine) finish() {
	e.state = StateGameOver
	if e.hooks.OnGameOver != nil {
		e.hooks.OnGameOver()
	}
}

func (e *Engine) isObstacle(p core.Point) bool {
	_, ok := e.obstacleSet[p]
	return ok
}

func (e *Engine) isOccupied(p core.Point) bool {
	return e.isObstacle(p) || e.body.Occupies(p)
}

// Interval is the delay the scheduler should wait before the next Advance.
func (e *Engine) Interval() time.Duration {
	return e.speed.Interval(e.score)
}

// State returns the lifecycle phase.
func (e *Engine) State() State {
	return e.state
}

// IsGameOver reports whether the current run has ended.
func (e *Engine) IsGameOver() bool {
	return e.state == StateGameOver
}

// Cleared reports whether the run ended because the board was filled.
func (e *Engine) Cleared() bool {
	return e.cleared
}

// Score returns the current run's score.
func (e *Engine) Score() int {
	return e.score
}

// HighScore returns the best score seen by this engine, including the seed.
func (e *Engine) HighScore() int {
	return e.highScore
}

// Ticks returns the number of ticks advanced in the current run.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Settings returns the settings the next run will use.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Board returns the geometry of the current run.
func (e *Engine) Board() Board {
	return e.board
}

// Snake returns a copy of the segments, head first. Nil before the first run.
func (e *Engine) Snake() []core.Point {
	if e.body == nil {
		return nil
	}
	return e.body.Segments()
}

// Head returns the head position.
func (e *Engine) Head() core.Point {
	if e.body == nil {
		return core.Point{}
	}
	return e.body.Head()
}

// Direction returns the committed heading.
func (e *Engine) Direction() Direction {
	if e.body == nil {
		return DirRight
	}
	return e.body.Direction()
}

// Food returns the food position and whether food is on the board.
func (e *Engine) Food() (core.Point, bool) {
	return e.food, e.hasFood
}

// Obstacles returns a copy of the obstacle cells in placement order.
func (e *Engine) Obstacles() []core.Point {
	out := make([]core.Point, len(e.obstacles))
	copy(out, e.obstacles)
	return out
}

// IsObstacle reports whether p holds an obstacle.
func (e *Engine) IsObstacle(p core.Point) bool {
	return e.isObstacle(p)
}
