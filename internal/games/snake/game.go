package snake

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Variant identifiers registered with the platform.
const (
	IDClassic = "snake"
	IDWrap    = "snake_wrap"
)

// Theme holds the colors used to draw the board.
type Theme struct {
	Head     core.Color
	Body     core.Color
	Food     core.Color
	Obstacle core.Color
}

// DefaultTheme is a green head, blue body and red food.
func DefaultTheme() Theme {
	return Theme{
		Head:     core.ColorGreen,
		Body:     core.ColorBlue,
		Food:     core.ColorRed,
		Obstacle: core.ColorGray,
	}
}

// Game adapts an Engine to the platform's registry.Game interface.
type Game struct {
	id    string
	title string
	wrap  bool

	settings    Settings
	speed       SpeedCurve
	maxAttempts int
	theme       Theme

	best    int
	persist func(int)

	engine  *Engine
	events  []core.Event
	screenW int
	screenH int
}

// New creates the classic variant: hitting an edge ends the run.
func New() *Game {
	return &Game{
		id:       IDClassic,
		title:    "Snake",
		settings: DefaultSettings(),
		speed:    DefaultSpeedCurve(),
		theme:    DefaultTheme(),
	}
}

// NewWrapping creates the variant where edges wrap around.
func NewWrapping() *Game {
	g := New()
	g.id = IDWrap
	g.title = "Snake (Wrap)"
	g.wrap = true
	return g
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDWrap, func() registry.Game {
		return NewWrapping()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// ApplyConfig takes board, obstacle, speed, spawn and theme settings from a
// loaded configuration. It takes effect on the next Reset.
func (g *Game) ApplyConfig(cfg config.SnakeConfig) error {
	settings, speed := FromConfig(cfg)
	if err := settings.Validate(); err != nil {
		return err
	}

	theme := DefaultTheme()
	for _, c := range []struct {
		name string
		dst  *core.Color
	}{
		{cfg.Theme.Head, &theme.Head},
		{cfg.Theme.Body, &theme.Body},
		{cfg.Theme.Food, &theme.Food},
		{cfg.Theme.Obstacle, &theme.Obstacle},
	} {
		if color, ok := core.ParseColor(c.name); ok {
			*c.dst = color
		}
	}

	g.settings = settings
	g.speed = speed
	g.maxAttempts = cfg.Spawn.MaxAttempts
	g.theme = theme
	return nil
}

// FromConfig converts a loaded configuration into engine settings and a
// speed curve. The settings are not validated.
func FromConfig(cfg config.SnakeConfig) (Settings, SpeedCurve) {
	settings := Settings{
		Rows:      cfg.Board.Rows,
		Cols:      cfg.Board.Cols,
		Obstacles: cfg.Obstacles.Count,
		Wrap:      cfg.Board.EdgeWrapping,
	}
	speed := SpeedCurve{
		Base: time.Duration(cfg.Speed.BaseIntervalMS) * time.Millisecond,
		Step: time.Duration(cfg.Speed.StepMS) * time.Millisecond,
		Min:  time.Duration(cfg.Speed.MinIntervalMS) * time.Millisecond,
	}
	return settings, speed
}

// SetHighScore implements registry.HighScorer.
func (g *Game) SetHighScore(best int, persist func(score int)) {
	g.best = best
	g.persist = persist
}

// Settings returns the settings the next run uses. The variant decides
// whether edges wrap, so scores for the two modes are never mixed.
func (g *Game) Settings() Settings {
	s := g.settings
	s.Wrap = g.wrap
	return s
}

// Engine exposes the running engine for read-only inspection.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Reset starts a fresh run.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	if g.engine != nil {
		g.best = max(g.best, g.engine.HighScore())
	}

	engine := NewEngine(
		WithSettings(g.Settings()),
		WithSpeedCurve(g.speed),
		WithSeed(cfg.Seed),
		WithMaxAttempts(g.maxAttempts),
		WithHighScore(g.best),
	)
	engine.SetHooks(Hooks{
		OnFoodEaten: func() { g.events = append(g.events, core.EventFoodEaten) },
		OnGameOver:  func() { g.events = append(g.events, core.EventGameOver) },
		PersistHighScore: func(score int) {
			g.events = append(g.events, core.EventHighScore)
			if g.persist != nil {
				g.persist(score)
			}
		},
	})
	if err := engine.Start(); err != nil {
		return err
	}

	g.engine = engine
	g.events = nil
	return nil
}

// Handle applies input immediately; direction changes wait for the next Step.
func (g *Game) Handle(a core.Action) {
	if g.engine == nil {
		return
	}
	switch a {
	case core.ActionUp:
		g.engine.SetDirection(DirUp)
	case core.ActionDown:
		g.engine.SetDirection(DirDown)
	case core.ActionLeft:
		g.engine.SetDirection(DirLeft)
	case core.ActionRight:
		g.engine.SetDirection(DirRight)
	case core.ActionPause:
		switch g.engine.State() {
		case StateRunning:
			g.engine.Pause()
		case StatePaused:
			g.engine.Resume()
		}
	}
}

// Step advances the engine by one tick and reports the events it raised.
func (g *Game) Step() core.StepResult {
	if g.engine == nil {
		return core.StepResult{}
	}
	g.events = g.events[:0]
	g.engine.Advance()

	var events []core.Event
	if len(g.events) > 0 {
		events = append(events, g.events...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{HighScore: g.best, Interval: g.speed.Interval(0)}
	}
	return core.GameState{
		Score:     g.engine.Score(),
		HighScore: g.engine.HighScore(),
		GameOver:  g.engine.IsGameOver(),
		Paused:    g.engine.State() == StatePaused,
		Interval:  g.engine.Interval(),
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	if g.engine == nil {
		return "not started\n"
	}
	e := g.engine
	food, _ := e.Food()

	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d, Best: %d, State: %s\n", e.Ticks(), e.Score(), e.HighScore(), e.State())
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", len(e.Snake()), e.Direction())
	fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d), Obstacles: %d\n", e.Head().X, e.Head().Y, food.X, food.Y, len(e.Obstacles()))
	return b.String()
}
