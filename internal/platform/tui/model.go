package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// configurable is implemented by games that read the YAML configuration.
type configurable interface {
	ApplyConfig(cfg config.SnakeConfig) error
}

// boardDescriber is implemented by games that can report the board a run uses.
type boardDescriber interface {
	Settings() snake.Settings
}

// CreateGame instantiates a registered game and applies cfg to it.
func CreateGame(id string, cfg config.SnakeConfig) (registry.Game, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if c, ok := game.(configurable); ok {
		if err := c.ApplyConfig(cfg); err != nil {
			return nil, fmt.Errorf("tui: cannot configure %s: %w", id, err)
		}
	}
	return game, nil
}

// GameModel is the Bubble Tea model for a single game. It schedules one tick
// per move using the interval the game reports, and stops ticking while the
// game is paused or over.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	gameState  core.GameState
	gen        int  // Current tick schedule; older ticks are ignored
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	lastRunID  string
	err        error
}

// NewGameModel creates a game model and starts the first run.
// When store is set, the stored best is loaded and every new best is persisted.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if hs, ok := game.(registry.HighScorer); ok && store != nil {
		gameID := game.ID()
		best, err := store.HighScore(gameID)
		if err != nil {
			best = 0
		}
		hs.SetHighScore(best, func(score int) {
			//nolint:errcheck // Best-effort save, game continues regardless
			store.SetHighScore(gameID, score)
		})
	}

	m := GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.err = game.Reset(cfg)
	m.gameState = game.State()
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return tickCmd(m.gameState.Interval, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Input is applied immediately;
// only ticks move the snake.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	stopped := m.gameState.GameOver || m.gameState.Paused || m.err != nil

	switch action {
	case core.ActionBack:
		if stopped {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}

	case core.ActionRestart:
		if stopped && m.err == nil {
			return m.restart()
		}

	case core.ActionPause:
		if m.gameState.GameOver || m.err != nil {
			return m, nil
		}
		m.game.Handle(core.ActionPause)
		m.gameState = m.game.State()
		m.gen++
		if !m.gameState.Paused {
			return m, tickCmd(m.gameState.Interval, m.gen)
		}

	default:
		if action.IsDirection() {
			m.game.Handle(action)
		}
	}

	return m, nil
}

// restart begins a new run with a fresh seed and a new tick schedule.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	if err := m.game.Reset(m.config); err != nil {
		m.err = err
		return m, nil
	}
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.gen++
	return m, tickCmd(m.gameState.Interval, m.gen)
}

// handleTick advances the game by one move and schedules the next one.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.gameState.GameOver || m.gameState.Paused {
		return m, nil
	}

	result := m.game.Step()
	m.gameState = result.State

	if result.Has(core.EventGameOver) {
		m.saveScore()
	}
	if m.gameState.GameOver || m.gameState.Paused {
		return m, nil
	}

	return m, tickCmd(m.gameState.Interval, m.gen)
}

// saveScore records the finished run once.
func (m *GameModel) saveScore() {
	if m.scoreSaved || m.gameState.Score <= 0 || m.store == nil {
		return
	}

	var info storage.RunInfo
	if d, ok := m.game.(boardDescriber); ok {
		s := d.Settings()
		info = storage.RunInfo{Rows: s.Rows, Cols: s.Cols, Obstacles: s.Obstacles, Wrap: s.Wrap}
	}

	runID, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, info)
	if err == nil {
		m.lastRunID = runID
	}
	m.scoreSaved = true
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Cannot start %s: %v\n\n  B: menu  Q: quit\n", m.game.Title(), m.err)
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state the model observed.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastRunID returns the ID of the most recently saved run, if any.
func (m GameModel) LastRunID() string {
	return m.lastRunID
}

// Err returns the error that prevented the game from starting.
func (m GameModel) Err() error {
	return m.err
}

// Run plays a single game until the player quits or goes back.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, cfg)
	if err := model.Err(); err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
