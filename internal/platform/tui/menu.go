package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// MenuKeyMap defines the key bindings for the settings menu.
type MenuKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Decrease key.Binding
	Increase key.Binding
	Select   key.Binding
	Scores   key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Decrease, k.Increase, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Decrease, k.Increase},
		{k.Select, k.Scores, k.Quit},
	}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "h", "a", "-"),
			key.WithHelp("left/h", "less"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l", "d", "+"),
			key.WithHelp("right/l", "more"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type menuItem int

const (
	itemRows menuItem = iota
	itemCols
	itemObstacles
	itemWrap
	itemPlay
	itemScores
	itemQuit
	itemCount
)

// MenuModel is the settings menu shown before each run. Changes apply to
// the next run only.
type MenuModel struct {
	snake          config.SnakeConfig
	cursor         menuItem
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model starting from the given settings.
func NewMenuModel(store *storage.Store, snakeCfg config.SnakeConfig, cfg core.RuntimeConfig) MenuModel {
	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		snake:  snakeCfg,
		cursor: itemPlay,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		store:  store,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + itemCount - 1) % itemCount

	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % itemCount

	case key.Matches(msg, m.keys.Decrease):
		m.adjust(-1)

	case key.Matches(msg, m.keys.Increase):
		m.adjust(1)

	case key.Matches(msg, m.keys.Select):
		switch m.cursor {
		case itemPlay:
			m.play = true
			return m, tea.Quit
		case itemScores:
			m.openScoreboard = true
			return m, tea.Quit
		case itemQuit:
			m.quitting = true
			return m, tea.Quit
		case itemWrap:
			m.adjust(1)
		}
	}

	return m, nil
}

// adjust changes the value under the cursor by delta steps.
func (m *MenuModel) adjust(delta int) {
	switch m.cursor {
	case itemRows:
		m.snake.Board.Rows = stepGridSize(m.snake.Board.Rows, delta)
	case itemCols:
		m.snake.Board.Cols = stepGridSize(m.snake.Board.Cols, delta)
	case itemObstacles:
		m.snake.Obstacles.Count = core.Clamp(m.snake.Obstacles.Count+delta, 0, config.MaxObstacles)
	case itemWrap:
		m.snake.Board.EdgeWrapping = !m.snake.Board.EdgeWrapping
	}
}

// stepGridSize moves to a neighbouring size in config.GridSizes.
// Sizes outside the list snap to the nearest listed size first.
func stepGridSize(current, delta int) int {
	sizes := config.GridSizes
	idx := slices.Index(sizes, current)
	if idx < 0 {
		idx = 0
		for i, s := range sizes {
			if core.Abs(s-current) < core.Abs(sizes[idx]-current) {
				idx = i
			}
		}
		return sizes[idx]
	}
	return sizes[core.Clamp(idx+delta, 0, len(sizes)-1)]
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E"), m.width))
	b.WriteString("\n\n")

	best := m.bestScore()
	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("Best (%s): %d", m.VariantID(), best)), m.width))
	b.WriteString("\n\n")

	wrap := "off"
	if m.snake.Board.EdgeWrapping {
		wrap = "on"
	}

	lines := []string{
		fmt.Sprintf("Rows       < %2d >", m.snake.Board.Rows),
		fmt.Sprintf("Columns    < %2d >", m.snake.Board.Cols),
		fmt.Sprintf("Obstacles  < %2d >", m.snake.Obstacles.Count),
		fmt.Sprintf("Wrap edges < %s >", wrap),
		"Play",
		"High Scores",
		"Quit",
	}

	for i, line := range lines {
		cursor := "  "
		text := fmt.Sprintf("%-18s", line)
		if menuItem(i) == m.cursor {
			cursor = "> "
			text = cursorStyle.Render(text)
		}
		b.WriteString(centerText(cursor+text, m.width))
		b.WriteString("\n")
		if menuItem(i) == itemWrap {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) bestScore() int {
	if m.store == nil {
		return 0
	}
	best, err := m.store.HighScore(m.VariantID())
	if err != nil {
		return 0
	}
	return best
}

// VariantID returns the registry ID matching the chosen wrap mode.
func (m MenuModel) VariantID() string {
	if m.snake.Board.EdgeWrapping {
		return snake.IDWrap
	}
	return snake.IDClassic
}

// Settings returns the configuration as edited in the menu.
func (m MenuModel) Settings() config.SnakeConfig {
	return m.snake
}

// WantsPlay returns true if user chose to start a run.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Snake           config.SnakeConfig
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, snakeCfg config.SnakeConfig, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, snakeCfg, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Snake: snakeCfg, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Snake: snakeCfg, Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}

// Result summarises the menu's final state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Snake:  m.Settings(),
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.WantsPlay():
		result.GameID = m.VariantID()
	default:
		result.Quit = true
	}
	return result
}
