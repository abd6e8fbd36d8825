package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// fakeGame replays scripted step results.
type fakeGame struct {
	state   core.GameState
	steps   []core.StepResult
	resets  int
	stepped int
	handled []core.Action
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) error {
	g.resets++
	g.state = core.GameState{Interval: 100 * time.Millisecond}
	return nil
}

func (g *fakeGame) Handle(a core.Action) {
	g.handled = append(g.handled, a)
	if a == core.ActionPause {
		g.state.Paused = !g.state.Paused
	}
}

func (g *fakeGame) Step() core.StepResult {
	g.stepped++
	if len(g.steps) == 0 {
		return core.StepResult{State: g.state}
	}
	r := g.steps[0]
	g.steps = g.steps[1:]
	g.state = r.State
	return r
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) Settings() snake.Settings {
	return snake.Settings{Rows: 10, Cols: 15, Obstacles: 2}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, Seed: 1}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey('w'), core.ActionUp, false},
		{runeKey('k'), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{runeKey('j'), core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey('a'), core.ActionLeft, false},
		{runeKey('l'), core.ActionRight, false},
		{runeKey('p'), core.ActionPause, false},
		{runeKey(' '), core.ActionPause, false},
		{runeKey('r'), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.expected || quit != tc.quit {
				t.Errorf("MapKey(%q) = %s, %v; expected %s, %v", tc.msg.String(), action, quit, tc.expected, tc.quit)
			}
		})
	}
}

func TestGameModelTickAdvances(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, nil, testConfig())

	if g.resets != 1 {
		t.Fatalf("Reset called %d times, expected 1", g.resets)
	}
	if m.Init() == nil {
		t.Fatal("Init() should schedule the first tick")
	}

	m, cmd := update(t, m, TickMsg{Gen: 0})
	if g.stepped != 1 {
		t.Errorf("Step called %d times, expected 1", g.stepped)
	}
	if cmd == nil {
		t.Error("a running game should schedule the next tick")
	}
}

func TestGameModelDropsStaleTicks(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, nil, testConfig())

	m, _ = update(t, m, runeKey('p'))
	if !m.State().Paused {
		t.Fatal("Expected paused")
	}

	// Tick scheduled before the pause
	m, cmd := update(t, m, TickMsg{Gen: 0})
	if g.stepped != 0 || cmd != nil {
		t.Error("stale tick should be ignored")
	}

	// Tick for the current schedule while paused
	m, cmd = update(t, m, TickMsg{Gen: m.gen})
	if g.stepped != 0 || cmd != nil {
		t.Error("paused game should not step")
	}

	m, cmd = update(t, m, runeKey('p'))
	if m.State().Paused || cmd == nil {
		t.Fatal("resume should schedule a new tick")
	}
	if m.gen != 2 {
		t.Errorf("gen = %d, expected 2", m.gen)
	}

	update(t, m, TickMsg{Gen: 1})
	if g.stepped != 0 {
		t.Error("tick from the paused schedule should be ignored")
	}
	update(t, m, TickMsg{Gen: 2})
	if g.stepped != 1 {
		t.Error("tick from the current schedule should step")
	}
}

func TestGameModelPassesDirections(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, nil, testConfig())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if cmd != nil || g.stepped != 0 {
		t.Error("input should not move the snake by itself")
	}
	update(t, m, runeKey('w'))

	if len(g.handled) != 2 || g.handled[0] != core.ActionLeft || g.handled[1] != core.ActionUp {
		t.Errorf("handled = %v", g.handled)
	}
}

func TestGameModelSavesScoreOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &fakeGame{}
	m := NewGameModel(g, store, testConfig())
	g.steps = []core.StepResult{
		{State: core.GameState{Score: 3, Interval: 90 * time.Millisecond}, Events: []core.Event{core.EventFoodEaten}},
		{State: core.GameState{Score: 3, GameOver: true}, Events: []core.Event{core.EventGameOver}},
	}

	m, _ = update(t, m, TickMsg{Gen: 0})
	if m.BackToMenu() {
		t.Fatal("back should not be set yet")
	}
	m, cmd := update(t, m, TickMsg{Gen: 0})
	if cmd != nil {
		t.Error("game over should stop ticking")
	}

	scores, err := store.TopScores("fake", 10)
	if err != nil || len(scores) != 1 {
		t.Fatalf("TopScores() = %v, %v", scores, err)
	}
	if scores[0].Score != 3 || scores[0].Rows != 10 || scores[0].Cols != 15 || scores[0].Obstacles != 2 {
		t.Errorf("saved %+v", scores[0])
	}
	if m.LastRunID() != scores[0].RunID {
		t.Errorf("LastRunID() = %q, expected %q", m.LastRunID(), scores[0].RunID)
	}

	// Further ticks do not save again
	update(t, m, TickMsg{Gen: 0})
	if scores, _ := store.TopScores("fake", 10); len(scores) != 1 {
		t.Errorf("score saved %d times", len(scores))
	}
}

func TestGameModelRestartAndBack(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, nil, testConfig())

	m, _ = update(t, m, runeKey('r'))
	if g.resets != 1 {
		t.Error("restart should be ignored while running")
	}
	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("back should be ignored while running")
	}

	g.steps = []core.StepResult{{State: core.GameState{GameOver: true}, Events: []core.Event{core.EventGameOver}}}
	m, _ = update(t, m, TickMsg{Gen: 0})

	m, cmd := update(t, m, runeKey('r'))
	if g.resets != 2 || cmd == nil || m.gen != 1 {
		t.Errorf("restart: resets %d gen %d cmd %v", g.resets, m.gen, cmd != nil)
	}
	if m.State().GameOver {
		t.Error("restart should clear game over")
	}

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
}

func TestGameModelLoadsStoredBest(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.SetHighScore(snake.IDClassic, 9); err != nil {
		t.Fatal(err)
	}

	m := NewGameModel(snake.New(), store, testConfig())
	if m.Err() != nil {
		t.Fatal(m.Err())
	}
	if m.State().HighScore != 9 {
		t.Errorf("HighScore = %d, expected stored best 9", m.State().HighScore)
	}
	if m.View() == "" {
		t.Error("View() should render the board")
	}
}
