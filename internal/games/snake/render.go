package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Layout constants. Each board cell is two terminal columns wide so the
// grid looks roughly square.
const (
	hudHeight = 2
	cellWidth = 2
)

// RequiredSize returns the terminal size needed to draw a board.
func RequiredSize(b Board) (w, h int) {
	return b.Cols*cellWidth + 2, b.Rows + hudHeight + 2
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.engine == nil {
		return
	}

	board := g.engine.Board()
	needW, needH := RequiredSize(board)
	if dst.Width() < needW || dst.Height() < needH {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	frame := core.NewRect((dst.Width()-needW)/2, hudHeight, needW, needH-hudHeight)
	g.renderFrame(dst, frame, board)

	originX, originY := frame.X+1, frame.Y+1
	cell := func(p core.Point, r rune, c core.Color) {
		dst.SetColored(originX+p.X*cellWidth, originY+p.Y, r, c)
	}

	for _, p := range g.engine.Obstacles() {
		cell(p, '#', g.theme.Obstacle)
	}
	if food, ok := g.engine.Food(); ok {
		cell(food, '*', g.theme.Food)
	}
	segments := g.engine.Snake()
	for i := len(segments) - 1; i >= 0; i-- {
		if i == 0 {
			cell(segments[i], headRune(g.engine.Direction()), g.theme.Head)
		} else {
			cell(segments[i], 'o', g.theme.Body)
		}
	}

	switch {
	case g.engine.Cleared():
		g.renderOverlay(dst, "Board cleared!", fmt.Sprintf("Final Score: %d", g.engine.Score()))
	case g.engine.IsGameOver():
		g.renderOverlay(dst, "Game Over", "R: restart  B: menu")
	case g.engine.State() == StatePaused:
		g.renderOverlay(dst, "Paused", "P: resume  B: menu")
	}
}

func headRune(d Direction) rune {
	switch d {
	case DirUp:
		return '^'
	case DirDown:
		return 'v'
	case DirLeft:
		return '<'
	default:
		return '>'
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	state := g.State()
	hud := fmt.Sprintf(" %s  Score: %d  Best: %d  Speed: %dms", g.title, state.Score, state.HighScore, state.Interval.Milliseconds())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderFrame draws the board border. Wrapping edges are dotted.
func (g *Game) renderFrame(dst *core.Screen, r core.Rect, b Board) {
	if !b.Wrap {
		dst.DrawBox(r, core.ColorWhite)
		return
	}
	for x := r.X; x < r.Right(); x++ {
		dst.SetColored(x, r.Y, '·', core.ColorGray)
		dst.SetColored(x, r.Bottom()-1, '·', core.ColorGray)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		dst.SetColored(r.X, y, '·', core.ColorGray)
		dst.SetColored(r.Right()-1, y, '·', core.ColorGray)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
