package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Autopilot picks a heading for demo play: the safe neighbour closest to the
// food, preferring cells with more open space around them on ties. When no
// neighbour is safe it keeps the current heading.
func Autopilot(e *Engine) Direction {
	current := e.Direction()
	if e.body == nil {
		return current
	}

	board := e.Board()
	head := e.Head()
	food, hasFood := e.Food()

	best := current
	bestDist, bestRoom := -1, -1
	for _, d := range Directions {
		if d == current.Opposite() {
			continue
		}
		next, ok := board.Next(head, d)
		if !ok || e.isOccupied(next) {
			continue
		}

		dist := 0
		if hasFood {
			dist = board.Distance(next, food)
		}
		room := e.openNeighbours(next)
		if bestDist < 0 || dist < bestDist || (dist == bestDist && room > bestRoom) {
			best, bestDist, bestRoom = d, dist, room
		}
	}
	return best
}

func (e *Engine) openNeighbours(p core.Point) int {
	n := 0
	for _, d := range Directions {
		next, ok := e.board.Next(p, d)
		if ok && !e.isOccupied(next) {
			n++
		}
	}
	return n
}
