package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// DefaultMaxAttempts bounds rejection sampling for a single placement.
const DefaultMaxAttempts = 1000

// Spawner places food and obstacles on free cells.
//
// Placement draws uniformly from the whole board and rejects occupied cells.
// After maxAttempts misses it falls back to listing the free cells, so a
// crowded board costs one scan instead of an unbounded loop.
type Spawner struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewSpawner creates a spawner. maxAttempts <= 0 selects DefaultMaxAttempts.
func NewSpawner(rng *rand.Rand, maxAttempts int) *Spawner {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Spawner{rng: rng, maxAttempts: maxAttempts}
}

// Food picks a cell for which occupied returns false.
// occupied must cover both snake segments and obstacles.
func (s *Spawner) Food(b Board, occupied func(core.Point) bool) (core.Point, error) {
	p, ok := s.pick(b, occupied)
	if !ok {
		return core.Point{}, &SpawnError{Requested: 1, Placed: 0}
	}
	return p, nil
}

// Obstacles places count distinct cells that are neither occupied nor chosen
// earlier in the same call. occupied must cover the snake and the food.
// On a shortfall the cells already placed are returned with a *SpawnError.
func (s *Spawner) Obstacles(b Board, occupied func(core.Point) bool, count int) ([]core.Point, error) {
	placed := make([]core.Point, 0, count)
	chosen := make(map[core.Point]struct{}, count)
	taken := func(p core.Point) bool {
		if _, ok := chosen[p]; ok {
			return true
		}
		return occupied(p)
	}

	for len(placed) < count {
		p, ok := s.pick(b, taken)
		if !ok {
			return placed, &SpawnError{Requested: count, Placed: len(placed)}
		}
		chosen[p] = struct{}{}
		placed = append(placed, p)
	}
	return placed, nil
}

func (s *Spawner) pick(b Board, taken func(core.Point) bool) (core.Point, bool) {
	if b.Cells() <= 0 {
		return core.Point{}, false
	}

	for i := 0; i < s.maxAttempts; i++ {
		p := core.Point{X: s.rng.Intn(b.Cols), Y: s.rng.Intn(b.Rows)}
		if !taken(p) {
			return p, true
		}
	}

	var free []core.Point
	b.forEachCell(func(p core.Point) {
		if !taken(p) {
			free = append(free, p)
		}
	})
	if len(free) == 0 {
		return core.Point{}, false
	}
	return free[s.rng.Intn(len(free))], true
}
