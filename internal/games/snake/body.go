package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Outcome is the result of a single movement step.
type Outcome int

const (
	OutcomeMoved Outcome = iota
	OutcomeAte
	OutcomeCollided
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeCollided:
		return "collided"
	default:
		return "unknown"
	}
}

// Body is the snake itself: its segments (head first), committed heading and
// a single pending heading that is applied at the start of the next step.
type Body struct {
	segments   []core.Point
	dir        Direction
	pending    Direction
	hasPending bool
}

// NewBody creates a one-segment snake at head moving in dir.
func NewBody(head core.Point, dir Direction) *Body {
	return &Body{
		segments: []core.Point{head},
		dir:      dir,
	}
}

// Head returns the first segment.
func (s *Body) Head() core.Point {
	return s.segments[0]
}

// Len returns the number of segments.
func (s *Body) Len() int {
	return len(s.segments)
}

// Direction returns the committed heading.
func (s *Body) Direction() Direction {
	return s.dir
}

// Pending returns the buffered heading, if any.
func (s *Body) Pending() (Direction, bool) {
	return s.pending, s.hasPending
}

// Segments returns a copy of the segments, head first.
func (s *Body) Segments() []core.Point {
	out := make([]core.Point, len(s.segments))
	copy(out, s.segments)
	return out
}

// Occupies reports whether any segment sits on p.
func (s *Body) Occupies(p core.Point) bool {
	for _, seg := range s.segments {
		if seg == p {
			return true
		}
	}
	return false
}

// Request buffers a heading for the next step. Only the latest request is
// kept. Reversing onto the neck is silently ignored.
func (s *Body) Request(d Direction) {
	if d == s.dir.Opposite() {
		return
	}
	s.pending = d
	s.hasPending = true
}

// Step advances the snake one cell.
//
// blocked reports obstacle cells. A collision leaves the segments untouched;
// eating keeps the tail so the snake grows by one.
func (s *Body) Step(b Board, blocked func(core.Point) bool, food core.Point) Outcome {
	if len(s.segments) == 0 {
		panic("snake: step on empty body")
	}

	if s.hasPending {
		if s.pending != s.dir.Opposite() {
			s.dir = s.pending
		}
		s.hasPending = false
	}

	head, inBounds := b.Next(s.segments[0], s.dir)
	// The tail still counts: it has not moved yet when the head arrives.
	if !inBounds || s.Occupies(head) || (blocked != nil && blocked(head)) {
		return OutcomeCollided
	}

	s.segments = append(s.segments, core.Point{})
	copy(s.segments[1:], s.segments)
	s.segments[0] = head

	if head == food {
		return OutcomeAte
	}
	s.segments = s.segments[:len(s.segments)-1]
	return OutcomeMoved
}
