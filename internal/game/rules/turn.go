package rules

// Sequencer maintains the rotation of seats and the pointer to the seat that
// acts next. Position within a trick is always derived from how many cards
// the trick already holds, never from a separate counter.
type Sequencer struct {
	order []int
	idx   int
}

// NewSequencer creates a sequencer over seats 0..seats-1 in natural order.
func NewSequencer(seats int) *Sequencer {
	order := make([]int, seats)
	for i := range order {
		order[i] = i
	}
	return &Sequencer{order: order}
}

// Current returns the seat that is next to act.
func (s *Sequencer) Current() int {
	return s.order[s.idx]
}

// Advance moves the pointer to the following seat, wrapping around, and
// returns it.
func (s *Sequencer) Advance() int {
	s.idx = (s.idx + 1) % len(s.order)
	return s.order[s.idx]
}

// Reanchor rewrites the rotation to begin at start, preserving the relative
// order of the remaining seats, and resets the pointer to start. Called once
// with the opening leader and after every resolved trick with its winner.
func (s *Sequencer) Reanchor(start int) {
	pos := 0
	for i, seat := range s.order {
		if seat == start {
			pos = i
			break
		}
	}
	rotated := make([]int, 0, len(s.order))
	rotated = append(rotated, s.order[pos:]...)
	rotated = append(rotated, s.order[:pos]...)
	s.order = rotated
	s.idx = 0
}

// Order returns a copy of the current rotation.
func (s *Sequencer) Order() []int {
	return append([]int(nil), s.order...)
}

// Seats returns the number of seats in the rotation.
func (s *Sequencer) Seats() int {
	return len(s.order)
}

// FirstOfTrick reports whether the seat about to act opens the trick, given
// how many plays the trick has recorded so far.
func (s *Sequencer) FirstOfTrick(played int) bool {
	return played == 0
}

// LastOfTrick reports whether the seat about to act closes the trick.
func (s *Sequencer) LastOfTrick(played int) bool {
	return played == len(s.order)-1
}
