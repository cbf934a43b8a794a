package rules

import "testing"

func TestSequencerAdvanceWraps(t *testing.T) {
	s := NewSequencer(3)
	if got := s.Current(); got != 0 {
		t.Fatalf("expected seat 0 first, got %d", got)
	}
	if got := s.Advance(); got != 1 {
		t.Fatalf("expected seat 1, got %d", got)
	}
	if got := s.Advance(); got != 2 {
		t.Fatalf("expected seat 2, got %d", got)
	}
	if got := s.Advance(); got != 0 {
		t.Fatalf("expected wrap to seat 0, got %d", got)
	}
}

func TestSequencerReanchor(t *testing.T) {
	s := NewSequencer(4)
	s.Reanchor(2)

	if got := s.Current(); got != 2 {
		t.Fatalf("expected current seat 2 after reanchor, got %d", got)
	}
	want := []int{2, 3, 0, 1}
	order := s.Order()
	for i, seat := range want {
		if order[i] != seat {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}

	// Re-anchoring again preserves relative order from the new rotation.
	s.Reanchor(0)
	want = []int{0, 1, 2, 3}
	order = s.Order()
	for i, seat := range want {
		if order[i] != seat {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestSequencerReanchorMidRotation(t *testing.T) {
	s := NewSequencer(3)
	s.Advance()
	s.Advance()
	s.Reanchor(1)
	if got := s.Current(); got != 1 {
		t.Fatalf("expected current seat 1, got %d", got)
	}
	if got := s.Advance(); got != 2 {
		t.Fatalf("expected seat 2 after seat 1, got %d", got)
	}
}

func TestSequencerTrickPosition(t *testing.T) {
	s := NewSequencer(3)
	if !s.FirstOfTrick(0) {
		t.Fatal("zero plays recorded means first of trick")
	}
	if s.FirstOfTrick(1) {
		t.Fatal("one play recorded is not first of trick")
	}
	if s.LastOfTrick(1) {
		t.Fatal("one play of three is not last")
	}
	if !s.LastOfTrick(2) {
		t.Fatal("two plays of three means the next closes the trick")
	}
}
