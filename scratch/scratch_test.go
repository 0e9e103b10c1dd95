package scratch

import "testing"

func TestScratchConservation(t *testing.T) {
	so := NewScratchOwned(4096)
	s := so.Scratch()
	avail0 := s.Available()

	a, rest := TakeSlice[int64](s, 16)
	if len(a) != 16 {
		t.Fatalf("expected 16 elements, got %d", len(a))
	}
	b, _ := TakeSlice[int64](rest, 8)
	if len(b) != 8 {
		t.Fatalf("expected 8 elements, got %d", len(b))
	}

	// A fresh Scratch() view over the same arena must report the same
	// available budget: conservation after a balanced take/drop.
	s2 := so.Scratch()
	if s2.Available() != avail0 {
		t.Fatalf("scratch not conserved: got %d want %d", s2.Available(), avail0)
	}
}

func TestTakeOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on over-allocation")
		}
	}()
	so := NewScratchOwned(64)
	s := so.Scratch()
	TakeSlice[int64](s, 1000)
}
