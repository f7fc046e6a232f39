package engine

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestGlideProgressesLinearlyAndJoins(t *testing.T) {
	sink := &recordingSink{}
	s := New(sink, Options{Execute: true})
	s.SetOutput(&bytes.Buffer{})

	start := time.Now()
	res := s.Run(parseQueue(t, "0 > mousemove abs 100 100 50"))
	elapsed := time.Since(start)

	if res.Glides != 1 {
		t.Fatalf("expected 1 glide, got %d", res.Glides)
	}
	// Run must not return before the glide task has finished all 50 ticks.
	if elapsed < 40*time.Millisecond {
		t.Errorf("run returned after %v, before the 50ms glide could finish", elapsed)
	}

	sink.mu.Lock()
	moves := append([][2]int(nil), sink.moves...)
	sink.mu.Unlock()

	if len(moves) != 50 {
		t.Fatalf("expected 50 ticks, got %d", len(moves))
	}
	if moves[len(moves)-1] != [2]int{100, 100} {
		t.Errorf("expected final position (100, 100), got %v", moves[len(moves)-1])
	}
	prev := [2]int{0, 0}
	for i, m := range moves {
		if m[0] != 100*(i+1)/50 || m[1] != 100*(i+1)/50 {
			t.Fatalf("tick %d: expected (%d, %d), got %v", i+1, 100*(i+1)/50, 100*(i+1)/50, m)
		}
		if m[0] < prev[0] || m[1] < prev[1] {
			t.Fatalf("tick %d: position %v moved backwards from %v", i+1, m, prev)
		}
		prev = m
	}
}

func TestGlideRelativeMode(t *testing.T) {
	sink := &recordingSink{x: 10, y: 10}
	s := New(sink, Options{Execute: true})
	s.SetOutput(&bytes.Buffer{})

	s.Run(parseQueue(t, "0 > mousemove rel 40 -10 20"))

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.moves) != 20 {
		t.Fatalf("expected 20 ticks, got %d", len(sink.moves))
	}
	if last := sink.moves[len(sink.moves)-1]; last != [2]int{50, 0} {
		t.Errorf("expected final position (50, 0), got %v", last)
	}
}

func TestGlidePositionReadFailureIsIsolated(t *testing.T) {
	sink := &recordingSink{posErr: errors.New("no cursor")}
	var buf bytes.Buffer
	s := New(sink, Options{Execute: true})
	s.SetOutput(&buf)

	res := s.Run(parseQueue(t, "0 > mousemove abs 50 50 10; keydown a"))

	if len(res.Faults) != 1 {
		t.Fatalf("expected 1 fault, got %v", res.Faults)
	}
	got := sink.snapshot()
	if len(got) != 1 || got[0] != "key a true" {
		t.Errorf("expected the key action to execute despite the dead glide, got %v", got)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.moves) != 0 {
		t.Errorf("glide with no start position must not move, got %v", sink.moves)
	}
}

func TestConcurrentGlidesShareTheSink(t *testing.T) {
	sink := &recordingSink{}
	s := New(sink, Options{Execute: true})
	s.SetOutput(&bytes.Buffer{})

	// Two overlapping glides; no ordering guarantee between them, but the
	// run must join both before returning.
	res := s.Run(parseQueue(t, "0 > mousemove rel 30 0 30\n+5 > mousemove rel 0 30 30"))
	if res.Glides != 2 {
		t.Fatalf("expected 2 glides, got %d", res.Glides)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.moves) != 60 {
		t.Errorf("expected 60 total ticks, got %d", len(sink.moves))
	}
}
