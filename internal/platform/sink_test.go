package platform

import (
	"errors"
	"testing"
)

func TestDiscardDropsEverything(t *testing.T) {
	var s Sink = Discard{}
	if err := s.MoveMouse(10, 10, true); err != nil {
		t.Errorf("MoveMouse: %v", err)
	}
	if err := s.TypeText("hello"); err != nil {
		t.Errorf("TypeText: %v", err)
	}
	x, y, err := s.CursorPosition()
	if err != nil || x != 0 || y != 0 {
		t.Errorf("CursorPosition = (%d, %d, %v), want (0, 0, nil)", x, y, err)
	}
}

func TestNewSinkWithoutRegistration(t *testing.T) {
	if NewSinkFunc != nil {
		t.Skip("a platform sink is registered")
	}
	if _, err := NewSink(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
