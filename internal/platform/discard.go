package platform

import "github.com/mj1618/replay-cli/internal/script"

// Discard is a Sink that drops every event. Dry runs use it so a script can
// be played on any platform without touching the real input layer.
type Discard struct{}

func (Discard) MoveMouse(x, y int, relative bool) error { return nil }

func (Discard) Button(b script.MouseButton, pressed bool) error { return nil }

func (Discard) Key(k script.Key, pressed bool) error { return nil }

func (Discard) TypeText(text string) error { return nil }

func (Discard) CursorPosition() (int, int, error) { return 0, 0, nil }
