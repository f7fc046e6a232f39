package platform

import (
	"fmt"
	"runtime"

	"github.com/mj1618/replay-cli/internal/script"
)

// Sink delivers pointer and keyboard events to the target system.
//
// One Sink is shared by the scheduler and every glide task it spawns, so
// implementations must tolerate concurrent calls. This package does not
// prescribe internal locking; each backend documents its own discipline.
type Sink interface {
	// MoveMouse positions the pointer at (x, y), or displaces it by (x, y)
	// when relative is true.
	MoveMouse(x, y int, relative bool) error

	// Button presses or releases a mouse button at the current pointer position.
	Button(b script.MouseButton, pressed bool) error

	// Key presses or releases a keyboard key.
	Key(k script.Key, pressed bool) error

	// TypeText enters literal text as keyboard input.
	TypeText(text string) error

	// CursorPosition reports the current pointer position.
	CursorPosition() (x, y int, err error)
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("input injection is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// NewSinkFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewSinkFunc func() (Sink, error)

// NewSink returns the injection sink for the current OS.
func NewSink() (Sink, error) {
	if NewSinkFunc == nil {
		return nil, ErrUnsupported
	}
	return NewSinkFunc()
}
