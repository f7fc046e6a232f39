package script

import (
	"fmt"
	"strconv"
	"strings"
)

// MoveMode selects how mousemove coordinates are interpreted.
type MoveMode int

const (
	// Absolute positions the pointer at screen coordinates (x, y).
	Absolute MoveMode = iota
	// Relative displaces the pointer by (x, y) from wherever it is.
	Relative
)

func (m MoveMode) String() string {
	if m == Relative {
		return "rel"
	}
	return "abs"
}

// ParseMoveMode converts a mousemove mode token to a MoveMode.
func ParseMoveMode(s string) (MoveMode, error) {
	switch s {
	case "abs":
		return Absolute, nil
	case "rel":
		return Relative, nil
	default:
		return Absolute, fmt.Errorf("invalid mode %q (expected abs or rel)", s)
	}
}

// MouseButton represents a mouse button, numbered 1-5 in script form.
type MouseButton int

const (
	ButtonLeft MouseButton = iota + 1
	ButtonRight
	ButtonMiddle
	ButtonBack
	ButtonForward
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// ParseMouseButton converts a script button number to a MouseButton.
// Back and Forward have no injection support on macOS and are rejected there.
func ParseMouseButton(s string) (MouseButton, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid button %q: %w", s, err)
	}
	if n < 1 || n > 5 {
		return 0, fmt.Errorf("invalid button %q (expected 1-5)", s)
	}
	b := MouseButton(n)
	if (b == ButtonBack || b == ButtonForward) && !extraButtonsSupported {
		return 0, fmt.Errorf("button %d is not supported on %s", n, hostOS)
	}
	return b, nil
}

// InstructionGroup holds every action scheduled to fire at one resolved
// timestamp. Groups are immutable once built and consumed exactly once by
// the scheduler, in ascending time order.
type InstructionGroup struct {
	Time    int64 // milliseconds from run start
	Actions []Action
}

// Action is one input event description from a script line. Implementations
// are immutable value objects; String renders the canonical script form, so
// parsing a rendered action reproduces it. The one exception is a ";" key:
// ";" is the action separator, so ParseKey accepts it but the rendered
// "keydown ;" has no parseable script form.
type Action interface {
	fmt.Stringer
	isAction()
}

// PointerMove moves the pointer to (X, Y), either instantly (Duration 0) or
// glided linearly over Duration milliseconds.
type PointerMove struct {
	X, Y     int
	Duration int // milliseconds; 0 means instantaneous
	Mode     MoveMode
}

// ButtonDown presses a mouse button.
type ButtonDown struct{ Button MouseButton }

// ButtonUp releases a mouse button.
type ButtonUp struct{ Button MouseButton }

// KeyDown presses a keyboard key.
type KeyDown struct{ Key Key }

// KeyUp releases a keyboard key.
type KeyUp struct{ Key Key }

// TypeText enters literal text.
type TypeText struct{ Text string }

func (PointerMove) isAction() {}
func (ButtonDown) isAction()  {}
func (ButtonUp) isAction()    {}
func (KeyDown) isAction()     {}
func (KeyUp) isAction()       {}
func (TypeText) isAction()    {}

func (a PointerMove) String() string {
	if a.Duration > 0 {
		return fmt.Sprintf("mousemove %s %d %d %d", a.Mode, a.X, a.Y, a.Duration)
	}
	return fmt.Sprintf("mousemove %s %d %d", a.Mode, a.X, a.Y)
}

func (a ButtonDown) String() string { return fmt.Sprintf("mousedown %d", int(a.Button)) }
func (a ButtonUp) String() string   { return fmt.Sprintf("mouseup %d", int(a.Button)) }
func (a KeyDown) String() string    { return fmt.Sprintf("keydown %s", string(a.Key)) }
func (a KeyUp) String() string      { return fmt.Sprintf("keyup %s", string(a.Key)) }
func (a TypeText) String() string   { return fmt.Sprintf("text %s", a.Text) }

// Render writes an InstructionGroup back out in canonical script form.
func (g InstructionGroup) String() string {
	parts := make([]string, len(g.Actions))
	for i, a := range g.Actions {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%d > %s", g.Time, strings.Join(parts, "; "))
}
