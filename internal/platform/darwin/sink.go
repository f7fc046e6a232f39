//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation -framework Carbon
#include <CoreGraphics/CoreGraphics.h>
#include <Carbon/Carbon.h>

static int cg_move_mouse(float x, float y) {
    CGPoint point = CGPointMake(x, y);
    CGEventRef move = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, point, kCGMouseButtonLeft);
    if (!move) return -1;
    CGEventPost(kCGHIDEventTap, move);
    CFRelease(move);
    return 0;
}

// Read the current pointer position into *x / *y.
static int cg_cursor_position(float *x, float *y) {
    CGEventRef event = CGEventCreate(NULL);
    if (!event) return -1;
    CGPoint cursor = CGEventGetLocation(event);
    CFRelease(event);
    *x = cursor.x;
    *y = cursor.y;
    return 0;
}

// Press or release a mouse button at the current pointer position.
// button: 0=left, 1=right, 2=middle (maps to kCGMouseButton*)
static int cg_button(int button, int pressed) {
    CGEventType eventType;
    CGMouseButton cgButton;

    switch (button) {
        case 1:
            cgButton = kCGMouseButtonRight;
            eventType = pressed ? kCGEventRightMouseDown : kCGEventRightMouseUp;
            break;
        case 2:
            cgButton = kCGMouseButtonCenter;
            eventType = pressed ? kCGEventOtherMouseDown : kCGEventOtherMouseUp;
            break;
        default:  // left (0)
            cgButton = kCGMouseButtonLeft;
            eventType = pressed ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
            break;
    }

    float x, y;
    if (cg_cursor_position(&x, &y) != 0) return -1;
    CGPoint point = CGPointMake(x, y);

    CGEventRef event = CGEventCreateMouseEvent(NULL, eventType, point, cgButton);
    if (!event) return -1;
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
    return 0;
}

static int cg_key(CGKeyCode keyCode, int pressed) {
    CGEventRef event = CGEventCreateKeyboardEvent(NULL, keyCode, pressed != 0);
    if (!event) return -1;
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
    return 0;
}

// Type a single Unicode character using CGEvent key simulation.
static void cg_type_char(UniChar ch) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, 0, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, 0, false);
    CGEventKeyboardSetUnicodeString(keyDown, 1, &ch);
    CGEventKeyboardSetUnicodeString(keyUp, 1, &ch);
    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);
    CFRelease(keyDown);
    CFRelease(keyUp);
}
*/
import "C"

import (
	"fmt"

	"github.com/mj1618/replay-cli/internal/platform"
	"github.com/mj1618/replay-cli/internal/script"
)

// DarwinSink implements the platform.Sink interface for macOS.
//
// Every call constructs, posts, and releases its own CGEvents; there is no
// shared handle state, so concurrent calls from the scheduler and glide
// tasks are safe.
type DarwinSink struct{}

// NewSink creates a new macOS injection sink.
func NewSink() *DarwinSink {
	return &DarwinSink{}
}

func (s *DarwinSink) MoveMouse(x, y int, relative bool) error {
	if relative {
		cx, cy, err := s.CursorPosition()
		if err != nil {
			return err
		}
		x += cx
		y += cy
	}
	if C.cg_move_mouse(C.float(x), C.float(y)) != 0 {
		return fmt.Errorf("failed to move pointer to (%d, %d)", x, y)
	}
	return nil
}

func (s *DarwinSink) Button(b script.MouseButton, pressed bool) error {
	cButton := C.int(0)
	switch b {
	case script.ButtonLeft:
	case script.ButtonRight:
		cButton = 1
	case script.ButtonMiddle:
		cButton = 2
	default:
		// Back/Forward are rejected at parse time on darwin.
		return fmt.Errorf("unsupported mouse button %s", b)
	}
	cPressed := C.int(0)
	if pressed {
		cPressed = 1
	}
	if C.cg_button(cButton, cPressed) != 0 {
		return fmt.Errorf("failed to post %s button event", b)
	}
	return nil
}

func (s *DarwinSink) Key(k script.Key, pressed bool) error {
	code, ok := keyCodeMap[string(k)]
	if !ok {
		return fmt.Errorf("no macOS key code for %q", string(k))
	}
	cPressed := C.int(0)
	if pressed {
		cPressed = 1
	}
	if C.cg_key(C.CGKeyCode(code), cPressed) != 0 {
		return fmt.Errorf("failed to post key event for %q", string(k))
	}
	return nil
}

func (s *DarwinSink) TypeText(text string) error {
	for _, ch := range text {
		C.cg_type_char(C.UniChar(ch))
	}
	return nil
}

func (s *DarwinSink) CursorPosition() (int, int, error) {
	var x, y C.float
	if C.cg_cursor_position(&x, &y) != 0 {
		return 0, 0, fmt.Errorf("failed to read pointer position")
	}
	return int(x), int(y), nil
}
