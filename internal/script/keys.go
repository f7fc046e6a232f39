package script

import (
	"fmt"
	"runtime"
	"strings"
)

// Key is a canonical key identifier: a lowercase name from the named-key
// table or a single printable character.
type Key string

var hostOS = runtime.GOOS

// Back/Forward buttons and the insert key have no CGEvent equivalent.
var extraButtonsSupported = hostOS != "darwin"
var insertSupported = hostOS != "darwin"

// namedKeys is the closed set of recognized key names.
var namedKeys = map[string]bool{
	"alt":       true,
	"backspace": true,
	"capslock":  true,
	"control":   true,
	"delete":    true,
	"down":      true,
	"end":       true,
	"enter":     true,
	"escape":    true,
	"home":      true,
	"insert":    true,
	"left":      true,
	"pagedown":  true,
	"pageup":    true,
	"right":     true,
	"shift":     true,
	"space":     true,
	"super":     true,
	"tab":       true,
	"up":        true,
}

func init() {
	for i := 1; i <= 20; i++ {
		namedKeys[fmt.Sprintf("f%d", i)] = true
	}
}

// printablePunctuation is the fixed set of single-character punctuation keys.
const printablePunctuation = "`-=[]\\;',./"

// ParseKey converts a key token to a canonical Key. Names are matched
// case-insensitively; anything else must be exactly one printable character
// drawn from letters, digits, or a fixed punctuation set.
func ParseKey(s string) (Key, error) {
	lower := strings.ToLower(s)
	if namedKeys[lower] {
		if lower == "insert" && !insertSupported {
			return "", fmt.Errorf("key %q is not supported on %s", s, hostOS)
		}
		return Key(lower), nil
	}
	if len(lower) != 1 {
		return "", fmt.Errorf("invalid key %q", s)
	}
	c := lower[0]
	switch {
	case c >= 'a' && c <= 'z':
	case c >= '0' && c <= '9':
	case strings.IndexByte(printablePunctuation, c) >= 0:
	default:
		return "", fmt.Errorf("invalid key %q", s)
	}
	return Key(lower), nil
}
