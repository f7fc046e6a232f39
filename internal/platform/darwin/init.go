//go:build darwin && cgo

package darwin

import "github.com/mj1618/replay-cli/internal/platform"

func init() {
	platform.NewSinkFunc = func() (platform.Sink, error) {
		return NewSink(), nil
	}
}
