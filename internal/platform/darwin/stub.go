//go:build !darwin

// Package darwin registers the macOS injection sink. On other platforms the
// package is empty and platform.NewSink reports ErrUnsupported.
package darwin
