//go:build darwin

// Package darwin provides macOS input injection using CoreGraphics CGEvents.
// All functionality requires CGo. When CGo is disabled, the package compiles
// as a no-op stub and no sink is registered.
package darwin
