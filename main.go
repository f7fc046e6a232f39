package main

import (
	"github.com/mj1618/replay-cli/cmd"

	// Register the platform injection sink for the current OS.
	_ "github.com/mj1618/replay-cli/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
