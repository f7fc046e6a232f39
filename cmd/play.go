package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mj1618/replay-cli/internal/engine"
	"github.com/mj1618/replay-cli/internal/output"
	"github.com/mj1618/replay-cli/internal/platform"
	"github.com/mj1618/replay-cli/internal/script"
	"github.com/spf13/cobra"
)

// scriptExtension is the required suffix of playable script files.
const scriptExtension = ".replay"

// PlayResult is the YAML output of a play command.
type PlayResult struct {
	OK      bool     `yaml:"ok"                json:"ok"`
	Script  string   `yaml:"script"            json:"script"`
	DryRun  bool     `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
	Groups  int      `yaml:"groups"            json:"groups"`
	Actions int      `yaml:"actions"           json:"actions"`
	Glides  int      `yaml:"glides"            json:"glides"`
	Elapsed string   `yaml:"elapsed"           json:"elapsed"`
	Faults  []string `yaml:"faults,omitempty"  json:"faults,omitempty"`
}

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a .replay script against the desktop",
	Long: `Parse a timestamped instruction script and replay its pointer, button,
key, and text actions through device-level input injection.

Each meaningful script line is "<timestamp> > <action>[; <action>...]" where
the timestamp is an absolute millisecond offset from run start or a "+N"
increment relative to the previous line.

Example:
  replay-cli play demo.replay --verbose
  replay-cli play demo.replay --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("dry-run", false, "Print actions to stdout instead of sending events")
	playCmd.Flags().Bool("verbose", false, "Log all actions to stdout while executing")
}

func runPlay(cmd *cobra.Command, args []string) error {
	path := args[0]
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	queue, err := loadScript(path)
	if err != nil {
		return err
	}

	// A dry run drives a discarding sink, so it works on every platform and
	// never performs a mutating injection call.
	var sink platform.Sink = platform.Discard{}
	if !dryRun {
		sink, err = platform.NewSink()
		if err != nil {
			return fmt.Errorf("failed to initialize input injection: %w", err)
		}
	}

	s := engine.New(sink, engine.Options{
		Execute: !dryRun,
		Log:     dryRun || verbose,
	})
	res := s.Run(queue)

	return output.Print(PlayResult{
		OK:      len(res.Faults) == 0,
		Script:  path,
		DryRun:  dryRun,
		Groups:  res.Groups,
		Actions: res.Actions,
		Glides:  res.Glides,
		Elapsed: res.Elapsed.Round(time.Millisecond).String(),
		Faults:  res.Faults,
	})
}

// loadScript validates the script path and parses its contents. All parse
// failures surface before any execution begins.
func loadScript(path string) ([]script.InstructionGroup, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot open script: %w", err)
	}
	if !strings.HasSuffix(path, scriptExtension) {
		return nil, fmt.Errorf("not a replay script (expected a %s file): %s", scriptExtension, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open script: %w", err)
	}
	defer f.Close()
	return script.Parse(f)
}
