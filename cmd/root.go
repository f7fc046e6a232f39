package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/replay-cli/internal/output"
	"github.com/mj1618/replay-cli/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "replay-cli",
	Short: "Play timestamped input-automation scripts",
	Long:  "A CLI tool that replays .replay scripts of timestamped pointer, button, key, and text actions against the desktop via device-level input injection.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Report format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON reports")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, err := rootCmd.PersistentFlags().GetBool("pretty"); err == nil && pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}
