package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mizutanik/promptpulse/internal/update"
)

var (
	version = "dev"
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "promptpulse",
		Short: "Prompt quality and usage companion for Claude Code",
		Long: `promptpulse scores your prompts as you write them, tracks usage sessions,
and renders a status line inside Claude Code. Run 'promptpulse setup' for the
interactive installer, or 'promptpulse install' to register the hook and
status line directly.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	checkFlag := false
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("promptpulse %s\n", version)
			if !checkFlag {
				return
			}
			res, ok := update.Check(version)
			if !ok {
				return
			}
			if res.Outdated {
				fmt.Printf("A new version is available: %s\n", res.Latest)
			} else {
				fmt.Println("You are on the latest version.")
			}
		},
	}
	versionCmd.Flags().BoolVar(&checkFlag, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(
		newInstallCmd(),
		newUninstallCmd(),
		newStatusCmd(),
		newTrackCmd(),
		newAnalyzePromptCmd(),
		newStatusLineCmd(),
		newAgentsCmd(),
		newAuthCmd(),
		newSetupCmd(),
		newWatchCmd(),
		newUsageCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging configures zerolog for human consumption on stderr. The hook
// and status line entry points run silent: their output channels belong to
// the host tool.
func setupLogging(cmd *cobra.Command) {
	if cmd.Name() == "analyze-prompt" || cmd.Name() == "statusline" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// execPath resolves the running binary's path for building the installed
// command strings. Fallback to the bare name keeps install usable when the
// path cannot be resolved.
func execPath() string {
	path, err := os.Executable()
	if err != nil {
		return "promptpulse"
	}
	return path
}
