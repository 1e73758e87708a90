package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mizutanik/promptpulse/internal/agents"
	"github.com/mizutanik/promptpulse/internal/auth"
	"github.com/mizutanik/promptpulse/internal/detector"
	"github.com/mizutanik/promptpulse/internal/features"
	"github.com/mizutanik/promptpulse/internal/tracking"
)

func newInstallCmd() *cobra.Command {
	var (
		trackUsage bool
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Register the prompt-analysis hook and status line in Claude Code",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := features.NewManager()

			detection, err := mgr.Detect()
			if err != nil {
				return err
			}

			// Replacing someone else's status line needs explicit consent.
			// The original is backed up and restorable via uninstall.
			if detection.StatusLine == features.PresenceForeign && !yes {
				return fmt.Errorf("a status line from another tool is configured; " +
					"re-run with --yes to back it up and replace it")
			}

			if err := mgr.InstallHook(execPath(), trackUsage); err != nil {
				return err
			}
			if err := mgr.InstallStatusLine(execPath()); err != nil {
				return err
			}

			fmt.Println("Hook and status line installed.")
			if mgr.HasBackup() {
				fmt.Println("The previous status line was backed up; 'promptpulse uninstall --restore' brings it back.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trackUsage, "track-usage", false, "Enable usage metrics on the installed hook")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace a foreign status line without prompting")
	return cmd
}

func newUninstallCmd() *cobra.Command {
	var restore bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the hook and status line from Claude Code",
		Long: `Remove promptpulse's hook and status line from settings.json. Entries
installed by other tools are never touched. With --restore, a backed-up
status line from before install is put back in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := features.NewManager()

			if err := mgr.UninstallHook(); err != nil {
				return err
			}
			if err := mgr.UninstallStatusLine(restore); err != nil {
				return err
			}

			fmt.Println("Hook and status line removed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&restore, "restore", false, "Restore the backed-up status line")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what promptpulse has installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := features.NewManager()
			installer := agents.NewInstaller()

			detection, err := mgr.Detect()
			if err != nil {
				return err
			}
			agentStatus, err := installer.Status()
			if err != nil {
				return err
			}
			tracked, err := mgr.UsageTrackingEnabled()
			if err != nil {
				return err
			}

			agg := &detector.Aggregator{
				Features:      mgr,
				Agents:        installer,
				Tracking:      tracking.NewReader(),
				Authenticated: auth.NewStore().IsAuthenticated,
			}
			setup := agg.Detect()

			fmt.Printf("Setup state:   %s\n", setup.State)
			if setup.Err != "" {
				fmt.Printf("Detect error:  %s\n", setup.Err)
			}
			fmt.Printf("Hook:          %s\n", detection.Hook)
			fmt.Printf("Status line:   %s\n", detection.StatusLine)
			fmt.Printf("Install state: %s\n", detection.State())
			fmt.Printf("Usage metrics: %v\n", tracked)
			fmt.Printf("Sub-agents:    %d/%d installed (%d%%)\n",
				len(agentStatus.Installed), agentStatus.Total, agentStatus.Percent)
			if backup, _ := mgr.BackupDetails(); backup != nil {
				fmt.Printf("Backup:        %q from %s\n", backup.OriginalCommand, backup.BackupDate)
			}
			return nil
		},
	}
}

func newTrackCmd() *cobra.Command {
	var projects []string

	cmd := &cobra.Command{
		Use:       "track {on|off}",
		Short:     "Toggle usage metrics on the installed hook",
		Long: `Toggle the usage-metrics flag on the installed hook command. Enabling
tracks every project; pass --projects to restrict recording to a list.
Disabling clears the tracking configuration as well.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := args[0] == "on"
			if err := features.NewManager().SetUsageTracking(enabled); err != nil {
				return err
			}

			reader := tracking.NewReader()
			switch {
			case !enabled:
				if err := reader.SetMode(tracking.ModeNone, nil); err != nil {
					return err
				}
				fmt.Println("Usage metrics disabled.")
			case len(projects) > 0:
				if err := reader.SetMode(tracking.ModeSelected, projects); err != nil {
					return err
				}
				fmt.Printf("Usage metrics enabled for %d projects.\n", len(projects))
			default:
				if err := reader.SetMode(tracking.ModeAll, nil); err != nil {
					return err
				}
				fmt.Println("Usage metrics enabled for all projects.")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&projects, "projects", nil, "Restrict recording to these projects")
	return cmd
}
