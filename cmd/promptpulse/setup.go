package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mizutanik/promptpulse/internal/agents"
	"github.com/mizutanik/promptpulse/internal/auth"
	"github.com/mizutanik/promptpulse/internal/detector"
	"github.com/mizutanik/promptpulse/internal/features"
	"github.com/mizutanik/promptpulse/internal/menu"
	"github.com/mizutanik/promptpulse/internal/tracking"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactive setup menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := features.NewManager()
			installer := agents.NewInstaller()
			agg := &detector.Aggregator{
				Features:      mgr,
				Agents:        installer,
				Tracking:      tracking.NewReader(),
				Authenticated: auth.NewStore().IsAuthenticated,
			}

			return menu.Run(menu.Options{
				DetectState: agg.Detect,
				Actions: []menu.Action{
					{
						Label: "Install hook + status line",
						// Replacing a foreign status line is the destructive
						// part; the menu's confirm step covers it.
						Destructive: true,
						Run: func() (string, error) {
							if err := mgr.InstallHook(execPath(), false); err != nil {
								return "", err
							}
							if err := mgr.InstallStatusLine(execPath()); err != nil {
								return "", err
							}
							return "hook and status line installed", nil
						},
					},
					{
						Label:       "Uninstall hook + status line",
						Destructive: true,
						Run: func() (string, error) {
							if err := mgr.UninstallHook(); err != nil {
								return "", err
							}
							if err := mgr.UninstallStatusLine(mgr.HasBackup()); err != nil {
								return "", err
							}
							return "hook and status line removed", nil
						},
					},
					{
						Label: "Install sub-agents",
						Run: func() (string, error) {
							results, err := installer.Install(false, nil)
							if err != nil {
								return "", err
							}
							installed, failed := 0, 0
							for _, r := range results {
								switch r.Outcome {
								case agents.OutcomeInstalled:
									installed++
								case agents.OutcomeFailed:
									failed++
								}
							}
							if failed > 0 {
								return "", fmt.Errorf("%d agents failed to install", failed)
							}
							return fmt.Sprintf("%d agents installed", installed), nil
						},
					},
					{
						Label:       "Remove all sub-agents",
						Destructive: true,
						Run: func() (string, error) {
							results := installer.RemoveAll()
							for _, r := range results {
								if r.Outcome == agents.OutcomeFailed {
									return "", fmt.Errorf("remove %s: %v", r.Name, r.Err)
								}
							}
							return "all agents removed", nil
						},
					},
					{
						Label: "Enable usage metrics",
						Run: func() (string, error) {
							if err := mgr.SetUsageTracking(true); err != nil {
								return "", err
							}
							return "usage metrics enabled", nil
						},
					},
					{
						Label: "Disable usage metrics",
						Run: func() (string, error) {
							if err := mgr.SetUsageTracking(false); err != nil {
								return "", err
							}
							return "usage metrics disabled", nil
						},
					},
				},
			})
		},
	}
}
