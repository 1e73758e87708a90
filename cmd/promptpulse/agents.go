package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mizutanik/promptpulse/internal/agents"
)

func newAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Manage promptpulse sub-agents in the Claude agents directory",
	}
	cmd.AddCommand(newAgentsInstallCmd(), newAgentsRemoveCmd(), newAgentsStatusCmd())
	return cmd
}

func newAgentsInstallCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install missing sub-agents (use --force to rewrite all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			installer := agents.NewInstaller()

			results, err := installer.Install(force, func(r agents.ItemResult) {
				switch r.Outcome {
				case agents.OutcomeInstalled:
					fmt.Printf("  installed %s\n", r.Name)
				case agents.OutcomeSkipped:
					fmt.Printf("  skipped   %s (already present)\n", r.Name)
				case agents.OutcomeFailed:
					fmt.Printf("  FAILED    %s: %v\n", r.Name, r.Err)
				}
			})
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Outcome == agents.OutcomeFailed {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d agents failed to install", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Rewrite every agent file, even if present")
	return cmd
}

func newAgentsRemoveCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "remove [name...]",
		Short: "Remove installed sub-agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			installer := agents.NewInstaller()

			var results []agents.ItemResult
			switch {
			case all:
				results = installer.RemoveAll()
			case len(args) > 0:
				for _, name := range args {
					if !agents.InCatalog(name) {
						return fmt.Errorf("unknown agent %q; see 'promptpulse agents status'", name)
					}
				}
				results = installer.RemoveSelected(args)
			default:
				return fmt.Errorf("name at least one agent, or pass --all")
			}

			failed := 0
			for _, r := range results {
				if r.Outcome == agents.OutcomeFailed {
					fmt.Printf("  FAILED  %s: %v\n", r.Name, r.Err)
					failed++
				} else {
					fmt.Printf("  removed %s\n", r.Name)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d agents failed to remove", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove every catalog agent")
	return cmd
}

func newAgentsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which sub-agents are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := agents.NewInstaller().Status()
			if err != nil {
				return err
			}

			fmt.Printf("%d/%d installed (%d%%)\n", len(status.Installed), status.Total, status.Percent)
			for _, name := range status.Installed {
				fmt.Printf("  [x] %s\n", name)
			}
			for _, name := range status.Missing {
				fmt.Printf("  [ ] %s\n", name)
			}
			return nil
		},
	}
}
