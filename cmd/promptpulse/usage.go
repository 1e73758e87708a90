package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mizutanik/promptpulse/internal/config"
	"github.com/mizutanik/promptpulse/internal/usage"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func newUsageCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show recorded usage sessions and prompt scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := usage.Open(config.GetUsageDBPath())
			if err != nil {
				return err
			}
			defer store.Close()

			totals, err := store.TotalStats()
			if err != nil {
				return err
			}
			sessions, err := store.Sessions(limit)
			if err != nil {
				return err
			}

			fmt.Println(headerStyle.Render(fmt.Sprintf(
				"%d sessions · %d prompts · avg score %.1f",
				totals.Sessions, totals.Prompts, totals.AverageScore)))

			if len(sessions) == 0 {
				fmt.Println(faintStyle.Render("no sessions recorded yet: run 'promptpulse watch'"))
				return nil
			}

			for _, s := range sessions {
				dur := s.LastAt.Sub(s.FirstAt).Round(time.Minute)
				fmt.Printf("  %-24s %3d prompts  %8s  %s\n",
					s.Project, s.Prompts, dur,
					faintStyle.Render(s.LastAt.Local().Format("Jan 2 15:04")))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of sessions to show")
	return cmd
}
