package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizutanik/promptpulse/internal/config"
	"github.com/mizutanik/promptpulse/internal/statusline"
	"github.com/mizutanik/promptpulse/internal/usage"
)

// newStatusLineCmd renders the status line from the host payload on stdin.
// Like the hook, it always exits 0 and always prints a line.
func newStatusLineCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "statusline",
		Short:  "Render the Claude Code status line",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			payload := statusline.ParsePayload(os.Stdin)

			var score *usage.ScoreRow
			if store, err := usage.Open(config.GetUsageDBPath()); err == nil {
				score, _ = store.LastScore(payload.SessionID)
				store.Close()
			}

			fmt.Println(statusline.Render(payload, score))
		},
	}
}
