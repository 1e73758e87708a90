package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mizutanik/promptpulse/internal/config"
	"github.com/mizutanik/promptpulse/internal/notifier"
	"github.com/mizutanik/promptpulse/internal/session"
	"github.com/mizutanik/promptpulse/internal/tracking"
	"github.com/mizutanik/promptpulse/internal/usage"
	"github.com/mizutanik/promptpulse/internal/watcher"
)

// recordInterval limits how often one session is re-summarized; the host
// tool writes the JSONL file on every token.
const recordInterval = 5 * time.Second

// lowScoreThreshold matches the status line's fair/poor boundary.
const lowScoreThreshold = 40

// isNewLowScore reports whether score warrants a low-quality alert, given
// the creation time of the last score already alerted for the session.
// Each poor score is alerted at most once.
func isNewLowScore(score *usage.ScoreRow, lastAlerted time.Time) bool {
	return score != nil && score.Total < lowScoreThreshold && score.CreatedAt.After(lastAlerted)
}

func newWatchCmd() *cobra.Command {
	var notify bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Record usage sessions as Claude Code writes them",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectsDir := config.GetProjectsDir()
			if _, err := os.Stat(projectsDir); os.IsNotExist(err) {
				return fmt.Errorf("projects directory not found: %s\nMake sure Claude Code has been used at least once", projectsDir)
			}

			store, err := usage.Open(config.GetUsageDBPath())
			if err != nil {
				return err
			}
			defer store.Close()

			w, err := watcher.New(projectsDir)
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}
			if err := w.Start(); err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}
			defer w.Stop()

			reader := tracking.NewReader()
			notif := notifier.New(notify)
			lastRecorded := make(map[string]time.Time)
			alerted := make(map[string]time.Time)

			log.Info().Str("dir", projectsDir).Msg("watching for session activity")
			for {
				select {
				case event := <-w.Events():
					if !reader.Tracks(event.Project) {
						continue
					}
					if time.Since(lastRecorded[event.SessionID]) < recordInterval {
						continue
					}

					sum, err := session.ReadSummary(event.Path)
					if err != nil {
						log.Warn().Err(err).Str("path", event.Path).Msg("summary failed")
						continue
					}
					if err := store.RecordSession(sum); err != nil {
						log.Warn().Err(err).Msg("record failed")
						continue
					}

					first := lastRecorded[event.SessionID].IsZero()
					lastRecorded[event.SessionID] = time.Now()
					log.Debug().Str("project", sum.Project).Int("prompts", sum.Prompts).Msg("session recorded")
					if first {
						notif.NotifySessionRecorded(sum.Project, sum.Prompts)
					}

					if score, _ := store.LastScore(event.SessionID); isNewLowScore(score, alerted[event.SessionID]) {
						alerted[event.SessionID] = score.CreatedAt
						notif.NotifyLowScore(score.Total, score.Suggestion)
					}

				case err := <-w.Errors():
					log.Warn().Err(err).Msg("watch error")
				}
			}
		},
	}

	cmd.Flags().BoolVar(&notify, "notify", false, "Send a desktop notification when a new session is recorded")
	return cmd
}
