package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mizutanik/promptpulse/internal/analyzer"
	"github.com/mizutanik/promptpulse/internal/config"
	"github.com/mizutanik/promptpulse/internal/usage"
)

// hookPayload is the UserPromptSubmit event Claude Code pipes to the hook.
type hookPayload struct {
	SessionID string `json:"session_id"`
	Prompt    string `json:"prompt"`
	CWD       string `json:"cwd"`
}

// analyzeOptions controls one hook invocation.
type analyzeOptions struct {
	silent     bool
	trackUsage bool
	dbPath     string
}

// runAnalyze scores the prompt from in and, when usage metrics are enabled,
// persists the score. All failure paths return silently: the caller always
// exits 0, since a visible hook failure would surface on every prompt.
func runAnalyze(in io.Reader, out io.Writer, opts analyzeOptions) {
	data, err := io.ReadAll(in)
	if err != nil {
		return
	}

	var payload hookPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	if payload.Prompt == "" {
		return
	}

	score := analyzer.NewHeuristic().Score(payload.Prompt)

	// The installed command carries --track-usage only while metrics are
	// toggled on; without it the score is computed but never stored.
	if opts.trackUsage {
		if store, err := usage.Open(opts.dbPath); err == nil {
			store.RecordScore(payload.SessionID, score, len(payload.Prompt))
			store.Close()
		}
	}

	if !opts.silent {
		encoded, _ := json.Marshal(score)
		out.Write(append(encoded, '\n'))
	}
}

// newAnalyzePromptCmd is the hook entry point. It must never fail visibly:
// a non-zero exit or stray output would surface inside the host tool on
// every prompt, so every error path degrades to a clean exit 0.
func newAnalyzePromptCmd() *cobra.Command {
	var (
		silent     bool
		stdin      bool
		timeout    int
		trackUsage bool
	)

	cmd := &cobra.Command{
		Use:    "analyze-prompt",
		Short:  "Score the submitted prompt (hook entry point)",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			runAnalyze(os.Stdin, os.Stdout, analyzeOptions{
				silent:     silent,
				trackUsage: trackUsage,
				dbPath:     config.GetUsageDBPath(),
			})
		},
	}

	cmd.Flags().BoolVar(&silent, "silent", false, "Suppress all output")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read the hook payload from stdin")
	cmd.Flags().IntVar(&timeout, "timeout", 30, "Hook timeout in seconds")
	cmd.Flags().BoolVar(&trackUsage, "track-usage", false, "Record usage metrics alongside the score")
	return cmd
}
