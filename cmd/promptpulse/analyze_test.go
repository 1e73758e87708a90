package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mizutanik/promptpulse/internal/usage"
)

const analyzePayload = `{"session_id":"s1","prompt":"Fix the nil deref in internal/settings/settings.go","cwd":"/home/u/dev/api"}`

func TestRunAnalyzeRecordsOnlyWhenTracking(t *testing.T) {
	tests := []struct {
		name       string
		trackUsage bool
		wantStored bool
	}{
		{name: "tracking off leaves store empty", trackUsage: false, wantStored: false},
		{name: "tracking on persists the score", trackUsage: true, wantStored: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), "usage.db")

			runAnalyze(strings.NewReader(analyzePayload), &bytes.Buffer{}, analyzeOptions{
				silent:     true,
				trackUsage: tt.trackUsage,
				dbPath:     dbPath,
			})

			store, err := usage.Open(dbPath)
			if err != nil {
				t.Fatal(err)
			}
			defer store.Close()

			score, err := store.LastScore("s1")
			if err != nil {
				t.Fatal(err)
			}
			if stored := score != nil; stored != tt.wantStored {
				t.Errorf("score stored = %v, want %v", stored, tt.wantStored)
			}
		})
	}
}

func TestRunAnalyzeOutput(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "usage.db")

	var out bytes.Buffer
	runAnalyze(strings.NewReader(analyzePayload), &out, analyzeOptions{dbPath: dbPath})
	if !strings.Contains(out.String(), `"total"`) {
		t.Errorf("non-silent run produced no score output: %q", out.String())
	}

	out.Reset()
	runAnalyze(strings.NewReader(analyzePayload), &out, analyzeOptions{silent: true, dbPath: dbPath})
	if out.Len() != 0 {
		t.Errorf("silent run wrote output: %q", out.String())
	}
}

func TestRunAnalyzeDegradedInputs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "usage.db")

	for _, input := range []string{"", "not json", `{"session_id":"s1","prompt":""}`} {
		var out bytes.Buffer
		runAnalyze(strings.NewReader(input), &out, analyzeOptions{trackUsage: true, dbPath: dbPath})
		if out.Len() != 0 {
			t.Errorf("input %q produced output: %q", input, out.String())
		}
	}
}
