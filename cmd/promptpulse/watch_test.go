package main

import (
	"testing"
	"time"

	"github.com/mizutanik/promptpulse/internal/usage"
)

func TestIsNewLowScore(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		score       *usage.ScoreRow
		lastAlerted time.Time
		want        bool
	}{
		{name: "no score yet", score: nil, want: false},
		{
			name:  "fresh poor score alerts",
			score: &usage.ScoreRow{Total: 25, CreatedAt: now},
			want:  true,
		},
		{
			name:  "fair score stays quiet",
			score: &usage.ScoreRow{Total: 40, CreatedAt: now},
			want:  false,
		},
		{
			name:        "already alerted score stays quiet",
			score:       &usage.ScoreRow{Total: 25, CreatedAt: now},
			lastAlerted: now,
			want:        false,
		},
		{
			name:        "newer poor score alerts again",
			score:       &usage.ScoreRow{Total: 30, CreatedAt: now.Add(time.Minute)},
			lastAlerted: now,
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNewLowScore(tt.score, tt.lastAlerted); got != tt.want {
				t.Errorf("isNewLowScore = %v, want %v", got, tt.want)
			}
		})
	}
}
