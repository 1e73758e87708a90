package detector

import (
	"errors"
	"testing"

	"github.com/mizutanik/promptpulse/internal/agents"
	"github.com/mizutanik/promptpulse/internal/features"
	"github.com/mizutanik/promptpulse/internal/tracking"
)

type fakeFeatures struct {
	detection features.Detection
	err       error
}

func (f fakeFeatures) Detect() (features.Detection, error) { return f.detection, f.err }

type fakeAgents struct {
	status agents.Status
	err    error
}

func (f fakeAgents) Status() (agents.Status, error) { return f.status, f.err }

type fakeTracking struct {
	mode tracking.Mode
	err  error
}

func (f fakeTracking) Mode() (tracking.Mode, error) { return f.mode, f.err }

func completeAgents() agents.Status {
	return agents.Status{DirExists: true, Installed: []string{"a.md", "b.md"}, Total: 2, Percent: 100}
}

func partialAgents() agents.Status {
	return agents.Status{DirExists: true, Installed: []string{"a.md"}, Missing: []string{"b.md"}, Total: 2, Percent: 50}
}

func noAgents() agents.Status {
	return agents.Status{Missing: []string{"a.md", "b.md"}, Total: 2}
}

func TestDetectDecisionTable(t *testing.T) {
	tests := []struct {
		name      string
		detection features.Detection
		agents    agents.Status
		mode      tracking.Mode
		authed    bool
		want      SetupState
	}{
		{
			name:      "nothing installed, not authenticated",
			detection: features.Detection{Hook: features.PresenceAbsent, StatusLine: features.PresenceAbsent},
			agents:    noAgents(),
			mode:      tracking.ModeNone,
			want:      StateFirstTime,
		},
		{
			name:      "authenticated with hook and full agents",
			detection: features.Detection{Hook: features.PresenceOurs, StatusLine: features.PresenceOurs},
			agents:    completeAgents(),
			mode:      tracking.ModeAll,
			authed:    true,
			want:      StateCloudAuto,
		},
		{
			name:      "tracking mode alone counts as hook presence",
			detection: features.Detection{Hook: features.PresenceAbsent, StatusLine: features.PresenceOurs},
			agents:    completeAgents(),
			mode:      tracking.ModeSelected,
			authed:    true,
			want:      StateCloudAuto,
		},
		{
			name:      "authenticated, full agents, no hook",
			detection: features.Detection{Hook: features.PresenceAbsent, StatusLine: features.PresenceOurs},
			agents:    completeAgents(),
			mode:      tracking.ModeNone,
			authed:    true,
			want:      StateCloudManual,
		},
		{
			name:      "authenticated, agents incomplete",
			detection: features.Detection{Hook: features.PresenceOurs, StatusLine: features.PresenceOurs},
			agents:    partialAgents(),
			mode:      tracking.ModeAll,
			authed:    true,
			want:      StateCloudOnly,
		},
		{
			name:      "authenticated, no agents at all",
			detection: features.Detection{Hook: features.PresenceAbsent, StatusLine: features.PresenceAbsent},
			agents:    noAgents(),
			mode:      tracking.ModeNone,
			authed:    true,
			want:      StateCloudOnly,
		},
		{
			name:      "agents only, not authenticated",
			detection: features.Detection{Hook: features.PresenceAbsent, StatusLine: features.PresenceAbsent},
			agents:    partialAgents(),
			mode:      tracking.ModeNone,
			want:      StateLocalOnly,
		},
		{
			name:      "hook without agents, not authenticated",
			detection: features.Detection{Hook: features.PresenceOurs, StatusLine: features.PresenceAbsent},
			agents:    noAgents(),
			mode:      tracking.ModeAll,
			want:      StatePartialSetup,
		},
		{
			name:      "foreign status line alone still counts as config",
			detection: features.Detection{Hook: features.PresenceAbsent, StatusLine: features.PresenceForeign},
			agents:    noAgents(),
			mode:      tracking.ModeNone,
			want:      StatePartialSetup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &Aggregator{
				Features:      fakeFeatures{detection: tt.detection},
				Agents:        fakeAgents{status: tt.agents},
				Tracking:      fakeTracking{mode: tt.mode},
				Authenticated: func() bool { return tt.authed },
			}

			result := agg.Detect()
			if result.State != tt.want {
				t.Errorf("state = %s, want %s", result.State, tt.want)
			}
			if result.Err != "" {
				t.Errorf("unexpected error message %q", result.Err)
			}
		})
	}
}

func TestDetectComponentErrors(t *testing.T) {
	boom := errors.New("settings unreadable")

	tests := []struct {
		name string
		agg  *Aggregator
	}{
		{
			name: "feature detection fails",
			agg: &Aggregator{
				Features:      fakeFeatures{err: boom},
				Agents:        fakeAgents{status: noAgents()},
				Tracking:      fakeTracking{mode: tracking.ModeNone},
				Authenticated: func() bool { return false },
			},
		},
		{
			name: "agent status fails",
			agg: &Aggregator{
				Features:      fakeFeatures{},
				Agents:        fakeAgents{err: boom},
				Tracking:      fakeTracking{mode: tracking.ModeNone},
				Authenticated: func() bool { return false },
			},
		},
		{
			name: "tracking read fails",
			agg: &Aggregator{
				Features:      fakeFeatures{},
				Agents:        fakeAgents{status: noAgents()},
				Tracking:      fakeTracking{err: boom},
				Authenticated: func() bool { return false },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.agg.Detect()
			if result.State != StateError {
				t.Errorf("state = %s, want ERROR", result.State)
			}
			if result.Err != boom.Error() {
				t.Errorf("err = %q, want %q", result.Err, boom.Error())
			}
		})
	}
}
