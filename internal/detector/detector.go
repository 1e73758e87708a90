// Package detector aggregates authentication, sub-agent completeness, and
// hook/tracking presence into a single coarse setup state. The state is a
// read-time projection: it is recomputed on every call and never stored.
package detector

import (
	"github.com/mizutanik/promptpulse/internal/agents"
	"github.com/mizutanik/promptpulse/internal/features"
	"github.com/mizutanik/promptpulse/internal/tracking"
)

// SetupState labels the overall installation for the top-level menu.
type SetupState string

const (
	StateFirstTime    SetupState = "FIRST_TIME"
	StateLocalOnly    SetupState = "LOCAL_ONLY"
	StateCloudAuto    SetupState = "CLOUD_AUTO"
	StateCloudManual  SetupState = "CLOUD_MANUAL"
	StateCloudOnly    SetupState = "CLOUD_ONLY"
	StatePartialSetup SetupState = "PARTIAL_SETUP"
	StateError        SetupState = "ERROR"
)

// Result is the detection outcome. Err carries the causing message when
// State is ERROR.
type Result struct {
	State SetupState
	Err   string
}

// FeatureDetector reports hook and status line presence.
type FeatureDetector interface {
	Detect() (features.Detection, error)
}

// AgentStatuser reports sub-agent installation completeness.
type AgentStatuser interface {
	Status() (agents.Status, error)
}

// TrackingReader reports the configured tracking mode.
type TrackingReader interface {
	Mode() (tracking.Mode, error)
}

// Aggregator combines the other components' outputs. It holds no state of
// its own.
type Aggregator struct {
	Features      FeatureDetector
	Agents        AgentStatuser
	Tracking      TrackingReader
	Authenticated func() bool
}

// Detect applies the decision table, first match wins.
func (a *Aggregator) Detect() Result {
	detection, err := a.Features.Detect()
	if err != nil {
		return Result{State: StateError, Err: err.Error()}
	}
	status, err := a.Agents.Status()
	if err != nil {
		return Result{State: StateError, Err: err.Error()}
	}
	mode, err := a.Tracking.Mode()
	if err != nil {
		return Result{State: StateError, Err: err.Error()}
	}

	authed := a.Authenticated()
	hookPresent := detection.Hook == features.PresenceOurs || mode != tracking.ModeNone
	agentsPresent := len(status.Installed) > 0
	agentsComplete := status.Complete()
	configPresent := detection.Hook != features.PresenceAbsent ||
		detection.StatusLine != features.PresenceAbsent

	switch {
	case !configPresent && !authed && !agentsPresent:
		return Result{State: StateFirstTime}
	case authed && hookPresent && agentsComplete:
		return Result{State: StateCloudAuto}
	case authed && !hookPresent && agentsComplete:
		return Result{State: StateCloudManual}
	case authed && !agentsComplete:
		return Result{State: StateCloudOnly}
	case !authed && agentsPresent:
		return Result{State: StateLocalOnly}
	default:
		return Result{State: StatePartialSetup}
	}
}
