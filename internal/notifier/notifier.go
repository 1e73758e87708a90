package notifier

import (
	"fmt"
	"runtime"

	"github.com/gen2brain/beeep"
)

// Notifier handles desktop notifications for watch events.
type Notifier struct {
	enabled bool
}

// New creates a Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// Notify sends a desktop notification.
func (n *Notifier) Notify(title, message string) error {
	if !n.enabled {
		return nil
	}
	return beeep.Notify(title, message, "")
}

// notifyWithSound includes sound on platforms that support it.
func (n *Notifier) notifyWithSound(title, message string) error {
	if !n.enabled {
		return nil
	}
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return beeep.Alert(title, message, "")
	}
	return beeep.Notify(title, message, "")
}

// NotifySessionRecorded announces a newly recorded session.
func (n *Notifier) NotifySessionRecorded(project string, prompts int) error {
	return n.Notify("promptpulse", fmt.Sprintf("%s: session recorded (%d prompts)", project, prompts))
}

// NotifyLowScore flags a prompt that scored poorly.
func (n *Notifier) NotifyLowScore(total int, suggestion string) error {
	return n.notifyWithSound("promptpulse", fmt.Sprintf("prompt scored %d/100: %s", total, suggestion))
}
