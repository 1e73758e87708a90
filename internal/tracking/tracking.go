// Package tracking reads the project tracking mode from the shared Claude
// settings document, under a key namespaced to this tool. The mode decides
// which projects the watch command records.
package tracking

import (
	"github.com/mizutanik/promptpulse/internal/config"
	"github.com/mizutanik/promptpulse/internal/settings"
)

// settingsKey is this tool's namespace inside the shared document. Foreign
// tools treat it like any other key they do not own.
const settingsKey = "promptpulse"

// Mode says which projects usage tracking covers.
type Mode string

const (
	ModeAll      Mode = "all"
	ModeSelected Mode = "selected"
	ModeNone     Mode = "none"
)

// Reader resolves the tracking configuration.
type Reader struct {
	settingsPath string
}

// NewReader creates a Reader against the default settings path.
func NewReader() *Reader {
	return NewReaderAt(config.GetSettingsPath())
}

// NewReaderAt creates a Reader against an explicit settings path.
func NewReaderAt(settingsPath string) *Reader {
	return &Reader{settingsPath: settingsPath}
}

// Mode returns the configured tracking mode. A missing document or absent
// key defaults to none; unknown values also default to none. A malformed
// document is an error, never a default.
func (r *Reader) Mode() (Mode, error) {
	doc, err := settings.LoadOrEmpty(r.settingsPath)
	if err != nil {
		return ModeNone, err
	}

	switch mode := readMode(doc); mode {
	case ModeAll, ModeSelected:
		return mode, nil
	default:
		return ModeNone, nil
	}
}

// SetMode stores the tracking mode and, for selected mode, the project
// list, inside the tool's namespace key. Setting none removes the tracking
// entries and drops the namespace key when nothing else is left in it.
func (r *Reader) SetMode(mode Mode, projects []string) error {
	doc, err := settings.LoadOrEmpty(r.settingsPath)
	if err != nil {
		return err
	}

	ns, ok := doc[settingsKey].(map[string]interface{})
	if !ok {
		ns = make(map[string]interface{})
	}

	if mode == ModeNone {
		delete(ns, "trackingMode")
		delete(ns, "trackedProjects")
	} else {
		ns["trackingMode"] = string(mode)
		if mode == ModeSelected {
			values := make([]interface{}, len(projects))
			for i, p := range projects {
				values[i] = p
			}
			ns["trackedProjects"] = values
		} else {
			delete(ns, "trackedProjects")
		}
	}

	if len(ns) == 0 {
		delete(doc, settingsKey)
	} else {
		doc[settingsKey] = ns
	}
	return settings.Save(r.settingsPath, doc)
}

// Tracks reports whether the given project is covered by the current mode.
func (r *Reader) Tracks(project string) bool {
	doc, err := settings.LoadOrEmpty(r.settingsPath)
	if err != nil {
		return false
	}

	switch readMode(doc) {
	case ModeAll:
		return true
	case ModeSelected:
		for _, p := range readProjects(doc) {
			if p == project {
				return true
			}
		}
	}
	return false
}

func namespace(doc map[string]interface{}) map[string]interface{} {
	ns, _ := doc[settingsKey].(map[string]interface{})
	return ns
}

func readMode(doc map[string]interface{}) Mode {
	mode, _ := namespace(doc)["trackingMode"].(string)
	return Mode(mode)
}

func readProjects(doc map[string]interface{}) []string {
	values, _ := namespace(doc)["trackedProjects"].([]interface{})
	var out []string
	for _, v := range values {
		if p, ok := v.(string); ok {
			out = append(out, p)
		}
	}
	return out
}
