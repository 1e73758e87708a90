// Package agents reconciles a fixed catalog of sub-agent files against the
// Claude agents directory. Batch operations are best-effort: a failure on
// one file is recorded and the rest of the batch continues.
package agents

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/mizutanik/promptpulse/internal/config"
)

// Outcome is the per-item result of a batch operation.
type Outcome string

const (
	OutcomeInstalled Outcome = "installed"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeRemoved   Outcome = "removed"
	OutcomeFailed    Outcome = "failed"
)

// ItemResult records what happened to one catalog entry.
type ItemResult struct {
	Name    string
	Outcome Outcome
	Err     error
}

// Status is a point-in-time view of the target directory against the
// catalog. It is recomputed from a directory listing on every call, never
// cached.
type Status struct {
	DirExists bool
	Installed []string
	Missing   []string
	Total     int
	Percent   int
}

// Complete reports whether every catalog entry is installed.
func (s Status) Complete() bool {
	return s.Total > 0 && len(s.Missing) == 0
}

// Installer reconciles the embedded catalog against a target directory.
type Installer struct {
	dir string
}

// NewInstaller creates an Installer against the default agents directory.
func NewInstaller() *Installer {
	return NewInstallerAt(config.GetAgentsDir())
}

// NewInstallerAt creates an Installer against an explicit directory.
func NewInstallerAt(dir string) *Installer {
	return &Installer{dir: dir}
}

// Status lists the target directory and partitions the catalog into
// installed and missing sets. A missing directory means nothing is
// installed; it is not an error.
func (i *Installer) Status() (Status, error) {
	catalog := Catalog()
	status := Status{Total: len(catalog), Missing: catalog}

	entries, err := os.ReadDir(i.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return status, nil
		}
		return Status{}, err
	}
	status.DirExists = true

	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			present[entry.Name()] = true
		}
	}

	status.Installed = nil
	status.Missing = nil
	for _, name := range catalog {
		if present[name] {
			status.Installed = append(status.Installed, name)
		} else {
			status.Missing = append(status.Missing, name)
		}
	}
	sort.Strings(status.Installed)
	sort.Strings(status.Missing)

	if status.Total > 0 {
		status.Percent = len(status.Installed) * 100 / status.Total
	}
	return status, nil
}

// Install writes catalog files into the target directory. Without force,
// already-installed files are skipped and their contents left untouched;
// with force every catalog file is rewritten. onProgress, when non-nil, is
// called after each item.
func (i *Installer) Install(force bool, onProgress func(ItemResult)) ([]ItemResult, error) {
	status, err := i.Status()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(i.dir, 0755); err != nil {
		return nil, err
	}

	installed := make(map[string]bool, len(status.Installed))
	for _, name := range status.Installed {
		installed[name] = true
	}

	var results []ItemResult
	for _, name := range Catalog() {
		result := ItemResult{Name: name}

		if !force && installed[name] {
			result.Outcome = OutcomeSkipped
		} else if err := i.writeAgent(name); err != nil {
			result.Outcome = OutcomeFailed
			result.Err = err
			log.Warn().Err(err).Str("agent", name).Msg("agent install failed")
		} else {
			result.Outcome = OutcomeInstalled
		}

		results = append(results, result)
		if onProgress != nil {
			onProgress(result)
		}
	}
	return results, nil
}

// RemoveSelected deletes the named agent files. An already-absent file is a
// success; other deletion errors are recorded and the batch continues.
func (i *Installer) RemoveSelected(names []string) []ItemResult {
	var results []ItemResult
	for _, name := range names {
		result := ItemResult{Name: name, Outcome: OutcomeRemoved}

		err := os.Remove(filepath.Join(i.dir, name))
		if err != nil && !os.IsNotExist(err) {
			result.Outcome = OutcomeFailed
			result.Err = err
			log.Warn().Err(err).Str("agent", name).Msg("agent removal failed")
		}
		results = append(results, result)
	}
	return results
}

// RemoveAll deletes every catalog file from the target directory.
func (i *Installer) RemoveAll() []ItemResult {
	return i.RemoveSelected(Catalog())
}

func (i *Installer) writeAgent(name string) error {
	content, err := Content(name)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(i.dir, name), content, 0644)
}
