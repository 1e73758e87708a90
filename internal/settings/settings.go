// Package settings reads and writes the shared Claude Code settings.json.
//
// The document is owned by the host tool and may contain arbitrary keys
// placed by the user or other tools. Everything outside the keys promptpulse
// manages must survive a read-modify-write cycle untouched, so the document
// is handled as a generic map rather than a typed struct.
//
// There is no lock around the read-modify-write cycle. If two invocations
// race, the later write wins and can discard the earlier patch. Callers
// mitigate this by reading immediately before writing within one operation.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound reports that the settings file does not exist yet. Callers
// treat this as a valid empty state on first run.
var ErrNotFound = errors.New("settings file not found")

// ParseError reports malformed JSON in the settings file. It is never
// silently defaulted: writing over a document we could not parse would
// destroy user content.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid settings file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the settings document. A missing file returns (nil, ErrNotFound).
func Load(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return doc, nil
}

// LoadOrEmpty reads the settings document, returning an empty map when the
// file does not exist. Parse and IO errors still propagate.
func LoadOrEmpty(path string) (map[string]interface{}, error) {
	doc, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return make(map[string]interface{}), nil
	}
	return doc, err
}

// Save replaces the settings file contents in one operation, via a temp file
// and rename so a crash mid-write cannot leave a truncated document.
func Save(path string, doc map[string]interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
