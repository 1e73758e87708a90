package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StatusLineBackup is a snapshot of a foreign status line command that was
// replaced during install. At most one backup exists at a time.
type StatusLineBackup struct {
	OriginalCommand string `json:"originalCommand"`
	BackupDate      string `json:"backupDate"`
}

// File is promptpulse's own config.json. It holds only what must stay
// private to this tool: the access token and the status line snapshot.
// Tracking configuration lives in the shared settings document instead,
// under this tool's namespace key.
type File struct {
	Token            string            `json:"token,omitempty"`
	StatusLineBackup *StatusLineBackup `json:"statusLineBackup,omitempty"`
}

// LoadFile reads promptpulse's config file. A missing file yields an empty
// config, not an error.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &f, nil
}

// SaveFile writes promptpulse's config file, creating the directory if needed.
func SaveFile(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0600)
}
