package config

import (
	"os"
	"path/filepath"
)

// GetClaudeDir returns the Claude Code configuration directory,
// checking CLAUDE_CONFIG_DIR first.
func GetClaudeDir() string {
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return dir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".claude")
}

// GetSettingsPath returns the path to the global settings.json
func GetSettingsPath() string {
	return filepath.Join(GetClaudeDir(), "settings.json")
}

// GetAgentsDir returns the directory where sub-agent files are installed
func GetAgentsDir() string {
	return filepath.Join(GetClaudeDir(), "agents")
}

// GetProjectsDir returns the Claude session logs directory, checking env var first
func GetProjectsDir() string {
	if dir := os.Getenv("CLAUDE_PROJECTS_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(GetClaudeDir(), "projects")
}

// GetOwnDir returns promptpulse's own configuration directory,
// checking PROMPTPULSE_CONFIG_DIR first.
func GetOwnDir() string {
	if dir := os.Getenv("PROMPTPULSE_CONFIG_DIR"); dir != "" {
		return dir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".promptpulse")
}

// GetOwnConfigPath returns the path to promptpulse's config.json
func GetOwnConfigPath() string {
	return filepath.Join(GetOwnDir(), "config.json")
}

// GetUsageDBPath returns the path to the local usage database
func GetUsageDBPath() string {
	return filepath.Join(GetOwnDir(), "usage.db")
}
