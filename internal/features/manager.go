package features

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mizutanik/promptpulse/internal/config"
	"github.com/mizutanik/promptpulse/internal/settings"
)

// Manager installs and removes the prompt-analysis hook and the status line
// inside the shared settings document. Every operation is a full
// read-modify-write: the document is re-read at the start of each call so a
// stale in-memory copy is never written back.
type Manager struct {
	settingsPath string
	configPath   string
}

// NewManager creates a Manager against the default settings and config paths.
func NewManager() *Manager {
	return NewManagerAt(config.GetSettingsPath(), config.GetOwnConfigPath())
}

// NewManagerAt creates a Manager against explicit paths.
func NewManagerAt(settingsPath, configPath string) *Manager {
	return &Manager{
		settingsPath: settingsPath,
		configPath:   configPath,
	}
}

// Detect reports the current presence of both features. A missing settings
// file is a valid first-run state, not an error.
func (m *Manager) Detect() (Detection, error) {
	doc, err := settings.Load(m.settingsPath)
	if errors.Is(err, settings.ErrNotFound) {
		return Detection{Hook: PresenceAbsent, StatusLine: PresenceAbsent}, nil
	}
	if err != nil {
		return Detection{}, fmt.Errorf("detect features: %w", err)
	}

	return Detection{
		Hook:       classifyHooks(doc),
		StatusLine: classifyStatusLine(doc),
	}, nil
}

// InstallHook registers the analyze-prompt hook. If an owned entry already
// exists anywhere under UserPromptSubmit its command and timeout are updated
// in place, which covers binary path changes across upgrades. Otherwise a
// new group is appended. Foreign groups and entries are never touched.
func (m *Manager) InstallHook(execPath string, trackUsage bool) error {
	doc, err := settings.LoadOrEmpty(m.settingsPath)
	if err != nil {
		return fmt.Errorf("install hook: %w", err)
	}

	command := BuildHookCommand(execPath, trackUsage)

	// An existing key with an unexpected shape is someone else's content;
	// overwriting it would be destructive, so fail instead.
	rawHooks, exists := doc["hooks"]
	hooks, ok := rawHooks.(map[string]interface{})
	if exists && !ok {
		return fmt.Errorf("install hook: settings key \"hooks\" has unexpected type %T", rawHooks)
	}
	if !ok {
		hooks = make(map[string]interface{})
		doc["hooks"] = hooks
	}
	rawGroups, exists := hooks["UserPromptSubmit"]
	groups, ok := rawGroups.([]interface{})
	if exists && !ok {
		return fmt.Errorf("install hook: settings key \"hooks.UserPromptSubmit\" has unexpected type %T", rawGroups)
	}
	if !ok {
		groups = []interface{}{}
	}

	updated := false
	for _, group := range groups {
		for _, entry := range groupEntries(group) {
			entryMap, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			if cmd, _ := entryMap["command"].(string); IsOurHookCommand(cmd) {
				entryMap["command"] = command
				entryMap["timeout"] = HookTimeoutSeconds
				updated = true
			}
		}
	}

	if !updated {
		groups = append(groups, map[string]interface{}{
			"hooks": []interface{}{
				map[string]interface{}{
					"type":    "command",
					"command": command,
					"timeout": HookTimeoutSeconds,
				},
			},
		})
	}
	hooks["UserPromptSubmit"] = groups

	if err := settings.Save(m.settingsPath, doc); err != nil {
		return fmt.Errorf("install hook: %w", err)
	}

	log.Debug().Str("command", command).Bool("updated", updated).Msg("hook installed")
	return nil
}

// InstallStatusLine registers the status line command. A foreign status line
// is snapshotted to the backup slot before being replaced, unless a backup
// already exists: the first captured original always wins.
func (m *Manager) InstallStatusLine(execPath string) error {
	doc, err := settings.LoadOrEmpty(m.settingsPath)
	if err != nil {
		return fmt.Errorf("install status line: %w", err)
	}

	if raw, exists := doc["statusLine"]; exists {
		if _, ok := raw.(map[string]interface{}); !ok {
			return fmt.Errorf("install status line: settings key \"statusLine\" has unexpected type %T", raw)
		}
	}

	if classifyStatusLine(doc) == PresenceForeign {
		sl := doc["statusLine"].(map[string]interface{})
		foreignCmd, _ := sl["command"].(string)
		if err := m.backupForeignStatusLine(foreignCmd); err != nil {
			return fmt.Errorf("install status line: %w", err)
		}
	}

	doc["statusLine"] = map[string]interface{}{
		"type":    "command",
		"command": BuildStatusLineCommand(execPath),
		"padding": 0,
	}

	if err := settings.Save(m.settingsPath, doc); err != nil {
		return fmt.Errorf("install status line: %w", err)
	}

	log.Debug().Msg("status line installed")
	return nil
}

// UninstallHook removes every owned hook entry. Groups that become empty
// are dropped, the UserPromptSubmit key is dropped when no groups remain,
// and the hooks object is dropped when it becomes empty. Nothing foreign
// is modified.
func (m *Manager) UninstallHook() error {
	doc, err := settings.Load(m.settingsPath)
	if errors.Is(err, settings.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("uninstall hook: %w", err)
	}

	hooks, ok := doc["hooks"].(map[string]interface{})
	if !ok {
		return nil
	}
	groups, ok := hooks["UserPromptSubmit"].([]interface{})
	if !ok {
		return nil
	}

	kept := make([]interface{}, 0, len(groups))
	for _, group := range groups {
		groupMap, ok := group.(map[string]interface{})
		if !ok {
			kept = append(kept, group)
			continue
		}
		entries, ok := groupMap["hooks"].([]interface{})
		if !ok {
			kept = append(kept, group)
			continue
		}

		filtered := make([]interface{}, 0, len(entries))
		for _, entry := range entries {
			if !IsOurHookCommand(entryCommand(entry)) {
				filtered = append(filtered, entry)
			}
		}

		if len(filtered) > 0 {
			groupMap["hooks"] = filtered
			kept = append(kept, groupMap)
		}
	}

	if len(kept) > 0 {
		hooks["UserPromptSubmit"] = kept
	} else {
		delete(hooks, "UserPromptSubmit")
	}
	if len(hooks) == 0 {
		delete(doc, "hooks")
	}

	if err := settings.Save(m.settingsPath, doc); err != nil {
		return fmt.Errorf("uninstall hook: %w", err)
	}

	log.Debug().Msg("hook uninstalled")
	return nil
}

// UninstallStatusLine removes the status line if it is ours. A foreign
// status line is left untouched even when asked. With restoreBackup, a
// stored snapshot is written back in place of the removed command; the
// backup is cleared after a successful restore.
func (m *Manager) UninstallStatusLine(restoreBackup bool) error {
	doc, err := settings.Load(m.settingsPath)
	if errors.Is(err, settings.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("uninstall status line: %w", err)
	}

	if classifyStatusLine(doc) != PresenceOurs {
		return nil
	}

	restored := false
	if restoreBackup {
		backup, berr := m.BackupDetails()
		if berr != nil {
			return fmt.Errorf("uninstall status line: %w", berr)
		}
		if backup != nil {
			doc["statusLine"] = map[string]interface{}{
				"type":    "command",
				"command": backup.OriginalCommand,
				"padding": 0,
			}
			restored = true
		}
	}
	if !restored {
		delete(doc, "statusLine")
	}

	if err := settings.Save(m.settingsPath, doc); err != nil {
		return fmt.Errorf("uninstall status line: %w", err)
	}

	if restored {
		if err := m.clearBackup(); err != nil {
			return fmt.Errorf("uninstall status line: %w", err)
		}
	}

	log.Debug().Bool("restored", restored).Msg("status line uninstalled")
	return nil
}

// SetUsageTracking toggles the usage-metrics flag on the installed hook
// command. The existing command string is patched by suffix match so the
// resolved binary path and any other flags are preserved as-is.
func (m *Manager) SetUsageTracking(enabled bool) error {
	doc, err := settings.Load(m.settingsPath)
	if errors.Is(err, settings.ErrNotFound) {
		return fmt.Errorf("set usage tracking: hook is not installed")
	}
	if err != nil {
		return fmt.Errorf("set usage tracking: %w", err)
	}

	patched := false
	for _, group := range userPromptSubmitGroups(doc) {
		for _, entry := range groupEntries(group) {
			entryMap, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			if cmd, _ := entryMap["command"].(string); IsOurHookCommand(cmd) {
				entryMap["command"] = SetUsageFlag(cmd, enabled)
				patched = true
			}
		}
	}
	if !patched {
		return fmt.Errorf("set usage tracking: hook is not installed")
	}

	if err := settings.Save(m.settingsPath, doc); err != nil {
		return fmt.Errorf("set usage tracking: %w", err)
	}
	return nil
}

// UsageTrackingEnabled reports whether the installed hook carries the
// usage-metrics flag. False when the hook is not installed.
func (m *Manager) UsageTrackingEnabled() (bool, error) {
	doc, err := settings.Load(m.settingsPath)
	if errors.Is(err, settings.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	cmd, ok := ourHookCommand(doc)
	if !ok {
		return false, nil
	}
	return HasUsageFlag(cmd), nil
}

// HasBackup reports whether a foreign status line snapshot is stored.
func (m *Manager) HasBackup() bool {
	backup, err := m.BackupDetails()
	return err == nil && backup != nil
}

// BackupDetails returns the stored snapshot, or nil when none exists.
func (m *Manager) BackupDetails() (*config.StatusLineBackup, error) {
	cfg, err := config.LoadFile(m.configPath)
	if err != nil {
		return nil, err
	}
	return cfg.StatusLineBackup, nil
}

// backupForeignStatusLine stores a snapshot of a foreign command. An
// existing backup is never overwritten.
func (m *Manager) backupForeignStatusLine(command string) error {
	cfg, err := config.LoadFile(m.configPath)
	if err != nil {
		return err
	}
	if cfg.StatusLineBackup != nil {
		return nil
	}

	cfg.StatusLineBackup = &config.StatusLineBackup{
		OriginalCommand: command,
		BackupDate:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := config.SaveFile(m.configPath, cfg); err != nil {
		return err
	}

	log.Info().Str("command", command).Msg("backed up existing status line")
	return nil
}

func (m *Manager) clearBackup() error {
	cfg, err := config.LoadFile(m.configPath)
	if err != nil {
		return err
	}
	if cfg.StatusLineBackup == nil {
		return nil
	}
	cfg.StatusLineBackup = nil
	return config.SaveFile(m.configPath, cfg)
}
