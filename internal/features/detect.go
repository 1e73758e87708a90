package features

// Presence classifies one feature slot in the settings document.
type Presence string

const (
	PresenceAbsent  Presence = "absent"
	PresenceOurs    Presence = "ours"
	PresenceForeign Presence = "foreign"
)

// InstallState is the aggregate over both feature slots.
type InstallState string

const (
	StateNotInstalled       InstallState = "NOT_INSTALLED"
	StatePartiallyInstalled InstallState = "PARTIALLY_INSTALLED"
	StateFullyInstalled     InstallState = "FULLY_INSTALLED"
)

// Detection reports what is currently registered in the settings document.
type Detection struct {
	Hook       Presence
	StatusLine Presence
}

// State reduces the detection to the aggregate install state. A foreign
// entry counts the same as an absent one here; it is only surfaced
// separately so the install flow can ask before replacing it.
func (d Detection) State() InstallState {
	ours := 0
	if d.Hook == PresenceOurs {
		ours++
	}
	if d.StatusLine == PresenceOurs {
		ours++
	}

	switch ours {
	case 2:
		return StateFullyInstalled
	case 1:
		return StatePartiallyInstalled
	default:
		return StateNotInstalled
	}
}

// classifyHooks scans every UserPromptSubmit group and entry. Any owned
// entry wins; otherwise any entry at all means a foreign hook is registered.
func classifyHooks(doc map[string]interface{}) Presence {
	groups := userPromptSubmitGroups(doc)
	if groups == nil {
		return PresenceAbsent
	}

	found := false
	for _, group := range groups {
		for _, entry := range groupEntries(group) {
			found = true
			if IsOurHookCommand(entryCommand(entry)) {
				return PresenceOurs
			}
		}
	}

	if found {
		return PresenceForeign
	}
	return PresenceAbsent
}

// classifyStatusLine classifies the single statusLine object.
func classifyStatusLine(doc map[string]interface{}) Presence {
	sl, ok := doc["statusLine"].(map[string]interface{})
	if !ok {
		return PresenceAbsent
	}

	cmd, _ := sl["command"].(string)
	if cmd == "" {
		return PresenceAbsent
	}
	if IsOurStatusLineCommand(cmd) {
		return PresenceOurs
	}
	return PresenceForeign
}

// ourHookCommand returns the command string of the owned hook entry, if any.
func ourHookCommand(doc map[string]interface{}) (string, bool) {
	for _, group := range userPromptSubmitGroups(doc) {
		for _, entry := range groupEntries(group) {
			if cmd := entryCommand(entry); IsOurHookCommand(cmd) {
				return cmd, true
			}
		}
	}
	return "", false
}

func userPromptSubmitGroups(doc map[string]interface{}) []interface{} {
	hooks, ok := doc["hooks"].(map[string]interface{})
	if !ok {
		return nil
	}
	groups, ok := hooks["UserPromptSubmit"].([]interface{})
	if !ok {
		return nil
	}
	return groups
}

func groupEntries(group interface{}) []interface{} {
	groupMap, ok := group.(map[string]interface{})
	if !ok {
		return nil
	}
	entries, ok := groupMap["hooks"].([]interface{})
	if !ok {
		return nil
	}
	return entries
}

func entryCommand(entry interface{}) string {
	entryMap, ok := entry.(map[string]interface{})
	if !ok {
		return ""
	}
	cmd, _ := entryMap["command"].(string)
	return cmd
}
