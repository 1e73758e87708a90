package features

import (
	"fmt"
	"strings"
)

// HookTimeoutSeconds is the timeout registered with the hook entry.
const HookTimeoutSeconds = 30

// usageFlag is the optional trailing flag toggled by SetUsageFlag. It is
// stripped and re-appended by exact suffix match, never by regex.
const usageFlag = " --track-usage"

// BuildHookCommand builds the command string registered under
// UserPromptSubmit. execPath is the resolved path of the running binary, so
// re-running install after the binary moved updates the entry in place.
func BuildHookCommand(execPath string, trackUsage bool) string {
	cmd := fmt.Sprintf("%s analyze-prompt --silent --stdin --timeout %d", execPath, HookTimeoutSeconds)
	if trackUsage {
		cmd += usageFlag
	}
	return cmd
}

// BuildStatusLineCommand builds the command string registered as statusLine.
func BuildStatusLineCommand(execPath string) string {
	return execPath + " " + statusLineMarker
}

// SetUsageFlag returns cmd with the usage-metrics flag present or absent.
// Idempotent: toggling the same direction twice yields the same string.
func SetUsageFlag(cmd string, enabled bool) string {
	cmd = strings.TrimSuffix(cmd, usageFlag)
	if enabled {
		cmd += usageFlag
	}
	return cmd
}

// HasUsageFlag reports whether cmd carries the usage-metrics flag.
func HasUsageFlag(cmd string) bool {
	return strings.HasSuffix(cmd, usageFlag)
}
