package features

import "strings"

// Feature-specific markers. A command is recognized as ours only when it
// carries both the feature marker and one of the tool identity spellings,
// so a user's own "statusline" script is never misclassified.
const (
	hookMarker       = "analyze-prompt"
	statusLineMarker = "statusline"
)

// identityMarkers are the accepted package name spellings. "prompt-pulse"
// is the historical name; commands installed by old versions must still be
// recognized so upgrades can update them in place.
var identityMarkers = []string{"promptpulse", "prompt-pulse"}

func hasIdentity(cmd string) bool {
	for _, marker := range identityMarkers {
		if strings.Contains(cmd, marker) {
			return true
		}
	}
	return false
}

// IsOurHookCommand reports whether a hook command string was installed by
// this tool. An empty command is never ours.
func IsOurHookCommand(cmd string) bool {
	return cmd != "" && strings.Contains(cmd, hookMarker) && hasIdentity(cmd)
}

// IsOurStatusLineCommand reports whether a status line command string was
// installed by this tool.
func IsOurStatusLineCommand(cmd string) bool {
	return cmd != "" && strings.Contains(cmd, statusLineMarker) && hasIdentity(cmd)
}
