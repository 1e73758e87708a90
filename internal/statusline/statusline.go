// Package statusline renders the single line Claude Code displays for this
// tool. Input arrives as a JSON payload on stdin; output is one line on
// stdout. Failures degrade to a neutral line rather than erroring, since a
// broken status line surfaces inside the host tool's UI.
package statusline

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/mizutanik/promptpulse/internal/usage"
)

// Payload is the status line input from Claude Code. Only the fields the
// line renders are modeled.
type Payload struct {
	SessionID string `json:"session_id"`
	Model     struct {
		DisplayName string `json:"display_name"`
	} `json:"model"`
	Workspace struct {
		CurrentDir string `json:"current_dir"`
	} `json:"workspace"`
}

// ParsePayload decodes the stdin payload. An unreadable payload yields an
// empty Payload, not an error.
func ParsePayload(r io.Reader) Payload {
	var p Payload
	data, err := io.ReadAll(r)
	if err != nil {
		return p
	}
	json.Unmarshal(data, &p)
	return p
}

var (
	dimStyle  = lipgloss.NewStyle().Faint(true)
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	fairStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	poorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Render builds the status line. score may be nil when no prompt has been
// scored for this session yet.
func Render(p Payload, score *usage.ScoreRow) string {
	left := "promptpulse"
	if dir := filepath.Base(p.Workspace.CurrentDir); dir != "" && dir != "." {
		left = dir
	}
	if p.Model.DisplayName != "" {
		left += " " + dimStyle.Render("("+p.Model.DisplayName+")")
	}

	if score == nil {
		return left + " " + dimStyle.Render("· no prompt scored yet")
	}

	var style lipgloss.Style
	switch {
	case score.Total >= 65:
		style = goodStyle
	case score.Total >= 40:
		style = fairStyle
	default:
		style = poorStyle
	}

	line := fmt.Sprintf("%s · prompt %s", left, style.Render(fmt.Sprintf("%d/100", score.Total)))
	if score.Total < 65 && score.Suggestion != "" {
		line += " " + dimStyle.Render("· "+score.Suggestion)
	}
	return line
}
