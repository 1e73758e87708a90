// Package session reads Claude Code session JSONL files. Only the entry
// shapes needed for usage tracking are modeled; unknown entry types are
// skipped rather than rejected, since the host tool adds new types over
// time.
package session

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EntryType represents the type of a JSONL entry.
type EntryType string

const (
	EntryTypeUser      EntryType = "user"
	EntryTypeAssistant EntryType = "assistant"
	EntryTypeSummary   EntryType = "summary"
)

// Entry is a parsed JSONL line.
type Entry struct {
	Type      EntryType `json:"type"`
	Message   *Message  `json:"message,omitempty"`
	UUID      string    `json:"uuid"`
	Timestamp string    `json:"timestamp"`
}

// Message holds the entry's message payload. Content is either a plain
// string or an array of content blocks depending on the entry.
type Message struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// contentBlock is one element of an array-shaped content payload.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Summary describes one session file for usage recording.
type Summary struct {
	SessionID string
	Project   string
	Prompts   int
	First     time.Time
	Last      time.Time
}

// Duration is the span between the first and last entry.
func (s Summary) Duration() time.Duration {
	if s.First.IsZero() || s.Last.IsZero() {
		return 0
	}
	return s.Last.Sub(s.First)
}

// ParseEntry parses a single JSONL line. Blank lines yield (nil, nil).
func ParseEntry(line string) (*Entry, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	var entry Entry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// PromptText extracts the user prompt text from an entry. Returns "" for
// non-user entries and for tool_result user entries, which carry no prompt.
func PromptText(entry *Entry) string {
	if entry == nil || entry.Type != EntryTypeUser || entry.Message == nil {
		return ""
	}

	// String-shaped content is the prompt itself.
	var text string
	if err := json.Unmarshal(entry.Message.Content, &text); err == nil {
		return text
	}

	// Array-shaped content: concatenate text blocks only.
	var blocks []contentBlock
	if err := json.Unmarshal(entry.Message.Content, &blocks); err != nil {
		return ""
	}
	var parts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ReadSummary scans a session file and returns its usage summary.
func ReadSummary(path string) (Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer file.Close()

	sum := Summary{
		SessionID: SessionIDFromPath(path),
		Project:   ProjectFromPath(path),
	}

	scanner := bufio.NewScanner(file)
	// Large buffer: single entries can exceed the default line limit.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		entry, err := ParseEntry(scanner.Text())
		if err != nil || entry == nil {
			continue
		}

		if ts, terr := time.Parse(time.RFC3339, entry.Timestamp); terr == nil {
			if sum.First.IsZero() || ts.Before(sum.First) {
				sum.First = ts
			}
			if ts.After(sum.Last) {
				sum.Last = ts
			}
		}
		if PromptText(entry) != "" {
			sum.Prompts++
		}
	}
	if err := scanner.Err(); err != nil {
		return Summary{}, err
	}

	return sum, nil
}

// SessionIDFromPath extracts the session ID from a JSONL filename.
func SessionIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}

// ProjectFromPath extracts a project name from the encoded parent directory.
// Claude Code encodes the project path by replacing "/" with "-"; the name
// after the last dash is a readable fallback when the original path no
// longer exists.
func ProjectFromPath(path string) string {
	encoded := filepath.Base(filepath.Dir(path))
	if encoded == "" || encoded == "." {
		return "unknown"
	}
	if idx := strings.LastIndex(encoded, "-"); idx != -1 && idx+1 < len(encoded) {
		return encoded[idx+1:]
	}
	return encoded
}
