package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantNil  bool
		wantErr  bool
		wantType EntryType
	}{
		{name: "blank line", line: "   ", wantNil: true},
		{name: "user entry", line: `{"type":"user","uuid":"u1","message":{"role":"user","content":"hello"}}`, wantType: EntryTypeUser},
		{name: "assistant entry", line: `{"type":"assistant","uuid":"a1"}`, wantType: EntryTypeAssistant},
		{name: "unknown type kept", line: `{"type":"file-history-snapshot"}`, wantType: "file-history-snapshot"},
		{name: "malformed", line: `{"type":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ParseEntry(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tt.wantNil {
				if entry != nil {
					t.Fatalf("entry = %+v, want nil", entry)
				}
				return
			}
			if entry.Type != tt.wantType {
				t.Errorf("type = %s, want %s", entry.Type, tt.wantType)
			}
		})
	}
}

func TestPromptText(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "string content",
			line: `{"type":"user","message":{"role":"user","content":"fix the bug"}}`,
			want: "fix the bug",
		},
		{
			name: "array content with text blocks",
			line: `{"type":"user","message":{"role":"user","content":[{"type":"text","text":"first"},{"type":"text","text":"second"}]}}`,
			want: "first\nsecond",
		},
		{
			name: "tool result carries no prompt",
			line: `{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1"}]}}`,
			want: "",
		},
		{
			name: "assistant entry ignored",
			line: `{"type":"assistant","message":{"role":"assistant","content":"sure"}}`,
			want: "",
		},
		{
			name: "no message",
			line: `{"type":"user"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ParseEntry(tt.line)
			if err != nil {
				t.Fatal(err)
			}
			if got := PromptText(entry); got != tt.want {
				t.Errorf("PromptText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadSummary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "-home-alice-dev-myproject")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "abc-123.jsonl")

	lines := `{"type":"user","timestamp":"2026-08-30T10:00:00Z","message":{"role":"user","content":"add a flag"}}
{"type":"assistant","timestamp":"2026-08-30T10:00:05Z","message":{"role":"assistant","content":"done"}}
{"type":"user","timestamp":"2026-08-30T10:02:00Z","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1"}]}}
{"type":"user","timestamp":"2026-08-30T10:05:00Z","message":{"role":"user","content":"now test it"}}
not json at all
`
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}

	sum, err := ReadSummary(path)
	if err != nil {
		t.Fatal(err)
	}
	if sum.SessionID != "abc-123" {
		t.Errorf("SessionID = %q", sum.SessionID)
	}
	if sum.Project != "myproject" {
		t.Errorf("Project = %q", sum.Project)
	}
	if sum.Prompts != 2 {
		t.Errorf("Prompts = %d, want 2 (tool results do not count)", sum.Prompts)
	}
	if want := 5 * time.Minute; sum.Duration() != want {
		t.Errorf("Duration = %s, want %s", sum.Duration(), want)
	}
}

func TestProjectFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/u/.claude/projects/-home-u-dev-api/s1.jsonl", "api"},
		{"/home/u/.claude/projects/plain/s1.jsonl", "plain"},
		{"s1.jsonl", "unknown"},
	}

	for _, tt := range tests {
		if got := ProjectFromPath(tt.path); got != tt.want {
			t.Errorf("ProjectFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
