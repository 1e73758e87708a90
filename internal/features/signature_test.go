package features

import "testing"

func TestIsOurHookCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		want bool
	}{
		{
			name: "current install",
			cmd:  "/usr/local/bin/promptpulse analyze-prompt --silent --stdin --timeout 30",
			want: true,
		},
		{
			name: "historical package name",
			cmd:  "npx prompt-pulse analyze-prompt --stdin",
			want: true,
		},
		{
			name: "feature marker without identity",
			cmd:  "/home/user/bin/analyze-prompt.sh",
			want: false,
		},
		{
			name: "identity without feature marker",
			cmd:  "/usr/local/bin/promptpulse statusline",
			want: false,
		},
		{
			name: "unrelated hook",
			cmd:  "python3 ~/.claude/hooks/lint.py",
			want: false,
		},
		{
			name: "empty command",
			cmd:  "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOurHookCommand(tt.cmd); got != tt.want {
				t.Errorf("IsOurHookCommand(%q) = %v, want %v", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestIsOurStatusLineCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		want bool
	}{
		{
			name: "current install",
			cmd:  "/usr/local/bin/promptpulse statusline",
			want: true,
		},
		{
			name: "historical package name",
			cmd:  "prompt-pulse statusline",
			want: true,
		},
		{
			name: "user script named statusline lacks identity",
			cmd:  "~/bin/my-statusline.sh",
			want: false,
		},
		{
			name: "other statusline tool",
			cmd:  "ccusage statusline",
			want: false,
		},
		{
			name: "empty command",
			cmd:  "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOurStatusLineCommand(tt.cmd); got != tt.want {
				t.Errorf("IsOurStatusLineCommand(%q) = %v, want %v", tt.cmd, got, tt.want)
			}
		})
	}
}
