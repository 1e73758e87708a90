package agents

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed templates/*.md
var templatesFS embed.FS

// Catalog returns the names of all installable sub-agent files, sorted.
func Catalog() []string {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Content returns the canonical content for a catalog entry. Embedded
// templates may contain CRLF when built on Windows; line endings are
// normalized to LF before install.
func Content(name string) ([]byte, error) {
	data, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown agent %q: %w", name, err)
	}
	return []byte(strings.ReplaceAll(string(data), "\r\n", "\n")), nil
}

// InCatalog reports whether name is a known catalog entry.
func InCatalog(name string) bool {
	for _, n := range Catalog() {
		if n == name {
			return true
		}
	}
	return false
}
