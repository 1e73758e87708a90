package settings

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	_, err := Load(path)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing file err = %v, want ErrNotFound", err)
	}

	doc, err := LoadOrEmpty(path)
	if err != nil {
		t.Fatalf("LoadOrEmpty missing file: %v", err)
	}
	if len(doc) != 0 {
		t.Errorf("LoadOrEmpty missing file = %v, want empty map", doc)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Load malformed err = %v, want ParseError", err)
	}
	if parseErr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, path)
	}

	// LoadOrEmpty must not mask malformed content as an empty document.
	if _, err := LoadOrEmpty(path); !errors.As(err, &parseErr) {
		t.Errorf("LoadOrEmpty malformed err = %v, want ParseError", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.json")
	doc := map[string]interface{}{
		"env":   map[string]interface{}{"FOO": "bar"},
		"hooks": map[string]interface{}{"UserPromptSubmit": []interface{}{}},
	}

	if err := Save(path, doc); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(doc, loaded) {
		t.Errorf("round trip mismatch:\nsaved:  %v\nloaded: %v", doc, loaded)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries after save, want 1", len(entries))
	}
}
