package auth

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "config.json"))
}

func TestTokenLifecycle(t *testing.T) {
	s := newTestStore(t)

	if s.IsAuthenticated() {
		t.Error("authenticated before any token is stored")
	}

	if err := s.SetToken("pp_live_abc123"); err != nil {
		t.Fatal(err)
	}
	if !s.IsAuthenticated() {
		t.Error("not authenticated after storing a token")
	}
	token, err := s.Token()
	if err != nil {
		t.Fatal(err)
	}
	if token != "pp_live_abc123" {
		t.Errorf("token = %q", token)
	}

	if err := s.ClearToken(); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Error("still authenticated after clearing the token")
	}
}

func TestSetTokenRejectsEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetToken(""); err == nil {
		t.Error("empty token accepted")
	}
}

func TestClearTokenWhenAbsent(t *testing.T) {
	s := newTestStore(t)
	if err := s.ClearToken(); err != nil {
		t.Errorf("clearing an absent token: %v", err)
	}
}
