package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/mizutanik/promptpulse/internal/analyzer"
	"github.com/mizutanik/promptpulse/internal/session"
	"github.com/mizutanik/promptpulse/internal/usage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := usage.Open(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	sum := session.Summary{SessionID: "s1", Project: "api", Prompts: 4, First: base, Last: base.Add(time.Hour)}
	if err := store.RecordSession(sum); err != nil {
		t.Fatal(err)
	}
	if err := store.RecordScore("s1", analyzer.Score{Total: 72, Suggestion: "ok"}, 40); err != nil {
		t.Fatal(err)
	}

	return New(0, store)
}

func TestHandleUsage(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp UsageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Totals.Sessions != 1 || resp.Totals.Prompts != 4 {
		t.Errorf("totals = %+v", resp.Totals)
	}
	if len(resp.Sessions) != 1 || resp.Sessions[0].SessionID != "s1" {
		t.Errorf("sessions = %+v", resp.Sessions)
	}
}

func TestHandleScores(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scores?limit=10", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ScoresResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Scores) != 1 || resp.Scores[0].Total != 72 {
		t.Errorf("scores = %+v", resp.Scores)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
