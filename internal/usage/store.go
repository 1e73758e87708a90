// Package usage persists session summaries and prompt scores in a local
// SQLite database under promptpulse's own config directory.
package usage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mizutanik/promptpulse/internal/analyzer"
	"github.com/mizutanik/promptpulse/internal/session"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SessionRow is one recorded session.
type SessionRow struct {
	SessionID string    `json:"session_id"`
	Project   string    `json:"project"`
	Prompts   int       `json:"prompts"`
	FirstAt   time.Time `json:"first_at"`
	LastAt    time.Time `json:"last_at"`
}

// ScoreRow is one recorded prompt score.
type ScoreRow struct {
	SessionID     string    `json:"session_id"`
	Total         int       `json:"total"`
	Context       int       `json:"context"`
	Clarity       int       `json:"clarity"`
	Specificity   int       `json:"specificity"`
	Actionability int       `json:"actionability"`
	Suggestion    string    `json:"suggestion"`
	PromptLen     int       `json:"prompt_len"`
	CreatedAt     time.Time `json:"created_at"`
}

// Totals aggregates the whole store.
type Totals struct {
	Sessions     int     `json:"sessions"`
	Prompts      int     `json:"prompts"`
	ScoredCount  int     `json:"scored_count"`
	AverageScore float64 `json:"average_score"`
}

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates the database directory if needed, opens SQLite with WAL
// mode, and runs migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("usage: create data dir: %w", err)
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("usage: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("usage: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("usage: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			project    TEXT NOT NULL,
			prompts    INTEGER NOT NULL DEFAULT 0,
			first_at   TEXT NOT NULL,
			last_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_project ON sessions(project);
		CREATE INDEX IF NOT EXISTS idx_sessions_last    ON sessions(last_at DESC);

		CREATE TABLE IF NOT EXISTS scores (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id    TEXT    NOT NULL,
			total         INTEGER NOT NULL,
			context       INTEGER NOT NULL,
			clarity       INTEGER NOT NULL,
			specificity   INTEGER NOT NULL,
			actionability INTEGER NOT NULL,
			suggestion    TEXT    NOT NULL DEFAULT '',
			prompt_len    INTEGER NOT NULL DEFAULT 0,
			created_at    TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_scores_session ON scores(session_id, id DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordSession upserts a session summary. The watcher re-records the same
// session as its file grows, so the row is replaced wholesale.
func (s *Store) RecordSession(sum session.Summary) error {
	if sum.SessionID == "" {
		return fmt.Errorf("usage: session id is empty")
	}

	_, err := s.db.Exec(`
		INSERT INTO sessions (session_id, project, prompts, first_at, last_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			project  = excluded.project,
			prompts  = excluded.prompts,
			first_at = excluded.first_at,
			last_at  = excluded.last_at`,
		sum.SessionID, sum.Project, sum.Prompts,
		sum.First.UTC().Format(time.RFC3339), sum.Last.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("usage: record session: %w", err)
	}
	return nil
}

// RecordScore appends a prompt score for a session.
func (s *Store) RecordScore(sessionID string, score analyzer.Score, promptLen int) error {
	_, err := s.db.Exec(`
		INSERT INTO scores (session_id, total, context, clarity, specificity, actionability, suggestion, prompt_len)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, score.Total, score.Context, score.Clarity,
		score.Specificity, score.Actionability, score.Suggestion, promptLen)
	if err != nil {
		return fmt.Errorf("usage: record score: %w", err)
	}
	return nil
}

// Sessions returns the most recently active sessions.
func (s *Store) Sessions(limit int) ([]SessionRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT session_id, project, prompts, first_at, last_at
		FROM sessions ORDER BY last_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("usage: list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var r SessionRow
		var first, last string
		if err := rows.Scan(&r.SessionID, &r.Project, &r.Prompts, &first, &last); err != nil {
			return nil, err
		}
		r.FirstAt, _ = time.Parse(time.RFC3339, first)
		r.LastAt, _ = time.Parse(time.RFC3339, last)
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastScore returns the most recent score for a session, nil when none.
func (s *Store) LastScore(sessionID string) (*ScoreRow, error) {
	row := s.db.QueryRow(`
		SELECT session_id, total, context, clarity, specificity, actionability, suggestion, prompt_len, created_at
		FROM scores WHERE session_id = ? ORDER BY id DESC LIMIT 1`, sessionID)

	var r ScoreRow
	var created string
	err := row.Scan(&r.SessionID, &r.Total, &r.Context, &r.Clarity,
		&r.Specificity, &r.Actionability, &r.Suggestion, &r.PromptLen, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("usage: last score: %w", err)
	}
	r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created)
	return &r, nil
}

// RecentScores returns the most recent scores across all sessions.
func (s *Store) RecentScores(limit int) ([]ScoreRow, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT session_id, total, context, clarity, specificity, actionability, suggestion, prompt_len, created_at
		FROM scores ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("usage: recent scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreRow
	for rows.Next() {
		var r ScoreRow
		var created string
		if err := rows.Scan(&r.SessionID, &r.Total, &r.Context, &r.Clarity,
			&r.Specificity, &r.Actionability, &r.Suggestion, &r.PromptLen, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// TotalStats aggregates across the whole store.
func (s *Store) TotalStats() (Totals, error) {
	var t Totals
	err := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(prompts), 0) FROM sessions`).
		Scan(&t.Sessions, &t.Prompts)
	if err != nil {
		return Totals{}, fmt.Errorf("usage: totals: %w", err)
	}
	err = s.db.QueryRow(`SELECT COUNT(*), COALESCE(AVG(total), 0) FROM scores`).
		Scan(&t.ScoredCount, &t.AverageScore)
	if err != nil {
		return Totals{}, fmt.Errorf("usage: totals: %w", err)
	}
	return t, nil
}
