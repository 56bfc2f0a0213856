// Package store persists conversation sessions, messages and chart history in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"VizChat/internal/chart"
	"VizChat/internal/session"
)

// ErrSessionNotFound is returned when loading an unknown session id
var ErrSessionNotFound = errors.New("session not found")

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	start_time DATETIME,
	auto_detect BOOLEAN
);
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT,
	role TEXT,
	content TEXT,
	chart_path TEXT,
	timestamp DATETIME,
	FOREIGN KEY(session_id) REFERENCES sessions(id)
);
CREATE TABLE IF NOT EXISTS chart_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT,
	chart_type TEXT,
	title TEXT,
	source TEXT,
	row_count INTEGER,
	timestamp DATETIME,
	FOREIGN KEY(session_id) REFERENCES sessions(id)
);`

// Store is a SQLite backed session store
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession writes the session, replacing any previously saved messages and history
func (s *Store) SaveSession(sess *session.Session) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO sessions (id, start_time, auto_detect) VALUES (?, ?, ?)",
		sess.ID, sess.StartTime, sess.AutoDetect,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM messages WHERE session_id = ?", sess.ID); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	for _, msg := range sess.Messages {
		_, err = tx.Exec(
			"INSERT INTO messages (session_id, role, content, chart_path, timestamp) VALUES (?, ?, ?, ?, ?)",
			sess.ID, msg.Role, msg.Content, msg.ChartPath, msg.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
	}

	if _, err := tx.Exec("DELETE FROM chart_history WHERE session_id = ?", sess.ID); err != nil {
		return fmt.Errorf("failed to clear chart history: %w", err)
	}
	for _, e := range sess.ChartHistory {
		_, err = tx.Exec(
			"INSERT INTO chart_history (session_id, chart_type, title, source, row_count, timestamp) VALUES (?, ?, ?, ?, ?, ?)",
			sess.ID, string(e.Type), e.Title, e.Source, e.RowCount, e.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to save chart entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadSession reads a session with its messages and chart history
func (s *Store) LoadSession(id string) (*session.Session, error) {
	sess := &session.Session{ID: id}

	err := s.db.QueryRow("SELECT start_time, auto_detect FROM sessions WHERE id = ?", id).
		Scan(&sess.StartTime, &sess.AutoDetect)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	sess.Messages, err = s.loadMessages(id)
	if err != nil {
		return nil, err
	}
	sess.ChartHistory, err = s.loadHistory(id)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) loadMessages(id string) ([]session.Message, error) {
	rows, err := s.db.Query(
		"SELECT role, content, chart_path, timestamp FROM messages WHERE session_id = ? ORDER BY id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	messages := []session.Message{}
	for rows.Next() {
		var msg session.Message
		if err := rows.Scan(&msg.Role, &msg.Content, &msg.ChartPath, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (s *Store) loadHistory(id string) ([]session.ChartEntry, error) {
	rows, err := s.db.Query(
		"SELECT chart_type, title, source, row_count, timestamp FROM chart_history WHERE session_id = ? ORDER BY id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart history: %w", err)
	}
	defer rows.Close()

	history := []session.ChartEntry{}
	for rows.Next() {
		var (
			e  session.ChartEntry
			ct string
		)
		if err := rows.Scan(&ct, &e.Title, &e.Source, &e.RowCount, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chart entry: %w", err)
		}
		e.Type = chart.Parse(ct)
		history = append(history, e)
	}
	return history, rows.Err()
}

// Summary is a one-line description of a stored session
type Summary struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	Messages  int       `json:"messages"`
	Charts    int       `json:"charts"`
}

// ListSessions returns every stored session, newest first
func (s *Store) ListSessions() ([]Summary, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.start_time,
			(SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id),
			(SELECT COUNT(*) FROM chart_history c WHERE c.session_id = s.id)
		FROM sessions s
		ORDER BY s.start_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.StartTime, &sum.Messages, &sum.Charts); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
