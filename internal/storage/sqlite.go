// Package storage provides SQLite-based persistence for save slots and the
// conversation journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
// It is safe for concurrent use by multiple sessions.
type Store struct {
	db *sql.DB
}

// Save is one save slot: the exported progress of a story for one player.
type Save struct {
	ID        string // UUID
	GameID    string
	Slot      string // Player-facing slot name, unique per game
	Data      []byte
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JournalEntry records a notable event of a play session.
type JournalEntry struct {
	ID        int64
	GameID    string
	Slot      string
	Event     string
	Character string
	Scene     string
	Detail    string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			slot TEXT NOT NULL,
			data BLOB NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE (game_id, slot)
		);
		CREATE INDEX IF NOT EXISTS idx_saves_updated ON saves(updated_at DESC);

		CREATE TABLE IF NOT EXISTS journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			slot TEXT NOT NULL DEFAULT '',
			event TEXT NOT NULL,
			character TEXT NOT NULL DEFAULT '',
			scene TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_journal_game_id ON journal(game_id, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProgress writes progress into the slot, creating it if needed.
// Returns the slot's ID, which stays stable across overwrites.
func (s *Store) SaveProgress(gameID, slot string, data []byte, score int) (string, error) {
	if gameID == "" || slot == "" {
		return "", errors.New("storage: game id and slot are required")
	}
	now := time.Now().UTC().Format(timeLayout)

	var id string
	err := s.db.QueryRow(
		`INSERT INTO saves (id, game_id, slot, data, score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (game_id, slot) DO UPDATE SET
		   data = excluded.data,
		   score = excluded.score,
		   updated_at = excluded.updated_at
		 RETURNING id`,
		uuid.NewString(), gameID, slot, data, score, now, now,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return id, nil
}

// LoadProgress returns the save in the given slot, or nil if there is none.
func (s *Store) LoadProgress(gameID, slot string) (*Save, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, slot, data, score, created_at, updated_at
		 FROM saves
		 WHERE game_id = ? AND slot = ?`,
		gameID, slot,
	)
	return scanSave(row)
}

// SaveByID returns the save with the given ID, or nil if there is none.
func (s *Store) SaveByID(id string) (*Save, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, slot, data, score, created_at, updated_at
		 FROM saves
		 WHERE id = ?`,
		id,
	)
	return scanSave(row)
}

func scanSave(row *sql.Row) (*Save, error) {
	var sv Save
	var createdAt, updatedAt any
	err := row.Scan(&sv.ID, &sv.GameID, &sv.Slot, &sv.Data, &sv.Score, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save: %w", err)
	}
	sv.CreatedAt = parseTime(createdAt)
	sv.UpdatedAt = parseTime(updatedAt)
	return &sv, nil
}

// ListSaves returns saves for a game, most recently updated first.
// An empty gameID lists every game. Data is not loaded.
func (s *Store) ListSaves(gameID string) ([]Save, error) {
	query := `SELECT id, game_id, slot, score, created_at, updated_at FROM saves`
	var args []any
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY updated_at DESC, rowid DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []Save
	for rows.Next() {
		var sv Save
		var createdAt, updatedAt any
		if err := rows.Scan(&sv.ID, &sv.GameID, &sv.Slot, &sv.Score, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sv.CreatedAt = parseTime(createdAt)
		sv.UpdatedAt = parseTime(updatedAt)
		saves = append(saves, sv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return saves, nil
}

// DeleteSave removes a save by ID. Deleting a missing save is not an error.
func (s *Store) DeleteSave(id string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}

// RecordEvent appends an entry to the journal.
// Returns the ID of the inserted record.
func (s *Store) RecordEvent(e JournalEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO journal (game_id, slot, event, character, scene, detail)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.GameID, e.Slot, e.Event, e.Character, e.Scene, e.Detail,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Journal returns the latest journal entries for a game, newest first.
func (s *Store) Journal(gameID string, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, slot, event, character, scene, detail, created_at
		 FROM journal
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Slot, &e.Event, &e.Character, &e.Scene, &e.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearJournal deletes all journal entries for a game.
func (s *Store) ClearJournal(gameID string) error {
	_, err := s.db.Exec("DELETE FROM journal WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear journal: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
