package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"textcard/internal/model"
)

// SQLiteStore implements Backend using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a SQLiteStore with the given database path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStore) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			summary TEXT NOT NULL,
			content TEXT NOT NULL,
			keywords TEXT NOT NULL DEFAULT '[]',
			template TEXT NOT NULL DEFAULT 'default',
			style TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_cards_template ON cards(template);
		CREATE INDEX IF NOT EXISTS idx_cards_created_at ON cards(created_at);

		CREATE TABLE IF NOT EXISTS recent (
			card_id TEXT PRIMARY KEY NOT NULL,
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data BLOB
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadCards reads the card collection in insertion order. Dates are stored
// as RFC 3339 text with sub-second precision preserved.
func (s *SQLiteStore) LoadCards() ([]model.Card, error) {
	rows, err := s.db.Query(`
		SELECT id, title, summary, content, keywords, template, style, created_at, updated_at
		FROM cards
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []model.Card{}
	for rows.Next() {
		var c model.Card
		var keywordsJSON, styleJSON, createdAt, updatedAt string

		if err := rows.Scan(
			&c.ID, &c.Title, &c.Summary, &c.Content,
			&keywordsJSON, &c.Template, &styleJSON, &createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(keywordsJSON), &c.Keywords); err != nil {
			c.Keywords = []string{}
		}
		if err := json.Unmarshal([]byte(styleJSON), &c.Style); err != nil {
			c.Style = model.DefaultStyle()
		}

		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		c.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// SaveCards writes the whole card collection in a single transaction.
func (s *SQLiteStore) SaveCards(cards []model.Card) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cards"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO cards (id, title, summary, content, keywords, template, style, created_at, updated_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range cards {
		keywordsJSON, _ := json.Marshal(c.Keywords)
		if c.Keywords == nil {
			keywordsJSON = []byte("[]")
		}
		styleJSON, err := json.Marshal(c.Style)
		if err != nil {
			return err
		}

		if _, err := stmt.Exec(
			c.ID, c.Title, c.Summary, c.Content,
			string(keywordsJSON), c.Template, string(styleJSON),
			c.CreatedAt.Format(time.RFC3339Nano), c.UpdatedAt.Format(time.RFC3339Nano),
			i,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadRecent reads the recent-id list in recency order.
func (s *SQLiteStore) LoadRecent() ([]string, error) {
	rows, err := s.db.Query("SELECT card_id FROM recent ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// SaveRecent writes the recent-id list.
func (s *SQLiteStore) SaveRecent(ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM recent"); err != nil {
		return err
	}

	for i, id := range ids {
		if _, err := tx.Exec("INSERT INTO recent (card_id, position) VALUES (?, ?)", id, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSettings reads the opaque settings blob; nil when never written.
func (s *SQLiteStore) LoadSettings() ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM settings WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return data, err
}

// SaveSettings writes the opaque settings blob.
func (s *SQLiteStore) SaveSettings(data []byte) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO settings (id, data) VALUES (1, ?)", data)
	return err
}

// Sizes approximates stored byte sizes from the serialized column data.
func (s *SQLiteStore) Sizes() (Sizes, error) {
	var sizes Sizes

	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(LENGTH(title) + LENGTH(summary) + LENGTH(content) + LENGTH(keywords) + LENGTH(style)), 0)
		FROM cards
	`).Scan(&sizes.Cards)
	if err != nil {
		return Sizes{}, err
	}

	if err := s.db.QueryRow("SELECT COALESCE(SUM(LENGTH(card_id)), 0) FROM recent").Scan(&sizes.Recent); err != nil {
		return Sizes{}, err
	}

	if err := s.db.QueryRow("SELECT COALESCE(SUM(LENGTH(data)), 0) FROM settings").Scan(&sizes.Settings); err != nil {
		return Sizes{}, err
	}

	sizes.Total = sizes.Cards + sizes.Recent + sizes.Settings
	return sizes, nil
}

// Clear removes all rows from all three keys.
func (s *SQLiteStore) Clear() error {
	for _, stmt := range []string{"DELETE FROM cards", "DELETE FROM recent", "DELETE FROM settings"} {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
