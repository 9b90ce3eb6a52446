// Package storage persists the card collection, the bounded recent-card
// index and an opaque settings blob behind a small backend interface.
package storage

import (
	"os"
	"path/filepath"

	"textcard/internal/model"
)

// Backend is the key-addressed persistence interface. Three logical keys
// exist: the card collection, the recent-id list and the settings blob.
// Writes to different keys are not transactional with each other.
type Backend interface {
	LoadCards() ([]model.Card, error)
	SaveCards(cards []model.Card) error
	LoadRecent() ([]string, error)
	SaveRecent(ids []string) error
	LoadSettings() ([]byte, error)
	SaveSettings(data []byte) error
	Sizes() (Sizes, error)
	Clear() error
}

// Sizes reports stored byte sizes per logical key.
type Sizes struct {
	Cards    int64 `json:"cards"`
	Recent   int64 `json:"recent"`
	Settings int64 `json:"settings"`
	Total    int64 `json:"total"`
}

// DefaultDataDir returns the default data directory: ~/.config/textcard
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "textcard"), nil
}

// Open opens the appropriate storage backend for the data directory.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func Open(dataDir string) (Backend, error) {
	dbPath := filepath.Join(dataDir, "cards.db")
	if _, err := os.Stat(dbPath); err == nil {
		return NewSQLiteStore(dbPath)
	}
	return NewJSONStore(dataDir), nil
}
