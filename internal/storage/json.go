package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"textcard/internal/model"
)

// File names for the three logical keys.
const (
	cardsFile    = "cards.json"
	recentFile   = "recent.json"
	settingsFile = "settings.json"
)

// JSONStore implements Backend using one JSON file per logical key.
type JSONStore struct {
	dir string
}

// NewJSONStore creates a JSONStore rooted at the given directory.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

// Dir returns the storage directory.
func (s *JSONStore) Dir() string {
	return s.dir
}

// LoadCards reads the card collection. A missing file yields an empty
// collection. Dates round-trip through their ISO-8601 JSON form.
func (s *JSONStore) LoadCards() ([]model.Card, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, cardsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Card{}, nil
		}
		return nil, err
	}

	var cards []model.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []model.Card{}
	}
	return cards, nil
}

// SaveCards writes the whole card collection, creating the directory if
// needed.
func (s *JSONStore) SaveCards(cards []model.Card) error {
	if cards == nil {
		cards = []model.Card{}
	}
	return s.writeKey(cardsFile, cards)
}

// LoadRecent reads the recent-id list; missing file yields an empty list.
func (s *JSONStore) LoadRecent() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, recentFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// SaveRecent writes the recent-id list.
func (s *JSONStore) SaveRecent(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.writeKey(recentFile, ids)
}

// LoadSettings reads the opaque settings blob; missing file yields nil.
func (s *JSONStore) LoadSettings() ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, settingsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// SaveSettings writes the opaque settings blob verbatim.
func (s *JSONStore) SaveSettings(data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, settingsFile), data, 0644)
}

// Sizes reports the on-disk byte size per key.
func (s *JSONStore) Sizes() (Sizes, error) {
	var sizes Sizes
	sizes.Cards = fileSize(filepath.Join(s.dir, cardsFile))
	sizes.Recent = fileSize(filepath.Join(s.dir, recentFile))
	sizes.Settings = fileSize(filepath.Join(s.dir, settingsFile))
	sizes.Total = sizes.Cards + sizes.Recent + sizes.Settings
	return sizes, nil
}

// Clear removes all three keys.
func (s *JSONStore) Clear() error {
	for _, name := range []string{cardsFile, recentFile, settingsFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (s *JSONStore) writeKey(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0644)
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
