package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"textcard/internal/model"
)

// MaxRecent caps the recent-card index.
const MaxRecent = 10

// ErrCardNotFound is returned when a card id has no match.
var ErrCardNotFound = errors.New("card not found")

// Library provides card operations on top of a Backend.
type Library struct {
	backend Backend
	logger  *log.Logger
}

// NewLibrary creates a Library over the given backend. A nil logger
// falls back to log.Default().
func NewLibrary(backend Backend, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.Default()
	}
	return &Library{backend: backend, logger: logger}
}

// AllCards returns every stored card. Corrupt or unreadable data degrades
// to an empty collection rather than failing the caller.
func (l *Library) AllCards() []model.Card {
	cards, err := l.backend.LoadCards()
	if err != nil {
		l.logger.Printf("failed to load cards, starting empty: %v", err)
		return []model.Card{}
	}
	return cards
}

// CardByID looks up a single card.
func (l *Library) CardByID(id string) (model.Card, bool) {
	for _, c := range l.AllCards() {
		if c.ID == id {
			return c, true
		}
	}
	return model.Card{}, false
}

// SaveCard inserts or replaces a card by id, then promotes it to the
// front of the recent index.
func (l *Library) SaveCard(card model.Card) error {
	cards := l.AllCards()

	replaced := false
	for i, c := range cards {
		if c.ID == card.ID {
			cards[i] = card
			replaced = true
			break
		}
	}
	if !replaced {
		cards = append(cards, card)
	}

	if err := l.backend.SaveCards(cards); err != nil {
		return fmt.Errorf("saving cards: %w", err)
	}

	return l.promoteRecent(card.ID)
}

// DeleteCard removes a card by id along with its recent entry.
func (l *Library) DeleteCard(id string) error {
	cards := l.AllCards()

	idx := -1
	for i, c := range cards {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCardNotFound
	}

	cards = append(cards[:idx], cards[idx+1:]...)
	if err := l.backend.SaveCards(cards); err != nil {
		return fmt.Errorf("saving cards: %w", err)
	}

	return l.removeRecent(id)
}

// DeleteCards removes a batch of cards in one write. Ids with no matching
// card are skipped, consistent with the stale-reference tolerance of the
// recent index.
func (l *Library) DeleteCards(ids []string) error {
	cards := l.AllCards()

	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	kept := cards[:0]
	for _, c := range cards {
		if !doomed[c.ID] {
			kept = append(kept, c)
		}
	}

	if err := l.backend.SaveCards(kept); err != nil {
		return fmt.Errorf("saving cards: %w", err)
	}

	recent, err := l.backend.LoadRecent()
	if err != nil {
		return nil
	}
	filtered := recent[:0]
	for _, id := range recent {
		if !doomed[id] {
			filtered = append(filtered, id)
		}
	}
	return l.backend.SaveRecent(filtered)
}

// RecentCards returns up to MaxRecent cards in recency order. Ids whose
// card no longer exists are skipped.
func (l *Library) RecentCards() []model.Card {
	ids, err := l.backend.LoadRecent()
	if err != nil {
		l.logger.Printf("failed to load recent index: %v", err)
		return []model.Card{}
	}

	cards := l.AllCards()
	byID := make(map[string]model.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	recent := []model.Card{}
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			recent = append(recent, c)
		}
		if len(recent) == MaxRecent {
			break
		}
	}
	return recent
}

// promoteRecent moves id to the front of the recent index, dropping
// duplicates and capping the list at MaxRecent.
func (l *Library) promoteRecent(id string) error {
	ids, err := l.backend.LoadRecent()
	if err != nil {
		ids = []string{}
	}

	next := []string{id}
	for _, existing := range ids {
		if existing == id {
			continue
		}
		next = append(next, existing)
		if len(next) == MaxRecent {
			break
		}
	}

	return l.backend.SaveRecent(next)
}

func (l *Library) removeRecent(id string) error {
	ids, err := l.backend.LoadRecent()
	if err != nil {
		return nil
	}

	next := ids[:0]
	for _, existing := range ids {
		if existing != id {
			next = append(next, existing)
		}
	}
	return l.backend.SaveRecent(next)
}

// exportBundle is the on-disk shape of a full library export.
type exportBundle struct {
	Version    string       `json:"version"`
	ExportDate time.Time    `json:"exportDate"`
	Cards      []model.Card `json:"cards"`
}

// ExportAll serializes every card into a versioned bundle.
func (l *Library) ExportAll() ([]byte, error) {
	bundle := exportBundle{
		Version:    "1.0",
		ExportDate: time.Now(),
		Cards:      l.AllCards(),
	}
	return json.MarshalIndent(bundle, "", "  ")
}

// ImportResult reports the outcome of an Import call.
type ImportResult struct {
	Imported   int
	Violations []string
}

// Import merges cards from an exported bundle. Cards whose id collides
// with an existing card are imported under a fresh id, never overwriting.
// Malformed input yields a single violation.
func (l *Library) Import(data []byte) (ImportResult, error) {
	var bundle exportBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return ImportResult{Violations: []string{"invalid JSON: not an export bundle"}}, nil
	}

	cards := l.AllCards()
	existing := make(map[string]bool, len(cards))
	for _, c := range cards {
		existing[c.ID] = true
	}

	result := ImportResult{}
	for i, c := range bundle.Cards {
		if c.ID == "" || c.Title == "" || c.Content == "" {
			result.Violations = append(result.Violations,
				fmt.Sprintf("card %d: missing required field (id, title or content)", i))
			continue
		}

		if existing[c.ID] {
			c.ID = model.NewID()
		}
		if c.Keywords == nil {
			c.Keywords = []string{}
		}
		if c.Template == "" {
			c.Template = "default"
		}
		// Bundles from older exports may carry a partial or missing style;
		// stored cards always have a fully populated one.
		c.Style = model.DefaultStyle().Merge(c.Style)

		cards = append(cards, c)
		existing[c.ID] = true
		result.Imported++
	}

	if result.Imported > 0 {
		if err := l.backend.SaveCards(cards); err != nil {
			return ImportResult{}, fmt.Errorf("saving cards: %w", err)
		}
	}

	return result, nil
}

// ClearAll wipes cards, the recent index and settings.
func (l *Library) ClearAll() error {
	return l.backend.Clear()
}

// Info describes the current library contents.
type Info struct {
	CardCount int
	Sizes     Sizes
}

// Stats returns card count and storage sizes.
func (l *Library) Stats() (Info, error) {
	sizes, err := l.backend.Sizes()
	if err != nil {
		return Info{}, err
	}
	return Info{CardCount: len(l.AllCards()), Sizes: sizes}, nil
}
