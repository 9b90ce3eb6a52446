package export

import (
	"encoding/json"
	"errors"
	"time"

	"textcard/internal/model"
)

// ErrInvalidCardJSON is returned when imported JSON is not a usable card.
var ErrInvalidCardJSON = errors.New("invalid card JSON")

// cardBundle wraps a single exported card.
type cardBundle struct {
	Version    string       `json:"version"`
	ExportDate time.Time    `json:"exportDate"`
	Cards      []model.Card `json:"cards"`
}

// ExportCardJSON serializes one card into a versioned bundle, the same
// shape a full library export uses.
func ExportCardJSON(card model.Card) ([]byte, error) {
	bundle := cardBundle{
		Version:    "1.0",
		ExportDate: time.Now(),
		Cards:      []model.Card{card},
	}
	return json.MarshalIndent(bundle, "", "  ")
}

// ImportCardFromJSON parses a single card from exported JSON. Accepts
// either a bundle or a bare card object. Partial styles are merged onto
// the default so the imported card always renders.
func ImportCardFromJSON(data []byte) (model.Card, error) {
	var bundle cardBundle
	if err := json.Unmarshal(data, &bundle); err == nil && len(bundle.Cards) > 0 {
		return normalizeImported(bundle.Cards[0])
	}

	var card model.Card
	if err := json.Unmarshal(data, &card); err != nil {
		return model.Card{}, ErrInvalidCardJSON
	}
	return normalizeImported(card)
}

func normalizeImported(card model.Card) (model.Card, error) {
	if card.ID == "" || card.Title == "" || card.Content == "" {
		return model.Card{}, ErrInvalidCardJSON
	}

	if card.Keywords == nil {
		card.Keywords = []string{}
	}
	if card.Template == "" {
		card.Template = "default"
	}
	card.Style = model.DefaultStyle().Merge(card.Style)

	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}
	if card.UpdatedAt.IsZero() {
		card.UpdatedAt = card.CreatedAt
	}

	return card, nil
}
