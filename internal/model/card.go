package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation ceilings for card fields. The analyzer uses a larger summary
// ceiling for raw analysis results; do not unify the two.
const (
	MaxTitleLen   = 100
	MaxSummaryLen = 300
)

// Card is a persisted, styled content unit derived from analyzed input
// and a chosen template.
type Card struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Keywords  []string  `json:"keywords"`
	Template  string    `json:"template"` // template id; weak reference, may dangle
	Style     CardStyle `json:"style"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCardParams holds parameters for creating a new Card.
type NewCardParams struct {
	Title    string
	Summary  string
	Content  string
	Keywords []string
	Template string     // "" defaults to "default"
	Style    *CardStyle // optional partial overrides, merged onto DefaultStyle
}

// NewCard creates a Card with a generated id and fresh timestamps.
// Style overrides are merged onto the default style field by field, so the
// resulting style is always fully populated.
func NewCard(params NewCardParams) Card {
	keywords := params.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	template := params.Template
	if template == "" {
		template = "default"
	}

	style := DefaultStyle()
	if params.Style != nil {
		style = style.Merge(*params.Style)
	}

	now := time.Now()
	return Card{
		ID:        NewID(),
		Title:     params.Title,
		Summary:   params.Summary,
		Content:   params.Content,
		Keywords:  keywords,
		Template:  template,
		Style:     style,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CardUpdate holds partial updates for a Card. Nil fields are left unchanged.
type CardUpdate struct {
	Title    *string
	Summary  *string
	Content  *string
	Keywords []string
	Template *string
	Style    *CardStyle
}

// UpdateCard returns a copy of card with the partial updates applied and
// UpdatedAt refreshed. The input is never mutated; ID and CreatedAt are
// immutable and cannot be changed through an update.
func UpdateCard(card Card, update CardUpdate) Card {
	out := card
	out.Style = card.Style.Clone()
	out.Keywords = append([]string(nil), card.Keywords...)

	if update.Title != nil {
		out.Title = *update.Title
	}
	if update.Summary != nil {
		out.Summary = *update.Summary
	}
	if update.Content != nil {
		out.Content = *update.Content
	}
	if update.Keywords != nil {
		out.Keywords = append([]string(nil), update.Keywords...)
	}
	if update.Template != nil {
		out.Template = *update.Template
	}
	if update.Style != nil {
		out.Style = update.Style.Clone()
	}

	out.UpdatedAt = time.Now()
	return out
}

// ApplyTemplate returns a copy of card pointing at the template, with the
// card's style replaced wholesale by a copy of the template's style. This is
// a full replacement, not a merge.
func ApplyTemplate(card Card, tpl Template) Card {
	out := card
	out.Keywords = append([]string(nil), card.Keywords...)
	out.Template = tpl.ID
	out.Style = tpl.Style.Clone()
	out.UpdatedAt = time.Now()
	return out
}

// ValidateCard returns human-readable violations for the card's text fields.
// An empty slice means the card is valid.
func ValidateCard(card Card) []string {
	var violations []string

	if strings.TrimSpace(card.Title) == "" {
		violations = append(violations, "title must not be empty")
	}
	if strings.TrimSpace(card.Summary) == "" {
		violations = append(violations, "summary must not be empty")
	}
	if strings.TrimSpace(card.Content) == "" {
		violations = append(violations, "content must not be empty")
	}
	if n := utf8.RuneCountInString(card.Title); n > MaxTitleLen {
		violations = append(violations, fmt.Sprintf("title must not exceed %d characters", MaxTitleLen))
	}
	if n := utf8.RuneCountInString(card.Summary); n > MaxSummaryLen {
		violations = append(violations, fmt.Sprintf("summary must not exceed %d characters", MaxSummaryLen))
	}

	return violations
}
