package search

import (
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"textcard/internal/model"
)

// Filters narrows search results beyond the text query. Zero values
// leave the corresponding dimension unfiltered.
type Filters struct {
	Template string
	Start    *time.Time
	End      *time.Time
}

// SearchCards returns the cards matching the query and filters. The query
// is a case-insensitive substring match over title, summary, content and
// keywords; an empty query matches everything, leaving only the filters.
func SearchCards(cards []model.Card, query string, filters Filters) []model.Card {
	query = strings.ToLower(strings.TrimSpace(query))

	results := []model.Card{}
	for _, c := range cards {
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		if filters.Template != "" && c.Template != filters.Template {
			continue
		}
		if filters.Start != nil && c.CreatedAt.Before(*filters.Start) {
			continue
		}
		if filters.End != nil && c.CreatedAt.After(*filters.End) {
			continue
		}
		results = append(results, c)
	}

	return results
}

func matchesQuery(c model.Card, query string) bool {
	if strings.Contains(strings.ToLower(c.Title), query) ||
		strings.Contains(strings.ToLower(c.Summary), query) ||
		strings.Contains(strings.ToLower(c.Content), query) {
		return true
	}
	for _, kw := range c.Keywords {
		if strings.Contains(strings.ToLower(kw), query) {
			return true
		}
	}
	return false
}

// Sort keys accepted by SortCards.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortUpdated = "updated"
	SortTitle   = "title"
)

// titleCollator orders mixed Chinese and Latin titles consistently.
var titleCollator = collate.New(language.Chinese)

// SortCards returns a sorted copy of cards. An unknown key returns the
// copy in its original order.
func SortCards(cards []model.Card, key string) []model.Card {
	sorted := make([]model.Card, len(cards))
	copy(sorted, cards)

	switch key {
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	case SortUpdated:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
		})
	case SortTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return titleCollator.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	}

	return sorted
}

// Result represents a fuzzy search match.
type Result struct {
	Card           *model.Card
	MatchedIndexes []int
	Score          int
}

// cardTitles implements fuzzy.Source for a card slice.
type cardTitles []*model.Card

func (ct cardTitles) String(i int) string {
	return ct[i].Title
}

func (ct cardTitles) Len() int {
	return len(ct)
}

// FuzzySearchCards searches cards by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchCards(cards []model.Card, query string) []Result {
	if query == "" {
		return nil
	}

	titles := make(cardTitles, len(cards))
	for i := range cards {
		titles[i] = &cards[i]
	}

	matches := fuzzy.FindFrom(query, titles)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Card:           titles[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
