package model

// Template is an immutable named visual style preset. Catalog templates are
// loaded once and read-only; custom templates get fresh runtime ids.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Preview     string    `json:"preview"` // representative art URL, opaque here
	Style       CardStyle `json:"style"`
}
