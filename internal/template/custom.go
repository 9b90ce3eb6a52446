package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"textcard/internal/model"
)

const (
	maxNameLen        = 50
	maxDescriptionLen = 200

	customPreview = "https://trae-api-us.mchost.guru/api/ide/v1/text_to_image?prompt=custom%20card%20template%20design&image_size=landscape_4_3"
)

// ErrInvalidBundle reports a template bundle that could not be parsed or is
// missing required fields.
var ErrInvalidBundle = errors.New("invalid template bundle")

// NewCustom creates a runtime template with a fresh custom id. Custom
// templates are not persisted by the core unless explicitly exported.
func NewCustom(name, description string, style model.CardStyle, category string) model.Template {
	if category == "" {
		category = "custom"
	}
	return model.Template{
		ID:          fmt.Sprintf("custom_%d", time.Now().UnixMilli()),
		Name:        name,
		Description: description,
		Category:    category,
		Preview:     customPreview,
		Style:       style.Clone(),
	}
}

// Duplicate returns a copy of tpl under a fresh id in the custom category.
func Duplicate(tpl model.Template, newName string) model.Template {
	out := cloneTemplate(tpl)
	out.ID = fmt.Sprintf("copy_%d", time.Now().UnixMilli())
	out.Category = "custom"
	if newName != "" {
		out.Name = newName
	} else {
		out.Name = tpl.Name + " 副本"
	}
	return out
}

// Validate returns human-readable violations for a template's fields.
func Validate(tpl model.Template) []string {
	var violations []string

	if strings.TrimSpace(tpl.Name) == "" {
		violations = append(violations, "template name must not be empty")
	}
	if strings.TrimSpace(tpl.Description) == "" {
		violations = append(violations, "template description must not be empty")
	}
	if tpl.Style.BackgroundColor == "" {
		violations = append(violations, "background color must not be empty")
	}
	if tpl.Style.TextColor == "" {
		violations = append(violations, "text color must not be empty")
	}
	if tpl.Style.TitleColor == "" {
		violations = append(violations, "title color must not be empty")
	}
	if utf8.RuneCountInString(tpl.Name) > maxNameLen {
		violations = append(violations, fmt.Sprintf("template name must not exceed %d characters", maxNameLen))
	}
	if utf8.RuneCountInString(tpl.Description) > maxDescriptionLen {
		violations = append(violations, fmt.Sprintf("template description must not exceed %d characters", maxDescriptionLen))
	}

	return violations
}

// bundle is the single-template export envelope.
type bundle struct {
	Version    string         `json:"version"`
	ExportDate time.Time      `json:"exportDate"`
	Template   model.Template `json:"template"`
}

// ExportJSON serializes a template into a versioned bundle.
func ExportJSON(tpl model.Template) ([]byte, error) {
	return json.MarshalIndent(bundle{
		Version:    "1.0",
		ExportDate: time.Now().UTC(),
		Template:   tpl,
	}, "", "  ")
}

// ImportJSON parses a template bundle. The imported template gets a fresh
// id and lands in the custom category; malformed or incomplete payloads
// fail with ErrInvalidBundle.
func ImportJSON(data []byte) (model.Template, error) {
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return model.Template{}, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}

	tpl := b.Template
	if tpl.Name == "" || tpl.Style.BackgroundColor == "" {
		return model.Template{}, fmt.Errorf("%w: missing name or style", ErrInvalidBundle)
	}

	tpl.ID = fmt.Sprintf("imported_%d", time.Now().UnixMilli())
	tpl.Category = "custom"
	return tpl, nil
}
