// Package analyzer turns raw text, URLs and files into structured card
// content. The default implementation is a deterministic heuristic pipeline;
// the ContentAnalyzer interface lets a real AI backend slot in behind the
// same contract.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxFileSize is the upper bound for analyzed files.
const MaxFileSize = 10 * 1024 * 1024

// Summary ceiling for analysis results. Cards validate against a tighter
// 300-char ceiling at their own boundary; the two are intentionally distinct.
const maxResultSummaryLen = 500

var (
	ErrEmptyInput      = errors.New("content must not be empty")
	ErrInvalidURL      = errors.New("invalid URL format")
	ErrUnsupportedType = errors.New("unsupported file type: expected txt, pdf, doc or docx")
	ErrFileTooLarge    = errors.New("file size must not exceed 10MB")
	ErrEmptyContent    = errors.New("file content is empty")
	ErrUnsupportedKind = errors.New("unsupported content kind")
)

// Result is the ephemeral outcome of analyzing one input. It feeds card
// construction and is never persisted directly.
type Result struct {
	Title             string   `json:"title"`
	Summary           string   `json:"summary"`
	Keywords          []string `json:"keywords"`
	Content           string   `json:"content"`
	SuggestedTemplate string   `json:"suggestedTemplate,omitempty"`
}

// Input kinds.
const (
	KindText = "text"
	KindURL  = "url"
	KindFile = "file"
)

// Input is a raw piece of content with its declared kind.
type Input struct {
	Kind     string // KindText, KindURL or KindFile
	Content  string // raw text, URL, or file path depending on Kind
	FileName string
}

// ContentAnalyzer is the capability interface for content analysis.
type ContentAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) (Result, error)
	AnalyzeURL(ctx context.Context, rawURL string) (Result, error)
	AnalyzeFile(ctx context.Context, path string) (Result, error)
	AnalyzeContent(ctx context.Context, input Input) (Result, error)
}

// Heuristic is the deterministic analyzer: sentence splitting, frequency
// based keyword extraction and a fixed template suggestion rule list.
type Heuristic struct {
	extractor Extractor
}

// NewHeuristic creates a heuristic analyzer. A nil extractor falls back to
// the stub extractor.
func NewHeuristic(extractor Extractor) *Heuristic {
	if extractor == nil {
		extractor = StubExtractor{}
	}
	return &Heuristic{extractor: extractor}
}

// AnalyzeText derives title, summary, keywords and a suggested template
// from raw text.
func (h *Heuristic) AnalyzeText(ctx context.Context, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	return Result{
		Title:             deriveTitle(text),
		Summary:           deriveSummary(text, defaultSummaryLen),
		Keywords:          ExtractKeywords(text, defaultMaxKeywords),
		Content:           strings.TrimSpace(text),
		SuggestedTemplate: suggestTemplate(text),
	}, nil
}

// AnalyzeURL validates the URL, extracts the page text through the
// extraction collaborator and analyzes it.
func (h *Heuristic) AnalyzeURL(ctx context.Context, rawURL string) (Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	text, err := h.extractor.ExtractURL(ctx, rawURL)
	if err != nil {
		return Result{}, err
	}

	return h.AnalyzeText(ctx, text)
}

// AnalyzeFile checks type and size, then reads plain text directly or
// routes other supported formats through the extraction collaborator.
// The size check happens before any content read.
func (h *Heuristic) AnalyzeFile(ctx context.Context, path string) (Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".txt" && ext != ".pdf" && ext != ".doc" && ext != ".docx" {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Result{}, err
	}
	if info.Size() > MaxFileSize {
		return Result{}, ErrFileTooLarge
	}

	var content string
	if ext == ".txt" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Result{}, err
		}
		content = string(data)
	} else {
		content, err = h.extractor.ExtractFile(ctx, path)
		if err != nil {
			return Result{}, err
		}
	}

	if strings.TrimSpace(content) == "" {
		return Result{}, ErrEmptyContent
	}

	return h.AnalyzeText(ctx, content)
}

// AnalyzeContent dispatches on the input kind.
func (h *Heuristic) AnalyzeContent(ctx context.Context, input Input) (Result, error) {
	switch input.Kind {
	case KindText:
		return h.AnalyzeText(ctx, input.Content)
	case KindURL:
		return h.AnalyzeURL(ctx, input.Content)
	case KindFile:
		return h.AnalyzeFile(ctx, input.Content)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, input.Kind)
	}
}

// Reanalyze re-runs text analysis for an edited card body. With
// preserveTitle the existing title is kept and only the derived fields
// are returned.
func (h *Heuristic) Reanalyze(ctx context.Context, content string, preserveTitle bool) (Result, error) {
	result, err := h.AnalyzeText(ctx, content)
	if err != nil {
		return Result{}, err
	}
	if preserveTitle {
		result.Title = ""
	}
	return result, nil
}

// ValidateResult returns human-readable violations for an analysis result.
// It never fails and never mutates its input.
func ValidateResult(result Result) []string {
	var violations []string

	if strings.TrimSpace(result.Title) == "" {
		violations = append(violations, "title must not be empty")
	}
	if strings.TrimSpace(result.Summary) == "" {
		violations = append(violations, "summary must not be empty")
	}
	if strings.TrimSpace(result.Content) == "" {
		violations = append(violations, "content must not be empty")
	}
	if utf8.RuneCountInString(result.Title) > 100 {
		violations = append(violations, "title must not exceed 100 characters")
	}
	if utf8.RuneCountInString(result.Summary) > maxResultSummaryLen {
		violations = append(violations, fmt.Sprintf("summary must not exceed %d characters", maxResultSummaryLen))
	}

	return violations
}
