package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	betaHeader = "structured-outputs-2025-11-13"
	haikuModel = "claude-haiku-4-5-20251001"
)

var (
	ErrNoAPIKey        = errors.New("ANTHROPIC_API_KEY environment variable not set")
	ErrAPIRequest      = errors.New("API request failed")
	ErrInvalidResponse = errors.New("invalid API response")
)

// Anthropic is a ContentAnalyzer backed by the Anthropic API. URL and file
// plumbing (validation, size and type checks, extraction) is shared with the
// heuristic analyzer; only the text analysis itself goes to the model.
type Anthropic struct {
	apiKey     string
	httpClient *http.Client
	extractor  Extractor
}

// NewAnthropic creates an API-backed analyzer.
// Returns an error if ANTHROPIC_API_KEY is not set.
func NewAnthropic(extractor Extractor) (*Anthropic, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if extractor == nil {
		extractor = StubExtractor{}
	}

	return &Anthropic{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		extractor:  extractor,
	}, nil
}

// AnalyzeText asks the model for title, summary, keywords and a template
// suggestion as structured output.
func (a *Anthropic) AnalyzeText(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	reqBody := apiRequest{
		Model:     haikuModel,
		MaxTokens: 1024,
		Messages: []apiMessage{
			{Role: "user", Content: buildAnalysisPrompt(text)},
		},
		OutputFormat: &outputFormat{
			Type: "json_schema",
			Schema: jsonSchema{
				Type: "object",
				Properties: map[string]schemaProp{
					"title":             {Type: "string"},
					"summary":           {Type: "string"},
					"keywords":          {Type: "array", Items: &schemaProp{Type: "string"}},
					"suggestedTemplate": {Type: "string"},
				},
				Required:             []string{"title", "summary", "keywords", "suggestedTemplate"},
				AdditionalProperties: false,
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("anthropic-beta", betaHeader)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrAPIRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: status %d: %s", ErrAPIRequest, resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return Result{}, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(apiResp.Content) == 0 || apiResp.Content[0].Type != "text" {
		return Result{}, ErrInvalidResponse
	}

	var result Result
	if err := json.Unmarshal([]byte(apiResp.Content[0].Text), &result); err != nil {
		return Result{}, fmt.Errorf("unmarshal analysis: %w", err)
	}

	result.Content = strings.TrimSpace(text)
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	return result, nil
}

// AnalyzeURL validates and extracts like the heuristic analyzer, then sends
// the extracted text to the model.
func (a *Anthropic) AnalyzeURL(ctx context.Context, rawURL string) (Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	text, err := a.extractor.ExtractURL(ctx, rawURL)
	if err != nil {
		return Result{}, err
	}
	return a.AnalyzeText(ctx, text)
}

// AnalyzeFile applies the same type and size gates as the heuristic
// analyzer before extraction.
func (a *Anthropic) AnalyzeFile(ctx context.Context, path string) (Result, error) {
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
		content, err = a.extractor.ExtractFile(ctx, path)
		if err != nil {
			return Result{}, err
		}
	}

	if strings.TrimSpace(content) == "" {
		return Result{}, ErrEmptyContent
	}
	return a.AnalyzeText(ctx, content)
}

// AnalyzeContent dispatches on the input kind.
func (a *Anthropic) AnalyzeContent(ctx context.Context, input Input) (Result, error) {
	switch input.Kind {
	case KindText:
		return a.AnalyzeText(ctx, input.Content)
	case KindURL:
		return a.AnalyzeURL(ctx, input.Content)
	case KindFile:
		return a.AnalyzeFile(ctx, input.Content)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, input.Kind)
	}
}

func buildAnalysisPrompt(text string) string {
	return fmt.Sprintf(`Analyze this content and produce card metadata.

Content:
%s

Instructions:
- Suggest a concise title (at most 100 characters)
- Write a summary of at most 500 characters in the content's language
- Extract up to 5 keywords, ordered by importance
- Pick the best matching template id from: default, modern, colorful, dark,
  elegant, tech, nature, vintage, neon, minimalist, watercolor, industrial`, text)
}
