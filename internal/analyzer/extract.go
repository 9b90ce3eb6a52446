package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Extractor is the content-extraction collaborator: it turns a URL or a
// non-plain-text file into raw text for analysis.
type Extractor interface {
	ExtractURL(ctx context.Context, rawURL string) (string, error)
	ExtractFile(ctx context.Context, path string) (string, error)
}

// StubExtractor returns placeholder text instead of performing real
// extraction. It stands in for an external document/page extraction service.
type StubExtractor struct{}

func (StubExtractor) ExtractURL(_ context.Context, rawURL string) (string, error) {
	return fmt.Sprintf("这是从网页 %s 提取的内容。\n\n"+
		"网页标题：示例网页标题。\n\n"+
		"网页内容：这里是网页的主要内容，包含了重要的信息和数据。"+
		"通过分析我们可以提取出关键信息并生成结构化的卡片内容。", rawURL), nil
}

func (StubExtractor) ExtractFile(_ context.Context, path string) (string, error) {
	return fmt.Sprintf("这是从文件 %q 提取的内容。\n\n"+
		"模拟提取的文档内容：这里是文档的主要内容，包含了重要的信息和数据。"+
		"通过分析我们可以提取出关键信息并生成结构化的卡片内容。", path), nil
}

// HTTPExtractor fetches a page and extracts its visible text. File
// extraction still goes through the stub: parsing PDF and Word documents
// remains an external collaborator.
type HTTPExtractor struct {
	client *http.Client
	stub   StubExtractor
}

// NewHTTPExtractor creates an HTTP-backed page extractor.
func NewHTTPExtractor() *HTTPExtractor {
	return &HTTPExtractor{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *HTTPExtractor) ExtractURL(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	var b strings.Builder
	collectText(doc, &b)
	return b.String(), nil
}

func (e *HTTPExtractor) ExtractFile(ctx context.Context, path string) (string, error) {
	return e.stub.ExtractFile(ctx, path)
}

// collectText walks the parse tree gathering text nodes, skipping script
// and style subtrees.
func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript":
			return
		}
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
