package analyzer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"textcard/internal/analyzer"
)

func newAnalyzer() *analyzer.Heuristic {
	return analyzer.NewHeuristic(nil)
}

func TestAnalyzeText_EmptyInput(t *testing.T) {
	_, err := newAnalyzer().AnalyzeText(context.Background(), "   \n\t ")
	if !errors.Is(err, analyzer.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAnalyzeText_TwoChineseSentences(t *testing.T) {
	// Both sentences are longer than 10 runes, so both land in the summary,
	// and the first sentence (<= 50 runes) becomes the title verbatim.
	text := "今天天气很好我们都很开心。我们下午一起去公园里玩吧。"

	result, err := newAnalyzer().AnalyzeText(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Title != "今天天气很好我们都很开心" {
		t.Errorf("expected first sentence as title, got %q", result.Title)
	}
	if !strings.Contains(result.Summary, "今天天气很好我们都很开心") ||
		!strings.Contains(result.Summary, "我们下午一起去公园里玩吧") {
		t.Errorf("expected both sentences in summary, got %q", result.Summary)
	}
	if result.Content != text {
		t.Errorf("expected content preserved, got %q", result.Content)
	}
}

func TestAnalyzeText_TitleFallsBackToKeywords(t *testing.T) {
	// First sentence longer than 50 runes forces the keyword fallback.
	long := strings.Repeat("golang testing ", 10) + "。"

	result, err := newAnalyzer().AnalyzeText(context.Background(), long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Title != "golang testing" {
		t.Errorf("expected top-2 keywords as title, got %q", result.Title)
	}
}

func TestAnalyzeText_SummaryTruncationFallback(t *testing.T) {
	// No sentence longer than 10 runes, so the summary truncates raw text.
	text := "短句。又一句。还有。"

	result, err := newAnalyzer().AnalyzeText(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(result.Summary, "...") {
		t.Errorf("expected truncation marker, got %q", result.Summary)
	}
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	text := "Go语言 并发 并发 简单 Go语言 Go语言 网络 网络 并发"

	first := analyzer.ExtractKeywords(text, 5)
	for i := 0; i < 5; i++ {
		if got := analyzer.ExtractKeywords(text, 5); !reflect.DeepEqual(got, first) {
			t.Fatalf("extraction not deterministic: %v vs %v", got, first)
		}
	}

	want := []string{"go语言", "并发", "网络", "简单"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("expected %v, got %v", want, first)
	}
}

func TestExtractKeywords_FiltersStopWordsAndShortTokens(t *testing.T) {
	got := analyzer.ExtractKeywords("因为 所以 a b 但是 编程 编程", 5)
	want := []string{"编程"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractKeywords_TiesByFirstOccurrence(t *testing.T) {
	got := analyzer.ExtractKeywords("zebra apple zebra apple mango", 3)
	want := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected first-occurrence tie order %v, got %v", want, got)
	}
}

func TestSuggestTemplate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"tutorial markers", "第一步骤是准备材料，这是一个完整的教学内容。", "tutorial"},
		{"quote markers", "正如他说过的那样，时间就是金钱，这句话流传很广。", "quote"},
		{"data markers", "根据统计，增长率达到了一个新的高度，数据很可观。", "data"},
		{"news markers", "今日发布的新闻引起了广泛关注，报道非常详细。", "news"},
		{"no markers", "平平无奇的一段描述文字，没有任何特别的标记词汇。", "default"},
		{"first rule wins", "这份教学步骤里引用了很多统计数据和新闻报道。", "tutorial"},
	}

	a := newAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.AnalyzeText(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.SuggestedTemplate != tt.want {
				t.Errorf("expected template %q, got %q", tt.want, result.SuggestedTemplate)
			}
		})
	}
}

func TestAnalyzeURL_Invalid(t *testing.T) {
	a := newAnalyzer()
	for _, raw := range []string{"not a url", "example.com/path", "://missing"} {
		if _, err := a.AnalyzeURL(context.Background(), raw); !errors.Is(err, analyzer.ErrInvalidURL) {
			t.Errorf("AnalyzeURL(%q): expected ErrInvalidURL, got %v", raw, err)
		}
	}
}

func TestAnalyzeURL_DelegatesToExtractor(t *testing.T) {
	result, err := newAnalyzer().AnalyzeURL(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Content, "example.com") {
		t.Errorf("expected extractor output in content, got %q", result.Content)
	}
}

func TestAnalyzeFile_UnsupportedType(t *testing.T) {
	_, err := newAnalyzer().AnalyzeFile(context.Background(), "notes.exe")
	if !errors.Is(err, analyzer.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestAnalyzeFile_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	// Sparse file just past the limit; the size gate must trip before any read.
	if err := f.Truncate(analyzer.MaxFileSize + 1); err != nil {
		t.Fatal(err)
	}
	f.Close()

	_, err = newAnalyzer().AnalyzeFile(context.Background(), path)
	if !errors.Is(err, analyzer.ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestAnalyzeFile_EmptyContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("   \n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := newAnalyzer().AnalyzeFile(context.Background(), path)
	if !errors.Is(err, analyzer.ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestAnalyzeFile_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	content := "今天天气很好我们都很开心。我们下午一起去公园里玩吧。"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := newAnalyzer().AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Content != content {
		t.Errorf("expected file content analyzed, got %q", result.Content)
	}
}

func TestAnalyzeContent_Dispatch(t *testing.T) {
	a := newAnalyzer()

	if _, err := a.AnalyzeContent(context.Background(), analyzer.Input{Kind: "text", Content: "一段足够长的测试文字内容。"}); err != nil {
		t.Errorf("text dispatch failed: %v", err)
	}

	_, err := a.AnalyzeContent(context.Background(), analyzer.Input{Kind: "video", Content: "x"})
	if !errors.Is(err, analyzer.ErrUnsupportedKind) {
		t.Errorf("expected ErrUnsupportedKind, got %v", err)
	}
}

func TestValidateResult(t *testing.T) {
	valid := analyzer.Result{Title: "t", Summary: "s", Content: "c"}
	if v := analyzer.ValidateResult(valid); len(v) != 0 {
		t.Errorf("expected no violations, got %v", v)
	}

	if v := analyzer.ValidateResult(analyzer.Result{}); len(v) != 3 {
		t.Errorf("expected 3 violations, got %v", v)
	}

	// The analyzer's summary ceiling is 500, looser than the card's 300.
	longSummary := analyzer.Result{Title: "t", Summary: strings.Repeat("a", 400), Content: "c"}
	if v := analyzer.ValidateResult(longSummary); len(v) != 0 {
		t.Errorf("summary of 400 chars must pass the analyzer validator, got %v", v)
	}
	tooLong := analyzer.Result{Title: "t", Summary: strings.Repeat("a", 501), Content: "c"}
	if v := analyzer.ValidateResult(tooLong); len(v) != 1 {
		t.Errorf("expected 1 violation for 501-char summary, got %v", v)
	}
}

func TestReanalyze_PreserveTitle(t *testing.T) {
	result, err := newAnalyzer().Reanalyze(context.Background(), "新的内容主体写在这里了。", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "" {
		t.Errorf("expected empty title when preserving, got %q", result.Title)
	}
	if result.Summary == "" {
		t.Error("expected derived summary")
	}
}
