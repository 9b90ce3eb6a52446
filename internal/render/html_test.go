package render

import (
	"strings"
	"testing"

	"textcard/internal/model"
)

func TestHTMLContainsCardFields(t *testing.T) {
	card := model.NewCard(model.NewCardParams{
		Title:    "Release Notes",
		Summary:  "What changed",
		Content:  "We shipped **v2**.",
		Keywords: []string{"release", "v2"},
	})

	html, err := HTML(card)
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}

	for _, want := range []string{
		"Release Notes",
		"What changed",
		"<strong>v2</strong>",
		"#release",
		"#v2",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestHTMLUsesStyleValues(t *testing.T) {
	card := model.NewCard(model.NewCardParams{
		Title:   "Styled",
		Content: "body",
		Style: &model.CardStyle{
			BackgroundColor: "#0f172a",
			TextColor:       "#e2e8f0",
			FontSize:        18,
			Padding:         32,
		},
	})

	html, err := HTML(card)
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}

	for _, want := range []string{
		"background: #0f172a;",
		"color: #e2e8f0;",
		"font-size: 18px;",
		"padding: 32px;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestHTMLGradientWinsOverColor(t *testing.T) {
	card := model.NewCard(model.NewCardParams{
		Title:   "Gradient",
		Content: "body",
	})
	card.Style.Gradient = &model.Gradient{From: "#667eea", To: "#764ba2", Direction: "135deg"}

	html, err := HTML(card)
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}

	if !strings.Contains(html, "linear-gradient(135deg, #667eea, #764ba2)") {
		t.Error("expected gradient background")
	}
	if strings.Contains(html, "background: #ffffff;") {
		t.Error("expected flat color to be replaced by gradient")
	}
}

func TestHTMLBorder(t *testing.T) {
	card := model.NewCard(model.NewCardParams{Title: "Bordered", Content: "body"})

	html, err := HTML(card)
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(html, "border: none;") {
		t.Error("expected zero-width border rendered as none")
	}

	card.Style.Border = model.Border{Width: 2, Style: "dashed", Color: "#d97706"}
	html, err = HTML(card)
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(html, "border: 2px dashed #d97706;") {
		t.Error("expected structured border declaration")
	}
}

func TestHTMLEscapesCardText(t *testing.T) {
	card := model.NewCard(model.NewCardParams{
		Title:   "<script>alert(1)</script>",
		Content: "plain",
	})

	html, err := HTML(card)
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("expected title to be escaped")
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("# Heading\n\nSome **bold** text.", 0)

	if strings.Contains(got, "<") || strings.Contains(got, "#") {
		t.Errorf("expected markup stripped, got %q", got)
	}
	if !strings.Contains(got, "Heading") || !strings.Contains(got, "bold") {
		t.Errorf("expected text preserved, got %q", got)
	}
}

func TestPlainTextLimit(t *testing.T) {
	got := PlainText("这是一段很长的中文内容需要被截断处理", 5)

	if got != "这是一段很..." {
		t.Errorf("expected rune-aware truncation, got %q", got)
	}
}
