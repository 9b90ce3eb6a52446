package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"textcard/internal/model"
)

// CardWidth is the fixed pixel width of a rendered card surface.
const CardWidth = 480

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

var page = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  html, body { margin: 0; padding: 0; background: transparent; }
  #card {
    box-sizing: border-box;
    width: {{.Width}}px;
    {{.Background}}
    color: {{.TextColor}};
    font-family: {{.FontFamily}};
    font-size: {{.FontSize}}px;
    font-weight: {{.FontWeight}};
    line-height: {{.LineHeight}};
    border-radius: {{.BorderRadius}}px;
    {{.BorderCSS}}
    box-shadow: {{.Shadow}};
    padding: {{.Padding}}px;
  }
  #card h1.card-title {
    margin: 0 0 12px 0;
    color: {{.TitleColor}};
    font-size: {{.TitleSize}}px;
  }
  #card .card-summary {
    opacity: 0.85;
    margin-bottom: 16px;
  }
  #card .card-keywords {
    margin-top: 16px;
    font-size: {{.KeywordSize}}px;
    opacity: 0.7;
  }
  #card .card-keywords span {
    margin-right: 8px;
  }
  #card .card-content img { max-width: 100%; }
  #card .card-content pre { overflow-x: auto; }
</style>
</head>
<body>
<div id="card">
  <h1 class="card-title">{{.Title}}</h1>
  {{if .Summary}}<div class="card-summary">{{.Summary}}</div>{{end}}
  <div class="card-content">{{.Content}}</div>
  {{if .Keywords}}<div class="card-keywords">{{range .Keywords}}<span>#{{.}}</span>{{end}}</div>{{end}}
</div>
</body>
</html>
`))

type pageData struct {
	Width        int
	Background   template.CSS
	TextColor    string
	TitleColor   string
	FontFamily   template.CSS
	FontSize     int
	TitleSize    int
	FontWeight   int
	LineHeight   float64
	BorderRadius int
	BorderCSS    template.CSS
	Shadow       template.CSS
	Padding      int
	KeywordSize  int
	Title        string
	Summary      string
	Content      template.HTML
	Keywords     []string
}

// HTML renders the card into a self-contained document suitable for
// screenshot capture. The card content is treated as markdown.
func HTML(card model.Card) (string, error) {
	var content bytes.Buffer
	if err := markdown.Convert([]byte(card.Content), &content); err != nil {
		return "", fmt.Errorf("rendering content: %w", err)
	}

	style := card.Style
	data := pageData{
		Width:        CardWidth,
		Background:   backgroundCSS(style),
		TextColor:    style.TextColor,
		TitleColor:   style.TitleColor,
		FontFamily:   template.CSS(style.FontFamily),
		FontSize:     style.FontSize,
		TitleSize:    style.TitleSize,
		FontWeight:   style.FontWeight,
		LineHeight:   style.LineHeight,
		BorderRadius: style.BorderRadius,
		BorderCSS:    borderCSS(style.Border),
		Shadow:       template.CSS(style.Shadow),
		Padding:      style.Padding,
		KeywordSize:  style.FontSize - 2,
		Title:        card.Title,
		Summary:      card.Summary,
		Content:      template.HTML(content.String()),
		Keywords:     card.Keywords,
	}

	if data.TitleSize == 0 {
		data.TitleSize = style.FontSize + 8
	}
	if data.FontWeight == 0 {
		data.FontWeight = 400
	}
	if data.LineHeight == 0 {
		data.LineHeight = 1.6
	}

	var out bytes.Buffer
	if err := page.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering card: %w", err)
	}
	return out.String(), nil
}

// backgroundCSS picks the card background. A gradient wins over an image,
// an image over the flat color.
func backgroundCSS(style model.CardStyle) template.CSS {
	switch {
	case style.Gradient != nil:
		g := style.Gradient
		direction := g.Direction
		if direction == "" {
			direction = "to bottom right"
		}
		return template.CSS(fmt.Sprintf("background: linear-gradient(%s, %s, %s);", direction, g.From, g.To))
	case style.BackgroundImage != "":
		return template.CSS(fmt.Sprintf("background: url(%q) center / cover no-repeat;", style.BackgroundImage))
	default:
		return template.CSS(fmt.Sprintf("background: %s;", style.BackgroundColor))
	}
}

func borderCSS(b model.Border) template.CSS {
	if b.Width <= 0 {
		return "border: none;"
	}
	style := b.Style
	if style == "" {
		style = "solid"
	}
	return template.CSS(fmt.Sprintf("border: %dpx %s %s;", b.Width, style, b.Color))
}

// PlainText flattens a markdown body into plain text, used for previews.
func PlainText(markdownBody string, limit int) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(markdownBody), &buf); err != nil {
		return markdownBody
	}

	text := stripTags(buf.String())
	runes := []rune(strings.TrimSpace(text))
	if limit > 0 && len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return string(runes)
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
