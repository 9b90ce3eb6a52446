package tui

import (
	"fmt"
	"strings"

	"textcard/internal/model"
	"textcard/internal/render"
)

const previewContentLimit = 400

// renderView draws the current screen.
func (a App) renderView() string {
	switch a.mode {
	case ModeSearch:
		return a.renderSearch()
	case ModePreview:
		return a.renderPreview()
	case ModeConfirmDelete:
		return a.renderConfirmDelete()
	default:
		return a.renderList()
	}
}

func (a App) renderList() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render(a.listTitle()))
	b.WriteString("\n\n")

	if len(a.cards) == 0 {
		b.WriteString(a.styles.Empty.Render("No cards yet. Run `textcard analyze` to create one."))
		b.WriteString("\n")
	}

	for i, card := range a.cards {
		line := a.cardLine(card)
		if i == a.cursor {
			b.WriteString(a.styles.ItemSelected.Render(line))
		} else {
			b.WriteString(a.styles.Item.Render(line))
		}
		b.WriteString("\n")
	}

	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Status.Render(a.status))
	}

	b.WriteString(a.styles.Help.Render("\nj/k move · enter preview · / search · r recent · o sort · y copy · d delete · q quit"))

	return a.styles.App.Render(b.String())
}

func (a App) listTitle() string {
	switch {
	case a.recentOnly:
		return "Recent Cards"
	case a.query != "":
		return fmt.Sprintf("Cards matching %q", a.query)
	default:
		return fmt.Sprintf("Cards · %s", a.sortKey)
	}
}

func (a App) cardLine(card model.Card) string {
	title := card.Title
	if title == "" {
		title = "(untitled)"
	}
	date := a.styles.Date.Render(card.UpdatedAt.Format("2006-01-02"))
	template := a.styles.Template.Render(card.Template)
	return fmt.Sprintf("%-40s %s  %s", truncate(title, 40), template, date)
}

func (a App) renderSearch() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(a.searchInput.View())
	b.WriteString(a.styles.Help.Render("\nenter apply · esc cancel"))
	return a.styles.App.Render(b.String())
}

func (a App) renderPreview() string {
	card, ok := a.selected()
	if !ok {
		return a.renderList()
	}

	var b strings.Builder

	title := cardPreviewStyle(a.styles.Title, "", card.Style.TitleColor)
	b.WriteString(title.Render(card.Title))
	b.WriteString("\n\n")

	if card.Summary != "" {
		b.WriteString(a.styles.Summary.Render(card.Summary))
		b.WriteString("\n\n")
	}

	b.WriteString(render.PlainText(card.Content, previewContentLimit))
	b.WriteString("\n")

	if len(card.Keywords) > 0 {
		var tags []string
		for _, kw := range card.Keywords {
			tags = append(tags, "#"+kw)
		}
		b.WriteString("\n")
		b.WriteString(a.styles.Keyword.Render(strings.Join(tags, " ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Date.Render(fmt.Sprintf("template: %s · created %s",
		card.Template, card.CreatedAt.Format("2006-01-02 15:04"))))

	body := cardPreviewStyle(a.styles.Preview, "", card.Style.TextColor).Render(b.String())

	var out strings.Builder
	out.WriteString(body)
	if a.status != "" {
		out.WriteString("\n")
		out.WriteString(a.styles.Status.Render(a.status))
	}
	out.WriteString(a.styles.Help.Render("\ny copy · esc back · q quit"))
	return a.styles.App.Render(out.String())
}

func (a App) renderConfirmDelete() string {
	card, ok := a.selected()
	if !ok {
		return a.renderList()
	}

	var b strings.Builder
	b.WriteString(a.styles.Confirm.Render(fmt.Sprintf("Delete %q?", card.Title)))
	b.WriteString(a.styles.Help.Render("\ny confirm · n cancel"))
	return a.styles.App.Render(b.String())
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
