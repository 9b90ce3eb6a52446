package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"textcard/internal/export"
	"textcard/internal/model"
	"textcard/internal/search"
	"textcard/internal/storage"
)

// Mode identifies the active TUI screen.
type Mode int

const (
	ModeList Mode = iota
	ModeSearch
	ModePreview
	ModeConfirmDelete
)

// App is the main bubbletea model for the card manager.
type App struct {
	library *storage.Library
	keys    KeyMap
	styles  Styles

	mode       Mode
	cards      []model.Card
	cursor     int
	sortKey    string
	recentOnly bool
	query      string

	searchInput textinput.Model
	status      string

	// For gg command
	lastKeyWasG bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Library *storage.Library
	Keys    *KeyMap // optional, uses default if nil
	Styles  *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	input := textinput.New()
	input.Placeholder = "Search cards..."
	input.CharLimit = 100
	input.Width = 40

	app := App{
		library:     params.Library,
		keys:        keys,
		styles:      styles,
		mode:        ModeList,
		sortKey:     search.SortNewest,
		searchInput: input,
		width:       80,
		height:      24,
	}

	app.refreshCards()
	return app
}

// refreshCards rebuilds the visible card list from the library, applying
// the recent filter, the active query and the sort order.
func (a *App) refreshCards() {
	var cards []model.Card
	if a.recentOnly {
		cards = a.library.RecentCards()
	} else {
		cards = a.library.AllCards()
	}

	if a.query != "" {
		matches := search.FuzzySearchCards(cards, a.query)
		filtered := make([]model.Card, len(matches))
		for i, m := range matches {
			filtered[i] = *m.Card
		}
		cards = filtered
	} else if !a.recentOnly {
		cards = search.SortCards(cards, a.sortKey)
	}

	a.cards = cards
	if a.cursor >= len(a.cards) {
		a.cursor = max(0, len(a.cards)-1)
	}
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Cards returns the currently visible cards.
func (a App) Cards() []model.Card {
	return a.cards
}

// CurrentMode returns the active mode.
func (a App) CurrentMode() Mode {
	return a.mode
}

// selected returns the card under the cursor, if any.
func (a App) selected() (model.Card, bool) {
	if len(a.cards) == 0 || a.cursor >= len(a.cards) {
		return model.Card{}, false
	}
	return a.cards[a.cursor], true
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeSearch:
			return a.updateSearch(msg)
		case ModePreview:
			return a.updatePreview(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		default:
			return a.updateList(msg)
		}
	}

	return a, nil
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.cards) > 0 && a.cursor < len(a.cards)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.cards) > 0 {
			a.cursor = len(a.cards) - 1
		}

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.searchInput.Reset()
		a.searchInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Recent):
		a.recentOnly = !a.recentOnly
		a.query = ""
		a.cursor = 0
		a.refreshCards()

	case key.Matches(msg, a.keys.Sort):
		a.sortKey = nextSortKey(a.sortKey)
		a.refreshCards()

	case key.Matches(msg, a.keys.Open):
		if _, ok := a.selected(); ok {
			a.mode = ModePreview
		}

	case key.Matches(msg, a.keys.Yank):
		if card, ok := a.selected(); ok {
			a.status = a.yankCard(card)
		}

	case key.Matches(msg, a.keys.Delete):
		if _, ok := a.selected(); ok {
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Back):
		if a.query != "" || a.recentOnly {
			a.query = ""
			a.recentOnly = false
			a.cursor = 0
			a.refreshCards()
		}
	}

	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.query = a.searchInput.Value()
		a.mode = ModeList
		a.cursor = 0
		a.refreshCards()
		return a, nil
	case tea.KeyEsc:
		a.mode = ModeList
		a.searchInput.Reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a App) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Yank):
		if card, ok := a.selected(); ok {
			a.status = a.yankCard(card)
		}
	case key.Matches(msg, a.keys.Back):
		a.mode = ModeList
	}
	return a, nil
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		if card, ok := a.selected(); ok {
			if err := a.library.DeleteCard(card.ID); err != nil {
				a.status = "delete failed: " + err.Error()
			} else {
				a.status = "deleted " + card.Title
			}
		}
		a.mode = ModeList
		a.refreshCards()
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeList
	}
	return a, nil
}

// yankCard copies the card's exported JSON to the system clipboard.
func (a App) yankCard(card model.Card) string {
	data, err := export.ExportCardJSON(card)
	if err != nil {
		return "copy failed: " + err.Error()
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return "copy failed: " + err.Error()
	}
	return "copied " + card.Title
}

func nextSortKey(current string) string {
	switch current {
	case search.SortNewest:
		return search.SortOldest
	case search.SortOldest:
		return search.SortUpdated
	case search.SortUpdated:
		return search.SortTitle
	default:
		return search.SortNewest
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
