package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"textcard/internal/analyzer"
	"textcard/internal/config"
	"textcard/internal/export"
	"textcard/internal/model"
	"textcard/internal/picker"
	"textcard/internal/search"
	"textcard/internal/storage"
	"textcard/internal/template"
	"textcard/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "analyze":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: textcard analyze <text> | --url <url> | --file <path>\n")
				os.Exit(1)
			}
			runAnalyze(os.Args[2:])
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: textcard import <file.json>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "image":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: textcard image <card-id>\n")
				os.Exit(1)
			}
			runImage(os.Args[2])
			return
		case "search":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: textcard search <query>\n")
				os.Exit(1)
			}
			runSearch(strings.Join(os.Args[2:], " "))
			return
		case "templates":
			var category string
			if len(os.Args) >= 3 {
				category = os.Args[2]
			}
			runTemplates(category)
			return
		case "info":
			runInfo()
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command %q, see `textcard help`\n", os.Args[1])
			os.Exit(1)
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `textcard - turn text into styled, shareable cards

Usage:
  textcard                       Open interactive TUI
  textcard analyze <text>        Analyze text and save a card
  textcard analyze --url <url>   Analyze a web page
  textcard analyze --file <path> Analyze a document (.txt/.pdf/.doc/.docx)
  textcard search <query>        Search cards by keyword
  textcard image <card-id>       Export a card as PNG
  textcard import <file>         Import cards from an exported JSON bundle
  textcard export [path]         Export all cards to JSON
  textcard templates [category]  List card templates
  textcard info                  Show library statistics
  textcard help                  Show this help

TUI Keybindings:
  j/k         Move down/up
  gg/G        Jump to top/bottom
  Enter       Preview card
  /           Fuzzy search
  r           Toggle recent cards
  o           Cycle sort mode
  y           Copy card JSON to clipboard
  d           Delete card
  q           Quit

Configuration:
  ~/.config/textcard/config.yaml
`
	fmt.Print(help)
}

// loadConfig loads configuration, exiting on error.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openLibrary opens the storage backend named by the config.
func openLibrary(cfg *config.Config) *storage.Library {
	var backend storage.Backend
	var err error
	if cfg.Backend == config.BackendSQLite {
		backend, err = storage.NewSQLiteStore(filepath.Join(cfg.DataDir, "cards.db"))
	} else {
		backend, err = storage.Open(cfg.DataDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	return storage.NewLibrary(backend, nil)
}

// newAnalyzer builds the content analyzer named by the config. The
// Anthropic analyzer needs ANTHROPIC_API_KEY; fall back to heuristics
// when it is missing so analyze always works offline.
func newAnalyzer(cfg *config.Config) analyzer.ContentAnalyzer {
	extractor := analyzer.NewHTTPExtractor()
	if cfg.Analyzer == config.AnalyzerAnthropic {
		a, err := analyzer.NewAnthropic(extractor)
		if err == nil {
			return a
		}
		fmt.Fprintf(os.Stderr, "Anthropic analyzer unavailable (%v), using heuristics\n", err)
	}
	return analyzer.NewHeuristic(extractor)
}

// runTUI runs the full interactive TUI.
func runTUI() {
	cfg := loadConfig()
	library := openLibrary(cfg)

	app := tui.NewApp(tui.AppParams{Library: library})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runAnalyze analyzes input, builds a card and saves it.
func runAnalyze(args []string) {
	cfg := loadConfig()

	input := analyzer.Input{Kind: analyzer.KindText}
	switch args[0] {
	case "--url":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "Usage: textcard analyze --url <url>\n")
			os.Exit(1)
		}
		input = analyzer.Input{Kind: analyzer.KindURL, Content: args[1]}
	case "--file":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "Usage: textcard analyze --file <path>\n")
			os.Exit(1)
		}
		input = analyzer.Input{Kind: analyzer.KindFile, Content: args[1], FileName: filepath.Base(args[1])}
	default:
		input.Content = strings.Join(args, " ")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := newAnalyzer(cfg).AnalyzeContent(ctx, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing content: %v\n", err)
		os.Exit(1)
	}

	templateID := result.SuggestedTemplate
	if templateID == "" {
		templateID = cfg.DefaultTemplate
	}
	tmpl, ok := template.ByID(templateID)
	if !ok {
		tmpl, _ = template.ByID("default")
	}

	card := model.NewCard(model.NewCardParams{
		Title:    result.Title,
		Summary:  result.Summary,
		Content:  result.Content,
		Keywords: result.Keywords,
		Template: tmpl.ID,
		Style:    &tmpl.Style,
	})

	library := openLibrary(cfg)
	if err := library.SaveCard(card); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving card: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created card %s\n", card.ID)
	fmt.Printf("  Title:    %s\n", card.Title)
	fmt.Printf("  Template: %s\n", card.Template)
	if len(card.Keywords) > 0 {
		fmt.Printf("  Keywords: %s\n", strings.Join(card.Keywords, ", "))
	}
}

// runSearch performs a fuzzy search and shows the selected card.
func runSearch(query string) {
	cfg := loadConfig()
	library := openLibrary(cfg)

	cards := library.AllCards()
	results := search.FuzzySearchCards(cards, query)
	if len(results) == 0 {
		// Fall back to substring search over all card fields.
		matches := search.SearchCards(cards, query, search.Filters{})
		if len(matches) == 0 {
			fmt.Printf("No cards found for '%s'\n", query)
			return
		}
		matches = search.SortCards(matches, search.SortNewest)
		for _, card := range matches {
			fmt.Printf("%s  %-40s %s\n", card.ID, card.Title, card.UpdatedAt.Format("2006-01-02"))
		}
		return
	}

	var selected *model.Card
	if len(results) == 1 {
		selected = results[0].Card
	} else {
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		selected = finalPicker.SelectedCard()
	}

	if selected == nil {
		return
	}

	fmt.Printf("%s\n", selected.Title)
	if selected.Summary != "" {
		fmt.Printf("%s\n", selected.Summary)
	}
	fmt.Printf("\nid: %s  template: %s  updated: %s\n",
		selected.ID, selected.Template, selected.UpdatedAt.Format("2006-01-02"))
}

// runImage exports one card as a PNG image.
func runImage(cardID string) {
	cfg := loadConfig()
	library := openLibrary(cfg)

	card, ok := library.CardByID(cardID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Card %s not found\n", cardID)
		os.Exit(1)
	}

	rasterizer, err := export.NewRodRasterizer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting browser: %v\n", err)
		os.Exit(1)
	}
	defer rasterizer.Close()

	pipe := export.NewPipeline(export.PipelineParams{
		Rasterizer: rasterizer,
		Saver:      terminalSaver{},
		Dir:        cfg.ExportDir,
		Options:    export.CaptureOptions{Scale: cfg.ExportScale},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	progress := func(percent int, message string) {
		fmt.Fprintf(os.Stderr, "\r[%3d%%] %-20s", percent, message)
	}

	outcome, err := pipe.ExportImage(ctx, card, progress)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting image: %v\n", err)
		os.Exit(1)
	}

	if outcome.Saved {
		fmt.Printf("Wrote %s\n", outcome.Path)
	}
}

// terminalSaver tells the user where the image went, or how to recover
// it when the direct write did not happen.
type terminalSaver struct{}

func (terminalSaver) Guide(filename string, png []byte) error {
	fmt.Fprintf(os.Stderr, "Image %s (%d bytes) ready. Check your export directory;\n", filename, len(png))
	fmt.Fprintf(os.Stderr, "if it is missing, re-run with a writable export_dir in config.yaml.\n")
	return nil
}

// runImport merges cards from an exported JSON bundle.
func runImport(filePath string) {
	cfg := loadConfig()
	library := openLibrary(cfg)

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	result, err := library.Import(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing cards: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d cards", result.Imported)
	if len(result.Violations) > 0 {
		fmt.Printf(" (%d skipped)", len(result.Violations))
	}
	fmt.Println()
	for _, v := range result.Violations {
		fmt.Fprintf(os.Stderr, "  %s\n", v)
	}
}

// runExport writes the whole library to a JSON bundle.
func runExport(outputPath string) {
	cfg := loadConfig()
	library := openLibrary(cfg)

	if outputPath == "" {
		filename := fmt.Sprintf("textcard-export-%s.json", time.Now().Format("2006-01-02"))
		outputPath = filepath.Join(cfg.ExportDir, filename)
	}

	data, err := library.ExportAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting cards: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	info, _ := library.Stats()
	fmt.Printf("Exported %d cards to %s\n", info.CardCount, outputPath)
}

// runTemplates lists the template catalog.
func runTemplates(category string) {
	var templates []model.Template
	if category == "" {
		templates = template.All()
	} else {
		templates = template.ByCategory(category)
	}

	if len(templates) == 0 {
		fmt.Printf("No templates in category '%s'\n", category)
		return
	}

	for _, t := range templates {
		fmt.Printf("%-12s %-10s %s\n", t.ID, t.Category, t.Name)
	}
}

// runInfo prints library statistics.
func runInfo() {
	cfg := loadConfig()
	library := openLibrary(cfg)

	info, err := library.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cards:    %d\n", info.CardCount)
	fmt.Printf("Storage:  %s (%s backend)\n", cfg.DataDir, cfg.Backend)
	fmt.Printf("Size:     %d bytes (cards %d, recent %d, settings %d)\n",
		info.Sizes.Total, info.Sizes.Cards, info.Sizes.Recent, info.Sizes.Settings)
}
