package storage

import (
	"path/filepath"
	"testing"
	"time"

	"textcard/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cards.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreEmptyLoad(t *testing.T) {
	store := newTestSQLiteStore(t)

	cards, err := store.LoadCards()
	if err != nil {
		t.Fatalf("LoadCards failed: %v", err)
	}
	if cards == nil {
		t.Error("Expected empty slice, got nil")
	}
	if len(cards) != 0 {
		t.Errorf("Expected 0 cards, got %d", len(cards))
	}
}

func TestSQLiteStoreSaveAndLoadCards(t *testing.T) {
	store := newTestSQLiteStore(t)

	first := model.NewCard(model.NewCardParams{
		Title:    "First",
		Summary:  "摘要",
		Content:  "内容",
		Keywords: []string{"go", "并发"},
		Template: "tech",
	})
	second := model.NewCard(model.NewCardParams{Title: "Second", Content: "more"})

	if err := store.SaveCards([]model.Card{first, second}); err != nil {
		t.Fatalf("SaveCards failed: %v", err)
	}

	loaded, err := store.LoadCards()
	if err != nil {
		t.Fatalf("LoadCards failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(loaded))
	}
	if loaded[0].ID != first.ID || loaded[1].ID != second.ID {
		t.Error("Expected insertion order to be preserved")
	}
	if loaded[0].Title != "First" || loaded[0].Summary != "摘要" {
		t.Errorf("Unexpected card fields: %+v", loaded[0])
	}
	if len(loaded[0].Keywords) != 2 || loaded[0].Keywords[0] != "go" {
		t.Errorf("Expected keywords to round trip, got %v", loaded[0].Keywords)
	}
	if loaded[0].Template != "tech" {
		t.Errorf("Expected template %q, got %q", "tech", loaded[0].Template)
	}
	if loaded[0].Style.BackgroundColor != first.Style.BackgroundColor {
		t.Error("Expected style to round trip")
	}
}

func TestSQLiteStoreDatePrecision(t *testing.T) {
	store := newTestSQLiteStore(t)

	card := model.NewCard(model.NewCardParams{Title: "Dated", Content: "x"})
	card.CreatedAt = time.Date(2024, 3, 15, 10, 30, 0, 123000000, time.UTC)
	card.UpdatedAt = card.CreatedAt

	if err := store.SaveCards([]model.Card{card}); err != nil {
		t.Fatalf("SaveCards failed: %v", err)
	}

	loaded, err := store.LoadCards()
	if err != nil {
		t.Fatalf("LoadCards failed: %v", err)
	}
	if !loaded[0].CreatedAt.Equal(card.CreatedAt) {
		t.Errorf("Expected createdAt %v, got %v", card.CreatedAt, loaded[0].CreatedAt)
	}
}

func TestSQLiteStoreSaveReplacesCollection(t *testing.T) {
	store := newTestSQLiteStore(t)

	a := model.NewCard(model.NewCardParams{Title: "A", Content: "a"})
	b := model.NewCard(model.NewCardParams{Title: "B", Content: "b"})

	if err := store.SaveCards([]model.Card{a, b}); err != nil {
		t.Fatalf("SaveCards failed: %v", err)
	}
	if err := store.SaveCards([]model.Card{b}); err != nil {
		t.Fatalf("SaveCards failed: %v", err)
	}

	loaded, err := store.LoadCards()
	if err != nil {
		t.Fatalf("LoadCards failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != b.ID {
		t.Errorf("Expected only card B, got %d cards", len(loaded))
	}
}

func TestSQLiteStoreRecentRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	want := []string{"z", "y", "x"}
	if err := store.SaveRecent(want); err != nil {
		t.Fatalf("SaveRecent failed: %v", err)
	}

	ids, err := store.LoadRecent()
	if err != nil {
		t.Fatalf("LoadRecent failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != "z" || ids[2] != "x" {
		t.Errorf("Expected %v, got %v", want, ids)
	}
}

func TestSQLiteStoreSettingsRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	data, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if data != nil {
		t.Errorf("Expected nil settings, got %q", data)
	}

	if err := store.SaveSettings([]byte(`{"lang":"zh"}`)); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	if err := store.SaveSettings([]byte(`{"lang":"en"}`)); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	data, err = store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if string(data) != `{"lang":"en"}` {
		t.Errorf("Expected latest settings, got %q", data)
	}
}

func TestSQLiteStoreClear(t *testing.T) {
	store := newTestSQLiteStore(t)

	card := model.NewCard(model.NewCardParams{Title: "Doomed", Content: "x"})
	if err := store.SaveCards([]model.Card{card}); err != nil {
		t.Fatalf("SaveCards failed: %v", err)
	}
	if err := store.SaveRecent([]string{card.ID}); err != nil {
		t.Fatalf("SaveRecent failed: %v", err)
	}
	if err := store.SaveSettings([]byte("{}")); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	cards, _ := store.LoadCards()
	ids, _ := store.LoadRecent()
	data, _ := store.LoadSettings()
	if len(cards) != 0 || len(ids) != 0 || data != nil {
		t.Errorf("Expected empty store after Clear, got %d cards, %d ids, %q settings",
			len(cards), len(ids), data)
	}
}

func TestSQLiteStoreSizes(t *testing.T) {
	store := newTestSQLiteStore(t)

	sizes, err := store.Sizes()
	if err != nil {
		t.Fatalf("Sizes failed: %v", err)
	}
	if sizes.Total != 0 {
		t.Errorf("Expected zero total on empty store, got %d", sizes.Total)
	}

	card := model.NewCard(model.NewCardParams{Title: "Sized", Content: "content"})
	if err := store.SaveCards([]model.Card{card}); err != nil {
		t.Fatalf("SaveCards failed: %v", err)
	}

	sizes, err = store.Sizes()
	if err != nil {
		t.Fatalf("Sizes failed: %v", err)
	}
	if sizes.Cards == 0 || sizes.Total == 0 {
		t.Error("Expected non-zero sizes after save")
	}
}
