package storage

import (
	"testing"
	"time"

	"github.com/manacart/manacart/internal/deck"
	"github.com/manacart/manacart/internal/storage/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	d := deck.New()
	d.ID = "deck-1"
	d.Name = "Elf Ball"
	d.Description = "ramp into big creatures"

	if err := d.AddCard(deck.Card{
		ID:        "elves-1",
		Name:      "Llanowar Elves",
		ManaCost:  "{G}",
		ManaValue: 1,
		TypeLine:  "Creature — Elf Druid",
		Colors:    []string{"G"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := d.UpdateQuantity("elves-1", 2); err != nil {
		t.Fatal(err)
	}

	record, cards := SnapshotDeck(d, "user-1", time.Now())
	if record.UserID != "user-1" || record.Format != "standard" {
		t.Errorf("unexpected record: %+v", record)
	}
	if len(cards) != 1 || cards[0].Quantity != 3 || cards[0].Colors != "G" {
		t.Errorf("unexpected cards: %+v", cards[0])
	}

	rebuilt, err := BuildDeck(record, cards)
	if err != nil {
		t.Fatalf("BuildDeck failed: %v", err)
	}

	entry, ok := rebuilt.Entry("elves-1")
	if !ok {
		t.Fatal("entry lost in round trip")
	}
	if entry.Quantity != 3 || entry.Category != deck.CategoryCreatures {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Card.Colors[0] != "G" {
		t.Errorf("colors lost: %+v", entry.Card.Colors)
	}
	if rebuilt.Name != "Elf Ball" {
		t.Errorf("name = %q", rebuilt.Name)
	}
}

func TestBuildDeckRejectsUnknownFormat(t *testing.T) {
	record := &models.Deck{ID: "deck-1", Format: "pauper"}
	if _, err := BuildDeck(record, nil); err == nil {
		t.Error("unknown format should be rejected")
	}
}
