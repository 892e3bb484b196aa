package storage

import (
	"fmt"
	"time"

	"github.com/manacart/manacart/internal/deck"
	"github.com/manacart/manacart/internal/storage/models"
)

// SnapshotDeck converts an in-memory deck into its storable records. The
// entry list carries the card display fields so a saved deck renders
// without a fresh lookup.
func SnapshotDeck(d *deck.Deck, userID string, now time.Time) (*models.Deck, []*models.DeckCard) {
	record := &models.Deck{
		ID:          d.ID,
		UserID:      userID,
		Name:        d.Name,
		Format:      string(d.Format),
		Description: d.Description,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	entries := d.Entries()
	cards := make([]*models.DeckCard, 0, len(entries))
	for i, e := range entries {
		cards = append(cards, &models.DeckCard{
			DeckID:          d.ID,
			CardID:          e.Card.ID,
			Name:            e.Card.Name,
			SetCode:         e.Card.SetCode,
			CollectorNumber: e.Card.CollectorNumber,
			ManaCost:        e.Card.ManaCost,
			ManaValue:       e.Card.ManaValue,
			TypeLine:        e.Card.TypeLine,
			Colors:          models.JoinColors(e.Card.Colors),
			ColorIdentity:   models.JoinColors(e.Card.ColorIdentity),
			ImageURI:        e.Card.ImageURI,
			Quantity:        e.Quantity,
			Category:        string(e.Category),
			Position:        i,
		})
	}
	return record, cards
}

// BuildDeck reconstructs an in-memory deck from its saved records. Loading
// is a full-replace operation.
func BuildDeck(record *models.Deck, cards []*models.DeckCard) (*deck.Deck, error) {
	format, err := deck.ParseFormat(record.Format)
	if err != nil {
		return nil, fmt.Errorf("deck %s: %w", record.ID, err)
	}

	d := deck.New()
	d.ID = record.ID
	d.Name = record.Name
	d.Format = format
	d.Description = record.Description

	entries := make([]deck.Entry, 0, len(cards))
	for _, c := range cards {
		entries = append(entries, deck.Entry{
			Card: deck.Card{
				ID:              c.CardID,
				Name:            c.Name,
				ManaCost:        c.ManaCost,
				ManaValue:       c.ManaValue,
				TypeLine:        c.TypeLine,
				Colors:          models.SplitColors(c.Colors),
				ColorIdentity:   models.SplitColors(c.ColorIdentity),
				SetCode:         c.SetCode,
				CollectorNumber: c.CollectorNumber,
				ImageURI:        c.ImageURI,
			},
			Quantity: c.Quantity,
			Category: deck.Category(c.Category),
		})
	}
	d.Restore(entries)
	return d, nil
}

// CardToRecord converts a validated card into a cache row.
func CardToRecord(c deck.Card, now time.Time) *models.Card {
	return &models.Card{
		ID:              c.ID,
		Name:            c.Name,
		ManaCost:        c.ManaCost,
		ManaValue:       c.ManaValue,
		TypeLine:        c.TypeLine,
		Colors:          models.JoinColors(c.Colors),
		ColorIdentity:   models.JoinColors(c.ColorIdentity),
		SetCode:         c.SetCode,
		CollectorNumber: c.CollectorNumber,
		ImageURI:        c.ImageURI,
		LastUpdated:     now,
	}
}

// RecordToCard converts a cache row back into a card.
func RecordToCard(r *models.Card) deck.Card {
	return deck.Card{
		ID:              r.ID,
		Name:            r.Name,
		ManaCost:        r.ManaCost,
		ManaValue:       r.ManaValue,
		TypeLine:        r.TypeLine,
		Colors:          models.SplitColors(r.Colors),
		ColorIdentity:   models.SplitColors(r.ColorIdentity),
		SetCode:         r.SetCode,
		CollectorNumber: r.CollectorNumber,
		ImageURI:        r.ImageURI,
	}
}
