// Package repository contains the database access objects for the
// storefront's tables.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/manacart/manacart/internal/storage/models"
)

// DeckRepository handles database operations for saved decks.
type DeckRepository interface {
	// Save upserts a deck and replaces its card list in one transaction
	// (full snapshot replace, last-write-wins).
	Save(ctx context.Context, deck *models.Deck, cards []*models.DeckCard) error

	// GetByID retrieves a deck by its ID, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.Deck, error)

	// ListByUser retrieves all decks owned by a user.
	ListByUser(ctx context.Context, userID string) ([]*models.Deck, error)

	// GetCards retrieves a deck's saved entries in position order.
	GetCards(ctx context.Context, deckID string) ([]*models.DeckCard, error)

	// Delete deletes a deck and, via cascade, its cards.
	Delete(ctx context.Context, id string) error
}

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new deck repository.
func NewDeckRepository(db *sql.DB) DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Save(ctx context.Context, deck *models.Deck, cards []*models.DeckCard) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO decks (id, user_id, name, format, description, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			format = excluded.format,
			description = excluded.description,
			modified_at = excluded.modified_at
	`,
		deck.ID, deck.UserID, deck.Name, deck.Format, deck.Description,
		deck.CreatedAt, deck.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert deck: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, deck.ID); err != nil {
		return fmt.Errorf("clear deck cards: %w", err)
	}

	for position, card := range cards {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO deck_cards (
				deck_id, card_id, name, set_code, collector_number,
				mana_cost, mana_value, type_line, colors, color_identity,
				image_uri, quantity, category, position
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			deck.ID, card.CardID, card.Name, card.SetCode, card.CollectorNumber,
			card.ManaCost, card.ManaValue, card.TypeLine, card.Colors, card.ColorIdentity,
			card.ImageURI, card.Quantity, card.Category, position,
		)
		if err != nil {
			return fmt.Errorf("insert deck card %s: %w", card.CardID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}
	return nil
}

func (r *deckRepository) GetByID(ctx context.Context, id string) (*models.Deck, error) {
	deck := &models.Deck{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, format, description, created_at, modified_at
		FROM decks WHERE id = ?
	`, id).Scan(
		&deck.ID, &deck.UserID, &deck.Name, &deck.Format, &deck.Description,
		&deck.CreatedAt, &deck.ModifiedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get deck by id: %w", err)
	}
	return deck, nil
}

func (r *deckRepository) ListByUser(ctx context.Context, userID string) ([]*models.Deck, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, format, description, created_at, modified_at
		FROM decks WHERE user_id = ?
		ORDER BY modified_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*models.Deck
	for rows.Next() {
		deck := &models.Deck{}
		if err := rows.Scan(
			&deck.ID, &deck.UserID, &deck.Name, &deck.Format, &deck.Description,
			&deck.CreatedAt, &deck.ModifiedAt,
		); err != nil {
			return nil, fmt.Errorf("scan deck row: %w", err)
		}
		decks = append(decks, deck)
	}
	return decks, rows.Err()
}

func (r *deckRepository) GetCards(ctx context.Context, deckID string) ([]*models.DeckCard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT deck_id, card_id, name, set_code, collector_number,
		       mana_cost, mana_value, type_line, colors, color_identity,
		       image_uri, quantity, category, position
		FROM deck_cards WHERE deck_id = ?
		ORDER BY position
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("get deck cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*models.DeckCard
	for rows.Next() {
		card := &models.DeckCard{}
		if err := rows.Scan(
			&card.DeckID, &card.CardID, &card.Name, &card.SetCode, &card.CollectorNumber,
			&card.ManaCost, &card.ManaValue, &card.TypeLine, &card.Colors, &card.ColorIdentity,
			&card.ImageURI, &card.Quantity, &card.Category, &card.Position,
		); err != nil {
			return nil, fmt.Errorf("scan deck card row: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *deckRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	return nil
}
