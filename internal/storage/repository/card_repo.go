package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/manacart/manacart/internal/storage/models"
)

// CardRepository handles the card cache table.
type CardRepository interface {
	// Upsert inserts or refreshes a cached card.
	Upsert(ctx context.Context, card *models.Card) error

	// GetByID retrieves a cached card, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.Card, error)

	// GetBySetNumber retrieves a cached card by printing, or nil.
	GetBySetNumber(ctx context.Context, setCode, collectorNumber string) (*models.Card, error)

	// SearchByName retrieves cached cards whose name contains the term.
	SearchByName(ctx context.Context, term string, limit int) ([]*models.Card, error)
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new card cache repository.
func NewCardRepository(db *sql.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Upsert(ctx context.Context, card *models.Card) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cards (
			id, name, mana_cost, mana_value, type_line, colors, color_identity,
			set_code, collector_number, image_uri, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			mana_cost = excluded.mana_cost,
			mana_value = excluded.mana_value,
			type_line = excluded.type_line,
			colors = excluded.colors,
			color_identity = excluded.color_identity,
			set_code = excluded.set_code,
			collector_number = excluded.collector_number,
			image_uri = excluded.image_uri,
			last_updated = excluded.last_updated
	`,
		card.ID, card.Name, card.ManaCost, card.ManaValue, card.TypeLine,
		card.Colors, card.ColorIdentity, card.SetCode, card.CollectorNumber,
		card.ImageURI, card.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert card: %w", err)
	}
	return nil
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *cardRepository) GetBySetNumber(ctx context.Context, setCode, collectorNumber string) (*models.Card, error) {
	return r.getOne(ctx, `WHERE set_code = ? AND collector_number = ?`, setCode, collectorNumber)
}

func (r *cardRepository) getOne(ctx context.Context, where string, args ...interface{}) (*models.Card, error) {
	query := `
		SELECT id, name, mana_cost, mana_value, type_line, colors, color_identity,
		       set_code, collector_number, image_uri, last_updated
		FROM cards ` + where

	card := &models.Card{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&card.ID, &card.Name, &card.ManaCost, &card.ManaValue, &card.TypeLine,
		&card.Colors, &card.ColorIdentity, &card.SetCode, &card.CollectorNumber,
		&card.ImageURI, &card.LastUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

func (r *cardRepository) SearchByName(ctx context.Context, term string, limit int) ([]*models.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, mana_cost, mana_value, type_line, colors, color_identity,
		       set_code, collector_number, image_uri, last_updated
		FROM cards
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY name
		LIMIT ?
	`, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*models.Card
	for rows.Next() {
		card := &models.Card{}
		if err := rows.Scan(
			&card.ID, &card.Name, &card.ManaCost, &card.ManaValue, &card.TypeLine,
			&card.Colors, &card.ColorIdentity, &card.SetCode, &card.CollectorNumber,
			&card.ImageURI, &card.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}
