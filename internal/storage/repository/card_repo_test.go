package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manacart/manacart/internal/storage/models"
)

func testCard(id, name string) *models.Card {
	return &models.Card{
		ID:              id,
		Name:            name,
		ManaCost:        "{R}",
		ManaValue:       1,
		TypeLine:        "Instant",
		Colors:          "R",
		ColorIdentity:   "R",
		SetCode:         "m21",
		CollectorNumber: "123",
		LastUpdated:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestCardRepositoryUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCardRepository(db)
	ctx := context.Background()

	card := testCard("card-1", "Lightning Bolt")
	require.NoError(t, repo.Upsert(ctx, card))

	loaded, err := repo.GetByID(ctx, "card-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Lightning Bolt", loaded.Name)

	// Upsert refreshes the existing row.
	card.Name = "Lightning Bolt (revised)"
	require.NoError(t, repo.Upsert(ctx, card))

	loaded, err = repo.GetByID(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt (revised)", loaded.Name)
}

func TestCardRepositoryGetBySetNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCardRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testCard("card-1", "Lightning Bolt")))

	loaded, err := repo.GetBySetNumber(ctx, "m21", "123")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "card-1", loaded.ID)

	missing, err := repo.GetBySetNumber(ctx, "m21", "999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCardRepositorySearchByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCardRepository(db)
	ctx := context.Background()

	bolt := testCard("card-1", "Lightning Bolt")
	require.NoError(t, repo.Upsert(ctx, bolt))

	strike := testCard("card-2", "Lightning Strike")
	strike.CollectorNumber = "124"
	require.NoError(t, repo.Upsert(ctx, strike))

	shock := testCard("card-3", "Shock")
	shock.CollectorNumber = "125"
	require.NoError(t, repo.Upsert(ctx, shock))

	results, err := repo.SearchByName(ctx, "lightning", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
