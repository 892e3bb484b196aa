package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manacart/manacart/internal/storage/models"
)

func testDeck(id, userID string) *models.Deck {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Deck{
		ID:         id,
		UserID:     userID,
		Name:       "Mono Green Stompy",
		Format:     "standard",
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

func testDeckCards(deckID string) []*models.DeckCard {
	return []*models.DeckCard{
		{
			DeckID:   deckID,
			CardID:   "elves-1",
			Name:     "Llanowar Elves",
			TypeLine: "Creature — Elf Druid",
			Colors:   "G",
			Quantity: 4,
			Category: "creatures",
		},
		{
			DeckID:   deckID,
			CardID:   "forest-1",
			Name:     "Forest",
			TypeLine: "Basic Land — Forest",
			Quantity: 20,
			Category: "lands",
		},
	}
}

func TestDeckRepositorySaveAndLoad(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeckRepository(db)
	ctx := context.Background()

	deck := testDeck("deck-1", "user-1")
	require.NoError(t, repo.Save(ctx, deck, testDeckCards(deck.ID)))

	loaded, err := repo.GetByID(ctx, "deck-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Mono Green Stompy", loaded.Name)
	assert.Equal(t, "user-1", loaded.UserID)

	cards, err := repo.GetCards(ctx, "deck-1")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "elves-1", cards[0].CardID)
	assert.Equal(t, 4, cards[0].Quantity)
	assert.Equal(t, "forest-1", cards[1].CardID)
}

func TestDeckRepositorySaveReplacesCards(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeckRepository(db)
	ctx := context.Background()

	deck := testDeck("deck-1", "user-1")
	require.NoError(t, repo.Save(ctx, deck, testDeckCards(deck.ID)))

	// Second save with a different card list replaces the first wholesale.
	replacement := []*models.DeckCard{
		{DeckID: deck.ID, CardID: "bolt-1", Name: "Lightning Bolt", TypeLine: "Instant", Quantity: 2, Category: "instants"},
	}
	deck.Name = "Burn"
	require.NoError(t, repo.Save(ctx, deck, replacement))

	loaded, err := repo.GetByID(ctx, "deck-1")
	require.NoError(t, err)
	assert.Equal(t, "Burn", loaded.Name)

	cards, err := repo.GetCards(ctx, "deck-1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "bolt-1", cards[0].CardID)
}

func TestDeckRepositoryListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeckRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testDeck("deck-1", "user-1"), nil))
	require.NoError(t, repo.Save(ctx, testDeck("deck-2", "user-1"), nil))
	require.NoError(t, repo.Save(ctx, testDeck("deck-3", "user-2"), nil))

	decks, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, decks, 2)
}

func TestDeckRepositoryGetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeckRepository(db)

	deck, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, deck)
}

func TestDeckRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeckRepository(db)
	ctx := context.Background()

	deck := testDeck("deck-1", "user-1")
	require.NoError(t, repo.Save(ctx, deck, testDeckCards(deck.ID)))
	require.NoError(t, repo.Delete(ctx, "deck-1"))

	loaded, err := repo.GetByID(ctx, "deck-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
