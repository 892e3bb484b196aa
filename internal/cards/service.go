// Package cards provides unified card lookup for the catalog: a SQLite
// cache in front of the Scryfall client, with stale-cache fallback when the
// card-data API is unreachable.
package cards

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manacart/manacart/internal/deck"
	"github.com/manacart/manacart/internal/storage"
	"github.com/manacart/manacart/internal/storage/repository"
)

// DefaultStaleThreshold is how old cached data may be before a fresh fetch
// is attempted.
const DefaultStaleThreshold = 7 * 24 * time.Hour

// Source is the card-data API surface the service needs.
type Source interface {
	SearchCards(ctx context.Context, query string) ([]deck.Card, error)
	GetCardBySetNumber(ctx context.Context, setCode, collectorNumber string) (deck.Card, error)
	GetCardByName(ctx context.Context, name string) (deck.Card, error)
}

// Service is the card lookup collaborator used by the deck and catalog
// handlers.
type Service struct {
	cache          repository.CardRepository
	source         Source
	staleThreshold time.Duration
	logger         *slog.Logger
}

// Options configures the card lookup service.
type Options struct {
	// StaleThreshold overrides DefaultStaleThreshold when positive.
	StaleThreshold time.Duration
	Logger         *slog.Logger
}

// NewService creates a card lookup service.
func NewService(cache repository.CardRepository, source Source, opts Options) *Service {
	if opts.StaleThreshold <= 0 {
		opts.StaleThreshold = DefaultStaleThreshold
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		cache:          cache,
		source:         source,
		staleThreshold: opts.StaleThreshold,
		logger:         opts.Logger,
	}
}

// GetBySetNumber retrieves a card by set code and collector number, cache
// first.
func (s *Service) GetBySetNumber(ctx context.Context, setCode, collectorNumber string) (deck.Card, error) {
	cached, err := s.cache.GetBySetNumber(ctx, setCode, collectorNumber)
	if err == nil && cached != nil && time.Since(cached.LastUpdated) < s.staleThreshold {
		return storage.RecordToCard(cached), nil
	}

	card, err := s.source.GetCardBySetNumber(ctx, setCode, collectorNumber)
	if err != nil {
		// Serve a stale row rather than failing when the API is down.
		if cached != nil {
			s.logger.Warn("card API unavailable, serving stale cache",
				"set", setCode, "number", collectorNumber, "error", err)
			return storage.RecordToCard(cached), nil
		}
		return deck.Card{}, fmt.Errorf("fetch card %s/%s: %w", setCode, collectorNumber, err)
	}

	s.store(ctx, card)
	return card, nil
}

// Search runs a card search against the card-data API and refreshes the
// cache with the results.
func (s *Service) Search(ctx context.Context, query string) ([]deck.Card, error) {
	results, err := s.source.SearchCards(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search cards: %w", err)
	}
	for _, card := range results {
		s.store(ctx, card)
	}
	return results, nil
}

// GetByName retrieves a card by its exact name.
func (s *Service) GetByName(ctx context.Context, name string) (deck.Card, error) {
	card, err := s.source.GetCardByName(ctx, name)
	if err != nil {
		return deck.Card{}, fmt.Errorf("fetch card named %q: %w", name, err)
	}
	s.store(ctx, card)
	return card, nil
}

// store writes through to the card cache. Failures are logged, not
// propagated: the caller already has the card.
func (s *Service) store(ctx context.Context, card deck.Card) {
	record := storage.CardToRecord(card, time.Now())
	if err := s.cache.Upsert(ctx, record); err != nil {
		s.logger.Warn("failed to cache card", "card", card.Name, "error", err)
	}
}

// CachedSearch searches the local cache only. Used when the catalog should
// answer without touching the card-data API.
func (s *Service) CachedSearch(ctx context.Context, term string, limit int) ([]deck.Card, error) {
	records, err := s.cache.SearchByName(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search card cache: %w", err)
	}
	cards := make([]deck.Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, storage.RecordToCard(r))
	}
	return cards, nil
}
