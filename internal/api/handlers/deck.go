// Package handlers contains the HTTP handlers for the storefront API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/manacart/manacart/internal/api/response"
	"github.com/manacart/manacart/internal/charts"
	"github.com/manacart/manacart/internal/deck"
	"github.com/manacart/manacart/internal/deckimport"
	"github.com/manacart/manacart/internal/storage"
	"github.com/manacart/manacart/internal/storage/repository"
)

// CardLookup resolves cards from the catalog.
type CardLookup interface {
	Search(ctx context.Context, query string) ([]deck.Card, error)
	GetBySetNumber(ctx context.Context, setCode, collectorNumber string) (deck.Card, error)
	GetByName(ctx context.Context, name string) (deck.Card, error)
}

// UserIDFunc extracts the caller's user ID from a request context.
type UserIDFunc func(ctx context.Context) string

// DeckHandler handles deck-related API requests.
type DeckHandler struct {
	decks  repository.DeckRepository
	cards  CardLookup
	userID UserIDFunc
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(decks repository.DeckRepository, cards CardLookup, userID UserIDFunc) *DeckHandler {
	return &DeckHandler{decks: decks, cards: cards, userID: userID}
}

// DeckResponse is a deck with its entries and derived totals.
type DeckResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Format      deck.Format     `json:"format"`
	Description string          `json:"description"`
	TotalCards  int             `json:"total_cards"`
	Entries     []EntryResponse `json:"entries"`
}

// EntryResponse is one deck entry on the wire.
type EntryResponse struct {
	Card     deck.Card     `json:"card"`
	Quantity int           `json:"quantity"`
	Category deck.Category `json:"category"`
}

func deckResponse(d *deck.Deck) *DeckResponse {
	entries := d.Entries()
	resp := &DeckResponse{
		ID:          d.ID,
		Name:        d.Name,
		Format:      d.Format,
		Description: d.Description,
		TotalCards:  d.TotalCards(),
		Entries:     make([]EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, EntryResponse{
			Card:     e.Card,
			Quantity: e.Quantity,
			Category: e.Category,
		})
	}
	return resp
}

// load fetches a deck owned by the caller. Decks belonging to other users
// are reported as not found.
func (h *DeckHandler) load(w http.ResponseWriter, r *http.Request) (*deck.Deck, bool) {
	deckID := chi.URLParam(r, "deckID")
	record, err := h.decks.GetByID(r.Context(), deckID)
	if err != nil {
		response.InternalError(w, err)
		return nil, false
	}
	if record == nil || record.UserID != h.userID(r.Context()) {
		response.NotFound(w, errors.New("deck not found"))
		return nil, false
	}

	cards, err := h.decks.GetCards(r.Context(), deckID)
	if err != nil {
		response.InternalError(w, err)
		return nil, false
	}
	d, err := storage.BuildDeck(record, cards)
	if err != nil {
		response.InternalError(w, err)
		return nil, false
	}
	return d, true
}

// save persists the deck as a full snapshot.
func (h *DeckHandler) save(ctx context.Context, d *deck.Deck) error {
	record, cards := storage.SnapshotDeck(d, h.userID(ctx), time.Now().UTC())
	return h.decks.Save(ctx, record, cards)
}

// writeRuleError maps deck mutation failures onto HTTP statuses: rule
// rejections are 409, a missing entry is 404.
func writeRuleError(w http.ResponseWriter, err error) {
	switch {
	case deck.IsRuleError(err):
		response.Conflict(w, err)
	case errors.Is(err, deck.ErrEntryNotFound):
		response.NotFound(w, err)
	default:
		response.InternalError(w, err)
	}
}

// ListDecks returns the caller's decks.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.ListByUser(r.Context(), h.userID(r.Context()))
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, decks)
}

// CreateDeckRequest represents a request to create a deck.
type CreateDeckRequest struct {
	Name        string `json:"name"`
	Format      string `json:"format"`
	Description string `json:"description"`
}

// CreateDeck creates a new empty deck.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	d := deck.New()
	d.ID = uuid.NewString()
	if req.Name != "" {
		d.Name = req.Name
	}
	if req.Format != "" {
		format, err := deck.ParseFormat(req.Format)
		if err != nil {
			response.BadRequest(w, err)
			return
		}
		d.Format = format
	}
	d.Description = req.Description

	if err := h.save(r.Context(), d); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Created(w, deckResponse(d))
}

// GetDeck returns a single deck with its entries.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	response.Success(w, deckResponse(d))
}

// UpdateDeckRequest represents a metadata update. Format is fixed at
// creation; entries were checked against it as they were added.
type UpdateDeckRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateDeck updates a deck's metadata.
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	var req UpdateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = *req.Description
	}

	if err := h.save(r.Context(), d); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, deckResponse(d))
}

// DeleteDeck deletes a deck.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.load(w, r); !ok {
		return
	}
	if err := h.decks.Delete(r.Context(), chi.URLParam(r, "deckID")); err != nil {
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}

// AddCardRequest identifies a card to add, by printing or by exact name.
type AddCardRequest struct {
	SetCode         string `json:"set_code,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
	Name            string `json:"name,omitempty"`
}

// AddCard resolves a card and adds one copy to the deck.
func (h *DeckHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	var req AddCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	var card deck.Card
	var err error
	switch {
	case req.SetCode != "" && req.CollectorNumber != "":
		card, err = h.cards.GetBySetNumber(r.Context(), req.SetCode, req.CollectorNumber)
	case req.Name != "":
		card, err = h.cards.GetByName(r.Context(), req.Name)
	default:
		response.BadRequest(w, errors.New("set_code/collector_number or name is required"))
		return
	}
	if err != nil {
		response.BadGateway(w, err)
		return
	}

	if err := d.AddCard(card); err != nil {
		writeRuleError(w, err)
		return
	}
	if err := h.save(r.Context(), d); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, deckResponse(d))
}

// UpdateQuantityRequest adjusts an entry's count by a signed delta.
type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

// UpdateQuantity adjusts the quantity of a card already in the deck.
func (h *DeckHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	if err := d.UpdateQuantity(chi.URLParam(r, "cardID"), req.Delta); err != nil {
		writeRuleError(w, err)
		return
	}
	if err := h.save(r.Context(), d); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, deckResponse(d))
}

// RemoveCard removes a card from the deck entirely.
func (h *DeckHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	d.RemoveCard(chi.URLParam(r, "cardID"))
	if err := h.save(r.Context(), d); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, deckResponse(d))
}

// ClearDeck empties the deck and resets its metadata.
func (h *DeckHandler) ClearDeck(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	d.Clear()
	if err := h.save(r.Context(), d); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, deckResponse(d))
}

// GetDeckStats returns the deck's aggregate statistics.
func (h *DeckHandler) GetDeckStats(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	response.Success(w, d.Statistics())
}

// ExportDeck returns the deck as grouped plain text.
func (h *DeckHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(d.Export()))
}

// GetDeckCurve renders the deck's mana curve as an HTML chart.
func (h *DeckHandler) GetDeckCurve(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	stats := d.Statistics()
	config := charts.DefaultChartConfig()
	config.Title = fmt.Sprintf("%s: Mana Curve", d.Name)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderManaCurve(&stats, config, w); err != nil {
		response.InternalError(w, err)
	}
}

// ImportDeckRequest carries a pasted deck list.
type ImportDeckRequest struct {
	Name     string `json:"name"`
	Format   string `json:"format"`
	DeckList string `json:"deck_list"`
}

// ImportDeckResponse is the created deck plus parser and resolution
// warnings.
type ImportDeckResponse struct {
	Deck     *DeckResponse `json:"deck"`
	Warnings []string      `json:"warnings,omitempty"`
}

// ImportDeck parses a pasted deck list, resolves each card through the
// catalog, and creates a deck from the result. Lines that cannot be parsed,
// resolved, or legally added become warnings rather than failing the
// import.
func (h *DeckHandler) ImportDeck(w http.ResponseWriter, r *http.Request) {
	var req ImportDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	parsed, err := deckimport.Parse(req.DeckList)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	d := deck.New()
	d.ID = uuid.NewString()
	if req.Name != "" {
		d.Name = req.Name
	}
	if req.Format != "" {
		format, err := deck.ParseFormat(req.Format)
		if err != nil {
			response.BadRequest(w, err)
			return
		}
		d.Format = format
	}

	warnings := parsed.Warnings
	for _, line := range parsed.Lines {
		var card deck.Card
		var err error
		if line.SetCode != "" && line.CollectorNumber != "" {
			card, err = h.cards.GetBySetNumber(r.Context(), line.SetCode, line.CollectorNumber)
		} else {
			card, err = h.cards.GetByName(r.Context(), line.Name)
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%q not found in catalog", line.Name))
			continue
		}

		for i := 0; i < line.Quantity; i++ {
			var addErr error
			if i == 0 {
				addErr = d.AddCard(card)
			} else {
				addErr = d.UpdateQuantity(card.ID, 1)
			}
			if addErr != nil {
				warnings = append(warnings, fmt.Sprintf("%s: %v", card.Name, addErr))
				break
			}
		}
	}

	if err := h.save(r.Context(), d); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Created(w, ImportDeckResponse{Deck: deckResponse(d), Warnings: warnings})
}
