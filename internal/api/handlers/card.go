package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/manacart/manacart/internal/api/response"
	"github.com/manacart/manacart/internal/scryfall"
)

// CardHandler handles catalog lookups.
type CardHandler struct {
	cards CardLookup
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cards CardLookup) *CardHandler {
	return &CardHandler{cards: cards}
}

// SearchCards runs a catalog search for the q parameter.
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, errors.New("query parameter q is required"))
		return
	}

	cards, err := h.cards.Search(r.Context(), query)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	response.Success(w, cards)
}

// GetCardBySetNumber returns a single printing.
func (h *CardHandler) GetCardBySetNumber(w http.ResponseWriter, r *http.Request) {
	setCode := chi.URLParam(r, "setCode")
	number := chi.URLParam(r, "number")

	card, err := h.cards.GetBySetNumber(r.Context(), setCode, number)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	response.Success(w, card)
}

// GetCardByName returns a card by exact name.
func (h *CardHandler) GetCardByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		response.BadRequest(w, errors.New("card name is required"))
		return
	}

	card, err := h.cards.GetByName(r.Context(), name)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	response.Success(w, card)
}

// writeLookupError distinguishes a card that does not exist from a
// card-data API failure.
func writeLookupError(w http.ResponseWriter, err error) {
	var notFound *scryfall.NotFoundError
	if errors.As(err, &notFound) {
		response.NotFound(w, err)
		return
	}
	response.BadGateway(w, err)
}
