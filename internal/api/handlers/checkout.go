package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/manacart/manacart/internal/api/response"
	"github.com/manacart/manacart/internal/checkout"
	"github.com/manacart/manacart/internal/deck"
	"github.com/manacart/manacart/internal/storage"
	"github.com/manacart/manacart/internal/storage/models"
	"github.com/manacart/manacart/internal/storage/repository"
)

// CheckoutHandler handles quotes and the customer-facing order surface.
type CheckoutHandler struct {
	checkout *checkout.Service
	decks    repository.DeckRepository
	userID   UserIDFunc
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(svc *checkout.Service, decks repository.DeckRepository, userID UserIDFunc) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, decks: decks, userID: userID}
}

// QuoteRequest asks for a price on a deck, or on a bare quantity when no
// deck has been saved yet.
type QuoteRequest struct {
	DeckID       string `json:"deck_id,omitempty"`
	TotalQty     int    `json:"total_qty,omitempty"`
	DiscountCode string `json:"discount_code,omitempty"`
}

// Quote prices a cart without creating an order.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	qty := req.TotalQty
	if req.DeckID != "" {
		d, ok := h.loadDeck(w, r, req.DeckID)
		if !ok {
			return
		}
		qty = d.TotalCards()
	}

	quote, err := h.checkout.Quote(r.Context(), qty, req.DiscountCode)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	response.Success(w, quote)
}

// CreateOrderRequest turns a saved deck into an order.
type CreateOrderRequest struct {
	DeckID       string `json:"deck_id"`
	DiscountCode string `json:"discount_code,omitempty"`
}

// CreateOrder creates a pending order from a saved deck.
func (h *CheckoutHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.DeckID == "" {
		response.BadRequest(w, errors.New("deck_id is required"))
		return
	}

	d, ok := h.loadDeck(w, r, req.DeckID)
	if !ok {
		return
	}

	order, err := h.checkout.CreateOrder(r.Context(), h.userID(r.Context()), d, req.DiscountCode)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	response.Created(w, order)
}

// OrderResponse is an order with its lines.
type OrderResponse struct {
	Order *models.Order       `json:"order"`
	Lines []*models.OrderLine `json:"lines"`
}

// GetOrder returns one of the caller's orders.
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, lines, err := h.checkout.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	if order.UserID != h.userID(r.Context()) {
		response.NotFound(w, checkout.ErrOrderNotFound)
		return
	}
	response.Success(w, OrderResponse{Order: order, Lines: lines})
}

// ConfirmPayment is the payment provider's webhook. It is idempotent, so
// provider retries are safe.
func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.ConfirmPayment(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	response.Success(w, order)
}

func (h *CheckoutHandler) loadDeck(w http.ResponseWriter, r *http.Request, deckID string) (*deck.Deck, bool) {
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
	built, err := storage.BuildDeck(record, cards)
	if err != nil {
		response.InternalError(w, err)
		return nil, false
	}
	return built, true
}

// writeCheckoutError maps checkout failures onto HTTP statuses.
func writeCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrOrderNotFound):
		response.NotFound(w, err)
	case errors.Is(err, checkout.ErrEmptyOrder),
		errors.Is(err, checkout.ErrInvalidDiscount):
		response.UnprocessableEntity(w, err)
	case errors.Is(err, checkout.ErrNotPaid):
		response.Conflict(w, err)
	default:
		response.InternalError(w, err)
	}
}
