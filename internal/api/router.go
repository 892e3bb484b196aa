package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/manacart/manacart/internal/api/handlers"
	"github.com/manacart/manacart/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Catalog routes are public.
		cardHandler := handlers.NewCardHandler(s.services.Cards)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.SearchCards)
			r.Get("/name/{name}", cardHandler.GetCardByName)
			r.Get("/sets/{setCode}/{number}", cardHandler.GetCardBySetNumber)
		})

		// Deck routes require a caller identity.
		deckHandler := handlers.NewDeckHandler(s.services.Decks, s.services.Cards, UserID)
		r.Route("/decks", func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/", deckHandler.ListDecks)
			r.Post("/", deckHandler.CreateDeck)
			r.Post("/import", deckHandler.ImportDeck)
			r.Get("/{deckID}", deckHandler.GetDeck)
			r.Put("/{deckID}", deckHandler.UpdateDeck)
			r.Delete("/{deckID}", deckHandler.DeleteDeck)
			r.Post("/{deckID}/cards", deckHandler.AddCard)
			r.Put("/{deckID}/cards/{cardID}", deckHandler.UpdateQuantity)
			r.Delete("/{deckID}/cards/{cardID}", deckHandler.RemoveCard)
			r.Post("/{deckID}/clear", deckHandler.ClearDeck)
			r.Get("/{deckID}/stats", deckHandler.GetDeckStats)
			r.Get("/{deckID}/export", deckHandler.ExportDeck)
			r.Get("/{deckID}/curve", deckHandler.GetDeckCurve)
		})

		// Checkout routes.
		checkoutHandler := handlers.NewCheckoutHandler(s.services.Checkout, s.services.Decks, UserID)
		r.Route("/checkout", func(r chi.Router) {
			r.With(requireUser).Post("/quote", checkoutHandler.Quote)
			r.With(requireUser).Post("/orders", checkoutHandler.CreateOrder)
			r.With(requireUser).Get("/orders/{orderID}", checkoutHandler.GetOrder)

			// Payment webhook: authenticated by the provider's signed
			// callback URL, not by a user session.
			r.Post("/orders/{orderID}/payment", checkoutHandler.ConfirmPayment)
		})

		// Admin routes.
		adminHandler := handlers.NewAdminHandler(s.services.Checkout, s.services.Discounts, s.services.Backups)
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/orders", adminHandler.ListOrders)
			r.Get("/orders/{orderID}", adminHandler.GetOrder)
			r.Post("/orders/{orderID}/fulfill", adminHandler.FulfillOrder)
			r.Get("/discounts", adminHandler.ListDiscounts)
			r.Post("/discounts", adminHandler.CreateDiscount)
			r.Delete("/discounts/{code}", adminHandler.DeactivateDiscount)
			r.Post("/backup", adminHandler.CreateBackup)
		})
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "manacart-api",
	})
}
