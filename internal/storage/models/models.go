// Package models defines the database records the storage layer reads and
// writes.
package models

import (
	"strings"
	"time"
)

// Deck is a saved deck's metadata, keyed by the owning user.
type Deck struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Format      string    `json:"format"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// DeckCard is one saved deck entry. The card display fields are denormalized
// so a saved deck can be rendered without a fresh card lookup.
type DeckCard struct {
	DeckID          string  `json:"deck_id"`
	CardID          string  `json:"card_id"`
	Name            string  `json:"name"`
	SetCode         string  `json:"set_code"`
	CollectorNumber string  `json:"collector_number"`
	ManaCost        string  `json:"mana_cost"`
	ManaValue       float64 `json:"mana_value"`
	TypeLine        string  `json:"type_line"`
	Colors          string  `json:"colors"`
	ColorIdentity   string  `json:"color_identity"`
	ImageURI        string  `json:"image_uri"`
	Quantity        int     `json:"quantity"`
	Category        string  `json:"category"`
	Position        int     `json:"position"`
}

// Card is a cached card record from the card-data API.
type Card struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ManaCost        string    `json:"mana_cost"`
	ManaValue       float64   `json:"mana_value"`
	TypeLine        string    `json:"type_line"`
	Colors          string    `json:"colors"`
	ColorIdentity   string    `json:"color_identity"`
	SetCode         string    `json:"set_code"`
	CollectorNumber string    `json:"collector_number"`
	ImageURI        string    `json:"image_uri"`
	LastUpdated     time.Time `json:"last_updated"`
}

// Order statuses, in lifecycle order.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusShipped = "shipped"
)

// Order is a checkout order with its quoted totals frozen at creation.
type Order struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Status          string    `json:"status"`
	TotalQty        int       `json:"total_qty"`
	UnitPrice       float64   `json:"unit_price"`
	Subtotal        float64   `json:"subtotal"`
	DiscountCode    string    `json:"discount_code,omitempty"`
	DiscountPercent int       `json:"discount_percent,omitempty"`
	Total           float64   `json:"total"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OrderLine is one card position on an order.
type OrderLine struct {
	OrderID         string  `json:"order_id"`
	CardID          string  `json:"card_id"`
	Name            string  `json:"name"`
	SetCode         string  `json:"set_code"`
	CollectorNumber string  `json:"collector_number"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
}

// DiscountCode is a percent-off code issued from the admin dashboard.
type DiscountCode struct {
	Code      string     `json:"code"`
	Percent   int        `json:"percent"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Usable reports whether the code can be applied at the given time.
func (d *DiscountCode) Usable(now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.ExpiresAt != nil && now.After(*d.ExpiresAt) {
		return false
	}
	return true
}

// JoinColors serializes a color list for storage.
func JoinColors(colors []string) string {
	return strings.Join(colors, ",")
}

// SplitColors parses a stored color list.
func SplitColors(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
