package scryfall

import (
	"fmt"
	"strings"

	"github.com/manacart/manacart/internal/deck"
)

// Card mirrors the fields of Scryfall's card object that the storefront
// reads.
type Card struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	ManaCost        string     `json:"mana_cost"`
	CMC             float64    `json:"cmc"`
	TypeLine        string     `json:"type_line"`
	Colors          []string   `json:"colors"`
	ColorIdentity   []string   `json:"color_identity"`
	Set             string     `json:"set"`
	CollectorNumber string     `json:"collector_number"`
	ImageURIs       *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains card image URLs in various sizes.
type ImageURIs struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
	Large  string `json:"large"`
}

// ListResponse is Scryfall's paginated list envelope.
type ListResponse struct {
	Data       []Card `json:"data"`
	HasMore    bool   `json:"has_more"`
	TotalCards int    `json:"total_cards"`
}

// APIError is Scryfall's error object.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scryfall API error (%d %s): %s", e.Status, e.Code, e.Details)
}

// NotFoundError indicates the requested resource does not exist.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// ToDeckCard converts a wire card to the engine's card record, validating
// the shape the engine assumes.
func (c *Card) ToDeckCard() (deck.Card, error) {
	if strings.TrimSpace(c.ID) == "" {
		return deck.Card{}, fmt.Errorf("card has no id")
	}
	if strings.TrimSpace(c.Name) == "" {
		return deck.Card{}, fmt.Errorf("card %s has no name", c.ID)
	}
	if strings.TrimSpace(c.TypeLine) == "" {
		return deck.Card{}, fmt.Errorf("card %q has no type line", c.Name)
	}
	if c.CMC < 0 {
		return deck.Card{}, fmt.Errorf("card %q has negative mana value %v", c.Name, c.CMC)
	}

	card := deck.Card{
		ID:              c.ID,
		Name:            c.Name,
		ManaCost:        c.ManaCost,
		ManaValue:       c.CMC,
		TypeLine:        c.TypeLine,
		Colors:          c.Colors,
		ColorIdentity:   c.ColorIdentity,
		SetCode:         c.Set,
		CollectorNumber: c.CollectorNumber,
	}
	if c.ImageURIs != nil {
		card.ImageURI = c.ImageURIs.Normal
	}
	return card, nil
}
