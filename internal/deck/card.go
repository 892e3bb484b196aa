package deck

import "strings"

// Card holds the card metadata the deck engine reads. Records are produced
// and validated by the card-lookup layer; the engine treats them as
// read-only.
type Card struct {
	// Scryfall card ID (primary identifier)
	ID string `json:"id"`

	Name     string `json:"name"`
	TypeLine string `json:"type_line"`

	// Mana information
	ManaCost  string  `json:"mana_cost"`
	ManaValue float64 `json:"mana_value"`

	// Colors and identity, symbols from {W, U, B, R, G}
	Colors        []string `json:"colors"`
	ColorIdentity []string `json:"color_identity"`

	// Printing metadata
	SetCode         string `json:"set_code"`
	CollectorNumber string `json:"collector_number"`
	ImageURI        string `json:"image_uri,omitempty"`
}

// EffectiveColors returns the card's colors, falling back to color identity
// when the color set is empty. Color identity is never summed in addition to
// the primary colors.
func (c *Card) EffectiveColors() []string {
	if len(c.Colors) > 0 {
		return c.Colors
	}
	return c.ColorIdentity
}

// IsBasicLand reports whether the card is a basic land. Basic lands are
// exempt from per-card copy limits in every format.
func (c *Card) IsBasicLand() bool {
	typeLine := strings.ToLower(c.TypeLine)
	return strings.Contains(typeLine, "basic") && strings.Contains(typeLine, "land")
}
