// Package pricing computes the storefront's volume-tier unit prices. The
// tier table is a pure step function over total quantity; totals are only
// rounded at the point of charge.
package pricing

import (
	"fmt"
	"math"
	"sort"
)

// Tier maps a minimum total quantity to the unit price charged once an
// order reaches it.
type Tier struct {
	MinQty    int     `json:"min_qty" toml:"min_qty"`
	UnitPrice float64 `json:"unit_price" toml:"unit_price"`
}

// Default storefront ladder. Below the lowest threshold the base price
// applies.
var defaultTiers = []Tier{
	{MinQty: 50, UnitPrice: 0.75},
	{MinQty: 40, UnitPrice: 1.00},
	{MinQty: 9, UnitPrice: 1.50},
}

// DefaultBasePrice is the unit price below every volume threshold.
const DefaultBasePrice = 2.00

// Table is an immutable tier table, evaluated highest threshold first.
type Table struct {
	tiers []Tier
	base  float64
}

// Default returns the storefront's standard tier table.
func Default() *Table {
	table, err := NewTable(defaultTiers, DefaultBasePrice)
	if err != nil {
		// The built-in ladder is statically valid.
		panic(err)
	}
	return table
}

// NewTable builds a tier table from a tier ladder and a base price. Tiers
// may be given in any order; thresholds must be positive and unique, and
// every price must be positive.
func NewTable(tiers []Tier, basePrice float64) (*Table, error) {
	if basePrice <= 0 {
		return nil, fmt.Errorf("base price must be positive, got %v", basePrice)
	}

	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinQty > sorted[j].MinQty })

	for i, tier := range sorted {
		if tier.MinQty <= 0 {
			return nil, fmt.Errorf("tier threshold must be positive, got %d", tier.MinQty)
		}
		if tier.UnitPrice <= 0 {
			return nil, fmt.Errorf("tier price must be positive, got %v", tier.UnitPrice)
		}
		if i > 0 && sorted[i-1].MinQty == tier.MinQty {
			return nil, fmt.Errorf("duplicate tier threshold %d", tier.MinQty)
		}
	}

	return &Table{tiers: sorted, base: basePrice}, nil
}

// Tiers returns the ladder in descending threshold order.
func (t *Table) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// BasePrice returns the unit price below every threshold.
func (t *Table) BasePrice() float64 { return t.base }

// UnitPrice returns the per-card price for an order of totalQty cards.
func (t *Table) UnitPrice(totalQty int) float64 {
	for _, tier := range t.tiers {
		if totalQty >= tier.MinQty {
			return tier.UnitPrice
		}
	}
	return t.base
}

// Total returns unit price times quantity, rounded to two decimal places.
// This is the only place a pricing amount is rounded.
func (t *Table) Total(totalQty int) float64 {
	return Round2(t.UnitPrice(totalQty) * float64(totalQty))
}

// Round2 rounds a currency amount to two decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
