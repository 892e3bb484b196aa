package deck

import "math"

// CurveOverflow is the mana-curve bucket that collects every card with mana
// value 7 or higher. It is rendered as "7+" at display boundaries.
const CurveOverflow = 7

// Colorless is the color-count bucket for cards with no colors and no color
// identity.
const Colorless = "Colorless"

// Statistics is a derived snapshot of the deck, recomputed on every call
// and never stored. Recomputation is cheap at the deck-size bounds the
// formats allow.
type Statistics struct {
	TotalCards   int              `json:"total_cards"`
	AvgManaValue float64          `json:"avg_mana_value"`
	ManaCurve    map[int]int      `json:"mana_curve"`
	ColorCount   map[string]int   `json:"color_count"`
	TypeCount    map[Category]int `json:"type_count"`
}

// Statistics computes the deck's aggregate statistics from its current
// entries.
func (d *Deck) Statistics() Statistics {
	stats := Statistics{
		ManaCurve:  make(map[int]int),
		ColorCount: make(map[string]int),
		TypeCount:  make(map[Category]int),
	}

	var weightedManaValue float64
	for _, e := range d.entries {
		qty := e.Quantity
		stats.TotalCards += qty
		weightedManaValue += e.Card.ManaValue * float64(qty)

		bucket := int(e.Card.ManaValue)
		if bucket > CurveOverflow {
			bucket = CurveOverflow
		}
		stats.ManaCurve[bucket] += qty

		colors := e.Card.EffectiveColors()
		if len(colors) == 0 {
			stats.ColorCount[Colorless] += qty
		} else {
			for _, color := range colors {
				stats.ColorCount[color] += qty
			}
		}

		stats.TypeCount[e.Category] += qty
	}

	if stats.TotalCards > 0 {
		stats.AvgManaValue = round2(weightedManaValue / float64(stats.TotalCards))
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
