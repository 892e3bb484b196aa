package deck

import (
	"fmt"
	"strings"
)

// CategoryOrder fixes the section order used by exports and displays.
var CategoryOrder = []Category{
	CategoryCommander,
	CategoryCreatures,
	CategoryPlaneswalkers,
	CategoryInstants,
	CategorySorceries,
	CategoryArtifacts,
	CategoryEnchantments,
	CategoryLands,
	CategoryOther,
}

var categoryHeadings = map[Category]string{
	CategoryCommander:     "Commander",
	CategoryCreatures:     "Creatures",
	CategoryPlaneswalkers: "Planeswalkers",
	CategoryInstants:      "Instants",
	CategorySorceries:     "Sorceries",
	CategoryArtifacts:     "Artifacts",
	CategoryEnchantments:  "Enchantments",
	CategoryLands:         "Lands",
	CategoryOther:         "Other",
}

// Heading returns the display heading for a category.
func (c Category) Heading() string {
	if h, ok := categoryHeadings[c]; ok {
		return h
	}
	return string(c)
}

// Export renders the deck as a plain-text list: entries grouped by category
// under "<Category>:" headings, one "<quantity> <card name>" line per entry,
// and a trailing total line. This serialization is one-way; no import is
// defined for it.
func (d *Deck) Export() string {
	var sb strings.Builder

	for _, category := range CategoryOrder {
		var section []*Entry
		for _, e := range d.entries {
			if e.Category == category {
				section = append(section, e)
			}
		}
		if len(section) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "%s:\n", category.Heading())
		for _, e := range section {
			fmt.Fprintf(&sb, "%d %s\n", e.Quantity, e.Card.Name)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Total: %d cards\n", d.TotalCards())
	return sb.String()
}
