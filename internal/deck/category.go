package deck

import "strings"

// Category is the mutually exclusive section a card is filed under.
// It is assigned when the entry is created and never recomputed.
type Category string

const (
	CategoryCommander     Category = "commander"
	CategoryCreatures     Category = "creatures"
	CategoryPlaneswalkers Category = "planeswalkers"
	CategoryInstants      Category = "instants"
	CategorySorceries     Category = "sorceries"
	CategoryArtifacts     Category = "artifacts"
	CategoryEnchantments  Category = "enchantments"
	CategoryLands         Category = "lands"
	CategoryOther         Category = "other"
)

// Classify determines a card's category from its type line. The checks run
// as an ordered decision list because a type line can match several
// predicates (a legendary artifact creature is a creature first).
func Classify(card Card, format Format) Category {
	typeLine := strings.ToLower(card.TypeLine)

	isCreature := strings.Contains(typeLine, "creature")
	if format == FormatCommander && isCreature && strings.Contains(typeLine, "legendary") {
		return CategoryCommander
	}

	switch {
	case isCreature:
		return CategoryCreatures
	case strings.Contains(typeLine, "planeswalker"):
		return CategoryPlaneswalkers
	case strings.Contains(typeLine, "instant"):
		return CategoryInstants
	case strings.Contains(typeLine, "sorcery"):
		return CategorySorceries
	case strings.Contains(typeLine, "artifact"):
		return CategoryArtifacts
	case strings.Contains(typeLine, "enchantment"):
		return CategoryEnchantments
	case strings.Contains(typeLine, "land"):
		return CategoryLands
	}
	return CategoryOther
}
