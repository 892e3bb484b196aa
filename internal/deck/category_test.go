package deck

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		typeLine string
		format   Format
		want     Category
	}{
		{"legendary creature in commander", "Legendary Creature — Human Wizard", FormatCommander, CategoryCommander},
		{"legendary creature in standard", "Legendary Creature — Human Wizard", FormatStandard, CategoryCreatures},
		{"plain creature", "Creature — Elf Druid", FormatCommander, CategoryCreatures},
		{"artifact creature is a creature", "Artifact Creature — Golem", FormatStandard, CategoryCreatures},
		{"legendary artifact creature in commander", "Legendary Artifact Creature — Golem", FormatCommander, CategoryCommander},
		{"planeswalker", "Legendary Planeswalker — Jace", FormatStandard, CategoryPlaneswalkers},
		{"instant", "Instant", FormatModern, CategoryInstants},
		{"sorcery", "Sorcery", FormatLegacy, CategorySorceries},
		{"artifact", "Artifact — Equipment", FormatVintage, CategoryArtifacts},
		{"enchantment", "Enchantment — Aura", FormatStandard, CategoryEnchantments},
		{"land", "Basic Land — Forest", FormatStandard, CategoryLands},
		{"case insensitive", "LEGENDARY CREATURE — DRAGON", FormatCommander, CategoryCommander},
		{"unmatched type line", "Conspiracy", FormatStandard, CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(Card{TypeLine: tt.typeLine}, tt.format)
			if got != tt.want {
				t.Errorf("Classify(%q, %s) = %s, want %s", tt.typeLine, tt.format, got, tt.want)
			}
		})
	}
}

func TestIsBasicLand(t *testing.T) {
	basic := Card{TypeLine: "Basic Land — Mountain"}
	if !basic.IsBasicLand() {
		t.Error("expected basic land to be detected")
	}

	nonBasic := Card{TypeLine: "Land — Gate"}
	if nonBasic.IsBasicLand() {
		t.Error("non-basic land should not count as basic")
	}

	creature := Card{TypeLine: "Creature — Basilisk"}
	if creature.IsBasicLand() {
		t.Error("creature should not count as basic land")
	}
}
