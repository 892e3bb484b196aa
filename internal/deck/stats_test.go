package deck

import "testing"

func TestStatisticsEmptyDeck(t *testing.T) {
	d := New()
	stats := d.Statistics()

	if stats.TotalCards != 0 {
		t.Errorf("TotalCards = %d, want 0", stats.TotalCards)
	}
	if stats.AvgManaValue != 0 {
		t.Errorf("AvgManaValue = %v, want 0", stats.AvgManaValue)
	}
	if len(stats.ManaCurve) != 0 {
		t.Errorf("ManaCurve = %v, want empty", stats.ManaCurve)
	}
}

func TestStatisticsAggregation(t *testing.T) {
	d := New()
	d.Restore([]Entry{
		{
			Card:     Card{ID: "a", Name: "Grizzly Bears", TypeLine: "Creature — Bear", ManaValue: 2, Colors: []string{"G"}},
			Quantity: 3,
			Category: CategoryCreatures,
		},
		{
			Card:     Card{ID: "b", Name: "Dream Eater", TypeLine: "Creature — Nightmare Sphinx", ManaValue: 5, Colors: []string{"U", "B"}},
			Quantity: 1,
			Category: CategoryCreatures,
		},
	})

	stats := d.Statistics()

	if stats.TotalCards != 4 {
		t.Errorf("TotalCards = %d, want 4", stats.TotalCards)
	}
	// (3*2 + 1*5) / 4 = 2.75
	if stats.AvgManaValue != 2.75 {
		t.Errorf("AvgManaValue = %v, want 2.75", stats.AvgManaValue)
	}
	if stats.ManaCurve[2] != 3 || stats.ManaCurve[5] != 1 {
		t.Errorf("ManaCurve = %v, want {2:3 5:1}", stats.ManaCurve)
	}
	if len(stats.ManaCurve) != 2 {
		t.Errorf("ManaCurve has extra buckets: %v", stats.ManaCurve)
	}
	if stats.ColorCount["G"] != 3 || stats.ColorCount["U"] != 1 || stats.ColorCount["B"] != 1 {
		t.Errorf("ColorCount = %v", stats.ColorCount)
	}
	if stats.TypeCount[CategoryCreatures] != 4 {
		t.Errorf("TypeCount = %v", stats.TypeCount)
	}
}

func TestStatisticsCurveOverflowBucket(t *testing.T) {
	d := New()
	d.Restore([]Entry{
		{Card: Card{ID: "a", Name: "Big Spell", TypeLine: "Sorcery", ManaValue: 7}, Quantity: 2, Category: CategorySorceries},
		{Card: Card{ID: "b", Name: "Bigger Spell", TypeLine: "Sorcery", ManaValue: 10}, Quantity: 1, Category: CategorySorceries},
	})

	stats := d.Statistics()
	if stats.ManaCurve[CurveOverflow] != 3 {
		t.Errorf("overflow bucket = %d, want 3", stats.ManaCurve[CurveOverflow])
	}
}

func TestStatisticsColorIdentityFallback(t *testing.T) {
	d := New()
	d.Restore([]Entry{
		// Colorless spell with a colored identity: identity is the fallback.
		{Card: Card{ID: "a", Name: "Commander's Sword", TypeLine: "Artifact", ManaValue: 2, ColorIdentity: []string{"W"}}, Quantity: 1, Category: CategoryArtifacts},
		// Truly colorless card.
		{Card: Card{ID: "b", Name: "Wastes", TypeLine: "Basic Land — Wastes", ManaValue: 0}, Quantity: 2, Category: CategoryLands},
		// Colored card: identity must not be double counted.
		{Card: Card{ID: "c", Name: "Llanowar Elves", TypeLine: "Creature — Elf Druid", ManaValue: 1, Colors: []string{"G"}, ColorIdentity: []string{"G"}}, Quantity: 1, Category: CategoryCreatures},
	})

	stats := d.Statistics()
	if stats.ColorCount["W"] != 1 {
		t.Errorf("W = %d, want 1 (identity fallback)", stats.ColorCount["W"])
	}
	if stats.ColorCount[Colorless] != 2 {
		t.Errorf("Colorless = %d, want 2", stats.ColorCount[Colorless])
	}
	if stats.ColorCount["G"] != 1 {
		t.Errorf("G = %d, want 1", stats.ColorCount["G"])
	}
}

func TestStatisticsAverageRounding(t *testing.T) {
	d := New()
	d.Restore([]Entry{
		{Card: Card{ID: "a", Name: "One Drop", TypeLine: "Instant", ManaValue: 1}, Quantity: 1, Category: CategoryInstants},
		{Card: Card{ID: "b", Name: "Two Drop", TypeLine: "Instant", ManaValue: 2}, Quantity: 2, Category: CategoryInstants},
	})

	// 5/3 = 1.666... rounds to 1.67
	stats := d.Statistics()
	if stats.AvgManaValue != 1.67 {
		t.Errorf("AvgManaValue = %v, want 1.67", stats.AvgManaValue)
	}
}
