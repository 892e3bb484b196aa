package deck

import (
	"strings"
	"testing"
)

func TestExportGroupsByCategory(t *testing.T) {
	d := New()
	d.Restore([]Entry{
		{Card: Card{ID: "a", Name: "Llanowar Elves", TypeLine: "Creature — Elf Druid"}, Quantity: 2, Category: CategoryCreatures},
		{Card: Card{ID: "b", Name: "Forest", TypeLine: "Basic Land — Forest"}, Quantity: 10, Category: CategoryLands},
	})

	out := d.Export()

	if !strings.Contains(out, "Creatures:\n2 Llanowar Elves\n") {
		t.Errorf("missing creatures section:\n%s", out)
	}
	if !strings.Contains(out, "Lands:\n10 Forest\n") {
		t.Errorf("missing lands section:\n%s", out)
	}
	if !strings.HasSuffix(out, "Total: 12 cards\n") {
		t.Errorf("missing total line:\n%s", out)
	}

	// Creatures section comes before lands.
	if strings.Index(out, "Creatures:") > strings.Index(out, "Lands:") {
		t.Errorf("sections out of order:\n%s", out)
	}
}

func TestExportSkipsEmptyCategories(t *testing.T) {
	d := New()
	d.Restore([]Entry{
		{Card: Card{ID: "a", Name: "Shock", TypeLine: "Instant"}, Quantity: 4, Category: CategoryInstants},
	})

	out := d.Export()
	if strings.Contains(out, "Creatures:") {
		t.Errorf("empty category rendered:\n%s", out)
	}
}

func TestExportEmptyDeck(t *testing.T) {
	d := New()
	out := d.Export()
	if out != "Total: 0 cards\n" {
		t.Errorf("empty deck export = %q", out)
	}
}

func TestExportCommanderFirst(t *testing.T) {
	d := New()
	d.Format = FormatCommander
	d.Restore([]Entry{
		{Card: Card{ID: "a", Name: "Llanowar Elves", TypeLine: "Creature — Elf Druid"}, Quantity: 1, Category: CategoryCreatures},
		{Card: Card{ID: "b", Name: "The General", TypeLine: "Legendary Creature — Human"}, Quantity: 1, Category: CategoryCommander},
	})

	out := d.Export()
	if !strings.HasPrefix(out, "Commander:\n1 The General\n") {
		t.Errorf("commander section should lead the export:\n%s", out)
	}
}
