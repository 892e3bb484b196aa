// Package deck implements the deck-construction engine: format legality
// rules, category classification, derived statistics, and plain-text export.
// The engine is pure in-memory computation; persistence and card lookup are
// collaborators owned by the caller.
package deck

import (
	"errors"
	"fmt"
)

// Defaults applied at construction and after Clear.
const (
	DefaultName   = "Untitled Deck"
	DefaultFormat = FormatStandard
)

// ErrEntryNotFound is returned when an entry-targeted operation names a card
// that is not in the deck. Callers are expected to confirm presence first,
// so this indicates a caller bug rather than a routine rejection.
var ErrEntryNotFound = errors.New("card not in deck")

// RuleError reports a legality rejection: the mutation was refused and the
// deck left unchanged. The reason is a short human-readable notice meant to
// be surfaced to the end user, not a fatal condition.
type RuleError struct {
	Reason string
}

func (e *RuleError) Error() string { return e.Reason }

// IsRuleError reports whether err is a legality rejection.
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}

// Entry is one card in the deck with its quantity and the category it was
// filed under at insertion time. Quantity is always >= 1; an entry that
// would reach zero is removed instead.
type Entry struct {
	Card     Card     `json:"card"`
	Quantity int      `json:"quantity"`
	Category Category `json:"category"`
}

// Deck is an ordered collection of entries, unique by card ID, plus
// metadata. All content mutations go through AddCard, UpdateQuantity,
// RemoveCard and Clear so the format invariants hold after every call.
type Deck struct {
	ID          string
	Name        string
	Format      Format
	Description string

	entries []*Entry
}

// New creates an empty deck with default metadata.
func New() *Deck {
	return &Deck{
		Name:   DefaultName,
		Format: DefaultFormat,
	}
}

// Restore replaces the deck's entries wholesale, e.g. when loading a saved
// snapshot. No legality checks run: the snapshot was legal when it was
// saved, and a load discards any in-flight edits by design of the caller.
func (d *Deck) Restore(entries []Entry) {
	d.entries = make([]*Entry, len(entries))
	for i := range entries {
		e := entries[i]
		d.entries[i] = &e
	}
}

// Entries returns a copy of the deck's entries in insertion order.
func (d *Deck) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	for i, e := range d.entries {
		out[i] = *e
	}
	return out
}

// Entry returns the entry for a card ID, if present.
func (d *Deck) Entry(cardID string) (Entry, bool) {
	if e := d.find(cardID); e != nil {
		return *e, true
	}
	return Entry{}, false
}

// TotalCards returns the sum of all entry quantities.
func (d *Deck) TotalCards() int {
	total := 0
	for _, e := range d.entries {
		total += e.Quantity
	}
	return total
}

// AddCard inserts one copy of the card, or increments an existing entry.
// It returns a *RuleError when the addition would violate the deck limit,
// the single-commander rule, or the format's copy limit.
func (d *Deck) AddCard(card Card) error {
	if d.TotalCards() >= d.Format.Limit() {
		return &RuleError{Reason: "deck full"}
	}

	category := Classify(card, d.Format)
	if category == CategoryCommander && d.hasCommander() {
		return &RuleError{Reason: "commander already present"}
	}

	entry := d.find(card.ID)
	if entry == nil {
		d.entries = append(d.entries, &Entry{Card: card, Quantity: 1, Category: category})
		return nil
	}

	if err := d.checkCopyLimit(entry, 1); err != nil {
		return err
	}
	entry.Quantity++
	return nil
}

// UpdateQuantity changes the quantity of an existing entry by delta. An
// entry whose quantity would drop to zero or below is removed. Increments
// are gated by the deck limit and the format's copy limit; decrements are
// always legal.
func (d *Deck) UpdateQuantity(cardID string, delta int) error {
	entry := d.find(cardID)
	if entry == nil {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, cardID)
	}

	if delta > 0 {
		if d.TotalCards()+delta > d.Format.Limit() {
			return &RuleError{Reason: "deck full"}
		}
		if err := d.checkCopyLimit(entry, delta); err != nil {
			return err
		}
	}

	if entry.Quantity+delta <= 0 {
		d.removeEntry(cardID)
		return nil
	}
	entry.Quantity += delta
	return nil
}

// RemoveCard deletes the entry for a card ID, if present. Removal can never
// violate a limit, so there is no legality check.
func (d *Deck) RemoveCard(cardID string) {
	d.removeEntry(cardID)
}

// Clear removes all entries and resets the metadata to defaults. The
// confirmation step belongs at the caller boundary, not here.
func (d *Deck) Clear() {
	d.entries = nil
	d.Name = DefaultName
	d.Format = DefaultFormat
	d.Description = ""
}

// checkCopyLimit rejects an increment that would push a non-basic-land
// entry past the format's copy limit.
func (d *Deck) checkCopyLimit(entry *Entry, delta int) error {
	if entry.Card.IsBasicLand() {
		return nil
	}
	if entry.Quantity+delta > d.Format.MaxCopies() {
		if d.Format == FormatCommander {
			return &RuleError{Reason: fmt.Sprintf("singleton violation: only one copy of %s allowed", entry.Card.Name)}
		}
		return &RuleError{Reason: fmt.Sprintf("4-copy limit reached for %s", entry.Card.Name)}
	}
	return nil
}

func (d *Deck) hasCommander() bool {
	for _, e := range d.entries {
		if e.Category == CategoryCommander {
			return true
		}
	}
	return false
}

func (d *Deck) find(cardID string) *Entry {
	for _, e := range d.entries {
		if e.Card.ID == cardID {
			return e
		}
	}
	return nil
}

func (d *Deck) removeEntry(cardID string) {
	for i, e := range d.entries {
		if e.Card.ID == cardID {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return
		}
	}
}
