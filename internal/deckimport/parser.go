// Package deckimport parses pasted deck lists into card lines the catalog
// can resolve.
package deckimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Line is one parsed card line.
type Line struct {
	Quantity        int    `json:"quantity"`
	Name            string `json:"name"`
	SetCode         string `json:"set_code,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
}

// Result holds the parsed lines plus warnings for anything skipped. A
// partially readable list still imports; unreadable lines become warnings.
type Result struct {
	Lines    []Line   `json:"lines"`
	Warnings []string `json:"warnings,omitempty"`
}

// Arena-style line: "4 Lightning Bolt (M21) 123", set and number optional.
var arenaLine = regexp.MustCompile(`^(\d+)x?\s+([^(]+?)(?:\s+\(([A-Za-z0-9]+)\)(?:\s+(\w+))?)?$`)

// Suffix count: "Lightning Bolt x4".
var suffixLine = regexp.MustCompile(`^(.+?)\s+x(\d+)$`)

// Parse reads a pasted deck list. It accepts "4 Card Name", "4x Card Name",
// "Card Name x4", and the Arena export format with set code and collector
// number. A "Deck" header is skipped; everything after a "Sideboard" marker
// or a blank-line break is ignored, since a cart has no sideboard.
func Parse(input string) (*Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty deck list")
	}

	result := &Result{}
	sawCards := false
	inSideboard := false

	for i, raw := range strings.Split(input, "\n") {
		line := strings.TrimSpace(raw)

		if line == "" {
			// Arena exports separate the sideboard with a blank line.
			if sawCards && !inSideboard {
				inSideboard = true
				result.Warnings = append(result.Warnings, "sideboard section ignored")
			}
			continue
		}
		if strings.EqualFold(line, "Deck") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "sideboard") {
			if !inSideboard {
				inSideboard = true
				result.Warnings = append(result.Warnings, "sideboard section ignored")
			}
			continue
		}
		if inSideboard {
			continue
		}

		parsed, ok := parseLine(line)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: could not parse %q", i+1, line))
			continue
		}
		if parsed.Quantity <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: quantity must be positive", i+1))
			continue
		}
		result.Lines = append(result.Lines, parsed)
		sawCards = true
	}

	if len(result.Lines) == 0 {
		return nil, fmt.Errorf("no cards found in deck list")
	}
	return result, nil
}

func parseLine(line string) (Line, bool) {
	if m := arenaLine.FindStringSubmatch(line); m != nil {
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			return Line{}, false
		}
		return Line{
			Quantity:        qty,
			Name:            strings.TrimSpace(m[2]),
			SetCode:         strings.ToLower(m[3]),
			CollectorNumber: m[4],
		}, true
	}
	if m := suffixLine.FindStringSubmatch(line); m != nil {
		qty, err := strconv.Atoi(m[2])
		if err != nil {
			return Line{}, false
		}
		return Line{Quantity: qty, Name: strings.TrimSpace(m[1])}, true
	}
	return Line{}, false
}
