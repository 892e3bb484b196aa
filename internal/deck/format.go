package deck

import "fmt"

// Format is a named rule set governing deck size and per-card copy limits.
type Format string

const (
	FormatCommander Format = "commander"
	FormatStandard  Format = "standard"
	FormatModern    Format = "modern"
	FormatLegacy    Format = "legacy"
	FormatVintage   Format = "vintage"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCommander, FormatStandard, FormatModern, FormatLegacy, FormatVintage:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format: %q", s)
}

// Limit returns the maximum total number of cards the format allows.
func (f Format) Limit() int {
	if f == FormatCommander {
		return 100
	}
	return 60
}

// MaxCopies returns the per-card copy limit for non-basic-land cards.
// Commander is singleton; every other format allows four copies.
func (f Format) MaxCopies() int {
	if f == FormatCommander {
		return 1
	}
	return 4
}
