package position

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelSeparator separates the deck name from the numeric part of a
// position label.
const LabelSeparator = "@"

// labelWidth is the zero-padded width of the numeric part. Positions
// needing more digits render unpadded.
const labelWidth = 5

// FormatLabel renders a position as its human-readable label, for
// example FormatLabel("Spanish", 42) == "Spanish@00042". Labels sort
// lexically in position order within a deck as long as positions stay
// below 10^labelWidth.
func FormatLabel(deckName string, position int) string {
	return fmt.Sprintf("%s%s%0*d", deckName, LabelSeparator, labelWidth, position)
}

// ParseLabel splits a label into its deck name and position. The split
// happens at the last separator, so deck names containing the separator
// stay intact. ok is false when the separator is missing, the deck name
// is empty, or the suffix is not a positive integer.
func ParseLabel(label string) (deckName string, position int, ok bool) {
	i := strings.LastIndex(label, LabelSeparator)
	if i <= 0 {
		return "", 0, false
	}

	digits := label[i+len(LabelSeparator):]
	if digits == "" {
		return "", 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return "", 0, false
	}

	return label[:i], n, true
}
