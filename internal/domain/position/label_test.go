package position

import "testing"

func TestFormatLabel(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name     string
		deckName string
		position int
		expected string
	}{
		{name: "single digit is zero padded", deckName: "Spanish", position: 1, expected: "Spanish@00001"},
		{name: "mid range position", deckName: "Spanish", position: 42, expected: "Spanish@00042"},
		{name: "full width position", deckName: "Geo", position: 99999, expected: "Geo@99999"},
		{name: "overflow renders unpadded", deckName: "Geo", position: 123456, expected: "Geo@123456"},
		{name: "deck name with spaces", deckName: "World Capitals", position: 3, expected: "World Capitals@00003"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatLabel(tc.deckName, tc.position); got != tc.expected {
				t.Errorf("Expected label %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestParseLabel(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name         string
		label        string
		expectedDeck string
		expectedPos  int
		expectedOK   bool
	}{
		{name: "round trip", label: "Spanish@00042", expectedDeck: "Spanish", expectedPos: 42, expectedOK: true},
		{name: "unpadded suffix", label: "Spanish@7", expectedDeck: "Spanish", expectedPos: 7, expectedOK: true},
		{name: "deck name containing digits", label: "Top 100@00003", expectedDeck: "Top 100", expectedPos: 3, expectedOK: true},
		{name: "missing separator", label: "Spanish", expectedOK: false},
		{name: "empty deck name", label: "@00001", expectedOK: false},
		{name: "empty suffix", label: "Spanish@", expectedOK: false},
		{name: "non numeric suffix", label: "Spanish@12a4", expectedOK: false},
		{name: "negative-looking suffix", label: "Spanish@-5", expectedOK: false},
		{name: "zero position", label: "Spanish@00000", expectedOK: false},
		{name: "empty label", label: "", expectedOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			deck, pos, ok := ParseLabel(tc.label)
			if ok != tc.expectedOK {
				t.Fatalf("Expected ok=%v, got %v", tc.expectedOK, ok)
			}
			if !tc.expectedOK {
				return
			}
			if deck != tc.expectedDeck {
				t.Errorf("Expected deck %q, got %q", tc.expectedDeck, deck)
			}
			if pos != tc.expectedPos {
				t.Errorf("Expected position %d, got %d", tc.expectedPos, pos)
			}
		})
	}
}

func TestLabelRoundTrip(t *testing.T) {
	t.Parallel() // Enable parallel execution
	for _, position := range []int{1, 9, 10, 99999, 100000} {
		label := FormatLabel("History", position)
		deck, parsed, ok := ParseLabel(label)
		if !ok {
			t.Errorf("Expected %q to parse", label)
			continue
		}
		if deck != "History" || parsed != position {
			t.Errorf("Round trip of %d produced deck %q position %d", position, deck, parsed)
		}
	}
}
