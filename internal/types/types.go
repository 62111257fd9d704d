package types

import (
	"strings"
	"unicode"
)

// WordEntry is one playable round: the word to guess and a hint shown to the player.
type WordEntry struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

// WordList is the on-disk shape of a corpus file.
type WordList struct {
	Words []WordEntry `json:"words"`
}

// NewWordEntry normalizes word and hint and reports whether both are non-empty
// printable text. Format characters such as zero-width spaces are dropped and
// whitespace runs, line breaks included, collapse to a single space.
func NewWordEntry(word, hint string) (WordEntry, bool) {
	entry := WordEntry{Word: normalize(word), Hint: normalize(hint)}
	return entry, entry.Valid()
}

func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Valid reports whether both fields are non-empty and printable.
func (e WordEntry) Valid() bool {
	return isPrintable(e.Word) && isPrintable(e.Hint)
}

func isPrintable(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// Provenance records where a resolved word came from. Logging only.
type Provenance string

const (
	FromGeneration Provenance = "generation"
	FromFallback   Provenance = "fallback"
)

// ResolvedWord is the entry handed to the HTTP layer for one round.
type ResolvedWord struct {
	WordEntry
	Source Provenance
	// Reason is the failure kind that sent the round to the fallback corpus,
	// empty when the word came from generation.
	Reason string
	// ExclusionReset is set when every corpus entry was excluded and the pick
	// was made from the whole corpus again.
	ExclusionReset bool
}
