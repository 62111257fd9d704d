// Package corpus holds the static fallback word list used when the generation
// endpoint cannot produce a playable word.
package corpus

import (
	"crypto/rand"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"khamthai/internal/types"
)

//go:embed words.json
var embeddedWords []byte

// ErrEmptyCorpus is returned when no valid entry survives loading.
var ErrEmptyCorpus = errors.New("corpus: no playable entries")

// Rand returns a uniformly distributed index in [0, n). Implementations must be
// safe for concurrent use.
type Rand interface {
	IntN(n int) int
}

type cryptoRand struct{}

func (cryptoRand) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// CryptoRand draws from crypto/rand.
var CryptoRand Rand = cryptoRand{}

// Corpus is an ordered, read-only list of entries. Safe for concurrent reads.
type Corpus struct {
	entries []types.WordEntry
}

// New builds a corpus from entries, dropping invalid ones.
func New(entries []types.WordEntry) (*Corpus, error) {
	return build(entries, zerolog.Nop())
}

// Load reads a corpus file in the {"words": [...]} format. An empty path loads
// the embedded default list.
func Load(path string, logger zerolog.Logger) (*Corpus, error) {
	data := embeddedWords
	source := "embedded"
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("corpus: read %s: %w", path, err)
		}
		source = path
	}
	logger.Info().Str("source", source).Msg("loading word corpus")
	return Parse(data, logger)
}

// Parse decodes a corpus document.
func Parse(data []byte, logger zerolog.Logger) (*Corpus, error) {
	var wl types.WordList
	if err := json.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("corpus: decode: %w", err)
	}
	return build(wl.Words, logger)
}

func build(entries []types.WordEntry, logger zerolog.Logger) (*Corpus, error) {
	valid := lo.FilterMap(entries, func(e types.WordEntry, i int) (types.WordEntry, bool) {
		entry, ok := types.NewWordEntry(e.Word, e.Hint)
		if !ok {
			logger.Warn().Int("index", i).Str("word", e.Word).Msg("skipping invalid corpus entry")
		}
		return entry, ok
	})
	if len(valid) == 0 {
		return nil, ErrEmptyCorpus
	}
	return &Corpus{entries: valid}, nil
}

// Len returns the number of entries.
func (c *Corpus) Len() int { return len(c.entries) }

// Entries returns a copy of the entries.
func (c *Corpus) Entries() []types.WordEntry { return slices.Clone(c.entries) }

// Contains reports whether e is one of the corpus entries.
func (c *Corpus) Contains(e types.WordEntry) bool { return slices.Contains(c.entries, e) }

// Pick returns an entry chosen uniformly at random.
func (c *Corpus) Pick(rng Rand) types.WordEntry {
	return c.entries[index(rng, len(c.entries))]
}

// PickExcluding picks uniformly among entries whose word is not in exclude.
// When every entry is excluded it picks from the whole corpus and reports reset.
func (c *Corpus) PickExcluding(rng Rand, exclude []string) (types.WordEntry, bool) {
	if len(exclude) == 0 {
		return c.Pick(rng), false
	}
	available := lo.Filter(c.entries, func(e types.WordEntry, _ int) bool {
		return !slices.Contains(exclude, e.Word)
	})
	if len(available) == 0 {
		return c.Pick(rng), true
	}
	return available[index(rng, len(available))], false
}

// index clamps the draw so a misbehaving Rand cannot index out of range.
func index(rng Rand, n int) int {
	if rng == nil {
		rng = CryptoRand
	}
	i := rng.IntN(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}
