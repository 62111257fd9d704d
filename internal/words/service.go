// Package words serves one playable word per round: a generated word when the
// generation endpoint cooperates, otherwise a word from the static corpus.
package words

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"khamthai/internal/corpus"
	"khamthai/internal/generation"
	"khamthai/internal/reqid"
	"khamthai/internal/resolver"
	"khamthai/internal/types"
)

var errGenerationDisabled = errors.New("generation disabled")

// Generator produces the raw outcome of one generation call.
type Generator interface {
	Generate(ctx context.Context) generation.Outcome
}

// Service is safe for concurrent use; it holds no per-round state.
type Service struct {
	gen    Generator
	corpus *corpus.Corpus
	rng    corpus.Rand
	logger zerolog.Logger
}

// NewService wires the pipeline. A nil gen serves corpus words only.
func NewService(gen Generator, c *corpus.Corpus, rng corpus.Rand, logger zerolog.Logger) *Service {
	if rng == nil {
		rng = corpus.CryptoRand
	}
	return &Service{gen: gen, corpus: c, rng: rng, logger: logger}
}

// Corpus returns the fallback corpus.
func (s *Service) Corpus() *corpus.Corpus { return s.corpus }

// GetWord returns the word for one round. It never fails.
func (s *Service) GetWord(ctx context.Context) types.ResolvedWord {
	return s.GetWordExcluding(ctx, nil)
}

// GetWordExcluding is GetWord with a fallback pick that avoids words the player
// has already completed.
func (s *Service) GetWordExcluding(ctx context.Context, exclude []string) types.ResolvedWord {
	start := time.Now()

	out := generation.Failure(generation.NetworkError, errGenerationDisabled)
	if s.gen != nil {
		out = s.gen.Generate(ctx)
	}
	word := resolver.ResolveExcluding(out, s.corpus, s.rng, exclude)

	ev := s.logger.Info()
	if word.Source == types.FromFallback {
		ev = s.logger.Warn().Str("kind", word.Reason)
		if err := out.Err(); err != nil {
			ev = ev.Err(err)
		}
	}
	if id := reqid.From(ctx); id != "" {
		ev = ev.Str("request_id", id)
	}
	ev.Str("provenance", string(word.Source)).
		Str("word", word.Word).
		Int("excluded", len(exclude)).
		Dur("elapsed", time.Since(start)).
		Msg("word resolved")
	return word
}
