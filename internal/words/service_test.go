package words

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khamthai/internal/corpus"
	"khamthai/internal/generation"
	"khamthai/internal/reqid"
	"khamthai/internal/types"
)

type stubGenerator struct {
	mu    sync.Mutex
	out   generation.Outcome
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context) generation.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.out
}

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func testCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New([]types.WordEntry{
		{Word: "บ้าน", Hint: "ที่อยู่อาศัย"},
		{Word: "ครู", Hint: "ผู้ที่สอนหนังสือ"},
	})
	require.NoError(t, err)
	return c
}

func TestGetWord_Generated(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{out: generation.Success(`{"response":"{\"word\":\"ช้าง\",\"hint\":\"สัตว์สัญลักษณ์\"}"}`)}
	var buf bytes.Buffer
	svc := NewService(gen, testCorpus(t), fixedRand(0), zerolog.New(&buf))

	got := svc.GetWord(reqid.With(context.Background(), "req-1"))

	assert.Equal(t, types.WordEntry{Word: "ช้าง", Hint: "สัตว์สัญลักษณ์"}, got.WordEntry)
	assert.Equal(t, types.FromGeneration, got.Source)
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, buf.String(), `"provenance":"generation"`)
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
}

func TestGetWord_FallbackOnFailure(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{out: generation.Failure(generation.NetworkError, errors.New("dial tcp: connection refused"))}
	var buf bytes.Buffer
	c := testCorpus(t)
	svc := NewService(gen, c, fixedRand(1), zerolog.New(&buf))

	got := svc.GetWord(context.Background())

	assert.Equal(t, c.Entries()[1], got.WordEntry)
	assert.Equal(t, types.FromFallback, got.Source)
	assert.Contains(t, buf.String(), `"kind":"network_error"`)
	assert.Contains(t, buf.String(), "connection refused")
}

func TestGetWord_NilGeneratorUsesCorpus(t *testing.T) {
	t.Parallel()

	c := testCorpus(t)
	svc := NewService(nil, c, nil, zerolog.Nop())
	for range 20 {
		got := svc.GetWord(context.Background())
		assert.True(t, c.Contains(got.WordEntry))
		assert.Equal(t, types.FromFallback, got.Source)
	}
}

func TestGetWordExcluding(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{out: generation.Success("not json")}
	svc := NewService(gen, testCorpus(t), fixedRand(0), zerolog.Nop())

	got := svc.GetWordExcluding(context.Background(), []string{"บ้าน"})
	assert.Equal(t, "ครู", got.Word)
	assert.Equal(t, string(generation.MalformedEnvelope), got.Reason)
}

func TestGetWord_Concurrent(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{out: generation.Success(`{"response":"oops"}`)}
	c := testCorpus(t)
	svc := NewService(gen, c, corpus.CryptoRand, zerolog.Nop())

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := svc.GetWord(context.Background())
			assert.True(t, c.Contains(got.WordEntry))
		}()
	}
	wg.Wait()
	assert.Equal(t, 32, gen.calls)
}
