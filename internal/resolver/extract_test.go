package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  {\"a\":1}  ":                 `{"a":1}`,
		"```json\n{\"a\":1}\n```":       `{"a":1}`,
		"```\n{\"a\":1}```":             `{"a":1}`,
		"```{\"a\":1}```":               `{"a":1}`,
		"plain":                         "plain",
		"":                              "",
		"```":                           "",
		"```json\n  {\"a\":1}  \n```\n": `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, stripFences(in), "input %q", in)
	}
}

func TestScanObjects(t *testing.T) {
	t.Parallel()

	got := scanObjects(`a {"x":{"y":1}} b {"z":"}"} c {unclosed`, MaxCandidates)
	assert.Equal(t, []string{`{"x":{"y":1}}`, `{"y":1}`, `{"z":"}"}`}, got)

	assert.Empty(t, scanObjects("no braces here", MaxCandidates))
	assert.Empty(t, scanObjects("} only closing {", MaxCandidates))
}

func TestScanObjects_EscapedQuotes(t *testing.T) {
	t.Parallel()

	got := scanObjects(`{"a":"he said \"}\" loudly"} tail`, MaxCandidates)
	assert.Equal(t, []string{`{"a":"he said \"}\" loudly"}`}, got)
}

func TestScanObjects_Bounded(t *testing.T) {
	t.Parallel()

	many := strings.Repeat("{} ", 1000)
	assert.Len(t, scanObjects(many, MaxCandidates), MaxCandidates)

	unbalanced := strings.Repeat("{", 100000) + "}"
	got := scanObjects(unbalanced, MaxCandidates)
	assert.Empty(t, got)
}

func TestMatchBrace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, matchBrace("{}", 0))
	assert.Equal(t, 7, matchBrace(`{"a":{}}`, 0))
	assert.Equal(t, -1, matchBrace(`{"a":"}`, 0))
}
