package resolver

import (
	"encoding/json"

	"khamthai/internal/corpus"
	"khamthai/internal/generation"
	"khamthai/internal/types"
)

// envelopeField holds the model's generated text in an Ollama /api/generate reply.
const envelopeField = "response"

// candidate is the loosely typed shape of a word object. Fields stay raw so a
// non-string value is a validation failure rather than a decode error.
type candidate struct {
	Word       json.RawMessage `json:"word"`
	Hint       json.RawMessage `json:"hint"`
	Definition json.RawMessage `json:"definition"`
}

// stageResult is the value every parse stage hands to the next: an entry on
// success, otherwise the kind of failure.
type stageResult struct {
	entry types.WordEntry
	kind  generation.FailureKind
}

func ok(e types.WordEntry) stageResult          { return stageResult{entry: e} }
func fail(k generation.FailureKind) stageResult { return stageResult{kind: k} }
func (r stageResult) succeeded() bool           { return r.kind == "" }

// Resolve returns a playable word for the outcome. It never fails.
func Resolve(out generation.Outcome, c *corpus.Corpus, rng corpus.Rand) types.ResolvedWord {
	return ResolveExcluding(out, c, rng, nil)
}

// ResolveExcluding is Resolve with a fallback pick that avoids the given words
// while any other corpus entry remains.
func ResolveExcluding(out generation.Outcome, c *corpus.Corpus, rng corpus.Rand, exclude []string) types.ResolvedWord {
	res := Extract(out)
	if res.succeeded() {
		return types.ResolvedWord{WordEntry: res.entry, Source: types.FromGeneration}
	}
	entry, reset := c.PickExcluding(rng, exclude)
	return types.ResolvedWord{WordEntry: entry, Source: types.FromFallback, Reason: string(res.kind), ExclusionReset: reset}
}

// Extract runs the parse stages without falling back. The returned kind is
// empty when entry is usable.
func Extract(out generation.Outcome) (types.WordEntry, generation.FailureKind) {
	res := extract(out)
	return res.entry, res.kind
}

func extract(out generation.Outcome) stageResult {
	if !out.OK() {
		return fail(out.Kind())
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out.Text()), &envelope); err != nil || envelope == nil {
		return fail(generation.MalformedEnvelope)
	}

	field, found := envelope[envelopeField]
	if !found {
		return fail(generation.UnrecoverableContent)
	}
	if isObject(field) {
		return fromText(string(field))
	}
	text, isString := jsonString(field)
	if !isString {
		return fail(generation.UnrecoverableContent)
	}
	return fromText(text)
}

// fromText tries the whole text first, then each embedded object. A whole-text
// object with bad fields may still wrap a usable one, so scanning continues.
func fromText(text string) stageResult {
	kind := generation.UnrecoverableContent
	if direct := stripFences(text); isObject([]byte(direct)) {
		res := fromObject([]byte(direct))
		if res.succeeded() {
			return res
		}
		if res.kind == generation.InvalidFields {
			kind = generation.InvalidFields
		}
	}

	for _, c := range scanObjects(text, MaxCandidates) {
		res := fromObject([]byte(stripFences(c)))
		if res.succeeded() {
			return res
		}
		if res.kind == generation.InvalidFields {
			kind = generation.InvalidFields
		}
	}
	return fail(kind)
}

// fromObject decodes one JSON object and validates it. A decode failure is
// UnrecoverableContent; a decoded object with bad fields is InvalidFields.
func fromObject(data []byte) stageResult {
	if !isObject(data) {
		return fail(generation.UnrecoverableContent)
	}
	var c candidate
	if err := json.Unmarshal(data, &c); err != nil {
		return fail(generation.UnrecoverableContent)
	}
	return validate(c)
}

// validate requires a non-empty word and a non-empty hint, taking definition
// when hint is absent or empty.
func validate(c candidate) stageResult {
	word, isString := jsonString(c.Word)
	if !isString {
		return fail(generation.InvalidFields)
	}
	hint, isString := jsonString(c.Hint)
	if entry, valid := types.NewWordEntry(word, hint); isString && valid {
		return ok(entry)
	}
	definition, isString := jsonString(c.Definition)
	if entry, valid := types.NewWordEntry(word, definition); isString && valid {
		return ok(entry)
	}
	return fail(generation.InvalidFields)
}
