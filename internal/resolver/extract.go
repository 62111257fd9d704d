package resolver

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	// MaxCandidates caps how many embedded objects are tried per response.
	MaxCandidates = 16

	// maxOpenings caps how many '{' positions the scanner will try to match,
	// so text full of unbalanced braces cannot make the scan quadratic.
	maxOpenings = 4 * MaxCandidates

	// maxScanBytes caps how much response text is scanned for candidates.
	maxScanBytes = 64 << 10
)

// stripFences removes surrounding whitespace and markdown code fences such as
// ```json ... ```.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// scanObjects returns brace-balanced substrings of s in order of their opening
// brace. Braces inside JSON string literals are ignored. Nested objects are
// returned after their parent.
func scanObjects(s string, limit int) []string {
	if len(s) > maxScanBytes {
		s = s[:maxScanBytes]
	}
	var out []string
	start := 0
	for openings := 0; openings < maxOpenings && len(out) < limit; openings++ {
		i := strings.IndexByte(s[start:], '{')
		if i < 0 {
			break
		}
		open := start + i
		if end := matchBrace(s, open); end >= 0 {
			out = append(out, s[open:end+1])
		}
		start = open + 1
	}
	return out
}

// matchBrace returns the index of the brace closing s[open], or -1.
func matchBrace(s string, open int) int {
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// isObject reports whether data, ignoring leading whitespace, starts an object.
func isObject(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	return len(data) > 0 && data[0] == '{'
}

// jsonString decodes raw as a JSON string; ok is false for any other type.
func jsonString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
