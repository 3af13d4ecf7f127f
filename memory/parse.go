package memory

import (
	"encoding/json"
	"regexp"
	"strings"
)

// arrayPattern matches a greedy bracket-delimited span, newlines included.
// It recovers the common failure where the model wraps its JSON array in
// explanatory prose or a markdown fence.
var arrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

// ParseCandidates recovers candidate facts from raw model output. It first
// parses the whole text as a JSON array; failing that, it re-parses the
// first bracket-delimited substring. If both attempts fail there are no
// candidates — malformed output is never an error at this layer.
func ParseCandidates(text string) []Candidate {
	if candidates := parseArray(strings.TrimSpace(text)); candidates != nil {
		return candidates
	}

	match := arrayPattern.FindString(text)
	if match == "" {
		return nil
	}
	return parseArray(match)
}

// parseArray decodes a JSON array element by element, keeping the
// candidate-shaped objects and dropping anything else the model mixed in.
// A non-array yields nil.
func parseArray(text string) []Candidate {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil
	}
	candidates := make([]Candidate, 0, len(elements))
	for _, raw := range elements {
		var c Candidate
		if err := json.Unmarshal(raw, &c); err != nil {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}
