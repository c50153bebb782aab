package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// JSONCandidates lists the substrings of a model reply that may hold the
// JSON document, in the order they should be tried: a fenced code block,
// the first balanced object, the whole trimmed reply.
func JSONCandidates(text string) []string {
	var out []string
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		out = append(out, strings.TrimSpace(m[1]))
	}
	if obj, ok := balancedObject(text); ok {
		out = append(out, obj)
	}
	out = append(out, strings.TrimSpace(text))
	return out
}

// DecodeJSON unmarshals the first candidate of text that parses into v.
func DecodeJSON(text string, v any) error {
	var lastErr error
	for _, candidate := range JSONCandidates(text) {
		if candidate == "" {
			continue
		}
		if err := json.Unmarshal([]byte(candidate), v); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		return errors.New(errors.ErrCodeAIService, "AI response contained no JSON")
	}
	return errors.Wrap(lastErr, errors.ErrCodeAIService, "failed to parse AI response JSON")
}

// balancedObject returns the text from the first '{' to its matching '}',
// skipping braces inside string literals.
func balancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
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
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
