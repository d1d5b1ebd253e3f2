package action

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParseJSON parses a model reply into a Raw action. Replies wrapped in a
// markdown code fence (```json ... ```) are unwrapped first.
func ParseJSON(text string) (Raw, error) {
	body := StripCodeFence(text)
	if body == "" {
		return nil, &ParseError{Text: text, Cause: ErrEmptyResponse}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ParseError{Text: text, Cause: err}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ParseError{Text: text, Cause: ErrNotObject}
	}
	return Raw(obj), nil
}

// StripCodeFence removes a surrounding markdown code fence and whitespace.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
