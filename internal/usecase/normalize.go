package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSONObject is returned when a reply contains no {...} span.
var ErrNoJSONObject = errors.New("no JSON found in response")

// openingFence matches ``` with an optional language tag and newline.
var openingFence = regexp.MustCompile("```[A-Za-z]*\n?")

// StripCodeFences removes every fence marker and trims the result. Markers
// are removed independently, without checking that they pair up.
func StripCodeFences(text string) string {
	if text == "" {
		return ""
	}
	text = openingFence.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ExtractJSONObject parses the span from the first '{' to the last '}'.
// The match is greedy: two separate objects in one reply produce a span
// covering both, which then fails to parse.
func ExtractJSONObject(text string) (json.RawMessage, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return nil, ErrNoJSONObject
	}
	return compactJSON(text[start : end+1])
}

// ExtractBalancedJSONObject parses the first complete object in text. The
// scan starts at the first '{' and stops where brace depth returns to zero,
// ignoring braces inside string literals.
func ExtractBalancedJSONObject(text string) (json.RawMessage, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, ErrNoJSONObject
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
				return compactJSON(text[start : i+1])
			}
		}
	}
	return nil, fmt.Errorf("%w: unbalanced braces", ErrNoJSONObject)
}

func compactJSON(candidate string) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(candidate)); err != nil {
		return nil, fmt.Errorf("usecase: parse extracted JSON: %w", err)
	}
	return json.RawMessage(buf.Bytes()), nil
}
