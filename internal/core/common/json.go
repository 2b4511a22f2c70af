package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when a model response contains no JSON object.
var ErrNoJSON = errors.New("no JSON object found in response")

// ParseJSON extracts the outermost JSON object from an LLM response and
// decodes it into T. Markdown code fences and surrounding prose are ignored.
func ParseJSON[T any](response string) (T, error) {
	var zero T
	body := stripFence(response)

	start := strings.IndexByte(body, '{')
	end := strings.LastIndexByte(body, '}')
	if start == -1 || end < start {
		return zero, ErrNoJSON
	}

	var result T
	if err := json.Unmarshal([]byte(body[start:end+1]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}

// stripFence returns the body of the first ``` block, or s unchanged.
func stripFence(s string) string {
	open := strings.Index(s, "```")
	if open == -1 {
		return s
	}
	rest := s[open+3:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		// drop the language hint, e.g. ```json
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end != -1 {
		rest = rest[:end]
	}
	return rest
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
