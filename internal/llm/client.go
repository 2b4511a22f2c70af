// Package llm wraps the chat completion APIs used for extraction and
// analysis behind a single prompt-in, text-out interface.
package llm

import (
	"context"
	"errors"
)

// ErrNoContent is returned when a provider answers without any text.
var ErrNoContent = errors.New("llm returned no content")

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
