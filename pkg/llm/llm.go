package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// LLM sends one prompt to a completion endpoint and returns the raw text of
// the single completion. Implementations make exactly one attempt.
type LLM interface {
	Complete(ctx context.Context, prompt string) (string, error)
	GetModel() string
}

var (
	// ErrCompletion covers every way a completion call can fail: transport,
	// authentication, non-success status and unusable replies.
	ErrCompletion = errors.New("completion failed")
	// ErrEmptyCompletion is returned when the endpoint answered without text.
	ErrEmptyCompletion = fmt.Errorf("%w: empty completion", ErrCompletion)
)

// requestTimeout is the fixed transport timeout of the HTTP providers.
const requestTimeout = 120 * time.Second

func completionError(provider string, err error) error {
	return fmt.Errorf("%s: %w: %w", provider, ErrCompletion, err)
}

func emptyCompletion(provider string) error {
	return fmt.Errorf("%s: %w", provider, ErrEmptyCompletion)
}
