package ports

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("assistant generator is not configured")

// Generator produces a completion for a prompt. Implementations wrap an
// external AI provider; failures are provider errors, not domain errors.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
