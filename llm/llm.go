// Package llm is the text generation collaborator. It wraps an
// instructor-backed chat client behind a small Generator interface so the
// router never depends on a concrete provider.
package llm

import (
	"context"
	"errors"

	"github.com/banksight/banksight/components"
)

// ErrGeneration marks a failure of the generation collaborator. Callers
// treat it as a degraded-answer condition, not a hard failure.
var ErrGeneration = errors.New("text generation failed")

// Generator produces free-form text from a prompt or a full message history.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateMessages(ctx context.Context, messages []components.Message) (string, error)
}
