package services

import "context"

// Generator sends one prompt to a remote text-generation model and returns
// the raw reply. Every failure is reported as models.ErrGenerationFailed.
// Implementations keep no conversation state and never retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
