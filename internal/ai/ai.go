package ai

import "context"

// Extractor generates a JSON completion for an extraction prompt. The
// caller owns prompt construction and response parsing; implementations
// only move text to the model provider and back.
type Extractor interface {
	// CompleteJSON sends the prompt together with the user text and returns
	// the raw JSON the model produced
	CompleteJSON(ctx context.Context, systemPrompt, userText string) (string, error)
}
