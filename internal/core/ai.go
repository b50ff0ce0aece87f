package core

import "context"

// GenParams carries the generation parameters shared by all providers.
type GenParams struct {
	MaxTokens   int
	Temperature float64
}

// Provider is the capability every text-generation backend must offer.
// Adapters translate their SDK's client shape into this one contract so the
// fallback chain stays a loop over adapters.
type Provider interface {
	// Name identifies the backend ("anthropic", "openai", "gemini").
	Name() string
	// Model returns the configured model identifier, recorded on assistant messages.
	Model() string
	// Generate produces text for the prompt. An empty result with a nil error
	// is treated as a failure by callers.
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
