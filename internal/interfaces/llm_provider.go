package interfaces

import "context"

// GenerateRequest is a provider-agnostic content generation request.
type GenerateRequest struct {
	// Prompt is the user-turn content
	Prompt string

	// SystemInstruction sets provider system behaviour (optional)
	SystemInstruction string

	// Model overrides the configured default model (optional). Provider is
	// detected from the model name prefix.
	Model string

	// Temperature overrides the configured default when > 0
	Temperature float32

	// MaxTokens caps the response length when > 0
	MaxTokens int
}

// LanguageModelProvider generates text via an external language model.
// Implementations handle provider selection, retries, and rate limiting.
type LanguageModelProvider interface {
	// Generate produces a completion for the request
	Generate(ctx context.Context, req *GenerateRequest) (string, error)

	// HealthCheck verifies the provider is reachable and configured
	HealthCheck(ctx context.Context) error

	Close() error
}
