package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
)

// Service produces grounded answers from retrieved passages via the
// configured language model provider.
type Service struct {
	provider    interfaces.LanguageModelProvider
	model       string
	temperature float32
	maxTokens   int
	logger      arbor.ILogger
}

// NewService creates a generator using the provider defaults from config
func NewService(provider interfaces.LanguageModelProvider, config *common.Config, logger arbor.ILogger) interfaces.Generator {
	model := config.Gemini.Model
	temperature := config.Gemini.Temperature
	maxTokens := 4096
	if config.LLM.DefaultProvider == "claude" {
		model = config.Claude.Model
		temperature = config.Claude.Temperature
		maxTokens = config.Claude.MaxTokens
	}

	return &Service{
		provider:    provider,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// Generate answers the question from the given passages. It refuses to run
// without context so the model never answers from its own knowledge.
func (s *Service) Generate(ctx context.Context, question string, passages []string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", interfaces.ErrInvalidQuery
	}
	if len(passages) == 0 {
		return "", interfaces.ErrNoContext
	}

	prompt := buildPrompt(question, passages)

	s.logger.Debug().
		Str("model", s.model).
		Int("passages", len(passages)).
		Int("prompt_chars", len(prompt)).
		Msg("Generating grounded answer")

	answer, err := s.provider.Generate(ctx, &interfaces.GenerateRequest{
		Prompt:            prompt,
		SystemInstruction: groundedSystemInstruction,
		Model:             s.model,
		Temperature:       s.temperature,
		MaxTokens:         s.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

// buildPrompt enumerates passages as [1]..[n] so the model can cite them
func buildPrompt(question string, passages []string) string {
	var context strings.Builder
	for i, passage := range passages {
		fmt.Fprintf(&context, "[%d] %s\n\n", i+1, strings.TrimSpace(passage))
	}
	return fmt.Sprintf(groundedPromptTemplate, strings.TrimSpace(context.String()), question)
}
