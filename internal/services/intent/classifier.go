package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
)

const classifyPromptTemplate = `Classify the user request into exactly one of these intents:

- answer_question: the user wants a question answered from the knowledge base
- search_knowledge_base: the user wants to find or list relevant documents without a composed answer
- get_query_count: the user asks how many queries have been answered so far
- unknown: none of the above fit

Respond with the intent label only, nothing else.

User request: %s`

// Service classifies queries into the closed intent set using the language
// model. Classification never fails; anything unexpected collapses to
// IntentUnknown so the caller can respond safely.
type Service struct {
	provider    interfaces.LanguageModelProvider
	model       string
	temperature float32
	logger      arbor.ILogger
}

// NewService creates an intent classifier using the default provider model
func NewService(provider interfaces.LanguageModelProvider, config *common.Config, logger arbor.ILogger) interfaces.IntentClassifier {
	model := config.Gemini.Model
	if config.LLM.DefaultProvider == "claude" {
		model = config.Claude.Model
	}

	return &Service{
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

// Classify maps a query to an intent. Model errors and off-enum responses
// both collapse to IntentUnknown.
func (s *Service) Classify(ctx context.Context, query string) models.Intent {
	if strings.TrimSpace(query) == "" {
		return models.IntentUnknown
	}

	response, err := s.provider.Generate(ctx, &interfaces.GenerateRequest{
		Prompt:      fmt.Sprintf(classifyPromptTemplate, query),
		Model:       s.model,
		Temperature: 0,
		MaxTokens:   16,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("Intent classification failed, treating as unknown")
		return models.IntentUnknown
	}

	intent := models.ParseIntent(response)

	s.logger.Debug().
		Str("intent", string(intent)).
		Str("raw", strings.TrimSpace(response)).
		Msg("Classified query intent")

	return intent
}
