package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
)

const noRelevantInformation = "No relevant information was found in the knowledge base for this question."

type handlerFunc func(ctx context.Context, query string) (models.ToolOutput, error)

// Service routes classified intents to their workflows and normalizes every
// outcome into a ToolOutput. Dispatch never returns an error or panics;
// failures become the error variant.
type Service struct {
	retriever interfaces.Retriever
	generator interfaces.Generator
	counter   interfaces.CounterService
	queryLog  interfaces.QueryLogger
	topK      int
	logger    arbor.ILogger
	handlers  map[models.Intent]handlerFunc
}

// NewService creates a dispatcher over the retrieval and generation services
func NewService(
	retriever interfaces.Retriever,
	generator interfaces.Generator,
	counter interfaces.CounterService,
	queryLog interfaces.QueryLogger,
	topK int,
	logger arbor.ILogger,
) interfaces.ToolDispatcher {
	s := &Service{
		retriever: retriever,
		generator: generator,
		counter:   counter,
		queryLog:  queryLog,
		topK:      topK,
		logger:    logger,
	}
	s.handlers = map[models.Intent]handlerFunc{
		models.IntentAnswerQuestion:  s.answerQuestion,
		models.IntentSearchKnowledge: s.searchKnowledge,
		models.IntentGetQueryCount:   s.getQueryCount,
	}
	return s
}

// Dispatch runs the workflow for intent and returns a tagged output
func (s *Service) Dispatch(ctx context.Context, intent models.Intent, query string) (output models.ToolOutput) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("intent", string(intent)).
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("Recovered from panic during dispatch")
			output = models.ErrorOutput("An internal error occurred while handling the request.")
		}
	}()

	handler, ok := s.handlers[intent]
	if !ok {
		return models.ErrorOutput("The request could not be understood. Try asking a question about the knowledge base.")
	}

	result, err := handler(ctx, query)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("intent", string(intent)).
			Msg("Intent handler failed")
		return models.ErrorOutput("The request could not be completed. Please try again.")
	}
	return result
}

func (s *Service) answerQuestion(ctx context.Context, query string) (models.ToolOutput, error) {
	started := time.Now()

	results, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		return models.ToolOutput{}, err
	}

	if len(results) == 0 {
		return models.AnswerOutput(noRelevantInformation, 0), nil
	}

	passages := make([]string, len(results))
	for i, result := range results {
		passages[i] = result.Content
	}

	answer, err := s.generator.Generate(ctx, query, passages)
	if err != nil {
		return models.ToolOutput{}, err
	}

	if _, err := s.counter.Increment(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to increment query counter")
	}

	s.queryLog.Record(ctx, models.QueryLogEntry{
		Query:           query,
		Answer:          answer,
		ChunksRetrieved: len(results),
		DurationMs:      time.Since(started).Milliseconds(),
		CreatedAt:       time.Now(),
	})

	return models.AnswerOutput(answer, len(results)), nil
}

func (s *Service) searchKnowledge(ctx context.Context, query string) (models.ToolOutput, error) {
	results, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		return models.ToolOutput{}, err
	}
	return models.SearchOutput(results), nil
}

func (s *Service) getQueryCount(ctx context.Context, _ string) (models.ToolOutput, error) {
	count, err := s.counter.Value(ctx)
	if err != nil {
		return models.ToolOutput{}, err
	}
	return models.QueryCountOutput(count), nil
}
