package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/handlers"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/services/chunker"
	"github.com/ternarybob/respondeo/internal/services/dispatch"
	"github.com/ternarybob/respondeo/internal/services/embeddings"
	"github.com/ternarybob/respondeo/internal/services/generation"
	"github.com/ternarybob/respondeo/internal/services/indexing"
	"github.com/ternarybob/respondeo/internal/services/intent"
	"github.com/ternarybob/respondeo/internal/services/llm"
	"github.com/ternarybob/respondeo/internal/services/retrieval"
	"github.com/ternarybob/respondeo/internal/services/scheduler"
	"github.com/ternarybob/respondeo/internal/storage"
)

// App holds all application services and handlers
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Storage   *storage.Manager
	Scheduler *scheduler.Scheduler

	LLMProvider interfaces.LanguageModelProvider
	Indexing    interfaces.IndexingService
	Retriever   interfaces.Retriever

	DocumentHandler *handlers.DocumentHandler
	QueryHandler    *handlers.QueryHandler
	APIHandler      *handlers.APIHandler
}

// New wires all services together from configuration
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	storageManager, err := storage.NewManager(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	llmProvider := llm.NewProviderFactory(&config.Gemini, &config.Claude, &config.LLM, logger)

	embeddingProvider := embeddings.NewGeminiProvider(&config.Gemini, config.Pipeline.Dimension, logger)
	embedder := embeddings.NewService(embeddingProvider, config.Pipeline.Dimension, logger)

	chunkerService := chunker.NewService(logger)
	indexingService := indexing.NewService(chunkerService, embedder, storageManager.VectorStore(), config, logger)

	retriever := retrieval.NewService(embedder, storageManager.VectorStore(), logger)
	generator := generation.NewService(llmProvider, config, logger)
	classifier := intent.NewService(llmProvider, config, logger)

	dispatcher := dispatch.NewService(
		retriever,
		generator,
		storageManager.Counter(),
		storageManager.QueryLog(),
		config.Pipeline.TopK,
		logger,
	)

	maintScheduler := scheduler.NewScheduler(storageManager, &config.Maintenance, logger)
	if err := maintScheduler.Start(); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to start maintenance scheduler: %w", err)
	}

	app := &App{
		Config:          config,
		Logger:          logger,
		Storage:         storageManager,
		Scheduler:       maintScheduler,
		LLMProvider:     llmProvider,
		Indexing:        indexingService,
		Retriever:       retriever,
		DocumentHandler: handlers.NewDocumentHandler(indexingService, config, logger),
		QueryHandler:    handlers.NewQueryHandler(classifier, dispatcher, config, logger),
		APIHandler:      handlers.NewAPIHandler(llmProvider, storageManager.VectorStore()),
	}

	logger.Info().
		Str("storage_mode", config.Storage.Mode).
		Str("llm_provider", config.LLM.DefaultProvider).
		Msg("Application initialized")

	return app, nil
}

// Close shuts down all services in reverse initialization order
func (a *App) Close() error {
	a.Scheduler.Stop()

	if err := a.LLMProvider.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close language model provider")
	}

	return a.Storage.Close()
}
