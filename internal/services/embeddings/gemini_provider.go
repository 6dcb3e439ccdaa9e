package embeddings

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Gemini task type hints. Queries and documents are embedded with different
// hints so the model can optimize for asymmetric retrieval.
const (
	taskTypeDocument = "RETRIEVAL_DOCUMENT"
	taskTypeQuery    = "RETRIEVAL_QUERY"
)

// GeminiProvider implements EmbeddingProvider using the Gemini embedding API
type GeminiProvider struct {
	config    *common.GeminiConfig
	dimension int
	logger    arbor.ILogger
	client    *genai.Client
	limiter   *rate.Limiter
}

// NewGeminiProvider creates a Gemini-backed embedding provider. The client is
// created lazily on first use so construction never requires network access.
func NewGeminiProvider(config *common.GeminiConfig, dimension int, logger arbor.ILogger) *GeminiProvider {
	limit := config.RateLimit
	if limit <= 0 {
		limit = 0.25
	}
	return &GeminiProvider{
		config:    config,
		dimension: dimension,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(limit), 1),
	}
}

func (p *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	if p.client != nil {
		return p.client, nil
	}

	if p.config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or gemini.api_key in config)")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	p.client = client
	return client, nil
}

// EmbedDocuments generates embeddings for a batch of texts
func (p *GeminiProvider) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return p.embed(ctx, texts, taskTypeDocument)
}

// EmbedQuery generates an embedding for a search query
func (p *GeminiProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.embed(ctx, []string{text}, taskTypeQuery)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, interfaces.ErrEmptyEmbedding
	}
	return vectors[0], nil
}

func (p *GeminiProvider) embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, interfaces.NewUpstreamError("embedding service", err)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, interfaces.NewUpstreamError("embedding service", err)
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	config := &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: genai.Ptr(int32(p.dimension)),
	}

	resp, err := client.Models.EmbedContent(ctx, p.config.EmbeddingModel, contents, config)
	if err != nil {
		return nil, interfaces.NewUpstreamError("embedding service", err)
	}

	if resp == nil || len(resp.Embeddings) == 0 {
		return nil, interfaces.ErrEmptyEmbedding
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, embedding := range resp.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, interfaces.ErrEmptyEmbedding
		}
		vectors[i] = embedding.Values
	}

	p.logger.Debug().
		Str("model", p.config.EmbeddingModel).
		Str("task_type", taskType).
		Int("texts", len(texts)).
		Int("embedding_dim", len(vectors[0])).
		Msg("Generated embeddings")

	return vectors, nil
}

// ModelName returns the embedding model identifier
func (p *GeminiProvider) ModelName() string {
	return p.config.EmbeddingModel
}
