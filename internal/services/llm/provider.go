package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ProviderType represents the AI provider type
type ProviderType string

const (
	// ProviderGemini uses Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderClaude uses Anthropic Claude API
	ProviderClaude ProviderType = "claude"
)

// ProviderFactory implements LanguageModelProvider over Claude and Gemini,
// detecting the provider from the model string and applying client-side rate
// limiting and rate-limit-aware retries.
type ProviderFactory struct {
	geminiConfig  *common.GeminiConfig
	claudeConfig  *common.ClaudeConfig
	llmConfig     *common.LLMConfig
	logger        arbor.ILogger
	geminiClient  *genai.Client
	claudeClient  anthropic.Client
	claudeReady   bool
	geminiLimiter *rate.Limiter
	claudeLimiter *rate.Limiter
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(
	geminiConfig *common.GeminiConfig,
	claudeConfig *common.ClaudeConfig,
	llmConfig *common.LLMConfig,
	logger arbor.ILogger,
) *ProviderFactory {
	geminiRate := geminiConfig.RateLimit
	if geminiRate <= 0 {
		geminiRate = 0.25 // 15 RPM
	}
	claudeRate := claudeConfig.RateLimit
	if claudeRate <= 0 {
		claudeRate = 1
	}

	return &ProviderFactory{
		geminiConfig:  geminiConfig,
		claudeConfig:  claudeConfig,
		llmConfig:     llmConfig,
		logger:        logger,
		geminiLimiter: rate.NewLimiter(rate.Limit(geminiRate), 1),
		claudeLimiter: rate.NewLimiter(rate.Limit(claudeRate), 1),
	}
}

// DetectProvider determines the provider type from a model string.
// Model strings can be:
// - "claude-haiku-3-5-20241022" -> Claude
// - "claude/claude-haiku-3-5-20241022" -> Claude (with prefix)
// - "gemini-3-flash-preview" -> Gemini
// - Empty string -> uses default provider from config
func (f *ProviderFactory) DetectProvider(model string) ProviderType {
	if model == "" {
		return ProviderType(f.llmConfig.DefaultProvider)
	}

	model = strings.ToLower(model)

	if strings.HasPrefix(model, "claude/") || strings.HasPrefix(model, "anthropic/") {
		return ProviderClaude
	}
	if strings.HasPrefix(model, "gemini/") || strings.HasPrefix(model, "google/") {
		return ProviderGemini
	}

	if strings.HasPrefix(model, "claude-") {
		return ProviderClaude
	}
	if strings.HasPrefix(model, "gemini-") {
		return ProviderGemini
	}

	return ProviderType(f.llmConfig.DefaultProvider)
}

// NormalizeModel removes the provider prefix from a model name if present
func (f *ProviderFactory) NormalizeModel(model string) string {
	prefixes := []string{"claude/", "anthropic/", "gemini/", "google/"}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToLower(model), prefix) {
			return model[len(prefix):]
		}
	}
	return model
}

// GetGeminiClient returns a Gemini client, creating one if necessary
func (f *ProviderFactory) GetGeminiClient(ctx context.Context) (*genai.Client, error) {
	if f.geminiClient != nil {
		return f.geminiClient, nil
	}

	if f.geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or gemini.api_key in config)")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  f.geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	f.geminiClient = client
	return client, nil
}

// GetClaudeClient returns a Claude client, creating one if necessary
func (f *ProviderFactory) GetClaudeClient(ctx context.Context) (anthropic.Client, error) {
	if f.claudeReady {
		return f.claudeClient, nil
	}

	if f.claudeConfig.APIKey == "" {
		return anthropic.Client{}, fmt.Errorf("Anthropic API key is required (set ANTHROPIC_API_KEY or claude.api_key in config)")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(f.claudeConfig.APIKey),
	)

	f.claudeClient = client
	f.claudeReady = true
	return client, nil
}

// Generate produces a completion using the provider detected from the
// requested model. Failures are wrapped as UpstreamError so callers can
// distinguish external flakiness from local faults.
func (f *ProviderFactory) Generate(ctx context.Context, req *interfaces.GenerateRequest) (string, error) {
	provider := f.DetectProvider(req.Model)
	model := f.NormalizeModel(req.Model)

	f.logger.Debug().
		Str("provider", string(provider)).
		Str("model", model).
		Int("prompt_chars", len(req.Prompt)).
		Msg("Generating content with provider")

	switch provider {
	case ProviderClaude:
		return f.generateWithClaude(ctx, req, model)
	case ProviderGemini:
		return f.generateWithGemini(ctx, req, model)
	default:
		return f.generateWithGemini(ctx, req, model)
	}
}

// generateWithClaude generates content using the Claude API
func (f *ProviderFactory) generateWithClaude(ctx context.Context, req *interfaces.GenerateRequest, model string) (string, error) {
	client, err := f.GetClaudeClient(ctx)
	if err != nil {
		return "", interfaces.NewUpstreamError("language model", err)
	}

	if model == "" {
		model = f.claudeConfig.Model
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = f.claudeConfig.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	temp := req.Temperature
	if temp <= 0 {
		temp = f.claudeConfig.Temperature
	}
	if temp > 0 {
		params.Temperature = anthropic.Float(float64(temp))
	}

	if req.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.SystemInstruction},
		}
	}

	var resp *anthropic.Message
	err = NewDefaultRetryConfig().Execute(ctx, f.logger, f.claudeLimiter, "claude", func() error {
		var callErr error
		resp, callErr = client.Messages.New(ctx, params)
		return callErr
	})
	if err != nil {
		return "", interfaces.NewUpstreamError("language model", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", interfaces.NewUpstreamError("language model", fmt.Errorf("empty response from Claude API"))
	}

	return text.String(), nil
}

// generateWithGemini generates content using the Gemini API
func (f *ProviderFactory) generateWithGemini(ctx context.Context, req *interfaces.GenerateRequest, model string) (string, error) {
	client, err := f.GetGeminiClient(ctx)
	if err != nil {
		return "", interfaces.NewUpstreamError("language model", err)
	}

	if model == "" {
		model = f.geminiConfig.Model
	}

	temp := req.Temperature
	if temp <= 0 {
		temp = f.geminiConfig.Temperature
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temp),
	}

	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	var resp *genai.GenerateContentResponse
	err = NewDefaultRetryConfig().Execute(ctx, f.logger, f.geminiLimiter, "gemini", func() error {
		var callErr error
		resp, callErr = client.Models.GenerateContent(ctx, model, contents, config)
		return callErr
	})
	if err != nil {
		return "", interfaces.NewUpstreamError("language model", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", interfaces.NewUpstreamError("language model", fmt.Errorf("empty response from Gemini API"))
	}

	responseText := resp.Text()
	if responseText == "" {
		return "", interfaces.NewUpstreamError("language model", fmt.Errorf("empty text in Gemini response"))
	}

	return responseText, nil
}

// HealthCheck verifies that the default provider has a usable client
func (f *ProviderFactory) HealthCheck(ctx context.Context) error {
	switch ProviderType(f.llmConfig.DefaultProvider) {
	case ProviderClaude:
		_, err := f.GetClaudeClient(ctx)
		return err
	default:
		_, err := f.GetGeminiClient(ctx)
		return err
	}
}

// Close closes all provider clients
func (f *ProviderFactory) Close() error {
	f.geminiClient = nil
	f.claudeClient = anthropic.Client{}
	f.claudeReady = false
	return nil
}
