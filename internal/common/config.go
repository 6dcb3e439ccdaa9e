package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment" validate:"oneof=development production"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Pipeline    PipelineConfig `toml:"pipeline"`
	Logging     LoggingConfig  `toml:"logging"`
	Gemini      GeminiConfig   `toml:"gemini"`
	Claude      ClaudeConfig   `toml:"claude"`
	LLM         LLMConfig      `toml:"llm"`
	Maintenance MaintConfig    `toml:"maintenance"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lt=65536"`
	Host string `toml:"host"`
}

// StorageConfig selects and configures the vector store backend
type StorageConfig struct {
	// Mode selects the vector store backend: "badger" (default) or "qdrant"
	Mode   string       `toml:"mode" validate:"oneof=badger qdrant"`
	Badger BadgerConfig `toml:"badger"`
	Qdrant QdrantConfig `toml:"qdrant"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// QdrantConfig configures the Qdrant REST vector store
type QdrantConfig struct {
	URL        string `toml:"url"`
	APIKey     string `toml:"api_key"`
	Collection string `toml:"collection"`
	Timeout    string `toml:"timeout"` // e.g. "15s"
}

// PipelineConfig controls chunking, embedding, and retrieval behaviour
type PipelineConfig struct {
	ChunkSize    int `toml:"chunk_size" validate:"gt=0"`     // Characters per chunk (default: 500)
	ChunkOverlap int `toml:"chunk_overlap" validate:"gte=0"` // Overlap between consecutive chunks (default: 100)
	Dimension    int `toml:"dimension" validate:"gt=0"`      // Embedding dimension; must match the index (default: 768)
	TopK         int `toml:"top_k" validate:"gt=0"`          // Passages retrieved per query (default: 5)
	UpsertBatch  int `toml:"upsert_batch" validate:"gt=0"`   // Records per upsert batch (default: 100)

	// Boundary limits enforced before the core is called
	MaxDocumentChars int `toml:"max_document_chars" validate:"gt=0"` // default: 500000
	MaxQuestionChars int `toml:"max_question_chars" validate:"gt=0"` // default: 1000
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output"`                                      // "stdout", "file"
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey         string  `toml:"api_key"`         // Google Gemini API key
	Model          string  `toml:"model"`           // Generation model (default: "gemini-3-flash-preview")
	EmbeddingModel string  `toml:"embedding_model"` // Embedding model (default: "gemini-embedding-001")
	RateLimit      float64 `toml:"rate_limit"`      // Requests per second (default: 0.25, 15 RPM)
	Temperature    float32 `toml:"temperature"`     // Completion temperature (default: 0.2)
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for generation (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 4096)
	RateLimit   float64 `toml:"rate_limit"`  // Requests per second (default: 1)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.2)
}

// LLMConfig selects the default provider when a model string carries no
// provider prefix
type LLMConfig struct {
	DefaultProvider string `toml:"default_provider" validate:"oneof=gemini claude"`
}

// MaintConfig configures the cron-driven maintenance scheduler
type MaintConfig struct {
	Enabled        bool    `toml:"enabled"`
	Schedule       string  `toml:"schedule"`         // Cron expression (default: "@every 10m")
	QueryLogKeep   int     `toml:"query_log_keep"`   // Entries retained after pruning (default: 10000)
	GCDiscardRatio float64 `toml:"gc_discard_ratio"` // Badger value-log GC threshold (default: 0.5)
}

// DefaultConfig returns the baseline configuration before file and env
// overrides are applied
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Mode: "badger",
			Badger: BadgerConfig{
				Path: "./data/respondeo",
			},
			Qdrant: QdrantConfig{
				URL:        "http://localhost:6333",
				Collection: "respondeo",
				Timeout:    "15s",
			},
		},
		Pipeline: PipelineConfig{
			ChunkSize:        500,
			ChunkOverlap:     100,
			Dimension:        768,
			TopK:             5,
			UpsertBatch:      100,
			MaxDocumentChars: 500000,
			MaxQuestionChars: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Gemini: GeminiConfig{
			Model:          "gemini-3-flash-preview",
			EmbeddingModel: "gemini-embedding-001",
			RateLimit:      0.25,
			Temperature:    0.2,
		},
		Claude: ClaudeConfig{
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   4096,
			RateLimit:   1,
			Temperature: 0.2,
		},
		LLM: LLMConfig{
			DefaultProvider: "gemini",
		},
		Maintenance: MaintConfig{
			Enabled:        true,
			Schedule:       "@every 10m",
			QueryLogKeep:   10000,
			GCDiscardRatio: 0.5,
		},
	}
}

// LoadFromFiles loads configuration from defaults, then each file in order
// (later files override earlier ones), then environment variables
func LoadFromFiles(paths ...string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks structural constraints plus the cross-field invariants the
// pipeline depends on
func Validate(config *Config) error {
	v := validator.New()
	if err := v.Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Overlap must leave forward progress between consecutive chunks
	if config.Pipeline.ChunkOverlap >= config.Pipeline.ChunkSize {
		return fmt.Errorf("invalid configuration: chunk_overlap (%d) must be less than chunk_size (%d)",
			config.Pipeline.ChunkOverlap, config.Pipeline.ChunkSize)
	}

	return nil
}

// applyEnvOverrides applies RESPONDEO_* environment variable overrides
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RESPONDEO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("RESPONDEO_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("RESPONDEO_LOG_LEVEL"); v != "" {
		config.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("RESPONDEO_STORAGE_MODE"); v != "" {
		config.Storage.Mode = strings.ToLower(v)
	}
	if v := os.Getenv("RESPONDEO_BADGER_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("RESPONDEO_QDRANT_URL"); v != "" {
		config.Storage.Qdrant.URL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		config.Gemini.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		config.Claude.APIKey = v
	}
}

// IsProduction reports whether the app runs in production mode. Non-production
// responses may include underlying error detail.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
