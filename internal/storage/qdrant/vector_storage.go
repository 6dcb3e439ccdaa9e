package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
)

// VectorStorage is a minimal REST client to Qdrant. It configures the
// collection for cosine distance and creates it if missing, so scores stay
// comparable with the Badger backend.
type VectorStorage struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	batchSize  int
	client     *http.Client
	logger     arbor.ILogger
}

// NewVectorStorage creates a Qdrant-backed vector store and ensures the
// collection exists with the configured dimension
func NewVectorStorage(config *common.QdrantConfig, dimension, batchSize int, logger arbor.ILogger) (interfaces.VectorStorage, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid vector dimension: %d", dimension)
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	timeout := 15 * time.Second
	if config.Timeout != "" {
		parsed, err := time.ParseDuration(config.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid qdrant timeout %q: %w", config.Timeout, err)
		}
		timeout = parsed
	}

	s := &VectorStorage{
		url:        config.URL,
		apiKey:     config.APIKey,
		collection: config.Collection,
		dimension:  dimension,
		batchSize:  batchSize,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}

	if err := s.ensureCollection(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *VectorStorage) ensureCollection(ctx context.Context) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 OK if the collection already exists with the same schema
	if err := s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body, nil); err != nil {
		return interfaces.NewUpstreamError("vector store", fmt.Errorf("failed to ensure collection: %w", err))
	}

	s.logger.Debug().
		Str("collection", s.collection).
		Int("dimension", s.dimension).
		Msg("Qdrant collection ready")

	return nil
}

// Upsert stores records in sequential batches. A failure partway through
// reports the inserted count; earlier batches are not rolled back.
func (s *VectorStorage) Upsert(ctx context.Context, records []models.IndexedRecord) (int, error) {
	inserted := 0

	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		points := make([]map[string]any, len(batch))
		for i, record := range batch {
			if len(record.Vector) != s.dimension {
				return inserted, fmt.Errorf("%w: record %s has dimension %d, index expects %d",
					interfaces.ErrDimensionMismatch, record.ID, len(record.Vector), s.dimension)
			}
			points[i] = map[string]any{
				"id":     pointID(record.ID),
				"vector": record.Vector,
				"payload": map[string]any{
					"chunk_id":   record.ID,
					"text":       record.Text,
					"indexed_at": record.IndexedAt.Format(time.RFC3339),
				},
			}
		}

		body := map[string]any{"points": points}
		url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection)
		if err := s.putJSON(ctx, url, body, nil); err != nil {
			return inserted, interfaces.NewUpstreamError("vector store",
				fmt.Errorf("upsert batch starting at %d failed: %w", start, err))
		}
		inserted += len(batch)

		s.logger.Debug().
			Int("batch_start", start).
			Int("batch_end", end).
			Int("inserted", inserted).
			Msg("Upserted record batch")
	}

	return inserted, nil
}

// Query returns at most topK matches sorted by descending score. Qdrant
// returns matches in score order already; that ordering is authoritative.
func (s *VectorStorage) Query(ctx context.Context, vector []float32, topK int) ([]models.SearchResult, error) {
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, index expects %d",
			interfaces.ErrDimensionMismatch, len(vector), s.dimension)
	}
	if topK <= 0 {
		topK = 5
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}

	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if err := s.postJSON(ctx, url, req, &resp); err != nil {
		return nil, interfaces.NewUpstreamError("vector store", fmt.Errorf("search failed: %w", err))
	}

	results := make([]models.SearchResult, 0, len(resp.Result))
	for _, match := range resp.Result {
		result := models.SearchResult{Score: match.Score}
		result.ChunkID = fmt.Sprintf("%v", match.ID)
		if id, ok := match.Payload["chunk_id"].(string); ok && id != "" {
			result.ChunkID = id
		}
		if text, ok := match.Payload["text"].(string); ok {
			result.Content = text
		}
		results = append(results, result)
	}

	return results, nil
}

// pointID maps a record ID to a Qdrant point ID. Qdrant only accepts
// unsigned integers or bare UUIDs as point IDs, so the prefixed record ID
// travels in the payload and the point ID is the UUID portion.
func pointID(recordID string) string {
	if i := strings.IndexByte(recordID, '_'); i >= 0 {
		if _, err := uuid.Parse(recordID[i+1:]); err == nil {
			return recordID[i+1:]
		}
	}
	if _, err := uuid.Parse(recordID); err == nil {
		return recordID
	}
	// Non-UUID IDs get a stable UUID derived from their bytes
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(recordID)).String()
}

// Dimension returns the configured vector dimension
func (s *VectorStorage) Dimension() int {
	return s.dimension
}

// Count returns the number of stored points
func (s *VectorStorage) Count(ctx context.Context) (int, error) {
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}

	url := fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection)
	if err := s.postJSON(ctx, url, map[string]any{"exact": true}, &resp); err != nil {
		return 0, interfaces.NewUpstreamError("vector store", fmt.Errorf("count failed: %w", err))
	}
	return resp.Result.Count, nil
}

// Close is a no-op; the HTTP client holds no persistent connection state
func (s *VectorStorage) Close() error {
	return nil
}

func (s *VectorStorage) putJSON(ctx context.Context, url string, body any, out any) error {
	return s.doJSON(ctx, http.MethodPut, url, body, out)
}

func (s *VectorStorage) postJSON(ctx context.Context, url string, body any, out any) error {
	return s.doJSON(ctx, http.MethodPost, url, body, out)
}

func (s *VectorStorage) doJSON(ctx context.Context, method, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
