package interfaces

import (
	"errors"
	"fmt"
)

// Validation failures: bad or empty input reaching a component that requires
// non-empty input. These are caller errors, not service errors.
var (
	// ErrEmptyInput indicates a document with no indexable content. Zero
	// chunks is never a valid indexing outcome.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrInvalidQuery indicates an empty or whitespace-only query string.
	ErrInvalidQuery = errors.New("query is empty")

	// ErrNoContext indicates the generator was invoked without context
	// passages. Grounded generation never answers from prior knowledge.
	ErrNoContext = errors.New("no context passages provided")
)

// Empty-result failures from external services.
var (
	// ErrEmptyEmbedding indicates the embedding service returned zero
	// vectors or a zero-length vector. Surfaced rather than defaulted to a
	// zero vector, which would corrupt nearest-neighbour geometry.
	ErrEmptyEmbedding = errors.New("embedding service returned empty embedding")
)

// ErrDimensionMismatch indicates a chunk/vector count mismatch or a vector
// whose dimension does not match the configured index dimension. This is a
// configuration fault, not a per-request condition.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// UpstreamError wraps a failed call to an external collaborator (embedding
// service, vector store, or language model).
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err as a failure of the named external service.
func NewUpstreamError(service string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Err: err}
}

// IsUpstream reports whether err originated from an external service call.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
