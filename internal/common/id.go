package common

import (
	"github.com/google/uuid"
)

// NewChunkID generates a unique indexed-record ID with the "chunk_" prefix.
// Format: chunk_<uuid>
func NewChunkID() string {
	return "chunk_" + uuid.New().String()
}

// NewLogID generates a unique query-log entry ID.
// Format: qlog_<uuid>
func NewLogID() string {
	return "qlog_" + uuid.New().String()
}
