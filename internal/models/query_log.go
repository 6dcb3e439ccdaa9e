package models

import "time"

// QueryLogEntry records one answered query for diagnostics. Appends are
// best-effort; a failed append never fails the query that produced it.
type QueryLogEntry struct {
	ID              string    `json:"id" badgerhold:"key"`
	Query           string    `json:"query"`
	Answer          string    `json:"answer"`
	ChunksRetrieved int       `json:"chunks_retrieved"`
	DurationMs      int64     `json:"duration_ms"`
	CreatedAt       time.Time `json:"created_at"`
}
