package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// QueryLogStorage implements QueryLogger over Badger. Appends are
// best-effort: failures are logged and never propagated to the query that
// produced them.
type QueryLogStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewQueryLogStorage creates a new query log storage instance
func NewQueryLogStorage(db *BadgerDB, logger arbor.ILogger) interfaces.QueryLogger {
	return &QueryLogStorage{
		db:     db,
		logger: logger,
	}
}

// Record appends an answered query to the log
func (s *QueryLogStorage) Record(ctx context.Context, entry models.QueryLogEntry) {
	if entry.ID == "" {
		entry.ID = common.NewLogID()
	}

	if err := s.db.Store().Upsert(entry.ID, entry); err != nil {
		s.logger.Warn().
			Err(err).
			Str("query", entry.Query).
			Msg("Failed to record query log entry")
		return
	}

	s.logger.Debug().
		Str("id", entry.ID).
		Int("chunks_retrieved", entry.ChunksRetrieved).
		Int64("duration_ms", entry.DurationMs).
		Msg("Recorded query log entry")
}

// Prune removes the oldest entries beyond the retention count, returning how
// many were deleted
func (s *QueryLogStorage) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	var entries []models.QueryLogEntry
	err := s.db.Store().Find(&entries, badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse())
	if err != nil {
		return 0, fmt.Errorf("failed to list query log entries: %w", err)
	}

	if len(entries) <= keep {
		return 0, nil
	}

	deleted := 0
	for _, entry := range entries[keep:] {
		if err := s.db.Store().Delete(entry.ID, &models.QueryLogEntry{}); err != nil {
			s.logger.Warn().Str("id", entry.ID).Err(err).Msg("Failed to delete query log entry during prune")
			continue
		}
		deleted++
	}

	s.logger.Info().
		Int("deleted", deleted).
		Int("kept", keep).
		Msg("Pruned query log")

	return deleted, nil
}
