package badger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/timshannon/badgerhold/v4"
)

const queryCounterKey = "query_count"

// counterRecord is the persisted counter state
type counterRecord struct {
	Name      string    `badgerhold:"key"`
	Value     int64     `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CounterStorage implements CounterService over Badger. Increments are
// serialized by a mutex, never raw read-modify-write across writers.
type CounterStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
	mu     sync.Mutex
}

// NewCounterStorage creates a new counter storage instance
func NewCounterStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CounterService {
	return &CounterStorage{
		db:     db,
		logger: logger,
	}
}

// Increment adds one and returns the new value
func (s *CounterStorage) Increment(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load()
	if err != nil {
		return 0, err
	}

	record.Value++
	record.UpdatedAt = time.Now()

	if err := s.db.Store().Upsert(queryCounterKey, record); err != nil {
		return 0, fmt.Errorf("failed to persist counter: %w", err)
	}

	return record.Value, nil
}

// Value returns the current count without mutating it
func (s *CounterStorage) Value(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load()
	if err != nil {
		return 0, err
	}
	return record.Value, nil
}

func (s *CounterStorage) load() (*counterRecord, error) {
	var record counterRecord
	err := s.db.Store().Get(queryCounterKey, &record)
	if err == badgerhold.ErrNotFound {
		return &counterRecord{Name: queryCounterKey}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read counter: %w", err)
	}
	return &record, nil
}
