package storage

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/storage/badger"
	"github.com/ternarybob/respondeo/internal/storage/qdrant"
)

// Manager owns all storage backends. The vector store is selected by
// configuration; counters and query logs always live in BadgerDB since
// they are cheap local state.
type Manager struct {
	badgerDB    *badger.BadgerDB
	vectorStore interfaces.VectorStorage
	counter     interfaces.CounterService
	queryLog    interfaces.QueryLogger
	logger      arbor.ILogger
}

// NewManager opens the configured storage backends
func NewManager(config *common.Config, logger arbor.ILogger) (*Manager, error) {
	badgerDB, err := badger.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	var vectorStore interfaces.VectorStorage
	switch config.Storage.Mode {
	case "badger":
		vectorStore = badger.NewVectorStorage(badgerDB, config.Pipeline.Dimension, config.Pipeline.UpsertBatch, logger)
	case "qdrant":
		vectorStore, err = qdrant.NewVectorStorage(&config.Storage.Qdrant, config.Pipeline.Dimension, config.Pipeline.UpsertBatch, logger)
		if err != nil {
			badgerDB.Close()
			return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
		}
	default:
		badgerDB.Close()
		return nil, fmt.Errorf("unknown storage mode: %s", config.Storage.Mode)
	}

	logger.Info().
		Str("mode", config.Storage.Mode).
		Int("dimension", config.Pipeline.Dimension).
		Msg("Storage initialized")

	return &Manager{
		badgerDB:    badgerDB,
		vectorStore: vectorStore,
		counter:     badger.NewCounterStorage(badgerDB, logger),
		queryLog:    badger.NewQueryLogStorage(badgerDB, logger),
		logger:      logger,
	}, nil
}

// VectorStore returns the configured vector store
func (m *Manager) VectorStore() interfaces.VectorStorage {
	return m.vectorStore
}

// Counter returns the query counter service
func (m *Manager) Counter() interfaces.CounterService {
	return m.counter
}

// QueryLog returns the query log service
func (m *Manager) QueryLog() interfaces.QueryLogger {
	return m.queryLog
}

// RunGC triggers a BadgerDB value log garbage collection pass
func (m *Manager) RunGC(discardRatio float64) {
	if err := m.badgerDB.RunGC(discardRatio); err != nil {
		m.logger.Warn().Err(err).Msg("Value log GC failed")
	}
}

// Close shuts down all storage backends
func (m *Manager) Close() error {
	if err := m.vectorStore.Close(); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to close vector store")
	}
	return m.badgerDB.Close()
}
