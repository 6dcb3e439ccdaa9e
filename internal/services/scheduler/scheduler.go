package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/storage"
)

// Scheduler runs periodic maintenance: Badger value-log garbage collection
// and query log pruning.
type Scheduler struct {
	cron     *cron.Cron
	manager  *storage.Manager
	queryLog interfaces.QueryLogger
	config   *common.MaintConfig
	logger   arbor.ILogger
}

// NewScheduler creates the maintenance scheduler; call Start to begin
func NewScheduler(manager *storage.Manager, config *common.MaintConfig, logger arbor.ILogger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		manager:  manager,
		queryLog: manager.QueryLog(),
		config:   config,
		logger:   logger,
	}
}

// Start registers the maintenance job and starts the cron runner
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info().Msg("Maintenance scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.config.Schedule, s.runMaintenance); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", s.config.Schedule, err)
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", s.config.Schedule).
		Int("query_log_keep", s.config.QueryLogKeep).
		Msg("Maintenance scheduler started")

	return nil
}

// Stop halts the cron runner and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Maintenance scheduler stopped")
}

func (s *Scheduler) runMaintenance() {
	s.manager.RunGC(s.config.GCDiscardRatio)

	deleted, err := s.queryLog.Prune(context.Background(), s.config.QueryLogKeep)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Query log pruning failed")
		return
	}
	if deleted > 0 {
		s.logger.Info().Int("deleted", deleted).Msg("Pruned query log entries")
	}
}
