package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"interviewprep/api/internal/metrics"
)

// StaleStartStore resets IN_PROGRESS interviews that never received questions.
type StaleStartStore interface {
	ResetStaleStarts(ctx context.Context, cutoff time.Time) (int64, error)
}

// SweeperConfig contains configuration for the stale start sweeper
type SweeperConfig struct {
	Schedule string        // Cron spec, e.g. "@every 5m"
	TTL      time.Duration // Age after which an unfinished claim is released
}

// StaleStartSweeper releases start claims left behind when generation never
// finished, so the interview can be started again.
type StaleStartSweeper struct {
	store  StaleStartStore
	config SweeperConfig
	logger *zap.Logger
	cron   *cron.Cron
	now    func() time.Time
}

func NewStaleStartSweeper(store StaleStartStore, config SweeperConfig, logger *zap.Logger) *StaleStartSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaleStartSweeper{
		store:  store,
		config: config,
		logger: logger,
		cron:   cron.New(),
		now:    time.Now,
	}
}

// Start schedules the sweep.
func (s *StaleStartSweeper) Start() error {
	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.logger.Error("Stale start sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule stale start sweeper: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Stale start sweeper started",
		zap.String("schedule", s.config.Schedule),
		zap.Duration("ttl", s.config.TTL))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *StaleStartSweeper) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.logger.Info("Stale start sweeper stopped")
	}
}

// RunOnce performs a single sweep and returns how many interviews were reset.
func (s *StaleStartSweeper) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.config.TTL)
	reset, err := s.store.ResetStaleStarts(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if reset > 0 {
		metrics.StaleStartsReset(reset)
		s.logger.Warn("Reset stale interview starts", zap.Int64("count", reset), zap.Time("cutoff", cutoff))
	}
	return reset, nil
}
