package usecase

import (
	"context"
	"log/slog"
	"time"

	"simsanalytics/internal/ports"
)

// Scheduler wires the cron driver to recurring ingestion runs.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop the recurring job.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, logger: logger}
}

// Start registers the ingestion job with the driver. Errors inside a
// run are logged; a failed run never stops the schedule.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if s.logger != nil {
			s.logger.Info("scheduled ingestion triggered", "at", trigger.Format(time.RFC3339))
		}
		if _, err := s.pipeline.IngestAndAnalyze(ctx); err != nil && s.logger != nil {
			s.logger.Error("scheduled ingestion failed", "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}
