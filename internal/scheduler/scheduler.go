// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic session sweep.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/croquetbond/portal/internal/model"
	"github.com/croquetbond/portal/internal/service"
)

// Scheduler runs background jobs on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	auth   *service.AuthService
	events *service.EventService
	logger *slog.Logger
}

// New creates a scheduler. Jobs are chained with SkipIfStillRunning so
// a slow sweep never overlaps the next tick.
func New(db *sql.DB, auth *service.AuthService, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		auth:   auth,
		events: service.NewEventService(db),
		logger: logger,
	}
}

// Start registers the expired-session sweep on the given cron schedule
// and begins running jobs.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.sweepSessions)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", schedule, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// sweepSessions deletes all expired session rows in one pass.
func (s *Scheduler) sweepSessions() {
	ctx := context.Background()

	count, err := s.auth.CleanupExpiredSessions(ctx)
	if err != nil {
		s.logger.Error("session sweep failed", "error", err)
		return
	}
	if count == 0 {
		return
	}

	s.logger.Info("session sweep completed", "removed", count)
	if err := s.events.LogSystemEvent(ctx, model.EventLevelInfo, "expired sessions removed",
		map[string]any{"removed": count}); err != nil {
		s.logger.Error("failed to record sweep event", "error", err)
	}
}
