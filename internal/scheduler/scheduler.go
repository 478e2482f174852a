// Package scheduler runs the unattended jobs: the nightly inventory
// snapshot and the daily supply report.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"chemstock/internal/config"
	"chemstock/internal/service/inventory"
	"chemstock/internal/service/reporting"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	inventorySvc *inventory.Service
	reportingSvc *reporting.Service
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the
// configured timezone.
func NewScheduler(cfg config.Config, inventorySvc *inventory.Service, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC",
			zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
		loc = time.UTC
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		inventorySvc: inventorySvc,
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.Reporting.SnapshotCronSchedule, s.captureDailySnapshot); err != nil {
		s.logger.Error("failed to schedule daily snapshot", zap.Error(err))
	}
	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.sendDailyReport); err != nil {
		s.logger.Error("failed to schedule daily report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) captureDailySnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	snap, err := s.inventorySvc.CaptureSnapshot(ctx, "")
	if err != nil {
		s.logger.Error("failed to capture daily snapshot", zap.Error(err))
		return
	}
	s.logger.Info("daily snapshot captured", zap.String("date", snap.Date))
}

func (s *Scheduler) sendDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.reportingSvc.DispatchDailyReport(ctx, time.Now()); err != nil {
		s.logger.Error("failed to send daily report", zap.Error(err))
		return
	}
	s.logger.Info("daily report sent successfully")
}
