package scheduler

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/billing"
	"github.com/mamadbah2/milkbill/internal/config"
	"github.com/mamadbah2/milkbill/internal/domain/models"
)

// Reporter renders the summary of a billing month.
type Reporter interface {
	MonthlyReport(ctx context.Context, month billing.Month) (string, error)
}

// Messenger delivers text messages.
type Messenger interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	reporter  Reporter
	messenger Messenger
	cfg       config.Config
	location  *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewScheduler creates a scheduler running in the configured timezone.
func NewScheduler(cfg config.Config, reporter Reporter, messenger Messenger, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		reporter:  reporter,
		messenger: messenger,
		cfg:       cfg,
		location:  loc,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Enabled reports whether the monthly summary has a recipient and a way to reach it.
func (s *Scheduler) Enabled() bool {
	return s.cfg.WhatsApp.OwnerNumber != "" && s.cfg.WhatsApp.CloudAPIEnabled()
}

// Start registers the monthly summary and starts the cron loop.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.logger.Info("monthly summary disabled, owner number or whatsapp credentials missing")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.sendMonthlySummary); err != nil {
		return fmt.Errorf("schedule monthly summary %q: %w", s.cfg.Reporting.CronSchedule, err)
	}

	s.logger.Info("starting scheduler",
		zap.String("schedule", s.cfg.Reporting.CronSchedule),
		zap.String("timezone", s.location.String()))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// sendMonthlySummary reports on the month before the current one.
func (s *Scheduler) sendMonthlySummary() {
	month := billing.MonthOf(s.now().In(s.location)).Prev()
	s.logger.Info("generating monthly summary", zap.String("billing_period", month.Label()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reporter.MonthlyReport(ctx, month)
	if err != nil {
		s.logger.Error("failed to generate monthly summary", zap.Error(err))
		return
	}

	req := models.OutboundMessageRequest{
		To:      s.cfg.WhatsApp.OwnerNumber,
		Message: report,
	}

	if err := s.messenger.SendOutbound(ctx, req); err != nil {
		s.logger.Error("failed to send monthly summary", zap.Error(err))
	} else {
		s.logger.Info("monthly summary sent successfully")
	}
}
