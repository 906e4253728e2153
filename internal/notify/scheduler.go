package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Veraticus/foxy-spend/internal/alerts"
	"github.com/Veraticus/foxy-spend/internal/budget"
	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/model"
	"github.com/Veraticus/foxy-spend/internal/service"
)

// DefaultCheckInterval is how often the alert check runs.
const DefaultCheckInterval = 15 * time.Minute

const checkTimeout = 30 * time.Second

// SchedulerConfig configures a Scheduler.
type SchedulerConfig struct {
	Now            func() time.Time
	UserID         string
	WeeklySummary  string // cron spec, empty to disable; e.g. "0 20 * * 0"
	MonthlySummary string // cron spec, empty to disable; e.g. "0 9 1 * *"
	SendRetry      common.RetryOptions
	CheckInterval  time.Duration
}

// Scheduler periodically evaluates alerts for one user and sends what is due.
type Scheduler struct {
	cron     *cron.Cron
	spends   service.SpendRepository
	settings service.SettingsRepository
	states   service.AlertStateStore
	sender   service.NotificationSender
	catalog  *Catalog
	logger   *slog.Logger
	now      func() time.Time
	config   SchedulerConfig
}

// NewScheduler creates a scheduler. Nothing runs until Start.
func NewScheduler(store service.Storage, sender service.NotificationSender, catalog *Catalog, config SchedulerConfig, logger *slog.Logger) *Scheduler {
	logger = common.LoggerOrDefault(logger)
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultCheckInterval
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	if config.SendRetry.Logger == nil {
		config.SendRetry.Logger = logger
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug)))),
		spends:   store,
		settings: store,
		states:   store,
		sender:   sender,
		catalog:  catalog,
		logger:   logger,
		now:      now,
		config:   config,
	}
}

// Start registers the jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.config.CheckInterval), s.runCheck); err != nil {
		return fmt.Errorf("failed to schedule alert check: %w", err)
	}

	summaries := []struct {
		spec   string
		period budget.Period
	}{
		{spec: s.config.WeeklySummary, period: budget.PeriodWeekly},
		{spec: s.config.MonthlySummary, period: budget.PeriodMonthly},
	}
	for _, job := range summaries {
		if job.spec == "" {
			continue
		}
		period := job.period
		if _, err := s.cron.AddFunc(job.spec, func() { s.runSummary(period) }); err != nil {
			return fmt.Errorf("failed to schedule %s summary: %w", period, err)
		}
	}

	s.cron.Start()
	s.logger.Info("alert scheduler started",
		slog.String("user_id", s.config.UserID),
		slog.Duration("interval", s.config.CheckInterval),
		slog.Int("jobs", len(s.cron.Entries())))
	return nil
}

// Stop stops the cron runner. The returned context is done when running jobs finish.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("alert scheduler stopping")
	return s.cron.Stop()
}

func (s *Scheduler) runCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if _, err := s.CheckNow(ctx); err != nil {
		s.logger.Error("alert check failed", slog.Any("error", err))
	}
}

func (s *Scheduler) runSummary(period budget.Period) {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if err := s.SendSummary(ctx, period); err != nil {
		s.logger.Error("summary failed", slog.String("period", string(period)), slog.Any("error", err))
	}
}

// CheckNow runs one alert evaluation, sends whatever is due, and records it. It
// returns the notifications that were actually sent.
func (s *Scheduler) CheckNow(ctx context.Context) (alerts.Decision, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return alerts.Decision{}, err
	}
	now := s.now().In(settings.Location())

	start, end := budget.MonthRange(now)
	history, err := s.spends.ListSpendsInRange(ctx, settings.UserID, start, end)
	if err != nil {
		return alerts.Decision{}, fmt.Errorf("failed to list spends: %w", err)
	}

	state, err := s.states.LoadAlertState(ctx, settings.UserID)
	if err != nil {
		return alerts.Decision{}, fmt.Errorf("failed to load alert state: %w", err)
	}

	in := alerts.Input{Now: now, State: state, History: history}
	if settings.BudgetAlerts {
		in.LimitCents = settings.MonthlyLimitCents
	}
	if settings.Reminders {
		in.Slots = settings.ReminderSlots
	}
	decision := alerts.Evaluate(in)

	sent := alerts.Decision{CurrentPercent: decision.CurrentPercent, ReminderSlot: decision.ReminderSlot}
	if decision.ShouldSendReminder {
		sent.ShouldSendReminder = s.send(ctx, s.catalog.Reminder(), ReminderTag(decision.ReminderSlot))
	}
	if decision.ShouldSend70 {
		sent.ShouldSend70 = s.send(ctx, s.catalog.Budget70(), TagBudget70)
	}
	if decision.ShouldSend90 {
		sent.ShouldSend90 = s.send(ctx, s.catalog.Budget90(), TagBudget90)
	}

	if !sent.ShouldSendReminder && !sent.ShouldSend70 && !sent.ShouldSend90 {
		s.logger.Debug("no notifications due", slog.Float64("percent", decision.CurrentPercent))
		return sent, nil
	}

	if err := s.states.SaveAlertState(ctx, settings.UserID, alerts.MarkSent(state, sent, now)); err != nil {
		return sent, fmt.Errorf("failed to save alert state: %w", err)
	}
	return sent, nil
}

// SendSummary sends the spend summary for period. The encouraging variant is used
// while the month stays below the warning threshold.
func (s *Scheduler) SendSummary(ctx context.Context, period budget.Period) error {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return err
	}
	now := s.now().In(settings.Location())

	start, _ := period.Range(now)
	monthStart, _ := budget.MonthRange(now)
	if monthStart.Before(start) {
		start = monthStart
	}
	expenses, err := s.spends.ListSpendsInRange(ctx, settings.UserID, start, now)
	if err != nil {
		return fmt.Errorf("failed to list spends: %w", err)
	}

	summary := budget.Summarize(period, expenses, now)
	status := budget.Calculate(alerts.MonthTotal(expenses, now), settings.MonthlyLimitCents)

	msg := s.catalog.Summary(summary, status.Level == budget.LevelOK)
	if err := s.deliver(ctx, msg, TagSummary); err != nil {
		return fmt.Errorf("failed to send summary: %w", err)
	}
	return nil
}

func (s *Scheduler) loadSettings(ctx context.Context) (model.Settings, error) {
	settings, err := s.settings.GetSettings(ctx, s.config.UserID)
	if errors.Is(err, common.ErrNotFound) {
		return model.DefaultSettings(s.config.UserID), nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return *settings, nil
}

func (s *Scheduler) deliver(ctx context.Context, msg Message, tag string) error {
	return common.WithRetry(ctx, s.config.SendRetry, func(ctx context.Context) error {
		return s.sender.Send(ctx, msg.Title, msg.Body, tag)
	})
}

func (s *Scheduler) send(ctx context.Context, msg Message, tag string) bool {
	if err := s.deliver(ctx, msg, tag); err != nil {
		s.logger.Warn("failed to send notification", slog.String("tag", tag), slog.Any("error", err))
		return false
	}
	s.logger.Info("notification sent", slog.String("tag", tag))
	return true
}
