// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/commands"
	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/reminders"
)

// DefaultReminderSchedule sends the daily digest at 09:00.
const DefaultReminderSchedule = "0 9 * * *"

const jobTimeout = 10 * time.Minute

var remindersSent = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reminders_sent_total",
	Help: "Daily reminder digests delivered to users",
})

// DueReminders lists the reminders due today.
type DueReminders interface {
	Today() time.Time
	DueToday(ctx context.Context) ([]reminders.UserReminders, error)
}

// Sender delivers a chat message.
type Sender interface {
	Send(ctx context.Context, destination, text string) error
}

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	reminders DueReminders
	sender    Sender
	logger    *slog.Logger
}

// NewScheduler creates a job scheduler whose schedules are read in loc.
func NewScheduler(schedule string, loc *time.Location, due DueReminders, sender Sender, logger *slog.Logger) *Scheduler {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	if loc == nil {
		loc = time.UTC
	}
	// Standard 5-field format, no seconds.
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))),
	)

	return &Scheduler{
		cron:      c,
		schedule:  schedule,
		reminders: due,
		sender:    sender,
		logger:    logger,
	}
}

// Start registers the jobs and begins running them.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sendDailyReminders); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
		slog.String("reminders", s.schedule),
	)
	return nil
}

// Stop stops the scheduler. The returned context is done once running jobs
// finish.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow triggers the daily reminder digest outside its schedule.
func (s *Scheduler) RunNow() {
	go s.sendDailyReminders()
}

func (s *Scheduler) sendDailyReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, failed, err := s.SendDailyReminders(ctx)
	if err != nil {
		s.logger.Error("failed to list due reminders", slog.Any("error", err))
		return
	}
	s.logger.Info("daily reminders sent",
		slog.Int("users_notified", sent),
		slog.Int("users_failed", failed),
	)
}

// SendDailyReminders sends one digest per user with reminders due today.
// A delivery failure for one user does not stop the others.
func (s *Scheduler) SendDailyReminders(ctx context.Context) (sent, failed int, err error) {
	due, err := s.reminders.DueToday(ctx)
	if err != nil {
		return 0, 0, err
	}

	day := s.reminders.Today().Format("02/01/2006")
	for _, group := range due {
		if len(group.Reminders) == 0 {
			continue
		}
		if err := s.sender.Send(ctx, group.Phone, commands.DailyReminders(day, group.Reminders)); err != nil {
			s.logger.Warn("failed to send daily reminders",
				slog.String("user_id", group.UserID.String()),
				slog.Any("error", err),
			)
			failed++
			continue
		}
		remindersSent.Inc()
		sent++
	}
	return sent, failed, nil
}
