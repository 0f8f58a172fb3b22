package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fkaiser/morningsync/config"
	"github.com/fkaiser/morningsync/internal/clients/weather"
	"github.com/fkaiser/morningsync/internal/domain"
	"github.com/fkaiser/morningsync/internal/format"
)

type MessageSender interface {
	SendMessage(text string) error
}

// Agenda is the calendar query surface the reminder draws from.
type Agenda interface {
	Events(ctx context.Context, window domain.Window) ([]domain.Event, error)
}

// StateStore persists the last-fired reminder date.
type StateStore interface {
	LastReminderDate() (string, error)
	SetLastReminderDate(date string) error
}

type Scheduler struct {
	cron    *cron.Cron
	cfg     *config.Config
	state   StateStore
	agenda  Agenda
	weather *weather.Client
	sender  MessageSender
	now     func() time.Time
}

func New(cfg *config.Config, state StateStore, agenda Agenda, weatherClient *weather.Client) *Scheduler {
	c := cron.New(cron.WithLocation(cfg.Timezone))

	return &Scheduler{
		cron:    c,
		cfg:     cfg,
		state:   state,
		agenda:  agenda,
		weather: weatherClient,
		now: func() time.Time {
			return time.Now().In(cfg.Timezone)
		},
	}
}

func (s *Scheduler) SetSender(sender MessageSender) {
	s.sender = sender
}

// Start registers the per-minute reminder check and blocks until ctx
// is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc("* * * * *", s.checkReminder); err != nil {
		return fmt.Errorf("add reminder check: %w", err)
	}

	s.cron.Start()
	log.Printf("Scheduler started (TZ: %s, reminder: %s)", s.cfg.Timezone, s.cfg.ReminderTime)

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

// checkReminder fires the daily agenda once the configured local time
// is reached, at most once per calendar day. The date marker is
// written only after a successful send, so a failed send is retried on
// the next tick.
func (s *Scheduler) checkReminder() {
	if s.sender == nil {
		return
	}

	now := s.now()
	due, err := reminderDue(now, s.cfg.ReminderTime)
	if err != nil {
		log.Printf("Invalid reminder time %q: %v", s.cfg.ReminderTime, err)
		return
	}
	if !due {
		return
	}

	today := now.Format("2006-01-02")
	last, err := s.state.LastReminderDate()
	if err != nil {
		log.Printf("Error reading last reminder date: %v", err)
		return
	}
	if last == today {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	text, err := s.buildReminder(ctx, now)
	if err != nil {
		log.Printf("Error building reminder: %v", err)
		return
	}

	if err := s.sender.SendMessage(text); err != nil {
		log.Printf("Error sending reminder: %v", err)
		return
	}

	if err := s.state.SetLastReminderDate(today); err != nil {
		log.Printf("Error saving last reminder date: %v", err)
	}
}

// reminderDue reports whether now has reached the HH:MM reminder time.
func reminderDue(now time.Time, clock string) (bool, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return false, err
	}
	due := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return !now.Before(due), nil
}

// buildReminder composes the morning message: greeting, optional
// weather line, today's agenda.
func (s *Scheduler) buildReminder(ctx context.Context, now time.Time) (string, error) {
	window := domain.WindowFor(domain.WindowToday, now)
	events, err := s.agenda.Events(ctx, window)
	if err != nil {
		return "", fmt.Errorf("get today's events: %w", err)
	}

	plan, err := format.Render(domain.WindowToday, events)
	if err != nil {
		return "", fmt.Errorf("render today's plan: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("☀️ <b>Guten Morgen!</b>\n\n")
	if s.weather != nil && s.weather.IsConfigured() {
		sb.WriteString("🌤 " + s.weather.Forecast(ctx) + "\n\n")
	}
	sb.WriteString(plan)
	return sb.String(), nil
}
