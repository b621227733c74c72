package alert

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/remindly/remindly/internal/clock"
	"github.com/remindly/remindly/internal/log"
	"github.com/remindly/remindly/internal/models"
	"github.com/remindly/remindly/internal/notify"
	"github.com/remindly/remindly/internal/recur"
)

// UserSource lists the users considered by a sweep.
type UserSource interface {
	ListActive(ctx context.Context) ([]*models.User, error)
}

// ReminderSource lists a user's open reminders, owned and shared.
type ReminderSource interface {
	ListOpenByOwner(ctx context.Context, ownerUUID string) ([]*models.Reminder, error)
	ListSharedWith(ctx context.Context, userUUID string) ([]*models.Reminder, error)
}

// Sweeper runs the periodic due-soon pass over every user. Users are
// independent of each other, so they are evaluated concurrently on a
// bounded pool; within a user, reminders are walked in next-occurrence
// order. Failures are logged and never stop the rest of the sweep.
type Sweeper struct {
	users         UserSource
	reminders     ReminderSource
	sender        notify.Sender
	clk           clock.Clock
	thresholdDays int
	workers       int
}

func NewSweeper(users UserSource, reminders ReminderSource, sender notify.Sender, clk clock.Clock, thresholdDays, workers int) *Sweeper {
	if thresholdDays <= 0 {
		thresholdDays = DefaultThresholdDays
	}
	if workers < 1 {
		workers = 1
	}
	return &Sweeper{
		users:         users,
		reminders:     reminders,
		sender:        sender,
		clk:           clk,
		thresholdDays: thresholdDays,
		workers:       workers,
	}
}

// Run executes one full sweep. The only hard failure is being unable
// to list users; everything past that point is absorbed per reminder.
func (s *Sweeper) Run(ctx context.Context) error {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for sweep: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, user := range users {
		user := user
		g.Go(func() error {
			s.sweepUser(ctx, user)
			return nil
		})
	}
	return g.Wait()
}

func (s *Sweeper) sweepUser(ctx context.Context, user *models.User) {
	if user.AlertWebhookURL == nil || *user.AlertWebhookURL == "" {
		log.Debug("no alert webhook configured, skipping user", "user_uuid", user.UUID)
		return
	}

	owned, err := s.reminders.ListOpenByOwner(ctx, user.UUID)
	if err != nil {
		log.Error("failed to list owned reminders", err, "user_uuid", user.UUID)
	} else {
		s.evaluate(ctx, user, owned, ScopeOwned)
	}

	shared, err := s.reminders.ListSharedWith(ctx, user.UUID)
	if err != nil {
		log.Error("failed to list shared reminders", err, "user_uuid", user.UUID)
		return
	}
	s.evaluate(ctx, user, shared, ScopeShared)
}

func (s *Sweeper) evaluate(ctx context.Context, user *models.User, reminders []*models.Reminder, scope string) {
	now := s.clk.Now()

	type entry struct {
		reminder   *models.Reminder
		resolution recur.Resolution
	}
	entries := make([]entry, 0, len(reminders))
	for _, r := range reminders {
		entries = append(entries, entry{
			reminder:   r,
			resolution: recur.Resolve(r.RecurrenceType, r.RecurrenceRule, r.DateStart, r.DateEnd, now),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].resolution.Sort.Before(entries[j].resolution.Sort)
	})

	for _, e := range entries {
		r, res := e.reminder, e.resolution
		if res.IsNA() {
			log.Debug("skipping reminder with no next occurrence", "scope", scope, "reminder_uuid", r.UUID)
			continue
		}
		if !ShouldAlert(res.Sort, now, s.thresholdDays) {
			log.Debug("reminder not due yet", "scope", scope, "reminder_uuid", r.UUID)
			continue
		}

		payload := BuildNotification(scope, r.Title, res.Sort)
		if err := s.sender.Send(ctx, *user.AlertWebhookURL, payload); err != nil {
			// Best effort: log and keep sweeping.
			log.Error("failed to deliver alert", err, "scope", scope, "reminder_uuid", r.UUID)
			continue
		}
		log.Info("alert delivered", "scope", scope, "reminder_uuid", r.UUID, "due", res.DisplayString())
	}
}
