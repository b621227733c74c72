package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/remindly/remindly/internal/alert"
	"github.com/remindly/remindly/internal/clock"
	"github.com/remindly/remindly/internal/config"
	"github.com/remindly/remindly/internal/database"
	"github.com/remindly/remindly/internal/ics"
	"github.com/remindly/remindly/internal/log"
	"github.com/remindly/remindly/internal/models"
	"github.com/remindly/remindly/internal/notify"
	"github.com/remindly/remindly/internal/repository"
)

func main() {
	exportUser := flag.String("export-user", "", "export the user's reminders as iCalendar to stdout and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log.SetLevel(log.ParseLevel(cfg.LogLevel))

	if cfg.DatabaseURI == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URI is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Error("failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("connected to database")

	if err := db.Migrate(ctx); err != nil {
		log.Error("failed to run migrations", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	sharedRepo := repository.NewSharedReminderRepository(db)
	clk := clock.System{}

	if *exportUser != "" {
		if err := runExport(ctx, reminderRepo, clk, *exportUser); err != nil {
			log.Error("export failed", err, "user_uuid", *exportUser)
			os.Exit(1)
		}
		return
	}

	sweeper := alert.NewSweeper(
		userRepo,
		reminderSources{owned: reminderRepo, shared: sharedRepo},
		notify.NewWebhook(cfg.WebhookTimeout),
		clk,
		cfg.AlertThresholdDays,
		cfg.SweepWorkers,
	)

	runSweep := func() {
		if err := sweeper.Run(ctx); err != nil {
			log.Error("alert sweep failed", err)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.SweepSchedule, runSweep); err != nil {
		log.Error("invalid sweep schedule", err, "schedule", cfg.SweepSchedule)
		os.Exit(1)
	}
	c.Start()
	log.Info("alert sweep scheduled", "schedule", cfg.SweepSchedule, "threshold_days", cfg.AlertThresholdDays)

	// First pass right away so a restart never skips a day.
	runSweep()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")
	cancel()
	<-c.Stop().Done()
}

func runExport(ctx context.Context, reminders *repository.ReminderRepository, clk clock.Clock, userUUID string) error {
	open, err := reminders.ListOpenByOwner(ctx, userUUID)
	if err != nil {
		return err
	}
	feed, err := ics.Export(open, clk.Now())
	if err != nil {
		return err
	}
	fmt.Print(feed)
	return nil
}

// reminderSources adapts the owned and shared repositories to the
// sweep's single collaborator interface.
type reminderSources struct {
	owned  *repository.ReminderRepository
	shared *repository.SharedReminderRepository
}

func (s reminderSources) ListOpenByOwner(ctx context.Context, ownerUUID string) ([]*models.Reminder, error) {
	return s.owned.ListOpenByOwner(ctx, ownerUUID)
}

func (s reminderSources) ListSharedWith(ctx context.Context, userUUID string) ([]*models.Reminder, error) {
	return s.shared.ListSharedWith(ctx, userUUID)
}
