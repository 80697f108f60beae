package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nvaswani/fundflow/internal/app"
	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/date"
)

func main() {
	// Resolve config path
	configPath := os.Getenv("FUNDFLOW_CONFIG")

	a, err := app.NewApp(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(a.Config, a.Logger)

	// Schedule installment runs against the real calendar date.
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(a.Config.Scheduler.Cron, func() { runDue(a) }); err != nil {
		a.Logger.Fatal().Err(err).Str("cron", a.Config.Scheduler.Cron).Msg("Invalid scheduler cron expression")
	}

	if a.Config.Scheduler.RunOnStart {
		a.Logger.Info().Msg("Running initial installment pass")
		runDue(a)
	}

	c.Start()
	a.Logger.Info().Str("cron", a.Config.Scheduler.Cron).Msg("Scheduler ready")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	a.Logger.Info().Msg("Shutdown signal received")

	// Graceful shutdown: let a running pass finish, but not forever.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
		a.Logger.Warn().Msg("Timed out waiting for running installment pass")
	}

	common.PrintShutdownBanner(a.Logger)
	a.Close()
	a.Logger.Info().Msg("Daemon stopped")
}

// runDue executes one scheduler pass. Failures are logged, never fatal: the
// next tick tries again.
func runDue(a *app.App) {
	if _, err := a.Scheduler.ExecuteDue(context.Background(), date.Today()); err != nil {
		a.Logger.Error().Err(err).Msg("Scheduled installment run failed")
	}
}
