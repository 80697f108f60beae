package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nvaswani/fundflow/internal/app"
	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/console"
)

func main() {
	// Resolve config path
	configPath := os.Getenv("FUNDFLOW_CONFIG")

	a, err := app.NewApp(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	// Banner goes to stderr, so the menu on stdout stays clean.
	common.PrintBanner(a.Config, a.Logger)

	c := console.New(a, os.Stdin, os.Stdout)
	if err := c.Run(context.Background()); err != nil {
		a.Logger.Error().Err(err).Msg("Console session failed")
	}

	a.Close()
	a.Logger.Info().Msg("Console stopped")
}
