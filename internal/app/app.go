// Package app wires configuration, storage, and services into a running
// fundflow instance. It is the shared core used by both cmd/fundflowd and
// cmd/fundflow.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nvaswani/fundflow/internal/common"
	"github.com/nvaswani/fundflow/internal/interfaces"
	"github.com/nvaswani/fundflow/internal/models"
	"github.com/nvaswani/fundflow/internal/services/fund"
	"github.com/nvaswani/fundflow/internal/services/market"
	"github.com/nvaswani/fundflow/internal/services/payment"
	"github.com/nvaswani/fundflow/internal/services/plan"
	"github.com/nvaswani/fundflow/internal/services/portfolio"
	"github.com/nvaswani/fundflow/internal/services/scheduler"
	"github.com/nvaswani/fundflow/internal/storage"
)

// App holds all initialized services and the simulated gateway. The
// gateway is kept concrete because the console drives its manual
// completion controls, which are not part of the PaymentGateway contract.
type App struct {
	Config    *common.Config
	Logger    *common.Logger
	Storage   interfaces.StorageManager
	IDs       interfaces.IDGenerator
	Market    interfaces.MarketPriceService
	Gateway   *payment.Simulator
	Funds     interfaces.FundService
	Plans     interfaces.PlanService
	Portfolio interfaces.PortfolioService
	Scheduler interfaces.PlanScheduler

	// DemoUserID is set when the demo user is seeded; empty otherwise.
	DemoUserID  string
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, the market and payment simulators, and all
// services. configPath may be empty, in which case the default resolution
// logic is used: FUNDFLOW_CONFIG, then fundflow.toml beside the binary,
// then config/fundflow.toml for development.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FUNDFLOW_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "fundflow.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/fundflow.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager := storage.NewManager(logger)
	idgen := common.NewIDGenerator(config.IDs.Mode)

	marketService := market.NewService(logger)
	gateway := payment.NewSimulator(
		payment.WithAutoComplete(config.Payment.AutoComplete),
		payment.WithSuccessRate(config.Payment.SuccessRate),
		payment.WithLatency(config.Payment.GetMinDelay(), config.Payment.GetMaxDelay()),
		payment.WithDuplicateDelivery(config.Payment.DuplicateDelivery),
		payment.WithRateLimit(config.Payment.RateLimit),
		payment.WithLogger(logger),
	)

	fundService := fund.NewService(storageManager, marketService, idgen, logger)
	planService := plan.NewService(storageManager, idgen, logger)
	portfolioService := portfolio.NewService(storageManager, marketService, logger)
	schedulerService := scheduler.NewService(storageManager, planService, marketService, gateway, idgen, logger)

	a := &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		IDs:         idgen,
		Market:      marketService,
		Gateway:     gateway,
		Funds:       fundService,
		Plans:       planService,
		Portfolio:   portfolioService,
		Scheduler:   schedulerService,
		StartupTime: startupStart,
	}

	if err := a.seed(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to seed sample data: %w", err)
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// seed loads the configured sample data: a catalog of funds with their
// market quotes, and a demo user for the console to act as.
func (a *App) seed(ctx context.Context) error {
	if a.Config.Seed.SampleFunds {
		samples := []interfaces.CreateFundRequest{
			{Name: "HDFC Flexi Cap Fund", Category: models.CategoryEquity, Risk: models.RiskHigh, NAV: 150.50},
			{Name: "ICICI Prudential Balanced", Category: models.CategoryHybrid, Risk: models.RiskMedium, NAV: 85.25},
			{Name: "SBI Debt Fund", Category: models.CategoryDebt, Risk: models.RiskLow, NAV: 45.80},
			{Name: "Axis ELSS Tax Saver", Category: models.CategoryELSS, Risk: models.RiskHigh, NAV: 120.00},
			{Name: "Kotak Small Cap Fund", Category: models.CategoryEquity, Risk: models.RiskHigh, NAV: 95.75},
			{Name: "HDFC Corporate Bond", Category: models.CategoryDebt, Risk: models.RiskLow, NAV: 32.50},
		}
		for _, req := range samples {
			if _, err := a.Funds.CreateFund(ctx, req); err != nil {
				return fmt.Errorf("failed to seed fund %s: %w", req.Name, err)
			}
		}
		a.Logger.Info().Int("funds", len(samples)).Msg("Sample fund catalog seeded")
	}

	if a.Config.Seed.DemoUser {
		user := models.User{
			ID:    a.IDs.NextID(common.PrefixUser),
			Name:  "Demo User",
			Email: "demo@example.com",
		}
		if err := a.Storage.Users().Add(ctx, user); err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}
		a.DemoUserID = user.ID
		a.Logger.Info().Str("user", user.ID).Msg("Demo user seeded")
	}

	return nil
}

// RegisterUser stores a new account holder and returns it. The console
// calls this when someone wants to act as themselves rather than the demo
// user.
func (a *App) RegisterUser(ctx context.Context, name, email string) (*models.User, error) {
	if name == "" {
		return nil, models.NewValidation("name", "is required")
	}
	if email == "" {
		return nil, models.NewValidation("email", "is required")
	}

	user := models.User{
		ID:    a.IDs.NextID(common.PrefixUser),
		Name:  name,
		Email: email,
	}
	if err := a.Storage.Users().Add(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	a.Logger.Info().Str("user", user.ID).Str("email", user.Email).Msg("User registered")
	return &user, nil
}

// Close releases all resources held by the App. Shutdown order: drain the
// payment gateway so in-flight confirmations settle, then close storage.
func (a *App) Close() {
	if a.Gateway != nil {
		if err := a.Gateway.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close payment gateway")
		}
		a.Gateway = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
