package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level default = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.IDs.Mode != "sequence" {
		t.Errorf("IDs.Mode default = %q, want %q", cfg.IDs.Mode, "sequence")
	}
	if cfg.Payment.SuccessRate != 1.0 {
		t.Errorf("Payment.SuccessRate default = %v, want 1.0", cfg.Payment.SuccessRate)
	}
	if !cfg.Payment.AutoComplete {
		t.Error("Payment.AutoComplete should default to true")
	}
	if cfg.Scheduler.Cron == "" {
		t.Error("Scheduler.Cron default must not be empty")
	}
}

func TestConfig_LoadMergesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fundflow.toml")
	data := `
environment = "production"

[logging]
level = "debug"

[payment]
success_rate = 0.75
min_delay = "100ms"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Payment.SuccessRate != 0.75 {
		t.Errorf("Payment.SuccessRate = %v, want 0.75", cfg.Payment.SuccessRate)
	}
	if got := cfg.Payment.GetMinDelay(); got != 100*time.Millisecond {
		t.Errorf("GetMinDelay() = %v, want 100ms", got)
	}
	// Untouched sections keep their defaults.
	if cfg.IDs.Mode != "sequence" {
		t.Errorf("IDs.Mode = %q, want default %q", cfg.IDs.Mode, "sequence")
	}
	if !cfg.IsProduction() {
		t.Error("environment = production should report IsProduction")
	}
}

func TestConfig_LoadSkipsMissingFiles(t *testing.T) {
	cfg, err := LoadConfig("does/not/exist.toml")
	if err != nil {
		t.Fatalf("LoadConfig should skip missing files, got %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default", cfg.Logging.Level)
	}
}

func TestConfig_LogLevelEnvOverride(t *testing.T) {
	t.Setenv("FUNDFLOW_LOG_LEVEL", "warn")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q after env override, want %q", cfg.Logging.Level, "warn")
	}
}

func TestConfig_SuccessRateEnvOverride(t *testing.T) {
	t.Setenv("FUNDFLOW_SUCCESS_RATE", "0.5")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Payment.SuccessRate != 0.5 {
		t.Errorf("Payment.SuccessRate = %v after env override, want 0.5", cfg.Payment.SuccessRate)
	}
}

func TestConfig_RunOnStartEnvOverride(t *testing.T) {
	t.Setenv("FUNDFLOW_RUN_ON_START", "false")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Scheduler.RunOnStart {
		t.Error("Scheduler.RunOnStart should be false after env override")
	}
}

func TestPaymentConfig_GetDelays_InvalidFallsBack(t *testing.T) {
	cfg := &PaymentConfig{MinDelay: "not-a-duration", MaxDelay: ""}
	if d := cfg.GetMinDelay(); d != 0 {
		t.Errorf("GetMinDelay() = %v, want 0 (fallback for invalid)", d)
	}
	if d := cfg.GetMaxDelay(); d != 0 {
		t.Errorf("GetMaxDelay() = %v, want 0 (fallback for empty)", d)
	}
}
