package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"homeplan/pkg/sensitivity"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	path := writeConfig(t, `
plan:
  projectName: "Test project"
  purchasePrice: 500000
  registrationRatePct: 2
  bankLoanAmount: 400000
  bankRatePct: 3.5
  bankTermYears: 20
  netIncomeMonthly: 6000
logging:
  level: debug
  format: console
output:
  format: csv
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Plan.ProjectName != "Test project" {
		t.Errorf("ProjectName = %s, expected Test project", conf.Plan.ProjectName)
	}
	if conf.Plan.PurchasePrice != 500000 {
		t.Errorf("PurchasePrice = %.2f, expected 500000", conf.Plan.PurchasePrice)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("logging config not loaded: %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Output.Format = %s, expected csv", conf.Output.Format)
	}

	// Unspecified sections keep their defaults.
	defaults := sensitivity.DefaultSweepConfig()
	if conf.Sweep.StepRate != defaults.StepRate {
		t.Errorf("Sweep.StepRate = %.2f, expected default %.2f", conf.Sweep.StepRate, defaults.StepRate)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("LoadConfiguration() should fail for a missing file")
	}
}

func TestClampInputs(t *testing.T) {
	conf := Default()
	conf.Plan.NotaryFees = -100
	conf.Plan.BankTermYears = -5

	warnings := conf.ClampInputs()
	if len(warnings) != 2 {
		t.Fatalf("ClampInputs() produced %d warnings, expected 2: %v", len(warnings), warnings)
	}
	if conf.Plan.NotaryFees != 0 || conf.Plan.BankTermYears != 0 {
		t.Errorf("negative fields not clamped: notary=%.2f term=%d", conf.Plan.NotaryFees, conf.Plan.BankTermYears)
	}

	// Clean inputs produce no warnings.
	if warnings := Default().ClampInputs(); len(warnings) != 0 {
		t.Errorf("ClampInputs() on defaults produced warnings: %v", warnings)
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := Default()
	conf.Plan.BankTermYears = 0
	conf.Plan.NetIncomeMonthly = 0
	conf.Sweep.StepAmount = 0

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 3 {
		t.Fatalf("ValidateConfiguration() produced %d warnings, expected 3: %v", len(warnings), warnings)
	}

	var sawSweep bool
	for _, w := range warnings {
		if strings.Contains(w, "sweep") {
			sawSweep = true
		}
	}
	if !sawSweep {
		t.Errorf("expected a sweep warning in %v", warnings)
	}
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		logging   LoggingConfig
		override  string
		expectErr bool
	}{
		{name: "Defaults", logging: LoggingConfig{}, expectErr: false},
		{name: "Console debug", logging: LoggingConfig{Level: "debug", Format: "console"}, expectErr: false},
		{name: "Override wins", logging: LoggingConfig{Level: "info"}, override: "warn", expectErr: false},
		{name: "Invalid level", logging: LoggingConfig{Level: "loud"}, expectErr: true},
		{name: "Invalid format", logging: LoggingConfig{Format: "xml"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := InitializeLogger(tt.logging, tt.override)
			if (err != nil) != tt.expectErr {
				t.Errorf("InitializeLogger() error = %v, expectErr %t", err, tt.expectErr)
			}
			if err == nil && logger == nil {
				t.Errorf("InitializeLogger() returned nil logger without error")
			}
		})
	}
}
