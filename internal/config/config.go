// Package config defines the application configuration and loads it from a
// YAML file, applying defaults for anything left unspecified.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"homeplan/pkg/constants"
	"homeplan/pkg/plan"
	"homeplan/pkg/sensitivity"
)

// Configuration holds all configuration for homeplan.
type Configuration struct {
	Plan    plan.Inputs             `yaml:"plan"`
	Sweep   sensitivity.SweepConfig `yaml:"sweep,omitempty"`
	Logging LoggingConfig           `yaml:"logging,omitempty"`
	Output  OutputConfig            `yaml:"output,omitempty"`
	Store   StoreConfig             `yaml:"store,omitempty"`
	Server  ServerConfig            `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// StoreConfig selects where saved plans live. An empty path selects the
// in-memory repository.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ServerConfig holds the HTTP API options.
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Configuration {
	return &Configuration{
		Plan:  plan.DefaultInputs(),
		Sweep: sensitivity.DefaultSweepConfig(),
		Server: ServerConfig{
			Address: constants.DefaultServerAddress,
		},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there, on top of the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	configuration := Default()
	if err := viper.Unmarshal(configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return configuration, nil
}

// ClampInputs floors every negative numeric input at zero and returns a
// warning per adjusted field. The calculation engine assumes clamped,
// non-negative inputs; this is where that guarantee is established.
func (c *Configuration) ClampInputs() []string {
	var warnings []string

	clamp := func(name string, v *float64) {
		if *v < 0 {
			warnings = append(warnings, fmt.Sprintf("negative %s (%.2f) clamped to 0", name, *v))
			*v = 0
		}
	}
	clampInt := func(name string, v *int) {
		if *v < 0 {
			warnings = append(warnings, fmt.Sprintf("negative %s (%d) clamped to 0", name, *v))
			*v = 0
		}
	}

	in := &c.Plan
	clamp("purchasePrice", &in.PurchasePrice)
	clamp("registrationRatePct", &in.RegistrationRatePct)
	clamp("notaryFees", &in.NotaryFees)
	clamp("renovationBudget", &in.RenovationBudget)
	clamp("contingencyPct", &in.ContingencyPct)
	clamp("ownCash", &in.OwnCash)
	clamp("cryptoNet", &in.CryptoNet)
	clamp("familyLoanAmount", &in.FamilyLoanAmount)
	clamp("familyLoanRatePct", &in.FamilyLoanRatePct)
	clampInt("familyLoanTermYears", &in.FamilyLoanTermYears)
	clamp("bankLoanAmount", &in.BankLoanAmount)
	clamp("bankRatePct", &in.BankRatePct)
	clampInt("bankTermYears", &in.BankTermYears)
	clamp("netIncomeMonthly", &in.NetIncomeMonthly)
	clamp("otherFixedCostsMonthly", &in.OtherFixedCostsMonthly)
	clamp("airbnbIncome", &in.AirbnbIncome)

	return warnings
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. None of these block computation; the engine has an
// explicit policy for every numeric edge case.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	in := c.Plan
	if in.BankLoanAmount > 0 && in.BankTermYears == 0 {
		warnings = append(warnings, "bank loan amount set with a zero term; no payment will be computed")
	}
	if in.FamilyLoanAmount > 0 && in.FamilyLoanTermYears == 0 {
		warnings = append(warnings, "family loan amount set with a zero term; no payment will be computed")
	}
	if in.NetIncomeMonthly == 0 {
		warnings = append(warnings, "net income is zero; debt-to-income will report 0% by policy")
	}
	if in.ContingencyPct < constants.RecommendedContingencyPct {
		warnings = append(warnings, fmt.Sprintf("renovation contingency %.1f%% is below the recommended %.0f%%",
			in.ContingencyPct, constants.RecommendedContingencyPct))
	}
	if err := c.Sweep.Validate(); err != nil {
		warnings = append(warnings, fmt.Sprintf("sensitivity sweep config invalid: %v", err))
	}

	return warnings
}
