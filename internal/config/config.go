// Package config provides Viper-based configuration loading for the simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SimulationConfig holds the parameters of a single simulation run.
type SimulationConfig struct {
	// DiceFile is the path to the YAML dice-set definition.
	DiceFile string `mapstructure:"dice_file"`
	// Rolls is the number of rounds to play.
	Rolls int `mapstructure:"rolls"`
	// Seed seeds the process-wide source; 0 selects crypto/rand.
	Seed uint64 `mapstructure:"seed"`
	// Format is the results shape to print: "wide" or "narrow".
	Format string `mapstructure:"format"`
	// Output is how tables are written: "table" or "csv".
	Output string `mapstructure:"output"`
}

// Seeded reports whether runs should be reproducible.
func (s SimulationConfig) Seeded() bool {
	return s.Seed != 0
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.DiceFile == "" {
		errs = append(errs, "simulation.dice_file must not be empty")
	}
	if s.Rolls < 1 {
		errs = append(errs, fmt.Sprintf("simulation.rolls must be >= 1, got %d", s.Rolls))
	}
	validFormats := map[string]bool{"wide": true, "narrow": true}
	if !validFormats[s.Format] {
		errs = append(errs, fmt.Sprintf("simulation.format must be one of [wide, narrow], got %q", s.Format))
	}
	validOutputs := map[string]bool{"table": true, "csv": true}
	if !validOutputs[s.Output] {
		errs = append(errs, fmt.Sprintf("simulation.output must be one of [table, csv], got %q", s.Output))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with MONTECARLO_ prefix
	v.SetEnvPrefix("MONTECARLO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("simulation.dice_file", "configs/coins.yaml")
	v.SetDefault("simulation.rolls", 1000)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.format", "wide")
	v.SetDefault("simulation.output", "table")
}
