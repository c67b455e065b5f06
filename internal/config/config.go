// Package config loads giocalc settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"

	"github.com/fjl/gio-scicalc/internal/calc"
)

// Config holds the startup settings of the calculator app.
type Config struct {
	AngleMode    string `env:"GIOCALC_ANGLE_MODE" envDefault:"DEG"`
	MaxDigits    int    `env:"GIOCALC_MAX_DIGITS" envDefault:"16"`
	LogLevel     string `env:"GIOCALC_LOG_LEVEL" envDefault:"info"`
	HistoryLines int    `env:"GIOCALC_HISTORY_LINES" envDefault:"3"`
}

// Load reads and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (cfg Config) Validate() error {
	if _, err := calc.ParseAngleMode(cfg.AngleMode); err != nil {
		return fmt.Errorf("GIOCALC_ANGLE_MODE: %w", err)
	}
	if cfg.MaxDigits < 1 || cfg.MaxDigits > 20 {
		return fmt.Errorf("GIOCALC_MAX_DIGITS: %d out of range 1..20", cfg.MaxDigits)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("GIOCALC_LOG_LEVEL: %w", err)
	}
	if cfg.HistoryLines < 0 {
		return fmt.Errorf("GIOCALC_HISTORY_LINES: negative value %d", cfg.HistoryLines)
	}
	return nil
}

// CalcOptions converts the settings into engine options.
// It must only be called on a validated Config.
func (cfg Config) CalcOptions() []calc.Option {
	mode, _ := calc.ParseAngleMode(cfg.AngleMode)
	return []calc.Option{
		calc.WithAngleMode(mode),
		calc.WithMaxDigits(cfg.MaxDigits),
	}
}
