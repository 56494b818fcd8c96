// Package config loads the simulator configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Simulator holds all configuration for the spell simulator.
type Simulator struct {
	LogLevel string `yaml:"log_level"`

	// Tick loop
	TickIntervalMs int `yaml:"tick_interval_ms"`

	// Static data
	AbilityDataPath string `yaml:"ability_data_path"`

	// Database (disable rules); optional
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// TickInterval returns the tick interval as a duration.
func (s Simulator) TickInterval() time.Duration {
	return time.Duration(s.TickIntervalMs) * time.Millisecond
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel:        "info",
		TickIntervalMs:  100,
		AbilityDataPath: "config/abilities.yaml",
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "spellcore",
			Password: "spellcore",
			DBName:   "spellcore",
			SSLMode:  "disable",
		},
	}
}

// LoadSimulator reads the config file at path over the defaults.
// A missing file returns the defaults unchanged.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
