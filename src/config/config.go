package config

import (
	"fmt"
	"os"
	"time"

	"cafe-analytics/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// applyDefaults fills zero values that have sensible defaults so a minimal
// config file (just the sources list) is usable.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "cafe-analytics"
	}
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "sqlite"
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		c.Storage.DBPath = "cafe_sales.db"
	}
	if c.Data.RefreshIntervalSeconds == 0 {
		c.Data.RefreshIntervalSeconds = 300
	}
	if c.Analysis.MaxTransactionAmount == 0 {
		c.Analysis.MaxTransactionAmount = 1000.0
	}
	if c.Analysis.MinTransactionAmount == 0 {
		c.Analysis.MinTransactionAmount = 0.01
	}
	if c.Analysis.TotalMismatchTolerance == 0 {
		c.Analysis.TotalMismatchTolerance = 0.01
	}
	if c.Analysis.BusinessHours.Start == "" {
		c.Analysis.BusinessHours.Start = "06:00"
	}
	if c.Analysis.BusinessHours.End == "" {
		c.Analysis.BusinessHours.End = "22:00"
	}
	if c.Analysis.CalendarRegion == "" {
		c.Analysis.CalendarRegion = "us"
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "output"
	}
	if c.Report.Title == "" {
		c.Report.Title = "Cafe Sales Analytics Dashboard"
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Server configuration
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Storage configuration
	switch c.Storage.DBType {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	case "none":
		// persistence disabled
	default:
		return fmt.Errorf("unsupported database type: %s", c.Storage.DBType)
	}

	// Data configuration
	if len(c.Data.Sources) == 0 {
		return fmt.Errorf("at least one data source must be configured")
	}
	for i, src := range c.Data.Sources {
		if src.Name == "" {
			return fmt.Errorf("source %d must have a name", i)
		}
		if src.Path == "" {
			return fmt.Errorf("source '%s' must have a file path", src.Name)
		}
	}
	if c.Data.RefreshIntervalSeconds <= 0 {
		return fmt.Errorf("refresh interval must be greater than 0")
	}

	// Analysis configuration
	if c.Analysis.MinTransactionAmount < 0 {
		return fmt.Errorf("min transaction amount cannot be negative")
	}
	if c.Analysis.MaxTransactionAmount <= c.Analysis.MinTransactionAmount {
		return fmt.Errorf("max transaction amount (%.2f) must exceed min (%.2f)",
			c.Analysis.MaxTransactionAmount, c.Analysis.MinTransactionAmount)
	}
	if c.Analysis.TotalMismatchTolerance < 0 {
		return fmt.Errorf("total mismatch tolerance cannot be negative")
	}
	for _, d := range []struct{ name, val string }{
		{"start_date", c.Analysis.StartDate},
		{"end_date", c.Analysis.EndDate},
	} {
		if d.val == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d.val); err != nil {
			return fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", d.name, d.val)
		}
	}
	for _, h := range []struct{ name, val string }{
		{"business_hours.start", c.Analysis.BusinessHours.Start},
		{"business_hours.end", c.Analysis.BusinessHours.End},
	} {
		if _, err := time.Parse("15:04", h.val); err != nil {
			return fmt.Errorf("invalid %s %q: expected HH:MM", h.name, h.val)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// DateRange returns the configured analysis window. Zero times mean no bound.
func (c *Config) DateRange() (start, end time.Time) {
	if c.Analysis.StartDate != "" {
		start, _ = time.Parse("2006-01-02", c.Analysis.StartDate)
	}
	if c.Analysis.EndDate != "" {
		end, _ = time.Parse("2006-01-02", c.Analysis.EndDate)
	}
	return start, end
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
