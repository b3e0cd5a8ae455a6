// Package config loads and persists the stamp configuration from
// ~/.config/stamp/config.yaml. Zero-value fields are replaced with
// built-in defaults after loading, so callers always get a usable
// Config even from a partially filled file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Company is the seller identity printed on invoices.
type Company struct {
	Name          string `yaml:"name"`
	OrgNr         string `yaml:"org_nr"`
	Address       string `yaml:"address"`
	ZipCode       string `yaml:"zip_code"`
	AccountNumber string `yaml:"account_number"`
	Mail          string `yaml:"mail"`
	Phone         string `yaml:"phone"`
}

// Config is the root configuration.
type Config struct {
	// DatabasePath is where the SQLite database lives. The STAMP_DB
	// environment variable overrides it.
	DatabasePath string `yaml:"database_path"`
	// ReportDir is where exported invoice PDFs are written.
	ReportDir string `yaml:"report_dir"`
	// MinimumHours is the smallest billable length of a workday.
	MinimumHours int `yaml:"minimum_hours"`
	// WagePerHour is the hourly rate, kept as a decimal string.
	WagePerHour string `yaml:"wage_per_hour"`
	// Currency is the code appended to wage amounts, e.g. "NKR".
	Currency string `yaml:"currency"`
	// Hours is the standard workday used when no explicit time is
	// given, formatted "08:00-16:00".
	Hours string `yaml:"hours"`
	// StandardCustomer and StandardProject are fallbacks for stamping
	// in when no previous workday exists.
	StandardCustomer string  `yaml:"standard_customer"`
	StandardProject  string  `yaml:"standard_project"`
	Company          Company `yaml:"company"`
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func defaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DatabasePath: filepath.Join(home, ".local", "share", "stamp", "stamp.db"),
		ReportDir:    filepath.Join(home, ".local", "share", "stamp", "reports"),
		MinimumHours: 2,
		WagePerHour:  "300",
		Currency:     "NKR",
		Hours:        "08:00-16:00",
	}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "stamp", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "stamp", "config.yaml"), nil
}

// Load reads the config file, filling missing fields with defaults.
// A missing file is not an error.
func Load() (Config, error) {
	cfg := defaultConfig()

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		applyDefaults(&cfg)
	}

	if db := os.Getenv("STAMP_DB"); db != "" {
		cfg.DatabasePath = db
	}
	return cfg, nil
}

// Save writes the config, creating the directory when needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = def.DatabasePath
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = def.ReportDir
	}
	if cfg.MinimumHours == 0 {
		cfg.MinimumHours = def.MinimumHours
	}
	if cfg.WagePerHour == "" {
		cfg.WagePerHour = def.WagePerHour
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}
	if cfg.Hours == "" {
		cfg.Hours = def.Hours
	}
}

// Wage parses the configured hourly rate.
func (c Config) Wage() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.WagePerHour)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid wage_per_hour %q: %w", c.WagePerHour, err)
	}
	return d, nil
}

// WorkHours parses the configured standard workday.
func (c Config) WorkHours() (from, to TimeOfDay, err error) {
	parts := strings.SplitN(c.Hours, "-", 2)
	if len(parts) != 2 {
		return from, to, fmt.Errorf("invalid hours %q: expected the format 08:00-16:00", c.Hours)
	}
	if from, err = parseTimeOfDay(parts[0]); err != nil {
		return from, to, fmt.Errorf("invalid hours %q: %w", c.Hours, err)
	}
	if to, err = parseTimeOfDay(parts[1]); err != nil {
		return from, to, fmt.Errorf("invalid hours %q: %w", c.Hours, err)
	}
	return from, to, nil
}

func parseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Set assigns a configuration value by its yaml key, e.g.
// "wage_per_hour" or "company.name".
func (c *Config) Set(key, value string) error {
	switch key {
	case "database_path":
		c.DatabasePath = value
	case "report_dir":
		c.ReportDir = value
	case "minimum_hours":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("minimum_hours must be a non-negative integer, got %q", value)
		}
		c.MinimumHours = n
	case "wage_per_hour":
		if _, err := decimal.NewFromString(value); err != nil {
			return fmt.Errorf("wage_per_hour must be a number, got %q", value)
		}
		c.WagePerHour = value
	case "currency":
		c.Currency = value
	case "hours":
		probe := Config{Hours: value}
		if _, _, err := probe.WorkHours(); err != nil {
			return err
		}
		c.Hours = value
	case "standard_customer":
		c.StandardCustomer = value
	case "standard_project":
		c.StandardProject = value
	case "company.name":
		c.Company.Name = value
	case "company.org_nr":
		c.Company.OrgNr = value
	case "company.address":
		c.Company.Address = value
	case "company.zip_code":
		c.Company.ZipCode = value
	case "company.account_number":
		c.Company.AccountNumber = value
	case "company.mail":
		c.Company.Mail = value
	case "company.phone":
		c.Company.Phone = value
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}

// String renders the config as YAML for `stamp config show`.
func (c Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<unprintable config: %v>", err)
	}
	return string(data)
}
