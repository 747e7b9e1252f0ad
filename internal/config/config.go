// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the layout of the reference date.
const DateLayout = "2006-01-02"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use Defaults or CLI flags.
type Config struct {
	// ReferenceDate is the as-of date posting ages are subtracted from. Empty means today.
	ReferenceDate string   `json:"reference_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NumDays       int      `json:"num_days,omitempty" validate:"gte=0,lte=3650"`
	Seed          uint64   `json:"seed,omitempty"`
	Markets       []string `json:"markets,omitempty" validate:"dive,oneof=egypt saudi-arabia"`

	Storage     StorageConfig     `json:"storage"`
	Redis       RedisConfig       `json:"redis"`
	Translation TranslationConfig `json:"translation"`
	Scraper     ScraperConfig     `json:"scraper"`
	Report      ReportConfig      `json:"report"`
	Server      ServerConfig      `json:"server"`

	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=json console"`
	Schedule  string `json:"schedule,omitempty"`
}

// StorageConfig selects the clean-table store.
type StorageConfig struct {
	Driver string `json:"driver,omitempty" validate:"omitempty,oneof=sqlite postgres"`
	DSN    string `json:"dsn,omitempty"`
}

// RedisConfig configures the optional translation cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty" validate:"omitempty,hostname_port"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty" validate:"gte=0,lte=15"`
}

// TranslationConfig configures title translation.
type TranslationConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
	// Rows limits translation to the first rows titles in descending order, sent without
	// language detection. Zero translates every Arabic title.
	Rows        int    `json:"rows,omitempty" validate:"gte=0"`
	ModelTier   string `json:"model_tier,omitempty" validate:"omitempty,oneof=lite standard"`
	TimeoutSecs int    `json:"timeout_secs,omitempty" validate:"gte=0"`
	Concurrency int    `json:"concurrency,omitempty" validate:"gte=0,lte=64"`
}

// ScraperConfig configures the job-site scraper.
type ScraperConfig struct {
	Pages       int     `json:"pages,omitempty" validate:"gte=0"`
	RatePerSec  float64 `json:"rate_per_sec,omitempty" validate:"gte=0"`
	Concurrency int     `json:"concurrency,omitempty" validate:"gte=0,lte=32"`
	UserAgent   string  `json:"user_agent,omitempty"`
	UseBrowser  bool    `json:"use_browser,omitempty"`
	OutputDir   string  `json:"output_dir,omitempty"`
}

// ReportConfig configures report output.
type ReportConfig struct {
	TopN int `json:"top_n,omitempty" validate:"gte=0"`
}

// ServerConfig configures the read-only HTTP API.
type ServerConfig struct {
	Addr string `json:"addr,omitempty" validate:"omitempty,hostname_port"`
	// RateLimit is the per-client request budget per minute. Zero disables limiting.
	RateLimit int `json:"rate_limit,omitempty" validate:"gte=0"`
	RateBurst int `json:"rate_burst,omitempty" validate:"gte=0"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		NumDays: 120,
		Seed:    42,
		Markets: []string{"egypt", "saudi-arabia"},
		Storage: StorageConfig{Driver: "sqlite", DSN: "database.db"},
		Translation: TranslationConfig{
			ModelTier:   "lite",
			TimeoutSecs: 20,
			Concurrency: 4,
		},
		Scraper: ScraperConfig{
			Pages:       1,
			RatePerSec:  1,
			Concurrency: 4,
			OutputDir:   filepath.Join("data", "raw"),
		},
		Report:    ReportConfig{TopN: 10},
		Server:    ServerConfig{Addr: "localhost:8080", RateLimit: 120, RateBurst: 20},
		LogLevel:  "info",
		LogFormat: "console",
		Schedule:  "@every 24h",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from the environment. DATABASE_URL switches the store to
// PostgreSQL when it is a postgres URL.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Storage.DSN = v
		if strings.HasPrefix(v, "postgres://") || strings.HasPrefix(v, "postgresql://") {
			c.Storage.Driver = "postgres"
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Translation.APIKey = v
	}
	if v := os.Getenv("JOBINSIGHTS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Translation.Enabled && c.Translation.APIKey == "" {
		return fmt.Errorf("config error: translation is enabled but no API key is set")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Bools cannot be told apart from an explicit false, so they are never merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ReferenceDate == "" {
		result.ReferenceDate = defaults.ReferenceDate
	}
	if result.NumDays == 0 {
		result.NumDays = defaults.NumDays
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if len(result.Markets) == 0 {
		result.Markets = append([]string(nil), defaults.Markets...)
	}

	if result.Storage.Driver == "" {
		result.Storage.Driver = defaults.Storage.Driver
	}
	if result.Storage.DSN == "" {
		result.Storage.DSN = defaults.Storage.DSN
	}
	if result.Redis.Addr == "" {
		result.Redis.Addr = defaults.Redis.Addr
	}
	if result.Redis.Password == "" {
		result.Redis.Password = defaults.Redis.Password
	}

	if result.Translation.APIKey == "" {
		result.Translation.APIKey = defaults.Translation.APIKey
	}
	if result.Translation.ModelTier == "" {
		result.Translation.ModelTier = defaults.Translation.ModelTier
	}
	if result.Translation.TimeoutSecs == 0 {
		result.Translation.TimeoutSecs = defaults.Translation.TimeoutSecs
	}
	if result.Translation.Concurrency == 0 {
		result.Translation.Concurrency = defaults.Translation.Concurrency
	}
	if result.Translation.Rows == 0 {
		result.Translation.Rows = defaults.Translation.Rows
	}

	if result.Scraper.Pages == 0 {
		result.Scraper.Pages = defaults.Scraper.Pages
	}
	if result.Scraper.RatePerSec == 0 {
		result.Scraper.RatePerSec = defaults.Scraper.RatePerSec
	}
	if result.Scraper.Concurrency == 0 {
		result.Scraper.Concurrency = defaults.Scraper.Concurrency
	}
	if result.Scraper.UserAgent == "" {
		result.Scraper.UserAgent = defaults.Scraper.UserAgent
	}
	if result.Scraper.OutputDir == "" {
		result.Scraper.OutputDir = defaults.Scraper.OutputDir
	}

	if result.Report.TopN == 0 {
		result.Report.TopN = defaults.Report.TopN
	}
	if result.Server.Addr == "" {
		result.Server.Addr = defaults.Server.Addr
	}
	if result.Server.RateLimit == 0 {
		result.Server.RateLimit = defaults.Server.RateLimit
	}
	if result.Server.RateBurst == 0 {
		result.Server.RateBurst = defaults.Server.RateBurst
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.Schedule == "" {
		result.Schedule = defaults.Schedule
	}

	return result
}

// Reference returns the parsed reference date, or today (UTC) when none is set.
func (c *Config) Reference() (time.Time, error) {
	if c.ReferenceDate == "" {
		y, m, d := time.Now().UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(DateLayout, c.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date %q: %w", c.ReferenceDate, err)
	}
	return t, nil
}

// TranslationTimeout returns the per-call translation timeout.
func (c *Config) TranslationTimeout() time.Duration {
	return time.Duration(c.Translation.TimeoutSecs) * time.Second
}
