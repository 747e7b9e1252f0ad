package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"reference_date": "2025-01-31",
		"num_days": 90,
		"seed": 7,
		"markets": ["egypt"],
		"storage": {"driver": "sqlite", "dsn": "test.db"},
		"translation": {"enabled": true, "api_key": "k", "rows": 40},
		"log_level": "debug"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "2025-01-31", cfg.ReferenceDate)
	assert.Equal(t, 90, cfg.NumDays)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, []string{"egypt"}, cfg.Markets)
	assert.Equal(t, "test.db", cfg.Storage.DSN)
	assert.True(t, cfg.Translation.Enabled)
	assert.Equal(t, 40, cfg.Translation.Rows)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"bad reference date", func(c *Config) { c.ReferenceDate = "31/01/2025" }, "ReferenceDate"},
		{"negative num days", func(c *Config) { c.NumDays = -1 }, "NumDays"},
		{"unknown market", func(c *Config) { c.Markets = []string{"egypt", "mars"} }, "Markets"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mysql" }, "Driver"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"bad redis addr", func(c *Config) { c.Redis.Addr = "no-port" }, "Addr"},
		{"translation without key", func(c *Config) { c.Translation.Enabled = true }, "no API key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{NumDays: 30, Storage: StorageConfig{DSN: "custom.db"}}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 30, merged.NumDays)
	assert.Equal(t, uint64(42), merged.Seed)
	assert.Equal(t, "sqlite", merged.Storage.Driver)
	assert.Equal(t, "custom.db", merged.Storage.DSN)
	assert.Equal(t, []string{"egypt", "saudi-arabia"}, merged.Markets)
	assert.Equal(t, 10, merged.Report.TopN)
	assert.Equal(t, "@every 24h", merged.Schedule)
	assert.Equal(t, "localhost:8080", merged.Server.Addr)
	assert.Equal(t, 120, merged.Server.RateLimit)

	assert.Equal(t, 0, cfg.Report.TopN, "receiver is not modified")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/jobs")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("JOBINSIGHTS_LOG_LEVEL", "warn")

	cfg := Defaults()
	cfg.ApplyEnv()

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://u:p@localhost:5432/jobs", cfg.Storage.DSN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "secret", cfg.Translation.APIKey)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestReference(t *testing.T) {
	cfg := &Config{ReferenceDate: "2025-01-31"}
	ref, err := cfg.Reference()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), ref)

	cfg.ReferenceDate = ""
	ref, err = cfg.Reference()
	require.NoError(t, err)
	assert.Equal(t, 0, ref.Hour())
}
