package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8083

[database]
host = "db.internal"
port = 5433
user = "svc"
password = "secret"
dbname = "availability"

[policy]
min_advance_notice_minutes = 120
max_advance_window_days = 30

[resource_service]
url = "http://resources:8081"
timeout = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "http://resources:8081", cfg.ResourceService.URL)

	// Незаданные поля берутся из дефолтов
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, domain.DefaultMaxOccurrences, cfg.Policy.MaxOccurrences)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 99999

[database]
host = "localhost"
dbname = "availability"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingDatabase(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8083
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "svc",
		Password: "secret",
		DBName:   "availability",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=svc password=secret dbname=availability sslmode=disable",
		d.DSN())
}

func TestPolicyConfig_ToEnginePolicy(t *testing.T) {
	p := PolicyConfig{
		MinAdvanceNoticeMinutes: 120,
		MaxAdvanceWindowDays:    30,
		MutationHorizonDays:     60,
		MaxOccurrences:          100,
		SeasonalMinDays:         14,
	}

	policy := p.ToEnginePolicy()
	assert.Equal(t, 2*time.Hour, policy.DefaultMinAdvanceNotice)
	assert.Equal(t, 30*24*time.Hour, policy.DefaultMaxAdvanceWindow)
	assert.Equal(t, 60*24*time.Hour, policy.MutationHorizon)
	assert.Equal(t, 100, policy.MaxOccurrences)
	assert.Equal(t, 14, policy.SeasonalMinDays)
}

func TestPolicyConfig_ToEnginePolicyZeroKeepsDefaults(t *testing.T) {
	policy := PolicyConfig{}.ToEnginePolicy()

	assert.Equal(t, domain.DefaultMinAdvanceNotice, policy.DefaultMinAdvanceNotice)
	assert.Equal(t, time.Duration(0), policy.DefaultMaxAdvanceWindow)
	assert.Equal(t, domain.DefaultMaxOccurrences, policy.MaxOccurrences)
}
