package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Policy          PolicyConfig          `toml:"policy"`
	ResourceService ResourceServiceConfig `toml:"resource_service"`
}

// ResourceServiceConfig настройки клиента ResourceService
type ResourceServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PolicyConfig явные политики движка доступности.
// Заменяет неявные глобальные настройки: всё, что влияет на решение,
// передаётся в движок при создании.
type PolicyConfig struct {
	MinAdvanceNoticeMinutes int `toml:"min_advance_notice_minutes"`
	MaxAdvanceWindowDays    int `toml:"max_advance_window_days"`
	MutationHorizonDays     int `toml:"mutation_horizon_days"`
	MaxOccurrences          int `toml:"max_occurrences"`
	SeasonalMinDays         int `toml:"seasonal_min_days"`
}

// ToEnginePolicy конвертирует конфигурацию в политику движка
func (p PolicyConfig) ToEnginePolicy() engine.Policy {
	policy := engine.DefaultPolicy()

	if p.MinAdvanceNoticeMinutes > 0 {
		policy.DefaultMinAdvanceNotice = time.Duration(p.MinAdvanceNoticeMinutes) * time.Minute
	}
	if p.MaxAdvanceWindowDays > 0 {
		policy.DefaultMaxAdvanceWindow = time.Duration(p.MaxAdvanceWindowDays) * 24 * time.Hour
	}
	if p.MutationHorizonDays > 0 {
		policy.MutationHorizon = time.Duration(p.MutationHorizonDays) * 24 * time.Hour
	}
	if p.MaxOccurrences > 0 {
		policy.MaxOccurrences = p.MaxOccurrences
	}
	if p.SeasonalMinDays > 0 {
		policy.SeasonalMinDays = p.SeasonalMinDays
	}

	return policy
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-availability-service",
		},
		Policy: PolicyConfig{
			MinAdvanceNoticeMinutes: int(domain.DefaultMinAdvanceNotice / time.Minute),
			MaxOccurrences:          domain.DefaultMaxOccurrences,
			SeasonalMinDays:         domain.DefaultSeasonalMinDays,
			MutationHorizonDays:     90,
		},
		ResourceService: ResourceServiceConfig{
			URL:     "http://localhost:8081",
			Timeout: 5,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.Policy.MaxOccurrences < 0 || c.Policy.SeasonalMinDays < 0 {
		return fmt.Errorf("%w: policy values must be non-negative", ErrInvalidConfig)
	}
	return nil
}
