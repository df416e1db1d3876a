package config

import (
	"time"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
	redisclient "github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/redis"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/storage/postgres"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/network"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Logging  LoggingConfig      `yaml:"logging"`
	Assets   AssetConfig        `yaml:"assets"`
	Data     DataConfig         `yaml:"data"`
	Network  network.Config     `yaml:"network"`
	Redis    redisclient.Config `yaml:"redis"`
	Database postgres.Config    `yaml:"database"`
}

// ServerConfig holds HTTP health/metrics server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// AssetConfig holds settings for binary asset loading.
type AssetConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DataConfig holds settings for localized dataset loading.
type DataConfig struct {
	BaseURL         string        `yaml:"base_url"`
	DefaultLanguage string        `yaml:"default_language"`
	Languages       []string      `yaml:"languages"` // preload set
	MaxRetries      int           `yaml:"max_retries"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
}

// applyDefaults fills zero-value fields with the documented defaults.
func (c *AppConfig) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Assets.Timeout == 0 {
		c.Assets.Timeout = 10 * time.Second
	}
	if c.Data.DefaultLanguage == "" {
		c.Data.DefaultLanguage = domain.DefaultLanguage
	}
	if c.Data.MaxRetries == 0 {
		c.Data.MaxRetries = 2
	}
	if c.Data.CacheTTL == 0 {
		c.Data.CacheTTL = time.Hour
	}
	if c.Network.ProbeTarget == "" {
		c.Network.ProbeTarget = "covers/title_screen.jpg"
	}
	if c.Network.ProbeInterval == 0 {
		c.Network.ProbeInterval = 30 * time.Second
	}
	if c.Network.ProbeTimeout == 0 {
		c.Network.ProbeTimeout = 5 * time.Second
	}
}
