package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      int    `yaml:"port"`
		SecretKey string `yaml:"secret_key"`
		Timezone  string `yaml:"timezone"`
	} `yaml:"server"`

	Sheets struct {
		BaseSpreadsheetURL string  `yaml:"base_spreadsheet_url"`
		CacheTTLSeconds    int     `yaml:"cache_ttl_seconds"`
		RatePerSecond      float64 `yaml:"rate_per_second"`
		RateBurst          int     `yaml:"rate_burst"`
	} `yaml:"sheets"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Timezone == "" {
		cfg.Server.Timezone = "Asia/Jakarta"
	}

	return &cfg, nil
}

func (c *Config) SheetCacheTTL() time.Duration {
	if c.Sheets.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Sheets.CacheTTLSeconds) * time.Second
}

func (c *Config) SheetRate() (float64, int) {
	if c.Sheets.RatePerSecond <= 0 || c.Sheets.RateBurst <= 0 {
		return 5, 10
	}
	return c.Sheets.RatePerSecond, c.Sheets.RateBurst
}
