package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the server and the probe tool
type Config struct {
	Server  ServerConfig
	DBPath  string
	Catalog CatalogConfig
	Log     LogConfig
	Probe   ProbeConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CatalogConfig points at optional CSV files extending the built-in catalog
type CatalogConfig struct {
	RecordsCSV    string
	VariationsCSV string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string // optional rotating log file
}

// ProbeConfig holds settings for the verification probes
type ProbeConfig struct {
	FunctionURL       string
	OpenWeatherURL    string
	OpenWeatherAPIKey string
	OutputDir         string
	Timeout           time.Duration // 0 uses the per-action default
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("db_path", "")
	v.SetDefault("catalog.records_csv", "")
	v.SetDefault("catalog.variations_csv", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("probe.function_url", "")
	v.SetDefault("probe.openweather_url", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("probe.openweather_api_key", "")
	v.SetDefault("probe.output_dir", ".")
	v.SetDefault("probe.timeout", 0)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("/etc/flightriskradar")
	v.AddConfigPath(".")

	if configPath := os.Getenv("FLIGHTRISK_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - defaults + env vars
	}

	v.SetEnvPrefix("FLIGHTRISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Addr:         v.GetString("server.addr"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		DBPath: v.GetString("db_path"),
		Catalog: CatalogConfig{
			RecordsCSV:    v.GetString("catalog.records_csv"),
			VariationsCSV: v.GetString("catalog.variations_csv"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
		Probe: ProbeConfig{
			FunctionURL:       v.GetString("probe.function_url"),
			OpenWeatherURL:    v.GetString("probe.openweather_url"),
			OpenWeatherAPIKey: v.GetString("probe.openweather_api_key"),
			OutputDir:         v.GetString("probe.output_dir"),
			Timeout:           time.Duration(v.GetInt("probe.timeout")) * time.Second,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be greater than 0")
	}

	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be greater than 0")
	}

	if cfg.Probe.Timeout < 0 {
		return fmt.Errorf("probe.timeout must not be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
