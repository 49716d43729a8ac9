// Package config loads application configuration from config.yaml and the
// environment, and wires the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Samar23dev/CC-Agent-Sales-Analysis/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store    store.Config   `yaml:"store" mapstructure:"store"`
	Models   ModelConfig    `yaml:"models" mapstructure:"models"`
	Leads    LeadsConfig    `yaml:"leads" mapstructure:"leads"`
	Forecast ForecastConfig `yaml:"forecast" mapstructure:"forecast"`
	Seed     SeedConfig     `yaml:"seed" mapstructure:"seed"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ModelConfig locates the persisted predictor weights.
type ModelConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LeadsConfig configures lead generation.
type LeadsConfig struct {
	DefaultLimit int `yaml:"default_limit" mapstructure:"default_limit"`
}

// ForecastConfig configures commission forecasting.
type ForecastConfig struct {
	Months int `yaml:"months" mapstructure:"months"`
}

// SeedConfig sizes generated sample datasets.
type SeedConfig struct {
	Agents int `yaml:"agents" mapstructure:"agents"`
	Cards  int `yaml:"cards" mapstructure:"cards"`
	Sales  int `yaml:"sales" mapstructure:"sales"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RatePerMinute  int      `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "sales.db")
	v.SetDefault("store.dir", "data")
	v.SetDefault("models.dir", "models")
	v.SetDefault("leads.default_limit", 10)
	v.SetDefault("forecast.months", 3)
	v.SetDefault("seed.agents", 50)
	v.SetDefault("seed.cards", 20)
	v.SetDefault("seed.sales", 1000)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_minute", 120)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields a given mode relies on. Modes are command
// names: "serve", "seed", "forecast".
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Server.RatePerMinute <= 0 {
			problems = append(problems, "server.rate_per_minute must be > 0")
		}
	case "seed":
		if c.Seed.Agents <= 0 || c.Seed.Cards <= 0 || c.Seed.Sales <= 0 {
			problems = append(problems, "seed counts must be > 0")
		}
	case "forecast":
		if c.Forecast.Months < 1 || c.Forecast.Months > 24 {
			problems = append(problems, "forecast.months must be between 1 and 24")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Store.Driver == "postgres" && c.Store.DSN == "" {
		problems = append(problems, "store.dsn is required for the postgres driver")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
