// Package config loads server and CLI settings from a YAML file, .env files
// and WAGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"github.com/warp/wage-engine/earnings"
	"github.com/warp/wage-engine/factory"
	"github.com/warp/wage-engine/payrates"
)

// EnvPrefix prefixes every environment override, e.g. WAGE_HTTP_ADDR.
const EnvPrefix = "WAGE"

// Store drivers.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	HTTP struct {
		Addr           string
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Log struct {
		Level  string
		Format string
	} `mapstructure:"log"`

	Store struct {
		Driver string
		Name   string
	} `mapstructure:"store"`

	Pay struct {
		BasePay   float64 `mapstructure:"base_pay"`
		RulesFile string  `mapstructure:"rules_file"`
	} `mapstructure:"pay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("store.driver", StoreSQLite)
	v.SetDefault("store.name", "wagecalc")
	v.SetDefault("pay.base_pay", payrates.DefaultBasePay)
	v.SetDefault("pay.rules_file", "")
}

// Load reads settings. path may be empty (defaults and environment only).
// envFiles are loaded first; a missing .env file is not an error, and
// variables already set in the environment win.
func Load(path string, envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := gotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("store.driver must be %q or %q, got %q", StoreSQLite, StoreMemory, c.Store.Driver)
	}
	if c.Pay.BasePay < 0 {
		return fmt.Errorf("pay.base_pay must not be negative, got %v", c.Pay.BasePay)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Logger builds the process logger: JSON lines, or a human-readable console
// writer when log.format is "console".
func (c Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if c.Log.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// InitialWorkspace is the workspace a fresh process starts with: the
// default rules, or those of pay.rules_file, at pay.base_pay.
func (c Config) InitialWorkspace() (earnings.Workspace, error) {
	ws := payrates.DefaultWorkspace()
	ws.BasePay = decimal.NewFromFloat(c.Pay.BasePay)
	if c.Pay.RulesFile == "" {
		return ws, nil
	}

	cfg, err := LoadRules(c.Pay.RulesFile)
	if err != nil {
		return earnings.Workspace{}, err
	}
	return cfg.ApplyTo(ws), nil
}

// LoadRules reads a rate-table document, YAML or JSON by file extension.
func LoadRules(path string) (*factory.RateTableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return factory.ParseRateTableYAML(data)
	default:
		return factory.ParseRateTable(string(data))
	}
}
