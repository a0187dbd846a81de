// Package config loads client configuration from a config file, a dotenv
// file and process environment variables, in ascending precedence. API
// credentials are configuration, never code; nothing here is ever logged.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrExchangeNotConfigured is returned when settings for an unknown exchange
// are requested
var ErrExchangeNotConfigured = errors.New("exchange not configured")

const envPrefix = "unified"

// Exchange holds the per-venue client settings
type Exchange struct {
	Key        string `mapstructure:"key"`
	Secret     string `mapstructure:"secret"`
	Passphrase string `mapstructure:"passphrase"`
	Sandbox    bool   `mapstructure:"sandbox"`
	Verbose    bool   `mapstructure:"verbose"`
}

// Logging holds the logger settings
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the full loaded configuration
type Config struct {
	Exchanges map[string]Exchange `mapstructure:"exchanges"`
	Logging   Logging             `mapstructure:"logging"`
}

// envOverrides mirrors the credential fields settable through the process
// environment, e.g. UNIFIED_BITGET_KEY
type envOverrides struct {
	BitgetKey        string `envconfig:"BITGET_KEY"`
	BitgetSecret     string `envconfig:"BITGET_SECRET"`
	BitgetPassphrase string `envconfig:"BITGET_PASSPHRASE"`
	MexcKey          string `envconfig:"MEXC_KEY"`
	MexcSecret       string `envconfig:"MEXC_SECRET"`
}

// Load reads configuration. A dotenv file in the working directory is folded
// into the environment first, then the config file at path (optional), then
// environment overrides on top.
func Load(path string) (*Config, error) {
	// Missing .env is the common case, not an error
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("unified")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{Exchanges: make(map[string]Exchange)}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Exchanges == nil {
		cfg.Exchanges = make(map[string]Exchange)
	}

	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	applyOverride(cfg, "bitget", env.BitgetKey, env.BitgetSecret, env.BitgetPassphrase)
	applyOverride(cfg, "mexc", env.MexcKey, env.MexcSecret, "")
	return cfg, nil
}

func applyOverride(cfg *Config, name, key, secret, passphrase string) {
	if key == "" && secret == "" && passphrase == "" {
		return
	}
	e := cfg.Exchanges[name]
	if key != "" {
		e.Key = key
	}
	if secret != "" {
		e.Secret = secret
	}
	if passphrase != "" {
		e.Passphrase = passphrase
	}
	cfg.Exchanges[name] = e
}

// Exchange returns the settings for one venue by name, case-insensitive
func (c *Config) Exchange(name string) (Exchange, error) {
	if e, ok := c.Exchanges[strings.ToLower(name)]; ok {
		return e, nil
	}
	return Exchange{}, fmt.Errorf("%w: %s", ErrExchangeNotConfigured, name)
}

// NewLogger builds a logger from the logging settings. Level defaults to
// info, format to console.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Logging.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(c.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
	}
	zc := zap.NewProductionConfig()
	if !strings.EqualFold(c.Logging.Format, "json") {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
