package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tinytelemetry/chuckle/internal/model"
)

// appConfig is internal runtime configuration.
type appConfig struct {
	BaseURL        string        `mapstructure:"base-url"`
	JokeCount      int           `mapstructure:"joke-count"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	LogLevel       string        `mapstructure:"log-level"`
	LogFile        string        `mapstructure:"log-file"`
	MetricsAddr    string        `mapstructure:"metrics-addr"`
	MockAddr       string        `mapstructure:"mock-addr"`
	Fixtures       string        `mapstructure:"fixtures"`
	ConfigPath     string        `mapstructure:"-"`
}

// newConfigViper returns a viper instance with env binding and defaults.
// Precedence is flag, then CHUCKLE_* env, then config file, then default.
func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CHUCKLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base-url", model.DefaultBaseURL)
	v.SetDefault("joke-count", model.DefaultJokeCount)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("log-level", model.DefaultLogLevel)
	v.SetDefault("log-file", "")
	v.SetDefault("metrics-addr", "")
	v.SetDefault("mock-addr", model.DefaultMockAddr)
	v.SetDefault("fixtures", "")
	return v
}

// loadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is fine.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadConfig reads the optional config file into v and decodes the result.
func loadConfig(v *viper.Viper, configPath string) (appConfig, error) {
	var cfg appConfig

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", "chuckle", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.JokeCount <= 0 {
		return cfg, fmt.Errorf("joke-count must be positive, got %d", cfg.JokeCount)
	}
	if cfg.RequestTimeout <= 0 {
		return cfg, fmt.Errorf("request-timeout must be positive, got %s", cfg.RequestTimeout)
	}
	return cfg, nil
}

func defaultLogFile() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "chuckle", "chuckle.log")
	}
	return filepath.Join(os.TempDir(), "chuckle.log")
}
