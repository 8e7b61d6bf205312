package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration. Values come from (highest wins)
// environment variables with the WORKTIME_ prefix, an optional config file,
// and built-in defaults.
type Config struct {
	DBPath   string `mapstructure:"db_path"`
	Timezone string `mapstructure:"timezone"`
	UserID   string `mapstructure:"user_id"`

	// Uniform timestamp tolerance for every entry path.
	FutureGraceMinutes int `mapstructure:"future_grace_minutes"`
	PastGraceHours     int `mapstructure:"past_grace_hours"`
}

// FutureGrace returns the future tolerance as a duration.
func (c Config) FutureGrace() time.Duration {
	return time.Duration(c.FutureGraceMinutes) * time.Minute
}

// PastGrace returns the past tolerance as a duration.
func (c Config) PastGrace() time.Duration {
	return time.Duration(c.PastGraceHours) * time.Hour
}

// Location resolves the configured civil timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads the configuration. If configFile is empty, a worktime.yaml next
// to the default data directory is used when present.
func Load(configFile string) (Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".worktime")

	v.SetDefault("db_path", filepath.Join(dataDir, "worktime.db"))
	v.SetDefault("timezone", "Europe/Berlin")
	v.SetDefault("user_id", "")
	v.SetDefault("future_grace_minutes", 5)
	v.SetDefault("past_grace_hours", 24)

	v.SetEnvPrefix("WORKTIME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("worktime")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir)
		// Missing default file is fine; env and defaults still apply.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	if cfg.FutureGraceMinutes < 0 || cfg.PastGraceHours < 0 {
		return Config{}, fmt.Errorf("timestamp grace values must not be negative")
	}

	return cfg, nil
}
