// Package config loads the envi tool configuration.
//
// Configuration precedence (highest to lowest):
//  1. Command-line flags
//  2. Environment variables (ENVI_*)
//  3. Configuration file
//  4. Default values
package config

import (
	"os"
	"strings"

	"github.com/pavdpr/envi/internal/logger"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the envi tool configuration.
type Config struct {
	Log       logger.Config   `mapstructure:"log"`
	Quicklook QuicklookConfig `mapstructure:"quicklook"`
}

// QuicklookConfig controls quicklook rendering.
type QuicklookConfig struct {
	// Clip is the percentage of darkest and brightest samples saturated by
	// the linear stretch.
	Clip float64 `mapstructure:"clip"`
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-output": "log.output",
	"clip":       "quicklook.clip",
}

// Load reads the configuration file at path (optional, empty for none),
// the environment and the given flags.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "WARN")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("quicklook.clip", 2.0)

	// Environment variables use ENVI_ prefix and underscores
	// Example: ENVI_LOG_LEVEL=DEBUG
	v.SetEnvPrefix("ENVI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(err, "configuration file not found: %s", path)
			}
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "failed to bind flag %q", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &cfg, nil
}

// Validate checks the configuration values.
func Validate(cfg *Config) error {
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return errors.Errorf("log format %q, want text or json", cfg.Log.Format)
	}
	if cfg.Quicklook.Clip < 0 || cfg.Quicklook.Clip >= 50 {
		return errors.Errorf("quicklook clip %g out of range [0, 50)", cfg.Quicklook.Clip)
	}
	return nil
}
