// Package config loads hostdb settings from an optional config file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vegasq/hostdb/internal/logger"
	"github.com/vegasq/hostdb/output"
)

// DefaultPrefix is the environment variable prefix used by Load.
const DefaultPrefix = "HOSTDB"

// Config holds the client settings.
type Config struct {
	// Timezone is the IANA name of the reference time zone. Times are
	// rendered and dates derived in this zone.
	Timezone   string        `mapstructure:"timezone"`
	NullMarker string        `mapstructure:"null_marker"`
	Output     string        `mapstructure:"output"`
	Log        logger.Config `mapstructure:"log"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Timezone:   "UTC",
		NullMarker: "NULL",
		Output:     output.FormatText,
		Log:        logger.Config{Level: "info", Format: "text"},
	}
}

// Load reads configuration from environment variables named
// <PREFIX>_<KEY>, e.g. HOSTDB_TIMEZONE or HOSTDB_LOG_LEVEL. A .env file in
// the working directory is read first when present.
func Load(prefix string) (Config, error) {
	return load(prefix, ".env", true)
}

// LoadFile is Load with an explicit config file, which must exist. The
// format follows the file extension.
func LoadFile(prefix, path string) (Config, error) {
	return load(prefix, path, false)
}

func load(prefix, path string, optional bool) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("timezone", def.Timezone)
	v.SetDefault("null_marker", def.NullMarker)
	v.SetDefault("output", def.Output)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.add_source", def.Log.AddSource)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !optional || !(errors.As(err, &notFound) || isNotExist(err)) {
				return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	if prefix == "" {
		prefix = DefaultPrefix
	}
	v.SetEnvPrefix(strings.TrimSuffix(prefix, "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the time zone exists and the output format is known.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := output.New(c.Output, nil, c.NullMarker); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves Timezone. An empty name means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
