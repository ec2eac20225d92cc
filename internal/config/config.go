// Package config loads keyset CLI configuration from a file and KEYSET_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const envPrefix = "KEYSET"

var _drivers = []string{DriverPostgres, DriverMySQL}

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config represents the configuration implementation.
type Config struct {
	Database *Database
	Logger   *Logger
	Paging   *Paging
	Viper    *viper.Viper
}

// Database connection config.
type Database struct {
	Driver string
	DSN    string
}

// Logger logger config struct
type Logger struct {
	Level  string
	Format string
}

// Paging limits applied to incoming requests.
type Paging struct {
	MaxLimit int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.dsn", "")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("paging.max_limit", 100)
}

// LoadConfig loads the configuration from configPath. With an empty path it
// looks for keyset.{yaml,json,toml} in the working directory, $HOME/.keyset and
// /etc/keyset, and falls back to defaults and environment when none exists.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("keyset")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.keyset")
		v.AddConfigPath("/etc/keyset")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Database: getDatabaseConfig(v),
		Logger:   getLoggerConfig(v),
		Paging:   getPagingConfig(v),
		Viper:    v,
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func getDatabaseConfig(v *viper.Viper) *Database {
	return &Database{
		Driver: strings.ToLower(v.GetString("database.driver")),
		DSN:    v.GetString("database.dsn"),
	}
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:  v.GetString("logger.level"),
		Format: strings.ToLower(v.GetString("logger.format")),
	}
}

func getPagingConfig(v *viper.Viper) *Paging {
	return &Paging{
		MaxLimit: v.GetInt("paging.max_limit"),
	}
}

func (c *Config) validate() error {
	if !lo.Contains(_drivers, c.Database.Driver) {
		return fmt.Errorf("unsupported database driver '%s'", c.Database.Driver)
	}

	if c.Paging.MaxLimit <= 0 {
		return fmt.Errorf("paging.max_limit must be positive, got %d", c.Paging.MaxLimit)
	}

	return nil
}
