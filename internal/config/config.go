package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`       // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`         // Telegram API token loaded from environment
	Storage          Storage   `mapstructure:"storage"`   // where learner data is kept
	DB               DB        `mapstructure:"database"`  // database configuration section
	Streak           Streak    `mapstructure:"streak"`    // streak day boundaries
	Reminders        Reminders `mapstructure:"reminders"` // due-cards reminder job
}

// Storage selects the key-value store backend.
type Storage struct {
	Driver     string `mapstructure:"driver"`      // file, sqlite or postgres
	DataDir    string `mapstructure:"data_dir"`    // directory of the file store
	SQLitePath string `mapstructure:"sqlite_path"` // database file of the sqlite store
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Streak configures how activity is mapped to calendar days.
type Streak struct {
	Timezone string `mapstructure:"timezone"` // IANA name or UTC offset, UTC when empty
}

// Reminders configures the reminder job.
type Reminders struct {
	Enabled       bool   `mapstructure:"enabled"`
	Schedule      string `mapstructure:"schedule"`       // cron expression
	MaxConcurrent int    `mapstructure:"max_concurrent"` // parallel sends
	StartHour     int    `mapstructure:"start_hour"`     // first hour reminders may be sent
	EndHour       int    `mapstructure:"end_hour"`       // hour reminders stop
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Location returns the time zone of the streak calendar.
func (s Streak) Location() (*time.Location, error) {
	loc, err := entities.ParseLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// Window returns the hours during which reminders are sent.
func (r Reminders) Window() entities.ReminderWindow {
	return entities.ReminderWindow{StartHour: r.StartHour, EndHour: r.EndHour}
}

// Load reads configuration from ./config and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads configuration from config.yaml in dir and environment variables.
func LoadFrom(dir string) (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.sqlite_path", "data/vocab.db")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("streak.timezone", "UTC")
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 * * * *")
	v.SetDefault("reminders.max_concurrent", 10)
	v.SetDefault("reminders.start_hour", 9)
	v.SetDefault("reminders.end_hour", 21)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	switch cfg.Storage.Driver {
	case DriverFile, DriverSQLite:
	case DriverPostgres:
		if cfg.DB.URL == "" {
			return nil, ErrMissingEnvironmentVariables
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, cfg.Storage.Driver)
	}

	if _, err := cfg.Streak.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// TelegramToken returns the bot token if it is configured.
func (c *Config) TelegramToken() (string, error) {
	if c.TelegramAPIToken == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return c.TelegramAPIToken, nil
}
