package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SPORTBOT"

// semesterDateLayout is the layout of semester.start and semester.end
const semesterDateLayout = "2006-01-02"

// envKeys are bound explicitly so that environment-only deployments work
// without a config file.
var envKeys = []string{
	"app.name",
	"app.environment",
	"discord.token",
	"discord.application_id",
	"discord.guild_id",
	"redis.address",
	"redis.password",
	"redis.db",
	"portal.base_url",
	"portal.timezone",
	"portal.request_timeout",
	"service.user_id",
	"service.email",
	"service.password",
	"scheduler.notification_interval",
	"scheduler.autocheckin_interval",
	"scheduler.semester_rebuild_interval",
	"scheduler.lookahead_days",
	"semester.start",
	"semester.end",
	"security.credentials_key",
	"logging.level",
	"logging.format",
	"metrics.address",
}

// Load reads configs/config.yaml (if present), .env and SPORTBOT_* variables
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up from the working directory
func loadEnvFile() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sportbot"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}

	if cfg.Portal.BaseURL == "" {
		cfg.Portal.BaseURL = "https://sport.innopolis.university"
	}
	cfg.Portal.BaseURL = strings.TrimRight(cfg.Portal.BaseURL, "/")
	if cfg.Portal.Timezone == "" {
		cfg.Portal.Timezone = "Europe/Moscow"
	}
	if cfg.Portal.RequestTimeout == 0 {
		cfg.Portal.RequestTimeout = 15000
	}

	if cfg.Scheduler.NotificationInterval == 0 {
		cfg.Scheduler.NotificationInterval = 120000
	}
	if cfg.Scheduler.AutoCheckinInterval == 0 {
		cfg.Scheduler.AutoCheckinInterval = 60000
	}
	if cfg.Scheduler.SemesterRebuildInterval == 0 {
		cfg.Scheduler.SemesterRebuildInterval = 24 * 60 * 60 * 1000
	}
	if cfg.Scheduler.LookaheadDays == 0 {
		cfg.Scheduler.LookaheadDays = 7
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Discord.Token == "" {
		return fmt.Errorf("discord.token is required")
	}

	if cfg.Service.Email == "" || cfg.Service.Password == "" {
		return fmt.Errorf("service.email and service.password are required")
	}

	if _, err := time.LoadLocation(cfg.Portal.Timezone); err != nil {
		return fmt.Errorf("portal.timezone %q is invalid: %w", cfg.Portal.Timezone, err)
	}

	if (cfg.Semester.Start == "") != (cfg.Semester.End == "") {
		return fmt.Errorf("semester.start and semester.end must be set together")
	}
	if cfg.Semester.Start != "" {
		if _, _, _, err := cfg.SemesterBounds(time.UTC); err != nil {
			return err
		}
	}

	if cfg.Scheduler.LookaheadDays < 0 {
		return fmt.Errorf("scheduler.lookahead_days cannot be negative")
	}

	return nil
}

// Location returns the portal timezone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Portal.Timezone)
}

// SemesterBounds parses the pinned semester dates in loc. ok is false when
// no dates are configured.
func (c *Config) SemesterBounds(loc *time.Location) (from, to time.Time, ok bool, err error) {
	if c.Semester.Start == "" {
		return time.Time{}, time.Time{}, false, nil
	}

	from, err = time.ParseInLocation(semesterDateLayout, c.Semester.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("semester.start: %w", err)
	}
	to, err = time.ParseInLocation(semesterDateLayout, c.Semester.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("semester.end: %w", err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, false, fmt.Errorf("semester.end is before semester.start")
	}

	return from, to, true, nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
