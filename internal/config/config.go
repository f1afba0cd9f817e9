package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/class-schedule/internal/calendar"
	"github.com/pfrederiksen/class-schedule/internal/logger"
	"github.com/pfrederiksen/class-schedule/internal/schedule"
)

// EnvPrefix is prepended to every environment variable, e.g. CLASS_SCHEDULE_OUTPUT_DIR.
const EnvPrefix = "CLASS_SCHEDULE"

// ErrInvalidConfig is returned when a loaded value cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of one class-schedule run, merged from defaults, the
// config file and CLASS_SCHEDULE_* environment variables.
type Config struct {
	OutputDir     string
	OutputFile    string
	ProductID     string
	Language      string
	SessionMarker string
	LogLevel      string
	Workers       int
}

// Load reads configuration from defaults, an optional .env file, the environment and,
// when configFile is set, that file. Environment variables win over the file.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		OutputDir:     v.GetString("output_dir"),
		OutputFile:    v.GetString("output_file"),
		ProductID:     v.GetString("product_id"),
		Language:      v.GetString("language"),
		SessionMarker: v.GetString("session_marker"),
		LogLevel:      v.GetString("log_level"),
		Workers:       v.GetInt("workers"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", "out")
	v.SetDefault("output_file", "class_schedule.ics")
	v.SetDefault("product_id", calendar.DefaultProductID)
	v.SetDefault("language", calendar.DefaultLanguage)
	v.SetDefault("session_marker", schedule.DefaultMarker)
	v.SetDefault("log_level", "INFO")
	v.SetDefault("workers", 4)
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputFile) == "" {
		return fmt.Errorf("%w: output file is empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.SessionMarker) == "" {
		return fmt.Errorf("%w: session marker is empty", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
