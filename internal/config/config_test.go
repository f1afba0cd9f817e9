package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		OutputDir:     "out",
		OutputFile:    "class_schedule.ics",
		ProductID:     "University Class Schedule",
		Language:      "FA",
		SessionMarker: "جلسه",
		LogLevel:      "INFO",
		Workers:       4,
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLASS_SCHEDULE_OUTPUT_DIR", "/tmp/calendars")
	t.Setenv("CLASS_SCHEDULE_WORKERS", "8")
	t.Setenv("CLASS_SCHEDULE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "/tmp/calendars" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class-schedule.yaml")
	content := "output_file: term1.ics\nproduct_id: Farspnu\nworkers: 2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CLASS_SCHEDULE_WORKERS", "6")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputFile != "term1.ics" || cfg.ProductID != "Farspnu" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Workers != 6 {
		t.Errorf("Workers = %d, environment should win over the file", cfg.Workers)
	}
	if cfg.Language != "FA" {
		t.Errorf("Language = %q, want default", cfg.Language)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"zero workers", "CLASS_SCHEDULE_WORKERS", "0"},
		{"unknown log level", "CLASS_SCHEDULE_LOG_LEVEL", "loud"},
		{"blank marker", "CLASS_SCHEDULE_SESSION_MARKER", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := Load("")
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
