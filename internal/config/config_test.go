package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_GetSpecPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				SpecDir:     "tests",
			},
			expected: "tests",
		},
		{
			name: "with spec dir flag",
			config: &Config{
				ProjectPath: "/project",
				SpecDir:     "tests",
				Flags: Flags{
					SpecDir: "queries",
				},
			},
			expected: "/project/queries",
		},
		{
			name: "absolute spec path",
			config: &Config{
				ProjectPath: "/project",
				SpecDir:     "tests",
				Flags: Flags{
					SpecDir: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetSpecPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetEnginePath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"

	if got := cfg.GetEnginePath(); got != "/project/target/debug/twin-query" {
		t.Errorf("expected project-relative engine, got %s", got)
	}

	cfg.EngineBinary = "twin-query"
	if got := cfg.GetEnginePath(); got != "twin-query" {
		t.Errorf("expected bare name to be kept, got %s", got)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected Workers %d, got %d", DefaultWorkers, cfg.Workers)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}

	cfg.BuildCommand[0] = "make"
	if DefaultBuildCommand[0] != "cargo" {
		t.Error("New must copy the default build command")
	}
}

func TestLoad(t *testing.T) {
	for _, key := range []string{"QTR_SPEC_DIR", "QTR_DATA_DIR", "QTR_ENGINE", "QTR_BUILD_CMD", "QTR_COMPARE", "QTR_TIMEOUT", "QTR_WORKERS"} {
		t.Setenv(key, "")
	}

	t.Run("no config files", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SpecDir != DefaultSpecDir || cfg.EngineBinary != DefaultEngineBinary {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("yaml then env", func(t *testing.T) {
		dir := t.TempDir()
		yamlContent := "spec_dir: queries\nengine: bin/engine\nbuild: [make, engine]\ntimeout: 5s\nworkers: 3\n"
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yamlContent), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("QTR_ENGINE", "bin/other")

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SpecDir != "queries" {
			t.Errorf("expected spec dir from yaml, got %s", cfg.SpecDir)
		}
		if cfg.EngineBinary != "bin/other" {
			t.Errorf("expected env to override yaml, got %s", cfg.EngineBinary)
		}
		if len(cfg.BuildCommand) != 2 || cfg.BuildCommand[0] != "make" {
			t.Errorf("unexpected build command %v", cfg.BuildCommand)
		}
		if cfg.Timeout != 5*time.Second || cfg.Workers != 3 {
			t.Errorf("unexpected timeout/workers %s/%d", cfg.Timeout, cfg.Workers)
		}
	})

	t.Run("env file", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("QTR_BUILD_CMD=make engine\n"), 0644); err != nil {
			t.Fatal(err)
		}
		os.Unsetenv("QTR_BUILD_CMD")

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.BuildCommand) != 2 || cfg.BuildCommand[1] != "engine" {
			t.Errorf("expected build command from .env, got %v", cfg.BuildCommand)
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte("workers: [\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(dir); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

func TestApplyFlags(t *testing.T) {
	cfg := New()
	cfg.ApplyFlags(Flags{Engine: "bin/engine", Workers: 4, Timeout: time.Second, Compare: "prefix"})

	if cfg.EngineBinary != "bin/engine" || cfg.Workers != 4 || cfg.Timeout != time.Second || cfg.CompareMode != "prefix" {
		t.Errorf("flags not applied: %+v", cfg)
	}

	cfg.ApplyFlags(Flags{})
	if cfg.Workers != 4 {
		t.Errorf("unset flags must not reset values, got workers %d", cfg.Workers)
	}
}

func TestConfig_GetLogPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"
	if got := cfg.GetLogPath(); got != "" {
		t.Errorf("GetLogPath() = %q, want empty when no log file is set", got)
	}

	cfg.LogFile = "logs/qtr.log"
	if got, want := cfg.GetLogPath(), filepath.Join("/project", "logs", "qtr.log"); got != want {
		t.Errorf("GetLogPath() = %q, want %q", got, want)
	}

	t.Setenv("QTR_LOG_FILE", "/var/log/qtr.log")
	loaded, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.GetLogPath(); got != "/var/log/qtr.log" {
		t.Errorf("GetLogPath() = %q, want the QTR_LOG_FILE value", got)
	}
}
