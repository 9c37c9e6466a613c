package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath    string
	SpecDir        string
	SpecExtensions []string
	DataDir        string

	// Collaborators
	EngineBinary string
	BuildCommand []string

	// Execution settings
	CompareMode string
	Timeout     time.Duration
	Workers     int

	// Output settings
	OutputDir  string
	OutputFile string
	LogFile    string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	SpecDir    string
	Engine     string
	NoBuild    bool
	NameFilter string
	Compare    string
	Timeout    time.Duration
	Workers    int
	Progress   bool
	Verbose    bool
	TestCases  bool
	Plain      bool
	Suffix     string
}

// fileConfig mirrors qtr.yaml
type fileConfig struct {
	SpecDir        string   `yaml:"spec_dir"`
	SpecExtensions []string `yaml:"spec_extensions"`
	DataDir        string   `yaml:"data_dir"`
	Engine         string   `yaml:"engine"`
	Build          []string `yaml:"build"`
	Compare        string   `yaml:"compare"`
	Timeout        string   `yaml:"timeout"`
	Workers        int      `yaml:"workers"`
	Ignore         []string `yaml:"ignore"`
	LogFile        string   `yaml:"log_file"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:  DefaultProjectPath,
		SpecDir:      DefaultSpecDir,
		DataDir:      DefaultDataDir,
		EngineBinary: DefaultEngineBinary,
		CompareMode:  DefaultCompareMode,
		Timeout:      DefaultTimeout,
		Workers:      DefaultWorkers,
		OutputDir:    DefaultOutputDir,
		OutputFile:   DefaultOutputFile,
	}
	cfg.BuildCommand = append([]string(nil), DefaultBuildCommand...)
	cfg.PathsToIgnore = append([]string(nil), DefaultPathsToIgnore...)
	return cfg
}

// Load creates a config for the project, layering qtr.yaml and then the
// environment (including a .env file in the project) over the defaults
func Load(projectPath string) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}

	if err := cfg.loadFile(filepath.Join(cfg.ProjectPath, FileName)); err != nil {
		return nil, err
	}

	// A missing .env is fine, the process environment still applies
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}

	if fc.SpecDir != "" {
		c.SpecDir = fc.SpecDir
	}
	if len(fc.SpecExtensions) > 0 {
		c.SpecExtensions = fc.SpecExtensions
	}
	if fc.DataDir != "" {
		c.DataDir = fc.DataDir
	}
	if fc.Engine != "" {
		c.EngineBinary = fc.Engine
	}
	if len(fc.Build) > 0 {
		c.BuildCommand = fc.Build
	}
	if fc.Compare != "" {
		c.CompareMode = fc.Compare
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return errors.Wrapf(err, "parse %s: timeout", path)
		}
		c.Timeout = d
	}
	if fc.Workers > 0 {
		c.Workers = fc.Workers
	}
	if len(fc.Ignore) > 0 {
		c.PathsToIgnore = fc.Ignore
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv("QTR_SPEC_DIR"); v != "" {
		c.SpecDir = v
	}
	if v := os.Getenv("QTR_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("QTR_ENGINE"); v != "" {
		c.EngineBinary = v
	}
	if v := os.Getenv("QTR_BUILD_CMD"); v != "" {
		c.BuildCommand = strings.Fields(v)
	}
	if v := os.Getenv("QTR_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("QTR_COMPARE"); v != "" {
		c.CompareMode = v
	}
	if v := os.Getenv("QTR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "QTR_TIMEOUT")
		}
		c.Timeout = d
	}
	if v := os.Getenv("QTR_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "QTR_WORKERS")
		}
		c.Workers = n
	}
	return nil
}

// ApplyFlags copies parsed flags into the config; set flags win over every other source
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Engine != "" {
		c.EngineBinary = flags.Engine
	}
	if flags.Compare != "" {
		c.CompareMode = flags.Compare
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
}

// GetSpecPath returns the spec directory, using the flag if provided
func (c *Config) GetSpecPath() string {
	return c.resolve(c.Flags.SpecDir, c.SpecDir)
}

// GetDataPath returns the fixture directory
func (c *Config) GetDataPath() string {
	return c.resolve("", c.DataDir)
}

// GetEnginePath returns the path to the engine binary. Bare names are looked
// up on PATH when the process starts, so they are returned unchanged.
func (c *Config) GetEnginePath() string {
	if !strings.Contains(c.EngineBinary, "/") && !strings.ContainsRune(c.EngineBinary, filepath.Separator) {
		return c.EngineBinary
	}
	p := c.resolve("", c.EngineBinary)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetLogPath returns the debug log file, or "" when file logging is off
func (c *Config) GetLogPath() string {
	if c.LogFile == "" {
		return ""
	}
	return c.resolve("", c.LogFile)
}

// GetOutputPath returns the absolute path to the last run record
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputDir, c.OutputFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// resolve prefers override over value and anchors relative paths at the project
func (c *Config) resolve(override, value string) string {
	p := value
	if override != "" {
		p = override
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}
