// Package config loads the optional project configuration (slidedeck.yaml).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up in the project root.
const DefaultPath = "slidedeck.yaml"

// Defaults.
const (
	DefaultRegistry       = "slides.yaml"
	DefaultOutputDir      = "."
	DefaultFiguresDir     = "figures"
	DefaultRecentCount    = 10
	DefaultGitBackend     = "cli"
	DefaultGitBinary      = "git"
	DefaultPreviewCommand = "quarto preview"
)

// Environment overrides.
const (
	EnvRegistry    = "SLIDEDECK_REGISTRY"
	EnvOutput      = "SLIDEDECK_OUTPUT"
	EnvRecentCount = "SLIDEDECK_RECENT_COUNT"
	EnvGitBackend  = "SLIDEDECK_GIT_BACKEND"
	EnvLogLevel    = "SLIDEDECK_LOG_LEVEL"
)

var validBackends = []string{"cli", "gogit"}

// Config is the project configuration.
type Config struct {
	Registry    string        `yaml:"registry"`
	OutputDir   string        `yaml:"output_dir"`
	FiguresDir  string        `yaml:"figures_dir"`
	RecentCount int           `yaml:"recent_count"`
	Git         GitConfig     `yaml:"git"`
	Preview     PreviewConfig `yaml:"preview"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

// GitConfig selects the history backend.
type GitConfig struct {
	Backend string `yaml:"backend"` // "cli" or "gogit"
	Binary  string `yaml:"binary"`
}

// PreviewConfig configures the preview command.
type PreviewConfig struct {
	Command string `yaml:"command"`
}

// MetricsConfig configures optional Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Registry:    DefaultRegistry,
		OutputDir:   DefaultOutputDir,
		FiguresDir:  DefaultFiguresDir,
		RecentCount: DefaultRecentCount,
		Git:         GitConfig{Backend: DefaultGitBackend, Binary: DefaultGitBinary},
		Preview:     PreviewConfig{Command: DefaultPreviewCommand},
	}
}

// Load reads configPath if it exists, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	// #nosec G304 -- configuration path is chosen by the user
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
				WithContext("path", configPath).
				Build()
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read configuration").
			WithContext("path", configPath).
			Build()
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvRegistry); v != "" {
		c.Registry = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvGitBackend); v != "" {
		c.Git.Backend = v
	}
	if v := os.Getenv(EnvRecentCount); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.WrapError(err, errors.CategoryConfig, fmt.Sprintf("invalid %s", EnvRecentCount)).
				WithContext("value", v).
				Build()
		}
		c.RecentCount = n
	}
	return nil
}

// applyDefaults fills fields an explicit empty value left blank.
func (c *Config) applyDefaults() {
	if c.Registry == "" {
		c.Registry = DefaultRegistry
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.FiguresDir == "" {
		c.FiguresDir = DefaultFiguresDir
	}
	if c.Git.Backend == "" {
		c.Git.Backend = DefaultGitBackend
	}
	if c.Git.Binary == "" {
		c.Git.Binary = DefaultGitBinary
	}
	if c.Preview.Command == "" {
		c.Preview.Command = DefaultPreviewCommand
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.RecentCount < 0 {
		return errors.ValidationError("recent_count must not be negative").
			WithContext("recent_count", c.RecentCount).
			Build()
	}
	for _, b := range validBackends {
		if c.Git.Backend == b {
			return nil
		}
	}
	return errors.ConfigError(fmt.Sprintf("unknown git backend %q", c.Git.Backend)).
		WithContext("valid_backends", validBackends).
		Build()
}
