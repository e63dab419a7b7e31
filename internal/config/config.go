// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied by MergeWithDefaults when the caller passes an empty Config
const (
	DefaultPort              = 8080
	DefaultOutputDir         = "out"
	DefaultSummaryPreviewLen = 150
	DefaultPreviewSkillCount = 5
	DefaultSessionTTLMinutes = 120
	DefaultLogFormat         = "text"
	DefaultLogLevel          = "info"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Template  string `json:"template,omitempty" yaml:"template,omitempty"`     // Path to LaTeX template; empty uses the built-in one
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"` // Directory exported files are written to

	// Preview
	SummaryPreviewLength int      `json:"summary_preview_length,omitempty" yaml:"summary_preview_length,omitempty"`
	PreviewSkillCount    int      `json:"preview_skill_count,omitempty" yaml:"preview_skill_count,omitempty"`
	SkillCatalog         []string `json:"skill_catalog,omitempty" yaml:"skill_catalog,omitempty"` // Suggested skills; empty uses the default catalog

	// Server
	Port              int    `json:"port,omitempty" yaml:"port,omitempty"`
	SessionTTLMinutes int    `json:"session_ttl_minutes,omitempty" yaml:"session_ttl_minutes,omitempty"`
	DatabaseURL       string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL for the export store

	// Logging
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // text or json
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // debug, info, warn, error
	Verbose   bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		OutputDir:            DefaultOutputDir,
		SummaryPreviewLength: DefaultSummaryPreviewLen,
		PreviewSkillCount:    DefaultPreviewSkillCount,
		Port:                 DefaultPort,
		SessionTTLMinutes:    DefaultSessionTTLMinutes,
		LogFormat:            DefaultLogFormat,
		LogLevel:             DefaultLogLevel,
	}
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the
// extension is .yaml or .yml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.SummaryPreviewLength < 0 {
		return fmt.Errorf("config error: 'summary_preview_length' must be non-negative")
	}
	if c.PreviewSkillCount < 0 {
		return fmt.Errorf("config error: 'preview_skill_count' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.SessionTTLMinutes < 0 {
		return fmt.Errorf("config error: 'session_ttl_minutes' must be non-negative")
	}

	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if len(result.SkillCatalog) == 0 {
		result.SkillCatalog = defaults.SkillCatalog
	}

	if result.SummaryPreviewLength == 0 {
		result.SummaryPreviewLength = defaults.SummaryPreviewLength
	}
	if result.PreviewSkillCount == 0 {
		result.PreviewSkillCount = defaults.PreviewSkillCount
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SessionTTLMinutes == 0 {
		result.SessionTTLMinutes = defaults.SessionTTLMinutes
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
