package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the current and home directories
const FileName = ".prbuddy.yaml"

// EnvPrefix prefixes environment overrides, e.g. PRBUDDY_ANALYSIS_BASE_BRANCH
const EnvPrefix = "PRBUDDY"

// Config represents the application configuration
type Config struct {
	Server    *ServerConfig    `yaml:"server" mapstructure:"server"`
	Analysis  *AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Templates *TemplatesConfig `yaml:"templates" mapstructure:"templates"`
	Log       *LogConfig       `yaml:"log" mapstructure:"log"`
}

// ServerConfig represents the MCP server configuration
type ServerConfig struct {
	Name         string        `yaml:"name" mapstructure:"name"`
	RootsTimeout time.Duration `yaml:"roots_timeout" mapstructure:"roots_timeout"`
}

// DefaultServerConfig returns the default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Name:         "pr-agent",
		RootsTimeout: 5 * time.Second,
	}
}

// AnalysisConfig represents the change analysis configuration
type AnalysisConfig struct {
	BaseBranch   string        `yaml:"base_branch" mapstructure:"base_branch"`
	MaxDiffLines int           `yaml:"max_diff_lines" mapstructure:"max_diff_lines"`
	GitTimeout   time.Duration `yaml:"git_timeout" mapstructure:"git_timeout"` // per git query
}

// DefaultAnalysisConfig returns the default analysis configuration
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		BaseBranch:   "main",
		MaxDiffLines: 500,
		GitTimeout:   30 * time.Second,
	}
}

// Validate validates the analysis configuration
func (a *AnalysisConfig) Validate() error {
	if strings.TrimSpace(a.BaseBranch) == "" {
		return fmt.Errorf("base_branch is required")
	}
	if a.MaxDiffLines < 0 {
		return fmt.Errorf("max_diff_lines must be non-negative")
	}
	if a.GitTimeout < 0 {
		return fmt.Errorf("git_timeout must be non-negative")
	}
	return nil
}

// TemplatesConfig represents the template store configuration
type TemplatesConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // empty uses the bundled templates
}

// DefaultTemplatesConfig returns the default templates configuration
func DefaultTemplatesConfig() *TemplatesConfig {
	return &TemplatesConfig{}
}

// LogConfig represents the logging configuration
type LogConfig struct {
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// Default returns a configuration with every section at its defaults
func Default() *Config {
	return &Config{
		Server:    DefaultServerConfig(),
		Analysis:  DefaultAnalysisConfig(),
		Templates: DefaultTemplatesConfig(),
		Log:       &LogConfig{},
	}
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if c.Analysis != nil {
		if err := c.Analysis.Validate(); err != nil {
			return fmt.Errorf("invalid analysis configuration: %w", err)
		}
	}
	return nil
}

// GetServerConfig returns the server configuration with defaults applied
func (c *Config) GetServerConfig() *ServerConfig {
	if c.Server == nil {
		return DefaultServerConfig()
	}
	defaults := DefaultServerConfig()
	if c.Server.Name == "" {
		c.Server.Name = defaults.Name
	}
	if c.Server.RootsTimeout <= 0 {
		c.Server.RootsTimeout = defaults.RootsTimeout
	}
	return c.Server
}

// GetAnalysisConfig returns the analysis configuration with defaults applied.
// A zero max_diff_lines in a file means unset; callers pass 0 explicitly per request.
func (c *Config) GetAnalysisConfig() *AnalysisConfig {
	if c.Analysis == nil {
		return DefaultAnalysisConfig()
	}
	defaults := DefaultAnalysisConfig()
	if strings.TrimSpace(c.Analysis.BaseBranch) == "" {
		c.Analysis.BaseBranch = defaults.BaseBranch
	}
	if c.Analysis.MaxDiffLines <= 0 {
		c.Analysis.MaxDiffLines = defaults.MaxDiffLines
	}
	if c.Analysis.GitTimeout <= 0 {
		c.Analysis.GitTimeout = defaults.GitTimeout
	}
	return c.Analysis
}

// GetTemplatesConfig returns the templates configuration with ~ expanded
func (c *Config) GetTemplatesConfig() (*TemplatesConfig, error) {
	if c.Templates == nil {
		return DefaultTemplatesConfig(), nil
	}
	dir, err := expandHome(c.Templates.Dir)
	if err != nil {
		return nil, err
	}
	c.Templates.Dir = dir
	return c.Templates, nil
}

// IsDebug reports whether debug logging is enabled in the file
func (c *Config) IsDebug() bool {
	return c.Log != nil && c.Log.Debug
}

// expandHome expands a leading ~/ to the home directory
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults make every key known to viper so env overrides apply without a file
	defaults := Default()
	v.SetDefault("server.name", defaults.Server.Name)
	v.SetDefault("server.roots_timeout", defaults.Server.RootsTimeout)
	v.SetDefault("analysis.base_branch", defaults.Analysis.BaseBranch)
	v.SetDefault("analysis.max_diff_lines", defaults.Analysis.MaxDiffLines)
	v.SetDefault("analysis.git_timeout", defaults.Analysis.GitTimeout)
	v.SetDefault("templates.dir", defaults.Templates.Dir)
	v.SetDefault("log.debug", defaults.Log.Debug)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

// Load loads configuration with the following priority:
// 1. Custom path if provided (must exist)
// 2. Current directory .prbuddy.yaml
// 3. Home directory ~/.prbuddy.yaml
// 4. Built-in defaults
// Environment variables override file values in every case.
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		return LoadFromFile(customPath)
	}

	candidates := []string{FileName}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
		return LoadFromFile(path)
	}

	return unmarshal(newViper())
}
