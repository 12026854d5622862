// Package config provides reading and writing of wkctx configuration.
// Supports both global (~/.wkctx/config.yaml) and local (.wkctx/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.wkctx/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .wkctx/config.yaml
	ScopeLocal
)

// Limits holds size limit configuration options.
type Limits struct {
	MaxSeedStatement *int `yaml:"max_seed_statement,omitempty"`
}

// DefaultMaxSeedStatement is applied when not configured.
const DefaultMaxSeedStatement = 1 << 20 // 1 MB

// Validation bounds for configuration values.
const (
	MinMaxSeedStatement = 1
	MaxMaxSeedStatement = 1 << 30 // 1 GB
)

// Config contains configuration for wkctx.
type Config struct {
	// DataDir is where physical databases live. Empty means ~/.wkctx/data.
	DataDir string `yaml:"data_dir,omitempty"`
	// DefaultContext is activated by `wkctx use` with no argument.
	DefaultContext string `yaml:"default_context,omitempty"`
	// CatalogDir points at a user catalog directory; empty means the
	// embedded catalogs.
	CatalogDir string `yaml:"catalog_dir,omitempty"`
	Limits     Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxSeedStatement != nil {
		v := *c.Limits.MaxSeedStatement
		if v < MinMaxSeedStatement || v > MaxMaxSeedStatement {
			return fmt.Errorf("%w: max_seed_statement must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxSeedStatement, MaxMaxSeedStatement, v)
		}
	}
	return nil
}

// MaxSeedStatement returns the maximum seed statement size in bytes
// (defaults to 1 MB).
func (c *Config) MaxSeedStatement() int {
	if c.Limits.MaxSeedStatement == nil {
		return DefaultMaxSeedStatement
	}
	return *c.Limits.MaxSeedStatement
}

// ResolvedDataDir returns the configured data directory, falling back to
// ~/.wkctx/data.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".wkctx", "data")
	}
	return filepath.Join(home, ".wkctx", "data")
}

// LocalPath returns the path to the local (directory) config file.
func LocalPath() string {
	return filepath.Join(".wkctx", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file:
// ~/.wkctx/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wkctx", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write config file %s: %w", c.path, err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	if scope == ScopeLocal {
		return LocalPath()
	}
	return GlobalPath()
}
