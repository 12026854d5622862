// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the `wkctx config` command, keeping config.go
// focused on YAML structure and loading.
//
// Pointers are used for optional fields so "not set" (nil) is distinct from
// "explicitly set to zero"; defaults apply only when a value is unset.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"data_dir", "default_context", "catalog_dir",
		"limits.max_seed_statement",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "data_dir":
		return c.DataDir, nil
	case "default_context":
		return c.DefaultContext, nil
	case "catalog_dir":
		return c.CatalogDir, nil
	case "limits.max_seed_statement":
		return strconv.Itoa(c.MaxSeedStatement()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data_dir":
		c.DataDir = value
	case "default_context":
		c.DefaultContext = value
	case "catalog_dir":
		c.CatalogDir = value
	case "limits.max_seed_statement":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_seed_statement must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxSeedStatement = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}
