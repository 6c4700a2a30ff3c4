package cache

import (
	"time"

	"github.com/krisalay/smart-cache/eviction"
	"github.com/krisalay/smart-cache/expiration"
)

// Defaults applied to every Config field left at its zero value.
const (
	DefaultMaxSize         = 100
	DefaultTTL             = 5 * time.Minute
	DefaultCleanupInterval = time.Minute
)

// Config controls capacity, lifetime and maintenance of one cache instance.
//
// A zero field means "unspecified" and takes its default. Negative values are
// rejected by New instead of being clamped.
type Config struct {
	MaxSize         int                 `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	DefaultTTL      time.Duration       `mapstructure:"default_ttl" json:"default_ttl" yaml:"default_ttl"`
	CleanupInterval time.Duration       `mapstructure:"cleanup_interval" json:"cleanup_interval" yaml:"cleanup_interval"`
	Eviction        eviction.PolicyType `mapstructure:"eviction" json:"eviction" yaml:"eviction"`
	Expiration      expiration.Kind     `mapstructure:"expiration" json:"expiration" yaml:"expiration"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.MaxSize == 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.DefaultTTL == 0 {
		c.DefaultTTL = DefaultTTL
	}
	if c.CleanupInterval == 0 {
		c.CleanupInterval = DefaultCleanupInterval
	}
	if c.Eviction == "" {
		c.Eviction = eviction.LFU
	}
	if c.Expiration == "" {
		c.Expiration = expiration.Fixed
	}
	return c
}

// Validate checks c after defaults have been applied.
func (c Config) Validate() error {
	if c.MaxSize <= 0 {
		return newValidationError("max_size", c.MaxSize, "must be greater than zero")
	}
	if c.DefaultTTL <= 0 {
		return newValidationError("default_ttl", c.DefaultTTL, "must be greater than zero")
	}
	if c.CleanupInterval <= 0 {
		return newValidationError("cleanup_interval", c.CleanupInterval, "must be greater than zero")
	}
	if _, err := eviction.ParsePolicyType(string(c.Eviction)); err != nil {
		return newValidationError("eviction", c.Eviction, err.Error())
	}
	if _, err := expiration.ParseKind(string(c.Expiration)); err != nil {
		return newValidationError("expiration", c.Expiration, err.Error())
	}
	return nil
}
