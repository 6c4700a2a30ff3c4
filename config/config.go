// Package config loads smart-cache settings from defaults, an optional YAML
// config file, .env files and SMARTCACHE_* environment variables, in
// increasing order of precedence. Command-line flags bound to the same viper
// instance win over all of them.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	cache "github.com/krisalay/smart-cache"
	"github.com/krisalay/smart-cache/logging"
)

// EnvPrefix is prepended to every environment variable, e.g.
// SMARTCACHE_CACHES_PRODUCTS_MAX_SIZE or SMARTCACHE_LOG_LEVEL.
const EnvPrefix = "SMARTCACHE"

// Names of the storefront caches defined by default.
const (
	Products  = "products"
	Users     = "users"
	Analytics = "analytics"
)

// Settings is the full application configuration.
type Settings struct {
	Log    logging.Config          `mapstructure:"log"`
	Server ServerConfig            `mapstructure:"server"`
	Caches map[string]cache.Config `mapstructure:"caches"`
}

// ServerConfig configures the HTTP admin surface.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	log := logging.DefaultConfig()
	v.SetDefault("log.level", log.Level)
	v.SetDefault("log.format", log.Format)
	v.SetDefault("log.no_color", log.NoColor)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	// Product records are read far more than they change.
	setCacheDefaults(v, Products, cache.Config{MaxSize: 200, DefaultTTL: 10 * time.Minute, CleanupInterval: time.Minute})
	setCacheDefaults(v, Users, cache.Config{MaxSize: 50, DefaultTTL: 15 * time.Minute, CleanupInterval: 2 * time.Minute})
	setCacheDefaults(v, Analytics, cache.Config{MaxSize: 20, DefaultTTL: 2 * time.Minute, CleanupInterval: 30 * time.Second})
}

func setCacheDefaults(v *viper.Viper, name string, cfg cache.Config) {
	cfg = cfg.WithDefaults()
	prefix := "caches." + name + "."
	v.SetDefault(prefix+"max_size", cfg.MaxSize)
	v.SetDefault(prefix+"default_ttl", cfg.DefaultTTL)
	v.SetDefault(prefix+"cleanup_interval", cfg.CleanupInterval)
	v.SetDefault(prefix+"eviction", string(cfg.Eviction))
	v.SetDefault(prefix+"expiration", string(cfg.Expiration))
}

// LoadEnvFiles loads .env.local and then .env into the process environment.
// Variables already set are never overwritten, so .env.local takes
// precedence over .env. Missing files are ignored.
func LoadEnvFiles(files ...string) {
	if len(files) == 0 {
		files = []string{".env.local", ".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load reads configFile (if non-empty) or searches for .smartcache.yaml in the
// working directory, then decodes everything into Settings.
// A missing config file in the search path is not an error; a missing
// explicit configFile is.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".smartcache")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return Decode(v)
}

// Decode converts the current state of v into Settings and validates every
// cache configuration.
func Decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	for name, cfg := range s.Caches {
		if err := cfg.WithDefaults().Validate(); err != nil {
			return nil, fmt.Errorf("cache %s: %w", name, err)
		}
	}
	return &s, nil
}
