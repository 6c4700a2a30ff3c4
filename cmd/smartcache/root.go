package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cache "github.com/krisalay/smart-cache"
	"github.com/krisalay/smart-cache/config"
	"github.com/krisalay/smart-cache/logging"
	"github.com/krisalay/smart-cache/registry"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	v          *viper.Viper
	configFile string
	settings   *config.Settings
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "smartcache",
		Short: "In-memory TTL caches for the storefront",
		Long: `smartcache runs the process-local caches that sit in front of the
storefront's product, user and analytics lookups.

Each cache holds at most max_size entries, expires them after their TTL,
evicts the least used entry when full and reclaims expired entries on a
fixed cleanup interval.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is ./.smartcache.yaml)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json, auto)")
	cobra.CheckErr(a.v.BindPFlag("log.level", flags.Lookup("log-level")))
	cobra.CheckErr(a.v.BindPFlag("log.format", flags.Lookup("log-format")))

	root.AddCommand(
		newDemoCmd(a),
		newBenchCmd(a),
		newServeCmd(a),
		newStatsCmd(a),
	)
	return root
}

// setup loads .env files and configuration, then builds the logger.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	config.LoadEnvFiles()

	settings, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = logging.New(settings.Log, os.Stderr)

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("file", used).Msg("using config file")
	}
	return nil
}

// storefront is the set of caches the storefront uses, built from settings.
type storefront struct {
	registry  *registry.Registry
	products  *cache.Cache[Product]
	users     *cache.Cache[User]
	analytics *cache.Cache[Report]
	extra     []string
}

// buildStorefront registers the three storefront caches plus any extra named
// caches from the config file, which hold opaque payloads.
func (a *app) buildStorefront() (*storefront, error) {
	reg := registry.New(a.logger)
	sf := &storefront{registry: reg}

	var err error
	cfg := a.settings.Caches
	if sf.products, err = registry.Create[Product](reg, config.Products, cfg[config.Products], cache.WithClone(cloneProduct)); err != nil {
		return nil, a.abort(reg, err)
	}
	if sf.users, err = registry.Create[User](reg, config.Users, cfg[config.Users]); err != nil {
		return nil, a.abort(reg, err)
	}
	if sf.analytics, err = registry.Create[Report](reg, config.Analytics, cfg[config.Analytics]); err != nil {
		return nil, a.abort(reg, err)
	}

	for name, c := range cfg {
		if _, known := reg.Get(name); known {
			continue
		}
		if _, err := registry.Create[any](reg, name, c); err != nil {
			return nil, a.abort(reg, err)
		}
		sf.extra = append(sf.extra, name)
	}
	return sf, nil
}

func (a *app) abort(reg *registry.Registry, err error) error {
	reg.StopAll()
	return fmt.Errorf("build caches: %w", err)
}
