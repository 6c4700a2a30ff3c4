package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/krisalay/smart-cache/types"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		format string
		warm   int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Build the configured caches and print their statistics",
		Long: `stats builds every configured cache, optionally warms the product
cache from the catalog, and prints one statistics record per cache.
It is mostly useful for checking what a config file resolves to.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sf, err := a.buildStorefront()
			if err != nil {
				return err
			}
			defer sf.registry.StopAll()

			if warm > 0 {
				cat := newCatalog(0)
				if err := warmProducts(cmd.Context(), sf, cat, warm); err != nil {
					return err
				}
				// Read everything back once so hit rate is meaningful.
				if err := warmProducts(cmd.Context(), sf, cat, warm); err != nil {
					return err
				}
			}
			return writeStats(cmd.OutOrStdout(), format, sf.registry.Stats())
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "output format (yaml, json)")
	cmd.Flags().IntVar(&warm, "warm", 0, "products to preload from the catalog")
	return cmd
}

func writeStats(w io.Writer, format string, stats []types.Stats) error {
	switch format {
	case "yaml", "yml":
		b, err := yaml.Marshal(stats)
		if err != nil {
			return fmt.Errorf("encode stats: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
