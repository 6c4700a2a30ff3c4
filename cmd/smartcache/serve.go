package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/krisalay/smart-cache/server"
)

func newServeCmd(a *app) *cobra.Command {
	var warm int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront caches behind the HTTP admin API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd.Context(), warm)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from server.addr)")
	cmd.Flags().IntVar(&warm, "warm", 0, "products to preload from the catalog")
	cobra.CheckErr(a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr")))
	return cmd
}

func (a *app) runServe(ctx context.Context, warm int) error {
	sf, err := a.buildStorefront()
	if err != nil {
		return err
	}
	defer sf.registry.StopAll()

	if warm > 0 {
		if err := warmProducts(ctx, sf, newCatalog(0), warm); err != nil {
			return err
		}
		a.logger.Info().Int("products", sf.products.Len()).Msg("warmed product cache")
	}

	srv := &http.Server{
		Addr:              a.settings.Server.Addr,
		Handler:           server.New(sf.registry, a.logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().
			Str("addr", srv.Addr).
			Strs("caches", sf.registry.Names()).
			Msg("admin server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.settings.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// warmProducts loads the first n catalog products through the product cache.
// n is capped at the catalog size.
func warmProducts(ctx context.Context, sf *storefront, cat *catalog, n int) error {
	n = min(n, cat.Len())
	for i := 1; i <= n; i++ {
		if _, err := sf.products.GetOrLoad(ctx, fmt.Sprintf("sku-%d", i), cat); err != nil {
			return err
		}
	}
	return nil
}
