package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	cache "github.com/krisalay/smart-cache"
	"github.com/krisalay/smart-cache/eviction"
)

// printMetrics counts cache events and prints them at the end of the demo.
type printMetrics struct {
	mu        sync.Mutex
	hits      int
	misses    int
	evictions int
	expired   int
}

func (m *printMetrics) Hit()      { m.mu.Lock(); m.hits++; m.mu.Unlock() }
func (m *printMetrics) Miss()     { m.mu.Lock(); m.misses++; m.mu.Unlock() }
func (m *printMetrics) Eviction() { m.mu.Lock(); m.evictions++; m.mu.Unlock() }
func (m *printMetrics) Expire()   { m.mu.Lock(); m.expired++; m.mu.Unlock() }

func (m *printMetrics) Print(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fmt.Fprintln(w, "\n==================== METRICS ====================")
	fmt.Fprintf(w, "HITS      : %d\n", m.hits)
	fmt.Fprintf(w, "MISSES    : %d\n", m.misses)
	fmt.Fprintf(w, "EVICTIONS : %d\n", m.evictions)
	fmt.Fprintf(w, "EXPIRED   : %d\n", m.expired)
}

func newDemoCmd(a *app) *cobra.Command {
	var (
		ttl    time.Duration
		policy string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through hits, misses, expiry, eviction and loading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd, ttl, policy)
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Second, "TTL of the short-lived demo entry")
	cmd.Flags().StringVar(&policy, "eviction", string(eviction.LFU), "eviction policy (lfu, lru, fifo)")
	return cmd
}

func (a *app) runDemo(cmd *cobra.Command, ttl time.Duration, policy string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	kind, err := eviction.ParsePolicyType(policy)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n==================== SYSTEM BOOT ====================")
	fmt.Fprintln(out, "EVICTION POLICY :", kind)
	fmt.Fprintln(out, "TTL STRATEGY    : fixed")
	fmt.Fprintln(out, "CAPACITY        : 3 keys")

	metrics := &printMetrics{}
	c, err := cache.New[Product](cache.Config{
		MaxSize:         3,
		DefaultTTL:      time.Minute,
		CleanupInterval: ttl,
		Eviction:        kind,
	},
		cache.WithName("demo"),
		cache.WithLogger(a.logger),
		cache.WithMetrics(metrics),
		cache.WithClone(cloneProduct),
	)
	if err != nil {
		return err
	}
	defer c.Stop()

	store := newCatalog(50 * time.Millisecond)

	// ====================================================
	fmt.Fprintln(out, "\n==================== 1) CACHE MISS ====================")
	_, found := c.Get("sku-1")
	fmt.Fprintln(out, "CACHE  → GET sku-1 found =", found)

	// ====================================================
	fmt.Fprintln(out, "\n==================== 2) CACHE HIT ====================")
	p, err := c.GetOrLoad(ctx, "sku-1", store)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "LOADER → sku-1 =", p.Name)
	p, _ = c.Get("sku-1")
	fmt.Fprintln(out, "CACHE  → GET sku-1 =", p.Name)

	// ====================================================
	fmt.Fprintln(out, "\n==================== 3) TTL EXPIRATION ====================")
	if err := c.SetWithTTL("sku-temp", Product{SKU: "sku-temp", Name: "Flash sale"}, ttl); err != nil {
		return err
	}
	left, _ := c.TTL("sku-temp")
	fmt.Fprintf(out, "CACHE  → PUT sku-temp (TTL = %s, left %s)\n", ttl, left.Round(time.Millisecond))

	time.Sleep(ttl + 100*time.Millisecond)

	_, found = c.Get("sku-temp")
	fmt.Fprintln(out, "CACHE  → GET sku-temp after TTL found =", found)

	// ====================================================
	fmt.Fprintln(out, "\n==================== 4) BACKGROUND CLEANUP ====================")
	if err := c.SetWithTTL("sku-flash", Product{SKU: "sku-flash", Name: "Flash sale"}, ttl); err != nil {
		return err
	}
	fmt.Fprintln(out, "CACHE  → PUT sku-flash, entries =", c.Len())

	// No reads: only the cleanup loop can reclaim it.
	time.Sleep(3*ttl + 100*time.Millisecond)
	fmt.Fprintln(out, "CACHE  → entries after background cleanup =", c.Len())

	// ====================================================
	fmt.Fprintln(out, "\n==================== 5) SINGLEFLIGHT ====================")
	before := store.Loads()
	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			val, err := c.GetOrLoad(ctx, "sku-2", store)
			if err != nil {
				fmt.Fprintf(out, "GOROUTINE-%d → error: %v\n", id, err)
				return
			}
			fmt.Fprintf(out, "GOROUTINE-%d → GET sku-2 = %s\n", id, val.Name)
		}(i)
	}
	wg.Wait()
	fmt.Fprintln(out, "LOADER → calls for sku-2 =", store.Loads()-before)
	p, _ = c.Get("sku-2")
	fmt.Fprintln(out, "CACHE  → GET sku-2 =", p.Name)

	// ====================================================
	fmt.Fprintln(out, "\n==================== 6) EVICTION ====================")
	// Under lfu the unread sku-3 makes way for sku-4.
	_ = c.Set("sku-3", Product{SKU: "sku-3", Name: "Product 3"})
	_ = c.Set("sku-4", Product{SKU: "sku-4", Name: "Product 4"})
	fmt.Fprintln(out, "CACHE  → keys after inserting sku-4 =", c.Keys())

	// ====================================================
	fmt.Fprintln(out, "\n==================== 7) LOADER ERROR ====================")
	if _, err := c.GetOrLoad(ctx, "sku-missing", store); err != nil {
		fmt.Fprintln(out, "LOADER → error:", err)
	}
	fmt.Fprintln(out, "CACHE  → has sku-missing =", c.Has("sku-missing"))

	// ====================================================
	fmt.Fprintln(out, "\n==================== 8) STATS ====================")
	s := c.Stats()
	fmt.Fprintf(out, "SIZE      : %d/%d\n", s.Size, s.MaxSize)
	fmt.Fprintf(out, "HIT RATE  : %.2f\n", s.HitRate)
	fmt.Fprintf(out, "AVG READS : %.2f\n", s.AverageAccessCount)

	metrics.Print(out)
	return nil
}
