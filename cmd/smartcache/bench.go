package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	cache "github.com/krisalay/smart-cache"
	"github.com/krisalay/smart-cache/eviction"
)

type benchOptions struct {
	capacity    int
	preloadKeys int
	goroutines  int
	opsPerG     int
	policy      string
}

func newBenchCmd(a *app) *cobra.Command {
	o := benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a concurrent read load against one cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBench(cmd, o)
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.capacity, "capacity", 20000, "max entries")
	f.IntVar(&o.preloadKeys, "preload", 10000, "keys written before the load test")
	f.IntVar(&o.goroutines, "goroutines", 200, "concurrent readers")
	f.IntVar(&o.opsPerG, "ops", 5000, "reads per goroutine")
	f.StringVar(&o.policy, "eviction", string(eviction.LFU), "eviction policy (lfu, lru, fifo)")
	return cmd
}

func (a *app) runBench(cmd *cobra.Command, o benchOptions) error {
	out := cmd.OutOrStdout()

	if o.preloadKeys <= 0 || o.goroutines <= 0 {
		return fmt.Errorf("preload and goroutines must be greater than zero")
	}
	kind, err := eviction.ParsePolicyType(o.policy)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n================ CACHE LOAD BENCHMARK =================")
	fmt.Fprintln(out, "CONFIG")
	fmt.Fprintln(out, "---------------------------------")
	fmt.Fprintln(out, "Eviction     :", kind)
	fmt.Fprintln(out, "Capacity     :", o.capacity)
	fmt.Fprintln(out, "Preload Keys :", o.preloadKeys)
	fmt.Fprintln(out, "Goroutines   :", o.goroutines)
	fmt.Fprintln(out, "Ops/Goroutine:", o.opsPerG)
	fmt.Fprintln(out, "---------------------------------")

	c, err := cache.New[int](cache.Config{
		MaxSize:         o.capacity,
		DefaultTTL:      time.Minute,
		CleanupInterval: 10 * time.Second,
		Eviction:        kind,
	}, cache.WithName("bench"), cache.WithLogger(a.logger))
	if err != nil {
		return err
	}
	defer c.Stop()

	// ---------------- Preload Cache ----------------
	fmt.Fprintln(out, "Preloading cache...")
	keys := make([]string, o.preloadKeys)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
		if err := c.Set(keys[i], i); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "Preload complete.")

	// ---------------- Load Test ----------------
	fmt.Fprintln(out, "Running concurrency benchmark...")
	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(o.goroutines)
	for i := 0; i < o.goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < o.opsPerG; j++ {
				c.Get(keys[(id+j)%len(keys)])
			}
		}(i)
	}
	wg.Wait()

	elapsed := time.Since(start)
	totalOps := o.goroutines * o.opsPerG
	s := c.Stats()

	fmt.Fprintln(out, "\n================ BENCHMARK RESULT =================")
	fmt.Fprintln(out, "Total Ops    :", totalOps)
	fmt.Fprintln(out, "Total Time   :", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(out, "Throughput   : %.0f ops/sec\n", float64(totalOps)/elapsed.Seconds())
	}
	fmt.Fprintf(out, "Hit Rate     : %.2f\n", s.HitRate)
	fmt.Fprintln(out, "Evictions    :", s.Evictions)
	return nil
}
