package cache

import "github.com/krisalay/smart-cache/types"

// cleanupLoop periodically scans and removes expired entries.
//
// A single ticker-driven full scan per instance avoids per-entry timers and
// keeps the goroutine owned by the cache: Stop cancels ctx and waits on wg.
func (c *Cache[T]) cleanupLoop() {
	defer c.wg.Done()

	ticker := c.clock.NewTicker(c.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.Chan():
			c.Cleanup()
		}
	}
}

// counters records the events Stats reports and forwards them to the
// configured metrics hook. It is only touched while the cache mutex is held.
type counters struct {
	next types.Metrics

	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
}

func (m *counters) Hit() {
	m.hits++
	m.next.Hit()
}

func (m *counters) Miss() {
	m.misses++
	m.next.Miss()
}

func (m *counters) Eviction() {
	m.evictions++
	m.next.Eviction()
}

func (m *counters) Expire() {
	m.expirations++
	m.next.Expire()
}
