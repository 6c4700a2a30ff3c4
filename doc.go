// Package cache implements a process-local, in-memory keyed cache with
// per-entry TTL, a capacity bound with least-used eviction, and a periodic
// background cleanup pass.
//
// Each Cache is an explicitly constructed instance with its own store, lock
// and cleanup goroutine; nothing is shared between instances. Use the
// registry package to own several named instances in one process.
//
//	products, err := cache.New[Product](cache.Config{MaxSize: 200}, cache.WithName("products"))
//	if err != nil {
//		return err
//	}
//	defer products.Stop()
//
//	_ = products.Set("sku-1", p)
//	if p, ok := products.Get("sku-1"); ok {
//		...
//	}
package cache
