package main

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Product is the derived product record the storefront caches.
type Product struct {
	SKU      string   `json:"sku" yaml:"sku"`
	Name     string   `json:"name" yaml:"name"`
	PriceCts int64    `json:"price_cents" yaml:"price_cents"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func cloneProduct(p Product) Product {
	p.Tags = append([]string(nil), p.Tags...)
	return p
}

// User is a cached customer profile.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Email string `json:"email" yaml:"email"`
}

// Report is a cached analytics aggregate.
type Report struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// catalog stands in for the storefront's data service. It counts loads so
// the demo can show which reads reached it.
type catalog struct {
	mu    sync.Mutex
	items map[string]Product
	loads int
	delay time.Duration
}

func newCatalog(delay time.Duration) *catalog {
	c := &catalog{items: make(map[string]Product), delay: delay}
	for i := 1; i <= 50; i++ {
		sku := fmt.Sprintf("sku-%d", i)
		c.items[sku] = Product{SKU: sku, Name: fmt.Sprintf("Product %d", i), PriceCts: int64(i) * 199}
	}
	return c
}

// Load implements types.Loader[Product].
func (c *catalog) Load(ctx context.Context, sku string) (Product, error) {
	if c.delay > 0 {
		select {
		case <-ctx.Done():
			return Product{}, ctx.Err()
		case <-time.After(c.delay):
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads++
	p, ok := c.items[sku]
	if !ok {
		return Product{}, fmt.Errorf("product %s not found", sku)
	}
	return p, nil
}

// Len returns how many products the catalog holds.
func (c *catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *catalog) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}
