// Package cache holds rendered pages between requests.
package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache stores rendered pages by key until they expire or Clear is called.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Clear()
}

// PageCache is a Cache backed by ristretto. Entries cost their size in bytes.
type PageCache struct {
	c   *ristretto.Cache[string, []byte]
	ttl time.Duration
}

// New creates a PageCache holding up to maxCost bytes. A zero ttl keeps
// entries until they are evicted or cleared.
func New(maxCost int64, ttl time.Duration) (*PageCache, error) {
	if maxCost <= 0 {
		maxCost = 64 << 20
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters:        1e5,
		MaxCost:            maxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}
	return &PageCache{c: c, ttl: ttl}, nil
}

func (p *PageCache) Get(key string) ([]byte, bool) {
	return p.c.Get(key)
}

// Set stores value and waits until it is visible to Get.
func (p *PageCache) Set(key string, value []byte) {
	cost := int64(len(value))
	if cost == 0 {
		cost = 1
	}
	if p.ttl > 0 {
		p.c.SetWithTTL(key, value, cost, p.ttl)
	} else {
		p.c.Set(key, value, cost)
	}
	p.c.Wait()
}

func (p *PageCache) Clear() {
	p.c.Clear()
}

func (p *PageCache) Close() {
	p.c.Close()
}
