// Package cache keeps recent parse results so a repeated utterance is answered
// without reclassifying it.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/model"
)

// Defaults sized for a single voice session.
const (
	DefaultTTL      = 10 * time.Second
	DefaultCapacity = 20
)

type entry struct {
	insertedAt time.Time
	items      []model.ParsedExpense
}

// Cache is a bounded, TTL-scoped store of parse results with FIFO eviction.
// Expired entries are dropped lazily; no goroutine runs in the background.
type Cache struct {
	now      func() time.Time
	entries  map[string]entry
	order    []string // keys, oldest first
	ttl      time.Duration
	capacity int
	mu       sync.Mutex
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets how long an entry stays visible.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCapacity sets the maximum number of entries.
func WithCapacity(capacity int) Option {
	return func(c *Cache) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		now:      time.Now,
		entries:  make(map[string]entry),
		ttl:      DefaultTTL,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeKey lowercases text, collapses whitespace and drops "€" and ",".
// "6,50" and "650" therefore share a key.
func NormalizeKey(text string) string {
	key := strings.ToLower(text)
	key = strings.NewReplacer("€", "", ",", "").Replace(key)
	return common.CollapseSpaces(key)
}

// Get returns a copy of the cached items for text, if present and not expired.
func (c *Cache) Get(text string) ([]model.ParsedExpense, bool) {
	key := NormalizeKey(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.expired(e, c.now()) {
		c.remove(key)
		return nil, false
	}
	return cloneItems(e.items), true
}

// Set stores items for text, replacing any existing entry for the same key.
func (c *Cache) Set(text string, items []model.ParsedExpense) {
	key := NormalizeKey(text)
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpired(now)

	if _, ok := c.entries[key]; ok {
		c.remove(key)
	}
	for len(c.order) >= c.capacity {
		c.remove(c.order[0])
	}

	c.entries[key] = entry{insertedAt: now, items: cloneItems(items)}
	c.order = append(c.order, key)
}

// Len returns the number of stored entries, including expired ones not yet dropped.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.order = nil
}

func (c *Cache) expired(e entry, now time.Time) bool {
	return now.Sub(e.insertedAt) > c.ttl
}

// purgeExpired drops the expired prefix of the insertion order. Entries share one
// TTL, so everything older than the first live entry is expired too.
func (c *Cache) purgeExpired(now time.Time) {
	for len(c.order) > 0 {
		oldest := c.order[0]
		if !c.expired(c.entries[oldest], now) {
			return
		}
		c.remove(oldest)
	}
}

func (c *Cache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func cloneItems(items []model.ParsedExpense) []model.ParsedExpense {
	if items == nil {
		return nil
	}
	out := make([]model.ParsedExpense, len(items))
	copy(out, items)
	return out
}
