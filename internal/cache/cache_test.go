package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/foxy-spend/internal/model"
)

type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
}

func items(amount int64, category model.Category) []model.ParsedExpense {
	return []model.ParsedExpense{{
		Amount:     decimal.NewFromInt(amount),
		Category:   category,
		Confidence: 0.85,
	}}
}

func TestCache(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		c := New()

		_, found := c.Get("non-existent")
		assert.False(t, found)

		c.Set("taxi 6,50", items(6, model.CategoryTransport))
		got, found := c.Get("taxi 6,50")
		require.True(t, found)
		assert.Equal(t, items(6, model.CategoryTransport), got)
		assert.Equal(t, 1, c.Len())

		c.Clear()
		assert.Equal(t, 0, c.Len())
		_, found = c.Get("taxi 6,50")
		assert.False(t, found)
	})

	t.Run("normalized keys", func(t *testing.T) {
		c := New()
		c.Set("Taxi  6,50 €", items(6, model.CategoryTransport))

		for _, variant := range []string{"taxi 650", "  TAXI 6,50", "taxi\t6,50€"} {
			_, found := c.Get(variant)
			assert.True(t, found, variant)
		}
	})

	t.Run("expiration", func(t *testing.T) {
		clock := newClock()
		c := New(WithClock(clock.Now))
		c.Set("café 3 euros", items(3, model.CategoryCoffee))

		clock.Advance(DefaultTTL)
		_, found := c.Get("café 3 euros")
		assert.True(t, found, "entry is still valid at exactly the TTL")

		clock.Advance(time.Millisecond)
		_, found = c.Get("café 3 euros")
		assert.False(t, found)
		assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
	})

	t.Run("fifo eviction", func(t *testing.T) {
		clock := newClock()
		c := New(WithClock(clock.Now), WithCapacity(3))

		for i := 1; i <= 4; i++ {
			c.Set(fmt.Sprintf("gasto %d", i), items(int64(i), model.CategoryOther))
			clock.Advance(time.Second)
		}

		assert.Equal(t, 3, c.Len())
		_, found := c.Get("gasto 1")
		assert.False(t, found, "oldest insertion is evicted first")
		for i := 2; i <= 4; i++ {
			_, found := c.Get(fmt.Sprintf("gasto %d", i))
			assert.True(t, found)
		}
	})

	t.Run("reads do not refresh position", func(t *testing.T) {
		c := New(WithCapacity(2))
		c.Set("a uno", items(1, model.CategoryOther))
		c.Set("b dos", items(2, model.CategoryOther))
		_, _ = c.Get("a uno")
		c.Set("c tres", items(3, model.CategoryOther))

		_, found := c.Get("a uno")
		assert.False(t, found)
	})

	t.Run("overwrite keeps one entry", func(t *testing.T) {
		c := New(WithCapacity(2))
		c.Set("taxi 5", items(5, model.CategoryTransport))
		c.Set("taxi 5", items(7, model.CategoryTransport))
		c.Set("metro 2", items(2, model.CategoryTransport))

		assert.Equal(t, 2, c.Len())
		got, found := c.Get("taxi 5")
		require.True(t, found)
		assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(7)))
	})

	t.Run("set purges expired prefix", func(t *testing.T) {
		clock := newClock()
		c := New(WithClock(clock.Now), WithTTL(time.Second))
		c.Set("viejo 1", items(1, model.CategoryOther))
		clock.Advance(2 * time.Second)
		c.Set("nuevo 2", items(2, model.CategoryOther))

		assert.Equal(t, 1, c.Len())
	})

	t.Run("returns copies", func(t *testing.T) {
		c := New()
		c.Set("taxi 5", items(5, model.CategoryTransport))

		got, _ := c.Get("taxi 5")
		got[0].Category = model.CategoryOther

		again, _ := c.Get("taxi 5")
		assert.Equal(t, model.CategoryTransport, again[0].Category)
	})
}

func TestCache_NeverExceedsCapacity(t *testing.T) {
	c := New()
	for i := 0; i < 100; i++ {
		c.Set(fmt.Sprintf("gasto numero %d", i), items(1, model.CategoryOther))
		assert.LessOrEqual(t, c.Len(), DefaultCapacity)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("gasto %d", (i+j)%30)
				c.Set(key, items(int64(j), model.CategoryOther))
				_, _ = c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), DefaultCapacity)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "café 3 euros", NormalizeKey("  Café   3 EUROS "))
	assert.Equal(t, "taxi 650", NormalizeKey("taxi 6,50€"))
}
