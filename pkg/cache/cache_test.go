package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU[string, []byte], *clock) {
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[string, []byte](capacity, ttl)
	c.now = clk.Now
	return c, clk
}

func TestLRU(t *testing.T) {
	tests := []struct {
		name    string
		actions func(t *testing.T, c *LRU[string, []byte], clk *clock)
	}{
		{
			name: "set and get within ttl",
			actions: func(t *testing.T, c *LRU[string, []byte], clk *clock) {
				c.Set("a", []byte("1"))
				v, ok := c.Get("a")
				assert.True(t, ok)
				assert.Equal(t, "1", string(v))
			},
		},
		{
			name: "get after expiration",
			actions: func(t *testing.T, c *LRU[string, []byte], clk *clock) {
				c.Set("a", []byte("1"))
				clk.Advance(time.Second + time.Millisecond)
				_, ok := c.Get("a")
				assert.False(t, ok)
				assert.Equal(t, 0, c.Len())
			},
		},
		{
			name: "evict least recently used",
			actions: func(t *testing.T, c *LRU[string, []byte], clk *clock) {
				c.Set("a", []byte("1"))
				c.Set("b", []byte("2"))
				c.Get("a")
				c.Set("c", []byte("3"))

				_, ok := c.Get("b")
				assert.False(t, ok, "b should be evicted")
				_, ok = c.Get("a")
				assert.True(t, ok)
				_, ok = c.Get("c")
				assert.True(t, ok)
			},
		},
		{
			name: "update resets ttl",
			actions: func(t *testing.T, c *LRU[string, []byte], clk *clock) {
				c.Set("a", []byte("1"))
				clk.Advance(800 * time.Millisecond)
				c.Set("a", []byte("2"))
				clk.Advance(800 * time.Millisecond)

				v, ok := c.Get("a")
				assert.True(t, ok)
				assert.Equal(t, "2", string(v))
			},
		},
		{
			name: "delete",
			actions: func(t *testing.T, c *LRU[string, []byte], clk *clock) {
				c.Set("a", []byte("1"))
				c.Delete("a")
				_, ok := c.Get("a")
				assert.False(t, ok)
			},
		},
		{
			name: "janitor removes expired entries",
			actions: func(t *testing.T, c *LRU[string, []byte], clk *clock) {
				c.Set("a", []byte("1"))
				clk.Advance(500 * time.Millisecond)
				c.Set("b", []byte("2"))
				clk.Advance(700 * time.Millisecond)

				c.evictExpired()
				assert.Equal(t, 1, c.Len())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, clk := newTestLRU(2, time.Second)
			tc.actions(t, c, clk)
		})
	}
}
