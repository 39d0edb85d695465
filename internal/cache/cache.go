// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"

	"github.com/staranto/deckctl/internal/fetch"
)

// DefaultTTL is how long a response stays fresh.
const DefaultTTL = 10 * time.Second

// Fetcher produces a response for a URL on a cache miss.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Response, error)
}

// Entry is a stored response and the time it was requested. Entries are
// replaced, never modified.
type Entry struct {
	InsertedAt time.Time
	Value      fetch.Response
}

// Cache maps URLs to responses for a fixed TTL. It is safe for concurrent use.
// Concurrent misses for the same URL are not coalesced; each fetches and the
// last to finish wins.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	clock   clockwork.Clock
	logger  log.Interface

	mu      sync.Mutex
	entries map[string]Entry
}

// Option customizes a Cache.
type Option func(*Cache)

// WithTTL sets the freshness window. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) { c.clock = clock }
}

func WithLogger(logger log.Interface) Option {
	return func(c *Cache) { c.logger = logger }
}

// New returns an empty Cache that fills itself from f.
func New(f Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher: f,
		ttl:     DefaultTTL,
		clock:   clockwork.NewRealClock(),
		logger:  log.Log,
		entries: make(map[string]Entry),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// TTL reports the freshness window.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the fresh response for url, fetching it on a miss. A failed fetch
// is returned as is and leaves nothing behind in the cache. The result is the
// caller's own copy.
func (c *Cache) Get(ctx context.Context, url string) (fetch.Response, error) {
	c.mu.Lock()
	now := c.clock.Now()
	c.sweep(now)
	entry, ok := c.entries[url]
	c.mu.Unlock()

	if ok {
		c.logger.WithFields(log.Fields{
			"url":     url,
			"fetched": humanize.RelTime(entry.InsertedAt, now, "ago", "from now"),
		}).Debug("cache hit")
		return entry.Value.Clone(), nil
	}

	c.logger.WithField("url", url).Debug("cache miss")
	resp, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return fetch.Response{}, err
	}

	c.mu.Lock()
	c.entries[url] = Entry{InsertedAt: now, Value: resp.Clone()}
	c.mu.Unlock()

	return resp, nil
}

// Purge drops every expired entry now instead of waiting for the next Get.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweep(c.clock.Now())
}

// Len is the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Has reports whether url is stored, without sweeping first.
func (c *Cache) Has(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[url]
	return ok
}

// sweep removes every entry at least ttl old. c.mu must be held.
func (c *Cache) sweep(now time.Time) {
	for url, e := range c.entries {
		if now.Sub(e.InsertedAt) >= c.ttl {
			delete(c.entries, url)
			c.logger.WithField("url", url).Debug("cache evict")
		}
	}
}
