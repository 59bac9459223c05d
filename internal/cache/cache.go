// Package cache holds generated quiz papers between generation and
// grading. Papers carry answer keys, so they live only in process
// memory: nothing here survives a restart, and that is the point.
package cache

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danbi/vocadrill/internal/domain"
)

// PaperCache is the session store the generator writes and the grader
// reads. Get on an absent or expired session returns false; callers
// treat that as the terminal "session gone" condition.
type PaperCache interface {
	Put(id string, paper *domain.QuizPaper)
	Get(id string) (*domain.QuizPaper, bool)
	Evict(id string)
	Len() int
}

// entry is one cached paper with its write-time expiry deadline.
type entry struct {
	id        string
	paper     *domain.QuizPaper
	expiresAt time.Time
}

// LRUCache is a concurrency-safe PaperCache bounded two ways: entries
// expire a fixed TTL after their last write, and once the entry count
// exceeds the maximum the least-recently-used entry is evicted.
type LRUCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front = most recently used
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

var _ PaperCache = (*LRUCache)(nil)

// NewLRUCache creates a bounded cache with the given TTL-after-write
// and maximum entry count. Both tunables are fixed for the cache's
// lifetime.
func NewLRUCache(ttl time.Duration, maxEntries int) *LRUCache {
	if ttl <= 0 {
		panic("cache ttl must be positive")
	}
	if maxEntries <= 0 {
		panic("cache max entries must be positive")
	}

	return &LRUCache{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Put stores the paper under id, resetting its TTL window. If the cache
// is over capacity afterwards, the least-recently-used entry goes.
func (c *LRUCache) Put(id string, paper *domain.QuizPaper) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[id]; ok {
		e := el.Value.(*entry)
		e.paper = paper
		e.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry{
		id:        id,
		paper:     paper,
		expiresAt: c.now().Add(c.ttl),
	})
	c.entries[id] = el

	for len(c.entries) > c.maxEntries {
		c.removeOldestLocked()
	}
}

// Get returns the paper stored under id. Expired entries are removed on
// the spot and reported as absent.
func (c *LRUCache) Get(id string) (*domain.QuizPaper, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[id]
	if !ok {
		return nil, false
	}

	e := el.Value.(*entry)
	if !c.now().Before(e.expiresAt) {
		c.removeLocked(el)
		return nil, false
	}

	c.order.MoveToFront(el)
	return e.paper, true
}

// Evict removes the entry under id, if present.
func (c *LRUCache) Evict(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[id]; ok {
		c.removeLocked(el)
	}
}

// Len reports the current entry count, expired entries included until
// they are swept or read.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// SweepExpired removes every entry whose TTL has elapsed and returns
// how many were dropped. Passive expiry-on-read is sufficient for
// correctness; sweeping just frees memory earlier.
func (c *LRUCache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if e := el.Value.(*entry); !c.now().Before(e.expiresAt) {
			c.removeLocked(el)
			removed++
		}
		el = prev
	}
	return removed
}

// StartSweeper runs SweepExpired every interval until the context is
// cancelled. Call it in its own goroutine.
func (c *LRUCache) StartSweeper(ctx context.Context, interval time.Duration, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.SweepExpired(); n > 0 {
				log.Debug("swept expired quiz sessions", slog.Int("removed", n))
			}
		}
	}
}

func (c *LRUCache) removeOldestLocked() {
	if el := c.order.Back(); el != nil {
		c.removeLocked(el)
	}
}

func (c *LRUCache) removeLocked(el *list.Element) {
	e := el.Value.(*entry)
	c.order.Remove(el)
	delete(c.entries, e.id)
}
