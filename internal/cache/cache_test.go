package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danbi/vocadrill/internal/domain"
)

func testPaper(sessionID string) *domain.QuizPaper {
	return &domain.QuizPaper{
		SessionID: sessionID,
		Category:  "all",
		Direction: domain.DirectionForward,
		Questions: []domain.QuizQuestion{
			{
				WordID:       uuid.New(),
				Prompt:       "What does 'apple' mean?",
				Options:      [domain.OptionCount]string{"사과", "바나나", "포도", "수박"},
				CorrectIndex: 0,
			},
		},
	}
}

// clockedCache returns a cache whose clock the test controls.
func clockedCache(t *testing.T, ttl time.Duration, maxEntries int) (*LRUCache, *time.Time) {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewLRUCache(ttl, maxEntries)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestLRUCachePutGet(t *testing.T) {
	c, _ := clockedCache(t, 30*time.Minute, 10)

	paper := testPaper("session-1")
	c.Put(paper.SessionID, paper)

	got, ok := c.Get("session-1")
	require.True(t, ok)
	assert.Same(t, paper, got)

	_, ok = c.Get("unknown")
	assert.False(t, ok)
}

func TestLRUCacheExpiry(t *testing.T) {
	c, now := clockedCache(t, 30*time.Minute, 10)

	c.Put("session-1", testPaper("session-1"))

	*now = now.Add(29 * time.Minute)
	_, ok := c.Get("session-1")
	assert.True(t, ok, "entry should survive inside the TTL window")

	*now = now.Add(time.Minute)
	_, ok = c.Get("session-1")
	assert.False(t, ok, "entry should expire exactly at the TTL")

	// Expiry-on-read also removes the entry.
	assert.Equal(t, 0, c.Len())
}

func TestLRUCachePutResetsTTL(t *testing.T) {
	c, now := clockedCache(t, 30*time.Minute, 10)

	c.Put("session-1", testPaper("session-1"))

	*now = now.Add(20 * time.Minute)
	c.Put("session-1", testPaper("session-1"))

	*now = now.Add(20 * time.Minute)
	_, ok := c.Get("session-1")
	assert.True(t, ok, "rewrite should restart the TTL window")
	assert.Equal(t, 1, c.Len())
}

func TestLRUCacheEvictsOldestOverCapacity(t *testing.T) {
	c, _ := clockedCache(t, 30*time.Minute, 3)

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("session-%d", i)
		c.Put(id, testPaper(id))
	}

	// Touch session-0 so session-1 becomes the least recently used.
	_, ok := c.Get("session-0")
	require.True(t, ok)

	c.Put("session-3", testPaper("session-3"))

	assert.Equal(t, 3, c.Len())
	_, ok = c.Get("session-1")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("session-0")
	assert.True(t, ok)
	_, ok = c.Get("session-3")
	assert.True(t, ok)
}

func TestLRUCacheEvict(t *testing.T) {
	c, _ := clockedCache(t, 30*time.Minute, 10)

	c.Put("session-1", testPaper("session-1"))
	c.Evict("session-1")
	c.Evict("session-1") // absent is a no-op

	_, ok := c.Get("session-1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRUCacheSweepExpired(t *testing.T) {
	c, now := clockedCache(t, 30*time.Minute, 10)

	c.Put("old-1", testPaper("old-1"))
	c.Put("old-2", testPaper("old-2"))

	*now = now.Add(20 * time.Minute)
	c.Put("fresh", testPaper("fresh"))

	*now = now.Add(15 * time.Minute)
	removed := c.SweepExpired()

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestNewLRUCachePanicsOnBadTunables(t *testing.T) {
	assert.Panics(t, func() { NewLRUCache(0, 10) })
	assert.Panics(t, func() { NewLRUCache(time.Minute, 0) })
}

func TestLRUCacheConcurrentAccess(t *testing.T) {
	c := NewLRUCache(30*time.Minute, 100)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				id := fmt.Sprintf("session-%d-%d", worker, j%20)
				c.Put(id, testPaper(id))
				c.Get(id)
				if j%10 == 0 {
					c.Evict(id)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 100)
}
