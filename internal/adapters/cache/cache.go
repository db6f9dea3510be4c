// Package cache memoizes estimated audio features by track ID.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/okian/moodmix/internal/domain/estimate"
	"github.com/okian/moodmix/internal/domain/model"
	"github.com/okian/moodmix/pkg/metrics"
)

const defaultMaxSize = 10_000

// node is one entry in the insertion-ordered list.
type node struct {
	id       string
	features model.AudioFeatures
	prev     *node
	next     *node
}

func (n *node) reset() {
	*n = node{}
}

// Estimates wraps an estimate.Source and remembers its answers. Bounded
// caches evict the oldest entry first. It is safe for concurrent use.
type Estimates struct {
	src estimate.Source

	mu       sync.Mutex
	entries  map[string]*node
	head     *node // newest
	tail     *node // oldest
	maxSize  int   // 0 or negative = unbounded
	size     atomic.Int64
	nodePool sync.Pool
}

// New creates a cache in front of src.
func New(src estimate.Source, opts ...Option) *Estimates {
	c := &Estimates{
		src:     src,
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[string]*node)
	c.nodePool = sync.Pool{
		New: func() any {
			return &node{}
		},
	}
	return c
}

// Estimate returns cached features for t.ID or computes and stores them.
// Tracks without an ID bypass the cache.
func (c *Estimates) Estimate(t model.Track) model.AudioFeatures {
	if t.ID == "" {
		return c.src.Estimate(t)
	}
	if f, ok := c.Get(t.ID); ok {
		metrics.RecordCacheHit()
		return f
	}
	metrics.RecordCacheMiss()
	f := c.src.Estimate(t)
	c.Put(t.ID, f)
	return f
}

// Get returns the features stored for id.
func (c *Estimates) Get(id string) (model.AudioFeatures, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[id]
	if !ok {
		return model.AudioFeatures{}, false
	}
	return n.features, true
}

// Put stores features for id, evicting the oldest entry when full.
func (c *Estimates) Put(id string, f model.AudioFeatures) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[id]; ok {
		n.features = f
		return
	}
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	n := c.nodePool.Get().(*node) //nolint:forcetypeassert // pool only holds *node
	n.id = id
	n.features = f
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
	c.entries[id] = n
	c.size.Add(1)
	metrics.UpdateCacheSize(int(c.size.Load()))
}

// Size returns the number of cached entries.
func (c *Estimates) Size() int64 {
	return c.size.Load()
}

// evictOldest must be called with c.mu held.
func (c *Estimates) evictOldest() {
	if c.tail != nil {
		c.unlink(c.tail)
	}
}

// unlink must be called with c.mu held.
func (c *Estimates) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	delete(c.entries, n.id)
	n.reset()
	c.nodePool.Put(n)
	c.size.Add(-1)
	metrics.UpdateCacheSize(int(c.size.Load()))
}
