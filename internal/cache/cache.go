package cache

import (
	"errors"
	"fmt"
	"sync"
)

// Config controls cache capacity and weighing.
//
// Defaults:
//   - MaxWeight <= 0 means the cache has no capacity and rejects every Put
//   - Weigher == nil means values are weighed through Sizer, or as 1 when they
//     don't implement it
//   - Clone == nil means values are stored and returned as they are; slices,
//     maps and pointers then share their backing data with the caller
type Config[V any] struct {
	MaxWeight int
	Weigher   func(V) int
	Clone     func(V) V
}

// Cache is a concurrency-safe, weight-bounded LRU cache.
//
// A map gives O(1) key lookup and a doubly-linked list maintains recency
// ordering. The list lives in an arena (see recency) so entries link by slot
// index and are reused instead of reallocated.
//
// Every method takes the same mutex for its whole body. Reads are not
// concurrent with each other: Get reorders the list, so it is a write.
//
// Values are copied by assignment. For reference-shaped V (slices, maps,
// pointers) set Config.Clone, otherwise a caller mutating a stored or
// returned value mutates the cached one.
type Cache[K comparable, V any] struct {
	mu sync.Mutex

	maxWeight int
	weight    int
	weigh     func(V) int
	clone     func(V) V

	items index[K]
	lru   *recency[K, V] // head.next = most recently used (MRU), tail.prev = least recently used (LRU)

	stats  Stats
	closed bool
}

var (
	// ErrOversized is returned by Set when a single value weighs more than the
	// cache's max weight, so it could never be held.
	ErrOversized = errors.New("value exceeds cache max weight")

	// ErrDuplicateKey is returned by Set if the key index already holds a key
	// that was found absent under the same lock. It signals corrupted state and
	// is not expected in practice.
	ErrDuplicateKey = errors.New("duplicate key insert")

	// ErrClosed is returned by Set after Close.
	ErrClosed = errors.New("cache is closed")
)

// New constructs a cache bounded to maxWeight, weighing values through Sizer.
//
// New never returns a nil Cache. A maxWeight <= 0 yields a cache that rejects
// every Put.
func New[K comparable, V any](maxWeight int) *Cache[K, V] {
	return NewWithConfig[K, V](Config[V]{MaxWeight: maxWeight})
}

// NewWithConfig constructs a cache from cfg.
func NewWithConfig[K comparable, V any](cfg Config[V]) *Cache[K, V] {
	weigh := weightOf[V]
	if cfg.Weigher != nil {
		weigh = func(v V) int {
			return clampWeight(cfg.Weigher(v))
		}
	}

	clone := cfg.Clone
	if clone == nil {
		clone = func(v V) V { return v }
	}

	return &Cache[K, V]{
		maxWeight: cfg.MaxWeight,
		weigh:     weigh,
		clone:     clone,
		items:     newIndex[K](),
		lru:       newRecency[K, V](),
	}
}

// Put stores value under key and reports whether it was accepted.
//
// It is Set with the error folded into a bool.
func (c *Cache[K, V]) Put(key K, value V) bool {
	return c.Set(key, value) == nil
}

// Set writes or overwrites a key, then evicts least recently used entries
// until the total weight fits the max weight again.
//
// A value heavier than the max weight is rejected with ErrOversized and the
// cache is left untouched. A value that fits the max weight but not the free
// space is accepted; older entries make room for it.
//
// Complexity:
//   - O(1) to locate/insert/update
//   - O(1) eviction per removed entry
func (c *Cache[K, V]) Set(key K, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	w := c.weigh(value)
	if c.maxWeight <= 0 || w > c.maxWeight {
		c.stats.Rejected++
		return fmt.Errorf("%w: weight %d, max weight %d", ErrOversized, w, c.maxWeight)
	}
	value = c.clone(value)

	if h, ok := c.items.lookup(key); ok {
		e := c.lru.entry(h)
		c.weight -= e.weight
		e.value = value
		e.weight = w

		// Updating counts as use; move to MRU.
		c.lru.moveToFront(h)
		c.makeRoomLocked(w)
		c.weight += w
		return nil
	}

	// Index first: a rejected insert must not leave a linked node behind.
	h := c.lru.alloc(key, value, w)
	if !c.items.insert(key, h) {
		c.lru.release(h)
		c.stats.Rejected++
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	c.lru.pushFront(h)
	c.makeRoomLocked(w)
	c.weight += w
	return nil
}

// Get reads a key and marks it most recently used.
//
// On a miss it returns the zero V and false, with no other effect. Get never
// evicts and never changes Size. A hit returns Config.Clone of the cached
// value, or the value itself when no Clone is configured.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.items.lookup(key)
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.stats.Hits++
	c.lru.moveToFront(h)
	return c.clone(c.lru.entry(h).value), true
}

// Contains reports whether key is cached without touching its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.contains(key)
}

// Size returns the total weight of the cached entries.
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weight
}

// MaxSize returns the max weight the cache was constructed with.
func (c *Cache[K, V]) MaxSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxWeight
}

// Len returns the number of currently stored entries.
//
// With unit weights Len equals Size.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns keys in MRU -> LRU order.
//
// This is a debug helper used by the demo and tests.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.keys()
}

// makeRoomLocked drops entries from the LRU end until an entry of weight w
// fits next to the counted weight. The entry being stored sits at the front
// and is not counted yet, so the counted weight drops to 0 before the loop
// could reach it. Compares against the free space so the counter cannot
// overflow near math.MaxInt.
func (c *Cache[K, V]) makeRoomLocked(w int) {
	for w > c.maxWeight-c.weight {
		h, ok := c.lru.back()
		if !ok {
			return
		}
		c.removeLocked(h)
		c.stats.Evictions++
	}
}

func (c *Cache[K, V]) removeLocked(h handle) {
	e := c.lru.entry(h)
	c.items.remove(e.key)
	c.lru.unlink(h)
	c.weight -= e.weight
	c.lru.release(h)
}
