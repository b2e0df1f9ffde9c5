package cache

// handle addresses a slot in the recency arena.
type handle int

// Slots 0 and 1 are permanent sentinels. They never carry a key or value;
// their only job is to make pushFront and back branch-free.
const (
	head handle = 0
	tail handle = 1

	firstSlot = 2
)

// node is one arena slot. For live entries it holds the cached record and
// its links; for free slots key and value are zeroed.
type node[K comparable, V any] struct {
	key    K
	value  V
	weight int

	prev, next handle
}

// recency keeps live entries ordered from most recently used (head.next)
// to least recently used (tail.prev).
//
// Entries live in a slice and link to each other by slot index instead of
// by pointer. Released slots go onto a free list and are reused by alloc,
// so the arena only grows to the high-water mark of live entries.
//
// It is not safe for concurrent use; Cache only touches it under mu.
type recency[K comparable, V any] struct {
	nodes []node[K, V]
	free  []handle
}

func newRecency[K comparable, V any]() *recency[K, V] {
	r := &recency[K, V]{}
	r.reset()
	return r
}

// reset drops every entry and leaves only the linked sentinels.
func (r *recency[K, V]) reset() {
	r.nodes = make([]node[K, V], firstSlot)
	r.free = nil
	r.nodes[head].next = tail
	r.nodes[tail].prev = head
}

// alloc stores an entry in a free slot. The slot is not linked.
func (r *recency[K, V]) alloc(key K, value V, weight int) handle {
	n := node[K, V]{key: key, value: value, weight: weight}

	if last := len(r.free) - 1; last >= 0 {
		h := r.free[last]
		r.free = r.free[:last]
		r.nodes[h] = n
		return h
	}

	r.nodes = append(r.nodes, n)
	return handle(len(r.nodes) - 1)
}

// release returns an unlinked slot to the free list. The key and value are
// cleared so the arena does not keep them reachable.
func (r *recency[K, V]) release(h handle) {
	r.nodes[h] = node[K, V]{}
	r.free = append(r.free, h)
}

// entry returns the slot for h. The pointer is only valid until the next
// alloc, which may grow the arena.
func (r *recency[K, V]) entry(h handle) *node[K, V] {
	return &r.nodes[h]
}

func (r *recency[K, V]) pushFront(h handle) {
	first := r.nodes[head].next

	r.nodes[h].prev = head
	r.nodes[h].next = first
	r.nodes[first].prev = h
	r.nodes[head].next = h
}

func (r *recency[K, V]) unlink(h handle) {
	prev, next := r.nodes[h].prev, r.nodes[h].next

	r.nodes[prev].next = next
	r.nodes[next].prev = prev
	r.nodes[h].prev = h
	r.nodes[h].next = h
}

func (r *recency[K, V]) moveToFront(h handle) {
	if r.nodes[head].next == h {
		return
	}
	r.unlink(h)
	r.pushFront(h)
}

// back returns the least recently used entry, if any.
func (r *recency[K, V]) back() (handle, bool) {
	if r.empty() {
		return 0, false
	}
	return r.nodes[tail].prev, true
}

func (r *recency[K, V]) empty() bool {
	return r.nodes[head].next == tail
}

// keys walks the list from MRU to LRU.
func (r *recency[K, V]) keys() []K {
	out := make([]K, 0, len(r.nodes)-firstSlot-len(r.free))
	for h := r.nodes[head].next; h != tail; h = r.nodes[h].next {
		out = append(out, r.nodes[h].key)
	}
	return out
}
