package cache

// index maps a key to the arena slot holding its entry.
//
// It is not safe for concurrent use; Cache only touches it under mu.
type index[K comparable] map[K]handle

func newIndex[K comparable]() index[K] {
	return make(index[K])
}

func (ix index[K]) contains(key K) bool {
	_, ok := ix[key]
	return ok
}

func (ix index[K]) lookup(key K) (handle, bool) {
	h, ok := ix[key]
	return h, ok
}

// insert refuses to overwrite an existing mapping.
func (ix index[K]) insert(key K, h handle) bool {
	if _, ok := ix[key]; ok {
		return false
	}
	ix[key] = h
	return true
}

func (ix index[K]) remove(key K) {
	delete(ix, key)
}
