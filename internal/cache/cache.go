package cache

// LRU is a fixed-capacity least-recently-used cache.
//
// The zero value is not usable; create caches with NewLRU.
type LRU[K comparable, V any] struct {
	entries  map[K]*lruNode[K, V]
	order    lruList[K, V]
	capacity int

	// OnEvict, when set, is called for every entry dropped by capacity
	// pressure.
	OnEvict func(key K, value V)
}

// NewLRU creates a cache holding at most capacity entries.
// Capacities below 1 are raised to 1.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		entries:  make(map[K]*lruNode[K, V]),
		capacity: max(capacity, 1),
	}
}

// Find returns the value for key and promotes it to most recently used.
func (c *LRU[K, V]) Find(key K) (V, bool) {
	node, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(node)
	return node.value, true
}

// Contains reports whether key is cached without touching its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Insert adds key if it is absent and reports whether it was added.
// An existing entry keeps its value but becomes most recently used.
func (c *LRU[K, V]) Insert(key K, value V) bool {
	if node, ok := c.entries[key]; ok {
		c.order.MoveToFront(node)
		return false
	}
	c.entries[key] = c.order.PushFront(key, value)
	c.evict()
	return true
}

// InsertOrUpdate stores value for key, replacing any existing value.
func (c *LRU[K, V]) InsertOrUpdate(key K, value V) {
	if node, ok := c.entries[key]; ok {
		node.value = value
		c.order.MoveToFront(node)
		return
	}
	c.entries[key] = c.order.PushFront(key, value)
	c.evict()
}

// FindOrCreate returns the cached value for key, calling create and
// caching its result on a miss.
func (c *LRU[K, V]) FindOrCreate(key K, create func() V) V {
	if v, ok := c.Find(key); ok {
		return v
	}
	v := create()
	c.Insert(key, v)
	return v
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(node)
	delete(c.entries, key)
	return true
}

// Purge removes every entry.
func (c *LRU[K, V]) Purge() {
	clear(c.entries)
	c.order.Clear()
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int { return len(c.entries) }

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int { return c.capacity }

// Keys returns the keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.entries))
	for n := c.order.head; n != nil; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

func (c *LRU[K, V]) evict() {
	for len(c.entries) > c.capacity {
		oldest := c.order.Oldest()
		c.order.Remove(oldest)
		delete(c.entries, oldest.key)
		if c.OnEvict != nil {
			c.OnEvict(oldest.key, oldest.value)
		}
	}
}
