// Package cache provides a generic fixed-capacity LRU cache.
//
//	c := cache.NewLRU[string, int](100)
//	c.Insert("key", 42)
//	value, ok := c.Find("key")
//
// Find promotes the entry to most recently used. Inserting beyond capacity
// evicts the least recently used entry.
//
// # Thread Safety
//
// LRU has no internal locking. Callers that share a cache between
// goroutines must serialize access.
package cache
