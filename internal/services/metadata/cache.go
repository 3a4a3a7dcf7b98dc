package metadata

import "sync"

// fifoCache is a bounded cache keyed by (type, lowercased query). When the
// capacity is exceeded the oldest inserted key is evicted; insertion order
// only, no LRU promotion on reads.
type fifoCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]Result
	order    []string
}

func newFIFOCache(capacity int) *fifoCache {
	return &fifoCache{
		capacity: capacity,
		entries:  make(map[string][]Result),
	}
}

func (c *fifoCache) Get(key string) ([]Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	results, ok := c.entries[key]
	return results, ok
}

func (c *fifoCache) Put(key string, results []Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = results

	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *fifoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
