package geocode

import (
	"container/list"
	"sync"

	"github.com/osmtrie/streettrie/internal/shard"
)

// shardCache is the keyed mapping shardKey -> Shard. It optionally bounds
// itself with LRU eviction: a map plus a container/list for recency order,
// guarded by one mutex. It is not memory-size bounded — the shard-key
// keyspace is small (alphabet-cubed, a few dozen keys), so a simple
// entry-count limit suffices.
type shardCache struct {
	mu       sync.Mutex
	maxItems int // 0 means unbounded
	entries  map[string]*list.Element
	order    *list.List // most recently used at front
}

type cacheEntry struct {
	key   string
	shard *shard.Shard
}

func newShardCache(maxItems int) *shardCache {
	return &shardCache{
		maxItems: maxItems,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// get returns the cached shard for key, moving it to the front of the LRU
// order on hit.
func (c *shardCache) get(key string) (*shard.Shard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).shard, true
}

// put inserts or overwrites the cached shard for key. A second populate of
// the same key with the same decoded value is a harmless overwrite.
func (c *shardCache) put(key string, s *shard.Shard) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).shard = s
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&cacheEntry{key: key, shard: s})
	c.entries[key] = elem

	if c.maxItems > 0 {
		for c.order.Len() > c.maxItems {
			c.evictOldest()
		}
	}
}

func (c *shardCache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.order.Remove(elem)
	delete(c.entries, elem.Value.(*cacheEntry).key)
}
