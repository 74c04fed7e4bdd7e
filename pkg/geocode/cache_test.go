package geocode

import (
	"fmt"
	"testing"

	"github.com/osmtrie/streettrie/internal/shard"
)

func TestShardCacheGetMiss(t *testing.T) {
	c := newShardCache(0)
	if _, ok := c.get("abc"); ok {
		t.Error("get on empty cache returned ok=true")
	}
}

func TestShardCachePutGet(t *testing.T) {
	c := newShardCache(0)
	s := &shard.Shard{LocationsCount: 1}
	c.put("abc", s)
	got, ok := c.get("abc")
	if !ok || got != s {
		t.Fatalf("get(%q) = %v, %v, want %v, true", "abc", got, ok, s)
	}
}

func TestShardCacheRepopulateOverwrites(t *testing.T) {
	c := newShardCache(0)
	s1 := &shard.Shard{LocationsCount: 1}
	s2 := &shard.Shard{LocationsCount: 2}
	c.put("abc", s1)
	c.put("abc", s2)
	got, _ := c.get("abc")
	if got != s2 {
		t.Errorf("get after repopulate = %v, want latest value %v", got, s2)
	}
	if len(c.entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(c.entries))
	}
}

func TestShardCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newShardCache(2)
	c.put("a", &shard.Shard{})
	c.put("b", &shard.Shard{})
	c.get("a") // touch a, so b is now the least recently used
	c.put("c", &shard.Shard{})

	if _, ok := c.get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.get("a"); !ok {
		t.Error("a should still be cached")
	}
	if _, ok := c.get("c"); !ok {
		t.Error("c should be cached")
	}
}

func TestShardCacheUnboundedDoesNotEvict(t *testing.T) {
	c := newShardCache(0)
	for i := 0; i < 50; i++ {
		c.put(fmt.Sprintf("key%d", i), &shard.Shard{})
	}
	if len(c.entries) != 50 {
		t.Errorf("len(entries) = %d, want 50 (no eviction)", len(c.entries))
	}
}
