package geocode

import (
	"context"
	"errors"
	"sync"

	"github.com/osmtrie/streettrie/internal/shard"
)

// manager implements the shard manager: shard key derivation already lives
// in shardkey.go; manager owns the positive cache and the in-flight fetch
// dedupe table, and glues the fetch/gunzip/decode pipeline together.
//
// A second mapping from shardKey to a pending fetch deduplicates concurrent
// fetches of the same key (e.g. two rapid keystrokes whose normalized
// prefixes share a shard). The pending entry is removed whether the fetch
// succeeds or fails — a transient failure must not poison later lookups of
// the same key.
type manager struct {
	opts  Options
	cache *shardCache

	mu      sync.Mutex
	pending map[string]*fetchFuture
}

// fetchFuture is resolved exactly once by whichever goroutine's acquire
// call first observes no cached shard and no existing pending entry for a
// key; every other concurrent caller for the same key waits on done.
type fetchFuture struct {
	done  chan struct{}
	shard *shard.Shard
	err   error
}

func newManager(opts Options) *manager {
	return &manager{
		opts:    opts,
		cache:   newShardCache(opts.MaxCachedShards),
		pending: make(map[string]*fetchFuture),
	}
}

// acquire returns the shard for key, fetching and decoding it if necessary.
// loaded is true iff this call is the one that performed the fetch (as
// opposed to a cache hit or riding another caller's in-flight fetch).
func (m *manager) acquire(ctx context.Context, key string) (s *shard.Shard, loaded bool, err error) {
	if cached, ok := m.cache.get(key); ok {
		return cached, false, nil
	}

	m.mu.Lock()
	if f, ok := m.pending[key]; ok {
		m.mu.Unlock()
		<-f.done
		return f.shard, false, f.err
	}
	f := &fetchFuture{done: make(chan struct{})}
	m.pending[key] = f
	m.mu.Unlock()

	s, err = m.fetchAndDecode(ctx, key)
	if err == nil {
		// Cache before dropping the pending entry, so a caller arriving in
		// between finds one or the other and never starts a second fetch.
		m.cache.put(key, s)
	}

	f.shard = s
	f.err = err
	close(f.done)

	m.mu.Lock()
	delete(m.pending, key)
	m.mu.Unlock()

	if err != nil {
		return nil, true, err
	}
	return s, true, nil
}

func (m *manager) fetchAndDecode(ctx context.Context, key string) (*shard.Shard, error) {
	url := shardURL(m.opts.ShardRoot, m.opts.ShardBase, key, m.opts.ShardSuffix)

	data, err := m.opts.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, ErrShardNotFound) {
			return nil, &shard.ShardNotFoundError{ShardKey: key, URL: url}
		}
		return nil, &shard.TransportError{URL: url, Err: err}
	}

	s, err := shard.Decode(data, shard.GunzipFunc(m.opts.Gunzip))
	if err != nil {
		return nil, err
	}
	return s, nil
}
