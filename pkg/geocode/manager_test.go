package geocode

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
)

// minimalV9Shard builds the smallest valid version-9 shard byte buffer: a
// single root node, empty tables, no edges, no values.
func minimalV9Shard() []byte {
	var buf []byte
	appendVarint := func(v uint64) {
		var tmp [10]byte
		n := binary.PutUvarint(tmp[:], v)
		buf = append(buf, tmp[:n]...)
	}
	buf = append(buf, "STRI"...)
	buf = append(buf, 9)
	buf = append(buf, 0xE8, 0x03, 0x00) // uint24LE scale = 1000
	appendVarint(0)                    // placeNodeTable count
	appendVarint(0)                    // placeCityTable count
	appendVarint(1)                    // nodeCount
	appendVarint(0)                    // loudsBitCount
	appendVarint(0)                    // edgeCount
	appendVarint(0)                    // node0 valueCount
	return buf
}

func newTestOptions(fetch FetchFunc) Options {
	opts := DefaultOptions()
	opts.Fetch = fetch
	opts.ShardRoot = "https://tiles.example.com"
	return opts.withDefaults()
}

func TestManagerAcquireFetchesAndCaches(t *testing.T) {
	var calls int
	fetch := func(ctx context.Context, url string) ([]byte, error) {
		calls++
		return minimalV9Shard(), nil
	}
	m := newManager(newTestOptions(fetch))

	s, loaded, err := m.acquire(context.Background(), "mai")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !loaded {
		t.Error("loaded = false on first acquire, want true")
	}
	if s.Version != 9 {
		t.Errorf("Version = %d, want 9", s.Version)
	}

	s2, loaded2, err := m.acquire(context.Background(), "mai")
	if err != nil {
		t.Fatalf("acquire (cached): %v", err)
	}
	if loaded2 {
		t.Error("loaded = true on cache hit, want false")
	}
	if s2 != s {
		t.Error("cached acquire returned a different *Shard")
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
}

func TestManagerAcquireNotFound(t *testing.T) {
	fetch := func(ctx context.Context, url string) ([]byte, error) {
		return nil, ErrShardNotFound
	}
	m := newManager(newTestOptions(fetch))

	_, _, err := m.acquire(context.Background(), "zzz")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsBadShard(err) {
		t.Errorf("IsBadShard(%v) = false, want true", err)
	}
}

func TestManagerAcquireFailureDoesNotPoisonCache(t *testing.T) {
	attempt := 0
	fetch := func(ctx context.Context, url string) ([]byte, error) {
		attempt++
		if attempt == 1 {
			return nil, errors.New("transient network error")
		}
		return minimalV9Shard(), nil
	}
	m := newManager(newTestOptions(fetch))

	if _, _, err := m.acquire(context.Background(), "mai"); err == nil {
		t.Fatal("expected first acquire to fail")
	}
	s, loaded, err := m.acquire(context.Background(), "mai")
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if !loaded || s == nil {
		t.Error("second acquire should retry the fetch and succeed")
	}
	if attempt != 2 {
		t.Errorf("fetch called %d times, want 2", attempt)
	}
}

func TestManagerAcquireDedupesConcurrentFetches(t *testing.T) {
	var calls int
	var mu sync.Mutex
	release := make(chan struct{})
	fetch := func(ctx context.Context, url string) ([]byte, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return minimalV9Shard(), nil
	}
	m := newManager(newTestOptions(fetch))

	var wg sync.WaitGroup
	results := make([]bool, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, loaded, err := m.acquire(context.Background(), "mai")
			if err != nil {
				t.Errorf("acquire: %v", err)
			}
			results[i] = loaded
		}(i)
	}

	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1 (deduped)", calls)
	}
	loadedCount := 0
	for _, l := range results {
		if l {
			loadedCount++
		}
	}
	if loadedCount != 1 {
		t.Errorf("loaded=true count = %d, want exactly 1", loadedCount)
	}
}
