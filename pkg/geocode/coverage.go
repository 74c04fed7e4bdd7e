package geocode

import (
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/osmtrie/streettrie/internal/shard"
)

// Bounds is a geographic bounding box in degrees.
type Bounds struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// coveragePoint is one decoded Location's bounding box, tagged with the
// shard key it came from. R-tree requires non-zero rectangle dimensions, so
// a point is widened by a small epsilon.
type coveragePoint struct {
	lon, lat float64
	shardKey string
}

const coverageEpsilon = 0.0001 // ~11 meters at the equator

func (p coveragePoint) Bounds() rtreego.Rect {
	point := rtreego.Point{p.lon, p.lat}
	rect, _ := rtreego.NewRect(point, []float64{coverageEpsilon, coverageEpsilon})
	return rect
}

// coverage is the debug coverage map: an R-tree of every decoded location's
// bounding box, built lazily as shards decode. It is never consulted by
// Lookup itself — only by DebugCoverage — so it stays purely diagnostic
// rather than becoming a reverse-geocoding / nearest-neighbour query path.
type coverage struct {
	mu    sync.Mutex
	rtree *rtreego.Rtree
}

func newCoverage() *coverage {
	return &coverage{rtree: rtreego.NewTree(2, 25, 50)}
}

// observe indexes every location in a newly decoded shard under key. Shards
// are immutable once decoded, so this only needs to run once per shard;
// callers should gate on `loaded` before calling it, which Session does.
func (c *coverage) observe(key string, s *shard.Shard) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range s.Trie.Nodes {
		for _, v := range s.Trie.Nodes[i].Values {
			loc, err := v.Resolve(s.Locations)
			if err != nil {
				continue
			}
			c.rtree.Insert(coveragePoint{lon: loc.Lon, lat: loc.Lat, shardKey: key})
		}
	}
}

// DebugCoverage reports which shards decoded by this Session contributed at
// least one point inside viewport; shards later evicted from the cache are
// still reported. It is diagnostic/operator tooling only: Lookup never
// calls it, and it performs no prefix matching of its own.
func (s *Session) DebugCoverage(viewport Bounds) []string {
	if s.coverage == nil {
		return nil
	}
	s.coverage.mu.Lock()
	defer s.coverage.mu.Unlock()

	point := rtreego.Point{viewport.MinLon, viewport.MinLat}
	lengths := []float64{viewport.MaxLon - viewport.MinLon, viewport.MaxLat - viewport.MinLat}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var keys []string
	for _, sp := range s.coverage.rtree.SearchIntersect(rect) {
		key := sp.(coveragePoint).shardKey
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}
