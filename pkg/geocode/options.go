package geocode

import (
	"net/http"

	"github.com/osmtrie/streettrie/internal/shard"
)

// Options configures a Session. Every field has a documented default
// reachable through DefaultOptions.
type Options struct {
	// MaxResults caps the number of results returned per lookup.
	// Default: 80.
	MaxResults int

	// ShardPrefixLen is the number of normalized code units used to derive a
	// shard key. Default: 3.
	ShardPrefixLen int

	// ShardBase is the filename stem used when deriving the shard fetch URL.
	// Default: "street_trie".
	ShardBase string

	// ShardSuffix is the filename suffix used when deriving the shard fetch
	// URL. Default: ".packed.gz".
	ShardSuffix string

	// ShardRoot is the base URL or path prefix shard keys are resolved
	// against.
	ShardRoot string

	// AllowedKinds restricts results to this set of kinds. Nil means any
	// kind is allowed.
	AllowedKinds map[shard.Kind]bool

	// Fetch retrieves shard bytes for a derived URL. Defaults to
	// HTTPFetch(http.DefaultClient).
	Fetch FetchFunc

	// Gunzip decompresses gzip-framed shard bytes. Defaults to StdGunzip.
	Gunzip GunzipFunc

	// MaxCachedShards bounds the positive shard cache with LRU eviction.
	// Zero means unbounded (the cache is bounded anyway by the size of the
	// shard-key alphabet, typically a few dozen entries).
	MaxCachedShards int

	// Logger receives diagnostic messages for decode/transport failures that
	// the facade maps to a "missing" result. Defaults to a no-op: the
	// library never logs on its own initiative, only through this hook.
	Logger Logger

	// TrackCoverage enables the debug coverage map backed by an R-tree of
	// decoded locations' bounding boxes. Default: false, since it costs
	// memory and CPU proportional to every decoded location and is
	// diagnostic-only.
	TrackCoverage bool
}

// Logger receives a printf-style diagnostic message.
type Logger func(format string, args ...any)

func noopLogger(string, ...any) {}

// DefaultOptions returns Options with every field set to its documented
// default.
func DefaultOptions() Options {
	return Options{
		MaxResults:     80,
		ShardPrefixLen: 3,
		ShardBase:      "street_trie",
		ShardSuffix:    ".packed.gz",
		ShardRoot:      "",
		AllowedKinds:   nil,
		Fetch:          HTTPFetch(http.DefaultClient),
		Gunzip:         StdGunzip,
		Logger:         noopLogger,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxResults <= 0 {
		o.MaxResults = d.MaxResults
	}
	if o.ShardPrefixLen <= 0 {
		o.ShardPrefixLen = d.ShardPrefixLen
	}
	if o.ShardBase == "" {
		o.ShardBase = d.ShardBase
	}
	if o.ShardSuffix == "" {
		o.ShardSuffix = d.ShardSuffix
	}
	if o.Fetch == nil {
		o.Fetch = d.Fetch
	}
	if o.Gunzip == nil {
		o.Gunzip = d.Gunzip
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}
