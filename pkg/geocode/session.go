// Package geocode is the public API: the shard manager and the lookup
// facade built on top of the internal shard/normalize/match/rank packages.
// A Session groups what would otherwise be mutable package-level state —
// the cache, the in-flight fetch table, and the monotonic lookup counter —
// into one struct, so a process can run multiple independent sessions
// without shared globals.
package geocode

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/osmtrie/streettrie/internal/match"
	"github.com/osmtrie/streettrie/internal/normalize"
	"github.com/osmtrie/streettrie/internal/rank"
	"github.com/osmtrie/streettrie/internal/shard"
)

// Session is the library's entry point: construct one with NewSession and
// call Lookup per keystroke.
type Session struct {
	opts     Options
	manager  *manager
	lookupID atomic.Int64
	coverage *coverage // nil unless Options.TrackCoverage
}

// NewSession constructs a Session. Unset fields in opts fall back to
// DefaultOptions' values.
func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{
		opts:    opts,
		manager: newManager(opts),
	}
	if opts.TrackCoverage {
		s.coverage = newCoverage()
	}
	return s
}

// SetAllowedKinds updates the kind filter applied to subsequent lookups.
// Pass nil to allow any kind.
func (s *Session) SetAllowedKinds(kinds map[Kind]bool) {
	s.opts.AllowedKinds = kinds
}

// Lookup is the library's single entry point. query may contain one comma:
// everything before it is the street query, everything after is a city
// filter; both are trimmed before normalization.
func (s *Session) Lookup(ctx context.Context, query string) Result {
	myID := s.lookupID.Add(1)

	streetRaw, cityRaw := splitQuery(query)
	normalizedStreet := normalize.String(streetRaw)
	normalizedCity := normalize.String(cityRaw)

	if normalizedStreet == "" {
		return Result{Status: StatusEmpty, MinLength: s.opts.ShardPrefixLen}
	}
	if utf8.RuneCountInString(normalizedStreet) < s.opts.ShardPrefixLen {
		return Result{Status: StatusShort, MinLength: s.opts.ShardPrefixLen}
	}

	key, ok := ShardKey(normalizedStreet, s.opts.ShardPrefixLen)
	if !ok {
		// normalizedStreet is non-empty, so ShardKey always succeeds; this
		// branch exists only to document that invariant.
		return Result{Status: StatusEmpty, MinLength: s.opts.ShardPrefixLen}
	}

	decoded, loaded, err := s.manager.acquire(ctx, key)

	if s.lookupID.Load() != myID {
		return Result{Status: StatusStale, ShardKey: key}
	}

	if err != nil {
		s.opts.Logger("geocode: shard %q unavailable: %v", key, err)
		return Result{Status: StatusMissing, ShardKey: key}
	}

	if s.coverage != nil && loaded {
		s.coverage.observe(key, decoded)
	}

	matches, err := match.Run(decoded, match.Options{
		Prefix:       normalizedStreet,
		CityFilter:   normalizedCity,
		AllowedKinds: s.opts.AllowedKinds,
		MaxResults:   s.opts.MaxResults,
	})
	if err != nil {
		s.opts.Logger("geocode: shard %q matcher error: %v", key, err)
		return Result{Status: StatusMissing, ShardKey: key}
	}

	ranked := rank.Sort(decoded, matches, normalizedStreet)
	items := make([]ResultItem, len(ranked))
	for i, r := range ranked {
		items[i] = ResultItem{
			Display:          r.Display,
			Location:         fromShardLocation(r.Location),
			PlaceLabel:       r.PlaceLabel,
			Kind:             r.Location.Kind,
			PopulationBucket: r.PopulationBucket,
			ExactMatch:       r.ExactMatch,
		}
	}

	return Result{
		Status:         StatusReady,
		ShardKey:       key,
		Loaded:         loaded,
		LocationsCount: decoded.LocationsCount,
		Results:        items,
	}
}

// splitQuery splits query on its first comma into (street, city), both
// trimmed. If there is no comma, city is "".
func splitQuery(query string) (street, city string) {
	parts := strings.SplitN(query, ",", 2)
	street = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		city = strings.TrimSpace(parts[1])
	}
	return street, city
}

// IsBadShard reports whether err is any of the decode-time errors the
// facade treats as "missing": unsupported version, malformed buffer, bad
// magic, not-found, or a transport failure. Exposed for callers building
// their own diagnostics around a Fetch/Gunzip implementation.
func IsBadShard(err error) bool {
	var badMagic *shard.BadMagicError
	var badVersion *shard.UnsupportedVersionError
	var badFormat *shard.BadFormatError
	var notFound *shard.ShardNotFoundError
	var transport *shard.TransportError
	return errors.As(err, &badMagic) ||
		errors.As(err, &badVersion) ||
		errors.As(err, &badFormat) ||
		errors.As(err, &notFound) ||
		errors.As(err, &transport)
}
