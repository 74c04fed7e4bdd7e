// Package shard decodes the packed binary shard format (versions 3 through
// 12) into an in-memory Trie, and exposes the succinct radix trie that the
// matcher walks. Decoding is pure: a Shard, once returned, is never mutated.
package shard

import "fmt"

// Kind is the 4-bit categorical label attached to a Location.
type Kind uint8

// Kind values, per the S-57-flavored "STRI" wire format's Appendix-style
// object-class table.
const (
	KindStreet        Kind = 0
	KindAirport       Kind = 1
	KindTrainStation  Kind = 2
	KindBusStop       Kind = 3
	KindFerryTerminal Kind = 4
	KindUniversity    Kind = 5
	KindMuseum        Kind = 6
	KindCivicBuilding Kind = 7
	KindSight         Kind = 8
	KindCity          Kind = 9
	KindCountry       Kind = 10
	// 11-14 are reserved.
	KindOther Kind = 15
)

// MaxKind is the largest representable Kind; values above it are malformed.
const MaxKind = 15

func (k Kind) String() string {
	switch k {
	case KindStreet:
		return "Street"
	case KindAirport:
		return "Airport"
	case KindTrainStation:
		return "Train station"
	case KindBusStop:
		return "Bus stop"
	case KindFerryTerminal:
		return "Ferry terminal"
	case KindUniversity:
		return "University"
	case KindMuseum:
		return "Museum"
	case KindCivicBuilding:
		return "Civic building"
	case KindSight:
		return "Sight"
	case KindCity:
		return "City"
	case KindCountry:
		return "Country"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Location is a single geocoded point: a coordinate, the index of its parent
// place-node and place-city strings, its Kind, and (version 12+) a coarse
// population bucket.
type Location struct {
	Lon, Lat         float64
	PlaceNodeIdx     uint32
	PlaceCityIdx     uint32
	Kind             Kind
	PopulationBucket uint8
}

// Value is a trie node's payload. Versions <= 5 store an index into the
// shard's standalone Locations array (Indirect); versions >= 6 inline the
// Location directly at the node (Inline). The matcher resolves either form
// uniformly at collect time and never branches on shard version to do so.
type Value struct {
	indirect bool
	index    uint32
	inline   Location
}

// IndirectValue builds a Value that points into Shard.Locations.
func IndirectValue(index uint32) Value {
	return Value{indirect: true, index: index}
}

// InlineValue builds a Value that carries its Location directly.
func InlineValue(loc Location) Value {
	return Value{inline: loc}
}

// Resolve returns the Value's Location, following the indirection through
// locations if this is an Indirect value.
func (v Value) Resolve(locations []Location) (Location, error) {
	if !v.indirect {
		return v.inline, nil
	}
	if int(v.index) >= len(locations) {
		return Location{}, fmt.Errorf("shard: value index %d out of range (%d locations)", v.index, len(locations))
	}
	return locations[v.index], nil
}

// Edge is a labeled transition to a child node. Label is the raw (not
// normalized) UTF-8 text consumed along this edge.
type Edge struct {
	Label string
	Child uint32
}

// Node is one trie node: its outgoing edges and the values (if any) stored
// at it directly. Edges and values are kept in file order; the matcher does
// not depend on that order for correctness, only for deterministic output.
type Node struct {
	Edges  []Edge
	Values []Value
}

// Trie is the immutable radix trie decoded from a shard. Node 0 is always
// the root.
type Trie struct {
	Nodes []Node
}

// Root returns the trie's root node index, always 0.
func (t *Trie) Root() uint32 { return 0 }

// Node returns the node at idx. The caller must ensure idx is in range;
// decoding guarantees every Edge.Child produced is in range for the Trie it
// came from (invariant (i) in the data model).
func (t *Trie) Node(idx uint32) *Node { return &t.Nodes[idx] }

// Shard is a fully decoded, immutable shard: its scale factor, the two place
// tables, the optional standalone locations array (versions <= 5 only), the
// trie, and the total count of reachable Location records.
type Shard struct {
	Version        byte
	ScaleFactor    int64
	PlaceNodeTable []string
	PlaceCityTable []string
	Locations      []Location // non-empty only for version <= 5
	Trie           *Trie
	LocationsCount int
}

// PlaceNode returns the place-node string at idx, or "" if out of range.
func (s *Shard) PlaceNode(idx uint32) string {
	if int(idx) >= len(s.PlaceNodeTable) {
		return ""
	}
	return s.PlaceNodeTable[idx]
}

// PlaceCity returns the place-city string at idx, or "" if out of range.
func (s *Shard) PlaceCity(idx uint32) string {
	if int(idx) >= len(s.PlaceCityTable) {
		return ""
	}
	return s.PlaceCityTable[idx]
}
