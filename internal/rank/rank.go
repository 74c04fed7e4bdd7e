// Package rank sorts matcher results: exact matches first, then by kind
// group, population, kind, display length, and finally locale-insensitive
// string comparison.
package rank

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/osmtrie/streettrie/internal/match"
	"github.com/osmtrie/streettrie/internal/normalize"
	"github.com/osmtrie/streettrie/internal/shard"
)

// collator performs the locale-insensitive, case-insensitive string compare
// used as the ranker's final tiebreaker (rule 6). golang.org/x/text/collate
// is used because the standard library has no locale-aware collation;
// language.Und plus IgnoreCase gives a root-locale, case-blind ordering.
var collator = collate.New(language.Und, collate.IgnoreCase)

// Ranked is one result annotated with the fields the ranker sorts on.
type Ranked struct {
	Display          string
	Location         shard.Location
	PlaceLabel       string
	ExactMatch       bool
	KindGroup        int
	PopulationBucket uint8
}

// kindGroup returns 0 for cities, 1 for streets, 2 for everything else.
func kindGroup(k shard.Kind) int {
	switch k {
	case shard.KindCity:
		return 0
	case shard.KindStreet:
		return 1
	default:
		return 2
	}
}

// placeLabel builds the "{placeNode}, {placeCity}" label, falling back to
// whichever of the two is non-empty, or "Unknown city" if both are empty.
func placeLabel(node, city string) string {
	switch {
	case node != "" && city != "":
		return node + ", " + city
	case node != "":
		return node
	case city != "":
		return city
	default:
		return "Unknown city"
	}
}

// Sort annotates matches and returns them ordered: exact matches before
// non-exact, lower kind group first, higher population bucket first, lower
// kind numeric value first, shorter display first, then locale-insensitive
// string comparison on display. normalizedQuery is the already-normalized
// query used to compute ExactMatch.
func Sort(s *shard.Shard, matches []match.Match, normalizedQuery string) []Ranked {
	out := make([]Ranked, len(matches))
	for i, m := range matches {
		out[i] = Ranked{
			Display:          m.Display,
			Location:         m.Location,
			PlaceLabel:       placeLabel(s.PlaceNode(m.Location.PlaceNodeIdx), s.PlaceCity(m.Location.PlaceCityIdx)),
			ExactMatch:       normalize.String(m.Display) == normalizedQuery,
			KindGroup:        kindGroup(m.Location.Kind),
			PopulationBucket: m.Location.PopulationBucket,
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ExactMatch != b.ExactMatch {
			return a.ExactMatch // exact before non-exact
		}
		if a.KindGroup != b.KindGroup {
			return a.KindGroup < b.KindGroup
		}
		if a.PopulationBucket != b.PopulationBucket {
			return a.PopulationBucket > b.PopulationBucket // higher first
		}
		if a.Location.Kind != b.Location.Kind {
			return a.Location.Kind < b.Location.Kind
		}
		if len(a.Display) != len(b.Display) {
			return len(a.Display) < len(b.Display)
		}
		return collator.CompareString(a.Display, b.Display) < 0
	})
	return out
}
