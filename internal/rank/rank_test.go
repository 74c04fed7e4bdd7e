package rank

import (
	"testing"

	"github.com/osmtrie/streettrie/internal/match"
	"github.com/osmtrie/streettrie/internal/shard"
)

func testShard() *shard.Shard {
	return &shard.Shard{
		PlaceNodeTable: []string{"Springfield"},
		PlaceCityTable: []string{"Illinois"},
	}
}

func TestSortExactMatchFirst(t *testing.T) {
	s := testShard()
	matches := []match.Match{
		{Display: "Main Street Extension", Location: shard.Location{Kind: shard.KindStreet}},
		{Display: "Main", Location: shard.Location{Kind: shard.KindStreet}},
	}
	got := Sort(s, matches, "main")
	if got[0].Display != "Main" {
		t.Fatalf("got[0].Display = %q, want exact match %q", got[0].Display, "Main")
	}
	if !got[0].ExactMatch {
		t.Error("got[0].ExactMatch = false, want true")
	}
}

func TestSortKindGroupBeforePopulation(t *testing.T) {
	s := testShard()
	matches := []match.Match{
		{Display: "Main Plaza", Location: shard.Location{Kind: shard.KindSight, PopulationBucket: 9}},
		{Display: "Main City", Location: shard.Location{Kind: shard.KindCity, PopulationBucket: 1}},
	}
	got := Sort(s, matches, "zzz")
	if got[0].Display != "Main City" {
		t.Errorf("got[0].Display = %q, want city (kind group 0) ahead of higher-population sight", got[0].Display)
	}
}

func TestSortPopulationBucketDescending(t *testing.T) {
	s := testShard()
	matches := []match.Match{
		{Display: "A Street", Location: shard.Location{Kind: shard.KindStreet, PopulationBucket: 1}},
		{Display: "B Street", Location: shard.Location{Kind: shard.KindStreet, PopulationBucket: 5}},
	}
	got := Sort(s, matches, "zzz")
	if got[0].Display != "B Street" {
		t.Errorf("got[0].Display = %q, want higher population bucket first", got[0].Display)
	}
}

func TestSortShorterDisplayBeforeLonger(t *testing.T) {
	s := testShard()
	matches := []match.Match{
		{Display: "Main Street Extension", Location: shard.Location{Kind: shard.KindStreet, PopulationBucket: 1}},
		{Display: "Main St", Location: shard.Location{Kind: shard.KindStreet, PopulationBucket: 1}},
	}
	got := Sort(s, matches, "zzz")
	if got[0].Display != "Main St" {
		t.Errorf("got[0].Display = %q, want shorter display first", got[0].Display)
	}
}

func TestSortLocaleInsensitiveTiebreak(t *testing.T) {
	s := testShard()
	matches := []match.Match{
		{Display: "Cherry St", Location: shard.Location{Kind: shard.KindStreet, PopulationBucket: 1}},
		{Display: "banana St", Location: shard.Location{Kind: shard.KindStreet, PopulationBucket: 1}},
	}
	got := Sort(s, matches, "zzz")
	if got[0].Display != "banana St" {
		t.Errorf("got[0].Display = %q, want case-insensitive alphabetical order to put %q first", got[0].Display, "banana St")
	}
}

func TestSortStableOnFullTie(t *testing.T) {
	s := testShard()
	matches := []match.Match{
		{Display: "Same St", Location: shard.Location{Kind: shard.KindStreet, PopulationBucket: 1}},
		{Display: "Same St", Location: shard.Location{Kind: shard.KindStreet, PopulationBucket: 1, PlaceNodeIdx: 1}},
	}
	got := Sort(s, matches, "zzz")
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].Location.PlaceNodeIdx != 0 || got[1].Location.PlaceNodeIdx != 1 {
		t.Errorf("PlaceNodeIdx order = %d,%d, want input order 0,1", got[0].Location.PlaceNodeIdx, got[1].Location.PlaceNodeIdx)
	}
}

func TestPlaceLabelFallsBackToUnknown(t *testing.T) {
	s := &shard.Shard{}
	matches := []match.Match{{Display: "Main St"}}
	got := Sort(s, matches, "zzz")
	if got[0].PlaceLabel != "Unknown city" {
		t.Errorf("PlaceLabel = %q, want %q", got[0].PlaceLabel, "Unknown city")
	}
}
