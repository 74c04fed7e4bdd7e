package geocode

// Status discriminates the shape of a Result.
type Status string

const (
	// StatusEmpty means the normalized street query was empty.
	StatusEmpty Status = "empty"
	// StatusShort means the normalized query was shorter than ShardPrefixLen.
	StatusShort Status = "short"
	// StatusStale means this lookup was superseded by a later one before its
	// shard fetch resolved.
	StatusStale Status = "stale"
	// StatusMissing means no shard exists (or could be decoded) for the
	// derived key.
	StatusMissing Status = "missing"
	// StatusReady means the lookup completed and Results is populated.
	StatusReady Status = "ready"
)

// ResultItem is one ranked candidate place.
type ResultItem struct {
	Display          string
	Location         Location
	PlaceLabel       string
	Kind             Kind
	PopulationBucket uint8
	ExactMatch       bool
}

// Result is the tagged value returned by Session.Lookup. Only the fields
// relevant to Status are meaningful; see the per-field comments below for
// which Status values populate each one.
type Result struct {
	Status Status

	// Present for StatusEmpty and StatusShort.
	MinLength int

	// Present for StatusStale, StatusMissing, and StatusReady.
	ShardKey string

	// Present for StatusReady.
	Loaded         bool
	LocationsCount int
	Results        []ResultItem
}
