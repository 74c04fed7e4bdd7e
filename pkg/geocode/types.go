package geocode

import "github.com/osmtrie/streettrie/internal/shard"

// Kind is the 4-bit categorical label attached to a Location. It is a
// transparent alias of the decoder's internal Kind so that shard.Kind's
// single definition stays authoritative while external callers never need
// to import the internal package.
type Kind = shard.Kind

// Kind values, re-exported from the decoder package.
const (
	KindStreet        = shard.KindStreet
	KindAirport       = shard.KindAirport
	KindTrainStation  = shard.KindTrainStation
	KindBusStop       = shard.KindBusStop
	KindFerryTerminal = shard.KindFerryTerminal
	KindUniversity    = shard.KindUniversity
	KindMuseum        = shard.KindMuseum
	KindCivicBuilding = shard.KindCivicBuilding
	KindSight         = shard.KindSight
	KindCity          = shard.KindCity
	KindCountry       = shard.KindCountry
	KindOther         = shard.KindOther
)

// Location is a single geocoded point, converted from the decoder's
// internal representation at the package boundary.
type Location struct {
	Lon, Lat         float64
	PlaceNodeIdx     uint32
	PlaceCityIdx     uint32
	Kind             Kind
	PopulationBucket uint8
}

func fromShardLocation(l shard.Location) Location {
	return Location{
		Lon:              l.Lon,
		Lat:              l.Lat,
		PlaceNodeIdx:     l.PlaceNodeIdx,
		PlaceCityIdx:     l.PlaceCityIdx,
		Kind:             l.Kind,
		PopulationBucket: l.PopulationBucket,
	}
}
