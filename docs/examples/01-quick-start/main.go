package main

import (
	"context"
	"fmt"
	"log"

	"github.com/osmtrie/streettrie/pkg/geocode"
)

func main() {
	opts := geocode.DefaultOptions()
	opts.ShardRoot = "https://tiles.example.com/geocode"
	session := geocode.NewSession(opts)

	result := session.Lookup(context.Background(), "Main St, Springfield")
	if result.Status != geocode.StatusReady {
		log.Fatalf("lookup status: %v", result.Status)
	}

	fmt.Printf("Shard: %s (%d locations)\n", result.ShardKey, result.LocationsCount)
	for _, r := range result.Results {
		fmt.Printf("%s — %s (%s)\n", r.Display, r.PlaceLabel, r.Kind)
	}
}
