package shard

var supportedVersions = map[byte]bool{
	3: true, 4: true, 5: true, 6: true, 7: true,
	9: true, 10: true, 11: true, 12: true,
}

// GunzipFunc decompresses a gzip-framed buffer. Decode calls it only when
// the buffer starts with the gzip magic 0x1F 0x8B.
type GunzipFunc func(data []byte) ([]byte, error)

// Decode parses a shard byte buffer into a Shard, dispatching on the version
// byte. If buf begins with the gzip magic, it is first passed through
// gunzip. gunzip may be nil if the caller guarantees buf is never
// gzip-framed; Decode returns GunzipUnavailableError if it is needed but
// absent.
func Decode(buf []byte, gunzip GunzipFunc) (*Shard, error) {
	if len(buf) >= 2 && buf[0] == 0x1F && buf[1] == 0x8B {
		if gunzip == nil {
			return nil, &GunzipUnavailableError{}
		}
		decompressed, err := gunzip(buf)
		if err != nil {
			return nil, err
		}
		buf = decompressed
	}

	r := newReader(buf)

	magic, err := r.readBytes(4)
	if err != nil {
		return nil, err
	}
	if string(magic) != "STRI" {
		var got [4]byte
		copy(got[:], magic)
		return nil, &BadMagicError{Got: got}
	}

	version, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if !supportedVersions[version] {
		return nil, &UnsupportedVersionError{Version: version}
	}

	scale, err := readScale(r, version)
	if err != nil {
		return nil, err
	}
	if scale == 0 {
		return nil, badFormatf(r.off, "scale factor is zero")
	}

	placeNodeTable, err := readTable(r, version)
	if err != nil {
		return nil, err
	}
	placeCityTable, err := readTable(r, version)
	if err != nil {
		return nil, err
	}

	var locations []Location
	if version <= 5 {
		locations, err = readLegacyLocations(r, version, scale)
		if err != nil {
			return nil, err
		}
	}

	var labelTable []string
	if version == 4 {
		labelTable, err = r.lengthPrefixedTable()
		if err != nil {
			return nil, err
		}
	}

	nodeCount, err := r.varint()
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, nodeCount)
	if version <= 6 {
		if err := decodeLegacyNodes(r, nodes, version, scale, labelTable); err != nil {
			return nil, err
		}
	} else {
		if err := decodeLOUDSNodes(r, nodes, version, scale); err != nil {
			return nil, err
		}
	}

	locationsCount := len(locations)
	if version >= 6 {
		locationsCount = 0
		for i := range nodes {
			locationsCount += len(nodes[i].Values)
		}
	}

	return &Shard{
		Version:        version,
		ScaleFactor:    scale,
		PlaceNodeTable: placeNodeTable,
		PlaceCityTable: placeCityTable,
		Locations:      locations,
		Trie:           &Trie{Nodes: nodes},
		LocationsCount: locationsCount,
	}, nil
}

// readScale reads the shard-wide scale factor. Versions {5,6,7,9,10,11,12}
// encode it as unsigned 24-bit little-endian; versions {3,4} as signed
// 32-bit little-endian.
func readScale(r *reader, version byte) (int64, error) {
	switch version {
	case 3, 4:
		v, err := r.int32LE()
		return int64(v), err
	default:
		v, err := r.uint24LE()
		return int64(v), err
	}
}

// readTable reads one place table (node or city), using the
// prefix-compressed encoding for version >= 9 and count+length-prefixed
// entries otherwise.
func readTable(r *reader, version byte) ([]string, error) {
	if version >= 9 {
		count, err := r.varint()
		if err != nil {
			return nil, err
		}
		return r.prefixTable(count)
	}
	return r.lengthPrefixedTable()
}

// readLegacyLocations reads the standalone locations array present in
// versions <= 5. lon/lat are int24 for version 5, int32LE for versions 3/4.
func readLegacyLocations(r *reader, version byte, scale int64) ([]Location, error) {
	count, err := r.varint()
	if err != nil {
		return nil, err
	}
	out := make([]Location, count)
	for i := range out {
		var lonInt, latInt int32
		if version == 5 {
			lonInt, err = r.int24LE()
			if err != nil {
				return nil, err
			}
			latInt, err = r.int24LE()
			if err != nil {
				return nil, err
			}
		} else {
			lonInt, err = r.int32LE()
			if err != nil {
				return nil, err
			}
			latInt, err = r.int32LE()
			if err != nil {
				return nil, err
			}
		}
		nodeIdx, err := r.varint()
		if err != nil {
			return nil, err
		}
		cityIdx, err := r.varint()
		if err != nil {
			return nil, err
		}
		out[i] = Location{
			Lon:          float64(lonInt) / float64(scale),
			Lat:          float64(latInt) / float64(scale),
			PlaceNodeIdx: nodeIdx,
			PlaceCityIdx: cityIdx,
		}
	}
	return out, nil
}

// decodeLegacyNodes decodes the explicit (non-LOUDS) node block used by
// versions <= 6: for each node, an explicit edge list followed by a value
// list.
func decodeLegacyNodes(r *reader, nodes []Node, version byte, scale int64, labelTable []string) error {
	for i := range nodes {
		edgeCount, err := r.varint()
		if err != nil {
			return err
		}
		edges := make([]Edge, edgeCount)
		for e := range edges {
			var label string
			if version == 4 {
				idx, err := r.varint()
				if err != nil {
					return err
				}
				if int(idx) >= len(labelTable) {
					return badFormatf(r.off, "node %d edge %d: label index %d out of range", i, e, idx)
				}
				label = labelTable[idx]
			} else {
				label, err = r.lengthPrefixedUTF8()
				if err != nil {
					return err
				}
			}
			child, err := r.varint()
			if err != nil {
				return err
			}
			edges[e] = Edge{Label: label, Child: child}
		}
		nodes[i].Edges = edges

		valueCount, err := r.varint()
		if err != nil {
			return err
		}
		values := make([]Value, valueCount)
		for v := range values {
			if version == 6 {
				loc, err := readInlineGeometry(r, scale)
				if err != nil {
					return err
				}
				values[v] = InlineValue(loc)
			} else {
				idx, err := r.varint()
				if err != nil {
					return err
				}
				values[v] = IndirectValue(idx)
			}
		}
		nodes[i].Values = values
	}
	return validateChildRefs(nodes)
}

// decodeLOUDSNodes decodes the LOUDS block used by versions >= 7: a
// bitvector plus flat edge-label table reconstructing the trie shape, then a
// per-node value stream whose kind (and, from version 12, population bucket)
// encoding varies by version.
func decodeLOUDSNodes(r *reader, nodes []Node, version byte, scale int64) error {
	bitCount, err := r.varint()
	if err != nil {
		return err
	}
	bitmapBytes := int((bitCount + 7) / 8)
	bitmap, err := r.readBytes(bitmapBytes)
	if err != nil {
		return err
	}

	edgeCount, err := r.varint()
	if err != nil {
		return err
	}
	edgeLabels := make([]string, edgeCount)
	for i := range edgeLabels {
		edgeLabels[i], err = r.lengthPrefixedUTF8()
		if err != nil {
			return err
		}
	}

	if err := decodeLOUDS(nodes, bitmap, bitCount, edgeLabels); err != nil {
		return err
	}

	nibbles := newNibbleReader(r)
	var pending *Value // version 11: first value of a pair, kind not yet read
	for i := range nodes {
		valueCount, err := r.varint()
		if err != nil {
			return err
		}
		values := make([]Value, valueCount)
		for v := range values {
			loc, err := readInlineGeometry(r, scale)
			if err != nil {
				return err
			}
			if version == 11 && pending == nil {
				values[v] = InlineValue(loc)
				pending = &values[v]
				continue
			}
			if pending != nil {
				// The pair's byte follows its second value; the low nibble
				// belongs to the earlier, pending value.
				if pending.inline.Kind, _, err = readKindSuffix(r, nibbles, version); err != nil {
					return err
				}
				pending = nil
			}
			kind, pop, err := readKindSuffix(r, nibbles, version)
			if err != nil {
				return err
			}
			loc.Kind = kind
			loc.PopulationBucket = pop
			values[v] = InlineValue(loc)
		}
		nodes[i].Values = values
	}
	if pending != nil {
		// Odd value count overall: one trailing byte whose low nibble is the
		// last value's kind.
		if pending.inline.Kind, _, err = readKindSuffix(r, nibbles, version); err != nil {
			return err
		}
	}
	return validateChildRefs(nodes)
}

// readInlineGeometry reads the four geometric/place fields shared by every
// inline value record: int24 lon, int24 lat, varint nodeIdx, varint cityIdx.
func readInlineGeometry(r *reader, scale int64) (Location, error) {
	lonInt, err := r.int24LE()
	if err != nil {
		return Location{}, err
	}
	latInt, err := r.int24LE()
	if err != nil {
		return Location{}, err
	}
	nodeIdx, err := r.varint()
	if err != nil {
		return Location{}, err
	}
	cityIdx, err := r.varint()
	if err != nil {
		return Location{}, err
	}
	return Location{
		Lon:          float64(lonInt) / float64(scale),
		Lat:          float64(latInt) / float64(scale),
		PlaceNodeIdx: nodeIdx,
		PlaceCityIdx: cityIdx,
	}, nil
}

// readKindSuffix reads the per-version kind (and, for version 12, population
// bucket) suffix following a value's geometric fields.
func readKindSuffix(r *reader, nibbles *nibbleReader, version byte) (Kind, uint8, error) {
	switch version {
	case 7, 9:
		return KindStreet, 0, nil
	case 10:
		b, err := r.readByte()
		if err != nil {
			return 0, 0, err
		}
		if b > MaxKind {
			return 0, 0, badFormatf(r.off-1, "kind byte %d exceeds maximum %d", b, MaxKind)
		}
		return Kind(b), 0, nil
	case 11:
		n, err := nibbles.next()
		if err != nil {
			return 0, 0, err
		}
		return Kind(n), 0, nil
	case 12:
		b, err := r.readByte()
		if err != nil {
			return 0, 0, err
		}
		kind := Kind(b & 0x0F)
		pop := uint8(b >> 4)
		return kind, pop, nil
	default:
		return KindStreet, 0, nil
	}
}

// validateChildRefs enforces invariant (i): every edge's child index is in
// range for the node slice it was decoded into.
func validateChildRefs(nodes []Node) error {
	for i := range nodes {
		for _, e := range nodes[i].Edges {
			if int(e.Child) >= len(nodes) {
				return badFormatf(0, "node %d: edge %q references out-of-range child %d (nodeCount %d)", i, e.Label, e.Child, len(nodes))
			}
		}
	}
	return nil
}
