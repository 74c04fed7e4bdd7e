package shard

// nibbleReader packs two 4-bit values per byte, low nibble first, reading
// lazily one byte at a time. It implements the version-11 kind encoding:
// "4 bits per value, packed two values per byte in encounter order", which
// requires no special-casing at node boundaries — a byte is consumed every
// two calls to next regardless of which node each value belongs to, and a
// final unpaired value simply reads a fresh byte whose high nibble is never
// touched.
type nibbleReader struct {
	r        *reader
	have     bool
	current  byte
	lowTaken bool
}

func newNibbleReader(r *reader) *nibbleReader {
	return &nibbleReader{r: r}
}

func (n *nibbleReader) next() (byte, error) {
	if !n.have {
		b, err := n.r.readByte()
		if err != nil {
			return 0, err
		}
		n.current = b
		n.have = true
		n.lowTaken = false
	}
	if !n.lowTaken {
		n.lowTaken = true
		return n.current & 0x0F, nil
	}
	n.have = false
	return (n.current >> 4) & 0x0F, nil
}

// decodeLOUDS reconstructs node edge lists from a LOUDS bitvector and the
// flat edge-label table. Bits are read LSB-first within each byte. A 1 bit
// appends an edge to the current node and advances the edge cursor; a 0 bit
// advances the node cursor. Reconstruction stops once the node cursor
// reaches nodeCount, tolerating either a terminating bit per node or its
// omission on the final node.
func decodeLOUDS(nodes []Node, bitmap []byte, bitCount uint32, edgeLabels []string) error {
	nodeCount := uint32(len(nodes))
	var nodeCursor, edgeCursor uint32
	for b := uint32(0); b < bitCount && nodeCursor < nodeCount; b++ {
		byteIdx := b / 8
		if int(byteIdx) >= len(bitmap) {
			return badFormatf(0, "LOUDS bitmap too short for bit count %d", bitCount)
		}
		bit := (bitmap[byteIdx] >> (b % 8)) & 1
		if bit == 1 {
			if int(edgeCursor) >= len(edgeLabels) {
				return badFormatf(0, "LOUDS bitvector references edge %d beyond edge table of size %d", edgeCursor, len(edgeLabels))
			}
			nodes[nodeCursor].Edges = append(nodes[nodeCursor].Edges, Edge{
				Label: edgeLabels[edgeCursor],
				Child: edgeCursor + 1,
			})
			edgeCursor++
		} else {
			nodeCursor++
		}
	}
	if int(edgeCursor) != len(edgeLabels) {
		return badFormatf(0, "LOUDS bitvector produced %d edges, want %d", edgeCursor, len(edgeLabels))
	}
	return nil
}
