// Package match implements the prefix-consuming DFS over a decoded trie,
// with its best-partial-match fallback and kind/city filters.
package match

import (
	"strings"

	"github.com/osmtrie/streettrie/internal/normalize"
	"github.com/osmtrie/streettrie/internal/shard"
)

// DefaultMaxResults is the matcher's default result cap.
const DefaultMaxResults = 80

// Match is one surfaced candidate: its original-cased display string and
// resolved Location.
type Match struct {
	Display  string
	Location shard.Location
}

// Options configures a single traversal.
type Options struct {
	// Prefix is the already-normalized street-name query.
	Prefix string
	// CityFilter, if non-empty, is the already-normalized city substring
	// filter.
	CityFilter string
	// AllowedKinds, if non-nil, restricts results to these kinds.
	AllowedKinds map[shard.Kind]bool
	// MaxResults caps the number of results collected. Zero means
	// DefaultMaxResults.
	MaxResults int
}

// frame is one explicit-stack DFS frame. An explicit stack is used instead
// of native recursion so a pathological trie cannot exhaust the goroutine
// stack.
type frame struct {
	node      uint32
	built     string
	remaining string
	consumed  int
}

// Run performs the prefix-consuming DFS from the trie root, with the
// best-partial fallback, and returns up to opts.MaxResults matches in
// pre-order / file-order. s is the shard the trie belongs to, used to
// resolve Indirect values and place-table strings.
func Run(s *shard.Shard, opts Options) ([]Match, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	c := &collector{
		shard:        s,
		opts:         opts,
		maxResults:   maxResults,
		allowedKinds: opts.AllowedKinds,
		cityFilter:   opts.CityFilter,
	}

	var bestNode uint32
	var bestBuilt string
	bestConsumed := 0

	stack := []frame{{node: s.Trie.Root(), built: "", remaining: opts.Prefix, consumed: 0}}
	for len(stack) > 0 {
		if len(c.results) >= maxResults {
			break
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.consumed > bestConsumed {
			bestConsumed = f.consumed
			bestNode = f.node
			bestBuilt = f.built
		}

		if f.remaining == "" {
			if err := c.collect(f.node, f.built); err != nil {
				return nil, err
			}
			continue
		}

		node := s.Trie.Node(f.node)
		// Push in reverse file order so the stack pops edges in file order,
		// keeping output deterministic.
		for i := len(node.Edges) - 1; i >= 0; i-- {
			e := node.Edges[i]
			label := normalize.String(e.Label)
			built := f.built + e.Label
			switch {
			case label == "":
				stack = append(stack, frame{node: e.Child, built: built, remaining: f.remaining, consumed: f.consumed})
			case strings.HasPrefix(f.remaining, label):
				stack = append(stack, frame{
					node:      e.Child,
					built:     built,
					remaining: f.remaining[len(label):],
					consumed:  f.consumed + len(label),
				})
			case strings.HasPrefix(label, f.remaining):
				stack = append(stack, frame{
					node:      e.Child,
					built:     built,
					remaining: "",
					consumed:  f.consumed + len(f.remaining),
				})
			}
		}
	}

	if len(c.results) == 0 && bestConsumed > 0 {
		if err := c.collect(bestNode, bestBuilt); err != nil {
			return nil, err
		}
	}

	return c.results, nil
}

// collector accumulates Matches in pre-order, applying kind/city filters,
// and stops once the cap is reached.
type collector struct {
	shard        *shard.Shard
	opts         Options
	maxResults   int
	allowedKinds map[shard.Kind]bool
	cityFilter   string
	results      []Match
}

// collectFrame is an explicit-stack frame for the pre-order value/descendant
// walk performed by collect.
type collectFrame struct {
	node  uint32
	built string
}

// collect pre-order-enumerates values and descendants rooted at node,
// appending each value (subject to filters) to c.results until the cap is
// reached.
func (c *collector) collect(node uint32, built string) error {
	stack := []collectFrame{{node: node, built: built}}
	for len(stack) > 0 {
		if len(c.results) >= c.maxResults {
			return nil
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := c.shard.Trie.Node(f.node)
		for _, val := range n.Values {
			if len(c.results) >= c.maxResults {
				return nil
			}
			loc, err := val.Resolve(c.shard.Locations)
			if err != nil {
				return err
			}
			if !c.passesFilters(loc) {
				continue
			}
			c.results = append(c.results, Match{Display: f.built, Location: loc})
		}

		for i := len(n.Edges) - 1; i >= 0; i-- {
			e := n.Edges[i]
			stack = append(stack, collectFrame{node: e.Child, built: f.built + e.Label})
		}
	}
	return nil
}

func (c *collector) passesFilters(loc shard.Location) bool {
	if c.allowedKinds != nil && !c.allowedKinds[loc.Kind] {
		return false
	}
	if c.cityFilter != "" {
		node := normalize.String(c.shard.PlaceNode(loc.PlaceNodeIdx))
		city := normalize.String(c.shard.PlaceCity(loc.PlaceCityIdx))
		if !strings.Contains(node, c.cityFilter) && !strings.Contains(city, c.cityFilter) {
			return false
		}
	}
	return true
}
