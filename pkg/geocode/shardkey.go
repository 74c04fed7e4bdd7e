package geocode

import (
	"strings"
)

// ShardKey derives the fixed-length shard key for a normalized query
// prefix: the first prefixLen normalized code units, each mapped to itself
// if it is [a-z0-9] or '_' otherwise, right-padded with '_' to exactly
// prefixLen. Returns ("", false) if the normalized query is empty.
func ShardKey(normalizedQuery string, prefixLen int) (string, bool) {
	if normalizedQuery == "" {
		return "", false
	}
	runes := []rune(normalizedQuery)
	var b strings.Builder
	b.Grow(prefixLen)
	for i := 0; i < prefixLen; i++ {
		if i < len(runes) && isShardChar(runes[i]) {
			b.WriteRune(runes[i])
		} else {
			b.WriteByte('_')
		}
	}
	return b.String(), true
}

func isShardChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// shardURL builds the fetch URL for a shard key: {shardRoot}/{shardBase}.shard_{key}{shardSuffix}.
func shardURL(root, base, key, suffix string) string {
	return strings.TrimSuffix(root, "/") + "/" + base + ".shard_" + key + suffix
}
