package query

import (
	"fmt"

	"github.com/maypok86/otter"
)

// maxNeighborCacheWeight bounds the callgraph/impact neighbor cache by
// approximate byte cost rather than entry count, the same accounting the
// teacher's file cache uses.
const maxNeighborCacheWeight = 8 * 1024 * 1024

var neighborCache = mustNeighborCache()

func mustNeighborCache() otter.Cache[string, []string] {
	c, err := otter.MustBuilder[string, []string](maxNeighborCacheWeight).
		Cost(func(key string, value []string) uint32 {
			cost := len(key)
			for _, v := range value {
				cost += len(v)
			}
			return uint32(cost)
		}).
		Build()
	if err != nil {
		panic(fmt.Sprintf("query: building neighbor cache: %v", err))
	}
	return c
}

// InvalidateGraphCache drops every cached callgraph/impact result. Callers
// that mutate refs (a full index run, a single-file reindex) must call
// this before the next Callgraph/Impact query, since the in-memory graph
// those build from is otherwise read straight out of this cache.
func InvalidateGraphCache() {
	neighborCache.Clear()
}

func neighborCacheKey(kind, symbol string, depth int) string {
	return fmt.Sprintf("%s:%d:%s", kind, depth, symbol)
}
