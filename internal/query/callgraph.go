package query

import (
	"github.com/dominikbraun/graph"

	"github.com/rlm-dev/rlm/internal/store"
)

// CallgraphResult is one symbol's direct neighbors in the call graph.
type CallgraphResult struct {
	Symbol  string
	Callers []string // idents of chunks that call Symbol
	Callees []string // idents Symbol's own chunk(s) call
}

// buildCallGraph loads every call-kind reference in the index into an
// in-memory directed graph, caller -> callee. One query replaces the
// per-symbol round trips a naive traversal would need.
func buildCallGraph(s *store.Store) (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())

	edges, err := s.CallEdges()
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		_ = g.AddVertex(e.Caller)
		_ = g.AddVertex(e.Callee)
		_ = g.AddEdge(e.Caller, e.Callee) // duplicate edges are expected and harmless
	}
	return g, nil
}

// Callgraph computes symbol's direct callers and callees from the
// in-memory call graph's predecessor and adjacency maps. Results are
// cached per symbol in neighborCache; InvalidateGraphCache must run after
// any reindex that could change refs.
func Callgraph(s *store.Store, symbol string) (CallgraphResult, error) {
	result := CallgraphResult{Symbol: symbol}

	callersKey := neighborCacheKey("callers", symbol, 0)
	calleesKey := neighborCacheKey("callees", symbol, 0)
	if callers, ok := neighborCache.Get(callersKey); ok {
		if callees, ok := neighborCache.Get(calleesKey); ok {
			result.Callers = callers
			result.Callees = callees
			return result, nil
		}
	}

	g, err := buildCallGraph(s)
	if err != nil {
		return result, err
	}

	preds, err := g.PredecessorMap()
	if err != nil {
		return result, err
	}
	for caller := range preds[symbol] {
		result.Callers = append(result.Callers, caller)
	}

	adj, err := g.AdjacencyMap()
	if err != nil {
		return result, err
	}
	for callee := range adj[symbol] {
		result.Callees = append(result.Callees, callee)
	}

	neighborCache.Set(callersKey, result.Callers)
	neighborCache.Set(calleesKey, result.Callees)
	return result, nil
}

// ImpactResult is the transitive closure of symbol's callers, depth-bounded.
type ImpactResult struct {
	Symbol  string
	Callers []string // every ident that can reach Symbol within the depth bound, nearest first
}

// DefaultImpactDepth is the fixed traversal bound for Impact, matching the
// "3 is typical" guidance — unbounded transitive closures over a lexical
// (not semantic) graph can blow up on common names.
const DefaultImpactDepth = 3

// Impact computes the transitive closure of symbol's callers up to depth
// hops, breadth-first over the call graph's predecessor map, nearest
// callers first, each ident visited once.
func Impact(s *store.Store, symbol string, depth int) (ImpactResult, error) {
	if depth <= 0 {
		depth = DefaultImpactDepth
	}
	result := ImpactResult{Symbol: symbol}

	key := neighborCacheKey("impact", symbol, depth)
	if cached, ok := neighborCache.Get(key); ok {
		result.Callers = cached
		return result, nil
	}

	g, err := buildCallGraph(s)
	if err != nil {
		return result, err
	}
	preds, err := g.PredecessorMap()
	if err != nil {
		return result, err
	}

	visited := map[string]bool{symbol: true}
	frontier := []string{symbol}

	for d := 0; d < depth && len(frontier) > 0; d++ {
		var next []string
		for _, sym := range frontier {
			for caller := range preds[sym] {
				if visited[caller] {
					continue
				}
				visited[caller] = true
				result.Callers = append(result.Callers, caller)
				next = append(next, caller)
			}
		}
		frontier = next
	}

	neighborCache.Set(key, result.Callers)
	return result, nil
}
