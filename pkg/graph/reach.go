package graph

import "slices"

// Dependencies returns every vertex with a directed path ending at v (its
// ancestors). The result is empty for an absent vertex, never includes v
// unless v sits on a cycle, and is cached until the next mutation.
func (g *Graph[V]) Dependencies(v V) []V {
	return g.reach(v, In, g.upstream)
}

// Dependents returns every vertex with a directed path starting at v (its
// descendants). See Dependencies for caching and cycle behaviour.
func (g *Graph[V]) Dependents(v V) []V {
	return g.reach(v, Out, g.downstream)
}

func (g *Graph[V]) reach(v V, dir Direction, cache map[V][]V) []V {
	if !g.HasVertex(v) {
		return nil
	}
	if cached, ok := cache[v]; ok {
		return slices.Clone(cached)
	}
	var result []V
	seen := map[V]bool{}
	queue := slices.Clone(g.index(v, dir).peers)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if seen[n] {
			continue
		}
		seen[n] = true
		result = append(result, n)
		queue = append(queue, g.index(n, dir).peers...)
	}
	cache[v] = result
	return slices.Clone(result)
}

// Walk visits the graph breadth-first from source following dir, calling fn
// once for every (parent, child) adjacency discovered. Each vertex is
// expanded at most once, so Walk terminates on cyclic graphs.
func (g *Graph[V]) Walk(source V, dir Direction, fn func(parent, child V)) {
	if !g.HasVertex(source) {
		return
	}
	queue := []V{source}
	seen := map[V]bool{}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if seen[node] {
			continue
		}
		seen[node] = true
		next := g.index(node, dir).peers
		for _, child := range next {
			fn(node, child)
		}
		queue = append(queue, next...)
	}
}

// TreeFromVertex maps every vertex reachable from start to the parent it
// was last reached through during Walk.
func (g *Graph[V]) TreeFromVertex(start V, dir Direction) map[V]V {
	predecessor := map[V]V{}
	g.Walk(start, dir, func(parent, child V) {
		predecessor[child] = parent
	})
	return predecessor
}

// Leaves returns the vertices reachable from v that have no further
// neighbours in dir, in discovery order.
func (g *Graph[V]) Leaves(v V, dir Direction) []V {
	var leaves []V
	seen := map[V]bool{}
	g.Walk(v, dir, func(_, child V) {
		if seen[child] {
			return
		}
		seen[child] = true
		if g.index(child, dir).degree() == 0 {
			leaves = append(leaves, child)
		}
	})
	return leaves
}
