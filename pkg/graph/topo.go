package graph

import (
	"errors"
	"strings"
)

// ErrCycle is matched by errors.Is for every *CycleError.
var ErrCycle = errors.New("dependency cycle")

// CycleError reports that no valid execution order exists. Each group holds
// the surviving incoming edges of one vertex that never became ready, in
// vertex insertion order. It is always fatal: the relationships must change
// before scheduling can succeed.
type CycleError[V comparable] struct {
	Cycles [][]Edge[V]
}

// Error lists every group as "(A => B), (B => C)".
func (e *CycleError[V]) Error() string {
	groups := make([]string, len(e.Cycles))
	for i, cycle := range e.Cycles {
		parts := make([]string, len(cycle))
		for j, edge := range cycle {
			parts[j] = edge.String()
		}
		groups[i] = "(" + strings.Join(parts, ", ") + ")"
	}
	return "found dependency cycles in the following relationships: " + strings.Join(groups, ", ")
}

// Is makes errors.Is(err, ErrCycle) succeed.
func (e *CycleError[V]) Is(target error) bool { return target == ErrCycle }

// Edges flattens every group into one slice.
func (e *CycleError[V]) Edges() []Edge[V] {
	var all []Edge[V]
	for _, c := range e.Cycles {
		all = append(all, c...)
	}
	return all
}

// TopSort returns every vertex exactly once such that each edge's source
// precedes its target. The graph is not modified.
//
// In-degree counts distinct source vertices, so parallel edges count once.
// Ready vertices are kept on a LIFO stack seeded in vertex insertion order,
// which makes the result reproducible for a given insertion history.
// When some vertices never become ready the graph has a cycle and TopSort
// returns a *CycleError describing it.
func (g *Graph[V]) TopSort() ([]V, error) {
	degree := make(map[V]int, len(g.order))
	var zeros []V
	for _, v := range g.order {
		d := g.incoming[v].degree()
		degree[v] = d
		if d == 0 {
			zeros = append(zeros, v)
		}
	}

	result := make([]V, 0, len(g.order))
	for len(zeros) > 0 {
		v := zeros[len(zeros)-1]
		zeros = zeros[:len(zeros)-1]
		result = append(result, v)
		for _, t := range g.outgoing[v].peers {
			degree[t]--
			if degree[t] == 0 {
				zeros = append(zeros, t)
			}
		}
	}

	if len(result) < len(g.order) {
		return nil, g.cycles()
	}
	return result, nil
}

// cycles repeats the sweep keeping the surviving incoming edges per vertex
// instead of a count, and reports every vertex left with any.
func (g *Graph[V]) cycles() *CycleError[V] {
	remaining := make(map[V]map[V][]Edge[V], len(g.order))
	var zeros []V
	for _, v := range g.order {
		in := g.incoming[v]
		bySource := make(map[V][]Edge[V], in.degree())
		for _, s := range in.peers {
			bySource[s] = in.edges[s]
		}
		remaining[v] = bySource
		if len(bySource) == 0 {
			zeros = append(zeros, v)
		}
	}

	for len(zeros) > 0 {
		v := zeros[len(zeros)-1]
		zeros = zeros[:len(zeros)-1]
		for _, t := range g.outgoing[v].peers {
			delete(remaining[t], v)
			if len(remaining[t]) == 0 {
				zeros = append(zeros, t)
			}
		}
	}

	err := &CycleError[V]{}
	for _, v := range g.order {
		if len(remaining[v]) == 0 {
			continue
		}
		var group []Edge[V]
		for _, s := range g.incoming[v].peers {
			group = append(group, remaining[v][s]...)
		}
		err.Cycles = append(err.Cycles, group)
	}
	return err
}
