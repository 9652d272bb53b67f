package graph

// Splice replaces every container vertex in g with direct relationships to
// the container's members, rewriting g in place.
//
// Container structure comes from other, the declaration graph, where a
// container has an edge to each member. Containers are processed in the
// order of other's topological sort, restricted to vertices for which
// isContainer holds and which exist in g, so an outer container hands its
// relationships to an inner one before the inner one is itself spliced.
//
// For each container, every incoming edge X -> container becomes X -> child
// and every outgoing edge container -> Y becomes child -> Y, for each child,
// with the label preserved. Members declared in other but missing from g are
// skipped. When no member remains, placeholder(container) stands in as the
// single child so relationships anchored on an empty container survive.
// A member related to its own container ends up with a self-loop, which
// TopSort reports as a cycle. Only the container's own self-edges are
// dropped. The container is then removed.
//
// A cycle in other is returned as its *CycleError and g is left untouched.
func (g *Graph[V]) Splice(other *Graph[V], isContainer func(V) bool, placeholder func(V) V) error {
	order, err := other.TopSort()
	if err != nil {
		return err
	}

	var containers []V
	for _, v := range order {
		if isContainer(v) && g.HasVertex(v) {
			containers = append(containers, v)
		}
	}

	for _, container := range containers {
		var children []V
		for _, c := range other.Adjacent(container, Out) {
			if g.HasVertex(c) && c != container {
				children = append(children, c)
			}
		}
		if len(children) == 0 {
			children = []V{placeholder(container)}
		}

		for _, e := range g.AdjacentEdges(container, In) {
			for _, child := range children {
				if e.Source != container {
					g.AddEdge(Edge[V]{Source: e.Source, Target: child, Label: e.Label})
				}
			}
			g.RemoveEdge(e)
		}
		for _, e := range g.AdjacentEdges(container, Out) {
			for _, child := range children {
				if e.Target != container {
					g.AddEdge(Edge[V]{Source: child, Target: e.Target, Label: e.Label})
				}
			}
			g.RemoveEdge(e)
		}
		g.RemoveVertex(container)
	}
	return nil
}
