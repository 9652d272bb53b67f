package graph

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Direction selects which adjacency index a query follows.
type Direction int

const (
	// Out follows edges from source to target (dependents).
	Out Direction = iota
	// In follows edges from target back to source (dependencies).
	In
)

// String returns "in" or "out".
func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

// Edge is a directed relationship between two vertices.
// Two edges with the same Source, Target and Label are the same edge.
// Edges between the same pair that differ only by Label are distinct.
type Edge[V comparable] struct {
	Source V
	Target V
	Label  Label
}

// Reversed returns the edge with Source and Target swapped and the same label.
func (e Edge[V]) Reversed() Edge[V] {
	return Edge[V]{Source: e.Target, Target: e.Source, Label: e.Label}
}

// String renders the edge as "source => target".
func (e Edge[V]) String() string {
	return sprint(e.Source) + " => " + sprint(e.Target)
}

// Graph is a mutable directed graph over caller-owned vertex identities.
//
// Edges are held in two indices kept in lockstep: incoming[target][source] and
// outgoing[source][target]. Every vertex has an entry in both indices, even when
// it has no edges. Neighbour and edge order inside each index is insertion
// order, so every traversal is deterministic for a fixed insertion history.
//
// The zero value is not usable - use New. Graph is not safe for concurrent use;
// callers must not mutate while a traversal or query is in progress.
type Graph[V comparable] struct {
	incoming map[V]*adjacency[V]
	outgoing map[V]*adjacency[V]
	order    []V

	upstream   map[V][]V
	downstream map[V][]V

	logger *log.Logger
}

// Option configures a Graph.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger sets the logger used for warnings such as events raised by
// vertices that are not in the graph. The default logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an empty graph.
func New[V comparable](opts ...Option) *Graph[V] {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Graph[V]{
		incoming:   make(map[V]*adjacency[V]),
		outgoing:   make(map[V]*adjacency[V]),
		upstream:   make(map[V][]V),
		downstream: make(map[V][]V),
		logger:     o.logger,
	}
}

// Logger returns the graph's logger.
func (g *Graph[V]) Logger() *log.Logger { return g.logger }

// invalidate drops every cached reachability result.
func (g *Graph[V]) invalidate() {
	clear(g.upstream)
	clear(g.downstream)
}

// Clear removes every vertex and edge.
func (g *Graph[V]) Clear() {
	g.invalidate()
	clear(g.incoming)
	clear(g.outgoing)
	g.order = nil
}

// AddVertex adds v if it is not already present. It is idempotent.
func (g *Graph[V]) AddVertex(v V) {
	g.invalidate()
	if _, ok := g.incoming[v]; ok {
		return
	}
	g.incoming[v] = newAdjacency[V]()
	g.outgoing[v] = newAdjacency[V]()
	g.order = append(g.order, v)
}

// RemoveVertex removes v and every edge incident to it in either direction.
// Removing an absent vertex is a no-op.
func (g *Graph[V]) RemoveVertex(v V) {
	if !g.HasVertex(v) {
		return
	}
	g.invalidate()
	for _, e := range g.incoming[v].all() {
		g.RemoveEdge(e)
	}
	for _, e := range g.outgoing[v].all() {
		g.RemoveEdge(e)
	}
	delete(g.incoming, v)
	delete(g.outgoing, v)
	if i := slices.Index(g.order, v); i >= 0 {
		g.order = slices.Delete(g.order, i, i+1)
	}
}

// AddEdge inserts e, adding its endpoints first. Adding an edge equal to one
// already present is a no-op.
func (g *Graph[V]) AddEdge(e Edge[V]) {
	g.AddVertex(e.Source)
	g.AddVertex(e.Target)
	g.outgoing[e.Source].add(e.Target, e)
	g.incoming[e.Target].add(e.Source, e)
}

// AddRelationship is shorthand for AddEdge(Edge{source, target, label}).
func (g *Graph[V]) AddRelationship(source, target V, label Label) {
	g.AddEdge(Edge[V]{Source: source, Target: target, Label: label})
}

// RemoveEdge removes e from both indices. When the last edge between two
// vertices goes, the now-empty bucket goes with it; the vertices stay.
// Removing an absent edge is a no-op.
func (g *Graph[V]) RemoveEdge(e Edge[V]) {
	out, ok := g.outgoing[e.Source]
	if !ok || !out.has(e.Target, e) {
		return
	}
	g.invalidate()
	out.remove(e.Target, e)
	g.incoming[e.Target].remove(e.Source, e)
}

// HasVertex reports whether v is in the graph.
func (g *Graph[V]) HasVertex(v V) bool {
	_, ok := g.incoming[v]
	return ok
}

// HasEdge reports whether at least one edge runs from source to target.
func (g *Graph[V]) HasEdge(source, target V) bool {
	out, ok := g.outgoing[source]
	if !ok || !g.HasVertex(target) {
		return false
	}
	return len(out.edges[target]) > 0
}

// Edge returns the first edge inserted from source to target. Use
// AdjacentEdges when every parallel edge is needed.
func (g *Graph[V]) Edge(source, target V) (Edge[V], bool) {
	if !g.HasEdge(source, target) {
		return Edge[V]{}, false
	}
	return g.outgoing[source].edges[target][0], true
}

// EdgeLabel returns the label of Edge(source, target).
func (g *Graph[V]) EdgeLabel(source, target V) (Label, bool) {
	e, ok := g.Edge(source, target)
	return e.Label, ok
}

func (g *Graph[V]) index(v V, dir Direction) *adjacency[V] {
	if dir == In {
		return g.incoming[v]
	}
	return g.outgoing[v]
}

// AdjacentEdges returns every edge incident to v in the given direction.
// It returns nil for an absent vertex.
func (g *Graph[V]) AdjacentEdges(v V, dir Direction) []Edge[V] {
	if a := g.index(v, dir); a != nil {
		return a.all()
	}
	return nil
}

// Adjacent returns the distinct neighbours of v in the given direction, in
// the order they were first connected.
func (g *Graph[V]) Adjacent(v V, dir Direction) []V {
	if a := g.index(v, dir); a != nil {
		return slices.Clone(a.peers)
	}
	return nil
}

// Vertices returns a snapshot of all vertices in insertion order.
func (g *Graph[V]) Vertices() []V { return slices.Clone(g.order) }

// Size returns the number of vertices.
func (g *Graph[V]) Size() int { return len(g.order) }

// Edges returns a snapshot of all edges, grouped by target in vertex order.
func (g *Graph[V]) Edges() []Edge[V] {
	var edges []Edge[V]
	g.EachEdge(func(e Edge[V]) { edges = append(edges, e) })
	return edges
}

// EachEdge calls fn for every edge. fn must not mutate the graph.
func (g *Graph[V]) EachEdge(fn func(Edge[V])) {
	for _, v := range g.order {
		for _, e := range g.incoming[v].all() {
			fn(e)
		}
	}
}

// Reversed returns a new graph with the same vertex set and every edge
// flipped, labels unchanged. The receiver is not modified.
func (g *Graph[V]) Reversed() *Graph[V] {
	r := New[V](WithLogger(g.logger))
	for _, v := range g.order {
		r.AddVertex(v)
	}
	g.EachEdge(func(e Edge[V]) { r.AddEdge(e.Reversed()) })
	return r
}
