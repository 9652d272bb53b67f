package graph

import (
	"fmt"
	"slices"
)

// adjacency is one vertex's entry in an index: its neighbours in the order they
// were first connected, and the edge set shared with each neighbour.
// A neighbour is listed in peers iff it has a non-empty bucket in edges.
type adjacency[V comparable] struct {
	peers []V
	edges map[V][]Edge[V]
}

func newAdjacency[V comparable]() *adjacency[V] {
	return &adjacency[V]{edges: make(map[V][]Edge[V])}
}

func (a *adjacency[V]) has(peer V, e Edge[V]) bool {
	return slices.Contains(a.edges[peer], e)
}

// add inserts e into peer's bucket, reporting false if it was already there.
func (a *adjacency[V]) add(peer V, e Edge[V]) bool {
	bucket, ok := a.edges[peer]
	if slices.Contains(bucket, e) {
		return false
	}
	if !ok {
		a.peers = append(a.peers, peer)
	}
	a.edges[peer] = append(bucket, e)
	return true
}

// remove deletes e from peer's bucket and drops the bucket once empty.
func (a *adjacency[V]) remove(peer V, e Edge[V]) {
	bucket := slices.DeleteFunc(slices.Clone(a.edges[peer]), func(x Edge[V]) bool { return x == e })
	if len(bucket) > 0 {
		a.edges[peer] = bucket
		return
	}
	delete(a.edges, peer)
	if i := slices.Index(a.peers, peer); i >= 0 {
		a.peers = slices.Delete(a.peers, i, i+1)
	}
}

// all returns a copy of every edge in peer order.
func (a *adjacency[V]) all() []Edge[V] {
	var out []Edge[V]
	for _, p := range a.peers {
		out = append(out, a.edges[p]...)
	}
	return out
}

func (a *adjacency[V]) degree() int { return len(a.peers) }

func sprint(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
