package graph

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func edge(s, t string) Edge[string] { return Edge[string]{Source: s, Target: t} }

// checkSymmetry verifies that both indices hold exactly the same edges and
// that no empty bucket is left behind.
func checkSymmetry[V comparable](t *testing.T, g *Graph[V]) {
	t.Helper()
	if len(g.incoming) != len(g.outgoing) || len(g.incoming) != len(g.order) {
		t.Fatalf("index sizes differ: in=%d out=%d order=%d", len(g.incoming), len(g.outgoing), len(g.order))
	}
	for _, v := range g.order {
		out, okOut := g.outgoing[v]
		in, okIn := g.incoming[v]
		if !okOut || !okIn {
			t.Fatalf("vertex %v missing from an index", v)
		}
		for target, bucket := range out.edges {
			if len(bucket) == 0 {
				t.Errorf("empty outgoing bucket %v -> %v", v, target)
			}
			for _, e := range bucket {
				if !g.incoming[target].has(v, e) {
					t.Errorf("edge %v in outgoing but not incoming", e)
				}
			}
		}
		for source, bucket := range in.edges {
			if len(bucket) == 0 {
				t.Errorf("empty incoming bucket %v <- %v", v, source)
			}
			for _, e := range bucket {
				if !g.outgoing[source].has(v, e) {
					t.Errorf("edge %v in incoming but not outgoing", e)
				}
			}
		}
		if len(out.peers) != len(out.edges) || len(in.peers) != len(in.edges) {
			t.Errorf("peer list out of sync for %v", v)
		}
	}
}

func TestAddVertex_Idempotent(t *testing.T) {
	g := New[string]()
	g.AddVertex("a")
	g.AddVertex("a")

	if g.Size() != 1 {
		t.Errorf("Size() = %d, want 1", g.Size())
	}
	if !g.HasVertex("a") {
		t.Error("HasVertex(a) = false, want true")
	}
	checkSymmetry(t, g)
}

func TestVertices_InsertionOrder(t *testing.T) {
	g := New[string]()
	for _, v := range []string{"c", "a", "b"} {
		g.AddVertex(v)
	}
	g.AddEdge(edge("d", "a"))

	want := []string{"c", "a", "b", "d"}
	if got := g.Vertices(); !slices.Equal(got, want) {
		t.Errorf("Vertices() = %v, want %v", got, want)
	}
}

func TestAddEdge_AddsEndpoints(t *testing.T) {
	g := New[string]()
	g.AddEdge(edge("a", "b"))

	if !g.HasVertex("a") || !g.HasVertex("b") {
		t.Error("AddEdge() should add both endpoints")
	}
	if !g.HasEdge("a", "b") {
		t.Error("HasEdge(a, b) = false, want true")
	}
	if g.HasEdge("b", "a") {
		t.Error("HasEdge(b, a) = true, want false")
	}
	checkSymmetry(t, g)
}

func TestAddEdge_Dedup(t *testing.T) {
	g := New[string]()
	g.AddEdge(edge("a", "b"))
	g.AddEdge(edge("a", "b"))

	if n := len(g.Edges()); n != 1 {
		t.Errorf("len(Edges()) = %d, want 1", n)
	}

	refresh := Edge[string]{Source: "a", Target: "b", Label: NewLabel("refresh", AllEvents)}
	g.AddEdge(refresh)
	g.AddEdge(refresh)

	if n := len(g.Edges()); n != 2 {
		t.Errorf("len(Edges()) = %d, want 2 (labels differ)", n)
	}
	if n := len(g.AdjacentEdges("a", Out)); n != 2 {
		t.Errorf("len(AdjacentEdges(a, Out)) = %d, want 2", n)
	}
	if got := g.Adjacent("a", Out); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Adjacent(a, Out) = %v, want [b]", got)
	}
	checkSymmetry(t, g)
}

func TestEdge_FirstInserted(t *testing.T) {
	g := New[string]()
	first := Edge[string]{Source: "a", Target: "b", Label: Label{Event: "x"}}
	g.AddEdge(first)
	g.AddEdge(Edge[string]{Source: "a", Target: "b", Label: Label{Event: "y"}})

	got, ok := g.Edge("a", "b")
	if !ok || got != first {
		t.Errorf("Edge(a, b) = %v, %v, want %v, true", got, ok, first)
	}
	if l, ok := g.EdgeLabel("a", "b"); !ok || l.Event != "x" {
		t.Errorf("EdgeLabel(a, b) = %v, %v, want x", l, ok)
	}
	if _, ok := g.Edge("b", "a"); ok {
		t.Error("Edge(b, a) should not exist")
	}
	if _, ok := g.Edge("a", "zzz"); ok {
		t.Error("Edge(a, zzz) should not exist")
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New[string]()
	x := Edge[string]{Source: "a", Target: "b", Label: Label{Event: "x"}}
	y := Edge[string]{Source: "a", Target: "b", Label: Label{Event: "y"}}
	g.AddEdge(x)
	g.AddEdge(y)

	g.RemoveEdge(x)
	if !g.HasEdge("a", "b") {
		t.Error("HasEdge(a, b) = false after removing one of two edges")
	}
	checkSymmetry(t, g)

	g.RemoveEdge(y)
	if g.HasEdge("a", "b") {
		t.Error("HasEdge(a, b) = true after removing both edges")
	}
	if !g.HasVertex("a") || !g.HasVertex("b") {
		t.Error("RemoveEdge() must not remove vertices")
	}
	if len(g.outgoing["a"].edges) != 0 || len(g.incoming["b"].edges) != 0 {
		t.Error("RemoveEdge() left an empty bucket behind")
	}
	checkSymmetry(t, g)
}

func TestRemove_Idempotent(t *testing.T) {
	g := New[string]()
	g.AddEdge(edge("a", "b"))

	g.RemoveEdge(edge("b", "a"))
	g.RemoveEdge(edge("x", "y"))
	g.RemoveEdge(Edge[string]{Source: "a", Target: "b", Label: Label{Event: "other"}})
	g.RemoveVertex("zzz")

	if !g.HasEdge("a", "b") || g.Size() != 2 {
		t.Error("removing absent items should not change the graph")
	}

	g.RemoveVertex("a")
	g.RemoveVertex("a")
	if g.HasVertex("a") {
		t.Error("HasVertex(a) = true after RemoveVertex")
	}
	checkSymmetry(t, g)
}

func TestRemoveVertex_Cascades(t *testing.T) {
	g := New[string]()
	g.AddEdge(edge("a", "b"))
	g.AddEdge(edge("b", "c"))
	g.AddEdge(edge("c", "b"))
	g.AddEdge(edge("b", "b"))
	g.AddEdge(edge("a", "c"))

	g.RemoveVertex("b")

	for _, e := range g.Edges() {
		if e.Source == "b" || e.Target == "b" {
			t.Errorf("edge %v still references removed vertex", e)
		}
	}
	if got := g.Edges(); len(got) != 1 || got[0] != edge("a", "c") {
		t.Errorf("Edges() = %v, want [a => c]", got)
	}
	if slices.Contains(g.Adjacent("a", Out), "b") || slices.Contains(g.Adjacent("c", In), "b") {
		t.Error("dangling adjacency entry for removed vertex")
	}
	if slices.Contains(g.Vertices(), "b") {
		t.Error("Vertices() still lists removed vertex")
	}
	checkSymmetry(t, g)
}

func TestIndexSymmetry_MutationSequence(t *testing.T) {
	g := New[int]()
	// deterministic pseudo-random mutation sequence
	seed := uint32(7)
	next := func(n int) int {
		seed = seed*1664525 + 1013904223
		return int(seed>>16) % n
	}
	for i := 0; i < 500; i++ {
		a, b := next(12), next(12)
		e := Edge[int]{Source: a, Target: b, Label: Label{Event: []string{"", "x"}[next(2)]}}
		switch next(4) {
		case 0:
			g.AddVertex(a)
		case 1:
			g.RemoveVertex(a)
		case 2:
			g.AddEdge(e)
		default:
			g.RemoveEdge(e)
		}
		checkSymmetry(t, g)
		if t.Failed() {
			t.Fatalf("index asymmetry after step %d", i)
		}
	}
}

func TestAdjacent_AbsentVertex(t *testing.T) {
	g := New[string]()
	if got := g.Adjacent("a", In); got != nil {
		t.Errorf("Adjacent() = %v, want nil", got)
	}
	if got := g.AdjacentEdges("a", Out); got != nil {
		t.Errorf("AdjacentEdges() = %v, want nil", got)
	}
}

func TestReversed(t *testing.T) {
	g := New[string]()
	g.AddVertex("lonely")
	label := NewLabel("refresh", "changed")
	g.AddRelationship("a", "b", label)
	g.AddEdge(edge("b", "c"))

	r := g.Reversed()

	if !r.HasEdge("b", "a") || !r.HasEdge("c", "b") || r.HasEdge("a", "b") {
		t.Errorf("Reversed() edges = %v", r.Edges())
	}
	if l, _ := r.EdgeLabel("b", "a"); l != label {
		t.Errorf("Reversed() label = %v, want %v", l, label)
	}
	if !r.HasVertex("lonely") {
		t.Error("Reversed() should keep isolated vertices")
	}
	if !g.HasEdge("a", "b") {
		t.Error("Reversed() must not modify the receiver")
	}
}

func TestReversed_Involution(t *testing.T) {
	g := New[string]()
	g.AddVertex("z")
	g.AddEdge(edge("a", "b"))
	g.AddRelationship("a", "b", Label{Event: AllEvents, Callback: "refresh"})
	g.AddEdge(edge("b", "c"))
	g.AddEdge(edge("c", "a"))

	rr := g.Reversed().Reversed()

	sortedVertices := func(g *Graph[string]) []string { return slices.Sorted(slices.Values(g.Vertices())) }
	if !slices.Equal(sortedVertices(g), sortedVertices(rr)) {
		t.Errorf("vertices differ: %v vs %v", g.Vertices(), rr.Vertices())
	}
	key := func(e Edge[string]) string { return e.String() + "|" + e.Label.String() }
	edgeKeys := func(g *Graph[string]) []string {
		var keys []string
		for _, e := range g.Edges() {
			keys = append(keys, key(e))
		}
		slices.Sort(keys)
		return keys
	}
	if !slices.Equal(edgeKeys(g), edgeKeys(rr)) {
		t.Errorf("edges differ: %v vs %v", edgeKeys(g), edgeKeys(rr))
	}
}

func TestClear(t *testing.T) {
	g := New[string]()
	g.AddEdge(edge("a", "b"))
	_ = g.Dependents("a")

	g.Clear()

	if g.Size() != 0 || len(g.Edges()) != 0 {
		t.Error("Clear() should remove everything")
	}
	if got := g.Dependents("a"); got != nil {
		t.Errorf("Dependents() after Clear() = %v, want nil", got)
	}
}

func TestEdgeString(t *testing.T) {
	if got := edge("A", "B").String(); got != "A => B" {
		t.Errorf("String() = %q, want %q", got, "A => B")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	g := New[string](WithLogger(log.New(&buf)))
	g.MatchingEdges("refresh", "ghost")

	if !strings.Contains(buf.String(), "ghost") {
		t.Errorf("expected warning mentioning the vertex, got %q", buf.String())
	}
}
