package graph

import (
	"slices"
	"testing"
)

func TestLabelMatch(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		event string
		want  bool
	}{
		{"exact", Label{Event: "changed"}, "changed", true},
		{"different", Label{Event: "changed"}, "restarted", false},
		{"wildcard", Label{Event: AllEvents}, "anything", true},
		{"no event", Label{}, "changed", false},
		{"callback only", Label{Callback: "refresh"}, "changed", false},
		{"explicit none", Label{Event: NoEvents}, "changed", false},
		{"event named none", Label{Event: AllEvents}, NoEvents, false},
		{"one of many", NewLabel("refresh", "b", "a"), "b", true},
		{"none of many", NewLabel("refresh", "b", "a"), "c", false},
		{"none beside wildcard", NewLabel("refresh", NoEvents, AllEvents), "changed", false},
		{"none beside name", NewLabel("refresh", NoEvents, "a"), "a", false},
		{"none after name", NewLabel("refresh", "zz", NoEvents), "zz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.label.Match(tt.event); got != tt.want {
				t.Errorf("%v.Match(%q) = %v, want %v", tt.label, tt.event, got, tt.want)
			}
		})
	}
}

func TestNewLabel_Canonical(t *testing.T) {
	a := NewLabel("refresh", "b", "a", "b", "")
	b := NewLabel("refresh", "a", "b")

	if a != b {
		t.Errorf("NewLabel() = %v and %v, want equal", a, b)
	}
	if got := a.Events(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Events() = %v, want [a b]", got)
	}
	if NewLabel("").Events() != nil || !NewLabel("").IsZero() {
		t.Error("empty NewLabel() should be the zero label")
	}
}

func TestLabelString(t *testing.T) {
	tests := []struct {
		label Label
		want  string
	}{
		{Label{}, ""},
		{Label{Event: "x"}, "x"},
		{Label{Callback: "refresh"}, "refresh"},
		{Label{Event: AllEvents, Callback: "refresh"}, "ALL_EVENTS:refresh"},
	}
	for _, tt := range tests {
		if got := tt.label.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMatchingEdges(t *testing.T) {
	g := New[string]()
	refresh := Edge[string]{Source: "file", Target: "service", Label: NewLabel("refresh", AllEvents)}
	onChange := Edge[string]{Source: "file", Target: "exec", Label: Label{Event: "changed", Callback: "run"}}
	plain := edge("file", "other")
	upstream := Edge[string]{Source: "pkg", Target: "file", Label: Label{Event: AllEvents}}
	for _, e := range []Edge[string]{refresh, onChange, plain, upstream} {
		g.AddEdge(e)
	}

	if got := g.MatchingEdges("changed", "file"); !slices.Equal(got, []Edge[string]{refresh, onChange}) {
		t.Errorf("MatchingEdges(changed) = %v", got)
	}
	if got := g.MatchingEdges("restarted", "file"); !slices.Equal(got, []Edge[string]{refresh}) {
		t.Errorf("MatchingEdges(restarted) = %v", got)
	}
	if got := g.MatchingEdges("changed", "service"); len(got) != 0 {
		t.Errorf("MatchingEdges() on a sink = %v, want empty", got)
	}
}

func TestMatchingEdges_AbsentVertex(t *testing.T) {
	g := New[string]()
	g.AddEdge(Edge[string]{Source: "a", Target: "b", Label: Label{Event: AllEvents}})

	if got := g.MatchingEdges("refresh", "unknown"); len(got) != 0 {
		t.Errorf("MatchingEdges() = %v, want empty", got)
	}
	if g.HasVertex("unknown") {
		t.Error("MatchingEdges() must not add the vertex")
	}
}
