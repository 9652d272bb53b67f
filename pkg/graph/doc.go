// Package graph provides the relationship graph that orders configuration
// resources and routes change events between them.
//
// # Overview
//
// A [Graph] holds caller-owned vertex identities (any comparable type, usually
// a resource reference) and labelled [Edge] values. Two adjacency indices,
// incoming and outgoing, are kept in lockstep by every mutating call, and
// every mutation drops the cached reachability results.
//
// # Basic Usage
//
//	g := graph.New[string]()
//	g.AddRelationship("Package[nginx]", "File[/etc/nginx.conf]", graph.Label{})
//	g.AddRelationship("File[/etc/nginx.conf]", "Service[nginx]", graph.NewLabel("refresh", graph.AllEvents))
//
//	order, err := g.TopSort()
//	var cycle *graph.CycleError[string]
//	if errors.As(err, &cycle) {
//	    // report cycle.Cycles to the operator
//	}
//
// # Containers
//
// Grouping vertices such as classes or stages are flattened with
// [Graph.Splice] before scheduling: their relationships are redistributed to
// their members, using a second graph that declares containment.
//
// # Events
//
// [Graph.MatchingEdges] answers which outgoing edges of a vertex subscribe to
// a given event. A [Label] carries the event name(s) and the callback;
// [AllEvents] subscribes to everything.
//
// # Concurrency
//
// Graph has no internal locking. One graph belongs to one scheduling pass;
// callers must serialize mutation against traversal. Read-only calls that do
// not touch the reachability cache (Vertices, Edges, TopSort) may run in
// parallel when nothing mutates the graph.
package graph
