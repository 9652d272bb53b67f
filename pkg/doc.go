// Package pkg provides the libraries behind relgraph, a scheduler for
// catalogs of related resources.
//
// # Overview
//
// A catalog declares resources, which container resources hold which
// members, and relationships between resources, optionally carrying an
// event subscription. relgraph turns that into an execution order in which
// every resource follows everything it depends on, and reports dependency
// cycles with the exact relationships involved.
//
// # Architecture
//
// The typical data flow:
//
//	Catalog JSON
//	     ↓
//	[catalog] package (parse, validate, build graphs)
//	     ↓
//	[graph] package (splice containers, topological sort)
//	     ↓
//	[pipeline] package (orchestration, caching, hooks)
//	     ↓
//	[render/nodelink] package (DOT, SVG, PNG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/relgraph/pkg/catalog"
//	    "github.com/matzehuels/relgraph/pkg/graph"
//	)
//
//	c, _ := catalog.Import("site.json")
//	g := c.RelationshipGraph()
//	isContainer := catalog.IsContainer(catalog.DefaultContainerTypes...)
//	if err := g.Splice(c.ContainmentGraph(), isContainer, catalog.Placeholder); err != nil {
//	    // the containment is cyclic
//	}
//	order, err := g.TopSort() // *graph.CycleError on cycles
//
// # Main Packages
//
// [graph] - Generic directed graph with labelled edges, reachability,
// container splicing, Kahn topological sort with cycle reports, and event
// matching. The graph executes nothing.
//
// [catalog] - Resource references ("Type[title]"), the catalog document,
// and the predicates that tie catalogs to [graph.Graph.Splice].
//
// [pipeline] - Load, splice, schedule and render as one run, with cached
// schedules and artifacts and observability hooks.
//
// [render/nodelink] - Graphviz export of relationship graphs.
//
// ## Infrastructure
//
// [cache] - File, Redis and no-op caches with versioned key derivation.
//
// [config] - TOML configuration with XDG defaults.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hook interfaces for metrics and tracing.
//
// [buildinfo] - Version information set at build time.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/relgraph/pkg/graph
// [catalog]: https://pkg.go.dev/github.com/matzehuels/relgraph/pkg/catalog
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/relgraph/pkg/pipeline
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/relgraph/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/matzehuels/relgraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/relgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/relgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/relgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/relgraph/pkg/buildinfo
// [graph.Graph.Splice]: https://pkg.go.dev/github.com/matzehuels/relgraph/pkg/graph#Graph.Splice
package pkg
