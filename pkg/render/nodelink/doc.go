// Package nodelink renders relationship graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT format, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Or keep the DOT source on disk for external tools:
//
//	path, err := nodelink.WriteDOT(graphdir, "expanded_relationships", dot)
//
// # Options
//
//   - Name: digraph identifier
//   - Detailed: degree counts on vertices, event:callback on edges
//   - Dashed: predicate for vertices drawn dashed (splice placeholders)
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// vertices, listed in the graph's insertion order.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and PNG
// rendering; no external Graphviz installation is needed.
package nodelink
