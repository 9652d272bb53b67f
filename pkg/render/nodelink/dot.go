package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
)

// Format is an output format understood by [Render].
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported format %q (want dot, svg or png)", s)
}

// Options configures node-link diagram rendering.
type Options struct {
	// Name is the digraph identifier. Defaults to "G".
	Name string

	// Detailed adds degree counts to vertex labels and event/callback
	// subscriptions to edge labels. When false, only vertex names are shown.
	Detailed bool

	// Dashed marks vertices drawn with a dashed grey outline, typically the
	// placeholders left behind by splicing empty containers.
	Dashed func(name string) bool
}

// ToDOT converts a graph to Graphviz DOT format. Vertices are named with
// their String method when they have one. Vertices and edges appear in the
// graph's insertion order, so the output is stable across runs.
func ToDOT[V comparable](g *graph.Graph[V], opts Options) string {
	name := opts.Name
	if name == "" {
		name = "G"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", name)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		id := vertexName(v)
		label := id
		if opts.Detailed {
			label = fmt.Sprintf("%s\nin: %d, out: %d", id,
				len(g.Adjacent(v, graph.In)), len(g.Adjacent(v, graph.Out)))
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if opts.Dashed != nil && opts.Dashed(id) {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		src, tgt := vertexName(e.Source), vertexName(e.Target)
		if opts.Detailed && !e.Label.IsZero() {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", src, tgt, e.Label.String())
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", src, tgt)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexName(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// WriteDOT writes dot to <dir>/<name>.dot, creating dir if needed, and
// returns the file path.
func WriteDOT(dir, name, dot string) (string, error) {
	file := name + ".dot"
	if err := errors.ValidatePath(file); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create graph dir: %w", err)
	}
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(dot), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Render produces dot in the requested format. FormatDOT returns the source
// unchanged.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG:
		return RenderPNG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
