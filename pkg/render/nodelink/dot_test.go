package nodelink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
)

func sample() *graph.Graph[string] {
	g := graph.New[string]()
	g.AddRelationship("a", "b", graph.Label{})
	g.AddRelationship("b", "Whit[c]", graph.NewLabel("refresh", graph.AllEvents))
	return g
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{`digraph "G"`, `"a"`, `"b"`, `"a" -> "b";`, `"b" -> "Whit[c]";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "refresh") {
		t.Error("ToDOT() simple mode should not print edge labels")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sample(), Options{Name: "expanded_relationships", Detailed: true})

	if !strings.Contains(dot, `digraph "expanded_relationships"`) {
		t.Error("ToDOT() ignored Name")
	}
	if !strings.Contains(dot, `"b" -> "Whit[c]" [label="ALL_EVENTS:refresh"];`) {
		t.Errorf("ToDOT() detailed output missing edge label:\n%s", dot)
	}
	if !strings.Contains(dot, `in: 1, out: 1`) {
		t.Error("ToDOT() detailed output missing degree info")
	}
}

func TestToDOT_Dashed(t *testing.T) {
	dot := ToDOT(sample(), Options{Dashed: func(name string) bool {
		return strings.HasPrefix(name, "Whit[")
	}})

	var whit string
	for _, line := range strings.Split(dot, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), `"Whit[c]" [`) {
			whit = line
		}
	}
	if !strings.Contains(whit, "dashed") || !strings.Contains(whit, "lightgrey") {
		t.Errorf("placeholder line not dashed: %q", whit)
	}
	if strings.Count(dot, "dashed") != 1 {
		t.Error("only the placeholder should be dashed")
	}
}

func TestToDOT_Stable(t *testing.T) {
	if ToDOT(sample(), Options{Detailed: true}) != ToDOT(sample(), Options{Detailed: true}) {
		t.Error("ToDOT() output differs between identical graphs")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"dot", "SVG", "png"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", s, err)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ParseFormat(pdf) = %v, want UNSUPPORTED", err)
	}
}

func TestWriteDOT(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "graphs")
	path, err := WriteDOT(dir, "relationships", "digraph G {}\n")
	if err != nil {
		t.Fatalf("WriteDOT() error: %v", err)
	}
	if path != filepath.Join(dir, "relationships.dot") {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "digraph G {}\n" {
		t.Errorf("content = %q", data)
	}

	if _, err := WriteDOT(dir, "../escape", "x"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("WriteDOT(../escape) = %v, want INVALID_PATH", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	dot := ToDOT(sample(), Options{Detailed: true})

	svg, err := Render(ctx, dot, FormatSVG)
	if err != nil {
		t.Fatalf("Render(svg) error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("Render(svg) output missing <svg> tag")
	}

	raw, err := Render(ctx, dot, FormatDOT)
	if err != nil || string(raw) != dot {
		t.Errorf("Render(dot) = %q, %v", raw, err)
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
