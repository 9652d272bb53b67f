package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/catalog"
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/pipeline"
)

func (c *CLI) depsCommand() *cobra.Command {
	var (
		o        runOptions
		declared bool
		tree     bool
	)

	cmd := &cobra.Command{
		Use:   "deps <catalog> <resource>",
		Short: "Show what a resource depends on and what depends on it",
		Long: `Show the transitive dependencies and dependents of one resource.

By default the expanded graph is used, in which containers have been replaced by
their members. Use --declared to query the relationships as written, including
containers.`,
		Example: `  relgraph deps site.json 'Service[nginx]'
  relgraph deps site.json 'Class[web]' --declared --tree`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := catalog.ParseRef(args[1])
			if err != nil {
				return err
			}
			res, err := c.execute(cmd.Context(), c.pipelineOptions(args[0], o), o.noCache)
			if err != nil && (res == nil || res.Expanded == nil) {
				return err
			}
			if err != nil {
				printWarning(cmd.ErrOrStderr(), "graph has cycles; results include the cyclic part")
			}

			g := res.Expanded
			if declared {
				g = res.Relationships
			}
			if !g.HasVertex(ref) {
				hint := ""
				if !declared && res.Relationships.HasVertex(ref) {
					hint = " (it is a container; use --declared)"
				}
				return errors.New(errors.ErrCodeResourceNotFound, "%s is not in the graph%s", ref, hint)
			}

			out := cmd.OutOrStdout()
			if tree {
				printTree(out, g, ref)
				return nil
			}
			printRefs(out, "Dependencies of "+ref.String(), g.Dependencies(ref))
			fmt.Fprintln(out)
			printRefs(out, "Dependents of "+ref.String(), g.Dependents(ref))
			return nil
		},
	}

	o.register(cmd)
	cmd.Flags().BoolVar(&declared, "declared", false, "query the graph before containers are spliced")
	cmd.Flags().BoolVar(&tree, "tree", false, "print dependencies as a tree")
	return cmd
}

func printRefs(w io.Writer, title string, refs []catalog.Ref) {
	fmt.Fprintln(w, StyleTitle.Render(title))
	if len(refs) == 0 {
		printDetail(w, "(none)")
		return
	}
	for _, r := range refs {
		fmt.Fprintln(w, "  "+styleIconInfo.Render(iconInfo)+" "+styleRef(r))
	}
}

func styleRef(r catalog.Ref) string {
	if pipeline.IsPlaceholder(r.String()) {
		return stylePlaceholder.Render(r.String())
	}
	return StyleValue.Render(r.String())
}

// printTree prints the breadth-first dependency tree of root; each vertex
// appears once, under the first vertex it was reached from. Leaves, the
// resources with no further dependencies, are marked.
func printTree(w io.Writer, g *graph.Graph[catalog.Ref], root catalog.Ref) {
	children := make(map[catalog.Ref][]catalog.Ref)
	placed := map[catalog.Ref]bool{root: true}
	g.Walk(root, graph.In, func(parent, child catalog.Ref) {
		if placed[child] {
			return
		}
		placed[child] = true
		children[parent] = append(children[parent], child)
	})
	leaves := make(map[catalog.Ref]bool)
	for _, l := range g.Leaves(root, graph.In) {
		leaves[l] = true
	}

	var walk func(v catalog.Ref, depth int)
	walk = func(v catalog.Ref, depth int) {
		line := strings.Repeat("  ", depth) + styleRef(v)
		if leaves[v] {
			line += StyleDim.Render(" (leaf)")
		}
		fmt.Fprintln(w, line)
		for _, c := range children[v] {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
}
