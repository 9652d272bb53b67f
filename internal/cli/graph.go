package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/pipeline"
)

// parseFormats splits a comma-separated format list. Empty means dot.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"dot"}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

func (c *CLI) graphCommand() *cobra.Command {
	var (
		o          runOptions
		formatsStr string
		output     string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "graph <catalog>",
		Short: "Export the relationship graphs",
		Long: `Render the declared relationship graph and the expanded graph (containers
replaced by their members) as DOT, SVG or PNG files.

Scheduling is not attempted, so graphs with dependency cycles can still be
exported and inspected. If the containment itself is cyclic only the declared
graph is written.`,
		Example: `  relgraph graph site.json --format svg,dot -o out/`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.pipelineOptions(args[0], o)
			opts.Formats = parseFormats(formatsStr)
			opts.Detailed = detailed
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, o.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			cat, err := runner.Load(ctx, opts.Catalog)
			if err != nil {
				return err
			}
			graphs := []pipeline.NamedGraph{{Name: pipeline.GraphRelationships, Graph: runner.Prepare(cat, c.Logger)}}
			expanded := runner.Prepare(cat, c.Logger)
			if _, err := runner.Splice(ctx, cat, expanded, opts.ContainerTypes); err != nil {
				c.Logger.Warn("cannot expand containers", "err", errors.UserMessage(err))
			} else {
				graphs = append(graphs, pipeline.NamedGraph{Name: pipeline.GraphExpandedRelationships, Graph: expanded})
			}

			spin := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Rendering graphs...")
			spin.Start()
			artifacts, hit, err := runner.RenderWithCacheInfo(ctx, graphs, opts)
			spin.Stop()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(output, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Rendered %d graphs", len(graphs))
			printStats(out, expanded.Size(), len(expanded.Edges()), hit)
			for _, g := range graphs {
				for _, f := range opts.Formats {
					path := filepath.Join(output, g.Name+"."+f)
					if err := os.WriteFile(path, artifacts[g.Name][f], 0o644); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
					printFile(out, path)
				}
			}
			return nil
		},
	}

	o.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "dot", "output formats: dot, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label edges with their event subscriptions")
	return cmd
}
