package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/pkg/catalog"
	"github.com/matzehuels/relgraph/pkg/errors"
)

func (c *CLI) eventsCommand() *cobra.Command {
	var o runOptions

	cmd := &cobra.Command{
		Use:   "events <catalog> <resource> <event>",
		Short: "Show which resources react to an event",
		Long: `List the relationships an event raised by a resource travels along, with
the callback each subscriber runs. A subscription to ALL_EVENTS matches any
event; the event NONE matches nothing.`,
		Example: `  relgraph events site.json 'File[/etc/nginx/nginx.conf]' changed`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := catalog.ParseRef(args[1])
			if err != nil {
				return err
			}
			event := args[2]
			if err := errors.ValidateName("event", event); err != nil {
				return err
			}
			res, err := c.execute(cmd.Context(), c.pipelineOptions(args[0], o), o.noCache)
			if err != nil && (res == nil || res.Expanded == nil) {
				return err
			}

			out := cmd.OutOrStdout()
			edges := res.Expanded.MatchingEdges(event, ref)
			if len(edges) == 0 {
				printInfo(out, "No subscribers to %s from %s", event, ref)
				return nil
			}
			printSuccess(out, "%d subscribers to %s from %s", len(edges), event, ref)
			for _, e := range edges {
				callback := e.Label.Callback
				if callback == "" {
					callback = "-"
				}
				fmt.Fprintf(out, "  %s %s %s\n", styleRef(e.Target), StyleDim.Render(iconArrow), StyleValue.Render(callback))
			}
			return nil
		},
	}

	o.register(cmd)
	return cmd
}
