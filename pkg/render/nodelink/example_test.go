package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := graph.New[string]()
	g.AddRelationship("Package[nginx]", "Service[nginx]", graph.NewLabel("refresh", graph.AllEvents))

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "Package[nginx]" -> "Service[nginx]" [label="ALL_EVENTS:refresh"];
}
