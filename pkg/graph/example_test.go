package graph_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/relgraph/pkg/graph"
)

func ExampleGraph_TopSort() {
	g := graph.New[string]()
	g.AddRelationship("Package[nginx]", "File[/etc/nginx.conf]", graph.Label{})
	g.AddRelationship("File[/etc/nginx.conf]", "Service[nginx]", graph.NewLabel("refresh", graph.AllEvents))

	order, err := g.TopSort()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(strings.Join(order, " -> "))
	// Output: Package[nginx] -> File[/etc/nginx.conf] -> Service[nginx]
}

func ExampleCycleError() {
	g := graph.New[string]()
	g.AddRelationship("A", "B", graph.Label{})
	g.AddRelationship("B", "A", graph.Label{})

	_, err := g.TopSort()
	var cycle *graph.CycleError[string]
	if errors.As(err, &cycle) {
		fmt.Println(len(cycle.Edges()), "edges in cycle")
		fmt.Println(err)
	}
	// Output:
	// 2 edges in cycle
	// found dependency cycles in the following relationships: (B => A), (A => B)
}

func ExampleGraph_Splice() {
	decl := graph.New[string]()
	decl.AddRelationship("Class[web]", "Package[nginx]", graph.Label{})
	decl.AddRelationship("Class[web]", "Service[nginx]", graph.Label{})

	g := graph.New[string]()
	g.AddRelationship("User[deploy]", "Class[web]", graph.Label{})
	g.AddVertex("Package[nginx]")
	g.AddVertex("Service[nginx]")

	isClass := func(v string) bool { return strings.HasPrefix(v, "Class[") }
	whit := func(v string) string { return "Whit[" + v + "]" }
	if err := g.Splice(decl, isClass, whit); err != nil {
		fmt.Println(err)
		return
	}
	for _, e := range g.Edges() {
		fmt.Println(e)
	}
	// Output:
	// User[deploy] => Package[nginx]
	// User[deploy] => Service[nginx]
}

func ExampleGraph_MatchingEdges() {
	g := graph.New[string]()
	g.AddRelationship("File[/etc/nginx.conf]", "Service[nginx]", graph.NewLabel("refresh", graph.AllEvents))
	g.AddRelationship("File[/etc/nginx.conf]", "Exec[validate]", graph.Label{})

	for _, e := range g.MatchingEdges("content_changed", "File[/etc/nginx.conf]") {
		fmt.Println(e.Target, e.Label.Callback)
	}
	// Output: Service[nginx] refresh
}
