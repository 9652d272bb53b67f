package catalog

import (
	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
)

// Containment declares that Container groups Member.
type Containment struct {
	Container Ref
	Member    Ref
}

// Relationship is an ordering constraint from Source to Target, optionally
// subscribing Target to events raised by Source.
type Relationship struct {
	Source Ref
	Target Ref
	Label  graph.Label
}

// Catalog is the compiled set of resources for one run together with their
// containment and relationships.
type Catalog struct {
	Name          string
	Resources     []Ref
	Containment   []Containment
	Relationships []Relationship
}

// Validate checks that every containment and relationship endpoint is a
// declared resource and that no resource is declared twice.
func (c *Catalog) Validate() error {
	declared := make(map[Ref]bool, len(c.Resources))
	for _, r := range c.Resources {
		if declared[r] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate resource %s", r)
		}
		declared[r] = true
	}
	check := func(r Ref, role string) error {
		if !declared[r] {
			return errors.New(errors.ErrCodeResourceNotFound, "%s %s is not declared", role, r)
		}
		return nil
	}
	for _, m := range c.Containment {
		if err := check(m.Container, "container"); err != nil {
			return err
		}
		if err := check(m.Member, "member"); err != nil {
			return err
		}
	}
	for _, rel := range c.Relationships {
		if err := check(rel.Source, "relationship source"); err != nil {
			return err
		}
		if err := check(rel.Target, "relationship target"); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether r is a declared resource.
func (c *Catalog) Has(r Ref) bool {
	for _, x := range c.Resources {
		if x == r {
			return true
		}
	}
	return false
}

// ContainmentGraph builds the declaration graph: every resource is a vertex and
// each container has an edge to each of its members.
func (c *Catalog) ContainmentGraph(opts ...graph.Option) *graph.Graph[Ref] {
	g := graph.New[Ref](opts...)
	for _, r := range c.Resources {
		g.AddVertex(r)
	}
	for _, m := range c.Containment {
		g.AddRelationship(m.Container, m.Member, graph.Label{})
	}
	return g
}

// RelationshipGraph builds the graph that is spliced and scheduled: every
// resource is a vertex and each relationship is an edge.
func (c *Catalog) RelationshipGraph(opts ...graph.Option) *graph.Graph[Ref] {
	g := graph.New[Ref](opts...)
	for _, r := range c.Resources {
		g.AddVertex(r)
	}
	for _, rel := range c.Relationships {
		g.AddRelationship(rel.Source, rel.Target, rel.Label)
	}
	return g
}
