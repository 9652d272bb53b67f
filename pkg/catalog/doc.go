// Package catalog models the resources of a configuration run and loads them
// from JSON or YAML.
//
// A catalog lists resources by reference ("Type[title]"), which resources
// contain which, and the ordering relationships between them. It produces the
// two graphs the scheduler needs: the containment (declaration) graph and the
// relationship graph. Containers such as Class and Stage are later spliced out
// of the relationship graph, and an empty container is replaced by a
// [Placeholder] ("Whit[...]") so ordering through it survives.
//
//	c, err := catalog.Import("site.json")
//	if err != nil {
//	    return err
//	}
//	rel := c.RelationshipGraph()
//	err = rel.Splice(c.ContainmentGraph(), catalog.IsContainer(), catalog.Placeholder)
package catalog
