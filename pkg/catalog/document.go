package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/relgraph/pkg/errors"
	"github.com/matzehuels/relgraph/pkg/graph"
)

// document is the on-disk form shared by the JSON and YAML codecs.
type document struct {
	Name          string         `json:"name,omitempty" yaml:"name,omitempty"`
	Resources     []string       `json:"resources" yaml:"resources"`
	Containment   []containment  `json:"containment,omitempty" yaml:"containment,omitempty"`
	Relationships []relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

type containment struct {
	Container string `json:"container" yaml:"container"`
	Member    string `json:"member" yaml:"member"`
}

type relationship struct {
	Source   string   `json:"source" yaml:"source"`
	Target   string   `json:"target" yaml:"target"`
	Events   []string `json:"events,omitempty" yaml:"events,omitempty"`
	Callback string   `json:"callback,omitempty" yaml:"callback,omitempty"`
}

// catalog parses every reference in doc and validates the result.
func (doc *document) catalog() (*Catalog, error) {
	if err := errors.ValidateName("catalog", doc.Name); err != nil {
		return nil, err
	}

	c := &Catalog{Name: doc.Name, Resources: make([]Ref, 0, len(doc.Resources))}
	for i, s := range doc.Resources {
		ref, err := ParseRef(s)
		if err != nil {
			return nil, fmt.Errorf("resource %d: %w", i, err)
		}
		c.Resources = append(c.Resources, ref)
	}
	for i, m := range doc.Containment {
		container, err := ParseRef(m.Container)
		if err != nil {
			return nil, fmt.Errorf("containment %d: %w", i, err)
		}
		member, err := ParseRef(m.Member)
		if err != nil {
			return nil, fmt.Errorf("containment %d: %w", i, err)
		}
		c.Containment = append(c.Containment, Containment{Container: container, Member: member})
	}
	for i, rel := range doc.Relationships {
		src, err := ParseRef(rel.Source)
		if err != nil {
			return nil, fmt.Errorf("relationship %d: %w", i, err)
		}
		tgt, err := ParseRef(rel.Target)
		if err != nil {
			return nil, fmt.Errorf("relationship %d: %w", i, err)
		}
		if rel.Callback != "" && len(rel.Events) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "relationship %d: callback %q without events", i, rel.Callback)
		}
		c.Relationships = append(c.Relationships, Relationship{
			Source: src,
			Target: tgt,
			Label:  graph.NewLabel(rel.Callback, rel.Events...),
		})
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func newDocument(c *Catalog) document {
	doc := document{
		Name:      c.Name,
		Resources: make([]string, len(c.Resources)),
	}
	for i, r := range c.Resources {
		doc.Resources[i] = r.String()
	}
	for _, m := range c.Containment {
		doc.Containment = append(doc.Containment, containment{
			Container: m.Container.String(),
			Member:    m.Member.String(),
		})
	}
	for _, rel := range c.Relationships {
		doc.Relationships = append(doc.Relationships, relationship{
			Source:   rel.Source.String(),
			Target:   rel.Target.String(),
			Events:   rel.Label.Events(),
			Callback: rel.Label.Callback,
		})
	}
	return doc
}

// Import reads a catalog file, choosing the codec by extension: .yaml and
// .yml are YAML, anything else is JSON.
func Import(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	}
	return ReadJSON(f)
}
