package catalog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/relgraph/pkg/errors"
)

// ReadYAML decodes a catalog written in YAML. The keys are those of
// [ReadJSON]; unknown keys are rejected.
//
//	resources: ["Class[web]", "Package[nginx]", "Service[nginx]"]
//	containment:
//	  - {container: "Class[web]", member: "Package[nginx]"}
//	relationships:
//	  - source: "Package[nginx]"
//	    target: "Service[nginx]"
//	    events: [ALL_EVENTS]
//	    callback: refresh
func ReadYAML(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode catalog")
	}
	return doc.catalog()
}

// WriteYAML encodes c as YAML.
func WriteYAML(c *Catalog, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}
