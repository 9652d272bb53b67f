package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/relgraph/pkg/errors"
)

// ReadJSON decodes a catalog from r and validates it.
//
// The input is a JSON object:
//
//	{
//	  "resources": ["Class[web]", "Package[nginx]", "Service[nginx]"],
//	  "containment": [{"container": "Class[web]", "member": "Package[nginx]"}],
//	  "relationships": [
//	    {"source": "Package[nginx]", "target": "Service[nginx]",
//	     "events": ["ALL_EVENTS"], "callback": "refresh"}
//	  ]
//	}
//
// Relationship and containment endpoints must be listed in resources.
func ReadJSON(r io.Reader) (*Catalog, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode catalog")
	}
	return doc.catalog()
}

// ImportJSON reads a catalog from the JSON file at path.
func ImportJSON(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes c as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(c *Catalog, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes c to a JSON file at path.
func ExportJSON(c *Catalog, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}
