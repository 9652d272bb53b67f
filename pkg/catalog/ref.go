package catalog

import (
	"slices"
	"strings"

	"github.com/matzehuels/relgraph/pkg/errors"
)

// Ref identifies a resource by type and title, written "Type[title]".
// Refs are comparable and serve as graph vertices.
type Ref struct {
	Type  string
	Title string
}

// String renders the reference as "Type[title]".
func (r Ref) String() string { return r.Type + "[" + r.Title + "]" }

// ParseRef parses "Type[title]". The type is canonicalized so that
// "apache::vhost[x]" and "Apache::Vhost[x]" are the same reference.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return Ref{}, errors.New(errors.ErrCodeInvalidReference, "malformed reference %q (want Type[title])", s)
	}
	ref := Ref{Type: canonicalType(s[:open]), Title: s[open+1 : len(s)-1]}
	if err := errors.ValidateReference(ref.Type, ref.Title); err != nil {
		return Ref{}, err
	}
	return ref, nil
}

// MustParseRef is like ParseRef but panics on error. Intended for tests and
// static tables.
func MustParseRef(s string) Ref {
	r, err := ParseRef(s)
	if err != nil {
		panic(err)
	}
	return r
}

func canonicalType(t string) string {
	parts := strings.Split(t, "::")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
		}
	}
	return strings.Join(parts, "::")
}

// WhitType is the type of the placeholder that stands in for an empty container.
const WhitType = "Whit"

// DefaultContainerTypes are the resource types flattened before scheduling.
var DefaultContainerTypes = []string{"Class", "Stage"}

// IsContainer returns a predicate that holds for refs whose type is one of
// types (case-insensitive). With no types it uses DefaultContainerTypes.
func IsContainer(types ...string) func(Ref) bool {
	if len(types) == 0 {
		types = DefaultContainerTypes
	}
	set := make(map[string]bool, len(types))
	for _, t := range CanonicalTypes(types) {
		set[t] = true
	}
	return func(r Ref) bool { return set[r.Type] }
}

// CanonicalTypes returns types capitalised as in references, sorted and
// without duplicates, so equal sets of types compare equal.
func CanonicalTypes(types []string) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = canonicalType(t)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Placeholder returns the no-op vertex that replaces an empty container.
func Placeholder(container Ref) Ref {
	return Ref{Type: WhitType, Title: container.String()}
}
