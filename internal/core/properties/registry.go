package properties

import (
	"fmt"
	"sort"
)

// Registry maps an entity family to its schema. It is built once at startup and
// only read afterwards, so it needs no locking.
type Registry struct {
	schemas map[string]*Schema
}

func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]*Schema, len(schemas))}
	for _, s := range schemas {
		if _, exists := r.schemas[s.family]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFamily, s.family)
		}
		r.schemas[s.family] = s
	}
	return r, nil
}

// Schema returns the schema of family, or nil when the family has no custom properties.
func (r *Registry) Schema(family string) *Schema {
	if r == nil {
		return nil
	}
	return r.schemas[family]
}

func (r *Registry) Families() []string {
	out := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
