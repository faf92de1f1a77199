package properties

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Schema is the ordered, immutable property layout of one entity family.
// It is safe for concurrent lookups.
type Schema struct {
	family      string
	defs        []Definition
	index       map[string]int
	fingerprint uint64
}

// Register builds the schema for a family. The slot index of each property is its
// position in defs.
func Register(family string, defs ...Definition) (*Schema, error) {
	s := &Schema{
		family: family,
		defs:   make([]Definition, len(defs)),
		index:  make(map[string]int, len(defs)),
	}
	h := xxhash.New()
	_, _ = h.WriteString(family)
	for i, d := range defs {
		if err := d.validate(); err != nil {
			return nil, fmt.Errorf("family %s: %w", family, err)
		}
		if _, exists := s.index[d.Name]; exists {
			return nil, fmt.Errorf("family %s: %w: %s", family, ErrDuplicateProperty, d.Name)
		}
		d.Values = append([]string(nil), d.Values...)
		s.defs[i] = d
		s.index[d.Name] = i
		writeDefinition(h, d)
	}
	s.fingerprint = h.Sum64()
	return s, nil
}

// MustRegister is Register for built-in tables that are known to be valid.
func MustRegister(family string, defs ...Definition) *Schema {
	s, err := Register(family, defs...)
	if err != nil {
		panic(err)
	}
	return s
}

func writeDefinition(h *xxhash.Digest, d Definition) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(len(d.Values)))
	_, _ = h.WriteString(d.Name)
	_, _ = h.Write([]byte{0, byte(d.Kind)})
	_, _ = h.Write(buf[:])
	for _, v := range d.Values {
		_, _ = h.WriteString(v)
		_, _ = h.Write([]byte{0})
	}
}

// Lookup resolves a property name to its slot index and kind.
func (s *Schema) Lookup(name string) (int, Kind, error) {
	if s == nil {
		return -1, 0, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	i, ok := s.index[name]
	if !ok {
		return -1, 0, fmt.Errorf("%w: %s (family %s)", ErrUnknownProperty, name, s.family)
	}
	return i, s.defs[i].Kind, nil
}

func (s *Schema) Family() string { return s.family }

func (s *Schema) Len() int { return len(s.defs) }

// Definition returns the definition at slot i.
func (s *Schema) Definition(i int) Definition {
	d := s.defs[i]
	d.Values = append([]string(nil), d.Values...)
	return d
}

// Definitions returns a copy of the ordered definitions.
func (s *Schema) Definitions() []Definition {
	out := make([]Definition, len(s.defs))
	for i := range s.defs {
		out[i] = s.Definition(i)
	}
	return out
}

// Fingerprint is a stable hash of the ordered layout. Two schemas with the same
// fingerprint assign the same slots, which is what a client resource pack relies on.
func (s *Schema) Fingerprint() uint64 { return s.fingerprint }
