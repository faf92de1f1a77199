package properties

import "fmt"

// IntProperty is a pending write to an int-domain slot. Booleans travel as 0/1 and
// enum selections as the index of the selected value.
type IntProperty struct {
	Index int
	Value int32
}

// FloatProperty is a pending write to a float-domain slot.
type FloatProperty struct {
	Index int
	Value float32
}

// Accumulator collects property writes of one entity between flushes. Repeated
// writes to the same slot are all kept in insertion order; the receiving client
// applies them in sequence.
//
// An Accumulator belongs to a single entity and is not safe for concurrent use.
type Accumulator struct {
	schema *Schema
	ints   []IntProperty
	floats []FloatProperty
}

// NewAccumulator returns an accumulator for schema. A nil schema rejects every write.
func NewAccumulator(schema *Schema) *Accumulator {
	return &Accumulator{schema: schema}
}

func (a *Accumulator) Schema() *Schema { return a.schema }

func (a *Accumulator) resolve(name string, want Kind) (int, error) {
	index, kind, err := a.schema.Lookup(name)
	if err != nil {
		return -1, err
	}
	if kind != want {
		return -1, fmt.Errorf("%w: %s is %s, not %s", ErrTypeMismatch, name, kind, want)
	}
	return index, nil
}

func (a *Accumulator) AddInt(name string, value int32) error {
	index, err := a.resolve(name, KindInt)
	if err != nil {
		return err
	}
	a.ints = append(a.ints, IntProperty{Index: index, Value: value})
	return nil
}

func (a *Accumulator) AddBool(name string, value bool) error {
	index, err := a.resolve(name, KindBoolean)
	if err != nil {
		return err
	}
	var v int32
	if value {
		v = 1
	}
	a.ints = append(a.ints, IntProperty{Index: index, Value: v})
	return nil
}

// AddEnum records the position of value within the enum's declared values.
func (a *Accumulator) AddEnum(name, value string) error {
	index, err := a.resolve(name, KindEnum)
	if err != nil {
		return err
	}
	position := a.schema.defs[index].enumIndex(value)
	if position < 0 {
		return fmt.Errorf("%w: %q for %s", ErrInvalidEnumValue, value, name)
	}
	a.ints = append(a.ints, IntProperty{Index: index, Value: int32(position)})
	return nil
}

func (a *Accumulator) AddFloat(name string, value float32) error {
	index, err := a.resolve(name, KindFloat)
	if err != nil {
		return err
	}
	a.floats = append(a.floats, FloatProperty{Index: index, Value: value})
	return nil
}

func (a *Accumulator) HasPendingInt() bool   { return len(a.ints) > 0 }
func (a *Accumulator) HasPendingFloat() bool { return len(a.floats) > 0 }

// HasPending reports whether a flush would produce anything.
func (a *Accumulator) HasPending() bool {
	return a.HasPendingInt() || a.HasPendingFloat()
}

// Pending returns copies of the pending writes without consuming them.
func (a *Accumulator) Pending() ([]IntProperty, []FloatProperty) {
	return append([]IntProperty(nil), a.ints...), append([]FloatProperty(nil), a.floats...)
}

// FlushInto appends every pending write to the given slices in insertion order and
// empties the accumulator.
func (a *Accumulator) FlushInto(ints []IntProperty, floats []FloatProperty) ([]IntProperty, []FloatProperty) {
	ints = append(ints, a.ints...)
	floats = append(floats, a.floats...)
	a.ints = a.ints[:0]
	a.floats = a.floats[:0]
	return ints, floats
}
