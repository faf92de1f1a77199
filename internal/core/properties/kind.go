package properties

import "fmt"

// Kind is the declared value kind of a property slot.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindInt
	KindFloat
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind resolves the config spelling of a kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "bool", "boolean":
		return KindBoolean, nil
	case "int", "integer":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "enum":
		return KindEnum, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPropertyKind, s)
	}
}

// Definition declares a single property. Values is only used by enum properties
// and is matched by exact string comparison.
type Definition struct {
	Name   string
	Kind   Kind
	Values []string
}

func Bool(name string) Definition  { return Definition{Name: name, Kind: KindBoolean} }
func Int(name string) Definition   { return Definition{Name: name, Kind: KindInt} }
func Float(name string) Definition { return Definition{Name: name, Kind: KindFloat} }

func Enum(name string, values ...string) Definition {
	return Definition{Name: name, Kind: KindEnum, Values: values}
}

// enumIndex returns the position of value in the enum values, or -1.
func (d Definition) enumIndex(value string) int {
	for i, v := range d.Values {
		if v == value {
			return i
		}
	}
	return -1
}

func (d Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDefinition)
	}
	switch d.Kind {
	case KindBoolean, KindInt, KindFloat:
		if len(d.Values) > 0 {
			return fmt.Errorf("%w: %s: values are only allowed on enums", ErrInvalidDefinition, d.Name)
		}
	case KindEnum:
		if len(d.Values) == 0 {
			return fmt.Errorf("%w: %s: enum without values", ErrInvalidDefinition, d.Name)
		}
	default:
		return fmt.Errorf("%w: %s: %s", ErrUnknownPropertyKind, d.Name, d.Kind)
	}
	return nil
}
