package properties

import "errors"

var (
	// Lookup and accumulation errors

	ErrUnknownProperty  = errors.New("unknown property")
	ErrTypeMismatch     = errors.New("property type mismatch")
	ErrInvalidEnumValue = errors.New("invalid enum value")

	// Registration errors

	ErrDuplicateProperty   = errors.New("duplicate property")
	ErrDuplicateFamily     = errors.New("duplicate property family")
	ErrInvalidDefinition   = errors.New("invalid property definition")
	ErrUnknownPropertyKind = errors.New("unknown property kind")
)
