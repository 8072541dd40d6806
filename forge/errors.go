package forge

import "fmt"

// CompositionError reports an invalid type composition request: a
// contract cycle, an attempt to override a non-overridable base member,
// or a malformed member definition.
type CompositionError struct {
	// TypeName being composed.
	TypeName string
	// Reason in human-readable form.
	Reason string
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("compose %q: %s", e.TypeName, e.Reason)
}

// UnknownTypeError is returned when constructing an instance of a type
// name that was never composed.
type UnknownTypeError struct {
	// Name that was requested.
	Name string
	// Known lists the composed names in the registry (sorted).
	Known []string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown composed type %q (known: %v)", e.Name, e.Known)
}
