// Package member holds the descriptor model shared by the binder, the type
// composer and the instance constructor: a named thing with a type.
package member

import "reflect"

// SchemaNode describes one intended member of a type to be synthesized.
// It is consumed once during composition.
type SchemaNode struct {
	// Name of the member.
	Name string
	// Type is the member's value type. For KindMethod and KindEmptyMethod
	// it is the func signature.
	Type reflect.Type
	// Kind of member to emit.
	Kind Kind
	// Virtual marks the member as overridable by derived composed types.
	Virtual bool
	// Body is the implementation for KindMethod members (a func value
	// matching Type). Nil for every other kind.
	Body any
}

// ValueNode describes one value to assign onto a freshly constructed
// instance. Nodes are transient: created per construction call and
// discarded after use.
type ValueNode struct {
	// Name of the member to assign.
	Name string
	// DeclaredKind is KindField, KindProperty, or KindUnknown. Unknown is
	// resolved at assignment: property preferred, field fallback.
	DeclaredKind Kind
	// Value to assign.
	Value any
}
