// Package bind turns call arguments plus partial trailing names into an
// ordered list of correctly-typed member descriptors.
//
// Names cover the tail of the argument list: with total arguments and
// named names, argument i (for i >= total-named) carries names[i-offset]
// where offset = total-named. Arguments that are already descriptors pass
// through unchanged; a plain argument in front of the named tail cannot
// be explained and fails.
package bind

import (
	"fmt"
	"reflect"

	"typeforge/member"
)

// Error reports an argument list that cannot be bound to the declared
// names.
type Error struct {
	// Index of the offending argument.
	Index int
	// Reason in human-readable form.
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("bind: argument %d: %s", e.Index, e.Reason)
}

// Values binds construction-call arguments into ValueNodes. A plain
// argument becomes a node with DeclaredKind unknown, resolved at
// assignment time.
func Values(args []any, names []string) ([]member.ValueNode, error) {
	out := make([]member.ValueNode, len(args))
	offset := len(args) - len(names)

	for i := len(args) - 1; i >= 0; i-- {
		switch v := args[i].(type) {
		case member.ValueNode:
			out[i] = v
		case *member.ValueNode:
			out[i] = *v
		default:
			name, err := nameAt(i, offset, names)
			if err != nil {
				return nil, err
			}

			out[i] = member.ValueNode{
				Name:         name,
				DeclaredKind: member.KindUnknown,
				Value:        args[i],
			}
		}
	}

	return out, nil
}

// Schema binds composition-call arguments into SchemaNodes. A plain
// argument must be a callable (method with body), a reflect.Type of func
// kind (abstract empty method), or any other reflect.Type (property).
func Schema(args []any, names []string) ([]member.SchemaNode, error) {
	out := make([]member.SchemaNode, len(args))
	offset := len(args) - len(names)

	for i := len(args) - 1; i >= 0; i-- {
		switch v := args[i].(type) {
		case member.SchemaNode:
			out[i] = v
		case *member.SchemaNode:
			out[i] = *v
		default:
			name, err := nameAt(i, offset, names)
			if err != nil {
				return nil, err
			}

			node, err := schemaNode(i, name, args[i])
			if err != nil {
				return nil, err
			}

			out[i] = node
		}
	}

	return out, nil
}

func nameAt(i, offset int, names []string) (string, error) {
	if i-offset < 0 {
		return "", &Error{Index: i, Reason: "no declared name covers this argument"}
	}

	return names[i-offset], nil
}

func schemaNode(i int, name string, arg any) (member.SchemaNode, error) {
	if t, ok := arg.(reflect.Type); ok {
		if t.Kind() == reflect.Func {
			return member.SchemaNode{
				Name:    name,
				Type:    t,
				Kind:    member.KindEmptyMethod,
				Virtual: true,
			}, nil
		}

		return member.SchemaNode{Name: name, Type: t, Kind: member.KindProperty}, nil
	}

	if arg != nil {
		if t := reflect.TypeOf(arg); t.Kind() == reflect.Func {
			return member.SchemaNode{
				Name: name,
				Type: t,
				Kind: member.KindMethod,
				Body: arg,
			}, nil
		}
	}

	return member.SchemaNode{}, &Error{
		Index:  i,
		Reason: fmt.Sprintf("%T is neither a callable, a type token, nor a descriptor", arg),
	}
}
