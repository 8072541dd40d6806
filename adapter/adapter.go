package adapter

import (
	"fmt"
	"reflect"

	"typeforge/access"
	"typeforge/forge"
	"typeforge/internal/reflectx"
)

// Type is a synthesized adapter type: one contract, one target type, one
// missing-member policy, and the per-member bindings resolved between
// them.
type Type struct {
	name     string
	contract *forge.Contract
	target   reflect.Type
	policy   Policy
	methods  map[string]*methodBinding
	props    map[string]*propertyBinding
}

type methodBinding struct {
	strategy strategy
	method   reflect.Method
	sig      reflect.Type
}

type propertyBinding struct {
	typ   reflect.Type
	read  accessorBinding
	write accessorBinding
}

type accessorBinding struct {
	strategy  strategy
	field     reflect.StructField
	method    reflect.Method
	viaMethod bool
}

// Name returns the adapter type's unique name.
func (t *Type) Name() string { return t.name }

// Contract returns the one contract the adapter implements.
func (t *Type) Contract() *forge.Contract { return t.contract }

// Target returns the wrapped instance type.
func (t *Type) Target() reflect.Type { return t.target }

// Policy returns the missing-member policy.
func (t *Type) Policy() Policy { return t.policy }

// Wrap creates an adapter instance around the given target instance. The
// reference is set once and never reassigned.
func (t *Type) Wrap(instance any) (*Adapter, error) {
	if instance == nil {
		return nil, ErrNilTarget
	}

	v := reflect.ValueOf(instance)
	if !v.Type().AssignableTo(t.target) {
		return nil, &AdapterError{
			Adapter: t.name,
			Reason:  fmt.Sprintf("instance type %s does not match target %s", v.Type(), t.target),
		}
	}

	return &Adapter{typ: t, target: v}, nil
}

// Adapter is an instance of an adapter type. It holds exactly one
// reference to the wrapped instance and no other state; it needs no
// synchronization beyond whatever the wrapped instance itself requires.
type Adapter struct {
	typ    *Type
	target reflect.Value
}

// Type returns the adapter's synthesized type.
func (a *Adapter) Type() *Type { return a.typ }

// Unwrap returns the wrapped instance.
func (a *Adapter) Unwrap() any { return a.target.Interface() }

// Call invokes a contract operation, forwarding to the target's resolved
// method or running the member's stub.
func (a *Adapter) Call(name string, args ...any) ([]any, error) {
	mb, ok := a.typ.methods[name]
	if !ok {
		return nil, &AdapterError{Adapter: a.typ.name, Member: name, Reason: "no such operation"}
	}

	switch mb.strategy {
	case strategyDirect:
		return reflectx.CallFunc(a.target.MethodByName(mb.method.Name), args)

	case strategyStubDefault:
		return reflectx.ZeroResults(mb.sig), nil

	default:
		return nil, &AdapterError{
			Adapter: a.typ.name,
			Member:  name,
			Reason:  "not supported by target " + a.typ.target.String(),
		}
	}
}

// Get reads a contract property from the target.
func (a *Adapter) Get(name string) (any, error) {
	pb, ok := a.typ.props[name]
	if !ok {
		return nil, &AdapterError{Adapter: a.typ.name, Member: name, Reason: "no such property"}
	}

	switch pb.read.strategy {
	case strategyDirect:
		if pb.read.viaMethod {
			out, err := reflectx.CallFunc(a.target.MethodByName(pb.read.method.Name), nil)
			if err != nil {
				return nil, err
			}

			return out[0], nil
		}

		return a.structValue().FieldByIndex(pb.read.field.Index).Interface(), nil

	case strategyAccessor:
		return access.Get(a.typ.target, pb.read.field.Name, a.target.Interface())

	case strategyStubDefault:
		return reflect.Zero(pb.typ).Interface(), nil

	default:
		return nil, &AdapterError{
			Adapter: a.typ.name,
			Member:  name,
			Reason:  "not readable on target " + a.typ.target.String(),
		}
	}
}

// Set writes a contract property onto the target.
func (a *Adapter) Set(name string, value any) error {
	pb, ok := a.typ.props[name]
	if !ok {
		return &AdapterError{Adapter: a.typ.name, Member: name, Reason: "no such property"}
	}

	switch pb.write.strategy {
	case strategyDirect:
		if pb.write.viaMethod {
			_, err := reflectx.CallFunc(a.target.MethodByName(pb.write.method.Name), []any{value})
			return err
		}

		fv := a.structValue().FieldByIndex(pb.write.field.Index)
		if !fv.CanSet() {
			return &AdapterError{
				Adapter: a.typ.name,
				Member:  name,
				Reason:  "target instance is not addressable, wrap a pointer",
			}
		}

		v, err := reflectx.Coerce(value, fv.Type())
		if err != nil {
			return &AdapterError{Adapter: a.typ.name, Member: name, Reason: err.Error()}
		}

		fv.Set(v)

		return nil

	case strategyAccessor:
		return access.Set(a.typ.target, pb.write.field.Name, a.target.Interface(), value)

	case strategyStubDefault:
		return nil

	default:
		return &AdapterError{
			Adapter: a.typ.name,
			Member:  name,
			Reason:  "not writable on target " + a.typ.target.String(),
		}
	}
}

func (a *Adapter) structValue() reflect.Value {
	v := a.target
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	return v
}
