package forge

import (
	"fmt"
	"reflect"

	"typeforge/internal/reflectx"
	"typeforge/member"
)

// Origin indicates where a resolved member came from.
type Origin int

const (
	// OriginExplicit - supplied directly in the composition request.
	OriginExplicit Origin = iota
	// OriginInherited - carried over from the base type.
	OriginInherited
	// OriginOverride - synthesized cover of a still-abstract base member.
	OriginOverride
	// OriginContract - synthesized to satisfy a capability contract.
	OriginContract
	// OriginWoven - change-notification machinery.
	OriginWoven
)

// String returns a human-readable origin name.
func (o Origin) String() string {
	switch o {
	case OriginExplicit:
		return "explicit"
	case OriginInherited:
		return "inherited"
	case OriginOverride:
		return "override"
	case OriginContract:
		return "contract"
	case OriginWoven:
		return "woven"
	default:
		return "unknown"
	}
}

// Member is one resolved member of a composed type.
type Member struct {
	Name     string
	Kind     member.Kind
	Type     reflect.Type
	Virtual  bool
	Abstract bool
	Origin   Origin

	body  reflect.Value                // methods with a body
	get   func(*Instance) (any, error) // fields and properties
	set   func(*Instance, any) error
	woven bool                         // setter already raises change notification
}

// newMember resolves a schema node into a member of the type being
// composed.
func newMember(typeName string, n member.SchemaNode, origin Origin) (*Member, error) {
	m := &Member{
		Name:    n.Name,
		Kind:    n.Kind,
		Type:    n.Type,
		Virtual: n.Virtual,
		Origin:  origin,
	}

	switch n.Kind {
	case member.KindField, member.KindProperty:
		if n.Type == nil {
			return nil, &CompositionError{typeName, fmt.Sprintf("member %q has no type", n.Name)}
		}

		m.get, m.set = storageAccessors(n.Name, n.Type)

	case member.KindMethod:
		body := reflect.ValueOf(n.Body)
		if !body.IsValid() || body.Kind() != reflect.Func {
			return nil, &CompositionError{typeName, fmt.Sprintf("method %q has no callable body", n.Name)}
		}

		if m.Type == nil {
			m.Type = body.Type()
		}

		m.body = body

	case member.KindEmptyMethod:
		if n.Type == nil || n.Type.Kind() != reflect.Func {
			return nil, &CompositionError{typeName, fmt.Sprintf("empty method %q needs a func type", n.Name)}
		}

		m.Abstract = true
		m.Virtual = true

	case member.KindEvent:
		// handler list only, no storage

	default:
		return nil, &CompositionError{typeName, fmt.Sprintf("member %q has kind %s", n.Name, n.Kind)}
	}

	return m, nil
}

// inherit copies a base member into a derived type. Woven notification
// machinery keeps its origin so a notifying derived type can recognize
// and reuse it.
func (m *Member) inherit() *Member {
	c := *m
	if c.Origin != OriginWoven {
		c.Origin = OriginInherited
	}

	return &c
}

// cover synthesizes a virtual override for a still-abstract base member:
// a no-op body returning the type's zero values, backed by instance
// storage for any state it would carry.
func (m *Member) cover() *Member {
	c := *m
	c.Origin = OriginOverride
	c.Abstract = false
	c.Virtual = true

	return &c
}

// storageAccessors builds the default accessor pair for a field or
// property: reads fall back to the zero value, writes coerce into the
// declared type.
func storageAccessors(name string, typ reflect.Type) (func(*Instance) (any, error), func(*Instance, any) error) {
	get := func(in *Instance) (any, error) {
		if v, ok := in.storage[name]; ok {
			return v, nil
		}

		return reflect.Zero(typ).Interface(), nil
	}

	set := func(in *Instance, v any) error {
		rv, err := reflectx.Coerce(v, typ)
		if err != nil {
			return fmt.Errorf("set %q: %w", name, err)
		}

		in.storage[name] = rv.Interface()

		return nil
	}

	return get, set
}
