package forge

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/davecgh/go-spew/spew"

	"typeforge/access"
	"typeforge/internal/reflectx"
	"typeforge/member"
)

// Handler observes an instance event. For the Changed event the first
// argument is the changed property's name.
type Handler func(args ...any)

// Instance is a value of a composed type: a generic record whose member
// access is resolved through the type descriptor. Instances carry no
// locking beyond handler-list registration; value nodes assigned during
// construction must not depend on one another's side effects.
type Instance struct {
	typ     *Type
	storage map[string]any

	mu       sync.Mutex
	handlers map[string][]Handler
}

var instanceType = reflect.TypeOf((*Instance)(nil))

// Type returns the instance's composed type.
func (in *Instance) Type() *Type { return in.typ }

// Get reads the named field or property.
func (in *Instance) Get(name string) (any, error) {
	m, ok := in.typ.Member(name)
	if !ok {
		return nil, in.noMember(name)
	}

	if m.get == nil {
		return nil, fmt.Errorf("member %q of %q is a %s, not readable", name, in.typ.name, m.Kind)
	}

	return m.get(in)
}

// Set writes the named field or property. Property writes on notifying
// types raise the change announcement when the value actually changes.
func (in *Instance) Set(name string, value any) error {
	return in.assign(member.ValueNode{Name: name, DeclaredKind: member.KindUnknown, Value: value})
}

// assign applies one value node. An unknown declared kind prefers a
// property and falls back to a field of the same name.
func (in *Instance) assign(n member.ValueNode) error {
	m, ok := in.typ.Member(n.Name)
	if !ok {
		return in.noMember(n.Name)
	}

	switch n.DeclaredKind {
	case member.KindField, member.KindProperty:
		if m.Kind != n.DeclaredKind {
			return fmt.Errorf("member %q of %q is a %s, not a %s",
				n.Name, in.typ.name, m.Kind, n.DeclaredKind)
		}
	case member.KindUnknown:
		if m.Kind != member.KindProperty && m.Kind != member.KindField {
			return fmt.Errorf("member %q of %q is a %s, not assignable",
				n.Name, in.typ.name, m.Kind)
		}
	default:
		return fmt.Errorf("value node %q declares kind %s", n.Name, n.DeclaredKind)
	}

	return m.set(in, n.Value)
}

// Call invokes the named method. Abstract and empty methods are no-ops
// returning the signature's zero values. A body whose first parameter is
// *Instance receives the instance.
func (in *Instance) Call(name string, args ...any) ([]any, error) {
	m, ok := in.typ.Member(name)
	if !ok {
		return nil, in.noMember(name)
	}

	if m.Kind != member.KindMethod && m.Kind != member.KindEmptyMethod {
		return nil, fmt.Errorf("member %q of %q is a %s, not callable", name, in.typ.name, m.Kind)
	}

	if m.Abstract || !m.body.IsValid() {
		return reflectx.ZeroResults(m.Type), nil
	}

	if ft := m.body.Type(); ft.NumIn() > 0 && ft.In(0) == instanceType {
		args = append([]any{in}, args...)
	}

	return reflectx.CallFunc(m.body, args)
}

// On registers a handler for the named event.
func (in *Instance) On(event string, h Handler) error {
	if err := in.checkEvent(event); err != nil {
		return err
	}

	in.mu.Lock()
	in.handlers[event] = append(in.handlers[event], h)
	in.mu.Unlock()

	return nil
}

// Raise invokes every handler registered for the named event.
func (in *Instance) Raise(event string, args ...any) error {
	if err := in.checkEvent(event); err != nil {
		return err
	}

	in.mu.Lock()
	hs := append([]Handler(nil), in.handlers[event]...)
	in.mu.Unlock()

	for _, h := range hs {
		h(args...)
	}

	return nil
}

func (in *Instance) checkEvent(event string) error {
	m, ok := in.typ.Member(event)
	if !ok {
		return in.noMember(event)
	}

	if m.Kind != member.KindEvent {
		return fmt.Errorf("member %q of %q is a %s, not an event", event, in.typ.name, m.Kind)
	}

	return nil
}

func (in *Instance) noMember(name string) error {
	return fmt.Errorf("%w: type %q has no member %q", access.ErrMemberNotFound, in.typ.name, name)
}

// MarshalJSON serializes the instance's fields and properties. Only
// types composed with FlagSerializable support it.
func (in *Instance) MarshalJSON() ([]byte, error) {
	if !in.typ.Serializable() {
		return nil, fmt.Errorf("type %q is not serializable", in.typ.name)
	}

	out := map[string]any{}

	for _, m := range in.typ.members {
		if m.Kind != member.KindField && m.Kind != member.KindProperty {
			continue
		}

		v, err := m.get(in)
		if err != nil {
			return nil, err
		}

		out[m.Name] = v
	}

	return json.Marshal(out)
}

// Dump returns a diagnostic representation of the instance state.
func (in *Instance) Dump() string {
	return fmt.Sprintf("%s %s", in.typ.name, spew.Sdump(in.storage))
}
