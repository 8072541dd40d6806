package forge

import (
	"fmt"
	"reflect"

	"typeforge/member"
)

// weave installs change notification on the composed type: the Changed
// event, exactly one raiser operation, and interception of every
// property write that this type controls. Inherited non-virtual
// properties cannot be intercepted and stay silent.
func (t *Type) weave() error {
	if m, ok := t.byName[ChangedEvent]; ok {
		if m.Kind != member.KindEvent {
			return &CompositionError{t.name, fmt.Sprintf(
				"member %q collides with the woven change event", ChangedEvent)}
		}
	} else {
		t.add(&Member{Name: ChangedEvent, Kind: member.KindEvent, Origin: OriginWoven})
	}

	// A notifying base already carries the raiser; reuse it.
	if m, ok := t.byName[RaiseChanged]; ok {
		if m.Origin != OriginWoven || m.Kind != member.KindMethod {
			return &CompositionError{t.name, fmt.Sprintf(
				"member %q collides with the woven notification raiser", RaiseChanged)}
		}
	} else {
		raiser := &Member{
			Name:   RaiseChanged,
			Kind:   member.KindMethod,
			Origin: OriginWoven,
			body: reflect.ValueOf(func(in *Instance, property string) {
				_ = in.Raise(ChangedEvent, property)
			}),
		}
		raiser.Type = raiser.body.Type()
		t.add(raiser)
	}

	for _, m := range t.members {
		if m.Kind != member.KindProperty || m.woven {
			continue
		}

		if m.Origin == OriginInherited && !m.Virtual {
			continue
		}

		m.set = wovenSetter(m.Name, m.get, m.set)
		m.woven = true
	}

	return nil
}

// wovenSetter wraps a property setter so that it writes through the
// underlying implementation and raises the change announcement only when
// the post-write value differs from the pre-write value. No-op writes
// raise nothing.
func wovenSetter(
	name string,
	get func(*Instance) (any, error),
	set func(*Instance, any) error,
) func(*Instance, any) error {
	return func(in *Instance, v any) error {
		before, err := get(in)
		if err != nil {
			return err
		}

		if err := set(in, v); err != nil {
			return err
		}

		after, err := get(in)
		if err != nil {
			return err
		}

		if reflect.DeepEqual(before, after) {
			return nil
		}

		_, err = in.Call(RaiseChanged, name)

		return err
	}
}
