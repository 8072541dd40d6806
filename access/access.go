// Package access is the process-wide hidden-member access helper: a
// lazily-built cache of compiled field accessors, keyed by (type, member),
// that reaches struct fields regardless of declared visibility.
//
// Unexported fields are read and written through their address
// (reflect.NewAt over the field's unsafe.Pointer), so they are reachable
// only on addressable instances, in practice pointers to structs. That is
// the extent of the late-bound path: members that are not addressable
// stay out of reach and surface an error instead of being emulated.
//
// The cache lives for the process and is never evicted.
package access

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"typeforge/internal/reflectx"
)

var (
	// ErrNilInstance is returned when the target instance is absent.
	ErrNilInstance = errors.New("access: nil instance")
	// ErrMemberNotFound is returned when the named member does not exist
	// on the target type.
	ErrMemberNotFound = errors.New("access: member not found")
	// ErrNotAddressable is returned when an unexported member exists but
	// the given instance does not expose an address for it.
	ErrNotAddressable = errors.New("access: member not addressable")
)

type key struct {
	typ  reflect.Type
	name string
}

// accessor is a compiled read/write pair for one (type, member).
type accessor struct {
	index    []int
	typ      reflect.Type
	exported bool
}

var (
	mu    sync.RWMutex
	cache = map[key]*accessor{}
)

// Get reads the named member from instance, which must be a value of (or
// pointer to) typ.
func Get(typ reflect.Type, name string, instance any) (any, error) {
	if instance == nil {
		return nil, ErrNilInstance
	}

	acc, err := lookup(typ, name)
	if err != nil {
		return nil, err
	}

	fv, err := acc.field(instance)
	if err != nil {
		return nil, err
	}

	return fv.Interface(), nil
}

// Set writes the named member on instance, which must be a pointer to a
// value of typ for the write to stick.
func Set(typ reflect.Type, name string, instance any, value any) error {
	if instance == nil {
		return ErrNilInstance
	}

	acc, err := lookup(typ, name)
	if err != nil {
		return err
	}

	fv, err := acc.field(instance)
	if err != nil {
		return err
	}

	if !fv.CanSet() {
		return fmt.Errorf("%w: %s.%s (pass a pointer instance)", ErrNotAddressable, typ, name)
	}

	v, err := reflectx.Coerce(value, acc.typ)
	if err != nil {
		return fmt.Errorf("access: set %s.%s: %w", typ, name, err)
	}

	fv.Set(v)

	return nil
}

// lookup returns the cached accessor for (typ, name), building it on
// first use.
func lookup(typ reflect.Type, name string) (*accessor, error) {
	k := key{typ: typ, name: name}

	mu.RLock()
	acc, ok := cache[k]
	mu.RUnlock()

	if ok {
		return acc, nil
	}

	acc, err := build(typ, name)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	if prior, ok := cache[k]; ok {
		acc = prior
	} else {
		cache[k] = acc
	}
	mu.Unlock()

	return acc, nil
}

func build(typ reflect.Type, name string) (*accessor, error) {
	st := typ
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}

	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct type", ErrMemberNotFound, typ)
	}

	f, ok := st.FieldByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrMemberNotFound, st, name)
	}

	return &accessor{index: f.Index, typ: f.Type, exported: f.IsExported()}, nil
}

// field resolves the member's reflect.Value on the given instance,
// unlocking unexported fields through their address.
func (a *accessor) field(instance any) (reflect.Value, error) {
	if instance == nil {
		return reflect.Value{}, ErrNilInstance
	}

	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, ErrNilInstance
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: instance is %s", ErrMemberNotFound, v.Kind())
	}

	fv := v.FieldByIndex(a.index)
	if a.exported {
		return fv, nil
	}

	if !fv.CanAddr() {
		return reflect.Value{}, fmt.Errorf("%w: unexported member needs an addressable instance", ErrNotAddressable)
	}

	return reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem(), nil
}
