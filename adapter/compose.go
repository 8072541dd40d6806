// Package adapter synthesizes forwarding adapter types: each implements
// exactly one capability contract by delegating member accesses to an
// already-existing Go value, with a configurable policy for members the
// target does not support.
package adapter

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"typeforge/forge"
	"typeforge/internal/reflectx"
	"typeforge/member"
)

// Registry is the process-wide adapter type cache, name-keyed like the
// composed type cache and never evicted. Composition of the same name is
// serialized; a cache hit returns unconditionally regardless of shape.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]*Type
	group    singleflight.Group
	log      *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards logs.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Registry{adapters: map[string]*Type{}, log: logger}
}

var defaultRegistry = NewRegistry(nil)

// DefaultRegistry returns the registry shared by the package-level entry
// points.
func DefaultRegistry() *Registry { return defaultRegistry }

// Compose synthesizes the named adapter type for one contract against
// the target type, or returns the cached one.
func (r *Registry) Compose(name string, contract *forge.Contract, target reflect.Type, policy Policy) (*Type, error) {
	if t, ok := r.Lookup(name); ok {
		return t, nil
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		if t, ok := r.Lookup(name); ok {
			return t, nil
		}

		t, err := resolve(name, contract, target, policy)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.adapters[name] = t
		r.mu.Unlock()

		r.log.Debug("composed adapter",
			"name", name,
			"contract", contract.Name,
			"target", target.String(),
			"policy", policy.String(),
		)

		return t, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Type), nil
}

// Lookup returns the cached adapter type for the name, if composed.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.adapters[name]

	return t, ok
}

// Names returns all composed adapter type names (sorted).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Compose composes on the default registry.
func Compose(name string, contract *forge.Contract, target reflect.Type, policy Policy) (*Type, error) {
	return defaultRegistry.Compose(name, contract, target, policy)
}

// resolve performs member-by-member resolution between the contract and
// the target type.
func resolve(name string, contract *forge.Contract, target reflect.Type, policy Policy) (*Type, error) {
	if contract == nil {
		return nil, &AdapterError{Adapter: name, Reason: "an adapter binds exactly one contract, got none"}
	}

	if target == nil {
		return nil, &AdapterError{Adapter: name, Reason: "no target type"}
	}

	nodes, err := contract.Flatten()
	if err != nil {
		return nil, &AdapterError{Adapter: name, Reason: err.Error()}
	}

	t := &Type{
		name:     name,
		contract: contract,
		target:   target,
		policy:   policy,
		methods:  map[string]*methodBinding{},
		props:    map[string]*propertyBinding{},
	}

	for _, n := range nodes {
		switch n.Kind {
		case member.KindMethod, member.KindEmptyMethod:
			mb, err := resolveMethod(name, n, target, policy)
			if err != nil {
				return nil, err
			}

			t.methods[n.Name] = mb

		case member.KindField, member.KindProperty:
			t.props[n.Name] = resolveProperty(n, target, policy)

		case member.KindEvent:
			// Plain Go targets have no event surface to forward to.
			return nil, &AdapterError{
				Adapter: name,
				Member:  n.Name,
				Reason:  "events cannot be forwarded to a plain Go target",
			}

		default:
			return nil, &AdapterError{
				Adapter: name,
				Member:  n.Name,
				Reason:  fmt.Sprintf("unsupported member kind %s", n.Kind),
			}
		}
	}

	return t, nil
}

// resolveMethod picks the best overload on the target by name and
// parameter-type compatibility. Go reflection exposes only the exported
// method set, so a method reachable solely through the access helper
// cannot occur here; an unresolved method falls to the missing-member
// policy.
func resolveMethod(adapterName string, n member.SchemaNode, target reflect.Type, policy Policy) (*methodBinding, error) {
	sig := n.Type
	if sig == nil || sig.Kind() != reflect.Func {
		return nil, &AdapterError{
			Adapter: adapterName,
			Member:  n.Name,
			Reason:  "contract operation needs a func type",
		}
	}

	if m, ok := reflectx.ResolveOverload(reflectx.MethodsNamed(target, n.Name), sig); ok {
		return &methodBinding{strategy: strategyDirect, method: m, sig: sig}, nil
	}

	if policy == Default {
		return &methodBinding{strategy: strategyStubDefault, sig: sig}, nil
	}

	return &methodBinding{strategy: strategyStubFail, sig: sig}, nil
}

// resolveProperty resolves the read and write paths independently: a
// directly reachable field or accessor method forwards; an unexported
// field routes through the access helper; an absent accessor falls to
// the missing-member policy.
func resolveProperty(n member.SchemaNode, target reflect.Type, policy Policy) *propertyBinding {
	return &propertyBinding{
		typ:   n.Type,
		read:  accessorOf(reflectx.ReadAccessor(target, n.Name, n.Type), policy),
		write: accessorOf(reflectx.WriteAccessor(target, n.Name, n.Type), policy),
	}
}

func accessorOf(acc reflectx.Accessor, policy Policy) accessorBinding {
	switch acc.Path {
	case reflectx.AccessField:
		return accessorBinding{strategy: strategyDirect, field: acc.Field}
	case reflectx.AccessMethod:
		return accessorBinding{strategy: strategyDirect, method: acc.Method, viaMethod: true}
	case reflectx.AccessHidden:
		return accessorBinding{strategy: strategyAccessor, field: acc.Field}
	default:
		if policy == Default {
			return accessorBinding{strategy: strategyStubDefault}
		}

		return accessorBinding{strategy: strategyStubFail}
	}
}
