package forge

import (
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"typeforge/member"
)

// Registry is a process-wide composed type cache. Types live for the
// registry's lifetime and are never evicted; tests should use distinct
// names per case or a fresh registry.
//
// Composition for the same uncomposed name is serialized: exactly one
// synthesis runs, concurrent callers block and then observe the cached
// result. Requests for different names never block each other.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
	group singleflight.Group
	log   *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards logs.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Registry{types: map[string]*Type{}, log: logger}
}

var defaultRegistry = NewRegistry(nil)

// Default returns the registry shared by the package-level entry points.
// It is created at process start and never reset.
func Default() *Registry { return defaultRegistry }

// Compose synthesizes the named type, or returns the cached one. A cache
// hit returns unconditionally: names are not content-addressed, so a
// differently-shaped request for an existing name has no effect on the
// cached type.
func (r *Registry) Compose(name string, nodes []member.SchemaNode, opts Options) (*Type, error) {
	if t, ok := r.Lookup(name); ok {
		return t, nil
	}

	v, err, _ := r.group.Do(name, func() (any, error) {
		if t, ok := r.Lookup(name); ok {
			return t, nil
		}

		t, err := synthesize(name, nodes, opts)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.types[name] = t
		r.mu.Unlock()

		r.log.Debug("composed type",
			"name", name,
			"members", len(t.members),
			"notifying", t.Notifying(),
		)

		return t, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Type), nil
}

// Construct creates and populates an instance of a previously composed
// type. Value nodes are applied in order but must be order-independent.
func (r *Registry) Construct(name string, values []member.ValueNode) (*Instance, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return nil, &UnknownTypeError{Name: name, Known: r.Names()}
	}

	in := t.New()

	for _, v := range values {
		if err := in.assign(v); err != nil {
			return nil, err
		}
	}

	return in, nil
}

// Lookup returns the cached type for the name, if composed.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]

	return t, ok
}

// Names returns all composed type names (sorted).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Compose composes on the default registry.
func Compose(name string, nodes []member.SchemaNode, opts Options) (*Type, error) {
	return defaultRegistry.Compose(name, nodes, opts)
}

// Construct constructs on the default registry.
func Construct(name string, values []member.ValueNode) (*Instance, error) {
	return defaultRegistry.Construct(name, values)
}
