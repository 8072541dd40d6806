// Package forge synthesizes composite types at runtime from declarative
// member lists and constructs populated instances of them by name.
//
// Go has no runtime code emission, so a composed type is an interpreted
// record: a Type descriptor drives a generic Instance whose member access
// is resolved through the descriptor. Construct-by-name and
// at-most-once-compose hold regardless of that mechanism.
package forge

// Flag is a bitmask of composition options.
type Flag int

const (
	FlagSealed       Flag = 1 << iota // type cannot serve as a base type
	FlagSerializable                  // instances marshal to JSON
	FlagNotify                        // weave change notification into property writes

	FlagAll  Flag = (1 << iota) - 1 // all flags combined
	FlagNone Flag = 0               // no flags selected
)

// Options are the optional inputs of a composition request.
type Options struct {
	// Base is a previously composed type to inherit members from.
	Base *Type
	// Contracts are the capability contracts the type must satisfy.
	// They are flattened transitively; missing contract properties are
	// synthesized.
	Contracts []*Contract
	// Flags select sealing, serializability and change notification.
	Flags Flag
}

// Type is a composed type descriptor. Identity is the name: a registry
// holds at most one type per name, and re-composing an existing name
// returns the cached type unconditionally.
type Type struct {
	name      string
	members   []*Member
	byName    map[string]*Member
	base      *Type
	contracts []*Contract
	flags     Flag
}

// Name returns the type's unique name.
func (t *Type) Name() string { return t.name }

// Base returns the base type, or nil.
func (t *Type) Base() *Type { return t.base }

// Sealed reports whether the type may not serve as a base type.
func (t *Type) Sealed() bool { return t.flags&FlagSealed != 0 }

// Serializable reports whether instances marshal to JSON.
func (t *Type) Serializable() bool { return t.flags&FlagSerializable != 0 }

// Notifying reports whether change notification is woven into property
// writes.
func (t *Type) Notifying() bool { return t.flags&FlagNotify != 0 }

// Member returns the named member, if any.
func (t *Type) Member(name string) (*Member, bool) {
	m, ok := t.byName[name]
	return m, ok
}

// Members returns the members in declaration order.
func (t *Type) Members() []*Member {
	out := make([]*Member, len(t.members))
	copy(out, t.members)

	return out
}

// Contracts returns the contracts the type was composed with, flattened
// transitively.
func (t *Type) Contracts() []*Contract {
	out := make([]*Contract, len(t.contracts))
	copy(out, t.contracts)

	return out
}

func (t *Type) add(m *Member) {
	t.members = append(t.members, m)
	t.byName[m.Name] = m
}

// New allocates a default instance of the type. Members read as their
// zero values until assigned.
func (t *Type) New() *Instance {
	return &Instance{
		typ:      t,
		storage:  map[string]any{},
		handlers: map[string][]Handler{},
	}
}
