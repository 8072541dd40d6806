package forge

import (
	"fmt"
	"reflect"

	"typeforge/member"
)

// synthesize builds a new Type from the composition request. The caller
// (the registry) guarantees at most one synthesis runs per name.
//
// Member precedence on name collisions: explicit definitions win over
// inherited-abstract covers, which win over contract-derived members.
func synthesize(name string, nodes []member.SchemaNode, opts Options) (*Type, error) {
	t := &Type{
		name:   name,
		byName: map[string]*Member{},
		base:   opts.Base,
		flags:  opts.Flags,
	}

	// 1. Explicit members.
	for _, n := range nodes {
		if _, dup := t.byName[n.Name]; dup {
			return nil, &CompositionError{name, fmt.Sprintf("duplicate member %q", n.Name)}
		}

		m, err := newMember(name, n, OriginExplicit)
		if err != nil {
			return nil, err
		}

		t.add(m)
	}

	// 2. Base type: explicit members shadow inherited-abstract
	// candidates; every still-abstract base member gets a synthesized
	// virtual cover.
	if b := opts.Base; b != nil {
		if b.Sealed() {
			return nil, &CompositionError{name, fmt.Sprintf("base type %q is sealed", b.name)}
		}

		for _, bm := range b.members {
			if own, ok := t.byName[bm.Name]; ok {
				if !bm.Virtual && !bm.Abstract {
					return nil, &CompositionError{name, fmt.Sprintf(
						"member %q overrides a non-overridable member of %q", bm.Name, b.name)}
				}

				own.Virtual = true

				continue
			}

			if bm.Abstract {
				t.add(bm.cover())
				continue
			}

			t.add(bm.inherit())
		}
	}

	// 3. Capability contracts, transitively flattened. Missing contract
	// members are synthesized; the ChangeNotifier capability switches on
	// notification weaving instead of adding a trivial member.
	contractNodes, contracts, notify, err := flattenAll(opts.Contracts)
	if err != nil {
		return nil, &CompositionError{name, err.Error()}
	}

	t.contracts = contracts
	if notify {
		t.flags |= FlagNotify
	}

	for _, cn := range contractNodes {
		if _, ok := t.byName[cn.Name]; ok {
			continue // first occurrence wins
		}

		m, err := contractMember(name, cn)
		if err != nil {
			return nil, err
		}

		t.add(m)
	}

	// 4. Change-notification weaving.
	if t.Notifying() {
		if err := t.weave(); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// contractMember synthesizes the member satisfying one contract
// requirement: properties become storage-backed, operations become
// abstract fallbacks (no-ops returning zero values), events become
// handler lists.
func contractMember(typeName string, n member.SchemaNode) (*Member, error) {
	switch n.Kind {
	case member.KindMethod, member.KindEmptyMethod:
		if n.Type == nil || n.Type.Kind() != reflect.Func {
			return nil, &CompositionError{typeName, fmt.Sprintf(
				"contract operation %q needs a func type", n.Name)}
		}

		m := &Member{
			Name:     n.Name,
			Kind:     member.KindEmptyMethod,
			Type:     n.Type,
			Virtual:  true,
			Abstract: true,
			Origin:   OriginContract,
		}

		return m, nil

	default:
		m, err := newMember(typeName, n, OriginContract)
		if err != nil {
			return nil, err
		}

		return m, nil
	}
}
