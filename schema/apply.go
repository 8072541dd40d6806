package schema

import (
	"fmt"
	"reflect"
	"time"

	"typeforge/forge"
	"typeforge/member"
)

// TypeTable maps definition-file type names to Go types.
type TypeTable map[string]reflect.Type

// DefaultTypes returns the built-in type table.
func DefaultTypes() TypeTable {
	return TypeTable{
		"any":      reflect.TypeOf((*any)(nil)).Elem(),
		"bool":     reflect.TypeOf(false),
		"bytes":    reflect.TypeOf([]byte(nil)),
		"duration": reflect.TypeOf(time.Duration(0)),
		"float64":  reflect.TypeOf(float64(0)),
		"int":      reflect.TypeOf(int(0)),
		"int64":    reflect.TypeOf(int64(0)),
		"string":   reflect.TypeOf(""),
		"time":     reflect.TypeOf(time.Time{}),
	}
}

// Apply composes every type in the file onto the registry, in file
// order: later entries may name earlier ones (or types already in the
// registry) as their base. A nil type table means DefaultTypes; contract
// names resolve through contracts, with forge.ChangeNotifier always
// available.
func (f *File) Apply(reg *forge.Registry, types TypeTable, contracts map[string]*forge.Contract) ([]*forge.Type, error) {
	if types == nil {
		types = DefaultTypes()
	}

	out := make([]*forge.Type, 0, len(f.Types))

	for i := range f.Types {
		t, err := applyType(reg, &f.Types[i], types, contracts)
		if err != nil {
			return nil, err
		}

		out = append(out, t)
	}

	return out, nil
}

func applyType(reg *forge.Registry, td *TypeDef, types TypeTable, contracts map[string]*forge.Contract) (*forge.Type, error) {
	nodes := make([]member.SchemaNode, 0, len(td.Members))

	for i := range td.Members {
		node, err := schemaNode(&td.Members[i], types)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", td.Name, err)
		}

		nodes = append(nodes, node)
	}

	opts := forge.Options{Flags: flagsOf(td)}

	if td.Base != "" {
		base, ok := reg.Lookup(td.Base)
		if !ok {
			return nil, fmt.Errorf("type %q: base %q is not composed", td.Name, td.Base)
		}

		opts.Base = base
	}

	for _, cn := range td.Contracts {
		c, err := contractNamed(cn, contracts)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", td.Name, err)
		}

		opts.Contracts = append(opts.Contracts, c)
	}

	return reg.Compose(td.Name, nodes, opts)
}

func schemaNode(md *MemberDef, types TypeTable) (member.SchemaNode, error) {
	node := member.SchemaNode{Name: md.Name, Virtual: md.Virtual}

	switch md.Kind {
	case "field":
		node.Kind = member.KindField
	case "property":
		node.Kind = member.KindProperty
	case "event":
		node.Kind = member.KindEvent
		return node, nil
	default:
		return node, fmt.Errorf("member %q has unknown kind %q", md.Name, md.Kind)
	}

	typ, ok := types[md.Type]
	if !ok {
		return node, fmt.Errorf("member %q: unknown type %q", md.Name, md.Type)
	}

	node.Type = typ

	return node, nil
}

func flagsOf(td *TypeDef) forge.Flag {
	flags := forge.FlagNone

	if td.Sealed {
		flags |= forge.FlagSealed
	}

	if td.Serializable {
		flags |= forge.FlagSerializable
	}

	if td.Notify {
		flags |= forge.FlagNotify
	}

	return flags
}

func contractNamed(name string, contracts map[string]*forge.Contract) (*forge.Contract, error) {
	if name == forge.ChangeNotifier.Name {
		return forge.ChangeNotifier, nil
	}

	if c, ok := contracts[name]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("unknown contract %q", name)
}
