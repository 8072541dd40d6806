package forge

import (
	"fmt"

	"typeforge/member"
)

// Contract is a named capability: the set of operations and properties a
// type must provide. Contracts may embed other contracts; flattening is
// transitive.
type Contract struct {
	// Name of the capability.
	Name string
	// Members the capability requires.
	Members []member.SchemaNode
	// Embeds are contracts whose requirements are unioned in.
	Embeds []*Contract
}

// ChangedEvent is the event raised by the woven notification operation.
// Handlers receive the changed property's name.
const ChangedEvent = "Changed"

// RaiseChanged is the single synthesized notification-raising operation.
// It is the sole invocation point for property-change announcements.
const RaiseChanged = "RaiseChanged"

// ChangeNotifier is the built-in notification capability. Composing a
// type with it among the contracts weaves change notification, exactly
// as the FlagNotify flag does.
var ChangeNotifier = &Contract{
	Name: "ChangeNotifier",
	Members: []member.SchemaNode{
		{Name: ChangedEvent, Kind: member.KindEvent},
	},
}

// Flatten returns the contract's transitive member requirements, embedded
// contracts unioned in, first occurrence of a name winning. Fails on
// embedding cycles.
func (c *Contract) Flatten() ([]member.SchemaNode, error) {
	var f flattener
	if err := f.visit(c); err != nil {
		return nil, err
	}

	return f.nodes, nil
}

// flattenAll unions several contracts into one member set, collects the
// transitive contract list, and reports whether the built-in
// ChangeNotifier capability is among them.
func flattenAll(contracts []*Contract) ([]member.SchemaNode, []*Contract, bool, error) {
	var f flattener

	for _, c := range contracts {
		if err := f.visit(c); err != nil {
			return nil, nil, false, err
		}
	}

	return f.nodes, f.list, f.notify, nil
}

// flattener walks a contract graph, tracking emitted names, finished
// contracts and the active path for cycle detection.
type flattener struct {
	nodes  []member.SchemaNode
	list   []*Contract
	seen   map[string]struct{}
	done   map[*Contract]struct{}
	path   map[*Contract]struct{}
	notify bool
}

func (f *flattener) visit(c *Contract) error {
	if c == nil {
		return nil
	}

	if f.seen == nil {
		f.seen = map[string]struct{}{}
		f.done = map[*Contract]struct{}{}
		f.path = map[*Contract]struct{}{}
	}

	if _, ok := f.done[c]; ok {
		return nil
	}

	if _, ok := f.path[c]; ok {
		return fmt.Errorf("contract cycle through %q", c.Name)
	}

	f.path[c] = struct{}{}

	if c == ChangeNotifier {
		f.notify = true
	}

	for _, n := range c.Members {
		if _, dup := f.seen[n.Name]; dup {
			continue
		}

		f.seen[n.Name] = struct{}{}
		f.nodes = append(f.nodes, n)
	}

	for _, e := range c.Embeds {
		if err := f.visit(e); err != nil {
			return err
		}
	}

	delete(f.path, c)
	f.done[c] = struct{}{}
	f.list = append(f.list, c)

	return nil
}
