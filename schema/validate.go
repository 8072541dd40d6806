package schema

import "fmt"

// Validate checks the file for structural problems: unsupported version,
// duplicate or missing names, unknown member kinds, typeless data
// members.
func (f *File) Validate() error {
	if f.Version != "1" {
		return fmt.Errorf("unsupported definition version %q", f.Version)
	}

	typeNames := map[string]struct{}{}

	for i := range f.Types {
		td := &f.Types[i]

		if td.Name == "" {
			return fmt.Errorf("type %d has no name", i)
		}

		if _, dup := typeNames[td.Name]; dup {
			return fmt.Errorf("duplicate type %q", td.Name)
		}

		typeNames[td.Name] = struct{}{}

		if err := td.validate(); err != nil {
			return fmt.Errorf("type %q: %w", td.Name, err)
		}
	}

	return nil
}

func (td *TypeDef) validate() error {
	memberNames := map[string]struct{}{}

	for i := range td.Members {
		md := &td.Members[i]

		if md.Name == "" {
			return fmt.Errorf("member %d has no name", i)
		}

		if _, dup := memberNames[md.Name]; dup {
			return fmt.Errorf("duplicate member %q", md.Name)
		}

		memberNames[md.Name] = struct{}{}

		switch md.Kind {
		case "field", "property":
			if md.Type == "" {
				return fmt.Errorf("member %q has no type", md.Name)
			}
		case "event":
			if md.Type != "" {
				return fmt.Errorf("event %q takes no type", md.Name)
			}
		default:
			return fmt.Errorf("member %q has unknown kind %q", md.Name, md.Kind)
		}
	}

	return nil
}
