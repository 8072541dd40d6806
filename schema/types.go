// Package schema loads declarative composed-type definitions from YAML
// files and applies them onto a forge registry. Definition files declare
// data members (fields, properties, events); operations carry code and
// are supplied programmatically.
package schema

// File is a parsed type definition file.
type File struct {
	// Version of the definition format.
	Version string `yaml:"version"`
	// Types to compose, in order. Later entries may name earlier ones as
	// their base.
	Types []TypeDef `yaml:"types"`
}

// TypeDef declares one composed type.
type TypeDef struct {
	// Name of the type, unique per registry.
	Name string `yaml:"name"`
	// Base names a previously composed type to inherit from.
	Base string `yaml:"base,omitempty"`
	// Contracts names the capability contracts to satisfy. The built-in
	// ChangeNotifier is always resolvable.
	Contracts []string `yaml:"contracts,omitempty"`
	// Sealed forbids use as a base type.
	Sealed bool `yaml:"sealed,omitempty"`
	// Serializable lets instances marshal to JSON.
	Serializable bool `yaml:"serializable,omitempty"`
	// Notify weaves change notification into property writes.
	Notify bool `yaml:"notify,omitempty"`
	// Members of the type.
	Members []MemberDef `yaml:"members"`
}

// MemberDef declares one member.
type MemberDef struct {
	// Name of the member.
	Name string `yaml:"name"`
	// Kind is field, property, or event. Empty defaults to property.
	Kind string `yaml:"kind,omitempty"`
	// Type names the member's value type in the type table. Events take
	// no type.
	Type string `yaml:"type,omitempty"`
	// Virtual marks the member overridable by derived types.
	Virtual bool `yaml:"virtual,omitempty"`
}
