package reflectx

import "reflect"

// Compatibility represents how well an argument type fits a parameter
// type. Higher is better.
type Compatibility int

const (
	// Incompatible means the value cannot be passed at all.
	Incompatible Compatibility = iota
	// Convertible means the value needs an explicit Go conversion.
	Convertible
	// Assignable means the value can be assigned directly (includes
	// interface satisfaction).
	Assignable
	// Identical means the types are exactly the same.
	Identical
)

// String returns a human-readable compatibility name.
func (c Compatibility) String() string {
	switch c {
	case Identical:
		return "identical"
	case Assignable:
		return "assignable"
	case Convertible:
		return "convertible"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// Score returns a numeric score for ranking (higher is better).
func (c Compatibility) Score() int {
	return int(c)
}

// ScoreType determines the compatibility between a source and a target
// type.
func ScoreType(source, target reflect.Type) Compatibility {
	switch {
	case source == target:
		return Identical
	case source.AssignableTo(target):
		return Assignable
	case source.ConvertibleTo(target):
		return Convertible
	default:
		return Incompatible
	}
}
