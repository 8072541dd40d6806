package member

// Kind classifies a member of a composed type. It is a closed set: the
// engine never dispatches on open-ended reflection at this boundary.
type Kind int

//go:generate go tool stringer -type=Kind -trimprefix=Kind

const (
	// KindUnknown marks a value node whose target member is resolved at
	// assignment time (property preferred, field fallback).
	KindUnknown Kind = iota
	// KindField is plain named storage.
	KindField
	// KindProperty is accessor-mediated storage.
	KindProperty
	// KindMethod is an operation with a supplied body.
	KindMethod
	// KindEmptyMethod is an abstract operation without a body.
	KindEmptyMethod
	// KindEvent is a named handler list raised by the instance.
	KindEvent

	// KindTotal is the number of kinds defined.
	KindTotal = int(iota)
)
