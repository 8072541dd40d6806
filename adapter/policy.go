package adapter

// Policy controls what a synthesized adapter does with contract members
// the target type does not support.
type Policy int

const (
	// Fail emits throwing stubs: invoking an unmapped member errors.
	Fail Policy = iota
	// Default emits default-returning stubs: invoking an unmapped member
	// yields the type-appropriate zero values.
	Default
)

// String returns a human-readable policy name.
func (p Policy) String() string {
	switch p {
	case Fail:
		return "fail"
	case Default:
		return "default"
	default:
		return "unknown"
	}
}

// strategy describes how one contract member is carried out against the
// wrapped target.
type strategy int

const (
	// strategyDirect forwards to the resolved target member.
	strategyDirect strategy = iota
	// strategyAccessor routes through the hidden-member access helper.
	strategyAccessor
	// strategyStubFail errors on invocation.
	strategyStubFail
	// strategyStubDefault returns zero values on invocation.
	strategyStubDefault
)

// String returns a human-readable strategy name.
func (s strategy) String() string {
	switch s {
	case strategyDirect:
		return "direct"
	case strategyAccessor:
		return "accessor"
	case strategyStubFail:
		return "stub_fail"
	case strategyStubDefault:
		return "stub_default"
	default:
		return "unknown"
	}
}
