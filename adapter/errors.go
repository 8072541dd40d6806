package adapter

import (
	"errors"
	"fmt"
)

// ErrNilTarget is returned when wrapping an absent instance.
var ErrNilTarget = errors.New("adapter: nil wrapped instance")

// AdapterError reports a contract member the adapter cannot carry out,
// either at composition time or, for throwing stubs, at invocation time.
type AdapterError struct {
	// Adapter name.
	Adapter string
	// Member of the contract, empty for type-level failures.
	Member string
	// Reason in human-readable form.
	Reason string
}

func (e *AdapterError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("adapter %q: %s", e.Adapter, e.Reason)
	}

	return fmt.Sprintf("adapter %q: member %q: %s", e.Adapter, e.Member, e.Reason)
}
