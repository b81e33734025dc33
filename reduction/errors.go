package reduction

import (
	"errors"
	"fmt"
)

// Sentinel errors for fatal reduction failures. Refused
// reductions (a rule declining to act because its preconditions do not
// hold) are not errors: the rule-level functions return (false, nil).
var (
	// ErrTopologyViolation indicates more than one line was found between
	// the same ordered endpoint pair where a rule assumed uniqueness,
	// revealing a prior invariant breach.
	ErrTopologyViolation = errors.New("reduction: more than one line between the same buses")

	// ErrDegenerateEndpoints indicates a merged line would have equal
	// endpoints.
	ErrDegenerateEndpoints = errors.New("reduction: merged line would have equal endpoints")

	// ErrEmptyNetwork indicates the network has no lines left after a
	// reduction pass; callers should switch to the SINGLE_BUS model or
	// disable reduction.
	ErrEmptyNetwork = errors.New("reduction: network has no lines left after reduction; " +
		"switch to the single-bus model or disable reduction")

	// ErrNonBindingPrecondition indicates R4 was invoked on a bus whose two
	// incident lines are both non-binding; the caller should have filtered
	// this bus out of the candidate set.
	ErrNonBindingPrecondition = errors.New("reduction: R4 invoked with no binding incident line")
)

func reductionErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
