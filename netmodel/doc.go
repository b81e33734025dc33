// Package netmodel defines the Network and ThermalFleet value objects that
// the reduction engine mutates in place, along with the mutation primitives
// and invariant checks that keep them internally consistent.
//
// Network holds the bus/line topology of a DC-linearized transmission grid:
// ordered bus identifiers, line endpoints and reactances, per-line signed
// flow bounds over a time horizon, "active bound" flags that mark which
// line limits may bind downstream, adjacency maps, a dense net-load matrix,
// and time-indexed security constraints synthesized by the reduction
// engine. ThermalFleet holds controllable thermal units, the buses each
// unit injects at, and its per-bus participation coefficients.
//
// Unlike the concurrent, mutex-protected Graph of a general-purpose graph
// library, Network and ThermalFleet carry no internal locking: this
// engine's concurrency model is single-threaded and single-owner for the
// duration of a reduction pass. Callers that need to preserve a pristine copy
// before reducing should call Clone.
package netmodel

import (
	"errors"
	"fmt"
)

// Sentinel errors for netmodel operations. The exported mutators that can
// fail (AddBus, AddLine) return one of these, as does Validate, (optionally wrapped with fmt.Errorf("%s: %w", op, err)) so
// callers can match with errors.Is.
var (
	// ErrUnknownBus indicates a referenced bus id is not present in BusID.
	ErrUnknownBus = errors.New("netmodel: unknown bus")

	// ErrUnknownLine indicates a referenced line id is not present in LineID.
	ErrUnknownLine = errors.New("netmodel: unknown line")

	// ErrDuplicateLine indicates an attempt to register a line id twice.
	ErrDuplicateLine = errors.New("netmodel: duplicate line id")

	// ErrDuplicateBus indicates an attempt to register a bus id twice.
	ErrDuplicateBus = errors.New("netmodel: duplicate bus id")

	// ErrSelfLoop indicates a line whose from-bus and to-bus coincide.
	ErrSelfLoop = errors.New("netmodel: line endpoints coincide")

	// ErrNonPositiveReactance indicates a line reactance that is not > 0.
	ErrNonPositiveReactance = errors.New("netmodel: reactance must be positive")

	// ErrParallelLines indicates more than one line between the same
	// ordered endpoint pair where the caller assumed uniqueness.
	ErrParallelLines = errors.New("netmodel: more than one line between the same buses")

	// ErrEmptyNetwork indicates the network has no lines left after a
	// mutation that is required to preserve at least one.
	ErrEmptyNetwork = errors.New("netmodel: network has no lines left")

	// ErrNoReferenceBus indicates RefBuses is empty while BusID is not.
	ErrNoReferenceBus = errors.New("netmodel: no reference bus")
)

// netmodelErrorf wraps an underlying sentinel with the operation that
// produced it, in the style of the reference matrixErrorf/validatorErrorf
// helpers: %w keeps errors.Is working for callers matching on sentinels.
func netmodelErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
