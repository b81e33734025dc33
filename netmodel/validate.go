package netmodel

import "fmt"

// Validate checks invariants P1-P5 (P6 is a cross-snapshot
// property that Validate does not check; ActiveLineCount is the helper for
// comparing snapshots). It
// returns the first violation found, wrapped with context; nil if the
// network and thermal fleet are internally consistent.
func Validate(n *Network, t *ThermalFleet) error {
	// P1: every line has distinct, surviving endpoints and positive reactance.
	for _, l := range n.LineID {
		ft, ok := n.LineFT[l]
		if !ok {
			return fmt.Errorf("netmodel: Validate: line %d has no endpoints", l)
		}
		if ft.From == ft.To {
			return fmt.Errorf("netmodel: Validate: line %d: %w", l, ErrSelfLoop)
		}
		if !n.HasBus(ft.From) || !n.HasBus(ft.To) {
			return fmt.Errorf("netmodel: Validate: line %d: %w", l, ErrUnknownBus)
		}
		if n.LineX[l] <= 0 {
			return fmt.Errorf("netmodel: Validate: line %d: %w", l, ErrNonPositiveReactance)
		}
	}

	// P2: BusHeader mirrors position in BusID.
	for i, b := range n.BusID {
		if n.BusHeader[b] != i {
			return fmt.Errorf("netmodel: Validate: bus %d: header %d != index %d",
				b, n.BusHeader[b], i)
		}
	}

	// P3: NetLoad has one row per surviving bus.
	if len(n.NetLoad) != len(n.BusID) {
		return fmt.Errorf("netmodel: Validate: net load has %d rows, want %d",
			len(n.NetLoad), len(n.BusID))
	}

	// P4: thermal participation only references surviving buses, and
	// BusCoeff's key set matches Bus's element set for every unit.
	if t != nil {
		for _, g := range t.Units {
			for _, b := range t.Bus[g] {
				if !n.HasBus(b) {
					return fmt.Errorf("netmodel: Validate: unit %d: %w", g, ErrUnknownBus)
				}
				if _, ok := t.BusCoeff[g][b]; !ok {
					return fmt.Errorf("netmodel: Validate: unit %d: missing coeff for bus %d", g, b)
				}
			}
			if len(t.BusCoeff[g]) != len(t.Bus[g]) {
				return fmt.Errorf("netmodel: Validate: unit %d: bus/coeff key-set mismatch", g)
			}
		}
	}

	// P5: RefBuses subset of BusID, non-empty iff BusID non-empty.
	for b := range n.RefBuses {
		if !n.HasBus(b) {
			return fmt.Errorf("netmodel: Validate: reference bus %d: %w", b, ErrUnknownBus)
		}
	}
	if len(n.BusID) > 0 && len(n.RefBuses) == 0 {
		return fmt.Errorf("netmodel: Validate: %w", ErrNoReferenceBus)
	}

	return nil
}

// ActiveLineCount returns the number of lines whose ActiveBounds flag is
// set. Used by callers checking the monotone-loss property P6 across
// successive reduction snapshots.
func (n *Network) ActiveLineCount() int {
	count := 0
	for _, l := range n.LineID {
		if n.ActiveBounds[l] {
			count++
		}
	}
	return count
}
