package reduction

import "github.com/wardgrid/netreduce/netmodel"

const maxR4InnerIterations = 10

// ApplyR4 eliminates a degree-2, non-reference, non-generator
// bus with exactly one binding incident line (active_bounds = true) and one
// free line is eliminated, transferring its net load to both neighbours
// through a power-transfer factor computed from the reactance of the line
// that connects to the lower-id neighbour, and shifting the retained
// line's flow bounds so the merged branch reproduces the binding line's
// original flow. Runs up to 10 inner iterations against its own recomputed
// candidate set.
func ApplyR4(network *netmodel.Network, thermals *netmodel.ThermalFleet) ([]int, error) {
	var removed []int
	genBuses := network.GetGenBuses(thermals)

	for it := 0; it < maxR4InnerIterations; it++ {
		progressed := false
		for _, b := range snapshotCandidateOrder(network) {
			if !network.HasBus(b) {
				continue
			}
			if _, isRef := network.RefBuses[b]; isRef {
				continue
			}
			if _, isGen := genBuses[b]; isGen {
				continue
			}
			if network.Degree(b) != 2 {
				continue
			}

			ok, err := tryEliminateR4(network, thermals, b)
			if err != nil {
				return removed, reductionErrorf("ApplyR4", err)
			}
			if ok {
				removed = append(removed, b)
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return removed, nil
}

// tryEliminateR4 eliminates bus if its two incident lines have exactly one
// binding side. line1 is whichever of the two lines touches the lower-id
// neighbour; it is always the one kept, under its own id, regardless of
// which of the two lines is binding.
func tryEliminateR4(network *netmodel.Network, thermals *netmodel.ThermalFleet, bus int) (bool, error) {
	lines := network.LinesIncident(bus)
	if len(lines) != 2 {
		return false, nil
	}
	la, lb := lines[0], lines[1]
	na := otherEndpoint(network, la, bus)
	nb := otherEndpoint(network, lb, bus)
	if na == nb {
		return false, reductionErrorf("ApplyR4", ErrDegenerateEndpoints)
	}

	bos0, bos1 := na, nb
	line1, line2 := la, lb
	if na > nb {
		bos0, bos1 = nb, na
		line1, line2 = lb, la
	}

	active1 := network.ActiveBounds[line1]
	active2 := network.ActiveBounds[line2]
	if active1 == active2 {
		// both binding, or both free: no single line to anchor pf on.
		return false, nil
	}
	if len(netmodel.UnitsAtBus(thermals, bus)) > 0 {
		return false, nil
	}

	x1, x2 := network.LineX[line1], network.LineX[line2]
	xKeep := x1
	pf := -(1 / xKeep) / (1/x1 + 1/x2)
	coeff0 := -pf
	coeff1 := 1 + pf

	row := network.BusHeader[bus]
	horizon := network.Horizon()
	netLoadRow := append([]float64(nil), network.NetLoad[row]...)
	additionToCap := make([]float64, horizon)
	if active1 {
		for t := 0; t < horizon; t++ {
			additionToCap[t] = coeff0 * netLoadRow[t]
		}
	} else {
		for t := 0; t < horizon; t++ {
			additionToCap[t] = coeff1 * netLoadRow[t]
		}
	}

	merged := buildR4RetainedSnapshot(network, line1, line2, active1, bos0, bos1, x1+x2, additionToCap)

	netmodel.ReassignInjections(network, thermals, bus, bos0, coeff0)
	netmodel.ReassignInjections(network, thermals, bus, bos1, coeff1)

	existingID, found, reversed := lineBetweenEitherDirection(network, bos0, bos1)
	if found {
		existingSnap := snapshotOf(network, existingID)
		if reversed {
			existingSnap = flipSnapshot(existingSnap)
		}
		merged = CombineParallel(existingSnap, merged)
		network.DeleteLines([]int{existingID})
	}

	network.DeleteLines([]int{line2})
	network.DeleteLines([]int{line1})

	if err := network.AddLine(line1, bos0, bos1, merged.X, merged.UB, merged.LB,
		merged.ActiveBounds, merged.ActiveUB, merged.ActiveLB,
		merged.ActiveUBPerPeriod, merged.ActiveLBPerPeriod); err != nil {
		return false, err
	}

	network.UpdateLoadAndNetwork(thermals, []int{bus})
	return true, nil
}

// buildR4RetainedSnapshot applies the sign table for the retained branch.
// When line1 (the line being kept) is the binding one, its own bounds shift by
// -additionToCap, flipped if line1's stored direction runs into bos0 rather
// than out of it. When line2 (the line being deleted) is binding instead,
// its bounds are copied onto the retained line and shift by
// +additionToCap, flipped the same way relative to bos1.
func buildR4RetainedSnapshot(network *netmodel.Network, line1, line2 int, active1 bool, bos0, bos1 int, xNew float64, additionToCap []float64) LineSnapshot {
	t := len(additionToCap)
	ub := make([]float64, t)
	lb := make([]float64, t)

	if active1 {
		s := snapshotOf(network, line1)
		ft := network.LineFT[line1]
		if bos0 == ft.From {
			for i := 0; i < t; i++ {
				ub[i] = s.UB[i] - additionToCap[i]
				lb[i] = s.LB[i] - additionToCap[i]
			}
			return LineSnapshot{
				X: xNew, UB: ub, LB: lb, ActiveBounds: true,
				ActiveUB: s.ActiveUB, ActiveLB: s.ActiveLB,
				ActiveUBPerPeriod: s.ActiveUBPerPeriod, ActiveLBPerPeriod: s.ActiveLBPerPeriod,
			}
		}
		for i := 0; i < t; i++ {
			ub[i] = -s.LB[i] - additionToCap[i]
			lb[i] = -s.UB[i] - additionToCap[i]
		}
		return LineSnapshot{
			X: xNew, UB: ub, LB: lb, ActiveBounds: true,
			ActiveUB: s.ActiveLB, ActiveLB: s.ActiveUB,
			ActiveUBPerPeriod: s.ActiveLBPerPeriod, ActiveLBPerPeriod: s.ActiveUBPerPeriod,
		}
	}

	s := snapshotOf(network, line2)
	ft := network.LineFT[line2]
	if bos1 == ft.To {
		for i := 0; i < t; i++ {
			ub[i] = s.UB[i] + additionToCap[i]
			lb[i] = s.LB[i] + additionToCap[i]
		}
		return LineSnapshot{
			X: xNew, UB: ub, LB: lb, ActiveBounds: true,
			ActiveUB: s.ActiveUB, ActiveLB: s.ActiveLB,
			ActiveUBPerPeriod: s.ActiveUBPerPeriod, ActiveLBPerPeriod: s.ActiveLBPerPeriod,
		}
	}
	for i := 0; i < t; i++ {
		ub[i] = -s.LB[i] + additionToCap[i]
		lb[i] = -s.UB[i] + additionToCap[i]
	}
	return LineSnapshot{
		X: xNew, UB: ub, LB: lb, ActiveBounds: true,
		ActiveUB: s.ActiveLB, ActiveLB: s.ActiveUB,
		ActiveUBPerPeriod: s.ActiveLBPerPeriod, ActiveLBPerPeriod: s.ActiveUBPerPeriod,
	}
}
