package reduction

import "github.com/wardgrid/netreduce/netmodel"

const opApplyR2 = "ApplyR2"

// ApplyR2 deletes every candidate bus of degree exactly 2
// (no injection, per candidateBuses' filtering), and its two
// incident lines merge into a single line between its two neighbours with
// x_new = x1+x2 and element-wise intersected bounds mapped into the new
// line's canonical (ascending bus id) direction. If a line between the
// neighbours already exists, the merged line is folded into it via
// CombineParallel.
func ApplyR2(network *netmodel.Network, thermals *netmodel.ThermalFleet, candidates []int) ([]int, error) {
	var removed []int
	for _, b := range candidates {
		if network.Degree(b) != 2 {
			continue
		}
		lines := network.LinesIncident(b)
		if len(lines) != 2 {
			continue
		}
		l1, l2 := lines[0], lines[1]

		n1 := otherEndpoint(network, l1, b)
		n2 := otherEndpoint(network, l2, b)
		if n1 == n2 {
			return removed, reductionErrorf(opApplyR2, ErrDegenerateEndpoints)
		}

		from, to := n1, n2
		if from > to {
			from, to = to, from
		}

		s1 := orientedSnapshot(network, l1, from)
		s2 := orientedSnapshot(network, l2, from)
		merged := mergeSeries(s1, s2)

		if err := applyMerge(network, thermals, b, from, to, l2, merged); err != nil {
			return removed, reductionErrorf(opApplyR2, err)
		}
		removed = append(removed, b)
	}
	return removed, nil
}

func otherEndpoint(network *netmodel.Network, l, bus int) int {
	ft := network.LineFT[l]
	if ft.From == bus {
		return ft.To
	}
	return ft.From
}

// mergeSeries combines two lines already oriented so their from-bus is the
// new line's from-bus: x_new = x1+x2, bounds intersect
// element-wise, active_bounds ORs.
func mergeSeries(a, b LineSnapshot) LineSnapshot {
	t := len(a.UB)
	ub := make([]float64, t)
	lb := make([]float64, t)
	activeUBPerPeriod := make([]bool, t)
	activeLBPerPeriod := make([]bool, t)
	for i := 0; i < t; i++ {
		ub[i] = min(a.UB[i], b.UB[i])
		lb[i] = max(a.LB[i], b.LB[i])
		activeUBPerPeriod[i] = a.ActiveUBPerPeriod[i] || b.ActiveUBPerPeriod[i]
		activeLBPerPeriod[i] = a.ActiveLBPerPeriod[i] || b.ActiveLBPerPeriod[i]
	}
	return LineSnapshot{
		X:                 a.X + b.X,
		UB:                ub,
		LB:                lb,
		ActiveBounds:      a.ActiveBounds || b.ActiveBounds,
		ActiveUB:          a.ActiveUB || b.ActiveUB,
		ActiveLB:          a.ActiveLB || b.ActiveLB,
		ActiveUBPerPeriod: activeUBPerPeriod,
		ActiveLBPerPeriod: activeLBPerPeriod,
	}
}

// applyMerge deletes bus b's incident lines and installs the merged
// snapshot between from and to, reusing an id rather than minting a fresh
// one: if a parallel line already connects from and to, its own id is kept
// and its data overwritten with the parallel combination in place;
// otherwise the new line reuses reuseID, one of the two lines being
// deleted.
func applyMerge(network *netmodel.Network, thermals *netmodel.ThermalFleet, b, from, to, reuseID int, merged LineSnapshot) error {
	keepID := reuseID
	if existingID, found, reversed := lineBetweenEitherDirection(network, from, to); found {
		existingSnap := snapshotOf(network, existingID)
		if reversed {
			existingSnap = flipSnapshot(existingSnap)
		}
		merged = CombineParallel(existingSnap, merged)
		keepID = existingID
	}

	network.DeleteLines(network.LinesIncident(b))
	network.DeleteLines([]int{keepID})

	if err := network.AddLine(keepID, from, to, merged.X, merged.UB, merged.LB,
		merged.ActiveBounds, merged.ActiveUB, merged.ActiveLB,
		merged.ActiveUBPerPeriod, merged.ActiveLBPerPeriod); err != nil {
		return err
	}

	network.UpdateLoadAndNetwork(thermals, []int{b})
	return nil
}
