package reduction

import (
	"fmt"
	"math"
	"sort"

	"github.com/wardgrid/netreduce/netmodel"
)

// unboundedThreshold reports whether a signed flow bound is effectively
// unbounded: its magnitude meets MaxFlow. Params.PowerBase is not applied.
func unboundedThreshold(v float64) bool {
	return math.Abs(v) >= MaxFlow
}

// ApplyR3 eliminates every degree-1 bus not in RefBuses. If its single
// line is not flagged active-bound, or is unbounded, or the bus's worst-case net injection over time
// stays within the line's bounds, the injection simply moves to the
// neighbour with coefficient 1. Otherwise an artificial security
// constraint is synthesized for every period before eliminating the bus.
// Runs to a fixed point against its own recomputed candidate set.
func ApplyR3(network *netmodel.Network, thermals *netmodel.ThermalFleet) ([]int, error) {
	var removed []int
	for {
		progressed := false
		for _, b := range snapshotCandidateOrder(network) {
			if !network.HasBus(b) {
				continue
			}
			if _, isRef := network.RefBuses[b]; isRef {
				continue
			}
			if network.Degree(b) != 1 {
				continue
			}

			lines := network.LinesIncident(b)
			l := lines[0]
			if err := eliminateR3(network, thermals, b, l); err != nil {
				return removed, reductionErrorf("ApplyR3", err)
			}
			removed = append(removed, b)
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return removed, nil
}

func eliminateR3(network *netmodel.Network, thermals *netmodel.ThermalFleet, bus, l int) error {
	ft := network.LineFT[l]
	neighbour := ft.From
	if neighbour == bus {
		neighbour = ft.To
	}
	flipped := ft.To == bus

	if !lineIsAdmissibleForR3(network, thermals, bus, l) {
		synthesizeSecurityConstraint(network, thermals, bus, l, flipped)
	}

	network.DeleteLines([]int{l})
	netmodel.ReassignInjections(network, thermals, bus, neighbour, 1)
	network.UpdateLoadAndNetwork(thermals, []int{bus})
	return nil
}

// lineIsAdmissibleForR3 reports whether bus's injection can be moved to its
// neighbour without a security constraint: the line is not flagged
// active-bound, or it is unbounded, or the
// bus's worst-case net injection (net load plus generation capacity) over
// the whole scheduling horizon stays within the line's tightest flow bound
// over that same horizon. The comparison is a single scalar test against
// min(UB)/max(LB) across all periods, not a per-period one: a bus whose
// load is low in some periods and high in others can still need a
// constraint even if no single period's load exceeds that period's bound.
func lineIsAdmissibleForR3(network *netmodel.Network, thermals *netmodel.ThermalFleet, bus, l int) bool {
	if !network.ActiveBounds[l] {
		return true
	}

	ub := network.LineFlowUB[l]
	lb := network.LineFlowLB[l]
	minUB, maxLB := ub[0], lb[0]
	for t := 1; t < len(ub); t++ {
		if ub[t] < minUB {
			minUB = ub[t]
		}
		if lb[t] > maxLB {
			maxLB = lb[t]
		}
	}
	if unboundedThreshold(minUB) && unboundedThreshold(maxLB) {
		return true
	}
	limit := math.Min(minUB, -maxLB)

	row := network.BusHeader[bus]
	netLoad := network.NetLoad[row]
	minLoad, maxLoad := netLoad[0], netLoad[0]
	for _, v := range netLoad[1:] {
		if v < minLoad {
			minLoad = v
		}
		if v > maxLoad {
			maxLoad = v
		}
	}

	maxGen := 0.0
	for _, g := range netmodel.UnitsAtBus(thermals, bus) {
		maxGen += thermals.MaxP[g] * thermals.BusCoeff[g][bus]
	}

	return math.Abs(maxLoad) <= limit && math.Abs(maxGen-minLoad) <= limit
}

// synthesizeSecurityConstraint attaches artificial security
// constraint for every period, mirroring the eliminated line's flow bound.
// flipped indicates bus was the to-endpoint of l, in which case the bound
// sign is inverted to stay in the bus's own net-injection sign convention.
func synthesizeSecurityConstraint(network *netmodel.Network, thermals *netmodel.ThermalFleet, bus, l int, flipped bool) {
	row := network.BusHeader[bus]
	ub := network.LineFlowUB[l]
	lb := network.LineFlowLB[l]

	units := netmodel.UnitsAtBus(thermals, bus)
	factors := make(map[int]float64, len(units))
	for _, g := range units {
		factors[g] = thermals.BusCoeff[g][bus]
	}
	participants := &netmodel.SecurityConstraintParticipants{
		Thermals:       append([]int(nil), units...),
		ThermalFactors: factors,
	}

	name := fmt.Sprintf("r3_bus_%d_line_%d", bus, l)
	for t := 0; t < network.Horizon(); t++ {
		upper, lower := ub[t], lb[t]
		if flipped {
			upper, lower = -lb[t], -ub[t]
		}
		if network.SecConstrs[t] == nil {
			network.SecConstrs[t] = make(map[string]*netmodel.SecurityConstraint)
		}
		network.SecConstrs[t][name] = &netmodel.SecurityConstraint{
			Name:         name,
			NetLoad:      network.NetLoad[row][t],
			UB:           upper,
			LB:           lower,
			Participants: participants,
		}
	}
}

// snapshotCandidateOrder returns the current bus ids in ascending order;
// ApplyR3/R4 recompute this between sweeps since eliminations change degree
// as they go.
func snapshotCandidateOrder(network *netmodel.Network) []int {
	out := append([]int(nil), network.BusID...)
	sort.Ints(out)
	return out
}
