package reduction

import (
	"sort"

	"github.com/wardgrid/netreduce/netmodel"
)

// ApplyR5 runs the general n-connection Kron rule as the
// driver's last pass per iteration: candidates (degree > 0, ascending
// degree, capped at maxConnections) are eliminated via KronEliminate unless
// the density refusal rule fires (more than one fresh edge after
// discounting existing parallels, on a bus with more than 5 incident
// lines).
func ApplyR5(network *netmodel.Network, thermals *netmodel.ThermalFleet, maxConnections int) ([]int, error) {
	var removed []int
	for {
		b, ok := nextR5Candidate(network, thermals, maxConnections)
		if !ok {
			break
		}
		if err := KronEliminate(network, thermals, b); err != nil {
			return removed, reductionErrorf("ApplyR5", err)
		}
		removed = append(removed, b)
	}
	return removed, nil
}

// nextR5Candidate picks the lowest-degree eligible bus (ascending bus id to
// break ties) whose Kron elimination is not refused by the density rule.
// Unlike R1/R2, R5 considers every bus (including generator and load
// buses): it is the general fallback for any coupling R1-R4 left behind.
// Buses touching a line with ActiveBounds==true are never candidates,
// since KronEliminate has no way to carry that flag onto the synthesized
// clique of replacement lines.
func nextR5Candidate(network *netmodel.Network, thermals *netmodel.ThermalFleet, maxConnections int) (int, bool) {
	cannotDelete := busesTouchingActiveBoundLine(network)

	candidates := append([]int(nil), network.BusID...)
	sort.Ints(candidates)

	best := -1
	bestDegree := -1
	for _, b := range candidates {
		if _, excluded := cannotDelete[b]; excluded {
			continue
		}
		deg := network.Degree(b)
		if deg == 0 || deg > maxConnections {
			continue
		}
		if densityRefusesKron(network, b) {
			continue
		}
		if best == -1 || deg < bestDegree {
			best = b
			bestDegree = deg
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// busesTouchingActiveBoundLine returns every bus that is an endpoint of at
// least one line with ActiveBounds==true.
func busesTouchingActiveBoundLine(network *netmodel.Network) map[int]struct{} {
	out := make(map[int]struct{})
	for _, l := range network.LineID {
		if !network.ActiveBounds[l] {
			continue
		}
		ft := network.LineFT[l]
		out[ft.From] = struct{}{}
		out[ft.To] = struct{}{}
	}
	return out
}

// densityRefusesKron reports the density refusal rule: skip when the
// bus has more than 5 incident lines AND eliminating it would introduce
// more than one fresh edge once existing parallels are discounted.
func densityRefusesKron(network *netmodel.Network, bus int) bool {
	if network.Degree(bus) <= 5 {
		return false
	}

	lines := network.LinesIncident(bus)
	neighbourSet := make(map[int]struct{}, len(lines))
	for _, l := range lines {
		ft := network.LineFT[l]
		if ft.From != bus {
			neighbourSet[ft.From] = struct{}{}
		}
		if ft.To != bus {
			neighbourSet[ft.To] = struct{}{}
		}
	}
	neighbours := make([]int, 0, len(neighbourSet))
	for n := range neighbourSet {
		neighbours = append(neighbours, n)
	}

	freshEdges := 0
	for i := 0; i < len(neighbours); i++ {
		for j := i + 1; j < len(neighbours); j++ {
			if _, found, _ := lineBetweenEitherDirection(network, neighbours[i], neighbours[j]); !found {
				freshEdges++
			}
		}
	}
	return freshEdges > 1
}
