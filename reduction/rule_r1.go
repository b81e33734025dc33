package reduction

import (
	"sort"

	"github.com/wardgrid/netreduce/netmodel"
)

// candidateBuses returns the buses eligible for R1/R2 elimination: every
// bus minus generator, renewable and load buses, in ascending id order
// (deterministic iteration order).
func candidateBuses(network *netmodel.Network, thermals *netmodel.ThermalFleet) []int {
	gen := network.GetGenBuses(thermals)
	load := network.GetLoadBuses()
	renew := network.GetRenewableGenBuses()

	out := make([]int, 0, len(network.BusID))
	for _, b := range network.BusID {
		if _, ok := gen[b]; ok {
			continue
		}
		if _, ok := load[b]; ok {
			continue
		}
		if _, ok := renew[b]; ok {
			continue
		}
		out = append(out, b)
	}
	sort.Ints(out)
	return out
}

// ApplyR1 deletes every candidate bus of degree <= 1 along with its single
// incident branch (or simply deletes it, if it had none). A former
// reference bus promotes its one neighbour, if any.
// Returns the set of buses removed.
func ApplyR1(network *netmodel.Network, thermals *netmodel.ThermalFleet, candidates []int) []int {
	var removed []int
	for _, b := range candidates {
		if network.Degree(b) > 1 {
			continue
		}
		lines := network.LinesIncident(b)
		if len(lines) == 1 {
			l := lines[0]
			ft := network.LineFT[l]
			neighbour := ft.From
			if neighbour == b {
				neighbour = ft.To
			}
			network.DeleteLines(lines)
			network.PromoteReferenceBus(b, neighbour)
		} else {
			network.PromoteReferenceBus(b, -1)
		}
		network.UpdateLoadAndNetwork(thermals, []int{b})
		removed = append(removed, b)
	}
	return removed
}
