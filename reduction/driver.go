package reduction

import "github.com/wardgrid/netreduce/netmodel"

const maxDriverIterations = 20

const opReduce = "Reduce"

// Reduce runs the fixed-point reduction driver: it
// applies R1 through R5 in strict order, up to 20 times, stopping as soon
// as an iteration removes no bus. Reduce does nothing and returns a zero
// Stats if params.ShouldReduce() is false. If the network ends up with no
// lines at all, Reduce returns ErrEmptyNetwork without further mutation.
func Reduce(params Params, network *netmodel.Network, thermals *netmodel.ThermalFleet) (Stats, error) {
	var stats Stats
	if !params.ShouldReduce() {
		return stats, nil
	}

	for it := 0; it < maxDriverIterations; it++ {
		stats.Iterations++
		nBefore := len(network.BusID)

		if params.MaxConnections >= 1 {
			linesBefore := len(network.LineID)
			candidates := candidateBuses(network, thermals)
			r1 := ApplyR1(network, thermals, candidates)
			stats.BusesRemovedR1 += len(r1)
			stats.LinesRemovedR1 += linesBefore - len(network.LineID)
		}

		if params.MaxConnections >= 2 {
			linesBefore := len(network.LineID)
			candidates := candidateBuses(network, thermals)
			r2, err := ApplyR2(network, thermals, candidates)
			if err != nil {
				return stats, reductionErrorf(opReduce, err)
			}
			stats.BusesRemovedR2 += len(r2)
			stats.LinesRemovedR2 += linesBefore - len(network.LineID)
		}

		if params.MaxConnections >= 1 {
			linesBefore := len(network.LineID)
			r3, err := ApplyR3(network, thermals)
			if err != nil {
				return stats, reductionErrorf(opReduce, err)
			}
			stats.BusesRemovedR3 += len(r3)
			stats.LinesRemovedR3 += linesBefore - len(network.LineID)
		}

		if params.MaxConnections >= 2 {
			linesBefore := len(network.LineID)
			r4, err := ApplyR4(network, thermals)
			if err != nil {
				return stats, reductionErrorf(opReduce, err)
			}
			stats.BusesRemovedR4 += len(r4)
			stats.LinesRemovedR4 += linesBefore - len(network.LineID)
		}

		if params.MaxConnections >= 1 {
			linesBefore := len(network.LineID)
			r5, err := ApplyR5(network, thermals, params.MaxConnections)
			if err != nil {
				return stats, reductionErrorf(opReduce, err)
			}
			stats.BusesRemovedR5 += len(r5)
			stats.LinesRemovedR5 += linesBefore - len(network.LineID)
		}

		if len(network.BusID) == nBefore {
			break
		}
	}

	if len(network.LineID) == 0 {
		return stats, reductionErrorf(opReduce, ErrEmptyNetwork)
	}
	return stats, nil
}
