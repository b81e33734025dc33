package netmodel

import "sort"

const opAddBus = "AddBus"
const opAddLine = "AddLine"
const opDeleteLines = "DeleteLines"
const opUpdateLoad = "UpdateLoadAndNetwork"

// Horizon returns the time-series length T used by NetLoad and the line
// flow-bound vectors.
func (n *Network) Horizon() int {
	if len(n.NetLoad) == 0 {
		return len(n.SecConstrs)
	}
	return len(n.NetLoad[0])
}

// HasBus reports whether id is a current bus.
func (n *Network) HasBus(id int) bool {
	_, ok := n.BusHeader[id]
	return ok
}

// HasLine reports whether id is a current line.
func (n *Network) HasLine(id int) bool {
	_, ok := n.LineFT[id]
	return ok
}

// AddBus appends a new bus to the network. netLoadRow must have length
// Horizon() (or NetLoad must currently be empty, establishing the horizon).
// If isRef is true, the bus is added to RefBuses.
func (n *Network) AddBus(id int, name string, netLoadRow []float64, isRef bool) error {
	if n.HasBus(id) {
		return netmodelErrorf(opAddBus, ErrDuplicateBus)
	}
	n.BusID = append(n.BusID, id)
	n.BusHeader[id] = len(n.BusID) - 1
	n.BusName[id] = name
	n.LinesFromBus[id] = nil
	n.LinesToBus[id] = nil
	row := make([]float64, len(netLoadRow))
	copy(row, netLoadRow)
	n.NetLoad = append(n.NetLoad, row)
	if isRef {
		n.RefBuses[id] = struct{}{}
	}
	return nil
}

// FreshLineID returns an id not currently present in LineID: one greater
// than both the largest id in LineID and the largest id previously
// registered or handed out, so ids of deleted lines are not reused.
func (n *Network) FreshLineID() int {
	max := 0
	for _, l := range n.LineID {
		if l > max {
			max = l
		}
	}
	if n.nextLineID > max {
		max = n.nextLineID
	}
	n.nextLineID = max + 1
	return n.nextLineID
}

// AddLine registers a new line with the given endpoints, reactance, and
// flow-bound vectors. Reassigns adjacency on LinesFromBus/LinesToBus.
//
// Contract: from != to, x > 0, both endpoints exist, id is unused.
func (n *Network) AddLine(id, from, to int, x float64, ub, lb []float64,
	activeBounds, activeUB, activeLB bool, activeUBPerPeriod, activeLBPerPeriod []bool,
) error {
	if n.HasLine(id) {
		return netmodelErrorf(opAddLine, ErrDuplicateLine)
	}
	if from == to {
		return netmodelErrorf(opAddLine, ErrSelfLoop)
	}
	if x <= 0 {
		return netmodelErrorf(opAddLine, ErrNonPositiveReactance)
	}
	if !n.HasBus(from) || !n.HasBus(to) {
		return netmodelErrorf(opAddLine, ErrUnknownBus)
	}

	n.LineID = append(n.LineID, id)
	n.LineFT[id] = Endpoints{From: from, To: to}
	n.LineX[id] = x
	n.LineFlowUB[id] = append([]float64(nil), ub...)
	n.LineFlowLB[id] = append([]float64(nil), lb...)
	n.ActiveBounds[id] = activeBounds
	n.ActiveUB[id] = activeUB
	n.ActiveLB[id] = activeLB
	n.ActiveUBPerPeriod[id] = append([]bool(nil), activeUBPerPeriod...)
	n.ActiveLBPerPeriod[id] = append([]bool(nil), activeLBPerPeriod...)

	n.LinesFromBus[from] = append(n.LinesFromBus[from], id)
	n.LinesToBus[to] = append(n.LinesToBus[to], id)

	if id > n.nextLineID {
		n.nextLineID = id
	}

	return nil
}

// LinesBetween returns the lines whose LineFT exactly equals (from, to),
// i.e. oriented from->to. More than one entry means parallel lines with the
// same orientation; callers that need a single line take the first one.
func (n *Network) LinesBetween(from, to int) []int {
	var out []int
	for _, l := range n.LineID {
		ft := n.LineFT[l]
		if ft.From == from && ft.To == to {
			out = append(out, l)
		}
	}
	return out
}

// LinesIncident returns every line touching bus, from or to, in the
// deterministic order LinesFromBus followed by LinesToBus.
func (n *Network) LinesIncident(bus int) []int {
	out := make([]int, 0, len(n.LinesFromBus[bus])+len(n.LinesToBus[bus]))
	out = append(out, n.LinesFromBus[bus]...)
	out = append(out, n.LinesToBus[bus]...)
	return out
}

// Degree returns the number of lines incident to bus (from + to).
func (n *Network) Degree(bus int) int {
	return len(n.LinesFromBus[bus]) + len(n.LinesToBus[bus])
}

func removeFromSlice(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// DeleteLines removes every line in ids from the network: LineID, LineFT,
// flow bounds, active-bound flags, and both adjacency maps. Lines not
// currently present are silently skipped.
func (n *Network) DeleteLines(ids []int) {
	for _, l := range ids {
		ft, ok := n.LineFT[l]
		if !ok {
			continue
		}
		if from, ok := n.LinesFromBus[ft.From]; ok {
			n.LinesFromBus[ft.From] = removeFromSlice(from, l)
		}
		if to, ok := n.LinesToBus[ft.To]; ok {
			n.LinesToBus[ft.To] = removeFromSlice(to, l)
		}

		n.LineID = removeFromSlice(n.LineID, l)
		delete(n.LineFT, l)
		delete(n.LineX, l)
		delete(n.LineFlowUB, l)
		delete(n.LineFlowLB, l)
		delete(n.ActiveBounds, l)
		delete(n.ActiveUB, l)
		delete(n.ActiveLB, l)
		delete(n.ActiveUBPerPeriod, l)
		delete(n.ActiveLBPerPeriod, l)
	}
}

// PromoteReferenceBus replaces 'old' in RefBuses with the first surviving
// bus (in ascending BusID order) that is not already a reference bus. If
// candidate is >= 0 it is tried first (used by rules that know exactly
// which neighbour should inherit reference status); otherwise the
// lowest-id surviving non-reference bus is promoted
// deterministic tie-break.
func (n *Network) PromoteReferenceBus(old, candidate int) {
	if _, wasRef := n.RefBuses[old]; !wasRef {
		return
	}
	delete(n.RefBuses, old)

	if candidate >= 0 && n.HasBus(candidate) {
		if _, already := n.RefBuses[candidate]; !already {
			n.RefBuses[candidate] = struct{}{}
			return
		}
	}

	ids := append([]int(nil), n.BusID...)
	sort.Ints(ids)
	for _, b := range ids {
		if b == old {
			continue
		}
		if _, already := n.RefBuses[b]; !already {
			n.RefBuses[b] = struct{}{}
			return
		}
	}
}

// UpdateLoadAndNetwork is the canonical reindex performed after one or more
// buses are deleted: it row-purges NetLoad, removes the buses from
// BusName/BusID, re-elects reference buses, scrubs the thermal
// participation map, and recomputes BusHeader. It assumes injections have
// already been reassigned to surviving buses by the caller.
func (n *Network) UpdateLoadAndNetwork(t *ThermalFleet, busesToDelete []int) {
	if len(busesToDelete) == 0 {
		return
	}

	toDelete := make(map[int]struct{}, len(busesToDelete))
	for _, b := range busesToDelete {
		toDelete[b] = struct{}{}
	}

	newBusID := make([]int, 0, len(n.BusID))
	newNetLoad := make([][]float64, 0, len(n.BusID))
	for i, b := range n.BusID {
		if _, del := toDelete[b]; del {
			continue
		}
		newBusID = append(newBusID, b)
		newNetLoad = append(newNetLoad, n.NetLoad[i])
	}
	n.BusID = newBusID
	n.NetLoad = newNetLoad

	for _, b := range busesToDelete {
		delete(n.BusName, b)
		delete(n.LinesFromBus, b)
		delete(n.LinesToBus, b)
	}

	for _, b := range busesToDelete {
		if _, isRef := n.RefBuses[b]; isRef {
			n.PromoteReferenceBus(b, -1)
		}
	}

	if t != nil {
		for _, b := range busesToDelete {
			for _, g := range t.Units {
				if containsInt(t.Bus[g], b) {
					t.Bus[g] = removeFromSlice(t.Bus[g], b)
					delete(t.BusCoeff[g], b)
				}
			}
		}
	}

	n.BusHeader = make(map[int]int, len(n.BusID))
	for i, b := range n.BusID {
		n.BusHeader[b] = i
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
