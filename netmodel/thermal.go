package netmodel

// NewThermalUnit registers a generating unit with its initial bus
// participation. coeffs need not sum to 1 after reduction , but
// ingest is expected to hand in normalized coefficients.
func (t *ThermalFleet) NewThermalUnit(id int, name string, maxP float64, coeffs map[int]float64) {
	t.Units = append(t.Units, id)
	t.UnitName[id] = name
	t.MaxP[id] = maxP
	buses := make([]int, 0, len(coeffs))
	c := make(map[int]float64, len(coeffs))
	for b, v := range coeffs {
		buses = append(buses, b)
		c[b] = v
	}
	t.Bus[id] = buses
	t.BusCoeff[id] = c
}

// UnitsAtBus returns the thermal units that currently inject at bus.
func UnitsAtBus(t *ThermalFleet, bus int) []int {
	var out []int
	for _, g := range t.Units {
		if containsInt(t.Bus[g], bus) {
			out = append(out, g)
		}
	}
	return out
}

// ReassignInjections moves the injections at an about-to-be-eliminated bus
// to a surviving bus, scaled by coeff. It updates both the passive net-load
// row (netLoad[newBus] += coeff * netLoad[bus]) and, for every thermal unit
// participating at bus, its participation coefficient at newBus
// (bus_coeff[g][newBus] += coeff * bus_coeff[g][bus], adding newBus to the
// unit's bus list if it is not already present).
//
// This is the single reassignment primitive shared by the Kron eliminator
// and rules R3/R4, each of which calls it once per surviving neighbour
// with that neighbour's redistribution coefficient.
func ReassignInjections(n *Network, t *ThermalFleet, bus, newBus int, coeff float64) {
	busRow := n.BusHeader[bus]
	newBusRow := n.BusHeader[newBus]
	for k, v := range n.NetLoad[busRow] {
		n.NetLoad[newBusRow][k] += coeff * v
	}

	for _, g := range UnitsAtBus(t, bus) {
		if !containsInt(t.Bus[g], newBus) {
			t.Bus[g] = append(t.Bus[g], newBus)
			t.BusCoeff[g][newBus] = coeff * t.BusCoeff[g][bus]
		} else {
			t.BusCoeff[g][newBus] += coeff * t.BusCoeff[g][bus]
		}
	}
}
