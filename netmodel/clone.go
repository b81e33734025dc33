package netmodel

// Clone returns a deep copy of the Network, suitable for a caller that
// wants to preserve a pristine view before reducing. No field is shared
// with the receiver except for the SecurityConstraintParticipants values
// themselves, which are immutable once synthesized and so are
// intentionally shared rather than copied.
func (n *Network) Clone() *Network {
	c := &Network{
		BusID:             append([]int(nil), n.BusID...),
		BusHeader:         make(map[int]int, len(n.BusHeader)),
		RefBuses:          make(map[int]struct{}, len(n.RefBuses)),
		BusName:           make(map[int]string, len(n.BusName)),
		LineID:            append([]int(nil), n.LineID...),
		LineFT:            make(map[int]Endpoints, len(n.LineFT)),
		LineX:             make(map[int]float64, len(n.LineX)),
		LineFlowUB:        make(map[int][]float64, len(n.LineFlowUB)),
		LineFlowLB:        make(map[int][]float64, len(n.LineFlowLB)),
		ActiveBounds:      make(map[int]bool, len(n.ActiveBounds)),
		ActiveUB:          make(map[int]bool, len(n.ActiveUB)),
		ActiveLB:          make(map[int]bool, len(n.ActiveLB)),
		ActiveUBPerPeriod: make(map[int][]bool, len(n.ActiveUBPerPeriod)),
		ActiveLBPerPeriod: make(map[int][]bool, len(n.ActiveLBPerPeriod)),
		LinesFromBus:      make(map[int][]int, len(n.LinesFromBus)),
		LinesToBus:        make(map[int][]int, len(n.LinesToBus)),
		NetLoad:           make([][]float64, len(n.NetLoad)),
		SecConstrs:        make([]map[string]*SecurityConstraint, len(n.SecConstrs)),
		nextLineID:        n.nextLineID,
	}
	for k, v := range n.BusHeader {
		c.BusHeader[k] = v
	}
	for k := range n.RefBuses {
		c.RefBuses[k] = struct{}{}
	}
	for k, v := range n.BusName {
		c.BusName[k] = v
	}
	for k, v := range n.LineFT {
		c.LineFT[k] = v
	}
	for k, v := range n.LineX {
		c.LineX[k] = v
	}
	for k, v := range n.LineFlowUB {
		c.LineFlowUB[k] = append([]float64(nil), v...)
	}
	for k, v := range n.LineFlowLB {
		c.LineFlowLB[k] = append([]float64(nil), v...)
	}
	for k, v := range n.ActiveBounds {
		c.ActiveBounds[k] = v
	}
	for k, v := range n.ActiveUB {
		c.ActiveUB[k] = v
	}
	for k, v := range n.ActiveLB {
		c.ActiveLB[k] = v
	}
	for k, v := range n.ActiveUBPerPeriod {
		c.ActiveUBPerPeriod[k] = append([]bool(nil), v...)
	}
	for k, v := range n.ActiveLBPerPeriod {
		c.ActiveLBPerPeriod[k] = append([]bool(nil), v...)
	}
	for k, v := range n.LinesFromBus {
		c.LinesFromBus[k] = append([]int(nil), v...)
	}
	for k, v := range n.LinesToBus {
		c.LinesToBus[k] = append([]int(nil), v...)
	}
	for i, row := range n.NetLoad {
		c.NetLoad[i] = append([]float64(nil), row...)
	}
	for t, m := range n.SecConstrs {
		if m == nil {
			continue
		}
		nm := make(map[string]*SecurityConstraint, len(m))
		for id, sc := range m {
			cp := *sc
			nm[id] = &cp
		}
		c.SecConstrs[t] = nm
	}
	return c
}

// Clone returns a deep copy of the ThermalFleet.
func (t *ThermalFleet) Clone() *ThermalFleet {
	c := &ThermalFleet{
		Units:    append([]int(nil), t.Units...),
		Bus:      make(map[int][]int, len(t.Bus)),
		BusCoeff: make(map[int]map[int]float64, len(t.BusCoeff)),
		MaxP:     make(map[int]float64, len(t.MaxP)),
		UnitName: make(map[int]string, len(t.UnitName)),
	}
	for g, buses := range t.Bus {
		c.Bus[g] = append([]int(nil), buses...)
	}
	for g, coeffs := range t.BusCoeff {
		m := make(map[int]float64, len(coeffs))
		for b, v := range coeffs {
			m[b] = v
		}
		c.BusCoeff[g] = m
	}
	for g, v := range t.MaxP {
		c.MaxP[g] = v
	}
	for g, v := range t.UnitName {
		c.UnitName[g] = v
	}
	return c
}
