package netmodel

// Endpoints is the ordered (from, to) pair of a line.
type Endpoints struct {
	From int
	To   int
}

// SecurityConstraintParticipants lists the thermal units that contribute to
// an artificial security constraint and their participation factors.
//
// Time-0 owns this value; later time periods share the same pointer rather
// than copying it, mirroring "participants/participants_factors
// structures by reference" requirement.
type SecurityConstraintParticipants struct {
	Thermals       []int
	ThermalFactors map[int]float64
}

// SecurityConstraint is a time-indexed artificial bound synthesized when an
// eliminated bus's net injection could have exceeded a line's flow limit.
type SecurityConstraint struct {
	Name         string
	NetLoad      float64
	LB, UB       float64
	Participants *SecurityConstraintParticipants
}

// Network is the DC-linearized transmission grid mutated in place by the
// reduction engine. All maps are keyed by the opaque bus/line ids used in
// BusID/LineID; BusHeader always mirrors the bus's position in BusID.
type Network struct {
	BusID     []int
	BusHeader map[int]int
	RefBuses  map[int]struct{}
	BusName   map[int]string

	LineID   []int
	LineFT   map[int]Endpoints
	LineX    map[int]float64
	LineFlowUB map[int][]float64
	LineFlowLB map[int][]float64

	ActiveBounds       map[int]bool
	ActiveUB           map[int]bool
	ActiveLB           map[int]bool
	ActiveUBPerPeriod  map[int][]bool
	ActiveLBPerPeriod  map[int][]bool

	LinesFromBus map[int][]int
	LinesToBus   map[int][]int

	// NetLoad is a dense |BusID| x T matrix; row i corresponds to BusID[i].
	// Positive entries are withdrawals, negative entries are injections.
	NetLoad [][]float64

	// SecConstrs[t][id] is the artificial security constraint id at period t.
	SecConstrs []map[string]*SecurityConstraint

	nextLineID int
}

// ThermalFleet is the set of controllable thermal generating units and
// their participation in the Network's buses.
type ThermalFleet struct {
	Units     []int
	Bus       map[int][]int
	BusCoeff  map[int]map[int]float64
	MaxP      map[int]float64
	UnitName  map[int]string
}

// NewNetwork returns an empty Network ready to be populated by ingest.
func NewNetwork(horizon int) *Network {
	return &Network{
		BusID:             nil,
		BusHeader:         make(map[int]int),
		RefBuses:          make(map[int]struct{}),
		BusName:           make(map[int]string),
		LineID:            nil,
		LineFT:            make(map[int]Endpoints),
		LineX:             make(map[int]float64),
		LineFlowUB:        make(map[int][]float64),
		LineFlowLB:        make(map[int][]float64),
		ActiveBounds:      make(map[int]bool),
		ActiveUB:          make(map[int]bool),
		ActiveLB:          make(map[int]bool),
		ActiveUBPerPeriod: make(map[int][]bool),
		ActiveLBPerPeriod: make(map[int][]bool),
		LinesFromBus:      make(map[int][]int),
		LinesToBus:        make(map[int][]int),
		NetLoad:           nil,
		SecConstrs:        make([]map[string]*SecurityConstraint, horizon),
	}
}

// NewThermalFleet returns an empty ThermalFleet ready to be populated by ingest.
func NewThermalFleet() *ThermalFleet {
	return &ThermalFleet{
		Units:    nil,
		Bus:      make(map[int][]int),
		BusCoeff: make(map[int]map[int]float64),
		MaxP:     make(map[int]float64),
		UnitName: make(map[int]string),
	}
}
