package netmodel_test

import (
	"errors"
	"testing"

	"github.com/wardgrid/netreduce/netmodel"
)

func threeBusChain(t *testing.T) (*netmodel.Network, *netmodel.ThermalFleet) {
	t.Helper()
	n := netmodel.NewNetwork(1)
	if err := n.AddBus(1, "A", []float64{0}, true); err != nil {
		t.Fatalf("AddBus(1): %v", err)
	}
	if err := n.AddBus(2, "B", []float64{0}, false); err != nil {
		t.Fatalf("AddBus(2): %v", err)
	}
	if err := n.AddBus(3, "C", []float64{0}, false); err != nil {
		t.Fatalf("AddBus(3): %v", err)
	}
	ub := []float64{999999}
	lb := []float64{-999999}
	if err := n.AddLine(1, 1, 2, 1, ub, lb, false, false, false, []bool{false}, []bool{false}); err != nil {
		t.Fatalf("AddLine(1-2): %v", err)
	}
	if err := n.AddLine(2, 2, 3, 1, ub, lb, false, false, false, []bool{false}, []bool{false}); err != nil {
		t.Fatalf("AddLine(2-3): %v", err)
	}
	return n, netmodel.NewThermalFleet()
}

func TestAddBus_DuplicateRejected(t *testing.T) {
	n, _ := threeBusChain(t)
	if err := n.AddBus(1, "dup", []float64{0}, false); !errors.Is(err, netmodel.ErrDuplicateBus) {
		t.Errorf("AddBus duplicate: got %v, want ErrDuplicateBus", err)
	}
}

func TestAddLine_RejectsSelfLoopAndBadReactance(t *testing.T) {
	n, _ := threeBusChain(t)
	if err := n.AddLine(99, 1, 1, 1, []float64{1}, []float64{-1}, false, false, false, []bool{false}, []bool{false}); !errors.Is(err, netmodel.ErrSelfLoop) {
		t.Errorf("self-loop: got %v, want ErrSelfLoop", err)
	}
	if err := n.AddLine(99, 1, 2, 0, []float64{1}, []float64{-1}, false, false, false, []bool{false}, []bool{false}); !errors.Is(err, netmodel.ErrNonPositiveReactance) {
		t.Errorf("zero reactance: got %v, want ErrNonPositiveReactance", err)
	}
}

func TestDeleteLines_PurgesAdjacency(t *testing.T) {
	n, _ := threeBusChain(t)
	n.DeleteLines([]int{1})
	if n.HasLine(1) {
		t.Error("line 1 should be gone")
	}
	if got := n.Degree(1); got != 0 {
		t.Errorf("Degree(1) = %d, want 0", got)
	}
	if got := n.Degree(2); got != 1 {
		t.Errorf("Degree(2) = %d, want 1", got)
	}
}

func TestPromoteReferenceBus_PicksLowestSurvivor(t *testing.T) {
	n, _ := threeBusChain(t)
	n.PromoteReferenceBus(1, -1)
	if _, isRef := n.RefBuses[1]; isRef {
		t.Error("bus 1 should no longer be a reference bus")
	}
	if _, isRef := n.RefBuses[2]; !isRef {
		t.Error("bus 2 should have been promoted")
	}
}

func TestUpdateLoadAndNetwork_ReindexesAndScrubsThermals(t *testing.T) {
	n, th := threeBusChain(t)
	th.NewThermalUnit(10, "G1", 50, map[int]float64{2: 1})

	n.DeleteLines(n.LinesIncident(2))
	n.UpdateLoadAndNetwork(th, []int{2})

	if n.HasBus(2) {
		t.Error("bus 2 should be gone")
	}
	if n.BusHeader[3] != 1 {
		t.Errorf("BusHeader[3] = %d, want 1", n.BusHeader[3])
	}
	if _, ok := th.BusCoeff[10][2]; ok {
		t.Error("thermal unit should no longer reference bus 2")
	}
	if err := netmodel.Validate(n, th); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
