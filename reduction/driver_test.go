package reduction_test

import (
	"errors"
	"testing"

	"github.com/wardgrid/netreduce/netmodel"
	"github.com/wardgrid/netreduce/reduction"
)

func freeBounds(t int) ([]float64, []float64) {
	ub := make([]float64, t)
	lb := make([]float64, t)
	for i := range ub {
		ub[i] = reduction.MaxFlow
		lb[i] = -reduction.MaxFlow
	}
	return ub, lb
}

func baseParams() reduction.Params {
	return reduction.Params{
		T:              1,
		MaxConnections: 4,
		ReduceSystem:   true,
		NetworkModel:   reduction.BTheta,
		PowerBase:      100,
	}
}

// TestApplyR2_ThreeBusChainNoInjection covers scenario 1
// directly against the rule (rather than the full driver, since A and C
// are themselves injection-free degree-1 buses that R1 would otherwise
// also claim): x_AB=x_BC=1, no injection anywhere. R2 should collapse B
// into a single A-C line with x=2.
func TestApplyR2_ThreeBusChainNoInjection(t *testing.T) {
	n := netmodel.NewNetwork(1)
	_ = n.AddBus(1, "A", []float64{0}, true)
	_ = n.AddBus(2, "B", []float64{0}, false)
	_ = n.AddBus(3, "C", []float64{0}, false)
	ub, lb := freeBounds(1)
	_ = n.AddLine(1, 1, 2, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	_ = n.AddLine(2, 2, 3, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	th := netmodel.NewThermalFleet()

	removed, err := reduction.ApplyR2(n, th, []int{2})
	if err != nil {
		t.Fatalf("ApplyR2: %v", err)
	}
	if len(removed) != 1 || removed[0] != 2 {
		t.Fatalf("removed = %v, want [2]", removed)
	}
	if n.HasBus(2) {
		t.Fatal("bus B should have been eliminated")
	}
	if len(n.LineID) != 1 {
		t.Fatalf("want 1 surviving line, got %d", len(n.LineID))
	}
	newLine := n.LineID[0]
	if !almostEqual(n.LineX[newLine], 2) {
		t.Errorf("x_new = %v, want 2", n.LineX[newLine])
	}
	if err := netmodel.Validate(n, th); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// TestReduce_FullyInjectionFreeChainEmptiesOut exercises the full driver on
// the same topology: since A and C are also injection-free degree-1 buses,
// R1 claims them before R2 ever sees B, and the network ends up with zero
// lines, which must fail loudly per the fatal-error contract.
func TestReduce_FullyInjectionFreeChainEmptiesOut(t *testing.T) {
	n := netmodel.NewNetwork(1)
	_ = n.AddBus(1, "A", []float64{0}, true)
	_ = n.AddBus(2, "B", []float64{0}, false)
	_ = n.AddBus(3, "C", []float64{0}, false)
	ub, lb := freeBounds(1)
	_ = n.AddLine(1, 1, 2, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	_ = n.AddLine(2, 2, 3, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	th := netmodel.NewThermalFleet()

	_, err := reduction.Reduce(baseParams(), n, th)
	if !errors.Is(err, reduction.ErrEmptyNetwork) {
		t.Errorf("got %v, want ErrEmptyNetwork", err)
	}
}

// TestReduce_EndOfLineGeneratorUnbounded covers scenario 3: bus C
// hosts a 200 MW thermal unit behind an unbounded tie line to B. R3 should
// eliminate C and move the unit's participation to B with coefficient 1.
// B sits on a triangle A-B-D of active-bound lines, with small loads at A
// and D, so no rule other than R3 on C has a foothold; a purely radial
// chain would be reduced down to zero lines and fail with ErrEmptyNetwork.
func TestReduce_EndOfLineGeneratorUnbounded(t *testing.T) {
	n := netmodel.NewNetwork(1)
	_ = n.AddBus(1, "A", []float64{10}, true)
	_ = n.AddBus(2, "B", []float64{0}, false)
	_ = n.AddBus(3, "C", []float64{0}, false)
	_ = n.AddBus(4, "D", []float64{10}, false)
	ubFree, lbFree := freeBounds(1)
	coreUB, coreLB := []float64{1000}, []float64{-1000}
	_ = n.AddLine(1, 1, 2, 1, coreUB, coreLB, true, true, true, []bool{true}, []bool{true})
	_ = n.AddLine(2, 2, 3, 1, ubFree, lbFree, false, false, false, []bool{false}, []bool{false})
	_ = n.AddLine(3, 2, 4, 1, coreUB, coreLB, true, true, true, []bool{true}, []bool{true})
	_ = n.AddLine(4, 4, 1, 1, coreUB, coreLB, true, true, true, []bool{true}, []bool{true})

	th := netmodel.NewThermalFleet()
	th.NewThermalUnit(10, "G1", 200, map[int]float64{3: 1})

	stats, err := reduction.Reduce(baseParams(), n, th)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if n.HasBus(3) {
		t.Fatal("bus C should have been eliminated by R3")
	}
	if !containsIntT(th.Bus[10], 2) {
		t.Errorf("unit 10 should now participate at bus 2, got %v", th.Bus[10])
	}
	if got := th.BusCoeff[10][2]; !almostEqual(got, 1) {
		t.Errorf("BusCoeff[10][2] = %v, want 1", got)
	}
	if stats.BusesRemovedR3 == 0 {
		t.Error("expected R3 to account for the removed bus")
	}
}

// TestReduce_TightTieLineSynthesizesSecurityConstraint covers scenario 4:
// an end-of-line load bus whose net load can exceed the tie
// line's bound in some hour. R3 must still eliminate the bus but attach an
// artificial security constraint mirroring the line's limit. As in the
// generator test, B sits on a triangle A-B-D of active-bound lines with
// small loads at A and D, so the driver keeps lines after removing C.
func TestReduce_TightTieLineSynthesizesSecurityConstraint(t *testing.T) {
	n := netmodel.NewNetwork(2)
	_ = n.AddBus(1, "A", []float64{10, 10}, true)
	_ = n.AddBus(2, "B", []float64{0, 0}, false)
	_ = n.AddBus(3, "C", []float64{50, 150}, false)
	_ = n.AddBus(4, "D", []float64{10, 10}, false)
	coreUB, coreLB := []float64{1000, 1000}, []float64{-1000, -1000}
	_ = n.AddLine(1, 1, 2, 1, coreUB, coreLB, true, true, true, []bool{true, true}, []bool{true, true})
	_ = n.AddLine(3, 2, 4, 1, coreUB, coreLB, true, true, true, []bool{true, true}, []bool{true, true})
	_ = n.AddLine(4, 4, 1, 1, coreUB, coreLB, true, true, true, []bool{true, true}, []bool{true, true})
	tight := []float64{100, 100}
	tightLB := []float64{-100, -100}
	_ = n.AddLine(2, 2, 3, 1, tight, tightLB, true, true, true, []bool{true, true}, []bool{true, true})
	th := netmodel.NewThermalFleet()

	_, err := reduction.Reduce(baseParams(), n, th)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if n.HasBus(3) {
		t.Fatal("bus C should have been eliminated")
	}
	found := false
	for _, m := range n.SecConstrs {
		for _, sc := range m {
			found = true
			if !almostEqual(sc.UB, 100) {
				t.Errorf("security constraint UB = %v, want 100", sc.UB)
			}
		}
	}
	if !found {
		t.Fatal("expected an artificial security constraint to be synthesized")
	}
}

// TestReduce_EmptyNetworkFails covers the fatal error path of the fatal-error contract:
// a network reduced down to zero lines must fail loudly.
func TestReduce_EmptyNetworkFails(t *testing.T) {
	n := netmodel.NewNetwork(1)
	_ = n.AddBus(1, "A", []float64{0}, true)
	_ = n.AddBus(2, "B", []float64{0}, false)
	ub, lb := freeBounds(1)
	_ = n.AddLine(1, 1, 2, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	th := netmodel.NewThermalFleet()

	_, err := reduction.Reduce(baseParams(), n, th)
	if !errors.Is(err, reduction.ErrEmptyNetwork) {
		t.Errorf("got %v, want ErrEmptyNetwork", err)
	}
}

// TestReduce_SingleBusModelSkipsReduction covers the network-model gating: the
// engine must not mutate the network at all when NetworkModel is SingleBus
// or ReduceSystem is false.
func TestReduce_SingleBusModelSkipsReduction(t *testing.T) {
	n := netmodel.NewNetwork(1)
	_ = n.AddBus(1, "A", []float64{0}, true)
	_ = n.AddBus(2, "B", []float64{0}, false)
	ub, lb := freeBounds(1)
	_ = n.AddLine(1, 1, 2, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	th := netmodel.NewThermalFleet()

	params := baseParams()
	params.NetworkModel = reduction.SingleBus
	stats, err := reduction.Reduce(params, n, th)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if stats.TotalBusesRemoved() != 0 || len(n.BusID) != 2 {
		t.Error("reduction should not have run for SingleBus model")
	}
}

// TestReduce_IsIdempotentOnceConverged exercises the P8-style idempotence
// property: running Reduce again on an already-reduced network is a no-op.
// Uses a triangle (every bus at degree 2) with MaxConnections capped at 1,
// which gates off R2/R4 and makes R5's degree cap refuse every bus, so no
// rule has a foothold regardless of how many times Reduce runs.
func TestReduce_IsIdempotentOnceConverged(t *testing.T) {
	n := netmodel.NewNetwork(1)
	_ = n.AddBus(1, "A", []float64{0}, true)
	_ = n.AddBus(2, "B", []float64{0}, false)
	_ = n.AddBus(3, "C", []float64{0}, false)
	ub, lb := freeBounds(1)
	_ = n.AddLine(1, 1, 2, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	_ = n.AddLine(2, 2, 3, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	_ = n.AddLine(3, 3, 1, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	th := netmodel.NewThermalFleet()

	params := baseParams()
	params.MaxConnections = 1

	if _, err := reduction.Reduce(params, n, th); err != nil {
		t.Fatalf("first Reduce: %v", err)
	}
	busesBefore := len(n.BusID)
	linesBefore := len(n.LineID)

	stats2, err := reduction.Reduce(params, n, th)
	if err != nil {
		t.Fatalf("second Reduce: %v", err)
	}
	if stats2.TotalBusesRemoved() != 0 {
		t.Errorf("second pass removed %d buses, want 0", stats2.TotalBusesRemoved())
	}
	if len(n.BusID) != busesBefore || len(n.LineID) != linesBefore {
		t.Error("second pass should leave the network unchanged")
	}
}

func containsIntT(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
