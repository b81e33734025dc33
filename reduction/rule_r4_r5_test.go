package reduction_test

import (
	"testing"

	"github.com/wardgrid/netreduce/netmodel"
	"github.com/wardgrid/netreduce/reduction"
)

// TestApplyR4_ThreeBusChainLoadAtMidpoint covers scenario 2: a load sits at
// a degree-2 bus between two ties, one binding (A-B) and one free (B-C). R4
// should move B's net load to both neighbours via a power-transfer factor
// derived from the binding line's reactance, merge the two lines into one
// spanning A-C, and shift the merged line's bounds by the same factor
// applied to B's net load.
func TestApplyR4_ThreeBusChainLoadAtMidpoint(t *testing.T) {
	n := netmodel.NewNetwork(1)
	_ = n.AddBus(1, "A", []float64{0}, true)
	_ = n.AddBus(2, "B", []float64{100}, false)
	_ = n.AddBus(3, "C", []float64{0}, false)

	tightUB, tightLB := []float64{200}, []float64{-200}
	_ = n.AddLine(1, 1, 2, 1, tightUB, tightLB, true, true, true, []bool{true}, []bool{true})
	freeUB, freeLB := freeBounds(1)
	_ = n.AddLine(2, 2, 3, 1, freeUB, freeLB, false, false, false, []bool{false}, []bool{false})
	th := netmodel.NewThermalFleet()

	removed, err := reduction.ApplyR4(n, th)
	if err != nil {
		t.Fatalf("ApplyR4: %v", err)
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
	if got := n.NetLoad[n.BusHeader[1]][0]; !almostEqual(got, 50) {
		t.Errorf("net_load[A] = %v, want 50", got)
	}
	if got := n.NetLoad[n.BusHeader[3]][0]; !almostEqual(got, 50) {
		t.Errorf("net_load[C] = %v, want 50", got)
	}
	if !n.ActiveBounds[newLine] {
		t.Error("merged line should retain active_bounds=true")
	}
	if got := n.LineFlowUB[newLine][0]; !almostEqual(got, 150) {
		t.Errorf("UB = %v, want 150", got)
	}
	if got := n.LineFlowLB[newLine][0]; !almostEqual(got, -250) {
		t.Errorf("LB = %v, want -250", got)
	}
	if err := netmodel.Validate(n, th); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// TestKronEliminate_StarOfFourCollapsesIntoClique covers scenario 5: a
// centre bus of degree 4 with all free incident lines. Kron-eliminating the
// centre should produce the (4 choose 2) = 6 equivalent lines among its
// neighbours. KronEliminate is invoked directly (rather than through
// ApplyR5) because ApplyR5 always prefers its lowest-degree candidate, and
// the four degree-1 leaves would be claimed before the degree-4 centre
// ever becomes eligible.
func TestKronEliminate_StarOfFourCollapsesIntoClique(t *testing.T) {
	n := netmodel.NewNetwork(1)
	_ = n.AddBus(1, "A", []float64{0}, true)
	_ = n.AddBus(2, "B", []float64{0}, false)
	_ = n.AddBus(3, "C", []float64{0}, false)
	_ = n.AddBus(4, "D", []float64{0}, false)
	_ = n.AddBus(5, "centre", []float64{0}, false)

	ub, lb := freeBounds(1)
	_ = n.AddLine(1, 5, 1, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	_ = n.AddLine(2, 5, 2, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	_ = n.AddLine(3, 5, 3, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	_ = n.AddLine(4, 5, 4, 1, ub, lb, false, false, false, []bool{false}, []bool{false})
	th := netmodel.NewThermalFleet()

	if err := reduction.KronEliminate(n, th, 5); err != nil {
		t.Fatalf("KronEliminate: %v", err)
	}
	if n.HasBus(5) {
		t.Fatal("centre bus should have been eliminated")
	}
	if len(n.LineID) != 6 {
		t.Fatalf("want 6 surviving lines (clique of 4 leaves), got %d", len(n.LineID))
	}

	pairSeen := make(map[[2]int]bool)
	for _, l := range n.LineID {
		ft := n.LineFT[l]
		from, to := ft.From, ft.To
		if from > to {
			from, to = to, from
		}
		pairSeen[[2]int{from, to}] = true
		if !almostEqual(n.LineX[l], 4) {
			t.Errorf("line %d-%d reactance = %v, want 4", from, to, n.LineX[l])
		}
	}
	leaves := []int{1, 2, 3, 4}
	for i := 0; i < len(leaves); i++ {
		for j := i + 1; j < len(leaves); j++ {
			if !pairSeen[[2]int{leaves[i], leaves[j]}] {
				t.Errorf("missing equivalent line between %d and %d", leaves[i], leaves[j])
			}
		}
	}
	if err := netmodel.Validate(n, th); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// TestApplyR5_ExcludesBusesTouchingActiveBoundLine checks that a bus
// touching a line with active_bounds=true is never offered to
// KronEliminate: nothing in KronEliminate carries that flag onto the
// synthesized replacement lines, so eliminating such a bus would silently
// drop the flag instead of merging or refusing.
func TestApplyR5_ExcludesBusesTouchingActiveBoundLine(t *testing.T) {
	n := netmodel.NewNetwork(1)
	_ = n.AddBus(1, "A", []float64{0}, true)
	_ = n.AddBus(2, "B", []float64{0}, false)
	tightUB, tightLB := []float64{200}, []float64{-200}
	_ = n.AddLine(1, 1, 2, 1, tightUB, tightLB, true, true, true, []bool{true}, []bool{true})
	th := netmodel.NewThermalFleet()

	removed, err := reduction.ApplyR5(n, th, 4)
	if err != nil {
		t.Fatalf("ApplyR5: %v", err)
	}
	if len(removed) != 0 {
		t.Fatalf("removed = %v, want none", removed)
	}
	if !n.HasBus(2) {
		t.Fatal("bus B should not have been eliminated")
	}
	if !n.ActiveBounds[1] {
		t.Error("line 1 should still be active-bound")
	}
}
