package reduction

import (
	"sort"

	"github.com/wardgrid/netreduce/linalg"
	"github.com/wardgrid/netreduce/netmodel"
)

const opKronEliminate = "KronEliminate"

// KronEliminate removes busToDel from network, replacing it and its
// incident lines with a clique of equivalent lines among its neighbours
// (the general n-connection elimination underlying R5; R2 merges its two
// lines in series itself and does not call it). It:
//
//  1. builds the incidence matrix A (lines x {neighbours, busToDel}) and the
//     admittance-weighted Laplacian B = Aᵀ diag(1/x) A,
//  2. partitions B into B_ff (neighbour/neighbour), B_fe (neighbour/ext) and
//     B_ee (ext/ext), and forms the Schur complement B_ff' = B_ff - B_fe
//     B_ee^-1 B_feᵀ,
//  3. redistributes busToDel's net load and thermal participation to each
//     neighbour i with coefficient alpha_i = -(B_fe B_ee^-1)[i],
//  4. synthesizes (or merges into an existing parallel line) one new branch
//     per non-zero off-diagonal entry of B_ff', with x_new = -1/B_ff'[i][j]
//     and unbounded flow limits,
//  5. deletes busToDel's incident lines and the bus itself.
//
// KronEliminate assumes busToDel has at least one incident line; callers
// filter out isolated buses before invoking it.
func KronEliminate(network *netmodel.Network, thermals *netmodel.ThermalFleet, busToDel int) error {
	lines := network.LinesIncident(busToDel)
	if len(lines) == 0 {
		return nil
	}

	neighbourSet := make(map[int]struct{}, len(lines))
	for _, l := range lines {
		ft := network.LineFT[l]
		if ft.From != busToDel {
			neighbourSet[ft.From] = struct{}{}
		}
		if ft.To != busToDel {
			neighbourSet[ft.To] = struct{}{}
		}
	}
	neighbours := make([]int, 0, len(neighbourSet))
	for b := range neighbourSet {
		neighbours = append(neighbours, b)
	}
	sort.Ints(neighbours)
	k := len(neighbours)
	neighbourIdx := make(map[int]int, k)
	for i, b := range neighbours {
		neighbourIdx[b] = i
	}

	a, err := linalg.NewDense(len(lines), k+1)
	if err != nil {
		return reductionErrorf(opKronEliminate, err)
	}
	y := make([]float64, len(lines))
	for li, l := range lines {
		ft := network.LineFT[l]
		y[li] = 1.0 / network.LineX[l]

		fromCol := k
		if ft.From != busToDel {
			fromCol = neighbourIdx[ft.From]
		}
		toCol := k
		if ft.To != busToDel {
			toCol = neighbourIdx[ft.To]
		}
		if err := a.Set(li, fromCol, -1); err != nil {
			return reductionErrorf(opKronEliminate, err)
		}
		if err := a.Set(li, toCol, 1); err != nil {
			return reductionErrorf(opKronEliminate, err)
		}
	}

	b, err := linalg.MulTransposeDiagMul(a, y)
	if err != nil {
		return reductionErrorf(opKronEliminate, err)
	}

	front := make([]int, k)
	for i := range front {
		front[i] = i
	}
	ext := []int{k}

	bff := b.Submatrix(front, front)
	bfe := b.Submatrix(front, ext)
	bee := b.Submatrix(ext, ext)

	beeInv, err := linalg.Inverse(bee)
	if err != nil {
		return reductionErrorf(opKronEliminate, err)
	}
	bfeBeeInv, err := linalg.Mul(bfe, beeInv)
	if err != nil {
		return reductionErrorf(opKronEliminate, err)
	}
	correction, err := linalg.Mul(bfeBeeInv, transposeOf(bfe))
	if err != nil {
		return reductionErrorf(opKronEliminate, err)
	}
	bffNew, err := linalg.Sub(bff, correction)
	if err != nil {
		return reductionErrorf(opKronEliminate, err)
	}

	for i, bus := range neighbours {
		impact, _ := bfeBeeInv.At(i, 0)
		alpha := -impact
		if alpha != 0 {
			netmodel.ReassignInjections(network, thermals, busToDel, bus, alpha)
		}
	}

	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			val, _ := bffNew.At(i, j)
			if val == 0 {
				continue
			}
			if err := synthesizeLine(network, neighbours[i], neighbours[j], -1/val); err != nil {
				return reductionErrorf(opKronEliminate, err)
			}
		}
	}

	network.DeleteLines(lines)
	network.UpdateLoadAndNetwork(thermals, []int{busToDel})
	return nil
}

// transposeOf returns the transpose of a k x 1 matrix as 1 x k; used only
// for the B_fe x B_feᵀ product in KronEliminate, so no general-purpose
// Transpose is added to linalg.
func transposeOf(m *linalg.Dense) *linalg.Dense {
	t, _ := linalg.NewDense(m.Cols(), m.Rows())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			_ = t.Set(j, i, v)
		}
	}
	return t
}

// synthesizeLine creates the new equivalent line between a and b with
// reactance xNew and unbounded flow limits, or folds it into an existing
// line between the same pair via CombineParallel if one already connects
// the pair.
func synthesizeLine(network *netmodel.Network, a, b int, xNew float64) error {
	from, to := a, b
	if from > to {
		from, to = to, from
	}

	horizon := network.Horizon()
	ub := make([]float64, horizon)
	lb := make([]float64, horizon)
	activeUBPerPeriod := make([]bool, horizon)
	activeLBPerPeriod := make([]bool, horizon)
	for t := 0; t < horizon; t++ {
		ub[t] = MaxFlow
		lb[t] = -MaxFlow
	}
	newSnap := LineSnapshot{
		X:                 xNew,
		UB:                ub,
		LB:                lb,
		ActiveBounds:      false,
		ActiveUB:          false,
		ActiveLB:          false,
		ActiveUBPerPeriod: activeUBPerPeriod,
		ActiveLBPerPeriod: activeLBPerPeriod,
	}

	existingID, found, reversed := lineBetweenEitherDirection(network, from, to)
	if !found {
		id := network.FreshLineID()
		return network.AddLine(id, from, to, newSnap.X, newSnap.UB, newSnap.LB,
			newSnap.ActiveBounds, newSnap.ActiveUB, newSnap.ActiveLB,
			newSnap.ActiveUBPerPeriod, newSnap.ActiveLBPerPeriod)
	}

	existingSnap := snapshotOf(network, existingID)
	if reversed {
		existingSnap = flipSnapshot(existingSnap)
	}
	merged := CombineParallel(existingSnap, newSnap)
	network.DeleteLines([]int{existingID})
	id := network.FreshLineID()
	return network.AddLine(id, from, to, merged.X, merged.UB, merged.LB,
		merged.ActiveBounds, merged.ActiveUB, merged.ActiveLB,
		merged.ActiveUBPerPeriod, merged.ActiveLBPerPeriod)
}
