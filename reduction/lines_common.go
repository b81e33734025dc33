package reduction

import "github.com/wardgrid/netreduce/netmodel"

// snapshotOf reads a line's electrical parameters into a LineSnapshot,
// exactly as stored (no directional flip).
func snapshotOf(n *netmodel.Network, l int) LineSnapshot {
	return LineSnapshot{
		X:                 n.LineX[l],
		UB:                append([]float64(nil), n.LineFlowUB[l]...),
		LB:                append([]float64(nil), n.LineFlowLB[l]...),
		ActiveBounds:      n.ActiveBounds[l],
		ActiveUB:          n.ActiveUB[l],
		ActiveLB:          n.ActiveLB[l],
		ActiveUBPerPeriod: append([]bool(nil), n.ActiveUBPerPeriod[l]...),
		ActiveLBPerPeriod: append([]bool(nil), n.ActiveLBPerPeriod[l]...),
	}
}

// flipSnapshot reverses the flow-direction convention of a LineSnapshot:
// the signed flow limits negate and swap, and upper/lower active flags
// swap with them. This is the "flows are now in the inverse direction"
// transform used whenever a predecessor line points against the new
// canonical direction.
func flipSnapshot(s LineSnapshot) LineSnapshot {
	t := len(s.UB)
	ub := make([]float64, t)
	lb := make([]float64, t)
	for i := 0; i < t; i++ {
		ub[i] = -s.LB[i]
		lb[i] = -s.UB[i]
	}
	return LineSnapshot{
		X:                 s.X,
		UB:                ub,
		LB:                lb,
		ActiveBounds:      s.ActiveBounds,
		ActiveUB:          s.ActiveLB,
		ActiveLB:          s.ActiveUB,
		ActiveUBPerPeriod: append([]bool(nil), s.ActiveLBPerPeriod...),
		ActiveLBPerPeriod: append([]bool(nil), s.ActiveUBPerPeriod...),
	}
}

// orientedSnapshot returns line l's parameters as if its from-bus were
// desiredFrom, flipping the sign convention when the stored direction is
// the opposite of desiredFrom->desiredTo.
func orientedSnapshot(n *netmodel.Network, l, desiredFrom int) LineSnapshot {
	s := snapshotOf(n, l)
	if n.LineFT[l].From == desiredFrom {
		return s
	}
	return flipSnapshot(s)
}

// lineBetweenEitherDirection looks for a line connecting a and b regardless
// of orientation. reversed is true when the stored direction is (b, a).
func lineBetweenEitherDirection(n *netmodel.Network, a, b int) (id int, ok bool, reversed bool) {
	if ls := n.LinesBetween(a, b); len(ls) > 0 {
		return ls[0], true, false
	}
	if ls := n.LinesBetween(b, a); len(ls) > 0 {
		return ls[0], true, true
	}
	return 0, false, false
}
