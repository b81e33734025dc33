package reduction

// LineSnapshot captures the electrical parameters of a line that the
// combiner and rules need, independent of its id or endpoints.
type LineSnapshot struct {
	X                 float64
	UB, LB            []float64
	ActiveBounds      bool
	ActiveUB, ActiveLB bool
	ActiveUBPerPeriod, ActiveLBPerPeriod []bool
}

// CombineParallel folds two branches sharing a common endpoint pair into
// the single equivalent branch. y is the share of unit injected flow
// carried by branch A.
//
//	x   = xA*xB / (xA+xB)
//	y   = xA / (xA+xB)
//	ub  = min(ubA + y*ubB, ubB + (1-y)*ubA)   (element-wise)
//	lb  = max(lbA + y*lbB, lbB + (1-y)*lbA)   (element-wise)
//	activeBounds = activeBoundsA OR activeBoundsB
//	per-period and per-direction flags combine the same way (OR, via max).
func CombineParallel(a, b LineSnapshot) LineSnapshot {
	x := a.X * b.X / (a.X + b.X)
	y := a.X / (a.X + b.X)

	t := len(a.UB)
	ub := make([]float64, t)
	lb := make([]float64, t)
	for i := 0; i < t; i++ {
		ub[i] = min(a.UB[i]+y*b.UB[i], b.UB[i]+(1-y)*a.UB[i])
		lb[i] = max(a.LB[i]+y*b.LB[i], b.LB[i]+(1-y)*a.LB[i])
	}

	activeUBPerPeriod := make([]bool, t)
	activeLBPerPeriod := make([]bool, t)
	for i := 0; i < t; i++ {
		activeUBPerPeriod[i] = a.ActiveUBPerPeriod[i] || b.ActiveUBPerPeriod[i]
		activeLBPerPeriod[i] = a.ActiveLBPerPeriod[i] || b.ActiveLBPerPeriod[i]
	}

	return LineSnapshot{
		X:                 x,
		UB:                ub,
		LB:                lb,
		ActiveBounds:      a.ActiveBounds || b.ActiveBounds,
		ActiveUB:          a.ActiveUB || b.ActiveUB,
		ActiveLB:          a.ActiveLB || b.ActiveLB,
		ActiveUBPerPeriod: activeUBPerPeriod,
		ActiveLBPerPeriod: activeLBPerPeriod,
	}
}
