// Package reduction implements the network reduction engine: the fixed
// point driver and the four topology-specific rules (R1-R4) plus the
// generalized n-connection Kron elimination (R5) that together eliminate
// redundant or uninteresting buses and lines from a netmodel.Network while
// preserving its observable response at the surviving buses.
//
// Within one driver iteration, rules run strictly R1 -> R2 -> update ->
// R3 -> R4 -> R5, candidate sets are recomputed between sweeps, and all
// tie-breaks use ascending bus id.
//
// Reduce is the single entry point; everything else is exported mainly so
// tests can exercise each rule in isolation.
package reduction

// MaxFlow is the engine constant treated as "unbounded-equivalent": a line
// flow bound whose magnitude is >= MaxFlow is considered unbounded for the
// purposes of R3's admissibility check. The threshold is MaxFlow itself; it
// is not divided by Params.PowerBase.
const MaxFlow = 999999.0
