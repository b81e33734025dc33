// Package linalg provides the small dense-matrix kernel the reduction
// engine needs to form and invert local bus-susceptance blocks during Kron
// elimination. It is deliberately narrow: a row-major Dense
// matrix type plus the Doolittle LU decomposition and inverse built on top
// of it, trimmed to exactly what the engine exercises — the local
// B-matrix of an eliminated bus is at most a handful of rows, so no
// pivoting or sparse representation is warranted.
package linalg
