package linalg

// LU performs Doolittle decomposition A = L*U with unit diagonal on L (no
// pivoting). The local B-matrices this package inverts are tiny (k+1 is
// at most a handful of rows) and symmetric positive (semi-)definite in
// the well-posed case, so the lack of pivoting trades stability for
// determinism.
func LU(m *Dense) (*Dense, *Dense, error) {
	if m.r != m.c {
		return nil, nil, linalgErrorf("LU", ErrNonSquare)
	}
	n := m.r
	l, err := NewDense(n, n)
	if err != nil {
		return nil, nil, linalgErrorf("LU", err)
	}
	u, err := NewDense(n, n)
	if err != nil {
		return nil, nil, linalgErrorf("LU", err)
	}
	for i := 0; i < n; i++ {
		l.data[i*n+i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := 0.0
			baseI := i * n
			for k := 0; k < i; k++ {
				sum += l.data[baseI+k] * u.data[k*n+j]
			}
			u.data[baseI+j] = m.data[baseI+j] - sum
		}
		for j := i + 1; j < n; j++ {
			sum := 0.0
			baseJ := j * n
			for k := 0; k < i; k++ {
				sum += l.data[baseJ+k] * u.data[k*n+i]
			}
			pivot := u.data[i*n+i]
			if pivot == 0 {
				return nil, nil, linalgErrorf("LU", ErrSingular)
			}
			l.data[baseJ+i] = (m.data[baseJ+i] - sum) / pivot
		}
	}
	return l, u, nil
}

// Inverse computes A^-1 via Doolittle LU without pivoting.
func Inverse(m *Dense) (*Dense, error) {
	if m.r != m.c {
		return nil, linalgErrorf("Inverse", ErrNonSquare)
	}
	l, u, err := LU(m)
	if err != nil {
		return nil, linalgErrorf("Inverse", err)
	}

	n := m.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, linalgErrorf("Inverse", err)
	}

	y := make([]float64, n)
	x := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := 0; i < n; i++ {
			sum := 0.0
			baseLi := i * n
			for k := 0; k < i; k++ {
				sum += l.data[baseLi+k] * y[k]
			}
			if i == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		for i := n - 1; i >= 0; i-- {
			sum := 0.0
			baseUi := i * n
			for k := i + 1; k < n; k++ {
				sum += u.data[baseUi+k] * x[k]
			}
			pivot := u.data[baseUi+i]
			if pivot == 0 {
				return nil, linalgErrorf("Inverse", ErrSingular)
			}
			x[i] = (y[i] - sum) / pivot
		}
		for i := 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
