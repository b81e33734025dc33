package linalg

// Dense is a row-major matrix of float64 values: r is rows, c is columns,
// data holds r*c elements in row-major order.
type Dense struct {
	r, c int
	data []float64
}

// NewDense allocates an r x c zero matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, linalgErrorf("NewDense", ErrInvalidDimensions)
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, linalgErrorf("Dense.At", ErrIndexOutOfBounds)
	}
	return row*m.c + col, nil
}

// At returns the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// Set assigns v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)
	return &Dense{r: m.r, c: m.c, data: cp}
}

// MulTransposeDiagMul computes Aᵀ * diag(y) * A for an m x n matrix A and a
// length-m vector y, returning the n x n result. This is the bus
// susceptance matrix B = Aᵀ Y A, specialized to a diagonal Y so no
// intermediate m x n matrix needs to be materialized.
func MulTransposeDiagMul(a *Dense, y []float64) (*Dense, error) {
	if len(y) != a.r {
		return nil, linalgErrorf("MulTransposeDiagMul", ErrDimensionMismatch)
	}
	b, err := NewDense(a.c, a.c)
	if err != nil {
		return nil, linalgErrorf("MulTransposeDiagMul", err)
	}
	for k := 0; k < a.r; k++ {
		yk := y[k]
		if yk == 0 {
			continue
		}
		base := k * a.c
		for i := 0; i < a.c; i++ {
			ai := a.data[base+i]
			if ai == 0 {
				continue
			}
			rowBase := i * a.c
			for j := 0; j < a.c; j++ {
				b.data[rowBase+j] += ai * yk * a.data[base+j]
			}
		}
	}
	return b, nil
}

// Sub returns a - b element-wise.
func Sub(a, b *Dense) (*Dense, error) {
	if a.r != b.r || a.c != b.c {
		return nil, linalgErrorf("Sub", ErrDimensionMismatch)
	}
	res, err := NewDense(a.r, a.c)
	if err != nil {
		return nil, linalgErrorf("Sub", err)
	}
	for i := range a.data {
		res.data[i] = a.data[i] - b.data[i]
	}
	return res, nil
}

// Mul computes a * b.
func Mul(a, b *Dense) (*Dense, error) {
	if a.c != b.r {
		return nil, linalgErrorf("Mul", ErrDimensionMismatch)
	}
	res, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, linalgErrorf("Mul", err)
	}
	for i := 0; i < a.r; i++ {
		rowOffsetA := i * a.c
		rowOffsetR := i * b.c
		for k := 0; k < a.c; k++ {
			av := a.data[rowOffsetA+k]
			if av == 0 {
				continue
			}
			rowOffsetB := k * b.c
			for j := 0; j < b.c; j++ {
				res.data[rowOffsetR+j] += av * b.data[rowOffsetB+j]
			}
		}
	}
	return res, nil
}

// Submatrix extracts the block m[rows, cols] into a new Dense, preserving
// the order of the given row/col index lists (used to slice B into
// B_ff, B_fe, B_ee blocks).
func (m *Dense) Submatrix(rows, cols []int) *Dense {
	res := &Dense{r: len(rows), c: len(cols), data: make([]float64, len(rows)*len(cols))}
	for i, ri := range rows {
		for j, cj := range cols {
			res.data[i*res.c+j] = m.data[ri*m.c+cj]
		}
	}
	return res
}
