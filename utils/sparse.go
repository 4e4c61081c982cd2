package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims and At minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }

func (m DOK) Set(i, j int, val float64) {
	m.checkWritable()
	m.M.Set(i, j, val)
}

// Add accumulates val into entry (i,j)
func (m DOK) Add(i, j int, val float64) {
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

/*
CSR is the storage used for every assembled operator. Operators are frozen with SetReadOnly
once assembled, any later Set panics with the operator's name.
*/
type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

func NewCSR(nr, nc int) (R CSR) {
	R = CSR{
		sparse.NewCSR(nr, nc, nil, nil, nil),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// NewDiagonal returns a square CSR with d along the diagonal
func NewDiagonal(d []float64) (R CSR) {
	var (
		n      = len(d)
		indptr = make([]int, n+1)
		ind    = make([]int, n)
		data   = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		indptr[i+1] = i + 1
		ind[i] = i
		data[i] = d[i]
	}
	R = CSR{
		sparse.NewCSR(n, n, indptr, ind, data),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }
func (m CSR) Name() string        { return m.name }
func (m CSR) IsEmpty() bool       { return m.M == nil }

func (m *CSR) SetReadOnly(name ...string) CSR {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m *CSR) SetWritable() CSR {
	m.readOnly = false
	return *m
}

func (m CSR) Set(i, j int, val float64) {
	m.checkWritable()
	m.M.Set(i, j, val)
}

func (m CSR) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m CSR) DoNonZero(fn func(i, j int, v float64)) {
	m.M.DoNonZero(fn)
}

// MulVec overwrites dst with m*x
func (m CSR) MulVec(dst, x []float64) {
	nr, nc := m.Dims()
	if len(x) != nc || len(dst) != nr {
		panic(fmt.Errorf("dimension mismatch multiplying %s (%d x %d) by a vector of length %d into length %d",
			m.name, nr, nc, len(x), len(dst)))
	}
	for i := range dst {
		dst[i] = 0
	}
	m.M.MulVecTo(dst, false, x)
}

// Diagonal returns a copy of the main diagonal
func (m CSR) Diagonal() (d []float64) {
	nr, nc := m.Dims()
	n := nr
	if nc < n {
		n = nc
	}
	d = make([]float64, n)
	m.DoNonZero(func(i, j int, v float64) {
		if i == j {
			d[i] += v
		}
	})
	return
}

// Transpose builds an independent CSR holding m^T
func (m CSR) Transpose() (R CSR) {
	nr, nc := m.Dims()
	dok := NewDOK(nc, nr)
	m.DoNonZero(func(i, j int, v float64) {
		dok.Add(j, i, v)
	})
	return dok.ToCSR()
}

// Mul returns the sparse product a*b
func Mul(a, b CSR) (R CSR) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		panic(fmt.Errorf("dimension mismatch multiplying %s (%d x %d) by %s (%d x %d)",
			a.name, ar, ac, b.name, br, bc))
	}
	R = NewCSR(ar, bc)
	R.M.Mul(a.M, b.M)
	return
}

// AddScaled returns a + alpha*b
func AddScaled(a CSR, alpha float64, b CSR) (R CSR) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		panic(fmt.Errorf("dimension mismatch adding %s (%d x %d) and %s (%d x %d)",
			a.name, ar, ac, b.name, br, bc))
	}
	dok := NewDOK(ar, ac)
	a.DoNonZero(func(i, j int, v float64) {
		dok.Add(i, j, v)
	})
	b.DoNonZero(func(i, j int, v float64) {
		dok.Add(i, j, alpha*v)
	})
	return dok.ToCSR()
}

// MaxAsymmetry returns max |m(i,j) - m(j,i)| over the stored entries of a square matrix
func (m CSR) MaxAsymmetry() (asym float64) {
	m.DoNonZero(func(i, j int, v float64) {
		if d := v - m.At(j, i); d > asym {
			asym = d
		} else if -d > asym {
			asym = -d
		}
	})
	return
}

// Scale returns alpha*a
func Scale(alpha float64, a CSR) (R CSR) {
	nr, nc := a.Dims()
	dok := NewDOK(nr, nc)
	a.DoNonZero(func(i, j int, v float64) {
		dok.Set(i, j, alpha*v)
	})
	return dok.ToCSR()
}
