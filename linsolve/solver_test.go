package linsolve

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goibm/InputParameters"
	"github.com/notargets/goibm/utils"
)

// poisson1D returns the n x n second difference matrix with a variable diagonal shift
func poisson1D(n int, shift func(i int) float64) utils.CSR {
	dok := utils.NewDOK(n, n)
	for i := 0; i < n; i++ {
		dok.Set(i, i, 2+shift(i))
		if i > 0 {
			dok.Set(i, i-1, -1)
		}
		if i < n-1 {
			dok.Set(i, i+1, -1)
		}
	}
	A := dok.ToCSR()
	A.SetReadOnly("poisson1D")
	return A
}

func residual(A utils.CSR, x, b []float64) (r float64) {
	ax := make([]float64, len(b))
	A.MulVec(ax, x)
	for i := range b {
		r = math.Max(r, math.Abs(ax[i]-b[i]))
	}
	return
}

func TestSolvers(t *testing.T) {
	n := 50
	A := poisson1D(n, func(i int) float64 { return 0.1 * float64(i%7) })
	b := make([]float64, n)
	for i := range b {
		b[i] = math.Sin(float64(i))
	}
	for _, method := range []string{"CG", "BiCGStab"} {
		for _, precond := range []string{"NONE", "DIAGONAL"} {
			s, err := NewSolver("test", InputParameters.SolveParameters{
				Method: method, Preconditioner: precond, Tolerance: 1.e-10, MaxIterations: 500,
			})
			require.NoError(t, err)
			x := make([]float64, n)
			stats, err := s.Solve(A, x, b)
			require.NoError(t, err, s.Print())
			assert.True(t, stats.Converged)
			assert.Greater(t, stats.Iterations, 0)
			assert.LessOrEqual(t, stats.Iterations, 500)
			assert.Less(t, residual(A, x, b), 1.e-8, s.Print())

			// Warm start from the solution converges without iterating
			stats, err = s.Solve(A, x, b)
			require.NoError(t, err)
			assert.Equal(t, 0, stats.Iterations)
		}
	}
}

func TestNonsymmetric(t *testing.T) {
	n := 30
	dok := utils.NewDOK(n, n)
	for i := 0; i < n; i++ {
		dok.Set(i, i, 4)
		if i > 0 {
			dok.Set(i, i-1, -2)
		}
		if i < n-1 {
			dok.Set(i, i+1, -1)
		}
	}
	A := dok.ToCSR()
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	s, err := NewSolver("upwind", InputParameters.SolveParameters{
		Method: "BiCGStab", Preconditioner: "DIAGONAL", Tolerance: 1.e-10, MaxIterations: 200,
	})
	require.NoError(t, err)
	x := make([]float64, n)
	_, err = s.Solve(A, x, b)
	require.NoError(t, err)
	assert.Less(t, residual(A, x, b), 1.e-8)
}

func TestIterationBudget(t *testing.T) {
	n := 200
	A := poisson1D(n, func(int) float64 { return 0 })
	b := make([]float64, n)
	b[n/2] = 1
	s, err := NewSolver("budget", InputParameters.SolveParameters{
		Method: "CG", Preconditioner: "NONE", Tolerance: 1.e-12, MaxIterations: 5,
	})
	require.NoError(t, err)
	x := make([]float64, n)
	stats, err := s.Solve(A, x, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIterationLimit))
	assert.False(t, stats.Converged)
	assert.Greater(t, stats.Iterations, 0)
	assert.LessOrEqual(t, stats.Iterations, 5)
	// The last iterate is kept and reduces the residual
	assert.NotEqual(t, 0., x[n/2])
	assert.Less(t, stats.ResidualNorm, 1.)
}

func TestZeroRHS(t *testing.T) {
	A := poisson1D(10, func(int) float64 { return 0 })
	s, err := NewSolver("zero", InputParameters.SolveParameters{
		Method: "CG", Preconditioner: "DIAGONAL", Tolerance: 1.e-8, MaxIterations: 10,
	})
	require.NoError(t, err)
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	stats, err := s.Solve(A, x, make([]float64, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Iterations)
	assert.Equal(t, make([]float64, 10), x)

	_, err = NewSolver("bad", InputParameters.SolveParameters{Method: "CG", Preconditioner: "NONE"})
	assert.Error(t, err)
	_, err = NewSolver("loose", InputParameters.SolveParameters{
		Method: "CG", Preconditioner: "NONE", Tolerance: 1, MaxIterations: 10,
	})
	assert.Error(t, err)
}

func TestIndefinite(t *testing.T) {
	dok := utils.NewDOK(2, 2)
	dok.Set(0, 0, 1)
	dok.Set(1, 1, -1)
	s, err := NewSolver("indefinite", InputParameters.SolveParameters{
		Method: "CG", Preconditioner: "NONE", Tolerance: 1.e-8, MaxIterations: 10,
	})
	require.NoError(t, err)
	x := make([]float64, 2)
	_, err = s.Solve(dok.ToCSR(), x, []float64{1, 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBreakdown))
}

func TestOperator(t *testing.T) {
	dok := utils.NewDOK(2, 2)
	dok.Set(0, 0, 1)
	dok.Set(0, 1, 2)
	dok.Set(1, 1, 3)
	op := &operator{a: dok.ToCSR()}
	x := mat.NewVecDense(2, []float64{1, 1})
	dst := mat.NewVecDense(2, nil)
	op.MulVecTo(dst, false, x)
	assert.Equal(t, []float64{3, 3}, dst.RawVector().Data)
	op.MulVecTo(dst, true, x)
	assert.Equal(t, []float64{1, 5}, dst.RawVector().Data)
	// Strided vectors go through the copying path
	col := mat.NewDense(2, 2, []float64{1, 0, 1, 0}).ColView(0)
	op.MulVecTo(dst, false, col)
	assert.Equal(t, []float64{3, 3}, dst.RawVector().Data)
}
