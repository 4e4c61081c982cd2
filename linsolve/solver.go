package linsolve

import (
	"errors"
	"fmt"

	iterative "gonum.org/v1/exp/linsolve"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goibm/InputParameters"
	"github.com/notargets/goibm/types"
	"github.com/notargets/goibm/utils"
)

var (
	ErrIterationLimit = iterative.ErrIterationLimit
	ErrBreakdown      = errors.New("linsolve: breakdown in the iterative method")
)

type Stats struct {
	Iterations   int
	ResidualNorm float64 // |b - A x| of the returned x
	Converged    bool
}

// Solver applies one configured Krylov method and preconditioner to a sparse operator
type Solver struct {
	Name           string
	Method         types.KrylovMethod
	Preconditioner types.Preconditioner
	Tolerance      float64
	MaxIterations  int
}

func NewSolver(name string, sp InputParameters.SolveParameters) (s *Solver, err error) {
	s = &Solver{
		Name:          name,
		Tolerance:     sp.Tolerance,
		MaxIterations: sp.MaxIterations,
	}
	if s.Method, err = types.NewKrylovMethod(sp.Method); err != nil {
		return
	}
	if s.Preconditioner, err = types.NewPreconditioner(sp.Preconditioner); err != nil {
		return
	}
	if s.Tolerance <= 0 || s.Tolerance >= 1 || s.MaxIterations <= 0 {
		err = fmt.Errorf("%s: tolerance must lie in (0,1) and the iteration budget must be positive", name)
	}
	return
}

func (s *Solver) Print() string {
	return fmt.Sprintf("%s: %s with %s preconditioning, tolerance %8.2e, at most %d iterations",
		s.Name, s.Method.Print(), s.Preconditioner.Print(), s.Tolerance, s.MaxIterations)
}

// operator exposes a CSR matrix as an iterative.MulVecToer
type operator struct {
	a, at utils.CSR
}

func (op *operator) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	a := op.a
	if trans {
		if op.at.IsEmpty() {
			op.at = op.a.Transpose()
		}
		a = op.at
	}
	out := make([]float64, dst.Len())
	a.MulVec(out, rawData(x))
	setData(dst, out)
}

func rawData(v mat.Vector) []float64 {
	if rv, ok := v.(mat.RawVectorer); ok {
		if raw := rv.RawVector(); raw.Inc == 1 {
			return raw.Data[:raw.N]
		}
	}
	return mat.Col(nil, 0, v)
}

func setData(dst *mat.VecDense, data []float64) {
	if raw := dst.RawVector(); raw.Inc == 1 {
		copy(raw.Data[:raw.N], data)
		return
	}
	for i, v := range data {
		dst.SetVec(i, v)
	}
}

func (s *Solver) residualNorm(A utils.CSR, x, b []float64) float64 {
	r := make([]float64, len(b))
	A.MulVec(r, x)
	floats.Sub(r, b)
	return floats.Norm(r, 2)
}

/*
Solve solves A*x = b using x as the initial guess and overwrites x with the solution.
A non converged solve still overwrites x with the last iterate and returns an error wrapping
ErrIterationLimit, a breakdown leaves x untouched and wraps ErrBreakdown.
*/
func (s *Solver) Solve(A utils.CSR, x, b []float64) (stats Stats, err error) {
	nr, nc := A.Dims()
	if nr != nc || len(x) != nc || len(b) != nr {
		panic(fmt.Errorf("%s: operator %s is %d x %d but the unknowns have length %d and the rhs %d",
			s.Name, A.Name(), nr, nc, len(x), len(b)))
	}
	bNorm := floats.Norm(b, 2)
	if bNorm == 0 {
		for i := range x {
			x[i] = 0
		}
		stats.Converged = true
		return
	}
	if stats.ResidualNorm = s.residualNorm(A, x, b); stats.ResidualNorm <= s.Tolerance*bNorm {
		stats.Converged = true
		return
	}
	settings := &iterative.Settings{
		InitX:         mat.NewVecDense(len(x), append([]float64{}, x...)),
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
	}
	if s.Preconditioner == types.PRECOND_DIAGONAL {
		inv := A.Diagonal()
		for i, d := range inv {
			if d != 0 {
				inv[i] = 1 / d
			} else {
				inv[i] = 1
			}
		}
		settings.PreconSolve = func(dst *mat.VecDense, rhs mat.Vector, trans bool) error {
			r := rawData(rhs)
			out := make([]float64, len(inv))
			for i := range out {
				out[i] = inv[i] * r[i]
			}
			setData(dst, out)
			return nil
		}
	}
	var method iterative.Method
	switch s.Method {
	case types.KRYLOV_BICGSTAB:
		method = &iterative.BiCGStab{}
	default:
		method = &iterative.CG{}
	}
	res, lerr := iterative.Iterative(&operator{a: A}, mat.NewVecDense(len(b), append([]float64{}, b...)),
		method, settings)
	if res == nil || res.X == nil {
		err = fmt.Errorf("%s: %w: %v", s.Name, ErrBreakdown, lerr)
		return
	}
	stats.Iterations = res.Stats.Iterations
	xNew := rawData(res.X)
	if utils.IsNan(xNew) {
		err = fmt.Errorf("%s: %w: non finite iterate after %d iterations", s.Name, ErrBreakdown,
			stats.Iterations)
		return
	}
	if lerr != nil && !errors.Is(lerr, ErrIterationLimit) {
		err = fmt.Errorf("%s: %w: %v", s.Name, ErrBreakdown, lerr)
		return
	}
	copy(x, xNew)
	stats.ResidualNorm = s.residualNorm(A, x, b)
	if lerr != nil {
		err = fmt.Errorf("%s: %w after %d iterations, residual %8.2e", s.Name, lerr,
			stats.Iterations, stats.ResidualNorm)
		return
	}
	stats.Converged = true
	return
}
