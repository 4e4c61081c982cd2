package NavierStokes

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/goibm/InputParameters"
	"github.com/notargets/goibm/geometry2D"
	"github.com/notargets/goibm/integration"
	"github.com/notargets/goibm/linsolve"
	"github.com/notargets/goibm/types"
	"github.com/notargets/goibm/utils"
)

var (
	ErrNotInitialised = errors.New("solver has not been initialised")
	ErrShutDown       = errors.New("solver has been shut down")
	ErrDiverged       = errors.New("solution diverged")
)

type SolverState uint8

const (
	Uninitialized SolverState = iota
	Ready
	Stepping
	Finished
)

var SolverStateNames = map[SolverState]string{
	Uninitialized: "Uninitialized",
	Ready:         "Ready",
	Stepping:      "Stepping",
	Finished:      "Finished",
}

func (ss SolverState) Print() string { return SolverStateNames[ss] }

// StepState is the per step bookkeeping reported to the writer and the console
type StepState struct {
	TimeStep, SubStep                int
	IterationCount1, IterationCount2 int // Velocity and Poisson iterations of the last sub-step
	NonConverged1, NonConverged2     int // Running count of solves that hit the iteration budget
	ForceX, ForceY, Force1           float64
	Time                             float64
	Residual                         float64 // |q(n+1) - q(n)| over the last step
}

// StageTimes accumulates the wall time spent in each stage of the fractional step
type StageTimes struct {
	Boundary   time.Duration // Boundary velocity update
	RHS        time.Duration // Explicit terms and both right hand sides
	Velocity   time.Duration // Intermediate velocity solve
	Poisson    time.Duration // Pressure and constraint force solve
	Projection time.Duration
	Operators  time.Duration // Moving body regeneration
	Force      time.Duration
}

func (st StageTimes) Total() time.Duration {
	return st.Boundary + st.RHS + st.Velocity + st.Poisson + st.Projection + st.Operators + st.Force
}

/*
OperatorProvider supplies the overridable pieces of the fractional step. Every method receives
the solver it acts on, variants embed DefaultOperators and replace what they change.
*/
type OperatorProvider interface {
	Name() string
	// Setup runs before any allocation and may set QCoeff.
	Setup(s *Solver) error
	// LambdaSize is the number of pressure and constraint unknowns.
	LambdaSize(s *Solver) int
	GenerateL(s *Solver)
	GenerateA(s *Solver, alpha float64)
	GenerateQT(s *Solver)
	GenerateRN(s *Solver)
	GenerateBC1(s *Solver)
	GenerateBC2(s *Solver)
	// UpdateSolverState refreshes anything that depends on time, an error ends the run.
	UpdateSolverState(s *Solver) error
	CalculateForce(s *Solver)
}

// DataWriter persists the solution history, a nil writer disables output
type DataWriter interface {
	WriteGrid(dom *geometry2D.Domain) error
	WriteIterations(st StepState) error
	WriteForces(st StepState) error
	WriteSnapshot(step int, q, lambda []float64) error
	Close() error
}

// BoundaryValues holds the velocities on one side of the domain, U and V are the x and y components
type BoundaryValues struct {
	U, V []float64
}

func (bv BoundaryValues) Component(comp int) []float64 {
	if comp == 0 {
		return bv.U
	}
	return bv.V
}

/*
Solver advances the incompressible Navier-Stokes equations on a staggered grid with the
fractional step method. The unknowns q are face fluxes, lambda holds the pressure followed by any
constraint forces. Each sub-step solves

	A q* = rn + bc1
	C lambda = QT q* - bc2,  C = QT BN Q
	q = q* - BN Q lambda
*/
type Solver struct {
	IP       *InputParameters.Parameters
	Dom      *geometry2D.Domain
	Scheme   integration.Scheme
	Provider OperatorProvider
	Writer   DataWriter
	BCs      [4][2]InputParameters.BoundaryCondition

	QCoeff    float64 // Scaling of the constraint rows beyond the pressure block
	NumLambda int

	M, Minv, L, A, QT, Q, BN, C utils.CSR

	Flux, FluxStar, FluxOld []float64 // q, q*, q at the previous sub-step
	Lambda                  []float64
	RN, H                   []float64
	RHS1, RHS2              []float64
	BC1, BC2                []float64
	Temp1, Temp2            []float64
	LBC                     []float64 // Viscous coupling to the boundary velocities
	BC                      [4]BoundaryValues

	State  StepState
	Timing StageTimes

	state          SolverState
	alphaAssembled float64
	released       bool
	hValid         bool
	viscousLinks   []viscousLink
	velocitySolver *linsolve.Solver
	poissonSolver  *linsolve.Solver
	plot           *centrelinePlot
}

// New returns an uninitialised solver, a nil provider selects DefaultOperators
func New(ip *InputParameters.Parameters, dom *geometry2D.Domain, provider OperatorProvider,
	writer DataWriter) (s *Solver) {
	if provider == nil {
		provider = DefaultOperators{}
	}
	s = &Solver{
		IP:       ip,
		Dom:      dom,
		Provider: provider,
		Writer:   writer,
		QCoeff:   1,
	}
	return
}

func (s *Solver) Name() string { return s.Provider.Name() }

func (s *Solver) Status() SolverState { return s.state }

func (s *Solver) Initialise() (err error) {
	if s.state != Uninitialized {
		return fmt.Errorf("%s: initialise called in state %s", s.Name(), s.state.Print())
	}
	if s.IP == nil || s.Dom == nil {
		return fmt.Errorf("%s: parameters and domain are required", s.Name())
	}
	if err = s.IP.Validate(); err != nil {
		return fmt.Errorf("%s: %w", s.Name(), err)
	}
	if err = s.Dom.Validate(); err != nil {
		return fmt.Errorf("%s: %w", s.Name(), err)
	}
	var conv, diff types.TimeScheme
	if conv, diff, err = s.IP.Schemes(); err != nil {
		return
	}
	if s.Scheme, err = integration.NewScheme(conv, diff); err != nil {
		return
	}
	if s.BCs, err = s.IP.BoundaryConditions(); err != nil {
		return
	}
	if s.velocitySolver, err = linsolve.NewSolver("velocity", s.IP.VelocitySolve); err != nil {
		return
	}
	if s.poissonSolver, err = linsolve.NewSolver("poisson", s.IP.PoissonSolve); err != nil {
		return
	}
	if err = s.Provider.Setup(s); err != nil {
		return fmt.Errorf("%s: %w", s.Name(), err)
	}
	s.NumLambda = s.Provider.LambdaSize(s)
	s.initialiseArrays(s.Dom.NumQ(), s.NumLambda)
	s.initialiseFluxes()
	s.initialiseBoundaryArrays()
	s.assembleMatrices()

	s.State = StepState{TimeStep: s.IP.StartStep, Time: float64(s.IP.StartStep) * s.IP.Dt}
	if s.Writer != nil {
		if err = s.Writer.WriteGrid(s.Dom); err != nil {
			return
		}
	}
	s.state = Ready
	return
}

func (s *Solver) initialiseArrays(numQ, numLambda int) {
	alloc := func(n int) []float64 { return make([]float64, n) }
	s.Flux, s.FluxStar, s.FluxOld = alloc(numQ), alloc(numQ), alloc(numQ)
	s.RN, s.H, s.RHS1, s.BC1 = alloc(numQ), alloc(numQ), alloc(numQ), alloc(numQ)
	s.Temp1, s.Temp2, s.LBC = alloc(numQ), alloc(numQ), alloc(numQ)
	s.Lambda, s.RHS2, s.BC2 = alloc(numLambda), alloc(numLambda), alloc(numLambda)
	s.hValid = false
}

// initialiseFluxes sets the uniform initial velocity plus an optional divergent perturbation,
// the first projection removes the divergence
func (s *Solver) initialiseFluxes() {
	var (
		d      = s.Dom
		u0, v0 = s.IP.InitialVelocity[0], s.IP.InitialVelocity[1]
		eps    = s.IP.Perturbation
		lx, ly = d.X[d.Nx] - d.X[0], d.Y[d.Ny] - d.Y[0]
	)
	for k := 0; k < d.NumU(); k++ {
		s.Flux[k] = u0 * d.FaceLength(k)
	}
	for k := d.NumU(); k < d.NumQ(); k++ {
		x, y := d.FacePosition(k)
		v := v0 + eps*math.Sin(2*math.Pi*(x-d.X[0])/lx)*math.Sin(math.Pi*(y-d.Y[0])/ly)
		s.Flux[k] = v * d.FaceLength(k)
	}
	copy(s.FluxOld, s.Flux)
}

func (s *Solver) initialiseBoundaryArrays() {
	nx, ny := s.Dom.Nx, s.Dom.Ny
	s.BC[types.XMinus] = BoundaryValues{U: make([]float64, ny), V: make([]float64, ny-1)}
	s.BC[types.XPlus] = BoundaryValues{U: make([]float64, ny), V: make([]float64, ny-1)}
	s.BC[types.YMinus] = BoundaryValues{U: make([]float64, nx-1), V: make([]float64, nx)}
	s.BC[types.YPlus] = BoundaryValues{U: make([]float64, nx-1), V: make([]float64, nx)}
	for _, bl := range types.Boundaries {
		for comp := 0; comp < 2; comp++ {
			val := s.BCs[bl][comp].Value
			if s.BCs[bl][comp].Type != types.BC_Dirichlet {
				val = s.IP.InitialVelocity[comp]
			}
			floats.AddConst(val, s.BC[bl].Component(comp))
		}
	}
	s.correctOutflow()
	s.viscousLinks = s.buildViscousLinks()
	s.diffusionBoundaryTerms()
}

func (s *Solver) assembleMatrices() {
	alpha := s.Scheme.AlphaImplicit[0]
	s.GenerateM()
	s.Provider.GenerateL(s)
	s.Provider.GenerateA(s, alpha)
	s.Provider.GenerateQT(s)
	s.UpdateQ(s.QCoeff)
	s.GenerateBN(alpha)
	s.GenerateC()
	s.alphaAssembled = alpha
}

// StepTime advances the solution by one time step, all sub-steps of the scheme included
func (s *Solver) StepTime() (err error) {
	switch s.state {
	case Uninitialized:
		return ErrNotInitialised
	case Finished:
		return ErrShutDown
	}
	s.state = Stepping
	start := append([]float64{}, s.Flux...)
	mark := time.Now()
	lap := func(d *time.Duration) {
		now := time.Now()
		*d += now.Sub(mark)
		mark = now
	}
	for k := 0; k < s.Scheme.SubSteps; k++ {
		s.State.SubStep = k
		s.UpdateBoundaryConditions()
		lap(&s.Timing.Boundary)
		if alpha := s.Scheme.AlphaImplicit[k]; alpha != s.alphaAssembled {
			s.Provider.GenerateA(s, alpha)
			if s.IP.BNOrder > 1 {
				s.GenerateBN(alpha)
			}
			s.GenerateC()
			s.alphaAssembled = alpha
		}
		s.Provider.GenerateRN(s)
		s.Provider.GenerateBC1(s)
		s.AssembleRHS1()
		lap(&s.Timing.RHS)
		s.SolveIntermediateVelocity()
		lap(&s.Timing.Velocity)

		s.Provider.GenerateBC2(s)
		s.AssembleRHS2()
		lap(&s.Timing.RHS)
		s.SolvePoisson()
		lap(&s.Timing.Poisson)
		s.ProjectionStep()
		lap(&s.Timing.Projection)

		if err = s.Provider.UpdateSolverState(s); err != nil {
			s.state = Finished
			return fmt.Errorf("step %d, sub-step %d: %w", s.State.TimeStep, k, err)
		}
		lap(&s.Timing.Operators)
		s.Provider.CalculateForce(s)
		lap(&s.Timing.Force)
	}
	s.State.TimeStep++
	s.State.Time = float64(s.State.TimeStep) * s.IP.Dt
	s.State.Residual = floats.Distance(s.Flux, start, 2)
	if utils.IsNan(s.Flux) || utils.IsNan(s.Lambda) {
		s.state = Finished
		err = fmt.Errorf("step %d: %w", s.State.TimeStep, ErrDiverged)
	}
	return
}

// SubStepTime is the time reached at the end of the current sub-step
func (s *Solver) SubStepTime() float64 {
	var frac float64
	for k := 0; k <= s.State.SubStep; k++ {
		frac += s.Scheme.Gamma[k] + s.Scheme.Zeta[k]
	}
	return float64(s.State.TimeStep)*s.IP.Dt + frac*s.IP.Dt
}

func (s *Solver) Finished() bool {
	return s.State.TimeStep >= s.IP.NSteps
}

// WriteData records iterations and forces every step and the solution every NSave steps
func (s *Solver) WriteData() (err error) {
	if s.Writer == nil || s.state == Uninitialized {
		return
	}
	if err = s.Writer.WriteIterations(s.State); err != nil {
		return
	}
	if err = s.Writer.WriteForces(s.State); err != nil {
		return
	}
	if s.State.TimeStep%s.IP.NSave == 0 {
		err = s.Writer.WriteSnapshot(s.State.TimeStep, s.Flux, s.Lambda)
	}
	return
}

// ShutDown closes the writer and releases the solver storage, a diverged solver still needs it
func (s *Solver) ShutDown() (err error) {
	if s.released {
		return
	}
	s.released = true
	if s.Writer != nil {
		err = s.Writer.Close()
	}
	s.Flux, s.FluxStar, s.FluxOld, s.Lambda = nil, nil, nil, nil
	s.RN, s.H, s.RHS1, s.RHS2, s.BC1, s.BC2 = nil, nil, nil, nil, nil, nil
	s.Temp1, s.Temp2, s.LBC = nil, nil, nil
	s.M, s.Minv, s.L, s.A = utils.CSR{}, utils.CSR{}, utils.CSR{}, utils.CSR{}
	s.QT, s.Q, s.BN, s.C = utils.CSR{}, utils.CSR{}, utils.CSR{}, utils.CSR{}
	s.state = Finished
	return
}

// DefaultOperators is the plain projection method without immersed bodies
type DefaultOperators struct{}

func (DefaultOperators) Name() string                       { return "Navier-Stokes" }
func (DefaultOperators) LambdaSize(s *Solver) int           { return s.Dom.NumP() }
func (DefaultOperators) GenerateL(s *Solver)                { s.generateLaplacian() }
func (DefaultOperators) GenerateA(s *Solver, alpha float64) { s.generateA(alpha) }
func (DefaultOperators) GenerateQT(s *Solver)               { s.generateQT() }
func (DefaultOperators) GenerateRN(s *Solver)               { s.GenerateRNFull() }
func (DefaultOperators) GenerateBC2(s *Solver)              { s.generateBC2() }
func (DefaultOperators) UpdateSolverState(s *Solver) error  { return nil }
func (DefaultOperators) CalculateForce(s *Solver)           {}

func (DefaultOperators) Setup(s *Solver) error {
	s.QCoeff = 1
	return nil
}

func (DefaultOperators) GenerateBC1(s *Solver) {
	s.GenerateBC1Full(s.Scheme.AlphaImplicit[s.State.SubStep])
}
