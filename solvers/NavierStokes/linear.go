package NavierStokes

import (
	"log"
)

// SolveIntermediateVelocity solves A q* = rhs1 starting from q
func (s *Solver) SolveIntermediateVelocity() {
	copy(s.FluxStar, s.Flux)
	stats, err := s.velocitySolver.Solve(s.A, s.FluxStar, s.RHS1)
	s.State.IterationCount1 = stats.Iterations
	if err != nil {
		s.State.NonConverged1++
		log.Printf("step %d, sub-step %d: %v", s.State.TimeStep, s.State.SubStep, err)
	}
}

// SolvePoisson solves C lambda = rhs2 starting from the previous lambda
func (s *Solver) SolvePoisson() {
	stats, err := s.poissonSolver.Solve(s.C, s.Lambda, s.RHS2)
	s.State.IterationCount2 = stats.Iterations
	if err != nil {
		s.State.NonConverged2++
		log.Printf("step %d, sub-step %d: %v", s.State.TimeStep, s.State.SubStep, err)
	}
}

// ProjectionStep saves q into q_old and projects q* with q = q* - BN Q lambda
func (s *Solver) ProjectionStep() {
	copy(s.FluxOld, s.Flux)
	s.Q.MulVec(s.Temp1, s.Lambda)
	s.BN.MulVec(s.Temp2, s.Temp1)
	for k := range s.Flux {
		s.Flux[k] = s.FluxStar[k] - s.Temp2[k]
	}
}
