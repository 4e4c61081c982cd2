package solvers

import (
	"fmt"

	"github.com/notargets/goibm/InputParameters"
	"github.com/notargets/goibm/geometry2D"
	"github.com/notargets/goibm/solvers/NavierStokes"
	"github.com/notargets/goibm/solvers/TairaColonius"
	"github.com/notargets/goibm/types"
)

// allocators holds the operator providers of all available solvers
var allocators = map[types.SolverType]func() NavierStokes.OperatorProvider{
	types.NAVIER_STOKES: func() NavierStokes.OperatorProvider {
		return NavierStokes.DefaultOperators{}
	},
	types.TAIRA_COLONIUS: func() NavierStokes.OperatorProvider {
		return TairaColonius.NewOperators()
	},
}

// CreateSolver selects the solver named by ip.SolverType, the returned solver still needs Initialise
func CreateSolver(ip *InputParameters.Parameters, dom *geometry2D.Domain,
	writer NavierStokes.DataWriter) (s *NavierStokes.Solver, err error) {
	var st types.SolverType
	if st, err = types.NewSolverType(ip.SolverType); err != nil {
		return
	}
	alloc, ok := allocators[st]
	if !ok {
		err = fmt.Errorf("no solver available for type %s", st.Print())
		return
	}
	s = NavierStokes.New(ip, dom, alloc(), writer)
	return
}
