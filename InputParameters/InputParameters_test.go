package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goibm/types"
)

func TestParse(t *testing.T) {
	fileInput := []byte(`
Title: Cylinder Re40
Nu: 0.025
Dt: 0.01
NSteps: 400
NSave: 100
ConvectionScheme: ADAMS_BASHFORTH_2
DiffusionScheme: CRANK_NICOLSON
SolverType: TAIRA_COLONIUS
PoissonSolve:
  Method: CG
  Preconditioner: DIAGONAL
  Tolerance: 1.e-6
  MaxIterations: 5000
InitialVelocity: [1, 0]
Domain:
  X:
    - {Start: -2, End: 2, Cells: 40, StretchRatio: 1}
  Y:
    - {Start: -2, End: 2, Cells: 40, StretchRatio: 1}
BCs:
  xMinus:
    u: {Type: DIRICHLET, Value: 1}
  xPlus:
    u: {Type: CONVECTIVE}
    v: {Type: CONVECTIVE}
Bodies:
  - Type: circle
    Center: [0, 0]
    Radius: 0.5
    NumPoints: 32
`)
	ip := NewParameters()
	require.NoError(t, ip.Parse(fileInput))
	require.NoError(t, ip.Validate())
	assert.Equal(t, "Cylinder Re40", ip.Title)
	assert.Equal(t, 0.025, ip.Nu)
	assert.Equal(t, 400, ip.NSteps)
	assert.Equal(t, [2]float64{1, 0}, ip.InitialVelocity)
	assert.Equal(t, 1.e-6, ip.PoissonSolve.Tolerance)
	// Unspecified sections keep their defaults
	assert.Equal(t, "CG", ip.VelocitySolve.Method)
	assert.Equal(t, 10000, ip.VelocitySolve.MaxIterations)
	assert.Equal(t, 1, ip.BNOrder)
	require.Len(t, ip.Domain.X, 1)
	assert.Equal(t, 40, ip.Domain.X[0].Cells)
	require.Len(t, ip.Bodies, 1)
	assert.Equal(t, 0.5, ip.Bodies[0].Radius)

	conv, diff, err := ip.Schemes()
	require.NoError(t, err)
	assert.Equal(t, types.ADAMS_BASHFORTH_2, conv)
	assert.Equal(t, types.CRANK_NICOLSON, diff)

	bcs, err := ip.BoundaryConditions()
	require.NoError(t, err)
	assert.Equal(t, BoundaryCondition{Type: types.BC_Dirichlet, Value: 1}, bcs[types.XMinus][0])
	assert.Equal(t, types.BC_Convective, bcs[types.XPlus][0].Type)
	assert.Equal(t, types.BC_Convective, bcs[types.XPlus][1].Type)
	// Walls by default
	assert.Equal(t, BoundaryCondition{Type: types.BC_Dirichlet}, bcs[types.YPlus][0])
	ip.Print()
}

func TestValidate(t *testing.T) {
	base := func() *Parameters {
		ip := NewParameters()
		ip.Domain.X = []Segment{{Start: 0, End: 1, Cells: 8, StretchRatio: 1}}
		ip.Domain.Y = []Segment{{Start: 0, End: 1, Cells: 8, StretchRatio: 1}}
		return ip
	}
	require.NoError(t, base().Validate())

	ip := base()
	ip.Dt = 0
	assert.Error(t, ip.Validate())

	ip = base()
	ip.BNOrder = 4
	assert.Error(t, ip.Validate())

	ip = base()
	ip.ConvectionScheme = "LEAPFROG"
	assert.Error(t, ip.Validate())

	ip = base()
	ip.VelocitySolve.Tolerance = 2
	assert.Error(t, ip.Validate())

	ip = base()
	ip.PoissonSolve.Method = "GMRES"
	assert.Error(t, ip.Validate())

	ip = base()
	ip.BCs["top"] = map[string]BCValue{"u": {Type: "DIRICHLET", Value: 1}}
	assert.Error(t, ip.Validate())

	ip = base()
	ip.BCs["yPlus"] = map[string]BCValue{"w": {Type: "DIRICHLET", Value: 1}}
	assert.Error(t, ip.Validate())

	ip = base()
	ip.Bodies = []BodyParameters{{Type: "circle", Radius: 0.1, NumPoints: 2}}
	assert.Error(t, ip.Validate())

	ip = base()
	ip.Domain.Y = nil
	assert.Error(t, ip.Validate())
}
