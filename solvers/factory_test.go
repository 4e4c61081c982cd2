package solvers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goibm/InputParameters"
	"github.com/notargets/goibm/geometry2D"
)

func TestCreateSolver(t *testing.T) {
	dom := geometry2D.NewUniformDomain(-2, 2, 16, -2, 2, 16)
	ip := InputParameters.NewParameters()
	ip.Domain.X = []InputParameters.Segment{{Start: -2, End: 2, Cells: 16}}
	ip.Domain.Y = []InputParameters.Segment{{Start: -2, End: 2, Cells: 16}}

	s, err := CreateSolver(ip, dom, nil)
	require.NoError(t, err)
	assert.Equal(t, "Navier-Stokes", s.Name())
	require.NoError(t, s.Initialise())
	assert.Equal(t, dom.NumP(), s.NumLambda)

	ip.SolverType = "TAIRA_COLONIUS"
	ip.Bodies = []InputParameters.BodyParameters{{Type: "circle", Radius: 0.5, NumPoints: 16}}
	s, err = CreateSolver(ip, dom, nil)
	require.NoError(t, err)
	assert.Equal(t, "Taira-Colonius", s.Name())
	require.NoError(t, s.Initialise())
	assert.Equal(t, dom.NumP()+32, s.NumLambda)

	ip.SolverType = "LATTICE_BOLTZMANN"
	_, err = CreateSolver(ip, dom, nil)
	assert.Error(t, err)
}
