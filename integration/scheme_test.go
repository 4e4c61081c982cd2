package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goibm/types"
)

func TestSchemes(t *testing.T) {
	// A full step must integrate every term with unit weight
	consistent := func(s Scheme) {
		var conv, diff float64
		for k := 0; k < s.SubSteps; k++ {
			conv += s.Gamma[k] + s.Zeta[k]
			diff += s.AlphaImplicit[k] + s.AlphaExplicit[k]
		}
		assert.InDelta(t, 1, conv, 1.e-14, s.Print())
		assert.InDelta(t, 1, diff, 1.e-14, s.Print())
	}
	for _, conv := range []types.TimeScheme{types.EULER_EXPLICIT, types.ADAMS_BASHFORTH_2} {
		for _, diff := range []types.TimeScheme{types.EULER_EXPLICIT, types.EULER_IMPLICIT, types.CRANK_NICOLSON} {
			s, err := NewScheme(conv, diff)
			require.NoError(t, err)
			assert.Equal(t, 1, s.SubSteps)
			consistent(s)
		}
	}
	s, err := NewScheme(types.RUNGE_KUTTA_3, types.CRANK_NICOLSON)
	require.NoError(t, err)
	assert.Equal(t, 3, s.SubSteps)
	consistent(s)
	assert.InDelta(t, 4./15., s.AlphaImplicit[0], 1.e-15)

	s, err = NewScheme(types.ADAMS_BASHFORTH_2, types.CRANK_NICOLSON)
	require.NoError(t, err)
	assert.Equal(t, 1.5, s.Gamma[0])
	assert.Equal(t, -0.5, s.Zeta[0])
	assert.Equal(t, 0.5, s.AlphaImplicit[0])

	_, err = NewScheme(types.RUNGE_KUTTA_3, types.EULER_IMPLICIT)
	assert.Error(t, err)
	_, err = NewScheme(types.CRANK_NICOLSON, types.EULER_IMPLICIT)
	assert.Error(t, err)
	_, err = NewScheme(types.EULER_EXPLICIT, types.ADAMS_BASHFORTH_2)
	assert.Error(t, err)
}
