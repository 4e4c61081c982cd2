package integration

import (
	"fmt"

	"github.com/notargets/goibm/types"
)

/*
Scheme holds the per sub-step coefficients of the fractional step time integration.

Each sub-step k advances

	M(q^k - q^(k-1)) = -Gamma[k]*H^(k-1) - Zeta[k]*H^(k-2)
	                   + AlphaImplicit[k]*L*q^k + AlphaExplicit[k]*L*q^(k-1) - Q*lambda

where H is the explicit convection term and L the viscous operator.
*/
type Scheme struct {
	Convection, Diffusion types.TimeScheme
	SubSteps              int
	Gamma, Zeta           []float64
	AlphaImplicit         []float64
	AlphaExplicit         []float64
}

func NewScheme(conv, diff types.TimeScheme) (s Scheme, err error) {
	s = Scheme{Convection: conv, Diffusion: diff}
	switch conv {
	case types.EULER_EXPLICIT:
		s.SubSteps = 1
		s.Gamma, s.Zeta = []float64{1}, []float64{0}
	case types.ADAMS_BASHFORTH_2:
		s.SubSteps = 1
		s.Gamma, s.Zeta = []float64{1.5}, []float64{-0.5}
	case types.RUNGE_KUTTA_3:
		s.SubSteps = 3
		s.Gamma = []float64{8. / 15., 5. / 12., 3. / 4.}
		s.Zeta = []float64{0, -17. / 60., -5. / 12.}
	default:
		err = fmt.Errorf("%s can not be used for the convection term", conv.Print())
		return
	}
	s.AlphaImplicit = make([]float64, s.SubSteps)
	s.AlphaExplicit = make([]float64, s.SubSteps)
	for k := 0; k < s.SubSteps; k++ {
		if conv == types.RUNGE_KUTTA_3 {
			// The low storage RK3 pairs with a Crank-Nicolson split weighted by the sub-step fraction
			if diff != types.CRANK_NICOLSON {
				err = fmt.Errorf("RUNGE_KUTTA_3 convection requires CRANK_NICOLSON diffusion, have %s", diff.Print())
				return
			}
			s.AlphaImplicit[k] = 0.5 * (s.Gamma[k] + s.Zeta[k])
			s.AlphaExplicit[k] = 0.5 * (s.Gamma[k] + s.Zeta[k])
			continue
		}
		switch diff {
		case types.EULER_EXPLICIT:
			s.AlphaImplicit[k], s.AlphaExplicit[k] = 0, 1
		case types.EULER_IMPLICIT:
			s.AlphaImplicit[k], s.AlphaExplicit[k] = 1, 0
		case types.CRANK_NICOLSON:
			s.AlphaImplicit[k], s.AlphaExplicit[k] = 0.5, 0.5
		default:
			err = fmt.Errorf("%s can not be used for the diffusion term", diff.Print())
			return
		}
	}
	return
}

func (s Scheme) Print() string {
	return fmt.Sprintf("Convection: %s, Diffusion: %s, %d sub-step(s)",
		s.Convection.Print(), s.Diffusion.Print(), s.SubSteps)
}
