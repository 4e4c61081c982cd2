package NavierStokes

import (
	"github.com/notargets/goibm/types"
)

// UpdateBoundaryConditions refreshes the boundary velocities from the current interior field
func (s *Solver) UpdateBoundaryConditions() {
	var (
		uc = s.IP.ConvectiveSpeed
		dt = s.IP.Dt
	)
	for _, bl := range types.Boundaries {
		for comp := 0; comp < 2; comp++ {
			bc := s.BCs[bl][comp]
			vals := s.BC[bl].Component(comp)
			for n := range vals {
				switch bc.Type {
				case types.BC_Dirichlet:
					vals[n] = bc.Value
				case types.BC_Neumann:
					vals[n], _ = s.interiorVelocity(bl, comp, n)
				case types.BC_Convective:
					uInt, delta := s.interiorVelocity(bl, comp, n)
					vals[n] -= uc * dt * (vals[n] - uInt) / delta
				}
			}
		}
	}
	s.correctOutflow()
	s.diffusionBoundaryTerms()
}

/*
interiorVelocity returns the velocity on the face next to boundary value n of component comp and
the distance between them. Normal components sit a full cell from the boundary, tangential ones
half a cell.
*/
func (s *Solver) interiorVelocity(bl types.BoundaryLocation, comp, n int) (vel, delta float64) {
	var (
		d      = s.Dom
		nx, ny = d.Nx, d.Ny
	)
	var k int
	switch bl {
	case types.XMinus:
		if comp == 0 {
			k, delta = d.UIndex(0, n), d.Dx[0]
		} else {
			k, delta = d.VIndex(0, n), 0.5*d.Dx[0]
		}
	case types.XPlus:
		if comp == 0 {
			k, delta = d.UIndex(nx-2, n), d.Dx[nx-1]
		} else {
			k, delta = d.VIndex(nx-1, n), 0.5*d.Dx[nx-1]
		}
	case types.YMinus:
		if comp == 0 {
			k, delta = d.UIndex(n, 0), 0.5*d.Dy[0]
		} else {
			k, delta = d.VIndex(n, 0), d.Dy[0]
		}
	case types.YPlus:
		if comp == 0 {
			k, delta = d.UIndex(n, ny-1), 0.5*d.Dy[ny-1]
		} else {
			k, delta = d.VIndex(n, ny-2), d.Dy[ny-1]
		}
	}
	vel = s.Flux[k] / d.FaceLength(k)
	return
}

// normal returns the normal velocity component index, face lengths and inward sign of a boundary
func (s *Solver) normal(bl types.BoundaryLocation) (comp int, h []float64, sign float64) {
	switch bl {
	case types.XMinus:
		return 0, s.Dom.Dy, 1
	case types.XPlus:
		return 0, s.Dom.Dy, -1
	case types.YMinus:
		return 1, s.Dom.Dx, 1
	default:
		return 1, s.Dom.Dx, -1
	}
}

func (s *Solver) isOutflow(bl types.BoundaryLocation) bool {
	comp, _, _ := s.normal(bl)
	t := s.BCs[bl][comp].Type
	return t == types.BC_Neumann || t == types.BC_Convective
}

// correctOutflow shifts the normal velocity on outflow boundaries so the net boundary flux is zero
func (s *Solver) correctOutflow() {
	var length float64
	for _, bl := range types.Boundaries {
		if !s.isOutflow(bl) {
			continue
		}
		_, h, _ := s.normal(bl)
		for _, hn := range h {
			length += hn
		}
	}
	if length == 0 {
		return
	}
	delta := s.NetBoundaryFlux() / length
	for _, bl := range types.Boundaries {
		if !s.isOutflow(bl) {
			continue
		}
		comp, _, sign := s.normal(bl)
		vals := s.BC[bl].Component(comp)
		for n := range vals {
			vals[n] -= sign * delta
		}
	}
}

// NetBoundaryFlux is the total flux entering the domain through its four sides
func (s *Solver) NetBoundaryFlux() (inflow float64) {
	for _, bl := range types.Boundaries {
		comp, h, sign := s.normal(bl)
		for n, val := range s.BC[bl].Component(comp) {
			inflow += sign * val * h[n]
		}
	}
	return
}
