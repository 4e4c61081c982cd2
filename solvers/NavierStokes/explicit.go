package NavierStokes

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/goibm/types"
)

/*
CalculateExplicitQTerms forms the explicit part of the momentum right hand side

	rn = M q - gamma H(q) - zeta H(q_old) + alphaExplicit (L q + Lbc ubc)

H holds the convection term of the previous sub-step and is replaced by H(q).
*/
func (s *Solver) CalculateExplicitQTerms() {
	var (
		k      = s.State.SubStep
		gamma  = s.Scheme.Gamma[k]
		zeta   = s.Scheme.Zeta[k]
		alphaE = s.Scheme.AlphaExplicit[k]
	)
	s.M.MulVec(s.RN, s.Flux)

	s.convection(s.Temp1, s.Flux)
	if !s.hValid {
		// No history on the first step, the multistep scheme starts as forward Euler
		copy(s.H, s.Temp1)
		s.hValid = true
	}
	floats.AddScaled(s.RN, -gamma, s.Temp1)
	floats.AddScaled(s.RN, -zeta, s.H)
	copy(s.H, s.Temp1)

	if alphaE != 0 {
		s.L.MulVec(s.Temp2, s.Flux)
		floats.Add(s.Temp2, s.LBC)
		floats.AddScaled(s.RN, alphaE, s.Temp2)
	}
}

// CalculateExplicitLambdaTerms carries the previous sub-step pressure into multi-stage schemes
func (s *Solver) CalculateExplicitLambdaTerms() {
	zeta := s.Scheme.Zeta[s.State.SubStep]
	if s.Scheme.SubSteps < 2 || zeta == 0 {
		return
	}
	s.Q.MulVec(s.Temp2, s.Lambda)
	floats.AddScaled(s.RN, -zeta, s.Temp2)
}

func (s *Solver) GenerateRNFull() {
	s.CalculateExplicitQTerms()
	s.CalculateExplicitLambdaTerms()
}

// GenerateBC1Full overwrites BC1 with the implicit viscous boundary contribution
func (s *Solver) GenerateBC1Full(alpha float64) {
	for k := range s.BC1 {
		s.BC1[k] = 0
	}
	floats.AddScaled(s.BC1, alpha, s.LBC)
}

/*
generateBC2 overwrites BC2 with the boundary fluxes entering the divergence of each boundary
cell, so that QT q = BC2 holds for a divergence free field. Constraint rows are left at zero.
*/
func (s *Solver) generateBC2() {
	var (
		d      = s.Dom
		nx, ny = d.Nx, d.Ny
	)
	for k := range s.BC2 {
		s.BC2[k] = 0
	}
	for j := 0; j < ny; j++ {
		s.BC2[d.PIndex(0, j)] -= s.BC[types.XMinus].U[j] * d.Dy[j]
		s.BC2[d.PIndex(nx-1, j)] += s.BC[types.XPlus].U[j] * d.Dy[j]
	}
	for i := 0; i < nx; i++ {
		s.BC2[d.PIndex(i, 0)] -= s.BC[types.YMinus].V[i] * d.Dx[i]
		s.BC2[d.PIndex(i, ny-1)] += s.BC[types.YPlus].V[i] * d.Dx[i]
	}
}

func (s *Solver) AssembleRHS1() {
	floats.AddTo(s.RHS1, s.RN, s.BC1)
}

func (s *Solver) AssembleRHS2() {
	s.QT.MulVec(s.RHS2, s.FluxStar)
	floats.Sub(s.RHS2, s.BC2)
}

/*
convection overwrites dst with the conservative central convection term of the flux field q,
integrated over each momentum cell. Corner velocities are linear interpolations, boundary
velocities come from BC.
*/
func (s *Solver) convection(dst, q []float64) {
	var (
		d              = s.Dom
		nx, ny         = d.Nx, d.Ny
		dx, dy         = d.Dx, d.Dy
		bW, bE, bS, bN = s.BC[types.XMinus], s.BC[types.XPlus], s.BC[types.YMinus], s.BC[types.YPlus]
	)
	// u velocity on the vertical face at X[i+1], i = -1 and nx-1 are the x boundaries
	u := func(i, j int) float64 {
		switch {
		case i < 0:
			return bW.U[j]
		case i > nx-2:
			return bE.U[j]
		}
		return q[d.UIndex(i, j)] / dy[j]
	}
	// v velocity on the horizontal face at Y[j+1], j = -1 and ny-1 are the y boundaries
	v := func(i, j int) float64 {
		switch {
		case j < 0:
			return bS.V[i]
		case j > ny-2:
			return bN.V[i]
		}
		return q[d.VIndex(i, j)] / dx[i]
	}
	// u at the node (X[i+1], Y[jn])
	uNode := func(i, jn int) float64 {
		switch jn {
		case 0:
			return bS.U[i]
		case ny:
			return bN.U[i]
		}
		return (u(i, jn-1)*dy[jn] + u(i, jn)*dy[jn-1]) / (dy[jn-1] + dy[jn])
	}
	// v at the node (X[in], Y[j+1])
	vNode := func(in, j int) float64 {
		switch in {
		case 0:
			return bW.V[j]
		case nx:
			return bE.V[j]
		}
		return (v(in-1, j)*dx[in] + v(in, j)*dx[in-1]) / (dx[in-1] + dx[in])
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx-1; i++ {
			var (
				ue, uw = 0.5 * (u(i, j) + u(i+1, j)), 0.5 * (u(i-1, j) + u(i, j))
				un, vn = uNode(i, j+1), vNode(i+1, j)
				us, vs = uNode(i, j), vNode(i+1, j-1)
				w      = 0.5 * (dx[i] + dx[i+1])
			)
			dst[d.UIndex(i, j)] = ue*ue - uw*uw + w/dy[j]*(un*vn-us*vs)
		}
	}
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx; i++ {
			var (
				vn, vs = 0.5 * (v(i, j) + v(i, j+1)), 0.5 * (v(i, j-1) + v(i, j))
				ue, ve = uNode(i, j+1), vNode(i+1, j)
				uw, vw = uNode(i-1, j+1), vNode(i, j)
				w      = 0.5 * (dy[j] + dy[j+1])
			)
			dst[d.VIndex(i, j)] = vn*vn - vs*vs + w/dx[i]*(ue*ve-uw*vw)
		}
	}
}
