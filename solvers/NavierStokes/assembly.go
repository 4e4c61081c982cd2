package NavierStokes

import (
	"fmt"

	"github.com/notargets/goibm/types"
	"github.com/notargets/goibm/utils"
)

/*
viscousLink couples flux k to a neighbouring flux l with coefficient c, the Laplacian entry is
nu*c/h(l). A boundary link has l < 0 and couples to BC[loc] component comp at position idx.
*/
type viscousLink struct {
	k, l      int
	c         float64
	loc       types.BoundaryLocation
	comp, idx int
}

func (s *Solver) buildViscousLinks() (links []viscousLink) {
	var (
		d      = s.Dom
		nx, ny = d.Nx, d.Ny
		dx, dy = d.Dx, d.Dy
	)
	inner := func(k, l int, c float64) {
		links = append(links, viscousLink{k: k, l: l, c: c})
	}
	bound := func(k int, c float64, loc types.BoundaryLocation, comp, idx int) {
		links = append(links, viscousLink{k: k, l: -1, c: c, loc: loc, comp: comp, idx: idx})
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx-1; i++ {
			k := d.UIndex(i, j)
			w := 0.5 * (dx[i] + dx[i+1])
			if i < nx-2 {
				inner(k, d.UIndex(i+1, j), 1/dx[i+1])
			} else {
				bound(k, 1/dx[i+1], types.XPlus, 0, j)
			}
			if i > 0 {
				inner(k, d.UIndex(i-1, j), 1/dx[i])
			} else {
				bound(k, 1/dx[i], types.XMinus, 0, j)
			}
			if j < ny-1 {
				inner(k, d.UIndex(i, j+1), w/(dy[j]*0.5*(dy[j]+dy[j+1])))
			} else {
				bound(k, w/(dy[j]*0.5*dy[j]), types.YPlus, 0, i)
			}
			if j > 0 {
				inner(k, d.UIndex(i, j-1), w/(dy[j]*0.5*(dy[j]+dy[j-1])))
			} else {
				bound(k, w/(dy[j]*0.5*dy[j]), types.YMinus, 0, i)
			}
		}
	}
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx; i++ {
			k := d.VIndex(i, j)
			w := 0.5 * (dy[j] + dy[j+1])
			if j < ny-2 {
				inner(k, d.VIndex(i, j+1), 1/dy[j+1])
			} else {
				bound(k, 1/dy[j+1], types.YPlus, 1, i)
			}
			if j > 0 {
				inner(k, d.VIndex(i, j-1), 1/dy[j])
			} else {
				bound(k, 1/dy[j], types.YMinus, 1, i)
			}
			if i < nx-1 {
				inner(k, d.VIndex(i+1, j), w/(dx[i]*0.5*(dx[i]+dx[i+1])))
			} else {
				bound(k, w/(dx[i]*0.5*dx[i]), types.XPlus, 1, j)
			}
			if i > 0 {
				inner(k, d.VIndex(i-1, j), w/(dx[i]*0.5*(dx[i]+dx[i-1])))
			} else {
				bound(k, w/(dx[i]*0.5*dx[i]), types.XMinus, 1, j)
			}
		}
	}
	return
}

// GenerateM builds the diagonal mass matrix and its inverse, both scaled by 1/dt
func (s *Solver) GenerateM() {
	var (
		d      = s.Dom
		nx, ny = d.Nx, d.Ny
		dt     = s.IP.Dt
		m      = make([]float64, d.NumQ())
		mInv   = make([]float64, d.NumQ())
	)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx-1; i++ {
			m[d.UIndex(i, j)] = 0.5 * (d.Dx[i] + d.Dx[i+1]) / (d.Dy[j] * dt)
		}
	}
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx; i++ {
			m[d.VIndex(i, j)] = 0.5 * (d.Dy[j] + d.Dy[j+1]) / (d.Dx[i] * dt)
		}
	}
	for k, v := range m {
		if !(v > 0) {
			panic(fmt.Errorf("non positive mass %g at flux %d", v, k))
		}
		mInv[k] = 1 / v
	}
	s.M = utils.NewDiagonal(m)
	s.M.SetReadOnly("M")
	s.Minv = utils.NewDiagonal(mInv)
	s.Minv.SetReadOnly("Minv")
}

// generateLaplacian builds nu*Laplacian in flux space, symmetric on any stretched grid
func (s *Solver) generateLaplacian() {
	var (
		nu  = s.IP.Nu
		nq  = s.Dom.NumQ()
		dok = utils.NewDOK(nq, nq)
	)
	for _, lk := range s.viscousLinks {
		dok.Add(lk.k, lk.k, -nu*lk.c/s.Dom.FaceLength(lk.k))
		if lk.l >= 0 {
			dok.Add(lk.k, lk.l, nu*lk.c/s.Dom.FaceLength(lk.l))
		}
	}
	s.L = dok.ToCSR()
	s.L.SetReadOnly("L")
}

// diffusionBoundaryTerms fills LBC with the part of nu*Laplacian acting on the boundary velocities
func (s *Solver) diffusionBoundaryTerms() {
	nu := s.IP.Nu
	for k := range s.LBC {
		s.LBC[k] = 0
	}
	for _, lk := range s.viscousLinks {
		if lk.l < 0 {
			s.LBC[lk.k] += nu * lk.c * s.BC[lk.loc].Component(lk.comp)[lk.idx]
		}
	}
}

func (s *Solver) generateA(alpha float64) {
	s.A = utils.AddScaled(s.M, -alpha, s.L)
	s.A.SetReadOnly("A")
}

/*
DivergenceDOK returns a numRows x NumQ matrix holding the discrete divergence in its first NumP
rows, the transpose of the gradient with +1 on the downstream cell and -1 on the upstream cell.
*/
func (s *Solver) DivergenceDOK(numRows int) (dok utils.DOK) {
	var (
		d      = s.Dom
		nx, ny = d.Nx, d.Ny
	)
	dok = utils.NewDOK(numRows, d.NumQ())
	for j := 0; j < ny; j++ {
		for i := 0; i < nx-1; i++ {
			k := d.UIndex(i, j)
			dok.Set(d.PIndex(i, j), k, -1)
			dok.Set(d.PIndex(i+1, j), k, 1)
		}
	}
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx; i++ {
			k := d.VIndex(i, j)
			dok.Set(d.PIndex(i, j), k, -1)
			dok.Set(d.PIndex(i, j+1), k, 1)
		}
	}
	return
}

func (s *Solver) generateQT() {
	s.QT = s.DivergenceDOK(s.NumLambda).ToCSR()
}

// GenerateQTRaw is the hook for providers that assemble QT from coordinate arrays, unused by the default operators
func (s *Solver) GenerateQTRaw(rows, cols []int, vals []float64) {}

// UpdateQ scales the constraint rows of QT by gamma and sets Q to the transpose
func (s *Solver) UpdateQ(gamma float64) {
	var (
		np     = s.Dom.NumP()
		nr, nc = s.QT.Dims()
		dok    = utils.NewDOK(nr, nc)
	)
	s.QT.DoNonZero(func(i, j int, v float64) {
		if i >= np {
			v *= gamma
		}
		dok.Set(i, j, v)
	})
	s.QT = dok.ToCSR()
	s.QT.SetReadOnly("QT")
	s.Q = s.QT.Transpose()
	s.Q.SetReadOnly("Q")
}

/*
GenerateBN builds the order N approximate inverse of A

	BN = Minv + (alpha Minv L) Minv + ... + (alpha Minv L)^(N-1) Minv
*/
func (s *Solver) GenerateBN(alpha float64) {
	var (
		order = s.IP.BNOrder
		bn    = s.Minv
	)
	if order > 1 {
		var (
			step = utils.Scale(alpha, utils.Mul(s.Minv, s.L))
			term = s.Minv
		)
		for n := 1; n < order; n++ {
			term = utils.Mul(step, term)
			bn = utils.AddScaled(bn, 1, term)
		}
	}
	s.BN = bn
	s.BN.SetReadOnly("BN")
}

// GenerateC builds C = QT BN Q, the first diagonal entry is doubled to fix the pressure level
func (s *Solver) GenerateC() {
	c := utils.Mul(s.QT, utils.Mul(s.BN, s.Q))
	if nr, _ := c.Dims(); nr != s.NumLambda {
		panic(fmt.Errorf("C has %d rows, expected %d", nr, s.NumLambda))
	}
	c.Set(0, 0, 2*c.At(0, 0))
	s.C = c
	s.C.SetReadOnly("C")
}
