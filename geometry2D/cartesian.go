package geometry2D

import (
	"fmt"
	"math"

	"github.com/notargets/goibm/InputParameters"
)

/*
Domain is a rectangular, structured and optionally stretched grid with staggered unknowns:
  - pressure (and other cell quantities) at cell centres, Nx x Ny of them
  - u fluxes on the interior vertical faces, (Nx-1) x Ny
  - v fluxes on the interior horizontal faces, Nx x (Ny-1)

The flux unknowns are stored u first, then v, each block row-major in j.
*/
type Domain struct {
	Nx, Ny int
	X, Y   []float64 // Node coordinates, Nx+1 and Ny+1 values
	Dx, Dy []float64 // Cell widths
	XC, YC []float64 // Cell centres
}

func NewDomain(dp InputParameters.DomainParameters) (d *Domain, err error) {
	d = &Domain{}
	if d.X, err = buildNodes(dp.X); err != nil {
		err = fmt.Errorf("x direction: %w", err)
		return
	}
	if d.Y, err = buildNodes(dp.Y); err != nil {
		err = fmt.Errorf("y direction: %w", err)
		return
	}
	d.finish()
	err = d.Validate()
	return
}

// NewUniformDomain returns an evenly spaced nx x ny grid over [x0,x1] x [y0,y1]
func NewUniformDomain(x0, x1 float64, nx int, y0, y1 float64, ny int) (d *Domain) {
	var err error
	d, err = NewDomain(InputParameters.DomainParameters{
		X: []InputParameters.Segment{{Start: x0, End: x1, Cells: nx, StretchRatio: 1}},
		Y: []InputParameters.Segment{{Start: y0, End: y1, Cells: ny, StretchRatio: 1}},
	})
	if err != nil {
		panic(err)
	}
	return
}

func buildNodes(segs []InputParameters.Segment) (nodes []float64, err error) {
	if len(segs) == 0 {
		err = fmt.Errorf("no grid segments")
		return
	}
	nodes = append(nodes, segs[0].Start)
	for is, seg := range segs {
		if is > 0 && seg.Start != segs[is-1].End {
			err = fmt.Errorf("segment %d starts at %g but the previous one ends at %g", is, seg.Start, segs[is-1].End)
			return
		}
		length := seg.End - seg.Start
		if seg.Cells < 1 || length <= 0 {
			err = fmt.Errorf("segment %d needs Cells > 0 and End > Start, have %d cells over [%g,%g]",
				is, seg.Cells, seg.Start, seg.End)
			return
		}
		r := seg.StretchRatio
		if r == 0 {
			r = 1
		}
		if r < 0 {
			err = fmt.Errorf("segment %d has a negative stretch ratio %g", is, r)
			return
		}
		var h float64
		if math.Abs(r-1) < 1.e-12 {
			h = length / float64(seg.Cells)
		} else {
			h = length * (r - 1) / (math.Pow(r, float64(seg.Cells)) - 1)
		}
		x := seg.Start
		for i := 0; i < seg.Cells; i++ {
			x += h
			if i == seg.Cells-1 {
				x = seg.End
			}
			nodes = append(nodes, x)
			h *= r
		}
	}
	return
}

func (d *Domain) finish() {
	d.Nx, d.Ny = len(d.X)-1, len(d.Y)-1
	d.Dx, d.XC = widths(d.X)
	d.Dy, d.YC = widths(d.Y)
}

func widths(nodes []float64) (h, c []float64) {
	n := len(nodes) - 1
	h, c = make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		h[i] = nodes[i+1] - nodes[i]
		c[i] = 0.5 * (nodes[i+1] + nodes[i])
	}
	return
}

// Validate checks the grid metrics, a malformed grid can not be assembled into operators
func (d *Domain) Validate() (err error) {
	if d.Nx < 2 || d.Ny < 2 {
		return fmt.Errorf("grid needs at least 2 cells in each direction, have %d x %d", d.Nx, d.Ny)
	}
	if len(d.Dx) != d.Nx || len(d.Dy) != d.Ny {
		return fmt.Errorf("grid metrics are inconsistent with %d x %d cells", d.Nx, d.Ny)
	}
	for i, h := range d.Dx {
		if !(h > 0) {
			return fmt.Errorf("cell width dx[%d] = %g is not positive", i, h)
		}
	}
	for j, h := range d.Dy {
		if !(h > 0) {
			return fmt.Errorf("cell height dy[%d] = %g is not positive", j, h)
		}
	}
	return
}

func (d *Domain) NumU() int { return (d.Nx - 1) * d.Ny }
func (d *Domain) NumV() int { return d.Nx * (d.Ny - 1) }
func (d *Domain) NumQ() int { return d.NumU() + d.NumV() }
func (d *Domain) NumP() int { return d.Nx * d.Ny }

// UIndex is the flux index of the u face at x = X[i+1], y = YC[j], i in [0,Nx-2]
func (d *Domain) UIndex(i, j int) int { return j*(d.Nx-1) + i }

// VIndex is the flux index of the v face at x = XC[i], y = Y[j+1], j in [0,Ny-2]
func (d *Domain) VIndex(i, j int) int { return d.NumU() + j*d.Nx + i }

func (d *Domain) PIndex(i, j int) int { return j*d.Nx + i }

// FaceLength converts between velocity and flux for flux index k
func (d *Domain) FaceLength(k int) float64 {
	if k < d.NumU() {
		return d.Dy[k/(d.Nx-1)]
	}
	return d.Dx[(k-d.NumU())%d.Nx]
}

// FacePosition returns the location of the face carrying flux k
func (d *Domain) FacePosition(k int) (x, y float64) {
	if k < d.NumU() {
		i, j := k%(d.Nx-1), k/(d.Nx-1)
		return d.X[i+1], d.YC[j]
	}
	kv := k - d.NumU()
	i, j := kv%d.Nx, kv/d.Nx
	return d.XC[i], d.Y[j+1]
}

// FindCell returns the index of the interval of nodes containing x, clamped to the grid
func FindCell(nodes []float64, x float64) (i int) {
	n := len(nodes) - 1
	lo, hi := 0, n
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if nodes[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Velocity converts fluxes to face velocities
func (d *Domain) Velocity(q []float64) (u []float64) {
	u = make([]float64, len(q))
	for k := range q {
		u[k] = q[k] / d.FaceLength(k)
	}
	return
}
