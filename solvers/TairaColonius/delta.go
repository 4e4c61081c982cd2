package TairaColonius

import (
	"math"

	"github.com/notargets/goibm/geometry2D"
	"github.com/notargets/goibm/utils"
)

// RomaDelta is the three cell discrete delta function of Roma, Peskin and Berger, r in cell widths
func RomaDelta(r float64) float64 {
	r = math.Abs(r)
	switch {
	case r <= 0.5:
		return (1 + math.Sqrt(1-3*r*r)) / 3
	case r <= 1.5:
		return (5 - 3*r - math.Sqrt(1-3*(1-r)*(1-r))) / 6
	}
	return 0
}

/*
addInterpolation writes into dok the rows interpolating face velocities to the point (px, py),
row xRow for u and yRow for v. The entries act on fluxes, so each weight is divided by the face
length.
*/
func addInterpolation(dok utils.DOK, d *geometry2D.Domain, px, py float64, xRow, yRow int) {
	var (
		ic, jc = geometry2D.FindCell(d.X, px), geometry2D.FindCell(d.Y, py)
		hx, hy = d.Dx[ic], d.Dy[jc]
		iLo    = max(ic-2, 0)
		jLo    = max(jc-2, 0)
	)
	for j := jLo; j <= min(jc+2, d.Ny-1); j++ {
		for i := iLo; i <= min(ic+2, d.Nx-2); i++ {
			w := RomaDelta((d.X[i+1]-px)/hx) * RomaDelta((d.YC[j]-py)/hy)
			if w != 0 {
				k := d.UIndex(i, j)
				dok.Set(xRow, k, w/d.FaceLength(k))
			}
		}
	}
	for j := jLo; j <= min(jc+2, d.Ny-2); j++ {
		for i := iLo; i <= min(ic+2, d.Nx-1); i++ {
			w := RomaDelta((d.XC[i]-px)/hx) * RomaDelta((d.Y[j+1]-py)/hy)
			if w != 0 {
				k := d.VIndex(i, j)
				dok.Set(yRow, k, w/d.FaceLength(k))
			}
		}
	}
}
