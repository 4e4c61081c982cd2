package NavierStokes

import (
	"sync"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

type centrelinePlot struct {
	once     sync.Once
	chart    *chart2d.Chart2D
	colorMap *utils2.ColorMap
}

/*
PlotCentreline draws u along the vertical line through the middle of the domain and v along the
horizontal one. The chart runs its render loop in its own goroutine.
*/
func (s *Solver) PlotCentreline(fMin, fMax float32, delay time.Duration) {
	var (
		d      = s.Dom
		ic, jc = d.Nx/2 - 1, d.Ny/2 - 1
		uLine  = make([]float64, d.Ny)
		vLine  = make([]float64, d.Nx)
		xMin   = float32(min(d.X[0], d.Y[0]))
		xMax   = float32(max(d.X[d.Nx], d.Y[d.Ny]))
	)
	if s.plot == nil {
		s.plot = &centrelinePlot{}
	}
	p := s.plot
	p.once.Do(func() {
		p.chart = chart2d.NewChart2D(1024, 768, xMin, xMax, fMin, fMax)
		p.colorMap = utils2.NewColorMap(-1, 1, 1)
		go p.chart.Plot()
	})
	for j := range uLine {
		k := d.UIndex(ic, j)
		uLine[j] = s.Flux[k] / d.FaceLength(k)
	}
	for i := range vLine {
		k := d.VIndex(i, jc)
		vLine[i] = s.Flux[k] / d.FaceLength(k)
	}
	if err := p.chart.AddSeries("U(y)", d.YC, uLine,
		chart2d.NoGlyph, chart2d.Solid, p.colorMap.GetRGB(0)); err != nil {
		panic("unable to add graph series")
	}
	if err := p.chart.AddSeries("V(x)", d.XC, vLine,
		chart2d.NoGlyph, chart2d.Dashed, p.colorMap.GetRGB(0.7)); err != nil {
		panic("unable to add graph series")
	}
	if delay > 0 {
		time.Sleep(delay)
	}
}
