package NavierStokes

import (
	"fmt"
	"time"

	"github.com/notargets/goibm/utils"
)

func (s *Solver) PrintInitialization() {
	d := s.Dom
	fmt.Printf("Incompressible Navier-Stokes in 2 Dimensions, %s solver\n", s.Name())
	fmt.Printf("Solving \"%s\"\n", s.IP.Title)
	fmt.Printf("Grid: %d x %d cells on [%8.4f,%8.4f] x [%8.4f,%8.4f]\n",
		d.Nx, d.Ny, d.X[0], d.X[d.Nx], d.Y[0], d.Y[d.Ny])
	fmt.Printf("Unknowns: %d fluxes, %d pressure and constraint values\n", d.NumQ(), s.NumLambda)
	fmt.Printf("%s, BN order %d\n", s.Scheme.Print(), s.IP.BNOrder)
	fmt.Printf("%s\n%s\n", s.velocitySolver.Print(), s.poissonSolver.Print())
	fmt.Printf("Nu = %8.5f, Dt = %8.5f, NSteps = %d\n\n", s.IP.Nu, s.IP.Dt, s.IP.NSteps)
	fmt.Printf("    step      time  iter1  iter2")
	fmt.Printf("   Residual     ForceX     ForceY\n")
}

func (s *Solver) PrintUpdate() {
	format := "%11.4e"
	st := s.State
	fmt.Printf("%8d%10.5f%7d%7d", st.TimeStep, st.Time, st.IterationCount1, st.IterationCount2)
	fmt.Printf(format, st.Residual)
	fmt.Printf(format, st.ForceX)
	fmt.Printf(format, st.ForceY)
	fmt.Printf("\n")
}

func (s *Solver) PrintFinal(elapsed time.Duration, steps int) {
	if steps == 0 {
		return
	}
	rate := float64(elapsed.Microseconds()) / float64(s.Dom.NumP()*steps)
	fmt.Printf("\nRate of execution = %8.5f us/(cell*step) over %d steps\n", rate, steps)
	if s.State.NonConverged1+s.State.NonConverged2 > 0 {
		fmt.Printf("Non converged solves: %d velocity, %d poisson\n",
			s.State.NonConverged1, s.State.NonConverged2)
	}
	fmt.Print(s.Timing.Table())
	fmt.Println(utils.GetMemUsage())
}

// Table lists each stage with its wall time and share of the stepping time
func (st StageTimes) Table() (txt string) {
	total := st.Total()
	if total == 0 {
		return
	}
	txt = fmt.Sprintf("%-12s%14s%8s\n", "stage", "time", "share")
	for _, row := range []struct {
		name string
		d    time.Duration
	}{
		{"boundary", st.Boundary},
		{"rhs", st.RHS},
		{"velocity", st.Velocity},
		{"poisson", st.Poisson},
		{"projection", st.Projection},
		{"operators", st.Operators},
		{"force", st.Force},
	} {
		txt += fmt.Sprintf("%-12s%14v%7.2f%%\n", row.name, row.d.Round(time.Microsecond),
			100*float64(row.d)/float64(total))
	}
	return
}
