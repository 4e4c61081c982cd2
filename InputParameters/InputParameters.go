package InputParameters

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/goibm/types"
)

// Parameters obtained from the YAML input file
type Parameters struct {
	Title            string                        `yaml:"Title"`
	Nu               float64                       `yaml:"Nu"`
	Dt               float64                       `yaml:"Dt"`
	NSteps           int                           `yaml:"NSteps"`
	StartStep        int                           `yaml:"StartStep"`
	NSave            int                           `yaml:"NSave"`
	ConvectionScheme string                        `yaml:"ConvectionScheme"`
	DiffusionScheme  string                        `yaml:"DiffusionScheme"`
	SolverType       string                        `yaml:"SolverType"`
	BNOrder          int                           `yaml:"BNOrder"`
	VelocitySolve    SolveParameters               `yaml:"VelocitySolve"`
	PoissonSolve     SolveParameters               `yaml:"PoissonSolve"`
	InitialVelocity  [2]float64                    `yaml:"InitialVelocity"`
	Perturbation     float64                       `yaml:"Perturbation"`
	ConvectiveSpeed  float64                       `yaml:"ConvectiveSpeed"`
	Domain           DomainParameters              `yaml:"Domain"`
	BCs              map[string]map[string]BCValue `yaml:"BCs"` // First key is the boundary, second the velocity component
	Bodies           []BodyParameters              `yaml:"Bodies"`
}

type SolveParameters struct {
	Method         string  `yaml:"Method"`
	Preconditioner string  `yaml:"Preconditioner"`
	Tolerance      float64 `yaml:"Tolerance"`
	MaxIterations  int     `yaml:"MaxIterations"`
}

// A Segment is a run of cells between Start and End, each cell StretchRatio times the previous one
type Segment struct {
	Start        float64 `yaml:"Start"`
	End          float64 `yaml:"End"`
	Cells        int     `yaml:"Cells"`
	StretchRatio float64 `yaml:"StretchRatio"`
}

type DomainParameters struct {
	X []Segment `yaml:"X"`
	Y []Segment `yaml:"Y"`
}

type BCValue struct {
	Type  string  `yaml:"Type"`
	Value float64 `yaml:"Value"`
}

type BodyParameters struct {
	Type      string     `yaml:"Type"` // circle or points
	Center    [2]float64 `yaml:"Center"`
	Radius    float64    `yaml:"Radius"`
	NumPoints int        `yaml:"NumPoints"`
	X         []float64  `yaml:"X"`
	Y         []float64  `yaml:"Y"`
	Velocity  [2]float64 `yaml:"Velocity"`
	Amplitude [2]float64 `yaml:"Amplitude"`
	Frequency float64    `yaml:"Frequency"`
}

func NewParameters() (ip *Parameters) {
	ip = &Parameters{
		Title:            "unnamed",
		Nu:               0.01,
		Dt:               0.01,
		NSteps:           100,
		NSave:            100,
		ConvectionScheme: "EULER_EXPLICIT",
		DiffusionScheme:  "EULER_IMPLICIT",
		SolverType:       "NAVIER_STOKES",
		BNOrder:          1,
		VelocitySolve:    SolveParameters{Method: "CG", Preconditioner: "DIAGONAL", Tolerance: 1.e-5, MaxIterations: 10000},
		PoissonSolve:     SolveParameters{Method: "CG", Preconditioner: "DIAGONAL", Tolerance: 1.e-5, MaxIterations: 20000},
		ConvectiveSpeed:  1,
		BCs:              make(map[string]map[string]BCValue),
	}
	return
}

func (ip *Parameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ReadFile parses a YAML input file over the defaults and validates the result
func ReadFile(fileName string) (ip *Parameters, err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	ip = NewParameters()
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("unable to parse %s: %w", fileName, err)
		return
	}
	err = ip.Validate()
	return
}

func (ip *Parameters) Validate() (err error) {
	switch {
	case ip.Nu <= 0:
		return fmt.Errorf("viscosity Nu must be positive, have %g", ip.Nu)
	case ip.Dt <= 0:
		return fmt.Errorf("time step Dt must be positive, have %g", ip.Dt)
	case ip.NSteps < 0 || ip.StartStep < 0:
		return fmt.Errorf("step counts must be non-negative, have NSteps = %d, StartStep = %d",
			ip.NSteps, ip.StartStep)
	case ip.NSave <= 0:
		return fmt.Errorf("NSave must be positive, have %d", ip.NSave)
	case ip.BNOrder < 1 || ip.BNOrder > 3:
		return fmt.Errorf("BNOrder must be 1, 2 or 3, have %d", ip.BNOrder)
	}
	if _, _, err = ip.Schemes(); err != nil {
		return
	}
	if _, err = types.NewSolverType(ip.SolverType); err != nil {
		return
	}
	for _, sp := range []SolveParameters{ip.VelocitySolve, ip.PoissonSolve} {
		if err = sp.Validate(); err != nil {
			return
		}
	}
	if len(ip.Domain.X) == 0 || len(ip.Domain.Y) == 0 {
		return fmt.Errorf("domain needs at least one segment in each direction")
	}
	if _, err = ip.BoundaryConditions(); err != nil {
		return
	}
	for i, b := range ip.Bodies {
		switch strings.ToLower(b.Type) {
		case "circle":
			if b.Radius <= 0 || b.NumPoints < 3 {
				return fmt.Errorf("body %d: circle needs Radius > 0 and NumPoints >= 3", i)
			}
		case "points":
			if len(b.X) == 0 || len(b.X) != len(b.Y) {
				return fmt.Errorf("body %d: X and Y point lists must be non-empty and of equal length", i)
			}
		default:
			return fmt.Errorf("body %d: unknown body type %q", i, b.Type)
		}
	}
	return
}

func (sp SolveParameters) Validate() (err error) {
	if _, err = types.NewKrylovMethod(sp.Method); err != nil {
		return
	}
	if _, err = types.NewPreconditioner(sp.Preconditioner); err != nil {
		return
	}
	if sp.Tolerance <= 0 || sp.Tolerance >= 1 || sp.MaxIterations <= 0 {
		err = fmt.Errorf("solver tolerance must lie in (0,1) and the iteration budget must be positive, have %g, %d",
			sp.Tolerance, sp.MaxIterations)
	}
	return
}

func (ip *Parameters) Schemes() (conv, diff types.TimeScheme, err error) {
	if conv, err = types.NewTimeScheme(ip.ConvectionScheme); err != nil {
		return
	}
	diff, err = types.NewTimeScheme(ip.DiffusionScheme)
	return
}

// BoundaryCondition is the typed form of one BCs entry
type BoundaryCondition struct {
	Type  types.BCFLAG
	Value float64
}

// BoundaryConditions returns the typed [boundary][component] table, component 0 is u and 1 is v.
// Unspecified entries are no-slip walls.
func (ip *Parameters) BoundaryConditions() (bcs [4][2]BoundaryCondition, err error) {
	for _, bl := range types.Boundaries {
		for comp := 0; comp < 2; comp++ {
			bcs[bl][comp] = BoundaryCondition{Type: types.BC_Dirichlet}
		}
	}
	for name, comps := range ip.BCs {
		var bl types.BoundaryLocation
		if bl, err = types.NewBoundaryLocation(name); err != nil {
			return
		}
		for compName, val := range comps {
			var comp int
			switch strings.ToLower(compName) {
			case "u":
				comp = 0
			case "v":
				comp = 1
			default:
				err = fmt.Errorf("boundary %s: unknown velocity component %q", name, compName)
				return
			}
			var bc types.BCFLAG
			if bc, err = types.NewBCFLAG(val.Type); err != nil {
				return
			}
			bcs[bl][comp] = BoundaryCondition{Type: bc, Value: val.Value}
		}
	}
	return
}

func (ip *Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= Nu\n", ip.Nu)
	fmt.Printf("%8.5f\t\t= Dt\n", ip.Dt)
	fmt.Printf("[%d]\t\t\t\t= NSteps\n", ip.NSteps)
	fmt.Printf("[%s]\t\t= Solver Type\n", ip.SolverType)
	fmt.Printf("[%s]\t= Convection Scheme\n", ip.ConvectionScheme)
	fmt.Printf("[%s]\t= Diffusion Scheme\n", ip.DiffusionScheme)
	fmt.Printf("[%d]\t\t\t\t= BN Order\n", ip.BNOrder)
	fmt.Printf("[%s, %s, %8.2e, %d]\t= Velocity Solve\n", ip.VelocitySolve.Method,
		ip.VelocitySolve.Preconditioner, ip.VelocitySolve.Tolerance, ip.VelocitySolve.MaxIterations)
	fmt.Printf("[%s, %s, %8.2e, %d]\t= Poisson Solve\n", ip.PoissonSolve.Method,
		ip.PoissonSolve.Preconditioner, ip.PoissonSolve.Tolerance, ip.PoissonSolve.MaxIterations)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
	for i, b := range ip.Bodies {
		fmt.Printf("Bodies[%d] = %s at (%g, %g)\n", i, b.Type, b.Center[0], b.Center[1])
	}
}
