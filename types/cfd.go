package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Dirichlet
	BC_Neumann
	BC_Convective
)

var BCNameMap = map[string]BCFLAG{
	"dirichlet":  BC_Dirichlet,
	"wall":       BC_Dirichlet,
	"inflow":     BC_Dirichlet,
	"neumann":    BC_Neumann,
	"neuman":     BC_Neumann,
	"convective": BC_Convective,
	"outflow":    BC_Convective,
}

var BCPrintNames = []string{"None", "Dirichlet", "Neumann", "Convective"}

func (bc BCFLAG) Print() (txt string) {
	txt = BCPrintNames[bc]
	return
}

func NewBCFLAG(label string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown boundary condition type %q", label)
	}
	return
}

// BoundaryLocation orders the four sides of the rectangular domain
type BoundaryLocation uint8

const (
	XMinus BoundaryLocation = iota
	XPlus
	YMinus
	YPlus
)

var (
	BoundaryNameMap = map[string]BoundaryLocation{
		"xminus": XMinus,
		"west":   XMinus,
		"xplus":  XPlus,
		"east":   XPlus,
		"yminus": YMinus,
		"south":  YMinus,
		"yplus":  YPlus,
		"north":  YPlus,
	}
	BoundaryPrintNames = []string{"xMinus", "xPlus", "yMinus", "yPlus"}
	Boundaries         = []BoundaryLocation{XMinus, XPlus, YMinus, YPlus}
)

func (bl BoundaryLocation) Print() (txt string) {
	txt = BoundaryPrintNames[bl]
	return
}

func NewBoundaryLocation(label string) (bl BoundaryLocation, err error) {
	var ok bool
	if bl, ok = BoundaryNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown boundary %q, use one of xMinus, xPlus, yMinus, yPlus", label)
	}
	return
}

type SolverType uint8

const (
	NAVIER_STOKES SolverType = iota
	TAIRA_COLONIUS
)

var (
	SolverNameMap = map[string]SolverType{
		"navier_stokes":  NAVIER_STOKES,
		"navierstokes":   NAVIER_STOKES,
		"ns":             NAVIER_STOKES,
		"taira_colonius": TAIRA_COLONIUS,
		"tairacolonius":  TAIRA_COLONIUS,
		"ibm":            TAIRA_COLONIUS,
	}
	SolverPrintNames = []string{"NAVIER_STOKES", "TAIRA_COLONIUS"}
)

func (st SolverType) Print() (txt string) {
	txt = SolverPrintNames[st]
	return
}

func NewSolverType(label string) (st SolverType, err error) {
	var ok bool
	if st, ok = SolverNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown solver type %q", label)
	}
	return
}

type TimeScheme uint8

const (
	EULER_EXPLICIT TimeScheme = iota
	EULER_IMPLICIT
	ADAMS_BASHFORTH_2
	RUNGE_KUTTA_3
	CRANK_NICOLSON
)

var (
	TimeSchemeNameMap = map[string]TimeScheme{
		"euler_explicit":    EULER_EXPLICIT,
		"euler_implicit":    EULER_IMPLICIT,
		"adams_bashforth_2": ADAMS_BASHFORTH_2,
		"runge_kutta_3":     RUNGE_KUTTA_3,
		"crank_nicolson":    CRANK_NICOLSON,
	}
	TimeSchemePrintNames = []string{"EULER_EXPLICIT", "EULER_IMPLICIT", "ADAMS_BASHFORTH_2",
		"RUNGE_KUTTA_3", "CRANK_NICOLSON"}
)

func (ts TimeScheme) Print() (txt string) {
	txt = TimeSchemePrintNames[ts]
	return
}

func NewTimeScheme(label string) (ts TimeScheme, err error) {
	var ok bool
	if ts, ok = TimeSchemeNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown time integration scheme %q", label)
	}
	return
}

type KrylovMethod uint8

const (
	KRYLOV_CG KrylovMethod = iota
	KRYLOV_BICGSTAB
)

var (
	KrylovNameMap = map[string]KrylovMethod{
		"cg":       KRYLOV_CG,
		"bicgstab": KRYLOV_BICGSTAB,
	}
	KrylovPrintNames = []string{"CG", "BiCGStab"}
)

func (km KrylovMethod) Print() (txt string) {
	txt = KrylovPrintNames[km]
	return
}

func NewKrylovMethod(label string) (km KrylovMethod, err error) {
	var ok bool
	if km, ok = KrylovNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown linear solver %q, use CG or BiCGStab", label)
	}
	return
}

type Preconditioner uint8

const (
	PRECOND_NONE Preconditioner = iota
	PRECOND_DIAGONAL
)

var (
	PreconditionerNameMap = map[string]Preconditioner{
		"none":     PRECOND_NONE,
		"diagonal": PRECOND_DIAGONAL,
		"jacobi":   PRECOND_DIAGONAL,
	}
	PreconditionerPrintNames = []string{"NONE", "DIAGONAL"}
)

func (pc Preconditioner) Print() (txt string) {
	txt = PreconditionerPrintNames[pc]
	return
}

func NewPreconditioner(label string) (pc Preconditioner, err error) {
	var ok bool
	if pc, ok = PreconditionerNameMap[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("unknown preconditioner %q, use NONE or DIAGONAL", label)
	}
	return
}
