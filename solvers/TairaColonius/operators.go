package TairaColonius

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/goibm/geometry2D"
	"github.com/notargets/goibm/solvers/NavierStokes"
)

var ErrBodyOutside = errors.New("immersed body left the domain")

/*
Operators is the immersed boundary projection method of Taira and Colonius. The no-slip
condition on each body point is an extra row of QT interpolating the flow velocity to the point,
its Lagrange multiplier is the force the fluid exerts on the body at that point, the negative of
the forcing applied to the flow. Lambda holds the pressure, then
the x forces of all body points, then the y forces.
*/
type Operators struct {
	NavierStokes.DefaultOperators
	Bodies    []*geometry2D.Body
	NumPoints int
}

func NewOperators() *Operators {
	return &Operators{}
}

func (o *Operators) Name() string { return "Taira-Colonius" }

func (o *Operators) Setup(s *NavierStokes.Solver) (err error) {
	if o.Bodies, err = geometry2D.NewBodies(s.IP.Bodies); err != nil {
		return
	}
	if len(o.Bodies) == 0 {
		return fmt.Errorf("no immersed bodies defined")
	}
	o.NumPoints = 0
	for i, b := range o.Bodies {
		if b.NumPoints() == 0 {
			return fmt.Errorf("body %d has no points", i)
		}
		if !b.BoundingBox().Inside(s.Dom) {
			return fmt.Errorf("body %d: %w", i, ErrBodyOutside)
		}
		if b.Moving() {
			b.Update(float64(s.IP.StartStep) * s.IP.Dt)
		}
		o.NumPoints += b.NumPoints()
	}
	// Constraint rows are scaled by the grid spacing at the first body point
	b := o.Bodies[0]
	s.QCoeff = s.Dom.Dx[geometry2D.FindCell(s.Dom.X, b.X[0])]
	return
}

func (o *Operators) LambdaSize(s *NavierStokes.Solver) int {
	return s.Dom.NumP() + 2*o.NumPoints
}

func (o *Operators) GenerateQT(s *NavierStokes.Solver) {
	var (
		np  = s.Dom.NumP()
		dok = s.DivergenceDOK(s.NumLambda)
		l   int
	)
	for _, b := range o.Bodies {
		for n := range b.X {
			addInterpolation(dok, s.Dom, b.X[n], b.Y[n], np+l, np+o.NumPoints+l)
			l++
		}
	}
	s.QT = dok.ToCSR()
}

// GenerateBC2 adds the body point velocities to the constraint rows
func (o *Operators) GenerateBC2(s *NavierStokes.Solver) {
	o.DefaultOperators.GenerateBC2(s)
	var (
		np = s.Dom.NumP()
		l  int
	)
	for _, b := range o.Bodies {
		for n := range b.X {
			s.BC2[np+l] = s.QCoeff * b.U[n]
			s.BC2[np+o.NumPoints+l] = s.QCoeff * b.V[n]
			l++
		}
	}
}

// UpdateSolverState moves the bodies to the end of the sub-step and rebuilds the operators that depend on them
func (o *Operators) UpdateSolverState(s *NavierStokes.Solver) (err error) {
	moving := false
	for i, b := range o.Bodies {
		if b.Moving() {
			b.Update(s.SubStepTime())
			if !b.BoundingBox().Inside(s.Dom) {
				return fmt.Errorf("body %d at t = %g: %w", i, s.SubStepTime(), ErrBodyOutside)
			}
			moving = true
		}
	}
	if !moving {
		return
	}
	o.GenerateQT(s)
	s.UpdateQ(s.QCoeff)
	s.GenerateC()
	return
}

/*
CalculateForce integrates the constraint forces over the grid. Only the body columns of Q act, the
result is the force of the fluid on the bodies, positive drag points downstream.
*/
func (o *Operators) CalculateForce(s *NavierStokes.Solver) {
	var (
		d          = s.Dom
		np         = d.NumP()
		lambdaBody = make([]float64, s.NumLambda)
		f          = make([]float64, d.NumQ())
		fx, fy     float64
	)
	copy(lambdaBody[np:], s.Lambda[np:])
	s.Q.MulVec(f, lambdaBody)
	for k := 0; k < d.NumU(); k++ {
		fx += d.FaceLength(k) * f[k]
	}
	for k := d.NumU(); k < d.NumQ(); k++ {
		fy += d.FaceLength(k) * f[k]
	}
	s.State.ForceX, s.State.ForceY = fx, fy
	s.State.Force1 = math.Hypot(fx, fy)
}
