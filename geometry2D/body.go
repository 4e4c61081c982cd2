package geometry2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/goibm/InputParameters"
)

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(X, Y []float64) (Box *BoundingBox) {
	if len(X) == 0 {
		return nil
	}
	Box = &BoundingBox{
		XMin: [2]float64{X[0], Y[0]},
		XMax: [2]float64{X[0], Y[0]},
	}
	for i := range X {
		Box.XMin[0], Box.XMax[0] = math.Min(Box.XMin[0], X[i]), math.Max(Box.XMax[0], X[i])
		Box.XMin[1], Box.XMax[1] = math.Min(Box.XMin[1], Y[i]), math.Max(Box.XMax[1], Y[i])
	}
	return
}

func (bb *BoundingBox) Inside(d *Domain) bool {
	return bb.XMin[0] > d.X[0] && bb.XMax[0] < d.X[d.Nx] &&
		bb.XMin[1] > d.Y[0] && bb.XMax[1] < d.Y[d.Ny]
}

/*
Body is an immersed boundary described by Lagrangian points. The points move rigidly:

	X(t) = X0 + Velocity*t + Amplitude*sin(2*pi*Frequency*t)
*/
type Body struct {
	X0, Y0    []float64 // Reference positions
	X, Y      []float64 // Current positions
	U, V      []float64 // Current point velocities
	Velocity  [2]float64
	Amplitude [2]float64
	Frequency float64
}

func NewBody(X, Y []float64) (b *Body) {
	np := len(X)
	b = &Body{
		X0: append([]float64{}, X...),
		Y0: append([]float64{}, Y...),
		X:  append([]float64{}, X...),
		Y:  append([]float64{}, Y...),
		U:  make([]float64, np),
		V:  make([]float64, np),
	}
	return
}

// NewCircle places n points evenly around a circle, counter clockwise from the positive x axis
func NewCircle(cx, cy, r float64, n int) (b *Body) {
	X, Y := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		X[i], Y[i] = cx+r*math.Cos(theta), cy+r*math.Sin(theta)
	}
	return NewBody(X, Y)
}

func NewBodies(bps []InputParameters.BodyParameters) (bodies []*Body, err error) {
	for i, bp := range bps {
		var b *Body
		switch strings.ToLower(bp.Type) {
		case "circle":
			b = NewCircle(bp.Center[0], bp.Center[1], bp.Radius, bp.NumPoints)
		case "points":
			if len(bp.X) != len(bp.Y) {
				err = fmt.Errorf("body %d: X and Y point lists differ in length", i)
				return
			}
			b = NewBody(bp.X, bp.Y)
		default:
			err = fmt.Errorf("body %d: unknown body type %q", i, bp.Type)
			return
		}
		b.Velocity, b.Amplitude, b.Frequency = bp.Velocity, bp.Amplitude, bp.Frequency
		b.Update(0)
		bodies = append(bodies, b)
	}
	return
}

func (b *Body) NumPoints() int { return len(b.X) }

func (b *Body) Moving() bool {
	return b.Velocity != [2]float64{} || (b.Amplitude != [2]float64{} && b.Frequency != 0)
}

// Update moves the body points and their velocities to time t
func (b *Body) Update(t float64) {
	var (
		omega        = 2 * math.Pi * b.Frequency
		sinT, cosT   = math.Sin(omega*t), math.Cos(omega*t)
		dispX, dispY = b.Velocity[0]*t + b.Amplitude[0]*sinT, b.Velocity[1]*t + b.Amplitude[1]*sinT
		velX, velY   = b.Velocity[0] + b.Amplitude[0]*omega*cosT, b.Velocity[1] + b.Amplitude[1]*omega*cosT
	)
	for i := range b.X {
		b.X[i], b.Y[i] = b.X0[i]+dispX, b.Y0[i]+dispY
		b.U[i], b.V[i] = velX, velY
	}
}

func (b *Body) BoundingBox() *BoundingBox {
	return NewBoundingBox(b.X, b.Y)
}
