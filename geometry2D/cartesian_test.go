package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goibm/InputParameters"
)

func TestUniformDomain(t *testing.T) {
	d := NewUniformDomain(0, 1, 4, 0, 2, 5)
	assert.Equal(t, 4, d.Nx)
	assert.Equal(t, 5, d.Ny)
	assert.Equal(t, 3*5, d.NumU())
	assert.Equal(t, 4*4, d.NumV())
	assert.Equal(t, 31, d.NumQ())
	assert.Equal(t, 20, d.NumP())
	for _, h := range d.Dx {
		assert.InDelta(t, 0.25, h, 1.e-14)
	}
	for _, h := range d.Dy {
		assert.InDelta(t, 0.4, h, 1.e-14)
	}
	assert.Equal(t, 1., d.X[4])
	assert.InDelta(t, 0.125, d.XC[0], 1.e-14)

	// Index maps are dense and ordered u first
	assert.Equal(t, 0, d.UIndex(0, 0))
	assert.Equal(t, d.NumU()-1, d.UIndex(2, 4))
	assert.Equal(t, d.NumU(), d.VIndex(0, 0))
	assert.Equal(t, d.NumQ()-1, d.VIndex(3, 3))
	assert.Equal(t, 0.4, d.FaceLength(d.UIndex(1, 2)))
	assert.Equal(t, 0.25, d.FaceLength(d.VIndex(1, 2)))

	x, y := d.FacePosition(d.UIndex(1, 2))
	assert.InDelta(t, 0.5, x, 1.e-14)
	assert.InDelta(t, 1.0, y, 1.e-14)
	x, y = d.FacePosition(d.VIndex(1, 2))
	assert.InDelta(t, 0.375, x, 1.e-14)
	assert.InDelta(t, 1.2, y, 1.e-14)

	assert.Equal(t, 0, FindCell(d.X, -1))
	assert.Equal(t, 1, FindCell(d.X, 0.3))
	assert.Equal(t, 3, FindCell(d.X, 1.0))
}

func TestStretchedDomain(t *testing.T) {
	d, err := NewDomain(InputParameters.DomainParameters{
		X: []InputParameters.Segment{
			{Start: -4, End: -1, Cells: 6, StretchRatio: 1. / 1.1},
			{Start: -1, End: 1, Cells: 10, StretchRatio: 1},
			{Start: 1, End: 6, Cells: 8, StretchRatio: 1.1},
		},
		Y: []InputParameters.Segment{{Start: -2, End: 2, Cells: 8}},
	})
	require.NoError(t, err)
	assert.Equal(t, 24, d.Nx)
	assert.Equal(t, 8, d.Ny)
	assert.Equal(t, -4., d.X[0])
	assert.Equal(t, 6., d.X[d.Nx])
	var total float64
	for _, h := range d.Dx {
		total += h
	}
	assert.InDelta(t, 10, total, 1.e-12)
	// Uniform centre section
	for i := 6; i < 16; i++ {
		assert.InDelta(t, 0.2, d.Dx[i], 1.e-12)
	}
	// Stretched outer section grows by the ratio
	for i := 17; i < 24; i++ {
		assert.InDelta(t, 1.1, d.Dx[i]/d.Dx[i-1], 1.e-9)
	}
	// Inner section shrinks towards the centre
	for i := 1; i < 6; i++ {
		assert.InDelta(t, 1/1.1, d.Dx[i]/d.Dx[i-1], 1.e-9)
	}
}

func TestDomainErrors(t *testing.T) {
	_, err := NewDomain(InputParameters.DomainParameters{
		X: []InputParameters.Segment{{Start: 0, End: 1, Cells: 4}, {Start: 2, End: 3, Cells: 4}},
		Y: []InputParameters.Segment{{Start: 0, End: 1, Cells: 4}},
	})
	assert.Error(t, err)
	_, err = NewDomain(InputParameters.DomainParameters{
		X: []InputParameters.Segment{{Start: 1, End: 0, Cells: 4}},
		Y: []InputParameters.Segment{{Start: 0, End: 1, Cells: 4}},
	})
	assert.Error(t, err)
	_, err = NewDomain(InputParameters.DomainParameters{
		X: []InputParameters.Segment{{Start: 0, End: 1, Cells: 1}},
		Y: []InputParameters.Segment{{Start: 0, End: 1, Cells: 4}},
	})
	assert.Error(t, err)
	d := NewUniformDomain(0, 1, 4, 0, 1, 4)
	d.Dx[2] = 0
	assert.Error(t, d.Validate())
}

func TestBody(t *testing.T) {
	b := NewCircle(1, 2, 0.5, 8)
	require.Equal(t, 8, b.NumPoints())
	assert.InDelta(t, 1.5, b.X[0], 1.e-14)
	assert.InDelta(t, 2.5, b.Y[2], 1.e-14)
	assert.False(t, b.Moving())
	bb := b.BoundingBox()
	assert.InDelta(t, 0.5, bb.XMin[0], 1.e-14)
	assert.InDelta(t, 2.5, bb.XMax[1], 1.e-14)
	assert.True(t, bb.Inside(NewUniformDomain(0, 3, 6, 0, 3, 6)))
	assert.False(t, bb.Inside(NewUniformDomain(0, 3, 6, 0, 2, 6)))

	b.Amplitude = [2]float64{0, 0.25}
	b.Frequency = 0.5
	assert.True(t, b.Moving())
	b.Update(0.5) // quarter period, peak displacement and zero velocity
	assert.InDelta(t, 2.25, b.Y[0], 1.e-12)
	assert.InDelta(t, 0, b.V[0], 1.e-12)
	b.Update(1) // half period, back at reference moving down
	assert.InDelta(t, 2, b.Y[0], 1.e-12)
	assert.InDelta(t, -0.25*math.Pi, b.V[0], 1.e-12)

	bodies, err := NewBodies([]InputParameters.BodyParameters{
		{Type: "points", X: []float64{0, 1}, Y: []float64{0, 0}, Velocity: [2]float64{1, 0}},
	})
	require.NoError(t, err)
	require.Len(t, bodies, 1)
	assert.Equal(t, []float64{1, 1}, bodies[0].U)
	_, err = NewBodies([]InputParameters.BodyParameters{{Type: "square"}})
	assert.Error(t, err)
}
