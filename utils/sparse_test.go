package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparse(t *testing.T) {
	/*
		A =
		⎡ 2  -1   0⎤
		⎢-1   2  -1⎥
		⎣ 0  -1   2⎦
	*/
	dok := NewDOK(3, 3)
	for i := 0; i < 3; i++ {
		dok.Add(i, i, 2)
		if i > 0 {
			dok.Add(i, i-1, -1)
			dok.Add(i-1, i, -1)
		}
	}
	A := dok.ToCSR()
	A.SetReadOnly("A")
	assert.Equal(t, "A", A.Name())
	assert.Equal(t, 7, A.NNZ())
	assert.Equal(t, []float64{2, 2, 2}, A.Diagonal())
	assert.Equal(t, 0., A.MaxAsymmetry())

	dst := []float64{99, 99, 99}
	A.MulVec(dst, []float64{1, 2, 3})
	assert.Equal(t, []float64{0, 0, 4}, dst)

	// Frozen operators refuse writes
	assert.Panics(t, func() { A.Set(0, 0, 1) })
	// Dimension mismatch is an invariant violation
	assert.Panics(t, func() { A.MulVec(dst, []float64{1, 2}) })

	D := NewDiagonal([]float64{1, 2, 3})
	DA := Mul(D, A)
	assert.Equal(t, 4., DA.At(1, 1))
	assert.Equal(t, -3., DA.At(2, 1))
	assert.Equal(t, 0., DA.At(0, 2))

	S := AddScaled(A, -0.5, D)
	assert.Equal(t, 1.5, S.At(0, 0))
	assert.Equal(t, 0.5, S.At(2, 2))
	assert.Equal(t, -1., S.At(1, 2))

	// Rectangular transpose
	rect := NewDOK(2, 3)
	rect.Set(0, 2, 5)
	rect.Set(1, 0, -1)
	R := rect.ToCSR()
	RT := R.Transpose()
	r, c := RT.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	assert.Equal(t, 5., RT.At(2, 0))
	assert.Equal(t, -1., RT.At(0, 1))

	RTR := Mul(RT, R)
	r, c = RTR.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 25., RTR.At(2, 2))
	assert.Equal(t, 1., RTR.At(0, 0))
	assert.Panics(t, func() { Mul(R, R) })

	half := Scale(0.5, A)
	assert.Equal(t, 1., half.At(2, 2))
	assert.Equal(t, -0.5, half.At(1, 0))
}
