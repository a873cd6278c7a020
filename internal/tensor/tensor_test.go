package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	backend := NewMockBackend()

	data := []float32{1, 2, 3, 4, 5, 6}
	x, err := FromSlice(data, Shape{2, 3}, backend)
	require.NoError(t, err)

	assert.True(t, x.Shape().Equal(Shape{2, 3}))
	assert.Equal(t, Float32, x.DType())
	assert.Equal(t, float32(6), x.At(1, 2))

	// The tensor owns a copy of the slice.
	data[0] = 99
	assert.Equal(t, float32(1), x.At(0, 0))
}

func TestFromSlice_SizeMismatch(t *testing.T) {
	backend := NewMockBackend()

	_, err := FromSlice([]float32{1, 2, 3}, Shape{2, 3}, backend)
	require.Error(t, err)
}

func TestTensor_AtSet(t *testing.T) {
	backend := NewMockBackend()

	x := Zeros[float64](Shape{2, 2, 2, 1}, backend)
	x.Set(3.5, 1, 0, 1, 0)

	assert.Equal(t, 3.5, x.At(1, 0, 1, 0))
	assert.Equal(t, 0.0, x.At(0, 0, 1, 0))
}

func TestTensor_At_OutOfBounds(t *testing.T) {
	backend := NewMockBackend()
	x := Zeros[float32](Shape{2, 2}, backend)

	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.At(0) })
}

func TestCreation(t *testing.T) {
	backend := NewMockBackend()

	ones := Ones[float32](Shape{3, 3}, backend)
	for _, v := range ones.Data() {
		assert.Equal(t, float32(1), v)
	}

	full := Full[float64](Shape{2, 2}, 2.5, backend)
	for _, v := range full.Data() {
		assert.Equal(t, 2.5, v)
	}

	r := Rand[float32](Shape{100}, backend)
	for _, v := range r.Data() {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}

	n := Randn[float64](Shape{16}, backend)
	assert.Equal(t, 16, n.NumElements())
}

func TestTensor_Clone(t *testing.T) {
	backend := NewMockBackend()

	x := Full[float32](Shape{2, 2}, 7, backend)
	y := x.Clone()

	assert.True(t, y.Shape().Equal(x.Shape()))
	assert.Equal(t, float32(7), y.At(1, 1))
}

func TestTensor_Conv2D(t *testing.T) {
	backend := NewMockBackend()

	// 1x1 kernel with weight 2 doubles the input.
	input, err := FromSlice([]float32{1, 2, 3, 4}, Shape{1, 2, 2, 1}, backend)
	require.NoError(t, err)
	kernel, err := FromSlice([]float32{2}, Shape{1, 1, 1, 1}, backend)
	require.NoError(t, err)

	out, err := input.Conv2D(kernel, UnitStride(), Valid, NHWC)
	require.NoError(t, err)

	assert.True(t, out.Shape().Equal(Shape{1, 2, 2, 1}))
	assert.Equal(t, []float32{2, 4, 6, 8}, out.Data())
}

func TestTensor_Conv2D_Error(t *testing.T) {
	backend := NewMockBackend()

	input := Zeros[float32](Shape{1, 2, 2, 1}, backend)
	kernel := Zeros[float32](Shape{3, 3, 1, 1}, backend)

	_, err := input.Conv2D(kernel, UnitStride(), Valid, NHWC)
	require.ErrorIs(t, err, ErrDegenerateGeometry)
}
