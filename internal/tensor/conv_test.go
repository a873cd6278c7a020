package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvOutputSize_Valid(t *testing.T) {
	tests := []struct {
		name               string
		in, kernel, stride int
		wantOut            int
	}{
		{"no stride", 5, 3, 1, 3},
		{"exact fit", 3, 3, 1, 1},
		{"stride 2", 7, 3, 2, 3},
		{"stride larger than remainder", 6, 3, 4, 1},
		{"mnist-like", 28, 5, 1, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, padBefore, err := ConvOutputSize(tt.in, tt.kernel, tt.stride, Valid)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out)
			assert.Equal(t, 0, padBefore, "VALID never pads")
		})
	}
}

func TestConvOutputSize_Same(t *testing.T) {
	tests := []struct {
		name               string
		in, kernel, stride int
		wantOut            int
		wantPadBefore      int
	}{
		// out = ceil(in/stride); padTotal = (out-1)*stride + kernel - in
		{"stride 1 preserves size", 5, 3, 1, 5, 1},
		{"even kernel pads less before", 5, 4, 1, 5, 1}, // padTotal=3, before=1, after=2
		{"stride 2", 5, 3, 2, 3, 1},
		{"stride 2 even input", 4, 3, 2, 2, 0}, // padTotal=1, before=0, after=1
		{"kernel 1 needs no padding", 7, 1, 1, 7, 0},
		{"stride larger than kernel", 5, 2, 4, 2, 0}, // padTotal=max(4+2-5,0)=1, before=0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, padBefore, err := ConvOutputSize(tt.in, tt.kernel, tt.stride, Same)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out)
			assert.Equal(t, tt.wantPadBefore, padBefore)
		})
	}
}

func TestConvOutputSize_Degenerate(t *testing.T) {
	// VALID with a kernel larger than the input fails loudly.
	_, _, err := ConvOutputSize(2, 3, 1, Valid)
	require.ErrorIs(t, err, ErrDegenerateGeometry)

	// SAME handles the same geometry by padding.
	out, padBefore, err := ConvOutputSize(2, 3, 1, Same)
	require.NoError(t, err)
	assert.Equal(t, 2, out)
	assert.Equal(t, 1, padBefore) // padTotal=2, split evenly
}

func TestConvOutputSize_UnknownPadding(t *testing.T) {
	_, _, err := ConvOutputSize(5, 3, 1, Padding(42))
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestStride_Validate(t *testing.T) {
	require.NoError(t, UnitStride().Validate(NHWC))
	require.NoError(t, Stride{1, 2, 2, 1}.Validate(NHWC))
	require.NoError(t, Stride{1, 1, 2, 2}.Validate(NCHW))

	// Non-positive components.
	err := Stride{1, 0, 1, 1}.Validate(NHWC)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	err = Stride{1, -2, 1, 1}.Validate(NHWC)
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	// Batch/channel striding is rejected.
	err = Stride{2, 1, 1, 1}.Validate(NHWC)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	err = Stride{1, 1, 1, 2}.Validate(NHWC)
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	// Under NCHW the channel stride lives at index 1.
	err = Stride{1, 2, 1, 1}.Validate(NCHW)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestStride_Spatial(t *testing.T) {
	s := Stride{1, 2, 3, 1}
	sh, sw := s.Spatial(NHWC)
	assert.Equal(t, 2, sh)
	assert.Equal(t, 3, sw)

	s = Stride{1, 1, 2, 3}
	sh, sw = s.Spatial(NCHW)
	assert.Equal(t, 2, sh)
	assert.Equal(t, 3, sw)
}

func TestResolveConv2D(t *testing.T) {
	input, err := NewRaw(Shape{2, 5, 7, 3}, Float32, CPU)
	require.NoError(t, err)
	kernel, err := NewRaw(Shape{3, 3, 3, 4}, Float32, CPU)
	require.NoError(t, err)

	g, err := ResolveConv2D(input, kernel, UnitStride(), Same, NHWC)
	require.NoError(t, err)

	assert.Equal(t, 2, g.N)
	assert.Equal(t, 5, g.H)
	assert.Equal(t, 7, g.W)
	assert.Equal(t, 3, g.Cin)
	assert.Equal(t, 4, g.Cout)
	assert.Equal(t, 5, g.HOut)
	assert.Equal(t, 7, g.WOut)
	assert.Equal(t, 1, g.PadTop)
	assert.Equal(t, 1, g.PadLeft)
	assert.True(t, g.OutputShape().Equal(Shape{2, 5, 7, 4}))
}

func TestResolveConv2D_NCHW(t *testing.T) {
	input, err := NewRaw(Shape{2, 3, 5, 7}, Float32, CPU)
	require.NoError(t, err)
	kernel, err := NewRaw(Shape{3, 3, 3, 4}, Float32, CPU)
	require.NoError(t, err)

	g, err := ResolveConv2D(input, kernel, Stride{1, 1, 2, 2}, Valid, NCHW)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Cin)
	assert.Equal(t, 5, g.H)
	assert.Equal(t, 7, g.W)
	assert.Equal(t, 2, g.HOut) // (5-3)/2 + 1
	assert.Equal(t, 3, g.WOut) // (7-3)/2 + 1
	assert.True(t, g.OutputShape().Equal(Shape{2, 4, 2, 3}))
}

func TestResolveConv2D_Errors(t *testing.T) {
	input, _ := NewRaw(Shape{1, 4, 4, 2}, Float32, CPU)
	kernel, _ := NewRaw(Shape{3, 3, 2, 5}, Float32, CPU)
	input3d, _ := NewRaw(Shape{4, 4, 2}, Float32, CPU)
	kernel5d, _ := NewRaw(Shape{1, 3, 3, 2, 5}, Float32, CPU)
	kernelBadC, _ := NewRaw(Shape{3, 3, 3, 5}, Float32, CPU)
	kernelF64, _ := NewRaw(Shape{3, 3, 2, 5}, Float64, CPU)
	kernelBig, _ := NewRaw(Shape{5, 5, 2, 5}, Float32, CPU)

	tests := []struct {
		name    string
		input   *RawTensor
		kernel  *RawTensor
		stride  Stride
		padding Padding
		format  DataFormat
		want    error
	}{
		{"input rank", input3d, kernel, UnitStride(), Same, NHWC, ErrShapeMismatch},
		{"kernel rank", input, kernel5d, UnitStride(), Same, NHWC, ErrShapeMismatch},
		{"channel mismatch", input, kernelBadC, UnitStride(), Same, NHWC, ErrShapeMismatch},
		{"dtype mismatch", input, kernelF64, UnitStride(), Same, NHWC, ErrShapeMismatch},
		{"zero stride", input, kernel, Stride{1, 0, 1, 1}, Same, NHWC, ErrInvalidConfiguration},
		{"batch stride", input, kernel, Stride{2, 1, 1, 1}, Same, NHWC, ErrInvalidConfiguration},
		{"bad padding", input, kernel, UnitStride(), Padding(7), NHWC, ErrInvalidConfiguration},
		{"bad format", input, kernel, UnitStride(), Same, DataFormat(7), ErrInvalidConfiguration},
		{"kernel too large", input, kernelBig, UnitStride(), Valid, NHWC, ErrDegenerateGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveConv2D(tt.input, tt.kernel, tt.stride, tt.padding, tt.format)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConvGeometry_Strides(t *testing.T) {
	input, _ := NewRaw(Shape{1, 4, 5, 3}, Float32, CPU)
	kernel, _ := NewRaw(Shape{2, 2, 3, 6}, Float32, CPU)

	g, err := ResolveConv2D(input, kernel, UnitStride(), Valid, NHWC)
	require.NoError(t, err)

	sn, sc, sh, sw := g.InputStrides()
	assert.Equal(t, []int{60, 1, 15, 3}, []int{sn, sc, sh, sw})

	sn, sc, sh, sw = g.OutputStrides()
	// Output is [1, 3, 4, 6] NHWC
	assert.Equal(t, []int{72, 1, 24, 6}, []int{sn, sc, sh, sw})
}
