package tensor

import "fmt"

// Padding selects how receptive windows that would extend outside the
// input bounds are handled.
type Padding int

// Recognized padding modes.
const (
	// Valid restricts windows to fully in-bounds positions. Output spatial
	// size shrinks to (in - kernel)/stride + 1 per axis.
	Valid Padding = iota

	// Same zero-extends the input so that output spatial size is
	// ceil(in/stride) per axis. Total padding is split evenly, with the
	// odd cell going after (bottom/right).
	Same
)

// String returns a human-readable padding mode name.
func (p Padding) String() string {
	switch p {
	case Valid:
		return "VALID"
	case Same:
		return "SAME"
	default:
		return "Unknown"
	}
}

// DataFormat selects the physical axis order of 4D image tensors.
//
// The convolution contract is defined per logical axis (batch, height,
// width, channel); DataFormat only changes where each logical axis lives
// in memory. Kernel layout is [KH, KW, Cin, Cout] under both formats, and
// the output tensor uses the same format as the input.
type DataFormat int

// Recognized data formats.
const (
	// NHWC stores tensors as [batch, height, width, channel].
	NHWC DataFormat = iota

	// NCHW stores tensors as [batch, channel, height, width].
	NCHW
)

// String returns a human-readable format name.
func (f DataFormat) String() string {
	switch f {
	case NHWC:
		return "NHWC"
	case NCHW:
		return "NCHW"
	default:
		return "Unknown"
	}
}

// Stride holds per-axis window step sizes, ordered to match the input's
// axis order: [Sn, Sh, Sw, Sc] under NHWC, [Sn, Sc, Sh, Sw] under NCHW.
// All components must be positive; the batch and channel components must
// be 1 (striding those axes has no defined convolution semantics).
type Stride [4]int

// UnitStride returns the identity stride (window advances one cell per axis).
func UnitStride() Stride {
	return Stride{1, 1, 1, 1}
}

// Spatial returns the (height, width) stride components for the given
// data format.
func (s Stride) Spatial(format DataFormat) (sh, sw int) {
	if format == NCHW {
		return s[2], s[3]
	}
	return s[1], s[2]
}

// batchChannel returns the (batch, channel) stride components for the
// given data format.
func (s Stride) batchChannel(format DataFormat) (sn, sc int) {
	if format == NCHW {
		return s[0], s[1]
	}
	return s[0], s[3]
}

// Validate checks the stride vector against the given data format.
func (s Stride) Validate(format DataFormat) error {
	for i, v := range s {
		if v <= 0 {
			return fmt.Errorf("%w: stride component %d is %d (must be positive)", ErrInvalidConfiguration, i, v)
		}
	}
	sn, sc := s.batchChannel(format)
	if sn != 1 || sc != 1 {
		return fmt.Errorf("%w: batch/channel strides must be 1, got %d/%d", ErrInvalidConfiguration, sn, sc)
	}
	return nil
}

// ConvGeometry holds the fully resolved geometry of one convolution call:
// logical input/kernel extents, strides, output extents, and the leading
// zero-padding per spatial axis.
type ConvGeometry struct {
	N, H, W, Cin    int
	KH, KW, Cout    int
	HOut, WOut      int
	SH, SW          int
	PadTop, PadLeft int
	Format          DataFormat
}

// OutputShape returns the output tensor shape in the call's data format.
func (g *ConvGeometry) OutputShape() Shape {
	if g.Format == NCHW {
		return Shape{g.N, g.Cout, g.HOut, g.WOut}
	}
	return Shape{g.N, g.HOut, g.WOut, g.Cout}
}

// InputStrides returns element strides for the logical (batch, channel,
// row, column) axes of the input tensor in the call's data format.
func (g *ConvGeometry) InputStrides() (sn, sc, sh, sw int) {
	return formatStrides(g.Format, g.Cin, g.H, g.W)
}

// OutputStrides returns element strides for the logical (batch, channel,
// row, column) axes of the output tensor in the call's data format.
func (g *ConvGeometry) OutputStrides() (sn, sc, sh, sw int) {
	return formatStrides(g.Format, g.Cout, g.HOut, g.WOut)
}

// formatStrides computes element strides for the logical (n, c, h, w)
// axes of a 4D tensor with the given channel and spatial extents.
func formatStrides(format DataFormat, c, h, w int) (sn, sc, sh, sw int) {
	if format == NCHW {
		return c * h * w, h * w, w, 1
	}
	return h * w * c, 1, w * c, c
}

// ResolveConv2D validates a convolution call against the contract and
// resolves its geometry. All violations are detected here, before any
// output is materialized:
//
//   - input and kernel must both have rank 4 (ErrShapeMismatch)
//   - input channel count must equal the kernel's Cin (ErrShapeMismatch)
//   - input and kernel dtypes must match (ErrShapeMismatch)
//   - stride components must be positive, batch/channel strides must be 1,
//     and padding/format must be recognized values (ErrInvalidConfiguration)
//   - under Valid padding the kernel must fit inside the input
//     (ErrDegenerateGeometry)
func ResolveConv2D(input, kernel *RawTensor, stride Stride, padding Padding, format DataFormat) (*ConvGeometry, error) {
	if format != NHWC && format != NCHW {
		return nil, fmt.Errorf("conv2d: %w: unrecognized data format %d", ErrInvalidConfiguration, format)
	}

	inShape := input.Shape()
	kShape := kernel.Shape()
	if len(inShape) != 4 {
		return nil, fmt.Errorf("conv2d: %w: input must be 4D, got %dD", ErrShapeMismatch, len(inShape))
	}
	if len(kShape) != 4 {
		return nil, fmt.Errorf("conv2d: %w: kernel must be 4D [KH,KW,Cin,Cout], got %dD", ErrShapeMismatch, len(kShape))
	}
	if input.DType() != kernel.DType() {
		return nil, fmt.Errorf("conv2d: %w: input dtype %s != kernel dtype %s", ErrShapeMismatch, input.DType(), kernel.DType())
	}

	g := &ConvGeometry{Format: format}
	g.N = inShape[0]
	if format == NCHW {
		g.Cin, g.H, g.W = inShape[1], inShape[2], inShape[3]
	} else {
		g.H, g.W, g.Cin = inShape[1], inShape[2], inShape[3]
	}
	g.KH, g.KW, g.Cout = kShape[0], kShape[1], kShape[3]

	if kShape[2] != g.Cin {
		return nil, fmt.Errorf("conv2d: %w: input channels %d != kernel channels %d", ErrShapeMismatch, g.Cin, kShape[2])
	}

	if err := stride.Validate(format); err != nil {
		return nil, fmt.Errorf("conv2d: %w", err)
	}
	g.SH, g.SW = stride.Spatial(format)

	var err error
	g.HOut, g.PadTop, err = ConvOutputSize(g.H, g.KH, g.SH, padding)
	if err != nil {
		return nil, fmt.Errorf("conv2d: height axis: %w", err)
	}
	g.WOut, g.PadLeft, err = ConvOutputSize(g.W, g.KW, g.SW, padding)
	if err != nil {
		return nil, fmt.Errorf("conv2d: width axis: %w", err)
	}

	return g, nil
}

// ConvOutputSize computes the output size and leading zero-padding for
// one spatial axis.
//
// Valid: out = (in - kernel)/stride + 1, no padding. A kernel larger than
// the input fails with ErrDegenerateGeometry rather than producing an
// empty axis.
//
// Same: out = ceil(in/stride). Total padding is
// max((out-1)*stride + kernel - in, 0), split as before = total/2 with
// the remainder after.
func ConvOutputSize(in, kernel, stride int, padding Padding) (out, padBefore int, err error) {
	switch padding {
	case Valid:
		if in < kernel {
			return 0, 0, fmt.Errorf("%w: kernel size %d exceeds input size %d under VALID padding", ErrDegenerateGeometry, kernel, in)
		}
		return (in-kernel)/stride + 1, 0, nil
	case Same:
		out = (in + stride - 1) / stride
		padTotal := (out-1)*stride + kernel - in
		if padTotal < 0 {
			padTotal = 0
		}
		return out, padTotal / 2, nil
	default:
		return 0, 0, fmt.Errorf("%w: unrecognized padding mode %d", ErrInvalidConfiguration, padding)
	}
}
