// Copyright 2026 The Lumen Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/lumen-ml/lumen/internal/tensor"

// Padding selects how receptive windows that would extend outside the
// input bounds are handled.
type Padding = tensor.Padding

// Recognized padding modes.
const (
	// Valid restricts windows to fully in-bounds positions.
	Valid Padding = tensor.Valid
	// Same zero-extends the input so output spatial size is ceil(in/stride).
	Same Padding = tensor.Same
)

// DataFormat selects the physical axis order of 4D image tensors.
// The convolution contract is defined per logical axis; DataFormat only
// changes where each logical axis lives in memory.
type DataFormat = tensor.DataFormat

// Recognized data formats.
const (
	// NHWC stores tensors as [batch, height, width, channel].
	NHWC DataFormat = tensor.NHWC
	// NCHW stores tensors as [batch, channel, height, width].
	NCHW DataFormat = tensor.NCHW
)

// Stride holds per-axis window step sizes, ordered to match the input's
// axis order: [Sn, Sh, Sw, Sc] under NHWC, [Sn, Sc, Sh, Sw] under NCHW.
type Stride = tensor.Stride

// UnitStride returns the identity stride (window advances one cell per axis).
func UnitStride() Stride {
	return tensor.UnitStride()
}

// ConvOutputSize computes the output size and leading zero-padding for one
// spatial axis of a convolution. Useful for sizing buffers ahead of a call.
func ConvOutputSize(in, kernel, stride int, padding Padding) (out, padBefore int, err error) {
	return tensor.ConvOutputSize(in, kernel, stride, padding)
}

// Sentinel errors for the convolution contract. Classify with errors.Is.
var (
	// ErrShapeMismatch reports a rank or channel-count disagreement
	// between input and kernel.
	ErrShapeMismatch = tensor.ErrShapeMismatch

	// ErrInvalidConfiguration reports an unrecognized padding mode or
	// data format, or an unusable stride component.
	ErrInvalidConfiguration = tensor.ErrInvalidConfiguration

	// ErrDegenerateGeometry reports a kernel spatially larger than the
	// input under Valid padding.
	ErrDegenerateGeometry = tensor.ErrDegenerateGeometry
)
