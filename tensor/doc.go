// Copyright 2026 The Lumen Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors and the 2D convolution
// contract for the Lumen convolution library.
//
// # Overview
//
// Lumen computes batched, multi-channel 2D cross-correlations over dense
// 4D tensors. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - The convolution configuration types (Stride, Padding, DataFormat)
//   - The Backend interface compute engines implement
//   - Sentinel errors for contract violations
//
// # Basic Usage
//
//	import (
//	    "github.com/lumen-ml/lumen/backend/cpu"
//	    "github.com/lumen-ml/lumen/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // A batch of one 28x28 grayscale image and eight 3x3 filters.
//	    img := tensor.Rand[float32](tensor.Shape{1, 28, 28, 1}, backend)
//	    filters := tensor.Randn[float32](tensor.Shape{3, 3, 1, 8}, backend)
//
//	    out, err := img.Conv2D(filters, tensor.UnitStride(), tensor.Same, tensor.NHWC)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // out has shape [1, 28, 28, 8]: SAME padding preserves H and W.
//	}
//
// # Data Formats
//
// Tensors are addressed by logical (batch, row, column, channel) axes.
// Two physical layouts are supported: NHWC ([N, H, W, C], the default)
// and NCHW ([N, C, H, W]). Kernels always use [KH, KW, Cin, Cout], and
// the output layout matches the input layout.
//
// # Supported Data Types
//
// The DType constraint admits float32 and float64. All convolution
// arithmetic runs in the tensor's own precision with a fixed,
// deterministic accumulation order.
//
// # Error Handling
//
// All contract violations are detected before any output is computed and
// reported as errors wrapping ErrShapeMismatch, ErrInvalidConfiguration,
// or ErrDegenerateGeometry; classify them with errors.Is.
package tensor
