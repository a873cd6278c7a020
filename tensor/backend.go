// Copyright 2026 The Lumen Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/lumen-ml/lumen/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go im2col engine with a parallel worker pool
//
// Example:
//
//	import (
//	    "github.com/lumen-ml/lumen/backend/cpu"
//	    "github.com/lumen-ml/lumen/tensor"
//	)
//
//	backend := cpu.New()
//	img := tensor.Rand[float32](tensor.Shape{1, 28, 28, 1}, backend)
//	out, err := img.Conv2D(filters, tensor.UnitStride(), tensor.Same, tensor.NHWC)
type Backend interface {
	// Conv2D computes a 2D cross-correlation of input with kernel.
	//
	// Input shape:  [N, H, W, Cin] (NHWC) or [N, Cin, H, W] (NCHW)
	// Kernel shape: [KH, KW, Cin, Cout] under both formats
	// Output shape matches the input's data format.
	//
	// Contract violations are reported as errors wrapping the package
	// sentinels, before any output is materialized.
	Conv2D(input, kernel *RawTensor, stride Stride, padding Padding, format DataFormat) (*RawTensor, error)

	// Metadata.
	Name() string   // Backend name (e.g., "CPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
