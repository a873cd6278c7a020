// Copyright 2026 The Lumen Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU compute backend for the Lumen convolution library.
//
// # Overview
//
// The CPU backend implements tensor.Backend in pure Go. Convolutions use
// the im2col transformation: every receptive window becomes one row of a
// column matrix, the kernel's row-major [KH, KW, Cin, Cout] layout is
// read as a [KH*KW*Cin, Cout] matrix, and each output cell is a single
// dot product. Both passes are partitioned over the output-position
// index space by a worker pool; cells are independent, so the only
// synchronization is the completion barrier before returning.
//
// # Usage
//
//	backend := cpu.New()
//	img := tensor.Rand[float32](tensor.Shape{1, 32, 32, 3}, backend)
//	filters := tensor.Randn[float32](tensor.Shape{5, 5, 3, 16}, backend)
//
//	out, err := img.Conv2D(filters, tensor.Stride{1, 2, 2, 1}, tensor.Valid, tensor.NHWC)
//	// out: [1, 14, 14, 16]
//
// # Determinism
//
// Accumulation order is fixed per output cell regardless of the worker
// configuration, so repeated calls with identical inputs produce
// bit-identical outputs.
package cpu
