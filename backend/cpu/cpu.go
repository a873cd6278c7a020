// Copyright 2026 The Lumen Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/lumen-ml/lumen/internal/backend/cpu"
	"github.com/lumen-ml/lumen/internal/parallel"
	"github.com/lumen-ml/lumen/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides a pure Go im2col convolution engine that
// partitions the output index space across a worker pool.
type Backend = internalcpu.CPUBackend

// Config controls the backend's parallel execution behavior.
type Config = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend sized to the machine's physical cores.
//
// Example:
//
//	import (
//	    "github.com/lumen-ml/lumen/backend/cpu"
//	    "github.com/lumen-ml/lumen/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{1, 28, 28, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit parallel settings.
// Pass a Config with Enabled set to false for single-threaded execution.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns the parallel settings New uses.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}
