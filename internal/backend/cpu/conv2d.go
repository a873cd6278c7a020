package cpu

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/parallel"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Conv2D performs 2D cross-correlation using the im2col algorithm.
//
// Input shape:  [N, H, W, Cin] (NHWC) or [N, Cin, H, W] (NCHW)
// Kernel shape: [KH, KW, Cin, Cout] under both formats
// Output shape: [N, HOut, WOut, Cout] or [N, Cout, HOut, WOut]
//
// Algorithm: Im2col
//  1. Transform input patches into columns (im2col), one row per output
//     position, zero-filling cells where the window overhangs the input
//  2. The kernel in row-major [KH, KW, Cin, Cout] layout is already a
//     [KH*KW*Cin, Cout] matrix, so no reshape is needed
//  3. Matrix multiplication: each output cell is one dot product
//
// Im2col is efficient because:
//   - Converts convolution to matmul (cache-friendly memory access)
//   - Zero padding falls out of the patch extraction for free
//
// Both passes are partitioned across the output-position index space by
// the parallel worker pool; every position owns disjoint output cells,
// so the only synchronization is the completion barrier.
//
// Reference: "High Performance Convolutional Neural Networks for Document Processing"
// (Chellapilla et al., 2006).
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride tensor.Stride, padding tensor.Padding, format tensor.DataFormat) (*tensor.RawTensor, error) {
	g, err := tensor.ResolveConv2D(input, kernel, stride, padding, format)
	if err != nil {
		return nil, err
	}

	output, err := tensor.NewRaw(g.OutputShape(), input.DType(), cpu.device)
	if err != nil {
		return nil, fmt.Errorf("conv2d: failed to create output tensor: %w", err)
	}

	// Dispatch to type-specific implementation
	switch input.DType() {
	case tensor.Float32:
		conv2dFloat32(output, input, kernel, g, cpu.par)
	case tensor.Float64:
		conv2dFloat64(output, input, kernel, g, cpu.par)
	default:
		return nil, fmt.Errorf("conv2d: %w: unsupported dtype %s", tensor.ErrInvalidConfiguration, input.DType())
	}

	return output, nil
}

// conv2dFloat32 performs Conv2D for float32 using im2col.
func conv2dFloat32(output, input, kernel *tensor.RawTensor, g *tensor.ConvGeometry, cfg parallel.Config) {
	inputData := input.AsFloat32()
	kernelData := kernel.AsFloat32()
	outputData := output.AsFloat32()

	// Im2col: colBuf is [N * HOut * WOut, KH * KW * Cin]
	colWidth := g.KH * g.KW * g.Cin
	colHeight := g.N * g.HOut * g.WOut
	colBuf := make([]float32, colHeight*colWidth)

	im2colFloat32(colBuf, inputData, g, cfg)

	// MatMul: output[pos, co] = sum_k colBuf[pos, k] * kernelData[k*Cout + co].
	// The k axis runs over (ki, kj, ci) in fixed order, which keeps the
	// accumulation deterministic. Output cells are written through the
	// format's strides, so NCHW needs no separate rearrange pass.
	outN, outC, outH, outW := g.OutputStrides()
	area := g.HOut * g.WOut
	parallel.For(colHeight, func(pos int) {
		n := pos / area
		rem := pos % area
		i := rem / g.WOut
		j := rem % g.WOut

		row := colBuf[pos*colWidth : (pos+1)*colWidth]
		base := n*outN + i*outH + j*outW
		for k, v := range row {
			krow := kernelData[k*g.Cout : (k+1)*g.Cout]
			for co, kv := range krow {
				outputData[base+co*outC] += v * kv
			}
		}
	}, cfg)
}

// im2colFloat32 transforms the input tensor into a column matrix.
//
// Each row of colBuf corresponds to one output position (n, i, j); each
// column to one kernel weight, in (ki, kj, ci) order. Window cells whose
// input coordinate falls outside [0,H)x[0,W) are filled with zero - this
// is the whole padding contract.
func im2colFloat32(colBuf, inputData []float32, g *tensor.ConvGeometry, cfg parallel.Config) {
	colWidth := g.KH * g.KW * g.Cin
	inN, inC, inH, inW := g.InputStrides()
	area := g.HOut * g.WOut

	parallel.For(g.N*area, func(pos int) {
		n := pos / area
		rem := pos % area
		i := rem / g.WOut
		j := rem % g.WOut

		// Top-left corner of the receptive window in input coordinates
		hStart := i*g.SH - g.PadTop
		wStart := j*g.SW - g.PadLeft

		bufIdx := pos * colWidth
		for ki := 0; ki < g.KH; ki++ {
			for kj := 0; kj < g.KW; kj++ {
				h := hStart + ki
				w := wStart + kj

				if h >= 0 && h < g.H && w >= 0 && w < g.W {
					base := n*inN + h*inH + w*inW
					for ci := 0; ci < g.Cin; ci++ {
						colBuf[bufIdx] = inputData[base+ci*inC]
						bufIdx++
					}
				} else {
					// Out of bounds (padding with zero)
					for ci := 0; ci < g.Cin; ci++ {
						colBuf[bufIdx] = 0.0
						bufIdx++
					}
				}
			}
		}
	}, cfg)
}

// conv2dFloat64 performs Conv2D for float64 using im2col.
//
//nolint:dupl // Intentional duplication with conv2dFloat32 (separate numeric paths)
func conv2dFloat64(output, input, kernel *tensor.RawTensor, g *tensor.ConvGeometry, cfg parallel.Config) {
	inputData := input.AsFloat64()
	kernelData := kernel.AsFloat64()
	outputData := output.AsFloat64()

	colWidth := g.KH * g.KW * g.Cin
	colHeight := g.N * g.HOut * g.WOut
	colBuf := make([]float64, colHeight*colWidth)

	im2colFloat64(colBuf, inputData, g, cfg)

	outN, outC, outH, outW := g.OutputStrides()
	area := g.HOut * g.WOut
	parallel.For(colHeight, func(pos int) {
		n := pos / area
		rem := pos % area
		i := rem / g.WOut
		j := rem % g.WOut

		row := colBuf[pos*colWidth : (pos+1)*colWidth]
		base := n*outN + i*outH + j*outW
		for k, v := range row {
			krow := kernelData[k*g.Cout : (k+1)*g.Cout]
			for co, kv := range krow {
				outputData[base+co*outC] += v * kv
			}
		}
	}, cfg)
}

//nolint:dupl // Intentional duplication with im2colFloat32 (separate numeric paths)
func im2colFloat64(colBuf, inputData []float64, g *tensor.ConvGeometry, cfg parallel.Config) {
	colWidth := g.KH * g.KW * g.Cin
	inN, inC, inH, inW := g.InputStrides()
	area := g.HOut * g.WOut

	parallel.For(g.N*area, func(pos int) {
		n := pos / area
		rem := pos % area
		i := rem / g.WOut
		j := rem % g.WOut

		hStart := i*g.SH - g.PadTop
		wStart := j*g.SW - g.PadLeft

		bufIdx := pos * colWidth
		for ki := 0; ki < g.KH; ki++ {
			for kj := 0; kj < g.KW; kj++ {
				h := hStart + ki
				w := wStart + kj

				if h >= 0 && h < g.H && w >= 0 && w < g.W {
					base := n*inN + h*inH + w*inW
					for ci := 0; ci < g.Cin; ci++ {
						colBuf[bufIdx] = inputData[base+ci*inC]
						bufIdx++
					}
				} else {
					for ci := 0; ci < g.Cin; ci++ {
						colBuf[bufIdx] = 0.0
						bufIdx++
					}
				}
			}
		}
	}, cfg)
}
