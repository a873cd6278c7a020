package tensor

import "fmt"

// MockBackend is a naive reference backend used by tests.
//
// It implements the convolution contract with direct sliding-window loops
// in the exact accumulation order the contract specifies (ki, kj, ci),
// trading speed for obviousness. Optimized backends are cross-checked
// against it.
type MockBackend struct{}

// NewMockBackend creates a new mock backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "Mock"
}

// Device returns the compute device.
func (m *MockBackend) Device() Device {
	return CPU
}

// Conv2D performs 2D cross-correlation with naive direct loops.
//
// For every output position (n, i, j, co) it accumulates
//
//	sum += input[n, i*SH - padTop + ki, j*SW - padLeft + kj, ci] * kernel[ki, kj, ci, co]
//
// over (ki, kj, ci), treating out-of-bounds input coordinates as zero.
func (m *MockBackend) Conv2D(input, kernel *RawTensor, stride Stride, padding Padding, format DataFormat) (*RawTensor, error) {
	g, err := ResolveConv2D(input, kernel, stride, padding, format)
	if err != nil {
		return nil, err
	}

	output, err := NewRaw(g.OutputShape(), input.DType(), m.Device())
	if err != nil {
		return nil, fmt.Errorf("conv2d: failed to create output tensor: %w", err)
	}

	inputData := m.toFloat64Slice(input)
	kernelData := m.toFloat64Slice(kernel)
	outputData := make([]float64, output.NumElements())

	// Element strides for the logical (n, c, h, w) axes of input and output.
	inN, inC, inH, inW := g.InputStrides()
	outN, outC, outH, outW := g.OutputStrides()

	for n := 0; n < g.N; n++ {
		for i := 0; i < g.HOut; i++ {
			for j := 0; j < g.WOut; j++ {
				row0 := i*g.SH - g.PadTop
				col0 := j*g.SW - g.PadLeft

				for co := 0; co < g.Cout; co++ {
					sum := 0.0
					for ki := 0; ki < g.KH; ki++ {
						for kj := 0; kj < g.KW; kj++ {
							h := row0 + ki
							w := col0 + kj
							if h < 0 || h >= g.H || w < 0 || w >= g.W {
								continue // Zero padding
							}
							for ci := 0; ci < g.Cin; ci++ {
								inIdx := n*inN + ci*inC + h*inH + w*inW
								kIdx := ((ki*g.KW+kj)*g.Cin+ci)*g.Cout + co
								sum += inputData[inIdx] * kernelData[kIdx]
							}
						}
					}
					outputData[n*outN+co*outC+i*outH+j*outW] = sum
				}
			}
		}
	}

	m.fromFloat64Slice(outputData, output)
	return output, nil
}

// toFloat64Slice widens tensor data to float64 for format-agnostic math.
func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	switch t.DType() {
	case Float32:
		src := t.AsFloat32()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	case Float64:
		return t.AsFloat64()
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", t.DType()))
	}
}

// fromFloat64Slice narrows float64 results back into the tensor's dtype.
func (m *MockBackend) fromFloat64Slice(data []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range data {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), data)
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", t.DType()))
	}
}
