package tensor

// Backend defines the interface that compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - CPU: pure Go im2col + matmul with a parallel worker pool
//   - MockBackend: naive reference loops, used to cross-check optimized
//     backends in tests
type Backend interface {
	// Conv2D computes a 2D cross-correlation of input with kernel.
	//
	// Input shape:  [N, H, W, Cin] (NHWC) or [N, Cin, H, W] (NCHW)
	// Kernel shape: [KH, KW, Cin, Cout] under both formats
	// Output shape: [N, HOut, WOut, Cout] or [N, Cout, HOut, WOut],
	// matching the input's format.
	//
	// All contract violations (rank, channel mismatch, stride, padding
	// mode, degenerate geometry) are reported as errors wrapping the
	// package sentinels before any output is materialized.
	Conv2D(input, kernel *RawTensor, stride Stride, padding Padding, format DataFormat) (*RawTensor, error)

	// Metadata
	Name() string
	Device() Device
}
