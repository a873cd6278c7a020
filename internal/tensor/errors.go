package tensor

import "errors"

// Sentinel errors for the convolution contract. Backends wrap these with
// call-site context via fmt.Errorf and %w, so callers can classify
// failures with errors.Is.
var (
	// ErrShapeMismatch reports a rank or channel-count disagreement between
	// input and kernel, detected before any computation begins.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidConfiguration reports an unrecognized padding mode or data
	// format, or a non-positive stride component.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDegenerateGeometry reports a kernel whose spatial size exceeds the
	// input's under Valid padding. The engine fails loudly rather than
	// producing an empty output tensor.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
