package quiver

import (
	"errors"
	"fmt"
)

// ErrHostExhausted reports that the host memory provider could not supply a
// requested block. It is the only failure an arena surfaces: TryAlloc returns
// it wrapped in an *AllocError, Alloc panics with the same value.
var ErrHostExhausted = errors.New("quiver: host memory exhausted")

// errSizeOverflow is the cause recorded when rounding a request to the
// allocation granularity would wrap past the int range. No provider can
// supply such a block, so it fails like any other refused request.
var errSizeOverflow = errors.New("size overflows alignment rounding")

// AllocError describes a failed allocation. Err wraps ErrHostExhausted and,
// beneath it, the provider's own error (or the synthesized refusal when a
// diagnostics observer forced the failure).
type AllocError struct {
	Op   string // entry point: "Alloc", "TryAlloc"
	Size int    // requested bytes, before alignment
	Err  error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("quiver: %s(%d): %v", e.Op, e.Size, e.Err)
}

func (e *AllocError) Unwrap() error { return e.Err }

// hostFailure builds the error for a refused block request. Injected faults
// go through the same constructor, so the two are indistinguishable to
// callers.
func hostFailure(op string, size int, cause error) *AllocError {
	return &AllocError{Op: op, Size: size, Err: fmt.Errorf("%w: %w", ErrHostExhausted, cause)}
}
