package quiver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocError_Message(t *testing.T) {
	cause := errors.New("mmap failed")
	err := hostFailure("TryAlloc", 4096, cause)

	assert.Equal(t, "quiver: TryAlloc(4096): quiver: host memory exhausted: mmap failed", err.Error())
}

func TestAllocError_Unwrapping(t *testing.T) {
	cause := errors.New("cgroup limit hit")
	var err error = hostFailure("Alloc", 128, cause)

	// Both the sentinel and the provider's cause are reachable.
	assert.ErrorIs(t, err, ErrHostExhausted)
	assert.ErrorIs(t, err, cause)

	var ae *AllocError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Alloc", ae.Op)
	assert.Equal(t, 128, ae.Size)
}
