//go:build unix

package hostmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapProvider backs pages with anonymous private mappings, so a released
// block returns its address space to the kernel immediately instead of
// waiting for the collector. Blocks are page-aligned. The zero value is
// ready to use and all MmapProviders compare equal.
type MmapProvider struct{}

var _ Provider = MmapProvider{}

func (MmapProvider) RequestBlock(size int) ([]byte, error) {
	block, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return block, nil
}

func (MmapProvider) ReleaseBlock(block []byte) {
	if len(block) == 0 {
		return
	}
	err := unix.Munmap(block)
	if err == unix.EINVAL {
		// Not a mapping of ours, or already unmapped; treat as a no-op the
		// same way a double ReleaseBlock on the heap would be.
		return
	}
	if err != nil {
		panic(fmt.Sprintf("hostmem: munmap: %v", err))
	}
}
