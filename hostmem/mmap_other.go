//go:build !unix

package hostmem

// MmapProvider falls back to heap-backed blocks on platforms without
// anonymous mappings, so the type stays portable.
type MmapProvider struct{}

var _ Provider = MmapProvider{}

func (MmapProvider) RequestBlock(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (MmapProvider) ReleaseBlock([]byte) {}
