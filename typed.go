package quiver

import (
	"fmt"
	"unsafe"
)

// New allocates memory for one value of type T in the arena and returns a
// typed pointer to it. The memory lives until Destroy or Reset; after that
// it must not be touched, since the backing page may have been unmapped or
// recycled by the provider.
//
// T must not contain pointers. Pages are untyped bytes the garbage collector
// does not scan, so a pointer stored in arena memory keeps nothing alive. No
// Go type needs alignment beyond the arena's 8-byte granularity.
func New[T any](a *Arena) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return new(T)
	}
	block := a.Alloc(size)
	return (*T)(unsafe.Pointer(&block[0]))
}

// MakeSlice allocates a []T of the given length and capacity in the arena.
// The pointer-free constraint and lifetime rules of New apply.
func MakeSlice[T any](a *Arena, length, capacity int) []T {
	if length < 0 || capacity < length {
		panic(fmt.Sprintf("quiver: MakeSlice: invalid length %d, capacity %d", length, capacity))
	}
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if elem == 0 || capacity == 0 {
		return make([]T, length, capacity)
	}
	block := a.Alloc(elem * capacity)
	s := unsafe.Slice((*T)(unsafe.Pointer(&block[0])), capacity)
	return s[:length]
}
