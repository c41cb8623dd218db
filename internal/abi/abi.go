//go:build wasip1

// Package abi manages the guest side of the linear-memory calling convention:
// pointer/length pairs packed into a single uint64 (pointer in the high 32
// bits, length in the low 32).
package abi

import (
	"fmt"
	"sync"
	"unsafe"
)

// MaxTotalAllocations caps the memory the module will pin for boundary
// transfers. The demo exchanges short strings; anything near this limit is a
// leak or a hostile host.
const MaxTotalAllocations = 16 * 1024 * 1024

// pinned keeps a reference to every buffer handed across the boundary so the
// Go GC cannot move or collect it before the host is done reading.
var pinned = struct {
	sync.Mutex
	bufs  map[uint32][]byte
	total int
}{
	bufs: make(map[uint32][]byte),
}

// allocate reserves size bytes of linear memory for the host to write into
// and returns the pointer. The buffer stays pinned until deallocate.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	pinned.Lock()
	defer pinned.Unlock()

	if pinned.total+int(size) > MaxTotalAllocations {
		panic(fmt.Sprintf("abi: allocation limit exceeded (requested %d, pinned %d, limit %d)",
			size, pinned.total, MaxTotalAllocations))
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	pinned.bufs[ptr] = buf
	pinned.total += int(size)
	return ptr
}

// deallocate unpins the buffer at ptr. Unknown pointers are ignored so the
// call is idempotent; accounting uses the stored length, not the caller's.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, _ uint32) {
	pinned.Lock()
	defer pinned.Unlock()

	buf, ok := pinned.bufs[ptr]
	if !ok {
		return
	}
	delete(pinned.bufs, ptr)
	pinned.total -= len(buf)
	if pinned.total < 0 {
		pinned.total = 0
	}
}

// FreeAllTracked unpins every outstanding buffer. Called during panic
// recovery so an aborted export cannot leak its transfers.
func FreeAllTracked() {
	pinned.Lock()
	defer pinned.Unlock()

	clear(pinned.bufs)
	pinned.total = 0
}

// PtrFromBytes copies data into pinned linear memory and returns the packed
// pointer/length for the host to read.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	size := uint32(len(data))
	ptr := allocate(size)
	dst := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), size)
	copy(dst, data)
	return PackPtrLen(ptr, size)
}

// BytesFromPtr copies the packed region out of linear memory. A zero packed
// value yields nil.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	out := make([]byte, length)
	copy(out, src)
	return out
}

// DeallocatePacked unpins the region described by a packed pointer/length.
func DeallocatePacked(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		deallocate(ptr, length)
	}
}

// PackPtrLen packs a pointer and length into one uint64. A null pointer with
// a non-zero length is always a bug.
func PackPtrLen(ptr, length uint32) uint64 {
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: null pointer with non-zero length %d", length))
	}
	return (uint64(ptr) << 32) | uint64(length)
}

// UnpackPtrLen is the inverse of PackPtrLen.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)
	length = uint32(packed)
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: null pointer with non-zero length %d", length))
	}
	return ptr, length
}
