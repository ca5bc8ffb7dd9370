// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfp

import "unsafe"

// cacheLine is the coherence granularity the arena lays storage out for.
const cacheLine = 64

// linkSize is the number of leading slot bytes reused as the free-list
// link while a slot is free.
const linkSize = unsafe.Sizeof(uint64(0))

// noSlot is the empty sentinel for free-list heads and links.
const noSlot = ^uint64(0)

// arena owns the backing storage of a pool: one contiguous block with
// its base aligned to the cache line, partitioned into fixed-stride
// slots addressed by index.
//
// While a slot is free, its leading 8 bytes hold the index of the next
// free slot (or noSlot). The link is a structural overlay on the same
// bytes that later hold the caller's object, not a separate allocation.
// It is meaningful only while the slot is free; once a slot is handed
// out, all of its stride bytes belong to the caller.
type arena struct {
	buf    []byte         // keeps the block reachable
	base   unsafe.Pointer // cache-line-aligned start within buf
	stride uintptr        // distance between adjacent slots
	slots  uint64
}

// slotStride computes the distance between adjacent slots for an
// element of the given size and alignment. The stride is never below
// linkSize, keeps every slot boundary link-aligned (the free-link
// overlay does 8-byte accesses at slot starts), and is padded further
// when slotAlign is set. All alignments are powers of two, so the
// largest one subsumes the rest.
func slotStride(size, align, slotAlign uintptr) uintptr {
	stride := size
	if stride < linkSize {
		stride = linkSize
	}
	if align < linkSize {
		align = linkSize
	}
	if slotAlign > align {
		align = slotAlign
	}
	if r := stride % align; r != 0 {
		stride += align - r
	}
	return stride
}

// newArena acquires one block of capacity*stride bytes, rounded up to
// a multiple of the cache line, with the base aligned to the cache
// line (or the element/slot alignment when larger). Go offers no
// aligned allocation, so the block is over-allocated and the base
// offset into it.
//
// Running out of memory here is fatal by design: make throws and the
// pool cannot be constructed without storage.
func newArena(size, align, slotAlign uintptr, capacity int) arena {
	stride := slotStride(size, align, slotAlign)

	// The stride keeps slot offsets a multiple of every requested
	// alignment; the base must honor them too or every slot inherits
	// its misalignment.
	baseAlign := uintptr(cacheLine)
	if align > baseAlign {
		baseAlign = align
	}
	if slotAlign > baseAlign {
		baseAlign = slotAlign
	}

	total := stride * uintptr(capacity)
	if r := total % cacheLine; r != 0 {
		total += cacheLine - r
	}

	buf := make([]byte, total+baseAlign)
	raw := unsafe.Pointer(unsafe.SliceData(buf))
	off := uintptr(0)
	if r := uintptr(raw) % baseAlign; r != 0 {
		off = baseAlign - r
	}

	return arena{
		buf:    buf,
		base:   unsafe.Add(raw, off),
		stride: stride,
		slots:  uint64(capacity),
	}
}

// slot returns the address of the slot at idx.
func (a *arena) slot(idx uint64) unsafe.Pointer {
	return unsafe.Add(a.base, uintptr(idx)*a.stride)
}

// index returns the slot index of an address previously produced by slot.
func (a *arena) index(p unsafe.Pointer) uint64 {
	return uint64((uintptr(p) - uintptr(a.base)) / a.stride)
}

// next reads the free-list link of a free slot.
func (a *arena) next(idx uint64) uint64 {
	return *(*uint64)(a.slot(idx))
}

// setNext writes the free-list link of a free slot.
func (a *arena) setNext(idx, next uint64) {
	*(*uint64)(a.slot(idx)) = next
}

// owns reports whether p is a slot boundary inside the block.
func (a *arena) owns(p unsafe.Pointer) bool {
	if uintptr(p) < uintptr(a.base) {
		return false
	}
	off := uintptr(p) - uintptr(a.base)
	return off < a.stride*uintptr(a.slots) && off%a.stride == 0
}

// link threads every slot into the initial free chain: slot i links to
// slot i+1, the last slot links to nothing. The order is fixed and
// deterministic. Runs single-threaded; the caller publishes the
// returned head index with a release store so that threads observing
// it via acquire loads see a fully linked chain.
func (a *arena) link() uint64 {
	for i := uint64(0); i+1 < a.slots; i++ {
		a.setNext(i, i+1)
	}
	a.setNext(a.slots-1, noSlot)
	return 0
}
