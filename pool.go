// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfp

import (
	"code.hybscloud.com/atomix"
)

// PoolPtr is a fixed-capacity lock-free pool handing out raw storage
// slots of a single size and alignment.
//
// Every one of the pool's slots is, at all times, in exactly one of
// three states: free on the global list, free in some handle's private
// cache, or held by a caller. The pool never constructs or destroys
// the logical object living in a slot; callers receive borrowed,
// exclusive raw bytes and must manage object lifecycle themselves.
//
// All allocation and deallocation goes through per-goroutine handles
// obtained from Local. The pool itself only carries the storage block
// and the global free-list head, the sole state shared across
// goroutines.
//
// The backing block is untyped memory the garbage collector does not
// scan. Values stored in slots must not contain pointers, or the
// referenced objects may be collected while still in use.
type PoolPtr struct {
	_     pad
	free  atomix.Uint64 // Global free-list head (slot index)
	_     pad
	arena arena
	zero  bool
}

// NewPtr creates a pool of capacity slots, each able to hold one
// element of the given size and alignment.
//
// The backing block's base address is aligned to 64 bytes, a guarantee
// callers may rely on for false-sharing avoidance of adjacent slots
// (combine with WithSlotAlign(64) to keep every slot on its own line).
//
// Panics if capacity < 1, size is zero, or an alignment is not a
// power of 2. Failure to obtain backing storage is fatal.
func NewPtr(elemSize, elemAlign uintptr, capacity int, opts ...Option) *PoolPtr {
	if capacity < 1 {
		panic("lfp: capacity must be >= 1")
	}
	if elemSize == 0 {
		panic("lfp: element size must be > 0")
	}
	if elemAlign == 0 || elemAlign&(elemAlign-1) != 0 {
		panic("lfp: element alignment must be a power of 2")
	}

	var o Options
	o.apply(opts)
	if o.slotAlign != 0 && o.slotAlign&(o.slotAlign-1) != 0 {
		panic("lfp: slot alignment must be a power of 2")
	}

	p := &PoolPtr{
		arena: newArena(elemSize, elemAlign, o.slotAlign, capacity),
		zero:  o.zero,
	}
	p.free.StoreRelease(p.arena.link())
	return p
}

// Local returns an allocation handle owned by the calling goroutine.
//
// Each goroutine that allocates or frees must obtain its own handle.
// A handle's private cache is touched by exactly one goroutine ever,
// which is what makes its fast path synchronization-free. Sharing a
// handle between goroutines causes undefined behavior including data
// corruption; this constraint is not checked at runtime.
func (p *PoolPtr) Local() *LocalPtr {
	return &LocalPtr{pool: p, head: noSlot}
}

// Cap returns the pool capacity in slots.
func (p *PoolPtr) Cap() int {
	return int(p.arena.slots)
}

// SlotSize returns the distance in bytes between adjacent slots:
// the element size rounded up for alignment, link overlay, and the
// slot-alignment option.
func (p *PoolPtr) SlotSize() uintptr {
	return p.arena.stride
}

// Reset relinks every slot into the initial free chain and republishes
// the global head, returning the pool to its freshly constructed
// state.
//
// The caller must guarantee quiescence: no slot may still be held and
// no other goroutine may touch the pool during Reset. Handles obtained
// before Reset must be discarded; their cached slots are relinked out
// from under them.
func (p *PoolPtr) Reset() {
	p.free.StoreRelease(p.arena.link())
}
