// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfp

import "unsafe"

// LocalPtr is a per-goroutine allocation handle over a PoolPtr.
//
// A handle carries a private, unsynchronized stack of free slots.
// Alloc consults this cache first (no atomics) and falls through to
// the pool's global free list on a miss. Free always pushes onto the
// cache and never touches the global list.
//
// The cache is unbounded: a slot freed through a handle stays pinned
// to that handle until the same handle reallocates it. It never drains
// back to the global list, so other goroutines cannot see it. This is
// an intentional trade-off — zero-synchronization deallocation at the
// price of possible cross-goroutine slot starvation — and a documented
// limitation, not a bug.
//
// A LocalPtr must only ever be used by the goroutine that will own it.
// Go has no thread-local storage, so the ownership is by convention
// and is not checked at runtime.
type LocalPtr struct {
	pool *PoolPtr
	head uint64 // Private free stack (slot index), noSlot when empty
}

// Alloc returns storage for one element, or ErrExhausted when no slot
// is available to this handle.
//
// The returned bytes are uninitialized (stale contents from the slot's
// previous life) unless the pool was built WithZero. Non-blocking:
// exhaustion is an expected outcome for the caller to handle with
// backpressure or retry, not a failure.
//
// Note that exhaustion is relative to this handle: slots sitting in
// other handles' caches are not reachable from here.
func (l *LocalPtr) Alloc() (unsafe.Pointer, error) {
	idx := l.head
	if idx != noSlot {
		l.head = l.pool.arena.next(idx)
	} else if idx = l.pool.popGlobal(); idx == noSlot {
		return nil, ErrExhausted
	}

	p := l.pool.arena.slot(idx)
	if l.pool.zero {
		clear(unsafe.Slice((*byte)(p), l.pool.arena.stride))
	}
	return p, nil
}

// Free returns a slot to this handle's private cache, making it
// immediately available to the same handle's next Alloc.
//
// ptr must have been produced by an Alloc on the same pool and not
// already freed, and any logical object in it must already be torn
// down by the caller. None of this is validated on the production
// path — double frees and foreign pointers are undefined behavior.
// Race-detector builds validate that ptr is a slot boundary of this
// pool's block.
func (l *LocalPtr) Free(ptr unsafe.Pointer) {
	if RaceEnabled && !l.pool.arena.owns(ptr) {
		panic("lfp: pointer was not allocated from this pool")
	}
	idx := l.pool.arena.index(ptr)
	l.pool.arena.setNext(idx, l.head)
	l.head = idx
}
