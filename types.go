// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfp

import "unsafe"

// Allocator is the handle interface for type-safe allocation.
//
// *Local[T] implements Allocator[T]. Code that only allocates and
// frees can accept the interface and stay independent of the pool
// flavor behind it:
//
//	func fill(a lfp.Allocator[Order], id uint64) (*Order, error) {
//	    o, err := a.Alloc()
//	    if err != nil {
//	        return nil, err
//	    }
//	    o.ID = id
//	    return o, nil
//	}
//
// The interface intentionally excludes occupancy accounting. An
// accurate in-use count in a lock-free pool would require cross-core
// synchronization on every operation; track counts in application
// logic when needed.
type Allocator[T any] interface {
	// Alloc returns storage for one T (non-blocking).
	// Returns (nil, ErrExhausted) when no slot is available.
	Alloc() (*T, error)

	// Free returns a slot previously produced by Alloc on the same
	// pool. The logical object must already be torn down.
	Free(elem *T)
}

// AllocatorPtr is the handle interface for raw-storage allocation.
// *LocalPtr implements AllocatorPtr.
type AllocatorPtr interface {
	// Alloc returns storage for one element (non-blocking).
	// Returns (nil, ErrExhausted) when no slot is available.
	Alloc() (unsafe.Pointer, error)

	// Free returns a slot previously produced by Alloc on the same
	// pool. The logical object must already be torn down.
	Free(ptr unsafe.Pointer)
}

var (
	_ Allocator[struct{ _ uint64 }] = (*Local[struct{ _ uint64 }])(nil)
	_ AllocatorPtr                  = (*LocalPtr)(nil)
)
