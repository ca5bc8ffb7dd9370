// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfp provides a fixed-capacity lock-free object pool.
//
// The pool hands out and reclaims storage slots for exactly N elements
// of a single size and alignment, with no heap allocation after
// construction, no locks, and no fragmentation. It targets
// latency-sensitive systems (order processing, message buffers) that
// need deterministic allocation cost.
//
// # Quick Start
//
// Generic flavor (recommended for most cases):
//
//	pool := lfp.New[Order](1024)
//	local := pool.Local() // One handle per goroutine
//
//	o, err := local.Alloc()
//	if lfp.IsExhausted(err) {
//	    // All 1024 slots are in use - handle backpressure
//	}
//	*o = Order{ID: 1, Price: 100.5, Qty: 10}
//
//	local.Free(o)
//
// Raw flavor for explicit size/alignment control:
//
//	pool := lfp.NewPtr(40, 8, 1024)
//	local := pool.Local()
//	p, err := local.Alloc() // unsafe.Pointer to 40 usable bytes
//
// # Local Handles
//
// Go has no thread-local storage, so the per-thread fast-path cache is
// an explicit handle: every goroutine that allocates or frees obtains
// its own Local from the pool. The handle's private free stack is
// touched by exactly one goroutine ever, which is what makes Alloc's
// fast path and every Free synchronization-free. Only a local-cache
// miss reaches the shared lock-free free list.
//
// A handle is scoped to one pool, so multiple pools of the same
// element type never leak slots into each other's caches.
//
// Sharing a handle between goroutines causes undefined behavior
// including data corruption. This constraint is not checked at
// runtime.
//
// # Allocation Protocol
//
// Alloc pops from the handle's private cache first (no atomics). On a
// miss it falls through to a compare-and-swap loop against the global
// free list. When both are empty it returns ErrExhausted - an
// expected, non-fatal outcome, never a panic and never a block.
//
// Free pushes onto the handle's private cache only. It never touches
// the global list, so deallocation costs two plain memory operations.
//
// Per-slot state machine:
//
//	FreeGlobal → (Alloc, CAS pop) → InUse
//	InUse → (Free) → FreeLocal(handle)
//	FreeLocal(handle) → (Alloc by same handle) → InUse
//
// There is no transition from FreeLocal back to FreeGlobal: once a
// slot lands in a handle's cache it is pinned there until the same
// handle reallocates it. A goroutine that frees many slots and never
// reuses them holds those slots away from the rest of the process
// indefinitely. This trade-off buys zero-synchronization deallocation
// and is a documented limitation of the design.
//
// # Object Lifecycle
//
// The pool manages raw storage only. Alloc returns uninitialized bytes
// (dirty with the slot's previous contents unless WithZero is set);
// the caller constructs the logical object in place and must tear it
// down before Free. Scoped construct-on-acquire wrappers belong in a
// thin layer on top of the pool, not inside it.
//
// Because the backing block is untyped memory the garbage collector
// does not scan, element types must not contain pointers. New checks
// this at construction and panics; NewPtr callers carry the same
// obligation unchecked.
//
// # Common Patterns
//
// Per-worker allocation (handles pinned to workers):
//
//	pool := lfp.New[Request](4096)
//
//	for range numWorkers {
//	    go func() {
//	        local := pool.Local()
//	        backoff := iox.Backoff{}
//	        for job := range jobs {
//	            req, err := local.Alloc()
//	            for lfp.IsExhausted(err) {
//	                backoff.Wait() // Capacity is the backpressure bound
//	                req, err = local.Alloc()
//	            }
//	            backoff.Reset()
//	            *req = makeRequest(job)
//	            process(req)
//	            local.Free(req)
//	        }
//	    }()
//	}
//
// False-sharing avoidance for hot objects:
//
//	// Each slot on its own cache line
//	pool := lfp.New[Counter](256, lfp.WithSlotAlign(64))
//
// # Capacity and Exhaustion
//
// Capacity is exact: a pool of capacity N serves exactly N concurrent
// allocations, and the (N+1)-th returns ErrExhausted. Capacity is not
// rounded and cannot grow. Exhaustion is relative to the calling
// handle - slots parked in other handles' caches are not reachable.
//
// Occupancy accounting is intentionally not provided; an accurate
// in-use count would require cross-core synchronization on the fast
// path. Track counts in application logic when needed.
//
// # Error Handling
//
// The only runtime error is ErrExhausted, sourced from
// [code.hybscloud.com/iox] for ecosystem consistency:
//
//	lfp.IsExhausted(err)  // true if no slot was available
//	lfp.IsSemantic(err)   // true if control flow signal
//	lfp.IsNonFailure(err) // true if nil or ErrExhausted
//
// Construction panics on invalid parameters (capacity < 1, zero size,
// non-power-of-2 alignment, pointer-bearing element type). Failure to
// obtain backing storage at construction is fatal; nothing else in the
// pool can fail.
//
// All other misuse - double free, freeing a foreign pointer, use after
// free, sharing a handle - is a caller precondition violation with
// undefined behavior. The pool performs no provenance validation on
// the production path, trading safety checks for allocation speed.
// Race-detector builds validate Free arguments as a debug aid.
//
// # Memory Layout
//
// The backing block is contiguous, sized capacity x stride rounded up
// to a 64-byte cache line, with the base address aligned to 64 bytes or
// to the element alignment when that is larger - a guarantee callers
// may rely on. Stride is the element size rounded up to the element
// alignment and to a multiple of 8 bytes: while a slot is free, its
// leading 8 bytes are reinterpreted as the free-list link.
// The linkage is carved out of the same bytes that later hold the live
// object; no per-slot bookkeeping exists anywhere else.
//
// # ABA and Scope Boundaries
//
// The global free list is a CAS stack with no ABA mitigation. This is
// safe here, not an oversight: slots are never pushed back onto the
// global list after construction (frees go to local caches), so the
// A-B-A reappearance that breaks naive CAS stacks cannot occur. Any
// future extension that drains caches back to the global list must add
// a versioned head or hazard pointers first.
//
// Also out of scope by design: growing capacity, variable-size
// allocation, automatic object construction or destruction, and
// cross-goroutine rebalancing of freed slots.
//
// # Thread Safety
//
// The storage block and the global free-list head are the only state
// shared across goroutines; all mutation of the head goes through a
// single compare-and-swap with acquire-release ordering. Concurrent
// Allocs never return the same slot twice. Handles are strictly
// single-goroutine. Pool construction happens before every Alloc on
// every goroutine (release store of the initial chain head, acquire
// loads thereafter).
//
// Every operation is non-blocking and runs to completion without
// yielding. The CAS loop is the only code that can spin, only under
// contention, bounded by the number of competing goroutines.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm
// verification: it cannot observe happens-before relationships
// established through atomic memory orderings. Losing a CAS race means
// another goroutine already owns the slot whose link bytes were
// speculatively read, which the detector reports as a data race even
// though the loser discards the value. Concurrent stress tests are
// therefore gated on [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions.
package lfp
