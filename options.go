// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfp

// Options configures pool construction.
type Options struct {
	// Pad slot stride to this boundary (0 = element alignment only)
	slotAlign uintptr

	// Zero slot bytes before Alloc returns them
	zero bool
}

func (o *Options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// Option configures a pool at construction time.
type Option func(*Options)

// WithSlotAlign pads every slot to a multiple of align (a power of 2).
//
// WithSlotAlign(64) gives every slot its own cache line, so writes to
// one caller's object never invalidate a neighbor's line. The pool's
// base is always 64-byte aligned; this option extends the guarantee
// from the block to each individual slot, at the cost of padding.
//
//	// One order per cache line
//	pool := lfp.New[Order](1024, lfp.WithSlotAlign(64))
func WithSlotAlign(align uintptr) Option {
	return func(o *Options) { o.slotAlign = align }
}

// WithZero zeroes a slot's bytes before Alloc returns it.
//
// By default slots are dirty: Alloc hands back whatever the slot's
// previous occupant left behind, including free-list link bytes. Use
// WithZero when callers rely on zero-value initialization instead of
// constructing every field in place.
func WithZero() Option {
	return func(o *Options) { o.zero = true }
}

// pad is cache line padding to prevent false sharing.
type pad [cacheLine]byte
