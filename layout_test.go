// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfp_test

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/lfp"
)

// =============================================================================
// Storage Layout Invariants
// =============================================================================

func TestSlotStride(t *testing.T) {
	tests := []struct {
		name  string
		size  uintptr
		align uintptr
		opts  []lfp.Option
		want  uintptr
	}{
		{"tiny grows to link size", 1, 1, nil, 8},
		{"aligned size untouched", 24, 8, nil, 24},
		{"size below link rounds up", 4, 4, nil, 8},
		{"unaligned size padded", 12, 8, nil, 16},
		{"small align promoted to link size", 20, 4, nil, 24},
		{"odd size keeps links aligned", 9, 1, nil, 16},
		{"slot align pads to line", 40, 8, []lfp.Option{lfp.WithSlotAlign(64)}, 64},
		{"slot align two lines", 72, 8, []lfp.Option{lfp.WithSlotAlign(64)}, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := lfp.NewPtr(tt.size, tt.align, 4, tt.opts...)
			assert.Equal(t, tt.want, pool.SlotSize())
		})
	}
}

func TestBaseCacheLineAligned(t *testing.T) {
	// The first pop of a fresh pool is slot 0, the block base.
	for _, size := range []uintptr{1, 8, 24, 100} {
		pool := lfp.NewPtr(size, 1, 4)
		p, err := pool.Local().Alloc()
		require.NoError(t, err)
		assert.Zerof(t, uintptr(p)%64, "base %p of pool(size=%d) not 64-byte aligned", p, size)
	}
}

func TestSlotAlignEverySlot(t *testing.T) {
	pool := lfp.NewPtr(24, 8, 16, lfp.WithSlotAlign(64))
	local := pool.Local()
	for i := range 16 {
		p, err := local.Alloc()
		require.NoError(t, err)
		assert.Zerof(t, uintptr(p)%64, "slot %d at %p crosses a cache line boundary", i, p)
	}
}

func TestElementAlignmentRespected(t *testing.T) {
	// 16-byte element alignment must hold for every slot, not just the base.
	pool := lfp.NewPtr(48, 16, 8)
	local := pool.Local()
	for range 8 {
		p, err := local.Alloc()
		require.NoError(t, err)
		assert.Zero(t, uintptr(p)%16)
	}
}

func TestOverAlignedElements(t *testing.T) {
	// Element alignment above the cache line must hold for the base and
	// every slot; the 64-byte block guarantee alone is not enough.
	pool := lfp.NewPtr(128, 128, 3)
	local := pool.Local()
	for i := range 3 {
		p, err := local.Alloc()
		require.NoError(t, err)
		assert.Zerof(t, uintptr(p)%128, "slot %d at %p not 128-byte aligned", i, p)
	}
}

func TestFreeLinksAligned(t *testing.T) {
	// The free-link overlay does 8-byte accesses at slot starts; odd
	// element sizes with loose alignment must not leave slot boundaries
	// unaligned.
	pool := lfp.NewPtr(9, 1, 4)
	require.EqualValues(t, 16, pool.SlotSize())
	local := pool.Local()
	for i := range 4 {
		p, err := local.Alloc()
		require.NoError(t, err)
		assert.Zerof(t, uintptr(p)%8, "slot %d at %p not link-aligned", i, p)
	}
}

// =============================================================================
// Allocation Scenarios
// =============================================================================

func TestScenarioFourSlots(t *testing.T) {
	pool := lfp.New[order](4)
	local := pool.Local()

	var got [4]*order
	seen := map[*order]bool{}
	for i := range got {
		o, err := local.Alloc()
		require.NoError(t, err)
		require.False(t, seen[o], "duplicate slot %p", o)
		seen[o] = true
		got[i] = o
	}

	_, err := local.Alloc()
	require.ErrorIs(t, err, lfp.ErrExhausted, "fifth allocation must report exhaustion")

	local.Free(got[0])
	local.Free(got[1])

	r1, err := local.Alloc()
	require.NoError(t, err)
	r2, err := local.Alloc()
	require.NoError(t, err)
	assert.Same(t, got[1], r1, "most recently freed slot is returned first")
	assert.Same(t, got[0], r2)
}

func TestConstructAndDropLarge(t *testing.T) {
	// Construct and immediately drop a large pool with zero
	// allocations performed; nothing to release explicitly, the block
	// goes with the pool.
	func() {
		pool := lfp.New[[128]byte](1000)
		require.Equal(t, 1000, pool.Cap())
	}()
	runtime.GC()
}

// =============================================================================
// Raw Flavor Round Trip
// =============================================================================

func TestRawStorageRoundTrip(t *testing.T) {
	type payload struct {
		a, b uint64
	}
	pool := lfp.NewPtr(unsafe.Sizeof(payload{}), unsafe.Alignof(payload{}), 2)
	local := pool.Local()

	p, err := local.Alloc()
	require.NoError(t, err)

	v := (*payload)(p)
	v.a, v.b = 0xDEAD, 0xBEEF

	q, err := local.Alloc()
	require.NoError(t, err)
	w := (*payload)(q)
	w.a, w.b = 1, 2

	assert.Equal(t, payload{0xDEAD, 0xBEEF}, *v, "neighbor writes must not bleed")
	local.Free(p)
	local.Free(q)
}
