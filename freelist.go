// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfp

import (
	"code.hybscloud.com/spin"
)

// popGlobal removes one slot from the global free list, the only
// synchronization point between goroutines. Returns noSlot when the
// list is empty.
//
// Lock-free stack pop: load the head with acquire, read its link, and
// compare-and-swap the head to the link with acquire-release ordering.
// A failed swap means another goroutine raced ahead; retry by
// reloading. The loop is bounded by the number of concurrently
// competing goroutines, since every failure corresponds to another
// goroutine's successful pop.
//
// Reading the link of an observed head is safe here: links are written
// only by the single-threaded chain build, which happens before any
// pop via the release store of the head at construction. For the same
// reason the classic ABA hazard of CAS stacks cannot arise — slots are
// never pushed back onto the global list after initialization, so an
// observed head is either still first or gone for good.
func (p *PoolPtr) popGlobal() uint64 {
	sw := spin.Wait{}
	for {
		head := p.free.LoadAcquire()
		if head == noSlot {
			return noSlot
		}
		next := p.arena.next(head)
		if p.free.CompareAndSwapAcqRel(head, next) {
			return head
		}
		sw.Once()
	}
}
