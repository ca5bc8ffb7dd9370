// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfp

import "code.hybscloud.com/iox"

// ErrExhausted indicates that no free slot is available: the pool's
// capacity is fully handed out (or parked in other handles' caches).
//
// ErrExhausted is a control flow signal, not a failure. The caller
// should apply backpressure, fail the requesting operation, or retry
// after freeing — never treat it as a fault to propagate blindly.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    p, err := local.Alloc()
//	    if err == nil {
//	        backoff.Reset()
//	        return p
//	    }
//	    if lfp.IsExhausted(err) {
//	        backoff.Wait() // Wait for another worker to free
//	        continue
//	    }
//	    return nil // Unexpected error
//	}
var ErrExhausted = iox.ErrWouldBlock

// IsExhausted reports whether err indicates pool exhaustion.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsExhausted(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil and ErrExhausted.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
