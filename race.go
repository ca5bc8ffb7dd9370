// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package lfp

// RaceEnabled is true when the race detector is active.
//
// Race-enabled builds double as debug builds: Free validates that its
// argument is a slot boundary inside the pool's block and panics on a
// foreign pointer. Production builds skip the check entirely, trading
// misuse detection for allocation-path speed.
//
// Tests also consult RaceEnabled to skip concurrent stress runs, which
// trigger false positives because the detector cannot track the
// happens-before edges established by atomic memory orderings.
const RaceEnabled = true
