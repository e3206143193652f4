// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nex

import "errors"

var (
	// ErrInvalidArgument reports a data slice shorter than the requested
	// payload length, a nil Transport, an out-of-range slot index or slot
	// count, or another caller-supplied argument that violates a
	// precondition. A payload length outside 0..1486 is ErrTooLong.
	ErrInvalidArgument = errors.New("nex: invalid argument")

	// ErrTooLong reports a payload length above the 1486-byte limit a
	// single datagram can carry inside a standard Ethernet frame.
	ErrTooLong = errors.New("nex: datagram payload too long")

	// ErrTimeout is the NO_FRAME sentinel: no frame matching the sent
	// transaction index arrived within the requested timeout, or the
	// transport rejected the frame on validation (index or EtherType
	// mismatch). The index has already been released by the time this
	// is returned.
	ErrTimeout = errors.New("nex: frame receive timed out")

	// ErrClosed names the closed-port condition. No function in this
	// package returns it: Port has no Close method, and a primitive
	// invoked on a Port whose Transport has been closed returns whatever
	// error that Transport reports.
	ErrClosed = errors.New("nex: port closed")
)
