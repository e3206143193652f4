// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package transport holds the external collaborators the base datagram
// layer depends on but does not implement itself: the transaction-index
// pool, the tx/rx buffer pair per slot, and the actual frame
// transmission. None of it implements datagram semantics — that belongs
// to the root package.
package transport

import (
	"encoding/binary"
	"errors"
)

// ErrNoFreeIndex reports that every transaction slot of a Transport
// implementation in this package is currently allocated.
var ErrNoFreeIndex = errors.New("transport: no free transaction index")

// These mirror the wire-format constants in the root package's wire.go.
// They are duplicated (not imported) because they describe what a real
// link-layer driver independently parses off the wire to demultiplex
// and sum working counters across a chained frame, not the root
// package's internal frame-building state.
const (
	firstDatagramOffset = 16
	datagramHeaderSize  = 10
	moreFollowsBit      = 0x8000
	datagramLenMask     = 0x07FF
)

// sumWorkingCounter walks every datagram chained in frame (following the
// "more follows" bit) and returns the sum of their WKC fields: the
// aggregated working counter a SendReceiveConfirm call reports back.
func sumWorkingCounter(frame []byte) int {
	off := firstDatagramOffset
	total := 0
	for off+datagramHeaderSize <= len(frame) {
		dlen := binary.LittleEndian.Uint16(frame[off+6 : off+8])
		length := int(dlen & datagramLenMask)
		wkcOff := off + datagramHeaderSize + length
		if wkcOff+2 > len(frame) {
			break
		}
		total += int(binary.LittleEndian.Uint16(frame[wkcOff : wkcOff+2]))
		if dlen&moreFollowsBit == 0 {
			break
		}
		off = wkcOff + 2
	}
	return total
}
