// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nex

// BufStat is the lifecycle state of a transaction slot's buffers.
type BufStat uint8

const (
	// StatEmpty: the slot holds no in-flight transaction.
	StatEmpty BufStat = iota
	// StatAlloc: a slot has been acquired and the Frame Builder is
	// writing into its tx buffer.
	StatAlloc
	// StatTX: the frame has been handed to the link layer.
	StatTX
	// StatRcvd: a reply frame has been received into the rx buffer.
	StatRcvd
	// StatComplete: the transaction's working counter has been
	// extracted; the slot is ready to be released.
	StatComplete
)

// Transport is the external collaborator that owns the transaction-index
// pool, the per-slot tx/rx buffers (with the 14-byte Ethernet header
// preset once at open time), and the actual link-layer send/receive.
//
// This package never allocates, frees, or inspects the pool itself: it
// acquires an index, writes into the buffer TxBuffer returns, calls
// SendReceiveConfirm, optionally reads RxBuffer, and releases the index
// via SetBufStat(idx, StatEmpty). Implementations must make GetIndex and
// SetBufStat safe for concurrent use by multiple callers sharing one
// Port.
type Transport interface {
	// GetIndex acquires a free transaction slot, transitioning it
	// EMPTY -> ALLOC, and returns its index.
	GetIndex() (idx uint8, err error)

	// SetBufStat records a buffer-state transition for idx. Callers of
	// this package always finish a transaction with
	// SetBufStat(idx, StatEmpty), returning the slot to the free pool.
	SetBufStat(idx uint8, state BufStat)

	// TxBuffer returns the transmit buffer for idx: at least
	// MaxFrameSize bytes, with a valid Ethernet header already present
	// in bytes 0..13. Only bytes at offset >= 14 may be written by the
	// Frame Builder.
	TxBuffer(idx uint8) []byte

	// RxBuffer returns the receive buffer for idx, populated by the
	// most recent successful SendReceiveConfirm.
	RxBuffer(idx uint8) []byte

	// SendReceiveConfirm transmits the first txLen bytes of
	// TxBuffer(idx), blocks until a reply frame addressed to idx
	// arrives or timeoutUS microseconds elapse, and returns the
	// aggregated working counter. It returns ErrTimeout if no frame
	// arrives in time; the caller still releases idx via SetBufStat in
	// either case.
	SendReceiveConfirm(idx uint8, txLen int, timeoutUS int) (wkc int, err error)
}
