// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nex

// Port is the process-wide (or explicitly-passed) state of one EtherCAT
// master port: the Frame Builder's own per-slot bookkeeping layered over
// a caller-supplied Transport that owns the transaction-index pool and
// the actual tx/rx buffers.
//
// A Port is safe for concurrent use by multiple goroutines provided its
// Transport is; the index pool inside Transport is the only contended
// resource (see GetIndex/SetBufStat).
type Port struct {
	transport Transport
	opts      Options

	// txLen[idx] is the current logical length of TxBuffer(idx); only
	// meaningful between GetIndex and the matching SetBufStat(EMPTY).
	txLen []int

	// hdrOff[idx] is the absolute offset of the most recently written
	// datagram sub-header for idx, used by AddDatagram to flip the
	// "more follows" bit of the previous datagram without having to
	// recompute it from txLen and payload lengths.
	hdrOff []int
}

// Open binds a Port to transport. transport must not be nil.
func Open(transport Transport, opts ...Option) (*Port, error) {
	if transport == nil {
		return nil, ErrInvalidArgument
	}
	o := DefaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	if o.SlotCount <= 0 {
		return nil, ErrInvalidArgument
	}
	return &Port{
		transport: transport,
		opts:      o,
		txLen:     make([]int, o.SlotCount),
		hdrOff:    make([]int, o.SlotCount),
	}, nil
}

// Transport returns the Transport this Port was opened with.
func (p *Port) Transport() Transport { return p.transport }

func (p *Port) slotBounds(idx uint8) error {
	if int(idx) >= len(p.txLen) {
		return ErrInvalidArgument
	}
	return nil
}
