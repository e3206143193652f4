// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nex

import "encoding/binary"

// LRWDC combines a logical read-write (process-data exchange) with a
// configured-station read-multiple-write of the reference slave's
// system-time register into a single two-datagram frame, so process
// data and distributed-clock synchronization share one round-trip.
//
// On success (wkc > 0 and the reply's first datagram still carries the
// LRW command), data holds the process-data response payload, dcTime
// holds the reference slave's system time, and the returned wkc is the
// LRW datagram's own working counter — not the sum across both
// datagrams, since callers expect the process-data slave count, not
// that count plus the DC read. If the reply's first datagram does not
// carry LRW (logical-command mismatch), data and dcTime are left
// untouched and the aggregated working counter from the transport is
// returned unchanged.
func (p *Port) LRWDC(logAddr uint32, data []byte, dcRefStation uint16, dcTime *int64, timeoutUS int) (wkc int, err error) {
	idx, release, err := p.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	if err := p.SetupDatagram(idx, CmdLRW, lo16(logAddr), hi16(logAddr), len(data), data); err != nil {
		return 0, err
	}

	var dcTxTime [8]byte
	binary.LittleEndian.PutUint64(dcTxTime[:], uint64(*dcTime))
	// The reference implementation passes sizeof(pointer) here on some
	// hosts; the wire field is always 8 bytes regardless of host
	// pointer width.
	dcOff, err := p.AddDatagram(idx, CmdFRMW, false, dcRefStation, ECTRegDCSystime, 8, dcTxTime[:])
	if err != nil {
		return 0, err
	}

	wkc, err = p.transport.SendReceiveConfirm(idx, p.txLen[idx], timeoutUS)
	if err != nil {
		return 0, err
	}
	if wkc <= 0 {
		return wkc, nil
	}

	rx := p.transport.RxBuffer(idx)
	if datagramCommand(rx, datagramOffset) != CmdLRW {
		return wkc, nil
	}

	lrwPayloadOff := datagramOffset + datagramHeaderSize
	copy(data, rx[lrwPayloadOff:lrwPayloadOff+len(data)])
	// Override the aggregated working counter with just the LRW
	// datagram's own WKC: the caller expects the process-data slave
	// count, not that count plus the DC read's.
	wkc = readWKC(rx, lrwPayloadOff+len(data))

	dcAbsOff := ethernetHeaderLen + dcOff
	*dcTime = int64(binary.LittleEndian.Uint64(rx[dcAbsOff : dcAbsOff+8]))

	return wkc, nil
}
