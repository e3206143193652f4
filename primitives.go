// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nex

import "github.com/wjecat/nex/internal/bo"

// acquire obtains a transaction slot and returns a release func the
// caller must defer immediately; it always transitions the slot back to
// StatEmpty, matching invariant 1's EMPTY -> ALLOC -> ... -> EMPTY cycle
// regardless of how the primitive exits.
func (p *Port) acquire() (idx uint8, release func(), err error) {
	idx, err = p.transport.GetIndex()
	if err != nil {
		return 0, func() {}, err
	}
	return idx, func() { p.transport.SetBufStat(idx, StatEmpty) }, nil
}

// simple runs the shared skeleton for every non-logical-addressed
// primitive: acquire an index, build one datagram, send and wait, copy
// the response payload back into data when readBack is true and the
// transaction produced a nonzero working counter, release the index.
func (p *Port) simple(cmd Command, adp, ado uint16, data []byte, timeoutUS int, readBack bool) (wkc int, err error) {
	idx, release, err := p.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	if err := p.SetupDatagram(idx, cmd, adp, ado, len(data), data); err != nil {
		return 0, err
	}
	wkc, err = p.transport.SendReceiveConfirm(idx, p.txLen[idx], timeoutUS)
	if err != nil {
		return 0, err
	}
	if readBack && wkc > 0 {
		rx := p.transport.RxBuffer(idx)
		off := datagramOffset + datagramHeaderSize
		copy(data, rx[off:off+len(data)])
	}
	return wkc, nil
}

// BWR is a broadcast write: every slave on the network processes it, no
// response payload is read back.
func (p *Port) BWR(ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	return p.simple(CmdBWR, 0, ado, data, timeoutUS, false)
}

// BRD is a broadcast read: every slave ORs its register value into the
// shared response payload.
func (p *Port) BRD(ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	return p.simple(CmdBRD, 0, ado, data, timeoutUS, true)
}

// APRD reads from the slave reached after decrementing ADP position
// times (auto-increment addressing).
func (p *Port) APRD(position uint16, ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	return p.simple(CmdAPRD, negPosition(position), ado, data, timeoutUS, true)
}

// APRDw is the word-sized APRD variant. It returns the 2 response bytes
// reinterpreted in the host's native byte order, not converted from the
// little-endian wire order: the wire payload is opaque register
// content, and only the caller knows whether to treat it as a
// little-endian word.
func (p *Port) APRDw(position uint16, ado uint16, timeoutUS int) (wkc int, value uint16, err error) {
	var buf [2]byte
	wkc, err = p.APRD(position, ado, buf[:], timeoutUS)
	value = bo.Native().Uint16(buf[:])
	return wkc, value, err
}

// APWR writes to the slave reached after decrementing ADP position
// times.
func (p *Port) APWR(position uint16, ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	return p.simple(CmdAPWR, negPosition(position), ado, data, timeoutUS, false)
}

// APWRw is the word-sized APWR variant.
func (p *Port) APWRw(position uint16, ado uint16, value uint16, timeoutUS int) (wkc int, err error) {
	var buf [2]byte
	bo.Native().PutUint16(buf[:], value)
	return p.APWR(position, ado, buf[:], timeoutUS)
}

// FPRD reads from the slave configured with the given station address.
func (p *Port) FPRD(station uint16, ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	return p.simple(CmdFPRD, station, ado, data, timeoutUS, true)
}

// FPRDw is the word-sized FPRD variant.
func (p *Port) FPRDw(station uint16, ado uint16, timeoutUS int) (wkc int, value uint16, err error) {
	var buf [2]byte
	wkc, err = p.FPRD(station, ado, buf[:], timeoutUS)
	value = bo.Native().Uint16(buf[:])
	return wkc, value, err
}

// FPWR writes to the slave configured with the given station address.
func (p *Port) FPWR(station uint16, ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	return p.simple(CmdFPWR, station, ado, data, timeoutUS, false)
}

// FPWRw is the word-sized FPWR variant.
func (p *Port) FPWRw(station uint16, ado uint16, value uint16, timeoutUS int) (wkc int, err error) {
	var buf [2]byte
	bo.Native().PutUint16(buf[:], value)
	return p.FPWR(station, ado, buf[:], timeoutUS)
}

// ARMW is an auto-increment read-multiple-write: it reads the addressed
// register before every slave along the chain ORs its own write into
// it, returning the pre-write value read from the first slave reached.
func (p *Port) ARMW(position uint16, ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	return p.simple(CmdARMW, negPosition(position), ado, data, timeoutUS, true)
}

// FRMW is the configured-station counterpart of ARMW, used to read the
// reference slave's system-time register during distributed-clock
// synchronization.
func (p *Port) FRMW(station uint16, ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	return p.simple(CmdFRMW, station, ado, data, timeoutUS, true)
}

// logicalReadBack copies the response payload of idx's datagram into
// data, but only when the reply's command field still matches cmd.
// Logical addressing shares its transaction slot with whatever else may
// have been chained into the same frame; this guards against copying
// data from a misordered or partially corrupted reply. If the command
// does not match, wkc is still the value to return to the caller — only
// the copy is skipped, per the logical-command-mismatch handling in the
// error taxonomy.
func (p *Port) logicalReadBack(idx uint8, cmd Command, data []byte, wkc int) {
	if wkc <= 0 {
		return
	}
	rx := p.transport.RxBuffer(idx)
	if datagramCommand(rx, datagramOffset) != cmd {
		return
	}
	off := datagramOffset + datagramHeaderSize
	copy(data, rx[off:off+len(data)])
}

// LRD reads process data mapped at a 32-bit logical address via each
// slave's FMMU.
func (p *Port) LRD(logAddr uint32, data []byte, timeoutUS int) (wkc int, err error) {
	idx, release, err := p.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	if err := p.SetupDatagram(idx, CmdLRD, lo16(logAddr), hi16(logAddr), len(data), data); err != nil {
		return 0, err
	}
	wkc, err = p.transport.SendReceiveConfirm(idx, p.txLen[idx], timeoutUS)
	if err != nil {
		return 0, err
	}
	p.logicalReadBack(idx, CmdLRD, data, wkc)
	return wkc, nil
}

// LWR writes process data mapped at a 32-bit logical address.
func (p *Port) LWR(logAddr uint32, data []byte, timeoutUS int) (wkc int, err error) {
	idx, release, err := p.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	if err := p.SetupDatagram(idx, CmdLWR, lo16(logAddr), hi16(logAddr), len(data), data); err != nil {
		return 0, err
	}
	return p.transport.SendReceiveConfirm(idx, p.txLen[idx], timeoutUS)
}

// LRW reads and writes process data mapped at a 32-bit logical address
// in a single round-trip: slaves configured to source data into the
// frame fill it in as it passes, slaves configured to sink data consume
// it, both against the same payload buffer.
func (p *Port) LRW(logAddr uint32, data []byte, timeoutUS int) (wkc int, err error) {
	idx, release, err := p.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	if err := p.SetupDatagram(idx, CmdLRW, lo16(logAddr), hi16(logAddr), len(data), data); err != nil {
		return 0, err
	}
	wkc, err = p.transport.SendReceiveConfirm(idx, p.txLen[idx], timeoutUS)
	if err != nil {
		return 0, err
	}
	p.logicalReadBack(idx, CmdLRW, data, wkc)
	return wkc, nil
}
