// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nex

import "encoding/binary"

// Command is the 1-byte EtherCAT datagram command code.
type Command uint8

// Command codes, values fixed by the EtherCAT standard.
const (
	CmdNOP  Command = 0
	CmdAPRD Command = 1
	CmdAPWR Command = 2
	CmdAPRW Command = 3
	CmdFPRD Command = 4
	CmdFPWR Command = 5
	CmdFPRW Command = 6
	CmdBRD  Command = 7
	CmdBWR  Command = 8
	CmdBRW  Command = 9
	CmdLRD  Command = 10
	CmdLWR  Command = 11
	CmdLRW  Command = 12
	CmdARMW Command = 13
	CmdFRMW Command = 14
)

// readCommand reports whether a datagram of this command must have its
// payload zero-filled on transmit rather than populated from caller data.
func (c Command) readCommand() bool {
	switch c {
	case CmdNOP, CmdAPRD, CmdFPRD, CmdBRD, CmdLRD:
		return true
	default:
		return false
	}
}

// ECTRegDCSystime is the reference slave's system-time register, read by
// FRMW in the LRWDC compound frame.
const ECTRegDCSystime = 0x0910

// NexTimeoutRet is the recommended per-primitive timeout, in microseconds.
const NexTimeoutRet = 2000

const (
	// ethernetHeaderLen is the size of the Ethernet header (dst MAC,
	// src MAC, EtherType) preset once at port open; this package never
	// writes to it.
	ethernetHeaderLen = 14

	// datagramHeaderSize is the size of one datagram sub-header:
	// command, index, ADP, ADO, dlength, IRQ.
	datagramHeaderSize = 10

	// wkcSize is the size of the working-counter field following each
	// datagram's payload.
	wkcSize = 2

	// ecatHeaderLen is the size of the EtherCAT type/length header that
	// immediately follows the Ethernet header.
	ecatHeaderLen = 2

	// ecatHeaderType occupies bits 12-15 of the EtherCAT header; it is
	// always 1 for a frame carrying datagrams.
	ecatHeaderType = 0x1000

	// ecatHeaderLenMask isolates the low 11 bits carrying the total
	// datagram-area length.
	ecatHeaderLenMask = 0x07FF

	// datagramMoreFollows is bit 15 of the dlength field.
	datagramMoreFollows = 0x8000

	// datagramLenMask isolates the low 11 bits of dlength carrying the
	// payload length.
	datagramLenMask = 0x07FF

	// MaxFrameSize is the size of txbuf/rxbuf: large enough for any
	// standard (non-jumbo) Ethernet frame.
	MaxFrameSize = 1518

	// MaxDatagramPayload is the largest payload a single datagram may
	// carry. It is fixed at 1486 rather than derived from MaxFrameSize:
	// a single setup-datagram frame at this length
	// (14+2+10+1486+2 = 1514 bytes) leaves 4 bytes of MaxFrameSize
	// unused, which is too little for a chained datagram: AddDatagram
	// rejects one on such a frame with ErrInvalidArgument.
	MaxDatagramPayload = 1486
)

// datagramOffset is the absolute byte offset of the first datagram
// sub-header in a frame buffer.
const datagramOffset = ethernetHeaderLen + ecatHeaderLen

// FirstDatagramCommandOffset and FirstDatagramIndexOffset are the
// absolute byte offsets of the first datagram's command and index
// fields. A Transport implementation demultiplexing reply frames by
// transaction index (and validating the command) reads these two
// bytes; they are exported for that purpose even though the rest of
// the sub-header layout stays internal to this package.
const (
	FirstDatagramCommandOffset = datagramOffset
	FirstDatagramIndexOffset   = datagramOffset + 1
)

// putEcatHeader writes the EtherCAT type/length header at offset 14,
// little-endian, with the type nibble OR'd in.
func putEcatHeader(tx []byte, totalLen int) {
	binary.LittleEndian.PutUint16(tx[ethernetHeaderLen:datagramOffset], ecatHeaderType|uint16(totalLen&ecatHeaderLenMask))
}

// ecatHeaderLength reads back the low-11-bit length field of the
// EtherCAT type/length header.
func ecatHeaderLength(tx []byte) int {
	return int(binary.LittleEndian.Uint16(tx[ethernetHeaderLen:datagramOffset]) & ecatHeaderLenMask)
}

// putDatagramHeader writes a 10-byte datagram sub-header at off.
func putDatagramHeader(tx []byte, off int, cmd Command, idx uint8, adp, ado uint16, length int, more bool) {
	tx[off] = byte(cmd)
	tx[off+1] = idx
	binary.LittleEndian.PutUint16(tx[off+2:off+4], adp)
	binary.LittleEndian.PutUint16(tx[off+4:off+6], ado)
	dlen := uint16(length) & datagramLenMask
	if more {
		dlen |= datagramMoreFollows
	}
	binary.LittleEndian.PutUint16(tx[off+6:off+8], dlen)
	// IRQ: zero-initialized on every transmitted datagram, chained or not.
	tx[off+8] = 0
	tx[off+9] = 0
}

// setMoreFollows sets bit 15 of the dlength field belonging to the
// datagram sub-header at off.
func setMoreFollows(tx []byte, off int) {
	dlen := binary.LittleEndian.Uint16(tx[off+6 : off+8])
	binary.LittleEndian.PutUint16(tx[off+6:off+8], dlen|datagramMoreFollows)
}

// datagramCommand reads the command byte of the sub-header at off.
func datagramCommand(buf []byte, off int) Command {
	return Command(buf[off])
}

// writeWKCPlaceholder zero-fills the 2-byte WKC field at off.
func writeWKCPlaceholder(tx []byte, off int) {
	tx[off] = 0
	tx[off+1] = 0
}

func readWKC(buf []byte, off int) int {
	return int(binary.LittleEndian.Uint16(buf[off : off+2]))
}

// lo16/hi16 split a 32-bit logical address into its ADP (low) and ADO
// (high) halves for LRD/LWR/LRW addressing.
func lo16(logAddr uint32) uint16 { return uint16(logAddr) }
func hi16(logAddr uint32) uint16 { return uint16(logAddr >> 16) }

// negPosition converts an auto-increment slave position into the
// two's-complement ADP value the wire format expects (ADP is decremented
// at each slave; position 0 reaches ADP==0 first).
func negPosition(position uint16) uint16 { return -position }
