// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nex

// SetupDatagram initializes idx's tx buffer with exactly one datagram:
// the EtherCAT type/length header at offset 14, the 10-byte sub-header
// at offset 16, a payload (zero-filled for read commands, copied from
// data otherwise), and a zeroed 2-byte WKC placeholder. It sets the
// Port's own record of the frame's logical length for idx.
//
// frame must already carry a valid 14-byte Ethernet header in bytes
// 0..13 (the Transport's responsibility); length must be <=
// MaxDatagramPayload.
func (p *Port) SetupDatagram(idx uint8, cmd Command, adp, ado uint16, length int, data []byte) error {
	if err := p.slotBounds(idx); err != nil {
		return err
	}
	if length < 0 || length > MaxDatagramPayload {
		return ErrTooLong
	}
	if !cmd.readCommand() && length > 0 && len(data) < length {
		return ErrInvalidArgument
	}

	tx := p.transport.TxBuffer(idx)
	if len(tx) < datagramOffset+datagramHeaderSize+length+wkcSize {
		return ErrInvalidArgument
	}

	putEcatHeader(tx, datagramHeaderSize+length)
	putDatagramHeader(tx, datagramOffset, cmd, idx, adp, ado, length, false)

	payloadOff := datagramOffset + datagramHeaderSize
	if cmd.readCommand() {
		clear(tx[payloadOff : payloadOff+length])
	} else {
		copy(tx[payloadOff:payloadOff+length], data[:length])
	}
	writeWKCPlaceholder(tx, payloadOff+length)

	p.txLen[idx] = datagramOffset + datagramHeaderSize + length + wkcSize
	p.hdrOff[idx] = datagramOffset
	return nil
}

// AddDatagram appends a further datagram to a frame previously
// initialized by SetupDatagram (or a prior AddDatagram) on the same idx.
// It sets the "more follows" bit of the immediately preceding datagram,
// overlays the new sub-header on top of the preceding datagram's WKC
// field, writes the new payload and a fresh WKC placeholder, and
// updates the Port's record of idx's frame length.
//
// It returns the byte offset, relative to a view of the receive frame
// that starts right after the 14-byte Ethernet header, at which this
// datagram's response payload will be found once the frame round-trips.
func (p *Port) AddDatagram(idx uint8, cmd Command, more bool, adp, ado uint16, length int, data []byte) (rxOffset int, err error) {
	if err := p.slotBounds(idx); err != nil {
		return 0, err
	}
	if length < 0 || length > MaxDatagramPayload {
		return 0, ErrTooLong
	}
	if !cmd.readCommand() && length > 0 && len(data) < length {
		return 0, ErrInvalidArgument
	}

	tx := p.transport.TxBuffer(idx)
	prev := p.txLen[idx]
	newHdrOff := prev - wkcSize
	if newHdrOff < datagramOffset || len(tx) < newHdrOff+datagramHeaderSize+length+wkcSize {
		return 0, ErrInvalidArgument
	}

	totalLen := ecatHeaderLength(tx) + datagramHeaderSize + length
	putEcatHeader(tx, totalLen)

	setMoreFollows(tx, p.hdrOff[idx])

	putDatagramHeader(tx, newHdrOff, cmd, idx, adp, ado, length, more)

	payloadOff := newHdrOff + datagramHeaderSize
	if cmd.readCommand() {
		clear(tx[payloadOff : payloadOff+length])
	} else {
		copy(tx[payloadOff:payloadOff+length], data[:length])
	}
	writeWKCPlaceholder(tx, payloadOff+length)

	p.txLen[idx] = newHdrOff + datagramHeaderSize + length + wkcSize
	p.hdrOff[idx] = newHdrOff

	return prev + datagramHeaderSize - wkcSize - ethernetHeaderLen, nil
}
