// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package nex implements the base datagram layer of an EtherCAT master:
// in-place assembly of EtherCAT datagrams inside a pre-allocated frame
// buffer, the send-and-wait primitive that couples a transaction index to
// a transmit/receive buffer pair, and the addressing/command primitives
// (broadcast, auto-increment, configured-station, and logical addressing;
// read, write, read-write, and read-multiple-write) plus the compound
// logical-read-write-with-distributed-clock frame.
//
// Wire format (after the 14-byte Ethernet header, all multi-byte fields
// little-endian):
//
//	+2   EtherCAT header: low 11 bits = total datagram area length,
//	     bits 12-15 = type (always 1 for datagrams)
//	+10  datagram #1 sub-header: command, index, ADP, ADO, dlength, IRQ
//	+N   datagram #1 payload
//	+2   datagram #1 WKC (slave-incremented working counter)
//	 …   further datagrams if bit 15 of the preceding dlength is set
//
// The index pool, buffer-state tracker, and actual frame transmission are
// supplied by a Transport implementation and are not part of this
// package; see the Transport interface.
package nex
