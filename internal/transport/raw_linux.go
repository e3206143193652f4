//go:build linux

// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"encoding/binary"
	"errors"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"code.hybscloud.com/iox"

	"github.com/wjecat/nex"
)

// etherTypeEtherCAT is the IEEE 802.3 EtherType for EtherCAT frames.
const etherTypeEtherCAT = 0x88A4

// htons converts a host-order uint16 to network order, needed because
// AF_PACKET socket/bind calls take the EtherType in network byte order.
func htons(v uint16) uint16 {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return binary.LittleEndian.Uint16(b[:])
}

// Raw is the reference nex.Transport for Linux: one AF_PACKET raw
// socket bound to a single interface, demultiplexing replies by the
// transaction index in the first datagram of each received frame.
//
// The raw NIC driver is deliberately outside the base datagram layer
// itself; this is the one concrete, runnable implementation of the
// Transport contract the root package depends on but does not provide.
type Raw struct {
	fd int

	mu    sync.Mutex
	free  []uint8
	tx    [][]byte
	rx    [][]byte
	state []nex.BufStat
}

// OpenRaw binds a raw AF_PACKET socket to ifaceName and presets
// slotCount tx buffers with an Ethernet header carrying a broadcast
// destination, the interface's own MAC as source, and the EtherCAT
// EtherType — mirroring how Daedaluz-goserial's port_linux.go opens and
// configures a device file descriptor via ioctl before handing it to
// callers.
func OpenRaw(ifaceName string, slotCount int) (*Raw, error) {
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW|unix.SOCK_NONBLOCK, int(htons(etherTypeEtherCAT)))
	if err != nil {
		return nil, err
	}

	req := unix.NewIfreq(ifaceName)
	if err := unix.IoctlIfreq(fd, unix.SIOCGIFINDEX, req); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	ifIndex := req.Uint32()

	reqHW := unix.NewIfreq(ifaceName)
	if err := unix.IoctlIfreq(fd, unix.SIOCGIFHWADDR, reqHW); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	srcMAC := reqHW.HardwareAddr()

	sll := unix.SockaddrLinklayer{
		Protocol: htons(etherTypeEtherCAT),
		Ifindex:  int(ifIndex),
	}
	if err := unix.Bind(fd, &sll); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	r := &Raw{
		fd:    fd,
		free:  make([]uint8, 0, slotCount),
		tx:    make([][]byte, slotCount),
		rx:    make([][]byte, slotCount),
		state: make([]nex.BufStat, slotCount),
	}
	for i := 0; i < slotCount; i++ {
		r.tx[i] = make([]byte, nex.MaxFrameSize)
		r.rx[i] = make([]byte, nex.MaxFrameSize)
		for j := 0; j < 6; j++ {
			r.tx[i][j] = 0xff // broadcast destination
		}
		copy(r.tx[i][6:12], srcMAC)
		binary.BigEndian.PutUint16(r.tx[i][12:14], etherTypeEtherCAT)
		r.free = append(r.free, uint8(slotCount-1-i))
	}
	return r, nil
}

// Close releases the underlying socket.
func (r *Raw) Close() error { return unix.Close(r.fd) }

func (r *Raw) GetIndex() (uint8, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.free) == 0 {
		return 0, ErrNoFreeIndex
	}
	idx := r.free[len(r.free)-1]
	r.free = r.free[:len(r.free)-1]
	r.state[idx] = nex.StatAlloc
	return idx, nil
}

func (r *Raw) SetBufStat(idx uint8, state nex.BufStat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[idx] = state
	if state == nex.StatEmpty {
		r.free = append(r.free, idx)
	}
}

func (r *Raw) TxBuffer(idx uint8) []byte { return r.tx[idx] }
func (r *Raw) RxBuffer(idx uint8) []byte { return r.rx[idx] }

// SendReceiveConfirm writes idx's frame to the wire and polls the
// socket non-blockingly until a frame whose transaction index matches
// idx arrives or timeoutUS elapses. unix.EAGAIN is treated the same way
// framer.framer.readOnce treats iox.ErrWouldBlock: yield and retry
// rather than propagate, since the socket is deliberately non-blocking
// so a slow reply on one slot can't stall callers using other slots.
func (r *Raw) SendReceiveConfirm(idx uint8, txLen int, timeoutUS int) (int, error) {
	r.mu.Lock()
	r.state[idx] = nex.StatTX
	r.mu.Unlock()

	if _, err := unix.Write(r.fd, r.tx[idx][:txLen]); err != nil {
		return 0, err
	}

	deadline := time.Now().Add(time.Duration(timeoutUS) * time.Microsecond)
	buf := r.rx[idx]
	for {
		n, err := recvNonblock(r.fd, buf)
		if errors.Is(err, iox.ErrWouldBlock) || (err == nil && n < nex.FirstDatagramIndexOffset+1) || (err == nil && buf[nex.FirstDatagramIndexOffset] != idx) {
			// Nothing usable yet: an empty socket, a short/foreign
			// frame, or another transaction's reply racing onto this
			// read. Yield and retry within the timeout budget, the
			// same control-flow framer.framer.readOnce uses around
			// iox.ErrWouldBlock.
			if time.Now().After(deadline) {
				return 0, nex.ErrTimeout
			}
			runtime.Gosched()
			continue
		}
		if err != nil {
			return 0, err
		}

		r.mu.Lock()
		r.state[idx] = nex.StatComplete
		r.mu.Unlock()
		return sumWorkingCounter(buf[:n]), nil
	}
}

// recvNonblock wraps unix.Recvfrom, translating EAGAIN/EWOULDBLOCK into
// iox.ErrWouldBlock so the retry loop above shares its control-flow
// sentinel with the rest of this codebase's non-blocking I/O.
func recvNonblock(fd int, buf []byte) (int, error) {
	n, _, err := unix.Recvfrom(fd, buf, 0)
	if errors.Is(err, unix.EAGAIN) {
		return 0, iox.ErrWouldBlock
	}
	return n, err
}
