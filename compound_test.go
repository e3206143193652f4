package nex

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLRWDC_Scenario4 exercises scenario 4: a two-datagram LRWDC frame
// (LRW process data + FRMW DC time read) where the mock fills in both
// the process-data payload and the DC reference slave's system time.
func TestLRWDC_Scenario4(t *testing.T) {
	port, mock := newTestPort(t, 8)

	const wantDCTime = int64(0x0102030405060708)
	wantProcessData := []byte{0xAB, 0xCD}

	mock.SetResponder(func(tx, rx []byte) (int, bool) {
		// Locate the LRW datagram's payload (first datagram) and the
		// FRMW datagram's payload (second, chained datagram). AddDatagram
		// writes the FRMW sub-header over the LRW datagram's WKC slot.
		lrwPayloadOff := datagramOffset + datagramHeaderSize
		copy(rx[lrwPayloadOff:lrwPayloadOff+len(wantProcessData)], wantProcessData)
		binary.LittleEndian.PutUint16(rx[lrwPayloadOff+len(wantProcessData):], 7) // LRW's own WKC = 7

		frmwHdrOff := lrwPayloadOff + len(wantProcessData)
		frmwPayloadOff := frmwHdrOff + datagramHeaderSize
		binary.LittleEndian.PutUint64(rx[frmwPayloadOff:], uint64(wantDCTime))

		return 11, false // aggregated wkc across both datagrams, discarded on success
	})

	data := make([]byte, 2)
	var dcTime int64
	wkc, err := port.LRWDC(0x1000, data, 0x0000, &dcTime, 2000)
	require.NoError(t, err)
	require.Equal(t, 7, wkc) // overridden with the LRW datagram's own wkc
	require.Equal(t, wantProcessData, data)
	require.Equal(t, wantDCTime, dcTime)
}

// TestLRWDC_CommandMismatch checks that a corrupted/misordered reply
// leaves data and dcTime untouched but still returns the transport's
// aggregated working counter.
func TestLRWDC_CommandMismatch(t *testing.T) {
	port, mock := newTestPort(t, 8)
	mock.SetResponder(func(tx, rx []byte) (int, bool) {
		rx[datagramOffset] = byte(CmdLRD) // not LRW: simulate mismatch
		return 9, false
	})

	data := []byte{0x11, 0x22}
	dcTime := int64(42)
	wkc, err := port.LRWDC(0x1000, data, 0x0000, &dcTime, 2000)
	require.NoError(t, err)
	require.Equal(t, 9, wkc)
	require.Equal(t, []byte{0x11, 0x22}, data)
	require.Equal(t, int64(42), dcTime)
}

// TestLRWDC_ZeroWKC checks that a zero aggregated working counter (no
// slave responded) skips both copy-backs.
func TestLRWDC_ZeroWKC(t *testing.T) {
	port, mock := newTestPort(t, 8)
	mock.SetResponder(func(tx, rx []byte) (int, bool) {
		return 0, false
	})

	data := []byte{0x11, 0x22}
	dcTime := int64(42)
	wkc, err := port.LRWDC(0x1000, data, 0x0000, &dcTime, 2000)
	require.NoError(t, err)
	require.Equal(t, 0, wkc)
	require.Equal(t, []byte{0x11, 0x22}, data)
	require.Equal(t, int64(42), dcTime)
}
