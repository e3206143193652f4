package nex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wjecat/nex/internal/bo"
)

// TestBRD_BroadcastReadBack is scenario 1: BRD(0, 0x0130, 2, &out, 2000)
// against a mock reporting 3 slaves and payload {0x08, 0x00}.
func TestBRD_BroadcastReadBack(t *testing.T) {
	port, mock := newTestPort(t, 8)
	mock.SetResponder(func(tx, rx []byte) (int, bool) {
		rx[26], rx[27] = 0x08, 0x00
		return 3, false
	})

	var out [2]byte
	wkc, err := port.BRD(0x0130, out[:], 2000)
	require.NoError(t, err)
	require.Equal(t, 3, wkc)
	require.Equal(t, [2]byte{0x08, 0x00}, out)
}

// TestAPRDw_WordReadback is scenario 2: a slave at position 0 returns
// word 0x1234 (wire bytes 0x34, 0x12); APRDw reinterprets those two
// raw bytes in the host's native order.
func TestAPRDw_WordReadback(t *testing.T) {
	port, mock := newTestPort(t, 8)
	mock.SetResponder(func(tx, rx []byte) (int, bool) {
		rx[26], rx[27] = 0x34, 0x12
		return 1, false
	})

	wkc, value, err := port.APRDw(0, 0x0000, 2000)
	require.NoError(t, err)
	require.Equal(t, 1, wkc)
	require.Equal(t, bo.Native().Uint16([]byte{0x34, 0x12}), value)
}

// TestBWR_NoReadback confirms write-class primitives never touch the
// caller's data slice even when the mock mutates its echoed payload.
func TestBWR_NoReadback(t *testing.T) {
	port, mock := newTestPort(t, 8)
	mock.SetResponder(func(tx, rx []byte) (int, bool) {
		rx[26], rx[27] = 0xFF, 0xFF
		return 5, false
	})

	data := []byte{0x01, 0x02}
	orig := append([]byte(nil), data...)
	wkc, err := port.BWR(0x0130, data, 2000)
	require.NoError(t, err)
	require.Equal(t, 5, wkc)
	require.Equal(t, orig, data)
}

// TestAPRD_AutoIncrementAddressing checks the ADP field carries the
// two's-complement negated position, per auto-increment addressing.
func TestAPRD_AutoIncrementAddressing(t *testing.T) {
	port, mock := newTestPort(t, 8)
	var sentADP uint16
	mock.SetResponder(func(tx, rx []byte) (int, bool) {
		sentADP = uint16(tx[18]) | uint16(tx[19])<<8
		return 1, false
	})
	_, err := port.APRD(3, 0x0000, make([]byte, 2), 2000)
	require.NoError(t, err)
	require.Equal(t, negPosition(3), sentADP)
}

// TestTimeout is scenario 6: a mock transport that never responds
// causes the primitive to return ErrTimeout, and the slot is released.
func TestTimeout(t *testing.T) {
	port, mock := newTestPort(t, 8)
	mock.SetResponder(neverResponds())

	wkc, err := port.FPRD(0x1001, 0x0000, make([]byte, 2), 2000)
	require.ErrorIs(t, err, ErrTimeout)
	require.Equal(t, 0, wkc)

	// P6: bufstat is EMPTY after the primitive returns, for every slot
	// this port's pool knows about.
	for idx := uint8(0); idx < 8; idx++ {
		require.Equal(t, StatEmpty, mock.State(idx))
	}
}

// TestRoundTrip_P5 builds a frame via BRD, APRD and FPRD and
// confirms the echoed working counter and payload propagate correctly,
// and that every slot ends up StatEmpty (P6).
func TestRoundTrip_P5(t *testing.T) {
	port, mock := newTestPort(t, 8)
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	mock.SetResponder(func(tx, rx []byte) (int, bool) {
		copy(rx[26:26+len(want)], want)
		return 3, false
	})

	cases := []func() (int, error){
		func() (int, error) {
			out := make([]byte, len(want))
			wkc, err := port.BRD(0x0000, out, 2000)
			if err == nil {
				require.Equal(t, want, out)
			}
			return wkc, err
		},
		func() (int, error) {
			out := make([]byte, len(want))
			wkc, err := port.APRD(0, 0x0000, out, 2000)
			if err == nil {
				require.Equal(t, want, out)
			}
			return wkc, err
		},
		func() (int, error) {
			out := make([]byte, len(want))
			wkc, err := port.FPRD(0x1000, 0x0000, out, 2000)
			if err == nil {
				require.Equal(t, want, out)
			}
			return wkc, err
		},
	}
	for _, fn := range cases {
		wkc, err := fn()
		require.NoError(t, err)
		require.Equal(t, 3, wkc)
	}

	for idx := uint8(0); idx < 8; idx++ {
		require.Equal(t, StatEmpty, mock.State(idx))
	}
}

// TestLRD_ReplyCommandMismatch checks that when the reply's command
// field does not match the sent command, the read-back copy is skipped
// but wkc is still returned.
func TestLRD_ReplyCommandMismatch(t *testing.T) {
	port, mock := newTestPort(t, 8)
	mock.SetResponder(func(tx, rx []byte) (int, bool) {
		rx[datagramOffset] = byte(CmdLWR) // corrupt/misordered reply
		rx[26], rx[27] = 0xFF, 0xFF
		return 2, false
	})

	data := []byte{0x11, 0x22}
	wkc, err := port.LRD(0x1000, data, 2000)
	require.NoError(t, err)
	require.Equal(t, 2, wkc)
	require.Equal(t, []byte{0x11, 0x22}, data) // untouched
}

// TestLRW_ReplyCommandMatch checks the happy path of the same check.
func TestLRW_ReplyCommandMatch(t *testing.T) {
	port, mock := newTestPort(t, 8)
	mock.SetResponder(func(tx, rx []byte) (int, bool) {
		rx[26], rx[27] = 0xAA, 0xBB
		return 4, false
	})

	data := []byte{0x00, 0x00}
	wkc, err := port.LRW(0x1000, data, 2000)
	require.NoError(t, err)
	require.Equal(t, 4, wkc)
	require.Equal(t, []byte{0xAA, 0xBB}, data)
}
