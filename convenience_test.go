package nex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPort_UnsetReturnsError(t *testing.T) {
	defaultPortMu.Lock()
	saved := defaultPort
	defaultPort = nil
	defaultPortMu.Unlock()
	t.Cleanup(func() {
		defaultPortMu.Lock()
		defaultPort = saved
		defaultPortMu.Unlock()
	})

	_, err := BRD(0x0000, make([]byte, 2), 2000)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSetDefaultTransport_ForwardsCalls(t *testing.T) {
	mock := newMockTransport(8)
	mock.SetResponder(constantWKC(3))
	require.NoError(t, SetDefaultTransport(mock, WithSlotCount(8)))
	t.Cleanup(func() {
		defaultPortMu.Lock()
		defaultPort = nil
		defaultPortMu.Unlock()
	})

	wkc, err := BWR(0x0130, []byte{0x01, 0x02}, 2000)
	require.NoError(t, err)
	require.Equal(t, 3, wkc)

	wkc, err = BRD(0x0130, make([]byte, 2), 2000)
	require.NoError(t, err)
	require.Equal(t, 3, wkc)
}

func TestSetDefaultTransport_InvalidOptionsRejected(t *testing.T) {
	mock := newMockTransport(1)
	err := SetDefaultTransport(mock, WithSlotCount(0))
	require.ErrorIs(t, err, ErrInvalidArgument)
}
