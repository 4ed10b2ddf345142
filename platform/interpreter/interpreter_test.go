package interpreter

import (
	"testing"

	"github.com/gomlx/interpreter/platform"
	"github.com/gomlx/interpreter/status"
	"github.com/stretchr/testify/require"
)

func TestRegistered(t *testing.T) {
	for _, name := range []string{Name, ID, "INTERPRETER"} {
		p, err := platform.GetPlatform(name)
		require.NoErrorf(t, err, "Failed to get platform %q", name)
		require.Equal(t, Name, p.Name())
		require.Equal(t, 1, p.VisibleDeviceCount())
	}
}

func TestExecutorForDevice(t *testing.T) {
	p := New()
	executor, err := p.ExecutorForDevice(0)
	require.NoError(t, err)
	require.Equal(t, 0, executor.DeviceOrdinal())
	require.Same(t, p, executor.Platform())
	require.NoError(t, executor.SynchronizeAllActivity())

	// Same executor every time.
	again, err := p.ExecutorForDevice(0)
	require.NoError(t, err)
	require.Same(t, executor, again)

	_, err = p.ExecutorForDevice(1)
	require.Error(t, err)
	require.Equal(t, status.CodeInvalidArgument, status.CodeOf(err))
}
