package interpreter

import (
	"context"
	"testing"

	"github.com/gomlx/interpreter/devicestate"
	"github.com/gomlx/interpreter/pjrt"
	"github.com/gomlx/interpreter/platform"
	"github.com/gomlx/interpreter/status"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestGetClient(t *testing.T) {
	client := getClient(t)
	require.Equal(t, "interpreter", client.Platform())
	require.Equal(t, 0, client.ProcessIndex())
	require.Nil(t, client.Allocator())
	require.Nil(t, client.HostMemoryAllocator())
	require.False(t, client.ShouldStageHostToDeviceTransfers())
	require.Equal(t, `Client[platform="interpreter", single-process]`, client.String())

	devices := client.Devices()
	require.Len(t, devices, 1)
	device := devices[0]
	require.Equal(t, 0, device.ID())
	require.Equal(t, "interpreter", device.Kind())
	require.Equal(t, 0, device.LocalHardwareID())
	require.True(t, device.IsAddressable())
	require.Same(t, client, device.Client())
	require.Equal(t, devices, client.AddressableDevices())
	require.Equal(t, 0, client.NumForDevice(device))

	memorySpaces := client.MemorySpaces()
	require.Len(t, memorySpaces, 1)
	memorySpace := memorySpaces[0]
	require.Equal(t, 0, memorySpace.ID())
	require.Equal(t, Kind, memorySpace.Kind())
	require.Equal(t, KindID(), memorySpace.KindID())
	require.Same(t, device, memorySpace.Device())

	// Default memory space.
	require.Equal(t, memorySpaces, device.MemorySpaces())
	defaultMemorySpace := capture(device.DefaultMemorySpace()).Test(t)
	require.Same(t, memorySpace, defaultMemorySpace)

	// Device state: synchronous, one computation at a time.
	state := device.LocalDeviceState()
	require.Equal(t, devicestate.Synchronous, state.AllocationModel())
	require.Equal(t, 1, state.MaxInflightComputations())
	require.False(t, state.AllowEventReuse())
	require.False(t, state.UseCallbackStream())
	require.Same(t, client.LocalClient(), state.Client())
	release := capture(state.AcquireComputeSlot(context.Background())).Test(t)
	require.Equal(t, 1, state.InFlight())
	release()
}

func TestGetClient_SharedLocalClient(t *testing.T) {
	// Default collaborators.
	client0 := getClient(t)
	client1 := getClient(t)
	require.NotSame(t, client0, client1)
	require.Same(t, client0.LocalClient(), client1.LocalClient())
	require.NotSame(t, client0.Devices()[0], client1.Devices()[0])
	require.NotSame(t, client0.MemorySpaces()[0], client1.MemorySpaces()[0])

	// Instrumented collaborators.
	b, _, resolver, factory := newTestBootstrapper(1)
	c0 := capture(b.GetClient()).Test(t)
	c1 := capture(b.GetClient()).Test(t)
	require.NotSame(t, c0, c1)
	require.Same(t, c0.LocalClient(), c1.LocalClient())
	require.Equal(t, 2, factory.requests)
	require.Equal(t, 1, factory.creations)
	require.Equal(t, []string{PlatformName, PlatformName}, resolver.requests)
	require.NoError(t, c0.Destroy())
	require.NoError(t, c1.Destroy())
}

func TestGetClient_DeviceCount(t *testing.T) {
	for _, numDevices := range []int{0, 2, 3} {
		b, p, _, factory := newTestBootstrapper(numDevices)
		client, err := b.GetClient()
		require.Errorf(t, err, "bootstrap should fail with %d devices", numDevices)
		require.Nil(t, client)
		require.True(t, errors.Is(err, ErrExpectedExactlyOneDevice))
		require.Equal(t, status.CodeFailedPrecondition, status.CodeOf(err))
		var countErr *DeviceCountError
		require.True(t, errors.As(err, &countErr))
		require.Equal(t, numDevices, countErr.Count)

		// Nothing else was attempted.
		require.Equal(t, 0, factory.requests)
		require.Equal(t, int32(0), p.executorCalls.Load())
	}
}

func TestGetClient_PlatformNotFound(t *testing.T) {
	notFound := errors.WithMessagef(platform.ErrPlatformNotFound, "could not find platform %q", PlatformName)
	p := newFakePlatform(1)
	resolver := &spyResolver{platform: p, err: notFound}
	factory := newCountingFactory()
	b := &Bootstrapper{Platforms: resolver, Clients: factory}

	client, err := b.GetClient()
	require.Nil(t, client)
	require.Equal(t, notFound, err)
	require.True(t, errors.Is(err, platform.ErrPlatformNotFound))
	require.Equal(t, status.CodeNotFound, status.CodeOf(err))
	require.Equal(t, []string{"Interpreter"}, resolver.requests)
	require.Equal(t, int32(0), p.deviceCountCalls.Load())
	require.Equal(t, 0, factory.requests)

	// With a registry without the interpreter platform.
	b.Platforms = platform.NewRegistry()
	_, err = b.GetClient()
	require.True(t, errors.Is(err, platform.ErrPlatformNotFound))
	require.Equal(t, 0, factory.requests)
}

func TestGetClient_LowLevelClientFailure(t *testing.T) {
	b, p, _, factory := newTestBootstrapper(1)
	factory.err = errors.New("low-level client exploded")
	client, err := b.GetClient()
	require.Nil(t, client)
	require.Equal(t, factory.err, err)
	require.Equal(t, int32(0), p.executorCalls.Load())
}

func TestGetClient_ExecutorUnavailable(t *testing.T) {
	b, p, _, _ := newTestBootstrapper(1)
	p.executorErr = errors.New("no executor for you")
	client, err := b.GetClient()
	require.Nil(t, client)
	require.True(t, errors.Is(err, ErrExecutorUnavailable))
	require.True(t, errors.Is(err, p.executorErr))
	require.Equal(t, status.CodeInternal, status.CodeOf(err))
	require.ErrorContains(t, err, "no executor for you")
}

func TestGetClient_DeviceStateFailure(t *testing.T) {
	b, p, _, _ := newTestBootstrapper(1)
	p.foreignExecutor = true
	client, err := b.GetClient()
	require.Nil(t, client)
	require.Error(t, err)
	require.Equal(t, status.CodeFailedPrecondition, status.CodeOf(err))
	require.False(t, errors.Is(err, ErrExecutorUnavailable))
	require.ErrorContains(t, err, "failed to create the device state")
}

func TestGetClient_ClientAssemblyFailure(t *testing.T) {
	b, _, _, _ := newTestBootstrapper(1)
	assemblyErr := status.New(status.CodeInternal, "client assembly failed")
	var state *devicestate.LocalDeviceState
	newClient = func(config pjrt.ClientConfig) (*pjrt.Client, error) {
		require.Len(t, config.Devices, 1)
		state = config.Devices[0].LocalDeviceState()
		return nil, assemblyErr
	}
	defer func() { newClient = pjrt.NewClient }()

	client, err := b.GetClient()
	require.Nil(t, client)
	require.ErrorIs(t, err, assemblyErr)
	require.NotNil(t, state)
	require.True(t, state.IsClosed())
}

func TestGetClient_Destroy(t *testing.T) {
	client := capture(GetClient()).Test(t)
	state := client.Devices()[0].LocalDeviceState()
	require.NoError(t, client.Destroy())
	require.True(t, state.IsClosed())
	require.NoError(t, client.Destroy())
	require.Equal(t, "Invalid client", client.String())
}
