package pjrt

// Common initialization and testing tools for all test files.

import (
	"testing"

	"github.com/gomlx/interpreter/devicestate"
	"github.com/gomlx/interpreter/localclient"
	"github.com/gomlx/interpreter/platform/interpreter"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

type errTester[T any] struct {
	value T
	err   error
}

// capture is a shortcut to test that there is no error and return the value.
func capture[T any](value T, err error) errTester[T] {
	return errTester[T]{value, err}
}

func (e errTester[T]) Test(t *testing.T) T {
	require.NoError(t, e.err)
	return e.value
}

// getLocalClient returns a low-level client of a new interpreter platform.
func getLocalClient(t *testing.T) *localclient.Client {
	return capture(localclient.NewLibrary().GetOrCreateLocalClient(localclient.Options{Platform: interpreter.New()})).Test(t)
}

// newTestDevice creates a device with its memory space attached as default.
func newTestDevice(t *testing.T, localClient *localclient.Client, id int) (*Device, *MemorySpace) {
	executor := capture(localClient.Backend().StreamExecutor(0)).Test(t)
	state := capture(devicestate.New(executor, localClient, devicestate.Options{
		AllocationModel:         devicestate.Synchronous,
		MaxInflightComputations: 1,
	})).Test(t)
	device := NewDevice(id, "test", state)
	memorySpace := NewMemorySpace(id, device, "test", 7)
	device.AttachMemorySpace(memorySpace, true)
	return device, memorySpace
}
