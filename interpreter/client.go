// Package interpreter bootstraps a PJRT client for the "Interpreter" platform: a degenerate, always
// synchronous, single-device client used as a reference and for testing.
//
// Example:
//
//	client, err := interpreter.GetClient()
//	if err != nil {
//		klog.Fatalf("%+v", err)
//	}
//	defer client.Destroy()
//	device := client.Devices()[0]
package interpreter

import (
	"github.com/gomlx/interpreter/devicestate"
	"github.com/gomlx/interpreter/localclient"
	"github.com/gomlx/interpreter/pjrt"
	"github.com/gomlx/interpreter/platform"
	interpreterplatform "github.com/gomlx/interpreter/platform/interpreter"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// PlatformName is the name used to look up the platform.
const PlatformName = interpreterplatform.Name

// DeviceStateOptions configures the LocalDeviceState of the interpreter device: synchronous, at most one
// computation in flight, no event reuse and no callback stream.
var DeviceStateOptions = devicestate.Options{
	AllocationModel:         devicestate.Synchronous,
	MaxInflightComputations: 1,
	AllowEventReuse:         false,
	UseCallbackStream:       false,
}

// newClient assembles the client, replaced in tests.
var newClient = pjrt.NewClient

// Bootstrapper creates interpreter clients from its collaborators.
// The zero value is not usable, use NewBootstrapper or set both fields.
type Bootstrapper struct {
	// Platforms resolves the platform by name.
	Platforms platform.Resolver

	// Clients returns the low-level client for the platform, shared across bootstraps.
	Clients localclient.Factory
}

// NewBootstrapper returns a Bootstrapper using the process default platform registry and
// low-level client library.
func NewBootstrapper() *Bootstrapper {
	return &Bootstrapper{
		Platforms: platform.DefaultRegistry(),
		Clients:   localclient.DefaultLibrary(),
	}
}

// GetClient returns a new interpreter client, using the process default platform registry and
// low-level client library.
//
// Each call returns a new Client (with its own Device and MemorySpace), but they all share the same
// low-level client.
func GetClient() (*pjrt.Client, error) {
	return NewBootstrapper().GetClient()
}

// GetClient returns a new interpreter client. See package level GetClient.
//
// It either returns a fully assembled client or an error, never a partial client.
func (b *Bootstrapper) GetClient() (*pjrt.Client, error) {
	p, err := b.Platforms.GetPlatform(PlatformName)
	if err != nil {
		return nil, err
	}
	if count := p.VisibleDeviceCount(); count != 1 {
		return nil, errors.WithStack(&DeviceCountError{Platform: p.Name(), Count: count})
	}
	localClient, err := b.Clients.GetOrCreateLocalClient(localclient.Options{Platform: p})
	if err != nil {
		return nil, err
	}
	executor, err := localClient.Backend().StreamExecutor(0)
	if err != nil {
		return nil, errors.WithStack(&ExecutorUnavailableError{Ordinal: 0, Err: err})
	}
	deviceState, err := devicestate.New(executor, localClient, DeviceStateOptions)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create the device state for %s", executor.Description())
	}

	device := NewDevice(0, deviceState)
	memorySpace := NewMemorySpace(0, device)
	device.AttachMemorySpace(memorySpace, true)
	client, err := newClient(pjrt.ClientConfig{
		Platform:                         DeviceKind,
		ProcessIndex:                     0,
		LocalClient:                      localClient,
		Devices:                          []*pjrt.Device{device},
		MemorySpaces:                     []*pjrt.MemorySpace{memorySpace},
		Allocator:                        nil,
		HostMemoryAllocator:              nil,
		ShouldStageHostToDeviceTransfers: false,
	})
	if err != nil {
		if closeErr := deviceState.Close(); closeErr != nil {
			klog.Errorf("Failed to release device state after failing to create interpreter client: %+v", closeErr)
		}
		return nil, err
	}
	klog.V(1).Infof("bootstrapped %s using %s", client, localClient)
	return client, nil
}
