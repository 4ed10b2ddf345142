package pjrt

import (
	"fmt"
	"slices"

	"github.com/dgryski/go-farm"
	"github.com/gomlx/interpreter/localclient"
	"github.com/gomlx/interpreter/status"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Allocator allocates device (or host) memory for buffers.
//
// A nil Allocator in ClientConfig means the client uses the platform's default allocation.
type Allocator interface {
	Allocate(deviceOrdinal int, size int64) ([]byte, error)
	Deallocate(deviceOrdinal int, mem []byte) error
}

// ClientConfig holds everything needed to assemble a Client. See NewClient.
type ClientConfig struct {
	// Platform label, e.g.: "interpreter".
	Platform        string
	PlatformVersion string

	// ProcessIndex is always 0 in single-process settings.
	ProcessIndex int

	// LocalClient is the low-level client shared by all devices.
	LocalClient *localclient.Client

	// Devices and MemorySpaces owned by the Client. Every memory space must be attached to a device of Devices.
	Devices      []*Device
	MemorySpaces []*MemorySpace

	// Allocator for device memory and HostMemoryAllocator for pinned host memory. Both optional.
	Allocator, HostMemoryAllocator Allocator

	// ShouldStageHostToDeviceTransfers makes transfers from host go through a staging buffer.
	ShouldStageHostToDeviceTransfers bool
}

// Client manages the resources of its devices: it owns the Devices and the MemorySpaces, and
// the LocalDeviceState of each device.
type Client struct {
	platform, platformVersion string
	platformID                uint64
	processIndex              int
	localClient               *localclient.Client

	devices      []*Device
	memorySpaces []*MemorySpace
	devicesByID  map[int]*Device

	allocator, hostMemoryAllocator   Allocator
	shouldStageHostToDeviceTransfers bool

	destroyed bool
}

// NewClient assembles a Client, taking ownership of the devices and memory spaces.
//
// The collections must be consistent: device and memory space ids must be unique, and every memory space
// must be attached to a device in config.Devices, and every memory space attached to a device must be in
// config.MemorySpaces. Otherwise, it returns an error and nothing is owned by
// a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.LocalClient == nil {
		return nil, status.Errorf(status.CodeInvalidArgument, "pjrt.NewClient requires a low-level client for platform %q", config.Platform)
	}
	if len(config.Devices) == 0 {
		return nil, status.Errorf(status.CodeInvalidArgument, "pjrt.NewClient requires at least one device for platform %q", config.Platform)
	}
	devicesByID := make(map[int]*Device, len(config.Devices))
	for _, d := range config.Devices {
		if d == nil {
			return nil, status.Errorf(status.CodeInvalidArgument, "nil device given to pjrt.NewClient")
		}
		if _, found := devicesByID[d.ID()]; found {
			return nil, status.Errorf(status.CodeInvalidArgument, "duplicate device id %d", d.ID())
		}
		if d.client != nil {
			return nil, status.Errorf(status.CodeFailedPrecondition, "%s is already owned by %s", d, d.client)
		}
		devicesByID[d.ID()] = d
	}
	memorySpaceIDs := make(map[int]bool, len(config.MemorySpaces))
	for _, ms := range config.MemorySpaces {
		if ms == nil {
			return nil, status.Errorf(status.CodeInvalidArgument, "nil memory space given to pjrt.NewClient")
		}
		if memorySpaceIDs[ms.ID()] {
			return nil, status.Errorf(status.CodeInvalidArgument, "duplicate memory space id %d", ms.ID())
		}
		memorySpaceIDs[ms.ID()] = true
		d, found := devicesByID[ms.DeviceID()]
		if !found {
			return nil, status.Errorf(status.CodeFailedPrecondition,
				"%s belongs to device %d, which is not one of the client devices %v",
				ms.DebugString(), ms.DeviceID(), slices.Sorted(slices.Values(keys(devicesByID))))
		}
		if !slices.Contains(d.memorySpaces, ms) {
			return nil, status.Errorf(status.CodeFailedPrecondition, "%s is not attached to %s", ms.DebugString(), d)
		}
	}
	for _, d := range config.Devices {
		for _, ms := range d.memorySpaces {
			if !slices.Contains(config.MemorySpaces, ms) {
				return nil, status.Errorf(status.CodeFailedPrecondition,
					"%s is attached to %s but it is not one of the client memory spaces", ms.DebugString(), d)
			}
		}
	}

	c := &Client{
		platform:                         config.Platform,
		platformVersion:                  config.PlatformVersion,
		platformID:                       farm.Fingerprint64([]byte(config.Platform)),
		processIndex:                     config.ProcessIndex,
		localClient:                      config.LocalClient,
		devices:                          slices.Clone(config.Devices),
		memorySpaces:                     slices.Clone(config.MemorySpaces),
		devicesByID:                      devicesByID,
		allocator:                        config.Allocator,
		hostMemoryAllocator:              config.HostMemoryAllocator,
		shouldStageHostToDeviceTransfers: config.ShouldStageHostToDeviceTransfers,
	}
	for _, d := range c.devices {
		d.client = c
	}
	for _, ms := range c.memorySpaces {
		ms.client = c
	}
	klog.V(1).Infof("created %s with %d device(s) and %d memory space(s)", c, len(c.devices), len(c.memorySpaces))
	return c, nil
}

// Destroy the client, releasing the LocalDeviceState of its devices. After this the Client is no longer valid.
// It's a no-op if called more than once.
func (c *Client) Destroy() error {
	if c == nil || c.destroyed {
		return nil
	}
	c.destroyed = true
	var firstErr error
	for _, d := range c.devices {
		err := d.localDeviceState.Close()
		if err == nil {
			continue
		}
		err = errors.WithMessagef(err, "failed to release %s", d)
		if firstErr == nil {
			firstErr = err
		} else {
			klog.Errorf("Client.Destroy: %+v", err)
		}
	}
	return firstErr
}

// String implements fmt.Stringer.
func (c *Client) String() string {
	if c == nil || c.destroyed {
		return "Invalid client"
	}
	var pidStr string
	if c.processIndex == 0 {
		pidStr = "single-process"
	} else {
		pidStr = fmt.Sprintf("pid=%d", c.processIndex)
	}
	platform := c.platform
	if c.platformVersion != "" {
		platform += " - " + c.platformVersion
	}
	return fmt.Sprintf("Client[platform=%q, %s]", platform, pidStr)
}

// Platform returns the platform label of the client, e.g.: "interpreter".
func (c *Client) Platform() string {
	return c.platform
}

// PlatformVersion returns the version of the client platform, it may be empty.
func (c *Client) PlatformVersion() string {
	return c.platformVersion
}

// PlatformID is a fingerprint of the platform label.
func (c *Client) PlatformID() uint64 {
	return c.platformID
}

// ProcessIndex returns the process index of the client. Always 0 in single-process settings.
func (c *Client) ProcessIndex() int {
	return c.processIndex
}

// LocalClient returns the low-level client the client was created with.
func (c *Client) LocalClient() *localclient.Client {
	return c.localClient
}

// Devices returns all devices owned by the client.
//
// The returned slice is a copy, but the Devices are owned by the Client.
func (c *Client) Devices() []*Device {
	return slices.Clone(c.devices)
}

// AddressableDevices returns the devices the client can issue commands to.
// All devices are addressable in a single-process environment.
func (c *Client) AddressableDevices() []*Device {
	return slices.DeleteFunc(c.Devices(), func(d *Device) bool { return !d.IsAddressable() })
}

// MemorySpaces returns all memory spaces owned by the client.
func (c *Client) MemorySpaces() []*MemorySpace {
	return slices.Clone(c.memorySpaces)
}

// LookupDevice returns the device with the given id.
func (c *Client) LookupDevice(id int) (*Device, error) {
	if d, found := c.devicesByID[id]; found {
		return d, nil
	}
	return nil, status.Errorf(status.CodeInvalidArgument, "no device with id %d in %s", id, c)
}

// LookupAddressableDevice returns the addressable device with the given local hardware id.
func (c *Client) LookupAddressableDevice(localHardwareID int) (*Device, error) {
	for _, d := range c.devices {
		if d.IsAddressable() && d.LocalHardwareID() == localHardwareID {
			return d, nil
		}
	}
	return nil, status.Errorf(status.CodeInvalidArgument, "no addressable device with local hardware id %d in %s", localHardwareID, c)
}

// NumForDevice returns the "deviceNum" for the given device: its index in Client.AddressableDevices.
//
// It returns -1 if device not found in Client.AddressableDevices.
func (c *Client) NumForDevice(device *Device) int {
	for deviceNum, otherDevice := range c.AddressableDevices() {
		if device == otherDevice {
			return deviceNum
		}
	}
	return -1
}

// Allocator for device memory, nil if not set.
func (c *Client) Allocator() Allocator {
	return c.allocator
}

// HostMemoryAllocator for host memory, nil if not set.
func (c *Client) HostMemoryAllocator() Allocator {
	return c.hostMemoryAllocator
}

// ShouldStageHostToDeviceTransfers returns whether transfers from host are staged.
func (c *Client) ShouldStageHostToDeviceTransfers() bool {
	return c.shouldStageHostToDeviceTransfers
}

// Attributes returns a description of the client as a NamedValuesMap.
func (c *Client) Attributes() NamedValuesMap {
	deviceIDs := make([]int64, len(c.devices))
	for ii, d := range c.devices {
		deviceIDs[ii] = int64(d.ID())
	}
	memorySpaceIDs := make([]int64, len(c.memorySpaces))
	kindIDs := make([]int64, len(c.memorySpaces))
	for ii, ms := range c.memorySpaces {
		memorySpaceIDs[ii] = int64(ms.ID())
		kindIDs[ii] = int64(ms.KindID())
	}
	return NamedValuesMap{
		"platform_name":                         c.platform,
		"platform_version":                      c.platformVersion,
		"process_index":                         int64(c.processIndex),
		"device_ids":                            deviceIDs,
		"memory_space_ids":                      memorySpaceIDs,
		"memory_space_kind_ids":                 kindIDs,
		"has_allocator":                         c.allocator != nil,
		"has_host_memory_allocator":             c.hostMemoryAllocator != nil,
		"should_stage_host_to_device_transfers": c.shouldStageHostToDeviceTransfers,
	}
}
