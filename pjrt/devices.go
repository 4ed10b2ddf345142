package pjrt

import (
	"fmt"
	"slices"

	"github.com/gomlx/interpreter/devicestate"
	"github.com/gomlx/interpreter/status"
)

// deviceToken is a per-device identity, not shared by devices with the same id.
type deviceToken struct {
	id int
}

// Device is one addressable compute unit of a Client, backed by a stream executor.
//
// The Device owns its LocalDeviceState, and it has MemorySpaces attached to it, one of which is the default.
// Devices are owned by the Client they are part of: they are created during the client bootstrap and
// released with Client.Destroy.
type Device struct {
	id               int
	kind             string
	token            *deviceToken
	localDeviceState *devicestate.LocalDeviceState

	memorySpaces       []*MemorySpace
	defaultMemorySpace *MemorySpace

	// client is set when the Client is assembled, nil before.
	client *Client
}

// NewDevice creates a device with the given id and device-kind label (usually the platform name),
// taking ownership of the localDeviceState.
//
// It panics if localDeviceState is nil: this is a programming error.
func NewDevice(id int, kind string, localDeviceState *devicestate.LocalDeviceState) *Device {
	if localDeviceState == nil {
		panicf("pjrt.NewDevice(id=%d, kind=%q) requires a non-nil LocalDeviceState", id, kind)
	}
	return &Device{
		id:               id,
		kind:             kind,
		token:            &deviceToken{id: id},
		localDeviceState: localDeviceState,
	}
}

// AttachMemorySpace registers the memory space with the device. If isDefault, it also becomes the device's
// default memory space, replacing any previous one.
//
// The memory space must have been created for this device, otherwise it panics.
func (d *Device) AttachMemorySpace(memorySpace *MemorySpace, isDefault bool) {
	if memorySpace == nil {
		panicf("Device.AttachMemorySpace(nil) on %s", d)
	}
	if memorySpace.DeviceID() != d.id {
		panicf("cannot attach %s to %s: memory space belongs to device %d", memorySpace.DebugString(), d, memorySpace.DeviceID())
	}
	if memorySpace.owner != d.token {
		panicf("cannot attach %s to %s: memory space was created for another device with the same id",
			memorySpace.DebugString(), d)
	}
	if !slices.Contains(d.memorySpaces, memorySpace) {
		d.memorySpaces = append(d.memorySpaces, memorySpace)
	}
	if isDefault {
		d.defaultMemorySpace = memorySpace
	}
}

// ID of the device, unique within the client.
func (d *Device) ID() int {
	return d.id
}

// Kind returns the device-kind label, e.g.: "interpreter".
func (d *Device) Kind() string {
	return d.kind
}

// LocalDeviceState owned by the device.
func (d *Device) LocalDeviceState() *devicestate.LocalDeviceState {
	return d.localDeviceState
}

// LocalHardwareID returns the ordinal of the device's executor.
func (d *Device) LocalHardwareID() int {
	return d.localDeviceState.DeviceOrdinal()
}

// ProcessIndex returns the index of the process the device belongs to. Always 0 in single-process settings.
func (d *Device) ProcessIndex() int {
	if d.client == nil {
		return 0
	}
	return d.client.processIndex
}

// IsAddressable returns whether the device is addressable by its client.
// Devices not yet part of a client are not addressable.
func (d *Device) IsAddressable() bool {
	return d.client != nil
}

// Client that owns the device, or nil if the device was not yet assembled into a client.
func (d *Device) Client() *Client {
	return d.client
}

// MemorySpaces attached to the device, in the order they were attached.
func (d *Device) MemorySpaces() []*MemorySpace {
	return slices.Clone(d.memorySpaces)
}

// DefaultMemorySpace returns the default memory space of the device.
// It returns a NotFound error if none was attached as default yet.
func (d *Device) DefaultMemorySpace() (*MemorySpace, error) {
	if d.defaultMemorySpace == nil {
		return nil, status.Errorf(status.CodeNotFound, "no default memory space attached to %s", d)
	}
	return d.defaultMemorySpace, nil
}

// MemorySpaceByKindID returns the attached memory space with the given kind id.
func (d *Device) MemorySpaceByKindID(kindID int) (*MemorySpace, error) {
	for _, ms := range d.memorySpaces {
		if ms.KindID() == kindID {
			return ms, nil
		}
	}
	return nil, status.Errorf(status.CodeNotFound, "no memory space with kind id %d attached to %s", kindID, d)
}

// DebugString suitable for logging when errors occur.
func (d *Device) DebugString() string {
	return fmt.Sprintf("%s:%d", d.kind, d.id)
}

// String implements fmt.Stringer.
func (d *Device) String() string {
	return fmt.Sprintf("Device[id=%d, kind=%q]", d.id, d.kind)
}
