package pjrt

import (
	"fmt"
)

// MemorySpace is a category of memory reachable by a Device, identified by its kind.
//
// It refers back to its device by the device id, resolved through the Client once the client is assembled,
// so the memory space never keeps the device alive by itself.
type MemorySpace struct {
	id       int
	deviceID int
	kind     string
	kindID   int

	// owner identifies the exact device the memory space was created for, since device ids are only
	// unique within a client.
	owner *deviceToken

	// client is set when the Client is assembled, nil before.
	client *Client
}

// NewMemorySpace creates a memory space for the device. It still needs to be attached to the device, see
// Device.AttachMemorySpace.
//
// It panics if device is nil.
func NewMemorySpace(id int, device *Device, kind string, kindID int) *MemorySpace {
	if device == nil {
		panicf("pjrt.NewMemorySpace(id=%d, kind=%q) requires a device", id, kind)
	}
	return &MemorySpace{
		id:       id,
		deviceID: device.ID(),
		kind:     kind,
		kindID:   kindID,
		owner:    device.token,
	}
}

// ID of the memory space, unique within the client.
func (m *MemorySpace) ID() int {
	return m.id
}

// DeviceID returns the id of the device the memory space belongs to.
func (m *MemorySpace) DeviceID() int {
	return m.deviceID
}

// Device returns the device the memory space belongs to, or nil if the memory space is not part of a Client yet.
func (m *MemorySpace) Device() *Device {
	if m.client == nil {
		return nil
	}
	d, err := m.client.LookupDevice(m.deviceID)
	if err != nil {
		return nil
	}
	return d
}

// Kind of the memory space, e.g.: "interpreter".
func (m *MemorySpace) Kind() string {
	return m.kind
}

// KindID is the numeric identifier of the Kind: the same for all memory spaces of the same kind.
func (m *MemorySpace) KindID() int {
	return m.kindID
}

// DebugString suitable for logging when errors occur.
func (m *MemorySpace) DebugString() string {
	return fmt.Sprintf("MemorySpace(id=%d, kind=%s, device_id=%d)", m.id, m.kind, m.deviceID)
}

// String implements fmt.Stringer.
func (m *MemorySpace) String() string {
	return fmt.Sprintf("MemorySpace[id=%d, kind=%q, kind_id=%d]", m.id, m.kind, m.kindID)
}
