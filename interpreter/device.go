package interpreter

import (
	"github.com/gomlx/interpreter/devicestate"
	"github.com/gomlx/interpreter/pjrt"
)

// DeviceKind is the device-kind label of interpreter devices, and the platform label of the interpreter client.
const DeviceKind = "interpreter"

// NewDevice creates an interpreter device that takes ownership of localDeviceState.
//
// It panics if localDeviceState is nil.
func NewDevice(id int, localDeviceState *devicestate.LocalDeviceState) *pjrt.Device {
	return pjrt.NewDevice(id, DeviceKind, localDeviceState)
}
