package interpreter

import (
	"sync"

	"github.com/dgryski/go-farm"
	"github.com/gomlx/interpreter/pjrt"
)

// Kind of the interpreter memory spaces. There is only one kind of memory on the interpreter platform.
const Kind = "interpreter"

var kindID = sync.OnceValue(func() int {
	return KindIDFor(Kind)
})

// KindID returns the numeric identifier of Kind. It's computed once and cached for the lifetime of the process.
//
// It is not guaranteed to be stable across versions, so it shouldn't be persisted.
func KindID() int {
	return kindID()
}

// KindIDFor returns the kind id for an arbitrary memory space kind name: the 32 bits farmhash fingerprint
// of the name, as a signed 32 bits integer.
func KindIDFor(name string) int {
	return int(int32(farm.Fingerprint32([]byte(name))))
}

// NewMemorySpace creates an interpreter memory space for the device.
// It still needs to be attached to the device with Device.AttachMemorySpace.
func NewMemorySpace(id int, device *pjrt.Device) *pjrt.MemorySpace {
	return pjrt.NewMemorySpace(id, device, Kind, KindID())
}
