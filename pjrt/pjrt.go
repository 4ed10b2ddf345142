// Package pjrt implements the client object graph of a PJRT stream-executor client: the Client owns its
// Devices and MemorySpaces, each Device owns its LocalDeviceState and has MemorySpaces attached to it.
//
// Clients for specific platforms are assembled by bootstrap packages, see github.com/gomlx/interpreter/interpreter.
package pjrt
