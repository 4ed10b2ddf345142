// Package platform defines the platform discovery used to bootstrap clients: a Platform is a class of
// compute hardware (or a software backend) that can be queried for its visible devices and their executors.
//
// Platforms register themselves (usually in an init function) in the process Registry, and are later
// resolved by name with GetPlatform. See sub-package `interpreter` for the reference platform.
package platform

// Platform is an abstraction over a class of compute backends, e.g.: "Interpreter", "Host", "CUDA".
type Platform interface {
	// Name of the platform, as it is registered, e.g.: "Interpreter".
	Name() string

	// ID uniquely identifies the platform in the process. It is used as key for per-platform caches.
	ID() string

	// VisibleDeviceCount returns the number of devices visible to the platform.
	VisibleDeviceCount() int

	// ExecutorForDevice returns the StreamExecutor for the device with the given ordinal.
	// Platforms are expected to return the same executor for the same ordinal.
	ExecutorForDevice(ordinal int) (StreamExecutor, error)
}

// StreamExecutor executes work on one device and owns its low-level resources.
type StreamExecutor interface {
	// DeviceOrdinal returns the ordinal of the device the executor is bound to.
	DeviceOrdinal() int

	// Platform that created the executor.
	Platform() Platform

	// SynchronizeAllActivity blocks until all activity on the device is done.
	SynchronizeAllActivity() error

	// Description is a human-readable description of the device, used for logging and debugging.
	Description() string
}

// Resolver looks up platforms by name.
//
// The Registry implements it, and tests may substitute it.
type Resolver interface {
	GetPlatform(name string) (Platform, error)
}
