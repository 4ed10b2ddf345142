package interpreter

import (
	"fmt"

	"github.com/gomlx/interpreter/status"
)

var (
	// ErrExpectedExactlyOneDevice is matched (with errors.Is) by the error returned when the platform
	// doesn't have exactly one visible device. Use errors.As with *DeviceCountError to get the count.
	ErrExpectedExactlyOneDevice = status.New(status.CodeFailedPrecondition, "platform should have exactly one device")

	// ErrExecutorUnavailable is matched (with errors.Is) by the error returned when the executor of device 0
	// can't be obtained, even though the platform reported exactly one device. It indicates an internal
	// inconsistency between the platform and its backend.
	ErrExecutorUnavailable = status.New(status.CodeInternal, "executor for device 0 unavailable")
)

// DeviceCountError is returned when the platform doesn't have exactly one visible device.
type DeviceCountError struct {
	Platform string
	Count    int
}

// Error implements error.
func (e *DeviceCountError) Error() string {
	return fmt.Sprintf("%s platform should have exactly one device, it has %d", e.Platform, e.Count)
}

// Code returns status.CodeFailedPrecondition.
func (e *DeviceCountError) Code() status.Code {
	return status.CodeFailedPrecondition
}

// Is matches ErrExpectedExactlyOneDevice.
func (e *DeviceCountError) Is(target error) bool {
	return target == ErrExpectedExactlyOneDevice
}

// ExecutorUnavailableError is returned when the executor lookup fails. It wraps the backend error.
type ExecutorUnavailableError struct {
	Ordinal int
	Err     error
}

// Error implements error.
func (e *ExecutorUnavailableError) Error() string {
	return fmt.Sprintf("executor for device %d unavailable: %v", e.Ordinal, e.Err)
}

// Code returns status.CodeInternal.
func (e *ExecutorUnavailableError) Code() status.Code {
	return status.CodeInternal
}

// Unwrap returns the backend error.
func (e *ExecutorUnavailableError) Unwrap() error {
	return e.Err
}

// Is matches ErrExecutorUnavailable.
func (e *ExecutorUnavailableError) Is(target error) bool {
	return target == ErrExecutorUnavailable
}
