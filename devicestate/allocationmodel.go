package devicestate

// AllocationModel defines when memory used by a computation can be reused or freed, relative to the
// computation's completion.
type AllocationModel int

//go:generate go tool enumer -type=AllocationModel allocationmodel.go

const (
	// Synchronous means every computation blocks the host until it's done: buffers are freed when the
	// computation returns. It is the model used by the interpreter.
	Synchronous AllocationModel = iota

	// ComputeSynchronized means buffers are freed only after the computations using them are done
	// on the compute stream.
	ComputeSynchronized

	// Asynchronous means buffers can be freed as soon as they are no longer referenced by the host,
	// with events tracking their usage.
	Asynchronous
)
