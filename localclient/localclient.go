// Package localclient implements the low-level client of a platform, and a process-scoped Library that
// caches one client per platform (get-or-create semantics).
package localclient

import (
	"fmt"
	"sync"

	"github.com/gomlx/interpreter/platform"
	"github.com/gomlx/interpreter/status"
)

// Options used to create a low-level client.
type Options struct {
	// Platform for which to create the client. Required.
	Platform platform.Platform

	// NumReplicas is the number of replicas the client is configured for. If 0, it defaults to 1.
	NumReplicas int

	// IntraOpParallelismThreads, if > 0, limits the number of threads used per operation. -1 or 0 means no limit.
	IntraOpParallelismThreads int
}

// validate the options, and set the defaults.
func (o *Options) validate() error {
	if o.Platform == nil {
		return status.Errorf(status.CodeInvalidArgument, "localclient.Options.Platform must be set")
	}
	if o.NumReplicas < 0 {
		return status.Errorf(status.CodeInvalidArgument, "localclient.Options.NumReplicas must be >= 0, got %d", o.NumReplicas)
	}
	if o.NumReplicas == 0 {
		o.NumReplicas = 1
	}
	if o.IntraOpParallelismThreads == 0 {
		o.IntraOpParallelismThreads = -1
	}
	return nil
}

// Factory creates (or returns cached) low-level clients. It is implemented by Library.
type Factory interface {
	GetOrCreateLocalClient(options Options) (*Client, error)
}

// Client is the low-level client of a platform: it owns the Backend, with the platform's executors.
//
// Clients are shared: there is at most one per platform in a Library.
type Client struct {
	options Options
	backend *Backend
}

// newClient creates a new low-level client. Options must have been validated.
func newClient(options Options) *Client {
	return &Client{
		options: options,
		backend: newBackend(options.Platform),
	}
}

// Platform returns the platform of the client.
func (c *Client) Platform() platform.Platform {
	return c.options.Platform
}

// Backend returns the backend with the executors of the platform.
func (c *Client) Backend() *Backend {
	return c.backend
}

// ReplicaCount returns the number of replicas the client was configured with.
func (c *Client) ReplicaCount() int {
	return c.options.NumReplicas
}

// IntraOpParallelismThreads returns the configured limit of threads per op, -1 if unlimited.
func (c *Client) IntraOpParallelismThreads() int {
	return c.options.IntraOpParallelismThreads
}

// String implements fmt.Stringer.
func (c *Client) String() string {
	return fmt.Sprintf("LocalClient[platform=%q, replicas=%d]", c.options.Platform.Name(), c.options.NumReplicas)
}

// Backend holds the executors of a platform, one per visible device.
// Executors are looked up lazily and cached.
type Backend struct {
	platform platform.Platform

	mu        sync.Mutex
	executors map[int]platform.StreamExecutor
}

func newBackend(p platform.Platform) *Backend {
	return &Backend{
		platform:  p,
		executors: make(map[int]platform.StreamExecutor),
	}
}

// Platform of the backend.
func (b *Backend) Platform() platform.Platform {
	return b.platform
}

// DeviceCount returns the number of devices visible to the backend's platform.
func (b *Backend) DeviceCount() int {
	return b.platform.VisibleDeviceCount()
}

// StreamExecutor returns the executor for the device with the given ordinal.
func (b *Backend) StreamExecutor(ordinal int) (platform.StreamExecutor, error) {
	if ordinal < 0 || ordinal >= b.DeviceCount() {
		return nil, status.Errorf(status.CodeInvalidArgument,
			"invalid device ordinal %d for platform %q with %d visible device(s)", ordinal, b.platform.Name(), b.DeviceCount())
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if executor, found := b.executors[ordinal]; found {
		return executor, nil
	}
	executor, err := b.platform.ExecutorForDevice(ordinal)
	if err != nil {
		return nil, err
	}
	if executor == nil {
		return nil, status.Errorf(status.CodeInternal,
			"platform %q returned a nil executor for device ordinal %d", b.platform.Name(), ordinal)
	}
	b.executors[ordinal] = executor
	return executor, nil
}
