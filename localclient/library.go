package localclient

import (
	"sync"

	"github.com/gomlx/interpreter/status"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Library is a process-scoped registry of low-level clients, keyed by platform ID.
//
// It is safe for concurrent use: concurrent first requests for the same platform create only one client.
type Library struct {
	mu      sync.Mutex
	clients map[string]*Client
}

var (
	errNoDevices = status.New(status.CodeFailedPrecondition, "platform has no visible devices")

	defaultLibrary     *Library
	defaultLibraryOnce sync.Once
)

// NewLibrary returns a new empty Library.
func NewLibrary() *Library {
	return &Library{clients: make(map[string]*Client)}
}

// DefaultLibrary returns the process-wide Library.
func DefaultLibrary() *Library {
	defaultLibraryOnce.Do(func() {
		defaultLibrary = NewLibrary()
	})
	return defaultLibrary
}

// GetOrCreateLocalClient returns the client for options.Platform, creating it if this is the first request
// for that platform.
//
// Only the platform is used as the cache key: options of later calls for the same platform are ignored.
func (l *Library) GetOrCreateLocalClient(options Options) (*Client, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}
	key := options.Platform.ID()
	l.mu.Lock()
	defer l.mu.Unlock()
	if client, found := l.clients[key]; found {
		if client.ReplicaCount() != options.NumReplicas {
			klog.Warningf("Reusing low-level client for platform %q created with %d replicas, %d requested",
				options.Platform.Name(), client.ReplicaCount(), options.NumReplicas)
		}
		return client, nil
	}
	if options.Platform.VisibleDeviceCount() <= 0 {
		return nil, errors.WithMessagef(errNoDevices, "platform %q", options.Platform.Name())
	}
	client := newClient(options)
	l.clients[key] = client
	klog.V(1).Infof("created %s", client)
	return client, nil
}

// Len returns the number of clients in the library.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Reset drops all cached clients. Clients already returned remain valid.
func (l *Library) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.clients)
}
