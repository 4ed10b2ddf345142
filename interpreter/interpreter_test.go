package interpreter

import (
	"flag"
	"fmt"
	"testing"

	"github.com/gomlx/interpreter/localclient"
	"github.com/gomlx/interpreter/pjrt"
	"github.com/gomlx/interpreter/platform"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"k8s.io/klog/v2"
)

// Common initialization and testing tools for all test files.

func init() {
	klog.InitFlags(nil)
}

var flagVerboseClient = flag.Bool("verbose_client", false, "Print the attributes of the bootstrapped clients.")

type errTester[T any] struct {
	value T
	err   error
}

// capture is a shortcut to test that there is no error and return the value.
func capture[T any](value T, err error) errTester[T] {
	return errTester[T]{value, err}
}

func (e errTester[T]) Test(t *testing.T) T {
	require.NoError(t, e.err)
	return e.value
}

// fakePlatform can be configured to report any number of devices, and to fail on executor lookups.
type fakePlatform struct {
	id      string
	devices int

	// executorErr is returned by ExecutorForDevice if set.
	executorErr error

	// foreignExecutor makes ExecutorForDevice return an executor that belongs to another platform.
	foreignExecutor bool

	deviceCountCalls, executorCalls atomic.Int32
}

func newFakePlatform(devices int) *fakePlatform {
	return &fakePlatform{id: fmt.Sprintf("fake-%d-devices", devices), devices: devices}
}

func (p *fakePlatform) Name() string { return PlatformName }
func (p *fakePlatform) ID() string   { return p.id }
func (p *fakePlatform) VisibleDeviceCount() int {
	p.deviceCountCalls.Inc()
	return p.devices
}
func (p *fakePlatform) ExecutorForDevice(ordinal int) (platform.StreamExecutor, error) {
	p.executorCalls.Inc()
	if p.executorErr != nil {
		return nil, p.executorErr
	}
	if p.foreignExecutor {
		return &fakeExecutor{platform: &fakePlatform{id: "foreign", devices: 1}, ordinal: ordinal}, nil
	}
	return &fakeExecutor{platform: p, ordinal: ordinal}, nil
}

type fakeExecutor struct {
	platform platform.Platform
	ordinal  int
}

func (e *fakeExecutor) DeviceOrdinal() int            { return e.ordinal }
func (e *fakeExecutor) Platform() platform.Platform   { return e.platform }
func (e *fakeExecutor) SynchronizeAllActivity() error { return nil }
func (e *fakeExecutor) Description() string           { return fmt.Sprintf("fake device #%d", e.ordinal) }

// spyResolver records the platform names requested, and returns either the platform or the error.
type spyResolver struct {
	platform platform.Platform
	err      error
	requests []string
}

func (r *spyResolver) GetPlatform(name string) (platform.Platform, error) {
	r.requests = append(r.requests, name)
	if r.err != nil {
		return nil, r.err
	}
	return r.platform, nil
}

// countingFactory wraps a localclient.Library, counting the requests and the creations of new clients.
type countingFactory struct {
	library   *localclient.Library
	err       error
	requests  int
	creations int
}

func newCountingFactory() *countingFactory {
	return &countingFactory{library: localclient.NewLibrary()}
}

func (f *countingFactory) GetOrCreateLocalClient(options localclient.Options) (*localclient.Client, error) {
	f.requests++
	if f.err != nil {
		return nil, f.err
	}
	before := f.library.Len()
	c, err := f.library.GetOrCreateLocalClient(options)
	if f.library.Len() > before {
		f.creations++
	}
	return c, err
}

// newTestBootstrapper returns a bootstrapper with a fake platform with the given number of devices.
func newTestBootstrapper(devices int) (*Bootstrapper, *fakePlatform, *spyResolver, *countingFactory) {
	p := newFakePlatform(devices)
	resolver := &spyResolver{platform: p}
	factory := newCountingFactory()
	return &Bootstrapper{Platforms: resolver, Clients: factory}, p, resolver, factory
}

// getClient bootstraps a client with the default collaborators, and destroys it at the end of the test.
func getClient(t *testing.T) *pjrt.Client {
	client := capture(GetClient()).Test(t)
	t.Cleanup(func() { must.M(client.Destroy()) })
	if *flagVerboseClient {
		fmt.Printf("%s:\n%s", client, client.Attributes())
	}
	return client
}
