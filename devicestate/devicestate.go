// Package devicestate implements LocalDeviceState: the low-level state that binds one device's executor
// to a client, and defines its execution mode.
//
// The execution mode is given by the AllocationModel, the maximum number of computations in flight
// (enforced with an admission semaphore), whether events are reused and whether callbacks run on a
// separate callback stream (a dedicated goroutine) or inline.
package devicestate

import (
	"context"
	"fmt"
	"sync"

	"github.com/gomlx/interpreter/localclient"
	"github.com/gomlx/interpreter/platform"
	"github.com/gomlx/interpreter/status"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"
	"k8s.io/klog/v2"
)

// Options to configure a LocalDeviceState.
type Options struct {
	AllocationModel AllocationModel

	// MaxInflightComputations is the maximum number of computations admitted to run on the device at the
	// same time. Must be >= 1.
	MaxInflightComputations int

	// AllowEventReuse enables recycling events returned with LocalDeviceState.ReturnEvent.
	AllowEventReuse bool

	// UseCallbackStream runs callbacks (see ThenExecuteCallback) in order on a dedicated goroutine,
	// instead of inline on the caller.
	UseCallbackStream bool
}

// LocalDeviceState owned by a device.
type LocalDeviceState struct {
	executor platform.StreamExecutor
	client   *localclient.Client
	options  Options

	computeSemaphore *semaphore.Weighted
	inFlight         atomic.Int32
	numEvents        atomic.Int64 // Number of events created (not recycled).

	muEvents   sync.Mutex
	eventsPool []*Event

	// muClose protects the callbacks channel from being closed while in use.
	muClose       sync.RWMutex
	callbacks     chan func()
	callbacksDone chan struct{}
	closed        atomic.Bool
}

// New creates the LocalDeviceState for the executor, which must belong to the client's platform.
func New(executor platform.StreamExecutor, client *localclient.Client, options Options) (*LocalDeviceState, error) {
	if executor == nil {
		return nil, status.Errorf(status.CodeInvalidArgument, "devicestate.New requires an executor")
	}
	if client == nil {
		return nil, status.Errorf(status.CodeInvalidArgument, "devicestate.New requires a client")
	}
	if !options.AllocationModel.IsAAllocationModel() {
		return nil, status.Errorf(status.CodeInvalidArgument, "invalid allocation model %s", options.AllocationModel)
	}
	if options.MaxInflightComputations < 1 {
		return nil, status.Errorf(status.CodeInvalidArgument,
			"MaxInflightComputations must be >= 1, got %d", options.MaxInflightComputations)
	}
	if executor.Platform() == nil || executor.Platform().ID() != client.Platform().ID() {
		return nil, status.Errorf(status.CodeFailedPrecondition,
			"executor for device #%d doesn't belong to the client's platform %q", executor.DeviceOrdinal(), client.Platform().Name())
	}
	s := &LocalDeviceState{
		executor:         executor,
		client:           client,
		options:          options,
		computeSemaphore: semaphore.NewWeighted(int64(options.MaxInflightComputations)),
	}
	if options.UseCallbackStream {
		s.callbacks = make(chan func(), 64)
		s.callbacksDone = make(chan struct{})
		go s.callbackLoop()
	}
	klog.V(1).Infof("created %s", s)
	return s, nil
}

// Executor bound to the device.
func (s *LocalDeviceState) Executor() platform.StreamExecutor { return s.executor }

// Client that owns the executor.
func (s *LocalDeviceState) Client() *localclient.Client { return s.client }

// DeviceOrdinal of the executor.
func (s *LocalDeviceState) DeviceOrdinal() int { return s.executor.DeviceOrdinal() }

// AllocationModel of the device.
func (s *LocalDeviceState) AllocationModel() AllocationModel { return s.options.AllocationModel }

// MaxInflightComputations returns the maximum number of computations admitted at the same time.
func (s *LocalDeviceState) MaxInflightComputations() int { return s.options.MaxInflightComputations }

// AllowEventReuse returns whether events are recycled.
func (s *LocalDeviceState) AllowEventReuse() bool { return s.options.AllowEventReuse }

// UseCallbackStream returns whether callbacks run on a dedicated callback stream.
func (s *LocalDeviceState) UseCallbackStream() bool { return s.options.UseCallbackStream }

// InFlight returns the number of computations currently admitted.
func (s *LocalDeviceState) InFlight() int { return int(s.inFlight.Load()) }

// String implements fmt.Stringer.
func (s *LocalDeviceState) String() string {
	return fmt.Sprintf("LocalDeviceState[device=#%d, model=%s, max_inflight=%d, event_reuse=%v, callback_stream=%v]",
		s.DeviceOrdinal(), s.options.AllocationModel, s.options.MaxInflightComputations,
		s.options.AllowEventReuse, s.options.UseCallbackStream)
}

// AcquireComputeSlot blocks until the device admits one more computation, or until ctx is done.
//
// The returned release function must be called exactly once, when the computation finishes.
func (s *LocalDeviceState) AcquireComputeSlot(ctx context.Context) (release func(), err error) {
	if s.closed.Load() {
		return nil, status.Errorf(status.CodeFailedPrecondition, "%s already closed", s)
	}
	if err = s.computeSemaphore.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrapf(err, "waiting for a compute slot on device #%d", s.DeviceOrdinal())
	}
	s.inFlight.Inc()
	var once sync.Once
	release = func() {
		once.Do(func() {
			s.inFlight.Dec()
			s.computeSemaphore.Release(1)
		})
	}
	return release, nil
}

// Execute runs fn as one computation on the device: it waits for a compute slot, runs fn on the
// calling goroutine and releases the slot.
func (s *LocalDeviceState) Execute(ctx context.Context, fn func() error) error {
	release, err := s.AcquireComputeSlot(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

// NewEvent returns an event not yet done: a recycled one if event reuse is allowed and one is available.
func (s *LocalDeviceState) NewEvent() *Event {
	if s.options.AllowEventReuse {
		s.muEvents.Lock()
		if n := len(s.eventsPool); n > 0 {
			e := s.eventsPool[n-1]
			s.eventsPool = s.eventsPool[:n-1]
			s.muEvents.Unlock()
			return e
		}
		s.muEvents.Unlock()
	}
	s.numEvents.Inc()
	return newEvent()
}

// ReturnEvent gives the event back to the device state. Events that are not done are never recycled.
func (s *LocalDeviceState) ReturnEvent(e *Event) {
	if e == nil || !s.options.AllowEventReuse || !e.IsDone() {
		return
	}
	e.reset()
	s.muEvents.Lock()
	defer s.muEvents.Unlock()
	s.eventsPool = append(s.eventsPool, e)
}

// NumEventsCreated returns how many events were allocated, not counting recycled ones.
func (s *LocalDeviceState) NumEventsCreated() int64 {
	return s.numEvents.Load()
}

// ThenExecuteCallback schedules fn to run after the work already enqueued on the device.
//
// Without a callback stream fn runs inline, since all work is synchronous.
func (s *LocalDeviceState) ThenExecuteCallback(fn func()) error {
	s.muClose.RLock()
	if s.closed.Load() {
		s.muClose.RUnlock()
		return status.Errorf(status.CodeFailedPrecondition, "%s already closed", s)
	}
	if !s.options.UseCallbackStream {
		s.muClose.RUnlock()
		fn()
		return nil
	}
	s.callbacks <- fn
	s.muClose.RUnlock()
	return nil
}

func (s *LocalDeviceState) callbackLoop() {
	defer close(s.callbacksDone)
	for fn := range s.callbacks {
		fn()
	}
}

// SynchronizeAllActivity blocks until all pending callbacks and executor activity are done, or until ctx is done.
//
// With a callback stream it must not be called with a context without deadline from within a callback:
// the callback would wait on itself.
func (s *LocalDeviceState) SynchronizeAllActivity(ctx context.Context) error {
	if s.options.UseCallbackStream {
		s.muClose.RLock()
		if !s.closed.Load() {
			barrier := make(chan struct{})
			select {
			case s.callbacks <- func() { close(barrier) }:
				s.muClose.RUnlock()
			case <-ctx.Done():
				s.muClose.RUnlock()
				return errors.WithMessagef(ctx.Err(), "scheduling synchronization of device #%d", s.DeviceOrdinal())
			}
			select {
			case <-barrier:
			case <-ctx.Done():
				return errors.WithMessagef(ctx.Err(), "waiting for callbacks of device #%d", s.DeviceOrdinal())
			}
		} else {
			s.muClose.RUnlock()
		}
	}
	if err := s.executor.SynchronizeAllActivity(); err != nil {
		return errors.WithMessagef(err, "synchronizing device #%d", s.DeviceOrdinal())
	}
	return nil
}

// Close releases the device state: callbacks already scheduled are run before it returns.
// It's safe to call it more than once.
func (s *LocalDeviceState) Close() error {
	s.muClose.Lock()
	if s.closed.Load() {
		s.muClose.Unlock()
		return nil
	}
	s.closed.Store(true)
	if s.options.UseCallbackStream {
		close(s.callbacks)
	}
	s.muClose.Unlock()
	if s.options.UseCallbackStream {
		<-s.callbacksDone
	}

	s.muEvents.Lock()
	s.eventsPool = nil
	s.muEvents.Unlock()
	if err := s.executor.SynchronizeAllActivity(); err != nil {
		return errors.WithMessagef(err, "synchronizing device #%d while closing", s.DeviceOrdinal())
	}
	return nil
}

// IsClosed returns whether Close was called.
func (s *LocalDeviceState) IsClosed() bool {
	return s.closed.Load()
}
