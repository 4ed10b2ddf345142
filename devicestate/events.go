package devicestate

import (
	"sync"

	"github.com/pkg/errors"
)

// Event marks the completion of some work on the device, e.g.: a computation or a transfer.
//
// Events are created with LocalDeviceState.NewEvent, and should be given back with LocalDeviceState.ReturnEvent
// once no longer needed: if the device state allows event reuse they are recycled, otherwise they are dropped.
type Event struct {
	mu   sync.Mutex
	done chan struct{}
	err  error
	set  bool
}

func newEvent() *Event {
	return &Event{done: make(chan struct{})}
}

// SetDone marks the event as done, with the given error (nil for success).
// Only the first call has any effect: it returns false if the event was already done.
func (e *Event) SetDone(err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set {
		return false
	}
	e.set = true
	e.err = err
	close(e.done)
	return true
}

// IsDone returns whether the event has been marked as done.
func (e *Event) IsDone() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set
}

// Await blocks the calling goroutine until the event is done, then returns its error, if any.
func (e *Event) Await() error {
	if e == nil {
		return errors.New("Event is nil -- has it been returned already?")
	}
	<-e.done
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// reset the event so it can be reused. It must be done.
func (e *Event) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.done = make(chan struct{})
	e.err = nil
	e.set = false
}
