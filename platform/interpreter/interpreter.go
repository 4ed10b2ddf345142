// Package interpreter implements the "Interpreter" platform: a reference, in-process platform with exactly
// one device, whose executor runs everything synchronously on the calling goroutine.
//
// It registers itself in the default platform registry when imported:
//
//	import _ "github.com/gomlx/interpreter/platform/interpreter"
package interpreter

import (
	"fmt"
	"sync"

	"github.com/gomlx/interpreter/platform"
	"github.com/gomlx/interpreter/status"
	"k8s.io/klog/v2"
)

const (
	// Name of the platform, as registered.
	Name = "Interpreter"

	// ID of the platform.
	ID = "interpreter"
)

func init() {
	if err := platform.Register(New()); err != nil {
		klog.Fatalf("Failed to register the %q platform: %+v", Name, err)
	}
}

// Platform implements platform.Platform for the interpreter.
type Platform struct {
	executorOnce sync.Once
	executor     *Executor
}

var _ platform.Platform = (*Platform)(nil)

// New returns a new interpreter Platform.
// Usually one doesn't need to call this, instead use platform.GetPlatform(interpreter.Name).
func New() *Platform {
	return &Platform{}
}

// Name implements platform.Platform.
func (p *Platform) Name() string { return Name }

// ID implements platform.Platform.
func (p *Platform) ID() string { return ID }

// VisibleDeviceCount implements platform.Platform. The interpreter has always one device.
func (p *Platform) VisibleDeviceCount() int { return 1 }

// ExecutorForDevice implements platform.Platform. Only ordinal 0 is valid.
func (p *Platform) ExecutorForDevice(ordinal int) (platform.StreamExecutor, error) {
	if ordinal != 0 {
		return nil, status.Errorf(status.CodeInvalidArgument,
			"platform %q has only 1 device, invalid device ordinal %d", Name, ordinal)
	}
	p.executorOnce.Do(func() {
		p.executor = &Executor{platform: p}
	})
	return p.executor, nil
}

// String implements fmt.Stringer.
func (p *Platform) String() string {
	return fmt.Sprintf("Platform[%s]", Name)
}

// Executor is the synchronous executor of the interpreter device: there is never pending activity.
type Executor struct {
	platform *Platform
}

var _ platform.StreamExecutor = (*Executor)(nil)

// DeviceOrdinal implements platform.StreamExecutor.
func (e *Executor) DeviceOrdinal() int { return 0 }

// Platform implements platform.StreamExecutor.
func (e *Executor) Platform() platform.Platform { return e.platform }

// SynchronizeAllActivity implements platform.StreamExecutor. It's a no-op, since all work is synchronous.
func (e *Executor) SynchronizeAllActivity() error { return nil }

// Description implements platform.StreamExecutor.
func (e *Executor) Description() string {
	return "Interpreter device #0 (synchronous)"
}
