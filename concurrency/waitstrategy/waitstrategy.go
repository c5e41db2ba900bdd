// Package waitstrategy implements the idle-loop policies that drive a
// Context's fused reactor / completion-queue poll (see concurrency.Context).
// Each Strategy is asked, once per poll tick, how many completions/tasks the
// tick just executed; it decides how hard to spin before the next tick.
package waitstrategy

import (
	"fmt"
	"runtime"
	"time"
)

// Strategy is the idle-loop policy contract. Idle is called once per poll
// tick with the number of completions/tasks that tick executed.
type Strategy interface {
	Idle(executedCount int)
}

// Mode names the five wait strategies a context can be configured with.
type Mode string

const (
	ModeBlocking Mode = "blocking"
	ModeYielding Mode = "yielding"
	ModeSleeping Mode = "sleeping"
	ModeSpinWait Mode = "spin_wait"
	ModeBusySpin Mode = "busy_spin"
)

// ParseMode maps a textual enum (as read from the --wait_mode CLI flag) to a
// Mode, defaulting to ModeBlocking on an empty string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeBlocking, nil
	case ModeBlocking, ModeYielding, ModeSleeping, ModeSpinWait, ModeBusySpin:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown wait mode %q", s)
	}
}

// New constructs the Strategy for mode. ModeBlocking has no in-reactor idle
// policy of its own (a dedicated goroutine blocks on the completion queue
// and posts completions into the reactor instead), so New returns a no-op
// busy-spin-shaped strategy for it: a caller that invokes Idle in blocking
// mode (as ContextPool.RunWorkers does) polls again without pausing.
func New(mode Mode) Strategy {
	switch mode {
	case ModeYielding:
		return newYielding()
	case ModeSleeping:
		return newSleeping()
	case ModeSpinWait:
		return newSpinWait()
	case ModeBusySpin:
		return busySpin{}
	default:
		return busySpin{}
	}
}

// busySpin never yields the thread; used for ModeBusySpin and as the
// fallback for ModeBlocking, which has no idle policy of its own.
type busySpin struct{}

func (busySpin) Idle(int) {}

// yielding counts down from 100 every time a tick executes nothing; once it
// reaches zero it yields the thread via runtime.Gosched and resets.
type yielding struct {
	counter int
}

const yieldingSpins = 100

func newYielding() *yielding { return &yielding{counter: yieldingSpins} }

func (y *yielding) Idle(executedCount int) {
	if executedCount > 0 {
		y.counter = yieldingSpins
		return
	}
	y.counter--
	if y.counter <= 0 {
		runtime.Gosched()
		y.counter = yieldingSpins
	}
}

// sleeping counts down from 200; below a spin threshold it yields, and once
// exhausted it hands off to the scheduler with a zero-duration sleep.
type sleeping struct {
	counter int
}

const (
	sleepingSpins     = 200
	sleepingSpinUntil = 100
)

func newSleeping() *sleeping { return &sleeping{counter: sleepingSpins} }

func (s *sleeping) Idle(executedCount int) {
	if executedCount > 0 {
		s.counter = sleepingSpins
		return
	}
	switch {
	case s.counter > sleepingSpinUntil:
		s.counter--
	case s.counter > 0:
		s.counter--
		runtime.Gosched()
	default:
		time.Sleep(0)
	}
}

// spinWait applies a progressive back-off: a tight pause loop for the first
// ticks, then yielding, then occasional short sleeps at a fixed cadence.
type spinWait struct {
	ticks uint64
}

const (
	spinWaitTightTicks = 10
	spinWaitYieldTicks = 20
)

func newSpinWait() *spinWait { return &spinWait{} }

func (w *spinWait) Idle(executedCount int) {
	if executedCount > 0 {
		w.ticks = 0
		return
	}
	w.ticks++
	switch {
	case w.ticks <= spinWaitTightTicks:
		for i := 0; i < 8; i++ {
			runtime.Gosched()
		}
	case w.ticks <= spinWaitYieldTicks:
		runtime.Gosched()
	case w.ticks%100 == 0:
		time.Sleep(time.Millisecond)
	default:
		time.Sleep(0)
	}
}
