// Package clock provides the frame clock that drives label animations.
//
// A host owns a [Driver] and calls [Driver.Frame] once per display refresh.
// Components register a callback with the driver and cancel it when they no
// longer need frames. Time comes from a [Source]: [System] in production,
// [Fake] in tests and offline traces.
//
// # Thread Safety
//
// Driver is NOT safe for concurrent use. Register, Cancel and Frame are
// expected to run on the host's UI goroutine.
package clock

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

// DefaultFPS is the refresh rate used when a host does not specify one.
const DefaultFPS = 60

// Handle identifies a registered frame callback. The zero Handle is never
// issued.
type Handle uint64

// FrameClock is the capability a label needs from its host.
type FrameClock interface {
	// Register schedules fn to run once per frame until cancelled.
	Register(fn func()) Handle
	// Cancel removes a registration. Unknown handles are ignored.
	Cancel(h Handle)
	// Now returns the current monotonic time.
	Now() time.Time
}

// Source provides time.
type Source interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fake is a manually advanced time source.
type Fake struct {
	now time.Time
}

// NewFake returns a Fake positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time { return f.now }

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) { f.now = f.now.Add(d) }

// Interval returns the frame period for fps frames per second. Non-positive
// rates fall back to DefaultFPS.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Duration(harmonica.FPS(fps) * float64(time.Second))
}
