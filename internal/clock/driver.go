package clock

import "time"

var _ FrameClock = (*Driver)(nil)

// Driver is a FrameClock pumped by its host. Callbacks run in registration
// order. A callback cancelled during a frame does not run later in that
// frame, and a callback registered during a frame first runs on the next.
type Driver struct {
	source  Source
	live    map[Handle]func()
	order   []Handle
	next    Handle
	frames  int
	cancels int
}

// NewDriver returns a driver reading time from src. A nil src uses System.
func NewDriver(src Source) *Driver {
	if src == nil {
		src = System{}
	}
	return &Driver{
		source: src,
		live:   make(map[Handle]func()),
	}
}

func (d *Driver) Register(fn func()) Handle {
	d.next++
	h := d.next
	d.live[h] = fn
	d.order = append(d.order, h)
	return h
}

func (d *Driver) Cancel(h Handle) {
	if _, ok := d.live[h]; !ok {
		return
	}
	delete(d.live, h)
	for i, o := range d.order {
		if o == h {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.cancels++
}

func (d *Driver) Now() time.Time { return d.source.Now() }

// Frame runs every live callback once.
func (d *Driver) Frame() {
	d.frames++
	if len(d.order) == 0 {
		return
	}
	snapshot := make([]Handle, len(d.order))
	copy(snapshot, d.order)
	for _, h := range snapshot {
		if fn, ok := d.live[h]; ok && fn != nil {
			fn()
		}
	}
}

// Active reports the number of live registrations.
func (d *Driver) Active() int { return len(d.live) }

// Cancels reports how many registrations have been cancelled.
func (d *Driver) Cancels() int { return d.cancels }

// Frames reports how many times Frame has been called.
func (d *Driver) Frames() int { return d.frames }
