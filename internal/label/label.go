// Package label implements a counting label: a text label whose number
// animates from a start value to a destination over a fixed duration.
//
// The label is host-agnostic. It needs a [clock.FrameClock] to receive one
// callback per display refresh and, optionally, a [Surface] to publish its
// text to. Every frame it advances elapsed time, eases the progress,
// interpolates the value, formats it and publishes the text.
//
// # Example
//
//	drv := clock.NewDriver(clock.System{})
//	lbl := label.New(drv, label.WithMethod(easing.EaseOut))
//	lbl.Animate(0, 100, 2*time.Second, func() { fmt.Println("done") })
//	// host loop: drv.Frame() once per refresh, render lbl.Text()
//
// # Thread Safety
//
// Label is NOT thread-safe. All calls, including frame callbacks, must come
// from the goroutine that pumps the clock.
package label

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/countlabel/internal/clock"
	"github.com/san-kum/countlabel/internal/easing"
	"github.com/san-kum/countlabel/internal/format"
)

// DefaultDuration is used by AnimateTo unless overridden with WithDefaultDuration.
const DefaultDuration = 10 * time.Second

// DefaultMethod is the easing curve of a label built without WithMethod.
const DefaultMethod = easing.EaseInOut

// Surface receives the label's text whenever it changes.
type Surface interface {
	SetText(text string)
}

// Frame describes one published update.
type Frame struct {
	Elapsed  time.Duration
	Total    time.Duration
	Progress float64
	Eased    float64
	Value    float64
	Text     string
}

// Observer is notified after every published frame.
type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Frame)

func (f ObserverFunc) OnFrame(fr Frame) { f(fr) }

type Label struct {
	name      string
	clock     clock.FrameClock
	surface   Surface
	observers []Observer
	logger    *log.Logger

	method          easing.Method
	precision       format.Precision
	formatter       format.Func
	suffix          string
	defaultDuration time.Duration

	from, to       float64
	elapsed, total time.Duration
	last           time.Time
	onComplete     func()
	handle         clock.Handle
	running        bool

	shown float64
	text  string
}

type Option func(*Label)

func WithName(name string) Option { return func(l *Label) { l.name = name } }

func WithSurface(s Surface) Option { return func(l *Label) { l.surface = s } }

func WithObserver(o Observer) Option {
	return func(l *Label) { l.observers = append(l.observers, o) }
}

func WithLogger(logger *log.Logger) Option { return func(l *Label) { l.logger = logger } }

func WithMethod(m easing.Method) Option { return func(l *Label) { l.method = m } }

func WithPrecision(p format.Precision) Option { return func(l *Label) { l.precision = p } }

func WithFormatter(f format.Func) Option { return func(l *Label) { l.formatter = f } }

// WithSuffix appends unit to the precision-formatted text, e.g. "42.0%".
func WithSuffix(unit string) Option { return func(l *Label) { l.suffix = unit } }

func WithDefaultDuration(d time.Duration) Option {
	return func(l *Label) { l.defaultDuration = d }
}

// New creates an idle label showing 0.
func New(c clock.FrameClock, opts ...Option) *Label {
	l := &Label{
		clock:           c,
		method:          DefaultMethod,
		precision:       format.Zero,
		defaultDuration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	if l.name != "" {
		l.logger = l.logger.With("label", l.name)
	}
	l.render(0)
	return l
}

// Animate counts from from to to over d. Any animation in flight is
// cancelled and its completion handler dropped. A non-positive d completes
// immediately: the text shows to and onComplete runs before Animate returns.
func (l *Label) Animate(from, to float64, d time.Duration, onComplete func()) {
	l.cancel()
	l.onComplete = nil
	l.from, l.to = from, to
	l.elapsed = 0

	if d <= 0 {
		l.total = 0
		l.logger.Debug("instant completion", "to", to, "duration", d)
		l.publish()
		if onComplete != nil {
			onComplete()
		}
		return
	}

	l.total = d
	l.onComplete = onComplete
	l.last = l.clock.Now()
	l.handle = l.clock.Register(l.update)
	l.running = true
	l.logger.Debug("animate", "from", from, "to", to, "duration", d, "method", l.method)
	l.publish()
}

// AnimateFromCurrent counts from the current interpolated value to to.
func (l *Label) AnimateFromCurrent(to float64, d time.Duration, onComplete func()) {
	l.Animate(l.Value(), to, d, onComplete)
}

// AnimateTo counts from the current value to to over the default duration.
func (l *Label) AnimateTo(to float64, onComplete func()) {
	l.AnimateFromCurrent(to, l.defaultDuration, onComplete)
}

// Stop cancels the animation in flight. The text keeps its last published
// value and the completion handler is not called. Stop on an idle label
// does nothing.
func (l *Label) Stop() {
	if !l.running {
		return
	}
	l.cancel()
	l.elapsed = l.total
	l.onComplete = nil
	l.logger.Debug("stopped", "shown", l.shown)
}

func (l *Label) update() {
	now := l.clock.Now()
	if dt := now.Sub(l.last); dt > 0 {
		l.elapsed += dt
	}
	l.last = now

	if l.elapsed >= l.total {
		l.elapsed = l.total
		l.cancel()
	}

	l.publish()

	if l.elapsed == l.total {
		done := l.onComplete
		l.onComplete = nil
		if done != nil {
			l.logger.Debug("complete", "to", l.to)
			done()
		}
	}
}

func (l *Label) cancel() {
	if !l.running {
		return
	}
	l.clock.Cancel(l.handle)
	l.handle = 0
	l.running = false
}

func (l *Label) publish() {
	progress := l.Progress()
	eased := l.method.Apply(progress)
	v := l.to
	if progress < 1 {
		v = l.from + eased*(l.to-l.from)
	}
	l.render(v)

	if len(l.observers) == 0 {
		return
	}
	fr := Frame{
		Elapsed:  l.elapsed,
		Total:    l.total,
		Progress: progress,
		Eased:    eased,
		Value:    v,
		Text:     l.text,
	}
	for _, o := range l.observers {
		o.OnFrame(fr)
	}
}

func (l *Label) render(v float64) {
	l.shown = v
	if l.formatter != nil {
		l.text = l.formatter(v)
	} else {
		l.text = l.precision.Format(v) + l.suffix
	}
	if l.surface != nil {
		l.surface.SetText(l.text)
	}
}

// Progress returns elapsed/total in [0, 1]. A finished or instant animation
// reports 1.
func (l *Label) Progress() float64 {
	if l.total <= 0 || l.elapsed >= l.total {
		return 1
	}
	return float64(l.elapsed) / float64(l.total)
}

// Value returns the interpolated value for the current progress. Once the
// animation has finished or been stopped this is the destination.
func (l *Label) Value() float64 {
	progress := l.Progress()
	if progress >= 1 {
		return l.to
	}
	return l.from + l.method.Apply(progress)*(l.to-l.from)
}

// Shown returns the value behind the current text.
func (l *Label) Shown() float64 { return l.shown }

func (l *Label) Text() string { return l.text }

func (l *Label) Running() bool { return l.running }

func (l *Label) Name() string { return l.name }

func (l *Label) Method() easing.Method { return l.method }

func (l *Label) Precision() format.Precision { return l.precision }

func (l *Label) Suffix() string { return l.suffix }

// SetMethod changes the easing curve. It takes effect on the next frame.
func (l *Label) SetMethod(m easing.Method) { l.method = m }

// SetPrecision changes the number of fractional digits and republishes the
// shown value.
func (l *Label) SetPrecision(p format.Precision) {
	l.precision = p
	l.render(l.shown)
}

// SetFormatter installs a custom formatter, overriding the precision and
// suffix. A nil f restores precision-based formatting.
func (l *Label) SetFormatter(f format.Func) {
	l.formatter = f
	l.render(l.shown)
}

func (l *Label) AddObserver(o Observer) { l.observers = append(l.observers, o) }
