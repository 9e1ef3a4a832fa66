package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/san-kum/countlabel/internal/clock"
	"github.com/san-kum/countlabel/internal/config"
	"github.com/san-kum/countlabel/internal/easing"
	"github.com/san-kum/countlabel/internal/label"
)

const (
	historyCapacity = 48
	barWidth        = 24

	barFrequency = 6.0
	barDamping   = 1.0
)

// FrameMsg is delivered once per display refresh.
type FrameMsg time.Time

// counter is one label on screen plus its host-side bookkeeping. The bar
// follows the shown value on a spring instead of jumping with it.
type counter struct {
	lbl     *label.Label
	history []float64
	target  float64
	done    bool
	bar     float64
	barVel  float64
}

// Model is the Bubble Tea model hosting the configured labels. It owns the
// frame clock driver; every FrameMsg pumps one frame.
type Model struct {
	cfg      *config.Config
	driver   *clock.Driver
	counters []*counter
	selected int
	interval time.Duration
	spring   harmonica.Spring
	theme    Theme
	styles   palette
	status   string
	showHelp bool
	logger   *log.Logger
}

type Option func(*Model)

// WithSource replaces the wall clock, letting tests step time by hand.
func WithSource(src clock.Source) Option {
	return func(m *Model) { m.driver = clock.NewDriver(src) }
}

func WithLogger(logger *log.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// NewModel builds one label per configured entry.
func NewModel(cfg *config.Config, opts ...Option) *Model {
	m := &Model{
		cfg:      cfg,
		interval: clock.Interval(cfg.FPS),
		spring:   harmonica.NewSpring(harmonica.FPS(cfg.FPS), barFrequency, barDamping),
		theme:    GetTheme(cfg.Theme),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.driver == nil {
		m.driver = clock.NewDriver(clock.System{})
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	m.styles = newPalette(m.theme)

	for _, lc := range cfg.Labels {
		c := &counter{target: cfg.To}
		c.lbl = label.New(m.driver,
			label.WithName(lc.Name),
			label.WithMethod(lc.Method),
			label.WithPrecision(lc.Precision),
			label.WithSuffix(lc.Suffix),
			label.WithLogger(m.logger),
			label.WithObserver(label.ObserverFunc(c.observe)),
		)
		m.counters = append(m.counters, c)
	}
	return m
}

func (c *counter) observe(f label.Frame) {
	c.history = append(c.history, f.Value)
	if len(c.history) > historyCapacity {
		c.history = c.history[1:]
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	m.restart()
	return m.tick()
}

// Update handles input events and pumps the frame clock.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "r":
			m.restart()
		case "s":
			m.stop()
		case "b":
			m.bounce()
		case "tab":
			m.selected = (m.selected + 1) % len(m.counters)
		case "e":
			m.cycleMethod()
		case "p":
			lbl := m.counters[m.selected].lbl
			lbl.SetPrecision(lbl.Precision().Next())
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newPalette(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case FrameMsg:
		m.driver.Frame()
		for _, c := range m.counters {
			c.bar, c.barVel = m.spring.Update(c.bar, c.barVel, m.fraction(c.lbl.Shown()))
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) restart() {
	m.status = fmt.Sprintf("counting %g → %g", m.cfg.From, m.cfg.To)
	for _, c := range m.counters {
		c.history = c.history[:0]
		c.target = m.cfg.To
		m.animate(c, func(lbl *label.Label, done func()) {
			lbl.Animate(m.cfg.From, m.cfg.To, m.cfg.Duration, done)
		})
	}
}

func (m *Model) stop() {
	stopped := 0
	for _, c := range m.counters {
		if c.lbl.Running() {
			c.lbl.Stop()
			stopped++
		}
	}
	m.status = fmt.Sprintf("stopped %d label(s)", stopped)
	m.logger.Info("stop", "stopped", stopped)
}

// bounce counts every label from where it is to the opposite end.
func (m *Model) bounce() {
	m.status = "bounce"
	for _, c := range m.counters {
		if c.target == m.cfg.To {
			c.target = m.cfg.From
		} else {
			c.target = m.cfg.To
		}
		target := c.target
		m.animate(c, func(lbl *label.Label, done func()) {
			lbl.AnimateFromCurrent(target, m.cfg.Duration, done)
		})
	}
}

func (m *Model) animate(c *counter, start func(*label.Label, func())) {
	c.done = false
	start(c.lbl, func() {
		c.done = true
		m.logger.Info("complete", "label", c.lbl.Name(), "text", c.lbl.Text())
		if m.allDone() {
			m.status = "done"
		}
	})
}

// fraction places v on the configured from..to range.
func (m *Model) fraction(v float64) float64 {
	span := m.cfg.To - m.cfg.From
	if span == 0 {
		return 1
	}
	return (v - m.cfg.From) / span
}

func (m *Model) cycleMethod() {
	lbl := m.counters[m.selected].lbl
	methods := easing.Methods()
	lbl.SetMethod(methods[(int(lbl.Method())+1)%len(methods)])
}

func (m *Model) allDone() bool {
	for _, c := range m.counters {
		if !c.done {
			return false
		}
	}
	return true
}

// View renders the TUI interface.
func (m *Model) View() string {
	st := m.styles
	var s strings.Builder
	s.WriteString(st.header.Render("COUNTLABEL") + "\n")
	s.WriteString(st.muted.Render(m.status) + "\n\n")

	for i, c := range m.counters {
		nameStyle := st.name
		marker := "  "
		if i == m.selected {
			nameStyle = st.selected
			marker = "> "
		}

		state := st.stopped.Render("STOPPED")
		switch {
		case c.lbl.Running():
			state = st.running.Render("RUNNING")
		case c.done:
			state = st.done.Render("DONE")
		}

		row := lipgloss.JoinHorizontal(lipgloss.Center,
			marker,
			nameStyle.Render(c.lbl.Name()),
			st.value.Render(c.lbl.Text()),
			"  ",
			st.progressBar(c.bar, barWidth),
			"  ",
			st.sparkline(c.history, historyCapacity/2),
			"  ",
			state,
		)
		s.WriteString(row + "\n")
		s.WriteString("  " + st.muted.Render(fmt.Sprintf("%-10s precision %s", c.lbl.Method(), c.lbl.Precision())) + "\n\n")
	}

	s.WriteString(st.muted.Render("SP:Restart S:Stop B:Bounce TAB:Select E:Easing P:Precision T:Theme ?:Help Q:Quit"))
	main := st.panel.Render(s.String())
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Restart every label      ║
║  S        - Stop every label         ║
║  B        - Bounce to the other end  ║
║  Tab      - Select next label        ║
║  E        - Cycle easing method      ║
║  P        - Cycle precision          ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + main
	}
	return main
}

// Labels exposes the hosted labels in configuration order.
func (m *Model) Labels() []*label.Label {
	labels := make([]*label.Label, len(m.counters))
	for i, c := range m.counters {
		labels[i] = c.lbl
	}
	return labels
}

// Bars returns the sprung progress bar position of every label.
func (m *Model) Bars() []float64 {
	bars := make([]float64, len(m.counters))
	for i, c := range m.counters {
		bars[i] = c.bar
	}
	return bars
}

func (m *Model) Status() string { return m.status }

func (m *Model) Theme() Theme { return m.theme }

// Run starts the interactive program and blocks until it exits.
func Run(cfg *config.Config, opts ...Option) error {
	_, err := tea.NewProgram(NewModel(cfg, opts...), tea.WithAltScreen()).Run()
	return err
}
