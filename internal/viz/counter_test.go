package viz_test

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/countlabel/internal/clock"
	"github.com/san-kum/countlabel/internal/config"
	"github.com/san-kum/countlabel/internal/easing"
	"github.com/san-kum/countlabel/internal/format"
	"github.com/san-kum/countlabel/internal/viz"
)

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var _ = Describe("Model", func() {
	var (
		fake *clock.Fake
		cfg  *config.Config
		m    *viz.Model
	)

	frame := func(d time.Duration) {
		fake.Advance(d)
		_, cmd := m.Update(viz.FrameMsg(fake.Now()))
		Expect(cmd).NotTo(BeNil())
	}

	BeforeEach(func() {
		fake = clock.NewFake(time.Unix(1700000000, 0))
		cfg = config.DefaultConfig()
		cfg.Duration = time.Second
		m = viz.NewModel(cfg, viz.WithSource(fake), viz.WithLogger(log.New(io.Discard)))
		Expect(m.Init()).NotTo(BeNil())
	})

	It("builds one label per configured entry", func() {
		labels := m.Labels()
		Expect(labels).To(HaveLen(len(easing.Methods())))
		for i, lbl := range labels {
			Expect(lbl.Method()).To(Equal(easing.Methods()[i]))
			Expect(lbl.Running()).To(BeTrue())
			Expect(lbl.Text()).To(Equal("0"))
		}
	})

	It("advances every label on each frame", func() {
		frame(400 * time.Millisecond)
		texts := []string{}
		for _, lbl := range m.Labels() {
			texts = append(texts, lbl.Text())
		}
		Expect(texts).To(Equal([]string{"40", "6", "78", "26"}))
	})

	It("reports done once every label completes", func() {
		frame(time.Second)
		Expect(m.Status()).To(Equal("done"))
		for _, lbl := range m.Labels() {
			Expect(lbl.Running()).To(BeFalse())
			Expect(lbl.Text()).To(Equal("100"))
		}
		Expect(m.View()).To(ContainSubstring("DONE"))
	})

	It("stops every label in place", func() {
		frame(250 * time.Millisecond)
		m.Update(key("s"))
		frame(time.Second)

		Expect(m.Status()).To(Equal("stopped 4 label(s)"))
		Expect(m.Labels()[0].Text()).To(Equal("25"))
		Expect(m.View()).To(ContainSubstring("STOPPED"))
	})

	It("bounces from the current value back to the start", func() {
		frame(500 * time.Millisecond)
		m.Update(key("b"))
		frame(500 * time.Millisecond)

		Expect(m.Labels()[0].Text()).To(Equal("25"))
		frame(500 * time.Millisecond)
		Expect(m.Labels()[0].Text()).To(Equal("0"))
	})

	It("restarts from the configured start", func() {
		frame(time.Second)
		m.Update(key(" "))
		Expect(m.Labels()[0].Running()).To(BeTrue())
		Expect(m.Labels()[0].Text()).To(Equal("0"))
	})

	It("cycles precision and easing of the selected label", func() {
		m.Update(key("tab"))
		m.Update(key("p"))
		Expect(m.Labels()[1].Precision()).To(Equal(format.One))
		Expect(m.Labels()[1].Text()).To(Equal("0.0"))
		Expect(m.Labels()[0].Precision()).To(Equal(format.Zero))

		m.Update(key("e"))
		Expect(m.Labels()[1].Method()).To(Equal(easing.EaseOut))
	})

	It("cycles themes and toggles help", func() {
		Expect(m.Theme().Name).To(Equal("cyberpunk"))
		m.Update(key("t"))
		Expect(m.Theme().Name).To(Equal("retro"))

		m.Update(key("?"))
		Expect(m.View()).To(ContainSubstring("KEYBOARD SHORTCUTS"))
	})

	It("quits on q", func() {
		_, cmd := m.Update(key("q"))
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(tea.Quit()))
	})

	It("eases the progress bar toward the shown value", func() {
		frame(400 * time.Millisecond)
		Expect(m.Bars()[0]).To(BeNumerically(">", 0))
		Expect(m.Bars()[0]).To(BeNumerically("<", 0.4))

		for i := 0; i < 120; i++ {
			frame(time.Second / 60)
		}
		for _, bar := range m.Bars() {
			Expect(bar).To(BeNumerically("~", 1, 0.01))
		}
	})

	Context("with a suffixed preset", func() {
		BeforeEach(func() {
			m = viz.NewModel(config.GetPreset("percent"), viz.WithSource(fake), viz.WithLogger(log.New(io.Discard)))
			m.Init()
		})

		It("re-renders the suffix in the new precision", func() {
			frame(750 * time.Millisecond)
			Expect(m.Labels()[0].Text()).To(Equal("50.0%"))

			m.Update(key("p"))
			Expect(m.Labels()[0].Precision()).To(Equal(format.Two))
			Expect(m.Labels()[0].Text()).To(Equal("50.00%"))
			Expect(m.View()).To(ContainSubstring("50.00%"))
		})
	})

	Context("with an instant preset", func() {
		BeforeEach(func() {
			m = viz.NewModel(config.GetPreset("instant"), viz.WithSource(fake), viz.WithLogger(log.New(io.Discard)))
			m.Init()
		})

		It("completes without any frame", func() {
			Expect(m.Status()).To(Equal("done"))
			Expect(m.Labels()[0].Text()).To(Equal("42.000000"))
			Expect(m.Labels()[0].Running()).To(BeFalse())
		})
	})
})
