package label_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/countlabel/internal/clock"
	"github.com/san-kum/countlabel/internal/easing"
	"github.com/san-kum/countlabel/internal/format"
	"github.com/san-kum/countlabel/internal/label"
)

type textSink struct {
	texts []string
}

func (s *textSink) SetText(text string) { s.texts = append(s.texts, text) }

var _ = Describe("Label", func() {
	var (
		fake *clock.Fake
		drv  *clock.Driver
		sink *textSink
		lbl  *label.Label
	)

	step := func(d time.Duration) {
		fake.Advance(d)
		drv.Frame()
	}

	BeforeEach(func() {
		fake = clock.NewFake(time.Unix(1700000000, 0))
		drv = clock.NewDriver(fake)
		sink = &textSink{}
		lbl = label.New(drv, label.WithSurface(sink), label.WithMethod(easing.Linear))
	})

	It("defaults to easeInOut with a ten second AnimateTo", func() {
		lbl = label.New(drv)
		Expect(lbl.Method()).To(Equal(easing.EaseInOut))

		lbl.AnimateTo(100, nil)
		step(5 * time.Second)
		Expect(lbl.Text()).To(Equal("50"))
		step(5 * time.Second)
		Expect(lbl.Text()).To(Equal("100"))
		Expect(lbl.Running()).To(BeFalse())
	})

	It("starts idle showing zero", func() {
		Expect(lbl.Text()).To(Equal("0"))
		Expect(lbl.Running()).To(BeFalse())
		Expect(sink.texts).To(Equal([]string{"0"}))
	})

	Context("with a zero duration", func() {
		It("publishes the destination and completes before returning", func() {
			completed := 0
			lbl.Animate(0, 100, 0, func() {
				completed++
				Expect(lbl.Text()).To(Equal("100"))
			})

			Expect(completed).To(Equal(1))
			Expect(lbl.Text()).To(Equal("100"))
			Expect(lbl.Running()).To(BeFalse())
			Expect(drv.Active()).To(BeZero())
		})

		It("treats a negative duration as instant completion", func() {
			completed := false
			lbl.Animate(5, -3, -time.Second, func() { completed = true })

			Expect(completed).To(BeTrue())
			Expect(lbl.Text()).To(Equal("-3"))
			Expect(lbl.Progress()).To(Equal(1.0))
			Expect(drv.Active()).To(BeZero())
		})
	})

	Context("while running", func() {
		It("registers exactly one frame callback", func() {
			lbl.Animate(0, 100, time.Second, nil)
			Expect(lbl.Running()).To(BeTrue())
			Expect(drv.Active()).To(Equal(1))
			Expect(lbl.Text()).To(Equal("0"))
		})

		It("interpolates linearly by default", func() {
			lbl.Animate(0, 100, time.Second, nil)
			step(250 * time.Millisecond)
			Expect(lbl.Text()).To(Equal("25"))
			step(250 * time.Millisecond)
			Expect(lbl.Text()).To(Equal("50"))
			Expect(lbl.Value()).To(BeNumerically("~", 50, 1e-9))
		})

		It("applies the configured easing method", func() {
			lbl.SetMethod(easing.EaseIn)
			lbl.Animate(0, 1000, time.Second, nil)
			step(500 * time.Millisecond)
			Expect(lbl.Text()).To(Equal("125"))

			lbl.Animate(0, 1000, time.Second, nil)
			lbl.SetMethod(easing.EaseOut)
			step(500 * time.Millisecond)
			Expect(lbl.Text()).To(Equal("875"))
		})

		It("counts downwards", func() {
			lbl.Animate(100, 0, time.Second, nil)
			step(750 * time.Millisecond)
			Expect(lbl.Text()).To(Equal("25"))
		})
	})

	Context("on completion", func() {
		It("clamps overshoot, deregisters and fires the handler once", func() {
			completed := 0
			lbl.Animate(0, 100, time.Second, func() { completed++ })

			step(600 * time.Millisecond)
			Expect(completed).To(BeZero())

			step(900 * time.Millisecond)
			Expect(completed).To(Equal(1))
			Expect(lbl.Text()).To(Equal("100"))
			Expect(lbl.Progress()).To(Equal(1.0))
			Expect(lbl.Running()).To(BeFalse())
			Expect(drv.Active()).To(BeZero())

			step(time.Second)
			Expect(completed).To(Equal(1))
		})

		DescribeTable("formats the destination",
			func(p format.Precision, expected string) {
				lbl.SetPrecision(p)
				lbl.Animate(0, 100, time.Second, nil)
				step(time.Second)
				Expect(lbl.Text()).To(Equal(expected))
			},
			Entry("zero decimals", format.Zero, "100"),
			Entry("one decimal", format.One, "100.0"),
			Entry("two decimals", format.Two, "100.00"),
			Entry("full precision", format.Full, "100.000000"),
		)

		It("lets the handler start a follow-up animation", func() {
			lbl.Animate(0, 10, time.Second, func() {
				lbl.Animate(10, 20, time.Second, nil)
			})
			step(time.Second)
			Expect(lbl.Running()).To(BeTrue())
			Expect(drv.Active()).To(Equal(1))

			step(time.Second)
			Expect(lbl.Text()).To(Equal("20"))
			Expect(drv.Active()).To(BeZero())
		})
	})

	Context("Stop", func() {
		It("freezes the text and skips the completion handler", func() {
			completed := 0
			lbl.Animate(0, 100, time.Second, func() { completed++ })
			step(300 * time.Millisecond)
			Expect(lbl.Text()).To(Equal("30"))

			lbl.Stop()
			published := len(sink.texts)
			step(300 * time.Millisecond)
			step(time.Second)

			Expect(lbl.Text()).To(Equal("30"))
			Expect(sink.texts).To(HaveLen(published))
			Expect(completed).To(BeZero())
			Expect(lbl.Running()).To(BeFalse())
			Expect(lbl.Progress()).To(Equal(1.0))
			Expect(drv.Active()).To(BeZero())
		})

		It("is a no-op when idle", func() {
			lbl.Stop()
			Expect(drv.Cancels()).To(BeZero())

			lbl.Animate(0, 1, time.Second, nil)
			step(time.Second)
			cancels := drv.Cancels()
			lbl.Stop()
			Expect(drv.Cancels()).To(Equal(cancels))
			Expect(lbl.Text()).To(Equal("1"))
		})
	})

	Context("AnimateFromCurrent", func() {
		It("starts from the interpolated value at the call instant", func() {
			lbl.SetPrecision(format.One)
			lbl.Animate(0, 100, time.Second, nil)
			step(250 * time.Millisecond)
			Expect(lbl.Value()).To(BeNumerically("~", 25, 1e-9))

			lbl.AnimateFromCurrent(1000, time.Second, nil)
			Expect(lbl.Text()).To(Equal("25.0"))

			step(500 * time.Millisecond)
			Expect(lbl.Text()).To(Equal("512.5"))
		})

		It("uses the destination once the prior animation finished", func() {
			lbl.Animate(0, 100, time.Second, nil)
			step(2 * time.Second)

			lbl.AnimateFromCurrent(200, time.Second, nil)
			step(500 * time.Millisecond)
			Expect(lbl.Text()).To(Equal("150"))
		})

		It("AnimateTo uses the default duration", func() {
			lbl = label.New(drv, label.WithDefaultDuration(4*time.Second), label.WithMethod(easing.Linear))
			lbl.AnimateTo(40, nil)
			step(time.Second)
			Expect(lbl.Text()).To(Equal("10"))
		})
	})

	Context("restarting in flight", func() {
		It("cancels exactly one callback and drops the superseded handler", func() {
			first, second := 0, 0
			lbl.Animate(0, 100, time.Second, func() { first++ })
			step(100 * time.Millisecond)

			before := drv.Cancels()
			lbl.Animate(0, 50, time.Second, func() { second++ })
			Expect(drv.Cancels() - before).To(Equal(1))
			Expect(drv.Active()).To(Equal(1))

			step(2 * time.Second)
			Expect(first).To(BeZero())
			Expect(second).To(Equal(1))
			Expect(lbl.Text()).To(Equal("50"))
		})

		It("drops the superseded handler for an instant restart", func() {
			first := 0
			lbl.Animate(0, 100, time.Second, func() { first++ })
			lbl.Animate(0, 7, 0, nil)
			step(2 * time.Second)

			Expect(first).To(BeZero())
			Expect(lbl.Text()).To(Equal("7"))
			Expect(drv.Active()).To(BeZero())
		})
	})

	Context("formatting", func() {
		It("republishes the shown value when the precision changes", func() {
			lbl.Animate(0, 100, time.Second, nil)
			step(300 * time.Millisecond)
			lbl.Stop()

			lbl.SetPrecision(format.Two)
			Expect(lbl.Text()).To(Equal("30.00"))
			Expect(lbl.Shown()).To(BeNumerically("~", 30, 1e-9))
		})

		It("applies the suffix after the current precision", func() {
			lbl = label.New(drv, label.WithPrecision(format.One), label.WithSuffix("%"))
			lbl.Animate(0, 100, 0, nil)
			Expect(lbl.Text()).To(Equal("100.0%"))
			Expect(lbl.Suffix()).To(Equal("%"))

			lbl.SetPrecision(format.Two)
			Expect(lbl.Text()).To(Equal("100.00%"))
		})

		It("prefers a custom formatter", func() {
			lbl.SetFormatter(format.Suffix(format.One, "%"))
			lbl.Animate(0, 100, 0, nil)
			Expect(lbl.Text()).To(Equal("100.0%"))

			lbl.SetFormatter(nil)
			Expect(lbl.Text()).To(Equal("100"))
		})
	})

	Context("observers", func() {
		It("receives every published frame", func() {
			var frames []label.Frame
			lbl.AddObserver(label.ObserverFunc(func(f label.Frame) {
				frames = append(frames, f)
			}))

			lbl.Animate(0, 10, time.Second, nil)
			step(500 * time.Millisecond)
			step(500 * time.Millisecond)

			Expect(frames).To(HaveLen(3))
			Expect(frames[0].Progress).To(BeZero())
			Expect(frames[1].Progress).To(BeNumerically("~", 0.5, 1e-9))
			Expect(frames[1].Text).To(Equal("5"))
			Expect(frames[2].Elapsed).To(Equal(time.Second))
			Expect(frames[2].Value).To(Equal(10.0))
		})
	})
})
