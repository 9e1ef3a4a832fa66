// Package tui drives counting labels without an alternate screen: the label
// texts are redrawn in place on a single terminal line.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/countlabel/internal/clock"
)

const (
	clearLine  = "\r\033[2K"
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// LiveRenderer collects the text of several labels and redraws them as one
// line. Each slot is a label.Surface.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	names     []string
	texts     []string
	now       func() time.Time
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	return &LiveRenderer{out: out, frameRate: frameRate, now: time.Now}
}

// Slot is the text surface of one label inside a LiveRenderer.
type Slot struct {
	r *LiveRenderer
	i int
}

func (s Slot) SetText(text string) {
	s.r.texts[s.i] = text
	s.r.render(false)
}

// Add reserves a slot for a label named name.
func (r *LiveRenderer) Add(name string) Slot {
	r.names = append(r.names, name)
	r.texts = append(r.texts, "")
	return Slot{r: r, i: len(r.names) - 1}
}

// Line returns the current line without terminal control codes.
func (r *LiveRenderer) Line() string {
	parts := make([]string, len(r.names))
	for i, name := range r.names {
		parts[i] = fmt.Sprintf("%s=%s", name, r.texts[i])
	}
	return strings.Join(parts, "  ")
}

func (r *LiveRenderer) render(force bool) {
	if !force && r.frameRate > 0 {
		now := r.now()
		if now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = now
	}
	fmt.Fprint(r.out, clearLine+r.Line())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }

// Stop draws the final line unthrottled and restores the cursor.
func (r *LiveRenderer) Stop() {
	r.render(true)
	fmt.Fprint(r.out, "\n"+showCursor)
}

// Pump calls drv.Frame every interval until no registration is left or ctx
// is done.
func Pump(ctx context.Context, drv *clock.Driver, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for drv.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			drv.Frame()
		}
	}
	return nil
}
