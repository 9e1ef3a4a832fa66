package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles derived from a theme.
type palette struct {
	header   lipgloss.Style
	name     lipgloss.Style
	selected lipgloss.Style
	value    lipgloss.Style
	running  lipgloss.Style
	stopped  lipgloss.Style
	done     lipgloss.Style
	muted    lipgloss.Style
	panel    lipgloss.Style
	high     lipgloss.Style
	mid      lipgloss.Style
	low      lipgloss.Style
}

func newPalette(t Theme) palette {
	return palette{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		name:     lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		selected: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Width(14).Align(lipgloss.Right),
		running:  lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		stopped:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		done:     lipgloss.NewStyle().Foreground(t.Muted),
		muted:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(1, 2),
		high: lipgloss.NewStyle().Foreground(t.Success),
		mid:  lipgloss.NewStyle().Foreground(t.Warning),
		low:  lipgloss.NewStyle().Foreground(t.Error),
	}
}

// progressBar renders a bar filled to percent, colored by how far along it is.
func (p palette) progressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent > 0.8 {
		return p.high.Render(bar)
	} else if percent > 0.4 {
		return p.mid.Render(bar)
	}
	return p.low.Render(bar)
}

// sparkline renders the most recent width values as block characters,
// left-padded so the result is always width cells wide.
func (p palette) sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return p.muted.Render(strings.Repeat("─", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	line := p.high.Render(b.String())
	if pad := width - len(values); pad > 0 {
		line = p.muted.Render(strings.Repeat("─", pad)) + line
	}
	return line
}
