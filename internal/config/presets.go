package config

import (
	"sort"
	"time"

	"github.com/san-kum/countlabel/internal/easing"
	"github.com/san-kum/countlabel/internal/format"
)

var Presets = map[string]*Config{
	"score": {
		From: 0, To: 9999, Duration: 3 * time.Second, FPS: 60, Theme: "retro",
		Labels: []LabelConfig{
			{Name: "score", Method: easing.EaseOut, Precision: format.Zero},
		},
	},
	"percent": {
		From: 0, To: 100, Duration: 1500 * time.Millisecond, FPS: 60, Theme: "ocean",
		Labels: []LabelConfig{
			{Name: "upload", Method: easing.EaseInOut, Precision: format.One, Suffix: "%"},
			{Name: "download", Method: easing.Linear, Precision: format.One, Suffix: "%"},
		},
	},
	"price": {
		From: 19.99, To: 4.99, Duration: 2 * time.Second, FPS: 30, Theme: "sunset",
		Labels: []LabelConfig{
			{Name: "price", Method: easing.EaseIn, Precision: format.Two},
		},
	},
	"compare": {
		From: 0, To: 1000, Duration: 4 * time.Second, FPS: 60, Theme: "minimal",
		Labels: []LabelConfig{
			{Name: "linear", Method: easing.Linear, Precision: format.Zero},
			{Name: "easeIn", Method: easing.EaseIn, Precision: format.Zero},
			{Name: "easeOut", Method: easing.EaseOut, Precision: format.Zero},
			{Name: "easeInOut", Method: easing.EaseInOut, Precision: format.Zero},
		},
	},
	"instant": {
		From: 0, To: 42, Duration: 0, FPS: 60, Theme: "cyberpunk",
		Labels: []LabelConfig{
			{Name: "answer", Method: easing.Linear, Precision: format.Full},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Labels = append([]LabelConfig(nil), p.Labels...)
	return &cfg
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
