package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/countlabel/internal/easing"
	"github.com/san-kum/countlabel/internal/format"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrom     = 0.0
	DefaultTo       = 100.0
	DefaultDuration = 2 * time.Second
	DefaultFPS      = 60
	DefaultTheme    = "cyberpunk"
)

var (
	// ErrInvalidFPS indicates a non-positive frame rate.
	ErrInvalidFPS = errors.New("config: fps must be positive")

	// ErrNoLabels indicates a config without any label to animate.
	ErrNoLabels = errors.New("config: at least one label is required")
)

// ValidationError wraps a field-level configuration error.
type ValidationError struct {
	Field   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Wrapped)
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// Config describes an animation run: the counting range shared by every
// label, the frame rate and the labels shown side by side.
type Config struct {
	From     float64       `yaml:"from"`
	To       float64       `yaml:"to"`
	Duration time.Duration `yaml:"duration"`
	FPS      int           `yaml:"fps"`
	Theme    string        `yaml:"theme"`
	Labels   []LabelConfig `yaml:"labels"`
}

type LabelConfig struct {
	Name      string           `yaml:"name"`
	Method    easing.Method    `yaml:"method"`
	Precision format.Precision `yaml:"precision"`
	Suffix    string           `yaml:"suffix,omitempty"`
}

// DefaultConfig shows one label per easing method counting 0 to 100.
func DefaultConfig() *Config {
	cfg := &Config{
		From:     DefaultFrom,
		To:       DefaultTo,
		Duration: DefaultDuration,
		FPS:      DefaultFPS,
		Theme:    DefaultTheme,
	}
	for _, m := range easing.Methods() {
		cfg.Labels = append(cfg.Labels, LabelConfig{Name: m.String(), Method: m, Precision: format.Zero})
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks fields that cannot be clamped. A non-positive duration is
// valid and means instant completion.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return &ValidationError{Field: "fps", Wrapped: ErrInvalidFPS}
	}
	if len(c.Labels) == 0 {
		return &ValidationError{Field: "labels", Wrapped: ErrNoLabels}
	}
	for i, l := range c.Labels {
		if l.Name == "" {
			c.Labels[i].Name = l.Method.String()
		}
	}
	return nil
}
