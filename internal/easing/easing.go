// Package easing maps linear animation progress onto perceptual progress.
//
// The set of curves is closed:
//
//   - [Linear]: constant rate
//   - [EaseIn]: cubic acceleration from rest
//   - [EaseOut]: cubic deceleration into the destination
//   - [EaseInOut]: cubic ease-in for the first half, mirrored ease-out for the second
//
// Every curve satisfies f(0) = 0 and f(1) = 1.
package easing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownMethod is returned by Parse for names outside the closed set.
var ErrUnknownMethod = errors.New("easing: unknown method")

// rate is the exponent shared by the non-linear curves.
const rate = 3.0

// Method selects an easing curve.
type Method int

const (
	Linear Method = iota
	EaseIn
	EaseOut
	EaseInOut
)

// Methods returns the closed set of easing methods in declaration order.
func Methods() []Method {
	return []Method{Linear, EaseIn, EaseOut, EaseInOut}
}

// Apply transforms linear progress t in [0, 1] into eased progress.
func (m Method) Apply(t float64) float64 {
	switch m {
	case EaseIn:
		return math.Pow(t, rate)
	case EaseOut:
		return 1 - math.Pow(1-t, rate)
	case EaseInOut:
		u := 2 * t
		if u < 1 {
			return 0.5 * math.Pow(u, rate)
		}
		return 0.5 * (2 - math.Pow(2-u, rate))
	default:
		return t
	}
}

func (m Method) String() string {
	switch m {
	case Linear:
		return "linear"
	case EaseIn:
		return "easeIn"
	case EaseOut:
		return "easeOut"
	case EaseInOut:
		return "easeInOut"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Parse resolves a method name. Matching ignores case, '-' and '_', so
// "easeInOut", "ease-in-out" and "EASE_IN_OUT" are the same method.
func Parse(name string) (Method, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	switch key {
	case "linear":
		return Linear, nil
	case "easein":
		return EaseIn, nil
	case "easeout":
		return EaseOut, nil
	case "easeinout":
		return EaseInOut, nil
	}
	return Linear, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
