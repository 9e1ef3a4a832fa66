// Package format renders label values as decimal text.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownPrecision = errors.New("format: unknown precision")

// Precision selects how many fractional digits a value is rendered with.
type Precision int

const (
	Zero Precision = iota
	One
	Two
	Full
)

// Func formats a value. It replaces a Precision when a label needs a
// custom rendering such as a unit suffix.
type Func func(v float64) string

func Precisions() []Precision {
	return []Precision{Zero, One, Two, Full}
}

// Format renders v with the configured number of fractional digits. Full
// always prints six, so the text keeps its width across frames.
func (p Precision) Format(v float64) string {
	switch p {
	case One:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case Two:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case Full:
		return strconv.FormatFloat(v, 'f', 6, 64)
	default:
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
}

func (p Precision) String() string {
	switch p {
	case Zero:
		return "0"
	case One:
		return "1"
	case Two:
		return "2"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// Next cycles through the precisions, wrapping after Full.
func (p Precision) Next() Precision {
	return (p + 1) % Precision(len(Precisions()))
}

func Parse(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "zero", "":
		return Zero, nil
	case "1", "one":
		return One, nil
	case "2", "two":
		return Two, nil
	case "full", "-1":
		return Full, nil
	}
	return Zero, fmt.Errorf("%w: %q", ErrUnknownPrecision, s)
}

func (p Precision) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Precision) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Suffix returns a Func rendering v with p followed by unit, e.g. "42.0%".
func Suffix(p Precision, unit string) Func {
	return func(v float64) string {
		return p.Format(v) + unit
	}
}
