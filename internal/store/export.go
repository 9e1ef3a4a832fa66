package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/countlabel/internal/label"
)

// Sample is one recorded frame of a label.
type Sample struct {
	T        float64 `json:"t"`
	Progress float64 `json:"progress"`
	Eased    float64 `json:"eased"`
	Value    float64 `json:"value"`
	Text     string  `json:"text"`
}

// Trace is the recorded frame sequence of one label animation.
type Trace struct {
	Label     string   `json:"label"`
	Method    string   `json:"method"`
	Precision string   `json:"precision"`
	From      float64  `json:"from"`
	To        float64  `json:"to"`
	Duration  float64  `json:"duration"`
	FPS       int      `json:"fps"`
	Frames    int      `json:"frames"`
	Samples   []Sample `json:"samples"`
}

// Recorder collects frames from a label.
type Recorder struct {
	trace Trace
}

func NewRecorder(name string) *Recorder {
	return &Recorder{trace: Trace{Label: name, Samples: make([]Sample, 0, 128)}}
}

func (r *Recorder) OnFrame(f label.Frame) {
	r.trace.Samples = append(r.trace.Samples, Sample{
		T:        f.Elapsed.Seconds(),
		Progress: f.Progress,
		Eased:    f.Eased,
		Value:    f.Value,
		Text:     f.Text,
	})
	r.trace.Frames = len(r.trace.Samples)
}

// Describe stamps the animation parameters onto the trace.
func (r *Recorder) Describe(lbl *label.Label, from, to float64, d time.Duration, fps int) {
	r.trace.Method = lbl.Method().String()
	r.trace.Precision = lbl.Precision().String()
	r.trace.From, r.trace.To = from, to
	r.trace.Duration = d.Seconds()
	r.trace.FPS = fps
}

func (r *Recorder) Trace() Trace { return r.trace }

// Values returns the recorded values in frame order.
func (r *Recorder) Values() []float64 {
	vals := make([]float64, len(r.trace.Samples))
	for i, s := range r.trace.Samples {
		vals[i] = s.Value
	}
	return vals
}

func WriteJSON(w io.Writer, traces []Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(traces)
}

func WriteCSV(w io.Writer, traces []Trace) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"label", "t", "progress", "eased", "value", "text"}); err != nil {
		return err
	}
	for _, tr := range traces {
		for _, s := range tr.Samples {
			row := []string{
				tr.Label,
				strconv.FormatFloat(s.T, 'f', 6, 64),
				strconv.FormatFloat(s.Progress, 'f', 6, 64),
				strconv.FormatFloat(s.Eased, 'f', 6, 64),
				strconv.FormatFloat(s.Value, 'f', -1, 64),
				s.Text,
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// Export writes traces to path, choosing CSV or JSON by extension.
func Export(path string, traces []Trace) error {
	var write func(io.Writer, []Trace) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		write = WriteCSV
	case ".json":
		write = WriteJSON
	default:
		return fmt.Errorf("unsupported export format %q (use .csv or .json)", ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return write(file, traces)
}
