// Package stats records per-tick scene counts and renders them as terminal
// plots.
package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/neonloop/hotloop"
)

const DefaultCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Padding(1, 0)
)

// Sample is the scene state after one tick.
type Sample struct {
	Tick      uint64
	Roads     int
	Cars      int
	Particles int
	Zoom      float64
	MeanSpeed float64
}

// Take reads a Sample from s.
func Take(s *hotloop.Scene) Sample {
	cars := s.Traffic().Cars()
	var speed float64
	for _, c := range cars {
		speed += c.Speed
	}
	if len(cars) > 0 {
		speed /= float64(len(cars))
	}
	return Sample{
		Tick:      s.Ticks(),
		Roads:     s.Network().Len(),
		Cars:      len(cars),
		Particles: s.Particles().AliveCount(),
		Zoom:      s.Camera().Zoom,
		MeanSpeed: speed,
	}
}

// Recorder keeps the most recent samples up to a fixed capacity.
type Recorder struct {
	capacity int
	samples  []Sample
	total    int
}

func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{capacity: capacity, samples: make([]Sample, 0, capacity)}
}

// Record samples s. It has the signature Headless.StepN expects.
func (r *Recorder) Record(s *hotloop.Scene) {
	r.Add(Take(s))
}

// Add appends a sample, dropping the oldest when full.
func (r *Recorder) Add(smp Sample) {
	r.total++
	if len(r.samples) == r.capacity {
		copy(r.samples, r.samples[1:])
		r.samples = r.samples[:len(r.samples)-1]
	}
	r.samples = append(r.samples, smp)
}

// Samples returns the retained samples, oldest first.
func (r *Recorder) Samples() []Sample { return r.samples }

// Total returns how many samples were ever added.
func (r *Recorder) Total() int { return r.total }

// Last returns the newest sample.
func (r *Recorder) Last() (Sample, bool) {
	if len(r.samples) == 0 {
		return Sample{}, false
	}
	return r.samples[len(r.samples)-1], true
}

// Series extracts one field from the retained samples.
func (r *Recorder) Series(field func(Sample) float64) []float64 {
	out := make([]float64, len(r.samples))
	for i, s := range r.samples {
		out[i] = field(s)
	}
	return out
}

func Cars(s Sample) float64      { return float64(s.Cars) }
func Roads(s Sample) float64     { return float64(s.Roads) }
func Particles(s Sample) float64 { return float64(s.Particles) }
func Zoom(s Sample) float64      { return s.Zoom }

// Peak returns the maximum of field over the retained samples.
func (r *Recorder) Peak(field func(Sample) float64) float64 {
	var peak float64
	for i, s := range r.samples {
		if v := field(s); i == 0 || v > peak {
			peak = v
		}
	}
	return peak
}

// Plot renders one series as an ASCII chart. Fewer than two points render
// as an empty string.
func Plot(series []float64, width, height int, caption string) string {
	if len(series) < 2 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
}

// Report writes a styled summary and plots for the recorded run.
func (r *Recorder) Report(w io.Writer, title string) error {
	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.ToUpper(title)) + "\n")

	last, ok := r.Last()
	if !ok {
		b.WriteString(valueStyle.Render("no samples") + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Ticks", fmt.Sprintf("%d", last.Tick))
	row("Roads", fmt.Sprintf("%d", last.Roads))
	row("Cars", fmt.Sprintf("%d (peak %.0f)", last.Cars, r.Peak(Cars)))
	row("Particles", fmt.Sprintf("%d (peak %.0f)", last.Particles, r.Peak(Particles)))
	row("Zoom", fmt.Sprintf("%.3f", last.Zoom))
	row("Mean speed", fmt.Sprintf("%.4f", last.MeanSpeed))

	for _, p := range []struct {
		field   func(Sample) float64
		caption string
	}{
		{Cars, "cars"},
		{Particles, "particles"},
		{Roads, "roads"},
	} {
		if chart := Plot(r.Series(p.field), 60, 6, p.caption); chart != "" {
			b.WriteString(graphStyle.Render(chart) + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
