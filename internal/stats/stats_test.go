package stats

import (
	"strings"
	"testing"

	"github.com/neonloop/hotloop"
)

func TestRecorderDropsOldest(t *testing.T) {
	r := NewRecorder(3)
	for i := 1; i <= 5; i++ {
		r.Add(Sample{Tick: uint64(i), Cars: i})
	}
	got := r.Samples()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Tick != 3 || got[2].Tick != 5 {
		t.Errorf("ticks = %d..%d, want 3..5", got[0].Tick, got[2].Tick)
	}
	if r.Total() != 5 {
		t.Errorf("Total = %d, want 5", r.Total())
	}
}

func TestRecorderSeriesAndPeak(t *testing.T) {
	r := NewRecorder(10)
	for _, n := range []int{2, 7, 4} {
		r.Add(Sample{Cars: n})
	}
	series := r.Series(Cars)
	if len(series) != 3 || series[1] != 7 {
		t.Errorf("Series = %v", series)
	}
	if p := r.Peak(Cars); p != 7 {
		t.Errorf("Peak = %v, want 7", p)
	}
}

func TestTakeReadsScene(t *testing.T) {
	h := hotloop.NewHeadless(hotloop.DefaultConfig())
	h.Step()
	s := Take(h.Scene)
	if s.Tick != 1 {
		t.Errorf("Tick = %d, want 1", s.Tick)
	}
	if s.Roads != hotloop.DefaultRingSegments {
		t.Errorf("Roads = %d, want %d", s.Roads, hotloop.DefaultRingSegments)
	}
	if s.Cars < hotloop.DefaultInitialCars {
		t.Errorf("Cars = %d, want >= %d", s.Cars, hotloop.DefaultInitialCars)
	}
	if s.MeanSpeed <= 0 {
		t.Errorf("MeanSpeed = %v, want > 0", s.MeanSpeed)
	}
}

func TestReport(t *testing.T) {
	h := hotloop.NewHeadless(hotloop.DefaultConfig())
	r := NewRecorder(0)
	h.StepN(30, r.Record)

	var b strings.Builder
	if err := r.Report(&b, "run"); err != nil {
		t.Fatalf("Report: %v", err)
	}
	out := b.String()
	for _, want := range []string{"RUN", "Ticks", "cars", "roads"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportEmpty(t *testing.T) {
	var b strings.Builder
	if err := NewRecorder(4).Report(&b, "empty"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "no samples") {
		t.Errorf("got %q", b.String())
	}
}

func TestPlotNeedsTwoPoints(t *testing.T) {
	if Plot([]float64{1}, 10, 3, "x") != "" {
		t.Error("single point should not plot")
	}
	if Plot([]float64{1, 2, 3}, 10, 3, "x") == "" {
		t.Error("expected a chart")
	}
}
