// Package telemetry records frame timings and interaction events and writes
// them as CSV for offline inspection.
package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Frame phases, in execution order.
const (
	PhaseStep      = "step"
	PhaseProbe     = "probe"
	PhaseSelection = "selection"
	PhaseWrite     = "write"
)

var phaseOrder = []string{PhaseStep, PhaseProbe, PhaseSelection, PhaseWrite}

// FrameSample holds timing data for a single frame.
type FrameSample struct {
	Duration time.Duration
	Phases   map[string]time.Duration
}

// PerfCollector keeps a rolling window of frame timings.
type PerfCollector struct {
	windowSize int
	samples    []FrameSample
	next       int
	count      int

	phases     map[string]time.Duration
	frameStart time.Time
	phaseStart time.Time
	phase      string

	lastPresent time.Time
	presentGap  time.Duration

	now func() time.Time
}

// NewPerfCollector returns a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]FrameSample, windowSize),
		phases:     make(map[string]time.Duration, len(phaseOrder)),
		now:        time.Now,
	}
}

// StartFrame begins timing a frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.phases = make(map[string]time.Duration, len(phaseOrder))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens a new one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.phase = phase
}

// EndFrame closes the running phase and stores the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.phaseStart)
		p.phase = ""
	}

	p.samples[p.next] = FrameSample{
		Duration: now.Sub(p.frameStart),
		Phases:   p.phases,
	}
	p.next = (p.next + 1) % p.windowSize
	if p.count < p.windowSize {
		p.count++
	}
}

// RecordPresent marks a presented frame; the gap between calls gives FPS.
func (p *PerfCollector) RecordPresent() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.presentGap = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats aggregates the current window.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration
	Jitter   time.Duration // standard deviation of frame time

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	FPS float64
}

// Stats computes statistics over the samples in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.presentGap > 0 {
		s.FPS = float64(time.Second) / float64(p.presentGap)
	}
	if p.count == 0 {
		return s
	}

	durations := make([]float64, p.count)
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.count; i++ {
		sample := p.samples[i]
		durations[i] = float64(sample.Duration)

		if i == 0 || sample.Duration < s.MinFrame {
			s.MinFrame = sample.Duration
		}
		if sample.Duration > s.MaxFrame {
			s.MaxFrame = sample.Duration
		}
		for phase, d := range sample.Phases {
			phaseSum[phase] += d
		}
	}

	mean, std := stat.MeanStdDev(durations, nil)
	s.AvgFrame = time.Duration(mean)
	if p.count > 1 {
		s.Jitter = time.Duration(std)
	}

	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.count)
		s.PhaseAvg[phase] = avg
		if s.AvgFrame > 0 {
			s.PhasePct[phase] = float64(avg) / float64(s.AvgFrame) * 100
		}
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Int64("jitter_us", s.Jitter.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRecord is the perf.csv row.
type PerfRecord struct {
	Frame        int64   `csv:"frame"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	JitterUS     int64   `csv:"jitter_us"`
	FPS          float64 `csv:"fps"`
	StepPct      float64 `csv:"step_pct"`
	ProbePct     float64 `csv:"probe_pct"`
	SelectionPct float64 `csv:"selection_pct"`
	WritePct     float64 `csv:"write_pct"`
}

// Record flattens the stats for CSV export.
func (s PerfStats) Record(frame int64) PerfRecord {
	return PerfRecord{
		Frame:        frame,
		AvgFrameUS:   s.AvgFrame.Microseconds(),
		MinFrameUS:   s.MinFrame.Microseconds(),
		MaxFrameUS:   s.MaxFrame.Microseconds(),
		JitterUS:     s.Jitter.Microseconds(),
		FPS:          s.FPS,
		StepPct:      s.PhasePct[PhaseStep],
		ProbePct:     s.PhasePct[PhaseProbe],
		SelectionPct: s.PhasePct[PhaseSelection],
		WritePct:     s.PhasePct[PhaseWrite],
	}
}
