package ui

import (
	"math"
	"testing"

	"github.com/pthm-cable/sakura/wave"
)

func sliderByLabel(t *testing.T, label string) SliderSpec {
	t.Helper()
	for _, s := range WaveSliders {
		if s.Label == label {
			return s
		}
	}
	t.Fatalf("no slider %q", label)
	return SliderSpec{}
}

func TestSliderSnap(t *testing.T) {
	testCases := []struct {
		label string
		in    float64
		want  float64
	}{
		{"Amplitude", 0.0249, 0.02},
		{"Amplitude", 0.026, 0.03},
		{"Amplitude", 0.9, 0.5},
		{"Amplitude", -1, 0.01},
		{"Persistence", 0.32, 0.3},
		{"Persistence", 0.33, 0.35},
		{"Iterations", 3.4, 3},
		{"Iterations", 7.6, 8},
		{"Iterations", 12, 8},
		{"Lacunarity", 2.18, 2.2},
	}

	for _, tc := range testCases {
		s := sliderByLabel(t, tc.label)
		if got := s.Snap(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s snap(%v): expected %v, got %v", tc.label, tc.in, tc.want, got)
		}
	}
}

func TestSliderApply(t *testing.T) {
	p := wave.Params{Iterations: 4, Speed: 0.4}

	it := sliderByLabel(t, "Iterations")
	if !it.Apply(&p, 6.2) {
		t.Error("expected iterations change to be reported")
	}
	if p.Iterations != 6 {
		t.Errorf("expected 6 iterations, got %d", p.Iterations)
	}
	if it.Apply(&p, 5.9) {
		t.Error("expected no change when snapping to the current value")
	}

	sp := sliderByLabel(t, "Speed")
	sp.Apply(&p, 1.04)
	if math.Abs(p.Speed-1.0) > 1e-9 {
		t.Errorf("expected speed 1.0, got %v", p.Speed)
	}
}

func TestSliderApplyKeepsUntouchedValues(t *testing.T) {
	p := wave.Params{
		Amplitude:   0.025,
		Speed:       0.4,
		Frequency:   0.07,
		Persistence: 0.3,
		Lacunarity:  2.18,
		Iterations:  8,
	}
	want := p

	for _, s := range WaveSliders {
		// The slider hands back the current value through a float32 round trip.
		v := float64(float32(s.Get(&p)))
		if s.Apply(&p, v) {
			t.Errorf("%s: expected no change for an untouched slider", s.Label)
		}
	}
	if p != want {
		t.Errorf("expected %+v, got %+v", want, p)
	}
}

func TestWaveSlidersCoverUniforms(t *testing.T) {
	want := []string{"Amplitude", "Speed", "Frequency", "Persistence", "Lacunarity", "Iterations"}
	if len(WaveSliders) != len(want) {
		t.Fatalf("expected %d sliders, got %d", len(want), len(WaveSliders))
	}
	for i, w := range want {
		if WaveSliders[i].Label != w {
			t.Errorf("slider %d: expected %s, got %s", i, w, WaveSliders[i].Label)
		}
	}
}
