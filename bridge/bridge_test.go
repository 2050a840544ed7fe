package bridge

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sakura/probe"
	"github.com/pthm-cable/sakura/quotes"
	"github.com/pthm-cable/sakura/selection"
	"github.com/pthm-cable/sakura/systems"
	"github.com/pthm-cable/sakura/telemetry"
	"github.com/pthm-cable/sakura/wave"
)

// stillWater has no drift so positions stay where they were placed.
var stillWater = wave.Params{
	Amplitude:   0.025,
	Speed:       0,
	Frequency:   0.07,
	Persistence: 0.3,
	Lacunarity:  2.18,
	Iterations:  8,
}

func fixedPool(t *testing.T, authors []string, pts ...[2]float32) *systems.Pool {
	t.Helper()
	i := 0
	opts := systems.PoolOptions{
		Amount:           len(pts),
		SpawnExtent:      150,
		MinSeparation:    2,
		DriftCoefficient: 0.005,
		WrapMin:          -100,
		WrapMax:          80,
		ElevationScale:   5,
		VerticalBias:     0.35,
		SpinMultiplier:   50,
		Sampler: func(*rand.Rand) (float32, float32) {
			p := pts[i]
			i++
			return p[0], p[1]
		},
	}
	pool, err := systems.NewPool(opts, authors, wave.Field{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("creating pool: %v", err)
	}
	return pool
}

// viewAt returns a view whose centre pixel lands on (x, 0, z).
func viewAt(x, z float64) probe.View {
	return probe.View{
		Position: r3.Vec{X: x, Y: 10, Z: z + 10},
		Target:   r3.Vec{X: x, Z: z},
		Up:       r3.Vec{Y: 1},
		Fovy:     55,
		Width:    800,
		Height:   600,
	}
}

var centre = probe.Pointer{X: 400, Y: 300, Inside: true}

func newTestBridge(t *testing.T, src wave.Source, pool *systems.Pool) *Bridge {
	t.Helper()
	b, err := New(Options{
		Source:    src,
		Pool:      pool,
		Probe:     probe.New(30*time.Millisecond, 0, 0),
		Selection: selection.NewController(3),
		Quotes:    quotes.Default(),
		Palette:   DefaultPalette(),
		Tilt:      math.Pi / 2,
		Lift:      1.5,
	})
	if err != nil {
		t.Fatalf("creating bridge: %v", err)
	}
	return b
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("expected error for missing collaborators")
	}
}

func TestFrameRoundTrip(t *testing.T) {
	tbl := quotes.Default()
	pool := fixedPool(t, tbl.Authors(), [2]float32{0, 0}, [2]float32{50, 0}, [2]float32{-50, 0})
	b := newTestBridge(t, wave.Static(stillWater), pool)

	rep := b.Frame(FrameInput{Time: 1, View: viewAt(0.5, 0.1), Pointer: centre})
	if !rep.Animated || !rep.Probed || !rep.Hit {
		t.Fatalf("expected animated probed hit, got %+v", rep)
	}

	hl := b.Selection().Highlighted()
	if len(hl) != 1 || hl[0] != 0 {
		t.Errorf("expected highlight set [0], got %v", hl)
	}

	ov := b.Overlay()
	if !ov.Visible || ov.Index != 0 {
		t.Fatalf("expected overlay on instance 0, got %+v", ov)
	}
	if ov.HoveredAuthor != tbl.Authors()[0] {
		t.Errorf("expected hovered author %q, got %q", tbl.Authors()[0], ov.HoveredAuthor)
	}
	if ov.SelectedAuthor != "" {
		t.Errorf("expected no selected author, got %q", ov.SelectedAuthor)
	}
	pos := pool.Position(0)
	if ov.WorldPosition != [3]float32{pos.X, pos.Y + 1.5, pos.Z} {
		t.Errorf("expected overlay above instance, got %v", ov.WorldPosition)
	}

	if a := b.Click(); a != selection.ActionSelect {
		t.Fatalf("expected select, got %v", a)
	}
	ov = b.Overlay()
	if ov.SelectedAuthor != tbl.Authors()[0] || ov.SelectedQuote != tbl.Quote(tbl.Authors()[0]) {
		t.Errorf("expected selected quote card, got %+v", ov)
	}
	if ov.HoveredAuthor != "" {
		t.Errorf("expected hover suppressed while selected, got %q", ov.HoveredAuthor)
	}

	if a := b.Click(); a != selection.ActionDeselect {
		t.Errorf("expected deselect, got %v", a)
	}
	if _, ok := b.Selection().Selected(); ok {
		t.Error("expected nothing selected")
	}
}

func TestFrameWritesVariants(t *testing.T) {
	pool := fixedPool(t, nil, [2]float32{0, 0}, [2]float32{50, 0})
	b := newTestBridge(t, wave.Static(stillWater), pool)
	pal := DefaultPalette()

	b.Frame(FrameInput{Time: 2, View: viewAt(0, 0), Pointer: centre})
	buf := b.Buffer()

	if got := buf.Color(0); got != pal.Highlighted.Color {
		t.Errorf("expected highlighted colour, got %v", got)
	}
	if got := buf.Color(1); got != pal.Normal.Color {
		t.Errorf("expected normal colour, got %v", got)
	}

	for i := 0; i < 2; i++ {
		pos := pool.Position(i)
		style := pal.Style(b.Selection().Variant(i))
		want := Compose(pos.X, pos.Y, pos.Z, math.Pi/2, pool.Angle(i), pool.BaseScale(i)*style.Scale)
		if buf.Transforms[i] != want {
			t.Errorf("instance %d: unexpected transform %v", i, buf.Transforms[i])
		}
	}

	b.Click()
	b.Frame(FrameInput{Time: 2.001, View: viewAt(0, 0), Pointer: centre})
	if got := buf.Color(0); got != pal.Selected.Color {
		t.Errorf("expected selected colour, got %v", got)
	}
}

func TestNewDefaultsZeroPalette(t *testing.T) {
	pool := fixedPool(t, nil, [2]float32{0, 0}, [2]float32{50, 0})
	b, err := New(Options{
		Source:    wave.Static(stillWater),
		Pool:      pool,
		Probe:     probe.New(30*time.Millisecond, 0, 0),
		Selection: selection.NewController(3),
		Tilt:      math.Pi / 2,
	})
	if err != nil {
		t.Fatalf("creating bridge: %v", err)
	}
	pal := DefaultPalette()

	b.Frame(FrameInput{Time: 1, View: viewAt(0, 0), Pointer: centre})
	buf := b.Buffer()

	if got := buf.Color(1); got != pal.Normal.Color {
		t.Errorf("expected %v, got %v", pal.Normal.Color, got)
	}
	pos := pool.Position(1)
	want := Compose(pos.X, pos.Y, pos.Z, math.Pi/2, pool.Angle(1), pool.BaseScale(1)*pal.Normal.Scale)
	if buf.Transforms[1] != want {
		t.Errorf("expected default-scaled transform, got %v", buf.Transforms[1])
	}
}

func TestFrameMarksDirtyOncePerFrame(t *testing.T) {
	pool := fixedPool(t, nil, [2]float32{0, 0}, [2]float32{10, 0}, [2]float32{20, 0})
	b := newTestBridge(t, wave.Static(stillWater), pool)

	for i := 1; i <= 5; i++ {
		b.Frame(FrameInput{Time: float64(i) / 60, View: viewAt(0, 0), Pointer: centre})
		if v := b.Buffer().Version(); v != uint64(i) {
			t.Errorf("frame %d: expected version %d, got %d", i, i, v)
		}
		if !b.Buffer().TakeDirty() {
			t.Errorf("frame %d: expected dirty buffer", i)
		}
		if b.Buffer().TakeDirty() {
			t.Errorf("frame %d: expected dirty flag cleared after take", i)
		}
	}
}

func TestFrameSourceUnavailable(t *testing.T) {
	pool := fixedPool(t, nil, [2]float32{0, 0})
	ready := false
	src := wave.SourceFunc(func() (wave.Params, bool) { return stillWater, ready })
	b := newTestBridge(t, src, pool)

	before := pool.Instance(0)
	rep := b.Frame(FrameInput{Time: 3, View: viewAt(0, 0), Pointer: centre})
	if rep.Animated || rep.Probed {
		t.Errorf("expected skipped frame, got %+v", rep)
	}
	if pool.Instance(0) != before {
		t.Error("expected pool untouched while the source is unavailable")
	}
	if b.Buffer().Version() != 0 {
		t.Errorf("expected no buffer write, got version %d", b.Buffer().Version())
	}
	if _, ok := b.Params(); ok {
		t.Error("expected no params before the first animated frame")
	}

	ready = true
	if rep := b.Frame(FrameInput{Time: 3, View: viewAt(0, 0), Pointer: centre}); !rep.Animated {
		t.Error("expected animation once the source is available")
	}
	if p, ok := b.Params(); !ok || p.Time != 3 {
		t.Errorf("expected stamped params, got %+v (%v)", p, ok)
	}
}

func TestFrameThrottlesProbe(t *testing.T) {
	pool := fixedPool(t, nil, [2]float32{0, 0}, [2]float32{20, 0})
	b := newTestBridge(t, wave.Static(stillWater), pool)

	b.Frame(FrameInput{Time: 1, View: viewAt(0, 0), Pointer: centre})
	// Pointer moves onto the other blossom within the throttle window.
	rep := b.Frame(FrameInput{Time: 1.01, View: viewAt(20, 0), Pointer: centre})
	if rep.Probed {
		t.Error("expected throttled probe")
	}
	if i, _ := b.Selection().Hovered(); i != 0 {
		t.Errorf("expected stale hover 0, got %d", i)
	}

	b.Frame(FrameInput{Time: 1.05, View: viewAt(20, 0), Pointer: centre})
	if i, _ := b.Selection().Hovered(); i != 1 {
		t.Errorf("expected hover 1 after the interval, got %d", i)
	}
}

func TestFramePointerLeavesWindow(t *testing.T) {
	pool := fixedPool(t, nil, [2]float32{0, 0})
	b := newTestBridge(t, wave.Static(stillWater), pool)

	b.Frame(FrameInput{Time: 1, View: viewAt(0, 0), Pointer: centre})
	rep := b.Frame(FrameInput{Time: 2, View: viewAt(0, 0), Pointer: probe.Pointer{}})
	if !rep.Probed || rep.Hit {
		t.Errorf("expected fresh miss, got %+v", rep)
	}
	if b.Overlay().Visible {
		t.Error("expected overlay hidden after a miss")
	}
}

func TestFrameEmptyField(t *testing.T) {
	pool := fixedPool(t, nil)
	b := newTestBridge(t, wave.Static(stillWater), pool)

	for i := 0; i < 3; i++ {
		b.Frame(FrameInput{Time: float64(i), View: viewAt(0, 0), Pointer: centre})
		if b.Click() != selection.ActionNone {
			t.Error("expected clicks to do nothing")
		}
		if b.Overlay().Visible {
			t.Error("expected overlay never visible")
		}
	}
	if b.Buffer().Len() != 0 || b.Buffer().Version() != 0 {
		t.Errorf("expected untouched empty buffer, got len %d version %d", b.Buffer().Len(), b.Buffer().Version())
	}
}

func TestFrameRecordsPhases(t *testing.T) {
	pool := fixedPool(t, nil, [2]float32{0, 0})
	perf := telemetry.NewPerfCollector(10)
	b, err := New(Options{
		Source:    wave.Static(stillWater),
		Pool:      pool,
		Probe:     probe.New(0, 0, 0),
		Selection: selection.NewController(3),
		Palette:   DefaultPalette(),
		Perf:      perf,
	})
	if err != nil {
		t.Fatal(err)
	}

	b.Frame(FrameInput{Time: 1, View: viewAt(0, 0), Pointer: centre})
	stats := perf.Stats()
	for _, phase := range []string{telemetry.PhaseStep, telemetry.PhaseProbe, telemetry.PhaseSelection, telemetry.PhaseWrite} {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("expected phase %q recorded", phase)
		}
	}
}
