// Package bridge runs the per-frame blossom update: it pulls the live wave
// uniforms, advances the pool, feeds pointer samples to the selection state
// and writes the instanced draw buffer.
package bridge

import (
	"errors"

	"github.com/pthm-cable/sakura/probe"
	"github.com/pthm-cable/sakura/quotes"
	"github.com/pthm-cable/sakura/selection"
	"github.com/pthm-cable/sakura/systems"
	"github.com/pthm-cable/sakura/telemetry"
	"github.com/pthm-cable/sakura/wave"
)

// Options wires a Bridge. Source, Pool, Probe and Selection are required.
type Options struct {
	Source    wave.Source
	Pool      *systems.Pool
	Probe     *probe.Probe
	Selection *selection.Controller
	Quotes    *quotes.Table // nil = embedded table
	Palette   Palette       // zero = DefaultPalette
	Tilt      float32       // fixed X rotation of every blossom, radians
	Lift      float32       // overlay height above the anchored blossom
	Perf      *telemetry.PerfCollector
}

// FrameInput is what the host knows at the start of a frame.
type FrameInput struct {
	Time    float64 // elapsed seconds
	View    probe.View
	Pointer probe.Pointer
}

// FrameReport summarises what a frame did.
type FrameReport struct {
	Animated bool // false while the wave source is unavailable
	Probed   bool // a fresh pointer sample was taken
	Hit      bool // the latest sample hit the picking plane
}

// Overlay is the quote card payload.
type Overlay struct {
	Visible        bool
	Index          int        // anchored instance, selection.None when hidden
	WorldPosition  [3]float32 // above the anchored instance
	SelectedAuthor string
	SelectedQuote  string
	HoveredAuthor  string
}

// Bridge owns the frame pipeline for one field.
type Bridge struct {
	source  wave.Source
	pool    *systems.Pool
	probe   *probe.Probe
	sel     *selection.Controller
	quotes  *quotes.Table
	palette Palette
	tilt    float32
	lift    float32
	perf    *telemetry.PerfCollector

	buf *Buffer

	params    wave.Params
	hasParams bool
}

// New validates opts and allocates the draw buffer.
func New(opts Options) (*Bridge, error) {
	var errs []error
	if opts.Source == nil {
		errs = append(errs, errors.New("bridge: wave source is required"))
	}
	if opts.Pool == nil {
		errs = append(errs, errors.New("bridge: pool is required"))
	}
	if opts.Probe == nil {
		errs = append(errs, errors.New("bridge: probe is required"))
	}
	if opts.Selection == nil {
		errs = append(errs, errors.New("bridge: selection controller is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	q := opts.Quotes
	if q == nil {
		q = quotes.Default()
	}
	pal := opts.Palette
	if pal == (Palette{}) {
		pal = DefaultPalette()
	}

	return &Bridge{
		source:  opts.Source,
		pool:    opts.Pool,
		probe:   opts.Probe,
		sel:     opts.Selection,
		quotes:  q,
		palette: pal,
		tilt:    opts.Tilt,
		lift:    opts.Lift,
		perf:    opts.Perf,
		buf:     NewBuffer(opts.Pool.Len()),
	}, nil
}

// Frame runs one frame: step, probe, selection, buffer write.
func (b *Bridge) Frame(in FrameInput) FrameReport {
	params, ok := b.source.WaveParams()
	if !ok {
		return FrameReport{}
	}
	params.Time = in.Time
	b.params = params
	b.hasParams = true

	if b.perf != nil {
		b.perf.StartFrame()
		defer b.perf.EndFrame()
	}

	b.phase(telemetry.PhaseStep)
	b.pool.Step(params)

	b.phase(telemetry.PhaseProbe)
	res, fresh := b.probe.Sample(in.Time, in.View, in.Pointer)

	b.phase(telemetry.PhaseSelection)
	if fresh {
		if res.Hit {
			b.sel.Probe(b.pool, float32(res.Point.X), float32(res.Point.Z))
		} else {
			b.sel.ProbeMiss()
		}
	}

	b.phase(telemetry.PhaseWrite)
	b.write()

	return FrameReport{Animated: true, Probed: fresh, Hit: res.Hit}
}

func (b *Bridge) phase(name string) {
	if b.perf != nil {
		b.perf.StartPhase(name)
	}
}

// write fills the buffer from the pool and marks it dirty once.
func (b *Bridge) write() {
	n := b.pool.Len()
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		pos := b.pool.Position(i)
		style := b.palette.Style(b.sel.Variant(i))
		scale := b.pool.BaseScale(i) * style.Scale
		m := Compose(pos.X, pos.Y, pos.Z, b.tilt, b.pool.Angle(i), scale)
		b.buf.Set(i, m, style.Color)
	}
	b.buf.MarkDirty()
}

// Click applies a click to the selection using the most recent probe.
func (b *Bridge) Click() selection.Action {
	return b.sel.Click(b.pool)
}

// Overlay builds the quote card payload from the current state.
func (b *Bridge) Overlay() Overlay {
	o := Overlay{Index: selection.None}
	if !b.sel.OverlayVisible() {
		return o
	}

	anchor, selected := b.sel.Selected()
	if !selected {
		anchor, _ = b.sel.Candidate()
	}
	if anchor < 0 || anchor >= b.pool.Len() {
		return o
	}

	pos := b.pool.Position(anchor)
	o.Visible = true
	o.Index = anchor
	o.WorldPosition = [3]float32{pos.X, pos.Y + b.lift, pos.Z}

	if selected {
		o.SelectedAuthor = b.pool.Author(anchor)
		o.SelectedQuote = b.quotes.Quote(o.SelectedAuthor)
	}
	if i, ok := b.sel.Hovered(); ok {
		o.HoveredAuthor = b.pool.Author(i)
	}
	return o
}

// Buffer returns the instanced draw data.
func (b *Bridge) Buffer() *Buffer {
	return b.buf
}

// Params returns the wave uniforms used by the last animated frame.
func (b *Bridge) Params() (wave.Params, bool) {
	return b.params, b.hasParams
}

// Pool returns the instance pool.
func (b *Bridge) Pool() *systems.Pool {
	return b.pool
}

// Selection returns the selection controller.
func (b *Bridge) Selection() *selection.Controller {
	return b.sel
}

// Quotes returns the quote table.
func (b *Bridge) Quotes() *quotes.Table {
	return b.quotes
}
