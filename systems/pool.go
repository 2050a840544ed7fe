// Package systems holds the blossom instance pool and the per-frame drift step.
package systems

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sakura/components"
	"github.com/pthm-cable/sakura/wave"
)

// ErrCrowded is returned when a blossom cannot be placed far enough from its
// neighbours within the attempt budget.
var ErrCrowded = errors.New("no room left to place blossom")

// DefaultMaxPlacementAttempts is used when PoolOptions.MaxPlacementAttempts is zero.
const DefaultMaxPlacementAttempts = 10000

// Sampler draws a candidate spawn point in the x/z plane.
type Sampler func(rng *rand.Rand) (x, z float32)

// UniformSampler returns a sampler covering [-extent/2, extent/2)².
func UniformSampler(extent float32) Sampler {
	return func(rng *rand.Rand) (float32, float32) {
		x := (rng.Float32() - 0.5) * extent
		z := (rng.Float32() - 0.5) * extent
		return x, z
	}
}

// PoolOptions configures field creation and the drift step.
type PoolOptions struct {
	Amount               int
	SpawnExtent          float32
	MinSeparation        float32
	MaxPlacementAttempts int

	DriftCoefficient float32
	WrapMin          float32
	WrapMax          float32
	ElevationScale   float32
	VerticalBias     float32
	SpinMultiplier   float32

	// Sampler overrides the uniform spawn distribution (tests, custom layouts).
	Sampler Sampler
}

// Instance is a value snapshot of one blossom.
type Instance struct {
	Slot          int
	X, Y, Z       float32
	FloatSeed     float32
	RotationSpeed float32
	BaseScale     float32
	Angle         float32
	Author        string
}

// Pool owns the fixed set of blossoms. Components live in a single ark
// archetype, so each attribute is stored as one contiguous column.
type Pool struct {
	world *ecs.World
	opts  PoolOptions
	field wave.Field

	mapper *ecs.Map6[
		components.Position,
		components.Drift,
		components.Spin,
		components.Appearance,
		components.Authorship,
		components.Slot,
	]
	stepFilter *ecs.Filter3[
		components.Position,
		components.Drift,
		components.Spin,
	]

	posMap    *ecs.Map1[components.Position]
	driftMap  *ecs.Map1[components.Drift]
	spinMap   *ecs.Map1[components.Spin]
	lookMap   *ecs.Map1[components.Appearance]
	authorMap *ecs.Map1[components.Authorship]

	entities []ecs.Entity // indexed by slot
}

// NewPool places opts.Amount blossoms and assigns authors round-robin.
// Random draws happen per instance in a fixed order (position attempts, float
// seed, rotation magnitude, rotation sign, scale), so a seeded rng gives a
// reproducible field.
func NewPool(opts PoolOptions, authors []string, field wave.Field, rng *rand.Rand) (*Pool, error) {
	if opts.Amount < 0 {
		return nil, fmt.Errorf("pool amount must be >= 0, got %d", opts.Amount)
	}
	if opts.MaxPlacementAttempts <= 0 {
		opts.MaxPlacementAttempts = DefaultMaxPlacementAttempts
	}
	sample := opts.Sampler
	if sample == nil {
		sample = UniformSampler(opts.SpawnExtent)
	}

	world := ecs.NewWorld()
	p := &Pool{
		world: world,
		opts:  opts,
		field: field,
		mapper: ecs.NewMap6[
			components.Position,
			components.Drift,
			components.Spin,
			components.Appearance,
			components.Authorship,
			components.Slot,
		](world),
		stepFilter: ecs.NewFilter3[
			components.Position,
			components.Drift,
			components.Spin,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		driftMap:  ecs.NewMap1[components.Drift](world),
		spinMap:   ecs.NewMap1[components.Spin](world),
		lookMap:   ecs.NewMap1[components.Appearance](world),
		authorMap: ecs.NewMap1[components.Authorship](world),
		entities:  make([]ecs.Entity, 0, opts.Amount),
	}

	grid := newPlacementGrid(opts.MinSeparation, opts.Amount)

	for i := 0; i < opts.Amount; i++ {
		x, z, ok := place(grid, sample, rng, opts.MinSeparation, opts.MaxPlacementAttempts)
		if !ok {
			return nil, fmt.Errorf("placing blossom %d of %d after %d attempts: %w",
				i+1, opts.Amount, opts.MaxPlacementAttempts, ErrCrowded)
		}
		grid.Insert(x, z)

		floatSeed := rng.Float32()*0.5 + 1
		rotation := rng.Float32()*0.002 + 0.001
		if rng.Float32() <= 0.5 {
			rotation = -rotation
		}
		scale := rng.Float32()*0.5 + 0.5

		author := ""
		if len(authors) > 0 {
			author = authors[i%len(authors)]
		}

		pos := components.Position{X: x, Z: z}
		drift := components.Drift{FloatSeed: floatSeed, RotationSpeed: rotation}
		spin := components.Spin{}
		look := components.Appearance{BaseScale: scale}
		authorship := components.Authorship{Author: author}
		slot := components.Slot{Index: i}

		e := p.mapper.NewEntity(&pos, &drift, &spin, &look, &authorship, &slot)
		p.entities = append(p.entities, e)
	}

	return p, nil
}

// place rejection-samples one point that keeps the minimum separation.
func place(grid *placementGrid, sample Sampler, rng *rand.Rand, minSep float32, attempts int) (float32, float32, bool) {
	for a := 0; a < attempts; a++ {
		x, z := sample(rng)
		if !grid.TooClose(x, z, minSep) {
			return x, z, true
		}
	}
	return 0, 0, false
}

// Step advances drift, wrap, surface lock and spin for every blossom.
func (p *Pool) Step(params wave.Params) {
	o := &p.opts
	speedScale := o.DriftCoefficient * float32(params.Speed)
	t := float32(params.Time)

	query := p.stepFilter.Query()
	for query.Next() {
		pos, drift, spin := query.Get()

		speed := speedScale * drift.FloatSeed
		pos.X = wrap(pos.X-speed, o.WrapMin, o.WrapMax)
		pos.Z = wrap(pos.Z-speed, o.WrapMin, o.WrapMax)

		h := p.field.Elevation(float64(pos.X), float64(pos.Z), params)
		pos.Y = float32(h)*o.ElevationScale + o.VerticalBias

		spin.Angle = t * drift.RotationSpeed * o.SpinMultiplier
	}
}

// wrap teleports a coordinate that left [lo, hi] to the opposite edge.
func wrap(v, lo, hi float32) float32 {
	if v < lo {
		return hi
	}
	if v > hi {
		return lo
	}
	return v
}

// Len returns the number of blossoms.
func (p *Pool) Len() int {
	return len(p.entities)
}

// PlanarPosition returns the current x/z position of slot i.
func (p *Pool) PlanarPosition(i int) (x, z float32) {
	pos := p.posMap.Get(p.entities[i])
	return pos.X, pos.Z
}

// Position returns the current world position of slot i.
func (p *Pool) Position(i int) components.Position {
	return *p.posMap.Get(p.entities[i])
}

// Angle returns the current spin angle of slot i in radians.
func (p *Pool) Angle(i int) float32 {
	return p.spinMap.Get(p.entities[i]).Angle
}

// BaseScale returns the immutable base scale of slot i.
func (p *Pool) BaseScale(i int) float32 {
	return p.lookMap.Get(p.entities[i]).BaseScale
}

// Author returns the author assigned to slot i.
func (p *Pool) Author(i int) string {
	return p.authorMap.Get(p.entities[i]).Author
}

// Instance returns a snapshot of slot i.
func (p *Pool) Instance(i int) Instance {
	e := p.entities[i]
	pos := p.posMap.Get(e)
	drift := p.driftMap.Get(e)
	return Instance{
		Slot:          i,
		X:             pos.X,
		Y:             pos.Y,
		Z:             pos.Z,
		FloatSeed:     drift.FloatSeed,
		RotationSpeed: drift.RotationSpeed,
		BaseScale:     p.lookMap.Get(e).BaseScale,
		Angle:         p.spinMap.Get(e).Angle,
		Author:        p.authorMap.Get(e).Author,
	}
}
