package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/sakura/wave"
)

func testOptions(amount int) PoolOptions {
	return PoolOptions{
		Amount:           amount,
		SpawnExtent:      150,
		MinSeparation:    2,
		DriftCoefficient: 0.005,
		WrapMin:          -100,
		WrapMax:          80,
		ElevationScale:   5,
		VerticalBias:     0.35,
		SpinMultiplier:   50,
	}
}

func testParams() wave.Params {
	return wave.Params{
		Amplitude:   0.025,
		Speed:       0.4,
		Frequency:   0.07,
		Persistence: 0.3,
		Lacunarity:  2.18,
		Iterations:  8,
	}
}

// fixedSampler cycles through the given points.
func fixedSampler(points ...[2]float32) Sampler {
	i := 0
	return func(*rand.Rand) (float32, float32) {
		p := points[i%len(points)]
		i++
		return p[0], p[1]
	}
}

func TestNewPoolSeparation(t *testing.T) {
	pool, err := NewPool(testOptions(75), nil, wave.Field{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.Len() != 75 {
		t.Fatalf("expected 75 blossoms, got %d", pool.Len())
	}

	for i := 0; i < pool.Len(); i++ {
		xi, zi := pool.PlanarPosition(i)
		if xi < -75 || xi >= 75 || zi < -75 || zi >= 75 {
			t.Errorf("blossom %d spawned outside the area: (%v, %v)", i, xi, zi)
		}
		for j := i + 1; j < pool.Len(); j++ {
			xj, zj := pool.PlanarPosition(j)
			d := math.Hypot(float64(xi-xj), float64(zi-zj))
			if d < 2 {
				t.Errorf("blossoms %d and %d too close: %v", i, j, d)
			}
		}
	}
}

func TestNewPoolAttributeRanges(t *testing.T) {
	pool, err := NewPool(testOptions(50), nil, wave.Field{}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var pos, neg int
	for i := 0; i < pool.Len(); i++ {
		inst := pool.Instance(i)
		if inst.Slot != i {
			t.Errorf("expected slot %d, got %d", i, inst.Slot)
		}
		if inst.FloatSeed < 1 || inst.FloatSeed >= 1.5 {
			t.Errorf("float seed out of range: %v", inst.FloatSeed)
		}
		mag := float32(math.Abs(float64(inst.RotationSpeed)))
		if mag < 0.001 || mag >= 0.003 {
			t.Errorf("rotation speed magnitude out of range: %v", inst.RotationSpeed)
		}
		if inst.RotationSpeed > 0 {
			pos++
		} else {
			neg++
		}
		if inst.BaseScale < 0.5 || inst.BaseScale >= 1 {
			t.Errorf("base scale out of range: %v", inst.BaseScale)
		}
	}
	if pos == 0 || neg == 0 {
		t.Errorf("expected both spin directions, got %d positive and %d negative", pos, neg)
	}
}

func TestNewPoolReproducible(t *testing.T) {
	a, err := NewPool(testOptions(20), nil, wave.Field{}, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewPool(testOptions(20), nil, wave.Field{}, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < a.Len(); i++ {
		if a.Instance(i) != b.Instance(i) {
			t.Errorf("slot %d differs: %+v vs %+v", i, a.Instance(i), b.Instance(i))
		}
	}
}

func TestNewPoolAuthorsRoundRobin(t *testing.T) {
	authors := []string{"A", "B", "C"}
	pool, err := NewPool(testOptions(7), authors, wave.Field{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A", "B", "C", "A", "B", "C", "A"}
	for i, w := range want {
		if got := pool.Author(i); got != w {
			t.Errorf("slot %d: expected author %q, got %q", i, w, got)
		}
	}
}

func TestNewPoolNoAuthors(t *testing.T) {
	pool, err := NewPool(testOptions(3), nil, wave.Field{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < pool.Len(); i++ {
		if a := pool.Author(i); a != "" {
			t.Errorf("expected empty author, got %q", a)
		}
	}
}

func TestNewPoolCrowded(t *testing.T) {
	opts := testOptions(2)
	opts.MaxPlacementAttempts = 50
	opts.Sampler = fixedSampler([2]float32{1, 1})

	_, err := NewPool(opts, nil, wave.Field{}, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrCrowded) {
		t.Fatalf("expected ErrCrowded, got %v", err)
	}
}

func TestNewPoolRejectsNegativeAmount(t *testing.T) {
	if _, err := NewPool(testOptions(-1), nil, wave.Field{}, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for negative amount")
	}
}

func TestNewPoolEmpty(t *testing.T) {
	pool, err := NewPool(testOptions(0), []string{"A"}, wave.Field{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.Len() != 0 {
		t.Errorf("expected empty pool, got %d", pool.Len())
	}
	pool.Step(testParams())
}

func TestNewPoolSamplerRejection(t *testing.T) {
	opts := testOptions(2)
	opts.Sampler = fixedSampler([2]float32{0, 0}, [2]float32{1, 0}, [2]float32{5, 0})

	pool, err := NewPool(opts, nil, wave.Field{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x, z := pool.PlanarPosition(1); x != 5 || z != 0 {
		t.Errorf("expected second blossom at (5, 0), got (%v, %v)", x, z)
	}
}

func TestStepDriftAndSurfaceLock(t *testing.T) {
	opts := testOptions(1)
	opts.Sampler = fixedSampler([2]float32{10, 20})
	pool, err := NewPool(opts, nil, wave.Field{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := testParams()
	p.Time = 2.5
	before := pool.Instance(0)
	pool.Step(p)
	after := pool.Instance(0)

	speed := float32(0.005) * float32(p.Speed) * before.FloatSeed
	if diff := math.Abs(float64(after.X - (before.X - speed))); diff > 1e-5 {
		t.Errorf("expected x %v, got %v", before.X-speed, after.X)
	}
	if diff := math.Abs(float64(after.Z - (before.Z - speed))); diff > 1e-5 {
		t.Errorf("expected z %v, got %v", before.Z-speed, after.Z)
	}

	wantY := float32((wave.Field{}).Elevation(float64(after.X), float64(after.Z), p))*5 + 0.35
	if diff := math.Abs(float64(after.Y - wantY)); diff > 1e-5 {
		t.Errorf("expected y %v, got %v", wantY, after.Y)
	}

	wantAngle := float32(p.Time) * before.RotationSpeed * 50
	if diff := math.Abs(float64(after.Angle - wantAngle)); diff > 1e-6 {
		t.Errorf("expected angle %v, got %v", wantAngle, after.Angle)
	}
}

func TestStepWrapInvariant(t *testing.T) {
	testCases := []struct {
		name  string
		speed float64
	}{
		{"forward", 0.4},
		{"fast", 2},
		{"reverse", -2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pool, err := NewPool(testOptions(30), nil, wave.Field{}, rand.New(rand.NewSource(5)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			p := testParams()
			p.Speed = tc.speed
			for step := 0; step < 20000; step++ {
				p.Time = float64(step) / 60
				pool.Step(p)
				for i := 0; i < pool.Len(); i++ {
					x, z := pool.PlanarPosition(i)
					if x < -100 || x > 80 || z < -100 || z > 80 {
						t.Fatalf("step %d: blossom %d left the wrap box at (%v, %v)", step, i, x, z)
					}
				}
			}
		})
	}
}

func TestWrap(t *testing.T) {
	testCases := []struct {
		in, want float32
	}{
		{-100.5, 80},
		{-100, -100},
		{0, 0},
		{80, 80},
		{80.1, -100},
	}
	for _, tc := range testCases {
		if got := wrap(tc.in, -100, 80); got != tc.want {
			t.Errorf("wrap(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestPlacementGridTooClose(t *testing.T) {
	g := newPlacementGrid(2, 4)
	g.Insert(0, 0)
	g.Insert(74.9, 74.9)

	testCases := []struct {
		x, z float32
		want bool
	}{
		{1.9, 0, true},
		{2, 0, false},
		{1.5, 1.5, false},
		{-1, -1, true},
		{74, 74, true},
		{200, 200, false},
	}
	for _, tc := range testCases {
		if got := g.TooClose(tc.x, tc.z, 2); got != tc.want {
			t.Errorf("TooClose(%v, %v): expected %v, got %v", tc.x, tc.z, tc.want, got)
		}
	}
	if g.TooClose(0, 0, 0) {
		t.Error("expected zero separation to accept any point")
	}
}

func TestPlacementGridStoresOnlyOccupiedCells(t *testing.T) {
	g := newPlacementGrid(0.01, 3)
	g.Insert(-75, -75)
	g.Insert(0, 0)
	g.Insert(74.99, 74.99)

	if len(g.cells) != 3 {
		t.Errorf("expected 3 occupied cells, got %d", len(g.cells))
	}
	if !g.TooClose(0.005, 0, 0.01) {
		t.Error("expected neighbour within separation to be rejected")
	}
	if g.TooClose(0.02, 0, 0.01) {
		t.Error("expected point beyond separation to be accepted")
	}
}
