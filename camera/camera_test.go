package camera

import (
	"math"
	"testing"
)

func newTestCamera() *Camera {
	return New([3]float32{25, 21, 0}, [3]float32{}, 55, 1280, 720)
}

func TestNew(t *testing.T) {
	cam := newTestCamera()

	if cam.Position != cam.Home {
		t.Errorf("expected camera at home %v, got %v", cam.Home, cam.Position)
	}
	if cam.Parallax != 0.5 || cam.Easing != 0.05 {
		t.Errorf("expected default parallax 0.5 and easing 0.05, got %v and %v", cam.Parallax, cam.Easing)
	}
}

func TestSetPointerNormalises(t *testing.T) {
	cam := newTestCamera()

	testCases := []struct {
		sx, sy float32
		wx, wy float32
	}{
		{640, 360, 0, 0},
		{0, 0, -1, -1},
		{1280, 720, 1, 1},
		{-500, 5000, -1, 1},
	}
	for _, tc := range testCases {
		cam.SetPointer(tc.sx, tc.sy)
		x, y := cam.Pointer()
		if x != tc.wx || y != tc.wy {
			t.Errorf("pointer (%v,%v): expected (%v,%v), got (%v,%v)", tc.sx, tc.sy, tc.wx, tc.wy, x, y)
		}
	}
}

func TestUpdateEasesTowardGoal(t *testing.T) {
	cam := newTestCamera()
	cam.SetPointer(1280, 720) // bottom right

	goal := cam.Goal()
	if goal != [3]float32{25, 21.5, -0.5} {
		t.Fatalf("expected goal (25, 21.5, -0.5), got %v", goal)
	}

	cam.Update()
	if d := math.Abs(float64(cam.Position[1] - 21.025)); d > 1e-5 {
		t.Errorf("expected first step to cover 5%%, got y=%v", cam.Position[1])
	}

	for i := 0; i < 500; i++ {
		cam.Update()
	}
	for i := range goal {
		if d := math.Abs(float64(cam.Position[i] - goal[i])); d > 1e-3 {
			t.Errorf("axis %d: expected convergence to %v, got %v", i, goal[i], cam.Position[i])
		}
	}
}

func TestPointerVerticalParallax(t *testing.T) {
	testCases := []struct {
		name  string
		sy    float32
		wantY float32
	}{
		{"bottom edge raises the eye", 720, 21.5},
		{"centre keeps home height", 360, 21},
		{"top edge lowers the eye", 0, 20.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cam := newTestCamera()
			cam.SetPointer(640, tc.sy)
			if got := cam.Goal()[1]; got != tc.wantY {
				t.Errorf("expected goal y %v, got %v", tc.wantY, got)
			}
		})
	}
}

func TestReset(t *testing.T) {
	cam := newTestCamera()
	cam.SetPointer(0, 0)
	cam.Update()
	cam.Reset()

	if cam.Position != cam.Home {
		t.Errorf("expected home position, got %v", cam.Position)
	}
	if x, y := cam.Pointer(); x != 0 || y != 0 {
		t.Errorf("expected centred pointer, got (%v,%v)", x, y)
	}
}

func TestWorldToScreenTargetIsCentre(t *testing.T) {
	cam := newTestCamera()
	sx, sy, ok := cam.WorldToScreen(cam.Target)
	if !ok {
		t.Fatal("expected target to be visible")
	}
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen centre (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	cam := newTestCamera()
	if _, _, ok := cam.WorldToScreen([3]float32{50, 21, 0}); ok {
		t.Error("expected point behind the camera to be invisible")
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	view := cam.View()

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 500},  // lower left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		p, ok := view.ScreenRay(float64(tc.sx), float64(tc.sy)).IntersectPlane(0, 0)
		if !ok {
			t.Fatalf("expected (%v,%v) to hit the ground", tc.sx, tc.sy)
		}
		sx, sy, vis := cam.WorldToScreen([3]float32{float32(p.X), float32(p.Y), float32(p.Z)})
		if !vis || math.Abs(float64(sx-tc.sx)) > 0.05 || math.Abs(float64(sy-tc.sy)) > 0.05 {
			t.Errorf("roundtrip failed: (%f,%f) -> %v -> (%f,%f)", tc.sx, tc.sy, p, sx, sy)
		}
	}
}
