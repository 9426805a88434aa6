package simulation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"solarsystem/core"
)

func pickScene(t *testing.T, mode ProjectionMode) *SceneState {
	t.Helper()
	slots := make([]core.SlotSpec, NumBodies)
	s, err := NewSceneState(slots, Options{Width: 1200, Height: 800, Projection: mode})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// screenPoint projects a world point to framebuffer pixels, origin top-left
func screenPoint(s *SceneState, p mgl32.Vec3) (float64, float64) {
	clip := s.ProjectionMatrix().Mul4(s.Camera.View).Mul4x1(p.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip[3])
	return float64((ndc[0] + 1) / 2 * 1200), float64((1 - ndc[1]) / 2 * 800)
}

func TestPickBodyCenters(t *testing.T) {
	for _, mode := range []ProjectionMode{Perspective, Orthographic} {
		s := pickScene(t, mode)
		if mode == Orthographic {
			// move the ortho volume over the sun
			s.Camera.View = mgl32.Translate3D(0, 0, -100)
		}
		for _, b := range []Body{Sun, PlanetOne, PlanetTwo, PlanetThree, PlanetFour} {
			center, _ := Bounds(s.System.Transform(b))
			x, y := screenPoint(s, center)
			if x < 0 || x > 1200 || y < 0 || y > 800 {
				continue
			}
			got, ok := s.Pick(x, y)
			if !ok || got != b {
				t.Errorf("%v: Pick at center of %v = %v, %v", mode, b, got, ok)
			}
		}
	}
}

func TestPickMiss(t *testing.T) {
	s := pickScene(t, Perspective)
	if b, ok := s.Pick(0, 0); ok {
		t.Errorf("corner pick hit %v", b)
	}
}

func TestPickSkipsEmptySlots(t *testing.T) {
	s := pickScene(t, Perspective)
	center, _ := Bounds(s.System.Transform(Sun))
	x, y := screenPoint(s, center)
	s.Meshes[Sun] = nil
	if b, ok := s.Pick(x, y); ok && b == Sun {
		t.Error("picked a body with no mesh")
	}
}

func TestIntersectSphere(t *testing.T) {
	ray := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}
	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		wantT  float32
		hit    bool
	}{
		{"ahead", mgl32.Vec3{}, 2, 8, true},
		{"off axis", mgl32.Vec3{5, 0, 0}, 2, 0, false},
		{"behind", mgl32.Vec3{0, 0, 20}, 2, 0, false},
		{"origin inside", mgl32.Vec3{0, 0, 10}, 3, 3, true},
	}
	for _, tc := range tests {
		got, ok := ray.IntersectSphere(tc.center, tc.radius)
		if ok != tc.hit || (ok && !mgl32.FloatEqualThreshold(got, tc.wantT, 1e-5)) {
			t.Errorf("%s: got %v, %v want %v, %v", tc.name, got, ok, tc.wantT, tc.hit)
		}
	}
}

func TestBoundsFollowScale(t *testing.T) {
	center, radius := Bounds(BaseTransform(PlanetThree))
	if !center.ApproxEqual(mgl32.Vec3{60, 0, 0}) || !mgl32.FloatEqualThreshold(radius, 3.6, 1e-5) {
		t.Errorf("Bounds = %v, %v", center, radius)
	}
}
