package simulation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMaterialShadingModels(t *testing.T) {
	want := map[Body]ShadingModel{
		Sun:         ShadingPhong,
		PlanetOne:   ShadingGouraud,
		PlanetTwo:   ShadingGouraud,
		PlanetThree: ShadingPhong,
		PlanetFour:  ShadingGouraud,
		Moon:        ShadingPhong,
	}
	for b, s := range want {
		if got := MaterialFor(b).Shading; got != s {
			t.Errorf("%v shading = %v, want %v", b, got, s)
		}
	}
}

func TestMaterialLit(t *testing.T) {
	light := mgl32.Vec4{1, 2, 3, 0}
	l := MaterialFor(Sun).Lit(light)

	if want := (mgl32.Vec4{0.8 * 0.8, 0.1 * 0.5, 0.1 * 0.5, 1}); !l.AmbientProduct.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("ambient product = %v, want %v", l.AmbientProduct, want)
	}
	if want := (mgl32.Vec4{0.64, 0.04, 0.04, 1}); !l.DiffuseProduct.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("diffuse product = %v, want %v", l.DiffuseProduct, want)
	}
	if want := (mgl32.Vec4{0.4, 0.1, 0.1, 1}); !l.SpecularProduct.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("specular product = %v, want %v", l.SpecularProduct, want)
	}
	if l.LightPosition != light || l.Shininess != 1 || l.Shading != ShadingPhong {
		t.Errorf("unexpected lighting %+v", l)
	}

	if p4 := MaterialFor(PlanetFour).Lit(light); p4.SpecularProduct != (mgl32.Vec4{0, 0, 0, 1}) {
		t.Errorf("planet four should have no specular, got %v", p4.SpecularProduct)
	}
}

func TestShadingModelString(t *testing.T) {
	if ShadingFlat.String() != "flat" || ShadingGouraud.String() != "gouraud" || ShadingPhong.String() != "phong" {
		t.Error("unexpected shading names")
	}
}
