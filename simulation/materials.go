package simulation

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ShadingModel is the lighting evaluation the shader applies to a body
type ShadingModel int

const (
	ShadingFlat ShadingModel = iota
	ShadingGouraud
	ShadingPhong
)

func (s ShadingModel) String() string {
	switch s {
	case ShadingFlat:
		return "flat"
	case ShadingGouraud:
		return "gouraud"
	case ShadingPhong:
		return "phong"
	}
	return fmt.Sprintf("ShadingModel(%d)", int(s))
}

// Material is a body's light and surface colours
type Material struct {
	LightAmbient  mgl32.Vec4
	LightDiffuse  mgl32.Vec4
	LightSpecular mgl32.Vec4

	Ambient   mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
	Shininess float32

	Shading ShadingModel
}

// Lighting is the uniform set uploaded before a body's draw call
type Lighting struct {
	AmbientProduct  mgl32.Vec4
	DiffuseProduct  mgl32.Vec4
	SpecularProduct mgl32.Vec4
	LightPosition   mgl32.Vec4
	Shininess       float32
	Shading         ShadingModel
}

func rgb(r, g, b float32) mgl32.Vec4 { return mgl32.Vec4{r, g, b, 1} }

var (
	whiteLight = rgb(1, 1, 1)
	dimAmbient = rgb(0.2, 0.2, 0.2)
	noColor    = rgb(0, 0, 0)
)

var materials = [NumBodies]Material{
	Sun: {
		LightAmbient: rgb(0.8, 0.1, 0.1), LightDiffuse: rgb(0.8, 0.2, 0.2), LightSpecular: rgb(0.4, 0.1, 0.1),
		Ambient: rgb(0.8, 0.5, 0.5), Diffuse: rgb(0.8, 0.2, 0.2), Specular: rgb(1, 1, 1),
		Shininess: 1, Shading: ShadingPhong,
	},
	PlanetOne: {
		LightAmbient: dimAmbient, LightDiffuse: whiteLight, LightSpecular: whiteLight,
		Ambient: rgb(1, 1, 1), Diffuse: rgb(0.8, 0.8, 0.8), Specular: rgb(1, 1, 1),
		Shininess: 20, Shading: ShadingGouraud,
	},
	PlanetTwo: {
		LightAmbient: dimAmbient, LightDiffuse: whiteLight, LightSpecular: whiteLight,
		Ambient: rgb(0.5, 0.8, 1), Diffuse: rgb(0.5, 0.8, 0), Specular: rgb(0.5, 0.8, 0),
		Shininess: 10, Shading: ShadingGouraud,
	},
	PlanetThree: {
		LightAmbient: dimAmbient, LightDiffuse: whiteLight, LightSpecular: whiteLight,
		Ambient: rgb(0.5, 0.5, 1), Diffuse: rgb(0.5, 0.5, 1), Specular: rgb(0.5, 0.5, 1),
		Shininess: 10, Shading: ShadingPhong,
	},
	PlanetFour: {
		LightAmbient: dimAmbient, LightDiffuse: whiteLight, LightSpecular: noColor,
		Ambient: rgb(0.55, 0.27, 0.07), Diffuse: rgb(0.55, 0.27, 0.07), Specular: noColor,
		Shininess: 5, Shading: ShadingGouraud,
	},
	Moon: {
		LightAmbient: dimAmbient, LightDiffuse: whiteLight, LightSpecular: noColor,
		Ambient: rgb(0.33, 0.15, 0.07), Diffuse: rgb(0.55, 0.74, 0.07), Specular: noColor,
		Shininess: 10, Shading: ShadingPhong,
	},
}

// MaterialFor returns the literal material of a body
func MaterialFor(b Body) Material {
	return materials[b]
}

// product multiplies two colours component-wise
func product(a, b mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// Lit combines the material with a light position into shader uniforms
func (m Material) Lit(lightPosition mgl32.Vec4) Lighting {
	return Lighting{
		AmbientProduct:  product(m.LightAmbient, m.Ambient),
		DiffuseProduct:  product(m.LightDiffuse, m.Diffuse),
		SpecularProduct: product(m.LightSpecular, m.Specular),
		LightPosition:   lightPosition,
		Shininess:       m.Shininess,
		Shading:         m.Shading,
	}
}
