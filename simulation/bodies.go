package simulation

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Body identifies a celestial body. Its value doubles as the mesh slot index.
type Body int

const (
	Sun Body = iota
	PlanetOne
	PlanetTwo
	PlanetThree
	PlanetFour
	Moon
	NumBodies
)

var bodyNames = [NumBodies]string{"sun", "planet_one", "planet_two", "planet_three", "planet_four", "moon"}

func (b Body) String() string {
	if b >= 0 && b < NumBodies {
		return bodyNames[b]
	}
	return fmt.Sprintf("Body(%d)", int(b))
}

// Bodies lists every body in draw order
func Bodies() []Body {
	return []Body{Sun, PlanetOne, PlanetTwo, PlanetThree, PlanetFour, Moon}
}

// Angles holds one orbit angle per body, in degrees
type Angles [NumBodies]float32

// Frame holds one model matrix per body
type Frame [NumBodies]mgl32.Mat4

// Fixed orbit layout. The moon circles planet two.
var (
	planetTwoOffset = mgl32.Translate3D(40, 0, 0)
	moonOffset      = mgl32.Translate3D(5, 0, 0)

	baseTransforms = Frame{
		Sun:         mgl32.Scale3D(8, 8, 8),
		PlanetOne:   mgl32.Translate3D(20, 0, 0).Mul4(mgl32.Scale3D(1.5, 1.5, 1.5)),
		PlanetTwo:   planetTwoOffset.Mul4(mgl32.Scale3D(2, 2, 2)),
		PlanetThree: mgl32.Translate3D(60, 0, 0).Mul4(mgl32.Scale3D(3.6, 3.6, 3.6)),
		PlanetFour:  mgl32.Translate3D(90, 0, 0).Mul4(mgl32.Scale3D(5, 5, 5)),
		Moon:        mgl32.Translate3D(35, 0, 0).Mul4(mgl32.Scale3D(0.6, 0.6, 0.6)),
	}

	// degrees per tick
	orbitSteps = Angles{
		Sun:         0,
		PlanetOne:   0.25,
		PlanetTwo:   0.10,
		PlanetThree: 0.08,
		PlanetFour:  0.05,
		Moon:        0.3,
	}
)

// BaseTransform returns the fixed radius and scale matrix of a body
func BaseTransform(b Body) mgl32.Mat4 {
	return baseTransforms[b]
}

// OrbitStep returns the angle, in degrees, a body advances every tick
func OrbitStep(b Body) float32 {
	return orbitSteps[b]
}

// RotateY is a rotation about the vertical axis by deg degrees
func RotateY(deg float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(deg))
}

// RotateX is a rotation about the horizontal axis by deg degrees
func RotateX(deg float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(deg))
}

// ComposeFrame builds every body's model matrix from its orbit angle.
// The moon follows planet two's orbit and offset but not its scale.
func ComposeFrame(angles Angles) Frame {
	var f Frame
	f[Sun] = baseTransforms[Sun]
	for _, b := range []Body{PlanetOne, PlanetTwo, PlanetThree, PlanetFour} {
		f[b] = RotateY(angles[b]).Mul4(baseTransforms[b])
	}
	f[Moon] = RotateY(angles[PlanetTwo]).
		Mul4(planetTwoOffset).
		Mul4(RotateY(angles[Moon])).
		Mul4(moonOffset)
	return f
}

// System is the transform hierarchy of the whole scene
type System struct {
	angles Angles
	frame  Frame
}

// NewSystem returns a system at rest. Every body sits at its base transform until the first Advance.
func NewSystem() *System {
	return &System{frame: baseTransforms}
}

// Advance recomposes the frame from the current angles, then steps every angle.
// Angles are never reduced and rely on trig periodicity.
func (s *System) Advance() {
	s.frame = ComposeFrame(s.angles)
	for b := range s.angles {
		s.angles[b] += orbitSteps[b]
	}
}

// TransformAll applies t to every body's current matrix: M*t when post is set, t*M otherwise
func (s *System) TransformAll(t mgl32.Mat4, post bool) {
	for b := range s.frame {
		if post {
			s.frame[b] = s.frame[b].Mul4(t)
		} else {
			s.frame[b] = t.Mul4(s.frame[b])
		}
	}
}

// Transform returns a body's current model matrix
func (s *System) Transform(b Body) mgl32.Mat4 {
	return s.frame[b]
}

// Frame returns a copy of every body's current model matrix
func (s *System) Frame() Frame {
	return s.frame
}

// Angle returns a body's accumulated orbit angle in degrees
func (s *System) Angle(b Body) float32 {
	return s.angles[b]
}

// Angles returns a copy of all orbit angles
func (s *System) Angles() Angles {
	return s.angles
}
