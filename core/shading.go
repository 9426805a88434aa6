package core

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// NormalMode selects how per-vertex normals are derived for an emitted triangle
type NormalMode int

const (
	// Smooth gives every vertex its radial normal, so shading blends across faces
	Smooth NormalMode = iota
	// Flat gives all three vertices the face normal
	Flat
)

func (m NormalMode) String() string {
	switch m {
	case Flat:
		return "flat"
	case Smooth:
		return "smooth"
	}
	return fmt.Sprintf("NormalMode(%d)", int(m))
}

// ParseNormalMode accepts "flat" or "smooth", case-insensitive
func ParseNormalMode(s string) (NormalMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat":
		return Flat, nil
	case "smooth", "":
		return Smooth, nil
	}
	return Smooth, fmt.Errorf("unknown normal mode %q", s)
}

// TriangleNormals returns the normals for triangle (a, b, c).
// Winding must be counter-clockwise seen from outside for flat normals to point outward.
func TriangleNormals(mode NormalMode, a, b, c mgl32.Vec4) [3]mgl32.Vec3 {
	if mode == Flat {
		n := b.Sub(a).Vec3().Cross(c.Sub(b).Vec3()).Normalize()
		return [3]mgl32.Vec3{n, n, n}
	}
	return [3]mgl32.Vec3{
		a.Vec3().Normalize(),
		b.Vec3().Normalize(),
		c.Vec3().Normalize(),
	}
}
