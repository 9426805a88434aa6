package simulation

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionMode selects the camera lens
type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
)

const (
	FieldOfView = float32(45)
	NearPlane   = float32(0.5)
	FarPlane    = float32(500)
	orthoExtent = float32(2)
)

func (p ProjectionMode) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// ParseProjectionMode accepts "perspective" or "orthographic" ("ortho" for short)
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "perspective":
		return Perspective, nil
	case "ortho", "orthographic":
		return Orthographic, nil
	}
	return Perspective, fmt.Errorf("unknown projection %q", s)
}

// Projection returns the projection matrix for a framebuffer of width x height
func Projection(width, height int, mode ProjectionMode) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)

	if mode == Orthographic {
		left, right := -orthoExtent, orthoExtent
		bottom, top := -orthoExtent, orthoExtent
		if aspect > 1 {
			left *= aspect
			right *= aspect
		} else if aspect > 0 {
			top /= aspect
			bottom /= aspect
		}
		return mgl32.Ortho(left, right, bottom, top, NearPlane, FarPlane)
	}

	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, FarPlane)
}
