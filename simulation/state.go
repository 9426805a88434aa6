package simulation

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"solarsystem/core"
)

// DefaultSlots are the tessellation settings of the six bodies, in slot order
var DefaultSlots = []core.SlotSpec{
	Sun:         {Depth: 5, Mode: core.Smooth},
	PlanetOne:   {Depth: 3, Mode: core.Flat},
	PlanetTwo:   {Depth: 4, Mode: core.Smooth},
	PlanetThree: {Depth: 6, Mode: core.Smooth},
	PlanetFour:  {Depth: 5, Mode: core.Smooth},
	Moon:        {Depth: 3, Mode: core.Smooth},
}

// Options tune a SceneState
type Options struct {
	Width, Height int
	Projection    ProjectionMode
	// SystemScale uniformly scales every body about the origin; 0 or 1 disables it
	SystemScale float32
}

// SceneState owns everything the render thread mutates. It is not safe for concurrent use.
type SceneState struct {
	Meshes [NumBodies]*core.Mesh

	System *System
	Camera Camera
	// Light is the sun's light position derived on the last tick
	Light mgl32.Vec4

	projection     mgl32.Mat4
	projectionMode ProjectionMode
	width, height  int
	systemScale    float32

	ticks  uint64
	redraw bool
}

// NewSceneState generates the mesh slots and places every body at its base transform
func NewSceneState(slots []core.SlotSpec, opts Options) (*SceneState, error) {
	if len(slots) != int(NumBodies) {
		return nil, fmt.Errorf("need %d mesh slots, got %d", NumBodies, len(slots))
	}
	meshes, err := core.GenerateSlots(slots)
	if err != nil {
		return nil, fmt.Errorf("generate meshes: %w", err)
	}

	s := &SceneState{
		System:         NewSystem(),
		Camera:         NewCamera(),
		projectionMode: opts.Projection,
		systemScale:    opts.SystemScale,
		redraw:         true,
	}
	copy(s.Meshes[:], meshes)
	s.applySystemScale()
	s.Resize(opts.Width, opts.Height)
	return s, nil
}

func (s *SceneState) applySystemScale() {
	if s.systemScale == 0 || s.systemScale == 1 {
		return
	}
	k := s.systemScale
	s.System.TransformAll(mgl32.Scale3D(k, k, k), false)
}

// Tick advances every orbit one step and re-derives the light
func (s *SceneState) Tick() {
	s.System.Advance()
	s.applySystemScale()
	s.Light = s.Camera.LightPosition()
	s.ticks++
	s.redraw = true
}

// Ticks returns how many ticks have run
func (s *SceneState) Ticks() uint64 {
	return s.ticks
}

// Handle applies a navigation command and reports whether it asks to quit
func (s *SceneState) Handle(cmd Command) bool {
	if cmd == CommandNone {
		return false
	}
	s.Camera = s.Camera.Apply(cmd)
	s.redraw = true
	return cmd == Quit
}

// Resize recomputes the projection for a new framebuffer size
func (s *SceneState) Resize(width, height int) {
	s.width, s.height = width, height
	s.projection = Projection(width, height, s.projectionMode)
	s.redraw = true
}

// ProjectionMatrix returns the current projection
func (s *SceneState) ProjectionMatrix() mgl32.Mat4 {
	return s.projection
}

// Lighting returns the uniforms for b. The sun takes the derived light; the rest get a light at the viewer.
func (s *SceneState) Lighting(b Body) Lighting {
	if b == Sun {
		return materials[b].Lit(s.Light)
	}
	return materials[b].Lit(mgl32.Vec4{})
}

// NeedsRedraw reports whether anything changed since the last Drawn
func (s *SceneState) NeedsRedraw() bool {
	return s.redraw
}

// Drawn clears the redraw request
func (s *SceneState) Drawn() {
	s.redraw = false
}
