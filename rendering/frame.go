// Package rendering issues the per-frame draw sequence against any Surface.
package rendering

import (
	"github.com/go-gl/mathgl/mgl32"

	"solarsystem/simulation"
)

// Surface is the graphics backend the frame is drawn onto
type Surface interface {
	Begin(view, projection mgl32.Mat4)
	Bind(slot int)
	SetLighting(l simulation.Lighting)
	SetTransform(m mgl32.Mat4)
	Draw(vertexCount int32)
	End()
}

// DrawFrame draws every body once in fixed slot order. There is no sorting or culling.
func DrawFrame(surface Surface, scene *simulation.SceneState) {
	surface.Begin(scene.Camera.View, scene.ProjectionMatrix())
	for _, body := range simulation.Bodies() {
		mesh := scene.Meshes[body]
		if mesh == nil {
			continue
		}
		surface.Bind(int(body))
		surface.SetLighting(scene.Lighting(body))
		surface.SetTransform(scene.System.Transform(body))
		surface.Draw(int32(mesh.VertexCount()))
	}
	surface.End()
	scene.Drawn()
}
