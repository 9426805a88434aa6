package simulation

import "github.com/go-gl/mathgl/mgl32"

// BodySnapshot is a body's placement at one tick
type BodySnapshot struct {
	Name      string     `json:"name"`
	Angle     float32    `json:"angle"`
	Transform mgl32.Mat4 `json:"transform"`
	Position  mgl32.Vec3 `json:"position"`
	Vertices  int        `json:"vertices"`
}

// CameraSnapshot is the navigation state at one tick
type CameraSnapshot struct {
	View     mgl32.Mat4 `json:"view"`
	Altitude float32    `json:"altitude"`
	Azimuth  float32    `json:"azimuth"`
}

// Snapshot is a value copy of the scene, safe to hand to other goroutines
type Snapshot struct {
	Tick   uint64         `json:"tick"`
	Bodies []BodySnapshot `json:"bodies"`
	Camera CameraSnapshot `json:"camera"`
	Light  mgl32.Vec4     `json:"light"`
}

// Snapshot copies the current scene
func (s *SceneState) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   s.ticks,
		Bodies: make([]BodySnapshot, 0, NumBodies),
		Camera: CameraSnapshot{View: s.Camera.View, Altitude: s.Camera.Altitude, Azimuth: s.Camera.Azimuth},
		Light:  s.Light,
	}
	for _, b := range Bodies() {
		m := s.System.Transform(b)
		bs := BodySnapshot{
			Name:      b.String(),
			Angle:     s.System.Angle(b),
			Transform: m,
			Position:  m.Col(3).Vec3(),
		}
		if mesh := s.Meshes[b]; mesh != nil {
			bs.Vertices = mesh.VertexCount()
		}
		snap.Bodies = append(snap.Bodies, bs)
	}
	return snap
}
