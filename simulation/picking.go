package simulation

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line in world space with unit Direction
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// ScreenRay unprojects framebuffer pixel (x, y), origin top-left, into a world-space ray
func ScreenRay(x, y float64, width, height int, view, projection mgl32.Mat4) Ray {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	ndcX := float32(2*x/float64(width) - 1)
	ndcY := float32(1 - 2*y/float64(height))

	inv := projection.Mul4(view).Inv()
	near := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
	nearPoint := near.Vec3().Mul(1 / near[3])
	farPoint := far.Vec3().Mul(1 / far[3])

	return Ray{Origin: nearPoint, Direction: farPoint.Sub(nearPoint).Normalize()}
}

// IntersectSphere returns the distance along r to the nearest forward hit
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := 2 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	discriminant := b*b - 4*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math32.Sqrt(discriminant)
	t := (-b - sqrtD) / 2
	if t < 0 {
		t = (-b + sqrtD) / 2
		if t < 0 {
			return 0, false
		}
	}
	return t, true
}

// Bounds returns the world-space sphere a body's unit mesh occupies under its transform
func Bounds(m mgl32.Mat4) (center mgl32.Vec3, radius float32) {
	return m.Col(3).Vec3(), m.Col(0).Vec3().Len()
}

// Pick returns the nearest body under framebuffer pixel (x, y)
func (s *SceneState) Pick(x, y float64) (Body, bool) {
	ray := ScreenRay(x, y, s.width, s.height, s.Camera.View, s.projection)

	picked, best := Body(-1), float32(math32.MaxFloat32)
	for _, b := range Bodies() {
		if s.Meshes[b] == nil {
			continue
		}
		center, radius := Bounds(s.System.Transform(b))
		if t, ok := ray.IntersectSphere(center, radius); ok && t < best {
			picked, best = b, t
		}
	}
	return picked, picked >= 0
}
