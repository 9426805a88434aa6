package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one corner of an emitted triangle.
type Vertex struct {
	Position mgl32.Vec4 // homogeneous, w = 1
	Normal   mgl32.Vec3
}

// SlotSpec describes how one mesh slot is tessellated
type SlotSpec struct {
	Depth int
	Mode  NormalMode
}

// Mesh is an immutable triangle list. Consecutive vertex triples form one triangle.
type Mesh struct {
	Depth    int
	Mode     NormalMode
	Vertices []Vertex
}

// VertexCount returns the number of vertices in the mesh
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Triangle returns the i-th triangle's vertices in winding order
func (m *Mesh) Triangle(i int) (Vertex, Vertex, Vertex) {
	return m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]
}

// Positions flattens positions into x,y,z,w floats for buffer upload
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, 4*len(m.Vertices))
	for _, v := range m.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2], v.Position[3])
	}
	return out
}

// Normals flattens normals into x,y,z floats for buffer upload
func (m *Mesh) Normals() []float32 {
	out := make([]float32, 0, 3*len(m.Vertices))
	for _, v := range m.Vertices {
		out = append(out, v.Normal[0], v.Normal[1], v.Normal[2])
	}
	return out
}
