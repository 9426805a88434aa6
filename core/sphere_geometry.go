package core

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DivideByZeroTolerance is the squared length below which a vector is not normalized
const DivideByZeroTolerance = float32(1.0e-7)

// ErrNegativeDepth is returned when a subdivision depth below zero is requested
var ErrNegativeDepth = errors.New("subdivision depth must be >= 0")

// Regular tetrahedron inscribed in the unit sphere
var tetrahedron = [4]mgl32.Vec4{
	{0.0, 0.0, 1.0, 1.0},
	{0.0, 0.942809, -0.333333, 1.0},
	{-0.816497, -0.471405, -0.333333, 1.0},
	{0.816497, -0.471405, -0.333333, 1.0},
}

// Faces wound counter-clockwise seen from outside
var tetrahedronFaces = [4][3]int{
	{0, 1, 2},
	{3, 2, 1},
	{0, 3, 1},
	{0, 2, 3},
}

// VertexCount is the number of vertices a mesh of the given depth holds: 3 * 4^(depth+1)
func VertexCount(depth int) int {
	if depth < 0 {
		return 0
	}
	return 3 * (1 << (2 * uint(depth+1)))
}

// Generate tessellates the unit sphere by subdividing each tetrahedron face depth times
func Generate(depth int, mode NormalMode) (*Mesh, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeDepth, depth)
	}

	vertices := make([]Vertex, 0, VertexCount(depth))
	for _, f := range tetrahedronFaces {
		vertices = divideTriangle(vertices, tetrahedron[f[0]], tetrahedron[f[1]], tetrahedron[f[2]], depth, mode)
	}

	return &Mesh{Depth: depth, Mode: mode, Vertices: vertices}, nil
}

// GenerateSlots builds one mesh per slot spec, in order
func GenerateSlots(specs []SlotSpec) ([]*Mesh, error) {
	meshes := make([]*Mesh, len(specs))
	for i, spec := range specs {
		m, err := Generate(spec.Depth, spec.Mode)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		meshes[i] = m
	}
	return meshes, nil
}

// divideTriangle appends the triangles of (a, b, c) subdivided count times to dst
func divideTriangle(dst []Vertex, a, b, c mgl32.Vec4, count int, mode NormalMode) []Vertex {
	if count == 0 {
		return emitTriangle(dst, a, b, c, mode)
	}

	v1 := unit(a.Add(b))
	v2 := unit(a.Add(c))
	v3 := unit(b.Add(c))

	dst = divideTriangle(dst, a, v1, v2, count-1, mode)
	dst = divideTriangle(dst, c, v2, v3, count-1, mode)
	dst = divideTriangle(dst, b, v3, v1, count-1, mode)
	return divideTriangle(dst, v1, v3, v2, count-1, mode)
}

func emitTriangle(dst []Vertex, a, b, c mgl32.Vec4, mode NormalMode) []Vertex {
	n := TriangleNormals(mode, a, b, c)
	return append(dst,
		Vertex{Position: a, Normal: n[0]},
		Vertex{Position: b, Normal: n[1]},
		Vertex{Position: c, Normal: n[2]},
	)
}

// unit projects p onto the unit sphere, keeping w = 1.
// Near-zero vectors come back as the origin.
func unit(p mgl32.Vec4) mgl32.Vec4 {
	xyz := p.Vec3()
	lenSq := xyz.Dot(xyz)
	if lenSq > DivideByZeroTolerance {
		return xyz.Mul(1 / math32.Sqrt(lenSq)).Vec4(1)
	}
	return mgl32.Vec4{0, 0, 0, 1}
}
